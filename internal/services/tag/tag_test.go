package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	services "github.com/magabrotheeeer/blog-platform/internal/services/tag"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

type TagRepoMock struct {
	mock.Mock
}

func (m *TagRepoMock) CreateTag(ctx context.Context, name string) (int, error) {
	args := m.Called(ctx, name)
	return args.Int(0), args.Error(1)
}

func (m *TagRepoMock) GetTag(ctx context.Context, id int) (*models.Tag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*models.Tag)
	return tag, args.Error(1)
}

func (m *TagRepoMock) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	args := m.Called(ctx, name)
	tag, _ := args.Get(0).(*models.Tag)
	return tag, args.Error(1)
}

func (m *TagRepoMock) ListTags(ctx context.Context) ([]*models.Tag, error) {
	args := m.Called(ctx)
	tags, _ := args.Get(0).([]*models.Tag)
	return tags, args.Error(1)
}

func (m *TagRepoMock) PopularTags(ctx context.Context, limit int) ([]*models.Tag, error) {
	args := m.Called(ctx, limit)
	tags, _ := args.Get(0).([]*models.Tag)
	return tags, args.Error(1)
}

func (m *TagRepoMock) DeleteTag(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

func TestTagService_Create(t *testing.T) {
	t.Run("successful create", func(t *testing.T) {
		repo := new(TagRepoMock)
		repo.On("CreateTag", mock.Anything, "golang").Return(5, nil).Once()

		svc := services.NewTagService(repo)
		id, err := svc.Create(context.Background(), "golang")
		require.NoError(t, err)
		assert.Equal(t, 5, id)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(TagRepoMock)
		repo.On("CreateTag", mock.Anything, "golang").Return(0, storage.ErrAlreadyExists).Once()

		svc := services.NewTagService(repo)
		_, err := svc.Create(context.Background(), "golang")
		require.ErrorIs(t, err, services.ErrAlreadyExists)
	})
}

func TestTagService_ReadByName(t *testing.T) {
	t.Run("existing tag", func(t *testing.T) {
		repo := new(TagRepoMock)
		repo.On("GetTagByName", mock.Anything, "golang").
			Return(&models.Tag{ID: 5, Name: "golang"}, nil).Once()

		svc := services.NewTagService(repo)
		tag, err := svc.ReadByName(context.Background(), "golang")
		require.NoError(t, err)
		assert.Equal(t, 5, tag.ID)
		assert.Equal(t, "golang", tag.Name)
		repo.AssertExpectations(t)
	})

	t.Run("unknown name", func(t *testing.T) {
		repo := new(TagRepoMock)
		repo.On("GetTagByName", mock.Anything, "no-such-tag").
			Return(nil, storage.ErrNotFound).Once()

		svc := services.NewTagService(repo)
		tag, err := svc.ReadByName(context.Background(), "no-such-tag")
		require.ErrorIs(t, err, services.ErrNotFound)
		assert.Nil(t, tag)
	})

	t.Run("repository error bubbles up", func(t *testing.T) {
		repo := new(TagRepoMock)
		repo.On("GetTagByName", mock.Anything, "golang").
			Return(nil, errors.New("db error")).Once()

		svc := services.NewTagService(repo)
		_, err := svc.ReadByName(context.Background(), "golang")
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrNotFound)
	})
}

func TestTagService_Remove(t *testing.T) {
	t.Run("existing tag", func(t *testing.T) {
		repo := new(TagRepoMock)
		repo.On("DeleteTag", mock.Anything, 5).Return(1, nil).Once()

		svc := services.NewTagService(repo)
		require.NoError(t, svc.Remove(context.Background(), 5))
	})

	t.Run("missing tag", func(t *testing.T) {
		repo := new(TagRepoMock)
		repo.On("DeleteTag", mock.Anything, 5).Return(0, nil).Once()

		svc := services.NewTagService(repo)
		require.ErrorIs(t, svc.Remove(context.Background(), 5), services.ErrNotFound)
	})
}
