package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	services "github.com/magabrotheeeer/blog-platform/internal/services/like"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

type LikeRepoMock struct {
	mock.Mock
}

func (m *LikeRepoMock) CreateLike(ctx context.Context, userUID string, postID int) (int, error) {
	args := m.Called(ctx, userUID, postID)
	return args.Int(0), args.Error(1)
}

func (m *LikeRepoMock) DeleteLike(ctx context.Context, userUID string, postID int) (int, error) {
	args := m.Called(ctx, userUID, postID)
	return args.Int(0), args.Error(1)
}

func (m *LikeRepoMock) ListLikes(ctx context.Context, filter models.LikeFilter) ([]*models.Like, int, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Like), args.Int(1), args.Error(2)
}

func (m *LikeRepoMock) PostExists(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func TestLikeService_Create(t *testing.T) {
	userUID := uuid.NewString()

	t.Run("successful like", func(t *testing.T) {
		repo := new(LikeRepoMock)
		repo.On("PostExists", mock.Anything, 7).Return(true, nil).Once()
		repo.On("CreateLike", mock.Anything, userUID, 7).Return(3, nil).Once()

		svc := services.NewLikeService(repo)
		id, err := svc.Create(context.Background(), userUID, 7)
		require.NoError(t, err)
		assert.Equal(t, 3, id)
		repo.AssertExpectations(t)
	})

	t.Run("double like", func(t *testing.T) {
		repo := new(LikeRepoMock)
		repo.On("PostExists", mock.Anything, 7).Return(true, nil).Once()
		repo.On("CreateLike", mock.Anything, userUID, 7).Return(0, storage.ErrAlreadyExists).Once()

		svc := services.NewLikeService(repo)
		_, err := svc.Create(context.Background(), userUID, 7)
		require.ErrorIs(t, err, services.ErrAlreadyLiked)
	})

	t.Run("missing post", func(t *testing.T) {
		repo := new(LikeRepoMock)
		repo.On("PostExists", mock.Anything, 404).Return(false, nil).Once()

		svc := services.NewLikeService(repo)
		_, err := svc.Create(context.Background(), userUID, 404)
		require.ErrorIs(t, err, services.ErrPostNotFound)
	})
}

func TestLikeService_Remove(t *testing.T) {
	userUID := uuid.NewString()

	t.Run("successful unlike", func(t *testing.T) {
		repo := new(LikeRepoMock)
		repo.On("DeleteLike", mock.Anything, userUID, 7).Return(1, nil).Once()

		svc := services.NewLikeService(repo)
		err := svc.Remove(context.Background(), userUID, 7)
		require.NoError(t, err)
	})

	t.Run("nothing to remove", func(t *testing.T) {
		repo := new(LikeRepoMock)
		repo.On("DeleteLike", mock.Anything, userUID, 7).Return(0, nil).Once()

		svc := services.NewLikeService(repo)
		err := svc.Remove(context.Background(), userUID, 7)
		require.ErrorIs(t, err, services.ErrNotFound)
	})
}
