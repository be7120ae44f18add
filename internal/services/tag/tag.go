// Package services содержит бизнес-логику для работы с тегами публикаций.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

var (
	// ErrAlreadyExists возвращается при создании тега с занятым именем.
	ErrAlreadyExists = errors.New("tag already exists")
	// ErrNotFound возвращается, если тег не существует.
	ErrNotFound = errors.New("tag not found")
)

// TagRepository определяет методы для работы с тегами в хранилище.
type TagRepository interface {
	CreateTag(ctx context.Context, name string) (int, error)
	GetTag(ctx context.Context, id int) (*models.Tag, error)
	GetTagByName(ctx context.Context, name string) (*models.Tag, error)
	ListTags(ctx context.Context) ([]*models.Tag, error)
	PopularTags(ctx context.Context, limit int) ([]*models.Tag, error)
	DeleteTag(ctx context.Context, id int) (int, error)
}

// TagService реализует бизнес-логику работы с тегами.
type TagService struct {
	repo TagRepository
}

// NewTagService создает новый экземпляр TagService.
func NewTagService(repo TagRepository) *TagService {
	return &TagService{repo: repo}
}

// Create создает тег с уникальным именем.
func (s *TagService) Create(ctx context.Context, name string) (int, error) {
	id, err := s.repo.CreateTag(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return 0, ErrAlreadyExists
		}
		return 0, err
	}
	return id, nil
}

// Read возвращает тег по ID.
func (s *TagService) Read(ctx context.Context, id int) (*models.Tag, error) {
	tag, err := s.repo.GetTag(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

// ReadByName возвращает тег по точному имени.
func (s *TagService) ReadByName(ctx context.Context, name string) (*models.Tag, error) {
	tag, err := s.repo.GetTagByName(ctx, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

// List возвращает все теги.
func (s *TagService) List(ctx context.Context) ([]*models.Tag, error) {
	return s.repo.ListTags(ctx)
}

// Popular возвращает теги, отсортированные по числу публикаций.
func (s *TagService) Popular(ctx context.Context, limit int) ([]*models.Tag, error) {
	return s.repo.PopularTags(ctx, limit)
}

// Remove удаляет тег. Связи с публикациями удаляются каскадно.
func (s *TagService) Remove(ctx context.Context, id int) error {
	count, err := s.repo.DeleteTag(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
