// Package services содержит бизнес-логику для работы с лайками публикаций.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

var (
	// ErrAlreadyLiked возвращается при повторном лайке той же публикации.
	ErrAlreadyLiked = errors.New("post already liked")
	// ErrNotFound возвращается, если лайк или публикация не существуют.
	ErrNotFound = errors.New("like not found")
	// ErrPostNotFound возвращается при лайке несуществующей публикации.
	ErrPostNotFound = errors.New("post not found")
)

// LikeRepository определяет методы для работы с лайками в хранилище.
type LikeRepository interface {
	CreateLike(ctx context.Context, userUID string, postID int) (int, error)
	DeleteLike(ctx context.Context, userUID string, postID int) (int, error)
	ListLikes(ctx context.Context, filter models.LikeFilter) ([]*models.Like, int, error)
	PostExists(ctx context.Context, id int) (bool, error)
}

// LikeService реализует бизнес-логику работы с лайками.
type LikeService struct {
	repo LikeRepository
}

// NewLikeService создает новый экземпляр LikeService.
func NewLikeService(repo LikeRepository) *LikeService {
	return &LikeService{repo: repo}
}

// Create ставит лайк публикации от имени пользователя. Пара (пользователь,
// публикация) уникальна.
func (s *LikeService) Create(ctx context.Context, userUID string, postID int) (int, error) {
	exists, err := s.repo.PostExists(ctx, postID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrPostNotFound
	}

	id, err := s.repo.CreateLike(ctx, userUID, postID)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return 0, ErrAlreadyLiked
		}
		return 0, err
	}
	return id, nil
}

// Remove снимает лайк пользователя с публикации.
func (s *LikeService) Remove(ctx context.Context, userUID string, postID int) error {
	count, err := s.repo.DeleteLike(ctx, userUID, postID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// List возвращает страницу лайков и общее количество по фильтру.
func (s *LikeService) List(ctx context.Context, filter models.LikeFilter) ([]*models.Like, int, error) {
	return s.repo.ListLikes(ctx, filter)
}
