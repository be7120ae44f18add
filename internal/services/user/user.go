// Package services содержит бизнес-логику для работы с профилями пользователей.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

// ErrNotFound возвращается, если пользователь не существует.
var ErrNotFound = errors.New("user not found")

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error)
	UpdateUser(ctx context.Context, userUID string, upd models.DummyUpdateUser) (*models.User, error)
	DeleteUser(ctx context.Context, userUID string) (int, error)
	PostsByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error)
	ListComments(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error)
}

// UserService реализует бизнес-логику работы с профилями пользователей.
type UserService struct {
	repo UserRepository
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Read возвращает пользователя по UID.
func (s *UserService) Read(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.repo.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// List возвращает страницу пользователей.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	return s.repo.ListUsers(ctx, limit, offset)
}

// Update меняет публичные поля профиля и возвращает обновлённого пользователя.
func (s *UserService) Update(ctx context.Context, userUID string, req models.DummyUpdateUser) (*models.User, error) {
	user, err := s.repo.UpdateUser(ctx, userUID, req)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Remove удаляет пользователя вместе с его публикациями и комментариями.
func (s *UserService) Remove(ctx context.Context, userUID string) error {
	count, err := s.repo.DeleteUser(ctx, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}

// Posts возвращает публикации пользователя.
func (s *UserService) Posts(ctx context.Context, userUID string) ([]*models.Post, error) {
	return s.repo.PostsByAuthor(ctx, userUID)
}

// Comments возвращает страницу комментариев пользователя.
func (s *UserService) Comments(ctx context.Context, userUID string, limit, offset int) ([]*models.Comment, int, error) {
	filter := models.CommentFilter{
		AuthorUID: &userUID,
		Limit:     limit,
		Offset:    offset,
	}
	return s.repo.ListComments(ctx, filter)
}
