// Package services содержит бизнес-логику для работы с комментариями.
package services

import (
	"context"
	"errors"

	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

var (
	// ErrNotFound возвращается, если комментарий не существует.
	ErrNotFound = errors.New("comment not found")
	// ErrNotOwner возвращается при попытке изменить чужой комментарий.
	ErrNotOwner = errors.New("not the author of the comment")
	// ErrPostNotFound возвращается при комментировании несуществующей публикации.
	ErrPostNotFound = errors.New("post not found")
)

// CommentRepository определяет методы для работы с комментариями в хранилище.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (int, error)
	GetComment(ctx context.Context, id int) (*models.Comment, error)
	ListComments(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error)
	UpdateComment(ctx context.Context, id int, authorUID, content string) (int, error)
	DeleteComment(ctx context.Context, id int, authorUID string) (int, error)
	CommentExists(ctx context.Context, id int) (bool, error)
	PostExists(ctx context.Context, id int) (bool, error)
}

// CommentService реализует бизнес-логику работы с комментариями.
type CommentService struct {
	repo CommentRepository
}

// NewCommentService создает новый экземпляр CommentService.
func NewCommentService(repo CommentRepository) *CommentService {
	return &CommentService{repo: repo}
}

// Create добавляет комментарий к существующей публикации.
func (s *CommentService) Create(ctx context.Context, authorUID string, req models.DummyComment) (int, error) {
	exists, err := s.repo.PostExists(ctx, req.PostID)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrPostNotFound
	}

	comment := models.Comment{
		Content:   req.Content,
		PostID:    req.PostID,
		AuthorUID: authorUID,
	}
	return s.repo.CreateComment(ctx, comment)
}

// Read возвращает комментарий по ID.
func (s *CommentService) Read(ctx context.Context, id int) (*models.Comment, error) {
	comment, err := s.repo.GetComment(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return comment, nil
}

// List возвращает страницу комментариев и общее количество по фильтру.
func (s *CommentService) List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error) {
	return s.repo.ListComments(ctx, filter)
}

// Update меняет текст комментария. Менять комментарий может только его автор;
// администратор может менять любой.
func (s *CommentService) Update(ctx context.Context, id int, userUID, role, content string) error {
	authorUID := userUID
	if role == models.RoleAdmin {
		comment, err := s.repo.GetComment(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		authorUID = comment.AuthorUID
	}

	count, err := s.repo.UpdateComment(ctx, id, authorUID, content)
	if err != nil {
		return err
	}
	if count == 0 {
		exists, err := s.repo.CommentExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrNotOwner
	}
	return nil
}

// Remove удаляет комментарий. Правила владения те же, что и для Update.
func (s *CommentService) Remove(ctx context.Context, id int, userUID, role string) error {
	authorUID := userUID
	if role == models.RoleAdmin {
		comment, err := s.repo.GetComment(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		authorUID = comment.AuthorUID
	}

	count, err := s.repo.DeleteComment(ctx, id, authorUID)
	if err != nil {
		return err
	}
	if count == 0 {
		exists, err := s.repo.CommentExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrNotOwner
	}
	return nil
}
