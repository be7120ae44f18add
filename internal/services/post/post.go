// Package services содержит бизнес-логику для управления публикациями и кешированием.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/blog-platform/internal/lib/slug"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

var (
	// ErrNotFound возвращается, если публикация не существует.
	ErrNotFound = errors.New("post not found")
	// ErrNotOwner возвращается при попытке изменить чужую публикацию.
	ErrNotOwner = errors.New("not the author of the post")
)

// PostRepository определяет методы для работы с публикациями в хранилище.
type PostRepository interface {
	// CreatePost добавляет публикацию вместе со связями на теги и возвращает её ID.
	CreatePost(ctx context.Context, post models.Post, tagIDs []int) (int, error)
	// GetPost возвращает публикацию по ID.
	GetPost(ctx context.Context, id int) (*models.Post, error)
	// GetPostBySlug возвращает публикацию по slug.
	GetPostBySlug(ctx context.Context, slug string) (*models.Post, error)
	// PostExists сообщает, существует ли публикация.
	PostExists(ctx context.Context, id int) (bool, error)
	// ListPosts возвращает страницу публикаций и общее количество по фильтру.
	ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, int, error)
	// PopularPosts возвращает публикации с наибольшим числом лайков.
	PopularPosts(ctx context.Context, limit int) ([]*models.Post, error)
	// UpdatePost обновляет публикацию автора и возвращает число обновлённых строк.
	UpdatePost(ctx context.Context, id int, authorUID string, upd models.DummyUpdatePost) (int, error)
	// DeletePost удаляет публикацию автора и возвращает число удалённых строк.
	DeletePost(ctx context.Context, id int, authorUID string) (int, error)
	// IncrementViews увеличивает счётчик просмотров на единицу.
	IncrementViews(ctx context.Context, id int) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
	// InvalidateByPattern удаляет все ключи, подходящие под glob-шаблон.
	InvalidateByPattern(pattern string) error
}

// PostService реализует бизнес-логику работы с публикациями, включая кеширование.
type PostService struct {
	repo  PostRepository
	cache Cache
	log   *slog.Logger
}

// NewPostService создает новый экземпляр PostService.
func NewPostService(repo PostRepository, cache Cache, log *slog.Logger) *PostService {
	return &PostService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает публикацию. Slug строится из заголовка; при коллизии
// добавляется короткий суффикс.
func (s *PostService) Create(ctx context.Context, authorUID string, req models.DummyPost) (int, error) {
	post := models.Post{
		Slug:      slug.Make(req.Title),
		Title:     req.Title,
		Content:   req.Content,
		Thumbnail: req.Thumbnail,
		Published: req.Published,
		AuthorUID: authorUID,
	}

	id, err := s.repo.CreatePost(ctx, post, req.TagIDs)
	if errors.Is(err, storage.ErrAlreadyExists) {
		post.Slug = fmt.Sprintf("%s-%s", post.Slug, uuid.NewString()[:8])
		id, err = s.repo.CreatePost(ctx, post, req.TagIDs)
	}
	if err != nil {
		return 0, err
	}

	s.log.Info("created new post", slog.Int("id", id))
	return id, nil
}

// Read возвращает публикацию по ID, используя кеш или репозиторий.
func (s *PostService) Read(ctx context.Context, id int) (*models.Post, error) {
	var result *models.Post
	cacheKey := fmt.Sprintf("post:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// ReadBySlug возвращает публикацию по slug и увеличивает счётчик просмотров.
// Кеш не используется, иначе просмотры перестанут считаться.
func (s *PostService) ReadBySlug(ctx context.Context, slugStr string) (*models.Post, error) {
	post, err := s.repo.GetPostBySlug(ctx, slugStr)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, post.ID); err != nil {
		s.log.Warn("failed to increment views", slog.Int("id", post.ID), slog.Any("err", err))
	} else {
		post.Views++
	}
	return post, nil
}

// List возвращает страницу публикаций и общее количество по фильтру.
func (s *PostService) List(ctx context.Context, filter models.PostFilter) ([]*models.Post, int, error) {
	return s.repo.ListPosts(ctx, filter)
}

// View увеличивает счётчик просмотров публикации по ID.
func (s *PostService) View(ctx context.Context, id int) error {
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Popular возвращает публикации с наибольшим числом лайков, с коротким кешем.
func (s *PostService) Popular(ctx context.Context, limit int) ([]*models.Post, error) {
	var result []*models.Post
	cacheKey := fmt.Sprintf("posts:popular:%d", limit)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.PopularPosts(ctx, limit)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, 5*time.Minute); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет публикацию. Менять публикацию может только её автор;
// администратор может менять любую.
func (s *PostService) Update(ctx context.Context, id int, userUID, role string, req models.DummyUpdatePost) error {
	authorUID := userUID
	if role == models.RoleAdmin {
		post, err := s.repo.GetPost(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		authorUID = post.AuthorUID
	}

	count, err := s.repo.UpdatePost(ctx, id, authorUID, req)
	if err != nil {
		return err
	}
	if count == 0 {
		exists, err := s.repo.PostExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrNotOwner
	}

	s.invalidate(id)
	return nil
}

// Remove удаляет публикацию. Правила владения те же, что и для Update.
func (s *PostService) Remove(ctx context.Context, id int, userUID, role string) error {
	authorUID := userUID
	if role == models.RoleAdmin {
		post, err := s.repo.GetPost(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return ErrNotFound
			}
			return err
		}
		authorUID = post.AuthorUID
	}

	count, err := s.repo.DeletePost(ctx, id, authorUID)
	if err != nil {
		return err
	}
	if count == 0 {
		exists, err := s.repo.PostExists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return ErrNotOwner
	}

	s.invalidate(id)
	return nil
}

func (s *PostService) invalidate(id int) {
	cacheKey := fmt.Sprintf("post:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	// списки популярного кешируются по лимиту, снимаются все разом
	if err := s.cache.InvalidateByPattern("posts:popular:*"); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", "posts:popular:*"), slog.Any("err", err))
	}
}
