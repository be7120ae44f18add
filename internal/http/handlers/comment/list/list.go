// Package list реализует HTTP-обработчик для получения страницы комментариев.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка комментариев.
type Service interface {
	List(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список комментариев
// @Tags Comments
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Param post_id query int false "Фильтр по публикации"
// @Param author_uid query string false "Фильтр по автору"
// @Success 200 {object} map[string]any "Страница комментариев"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /comments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.comment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	filter := models.CommentFilter{
		Limit:  limit,
		Offset: offset,
	}
	if v := r.URL.Query().Get("post_id"); v != "" {
		if postID, err := strconv.Atoi(v); err == nil {
			filter.PostID = &postID
		}
	}
	if v := r.URL.Query().Get("author_uid"); v != "" {
		filter.AuthorUID = &v
	}

	comments, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list comments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list comments"))
		return
	}

	log.Info("list comments", "count", len(comments))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"total":    total,
		"comments": comments,
	}))
}
