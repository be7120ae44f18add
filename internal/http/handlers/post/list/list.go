// Package list реализует HTTP-обработчик для получения страницы публикаций.
//
// Поддерживает фильтры по автору, тегу, поисковой строке и признаку
// публикации. По умолчанию возвращаются только опубликованные записи.
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

// Handler обрабатывает запросы списка публикаций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка публикаций.
type Service interface {
	List(ctx context.Context, filter models.PostFilter) ([]*models.Post, int, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить список публикаций
// @Tags Posts
// @Produce  json
// @Param limit query int false "Размер страницы (по умолчанию 10)"
// @Param offset query int false "Смещение (по умолчанию 0)"
// @Param author_uid query string false "Фильтр по автору"
// @Param tag_id query int false "Фильтр по тегу"
// @Param search query string false "Поиск по заголовку и тексту"
// @Param published query bool false "Фильтр по признаку публикации (по умолчанию true)"
// @Success 200 {object} map[string]any "Страница публикаций"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.list"

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

	published := true
	if v := r.URL.Query().Get("published"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			published = parsed
		}
	}

	filter := models.PostFilter{
		Published: &published,
		Limit:     limit,
		Offset:    offset,
	}
	if v := r.URL.Query().Get("author_uid"); v != "" {
		filter.AuthorUID = &v
	}
	if v := r.URL.Query().Get("tag_id"); v != "" {
		if tagID, err := strconv.Atoi(v); err == nil {
			filter.TagID = &tagID
		}
	}
	if v := r.URL.Query().Get("search"); v != "" {
		filter.Search = &v
	}

	posts, total, err := h.service.List(r.Context(), filter)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	log.Info("list posts", "count", len(posts))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"total": total,
		"posts": posts,
	}))
}
