// Package readslug реализует HTTP-обработчик для получения публикации по slug.
// Каждый успешный запрос увеличивает счётчик просмотров публикации.
package readslug

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	services "github.com/magabrotheeeer/blog-platform/internal/services/post"
)

// Handler обрабатывает запросы на получение публикации по slug.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения публикации по slug.
type Service interface {
	ReadBySlug(ctx context.Context, slug string) (*models.Post, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить публикацию по slug
// @Description Возвращает публикацию и увеличивает счётчик просмотров.
// @Tags Posts
// @Produce  json
// @Param slug path string true "Slug публикации"
// @Success 200 {object} map[string]any "Данные публикации"
// @Failure 404 {object} response.ErrorResponse "Публикация не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /posts/slug/{slug} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.readslug"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	slug := chi.URLParam(r, "slug")
	if slug == "" {
		log.Error("empty slug in url")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("empty slug in url"))
		return
	}

	res, err := h.service.ReadBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Error("post not found", slog.String("slug", slug))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
			return
		}
		log.Error("failed to read post", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read post"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"post": res,
	}))
}
