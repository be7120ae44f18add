// Package popular реализует HTTP-обработчик списка популярных публикаций.
package popular

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

// Handler обрабатывает запросы популярных публикаций.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики популярных публикаций.
type Service interface {
	Popular(ctx context.Context, limit int) ([]*models.Post, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Получить популярные публикации
// @Description Возвращает публикации с наибольшим числом лайков.
// @Tags Posts
// @Produce  json
// @Param limit query int false "Число публикаций (по умолчанию 5)"
// @Success 200 {object} map[string]any "Популярные публикации"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /posts/popular [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.post.popular"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 50 {
		limit = 5
	}

	posts, err := h.service.Popular(r.Context(), limit)
	if err != nil {
		log.Error("failed to list popular posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list popular posts"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"posts": posts,
	}))
}
