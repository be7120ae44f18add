// Package create реализует HTTP-обработчик установки лайка на публикацию.
package create

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/http/response"
	"github.com/magabrotheeeer/blog-platform/internal/lib/sl"
	services "github.com/magabrotheeeer/blog-platform/internal/services/like"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики установки лайка.
type Service interface {
	Create(ctx context.Context, userUID string, postID int) (int, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Поставить лайк публикации
// @Tags Likes
// @Security BearerAuth
// @Produce  json
// @Param id path int true "ID публикации"
// @Success 200 {object} map[string]any "Лайк поставлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Публикация не найдена"
// @Failure 409 {object} response.ErrorResponse "Лайк уже поставлен"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /posts/{id}/like [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.like.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	postID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("failed to decode id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode id from url"))
		return
	}

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user uid not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	id, err := h.service.Create(r.Context(), userUID, postID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPostNotFound):
			log.Error("post not found", slog.Int("post_id", postID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		case errors.Is(err, services.ErrAlreadyLiked):
			log.Error("post already liked", slog.Int("post_id", postID))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("post already liked"))
		default:
			log.Error("failed to like post", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not like post"))
		}
		return
	}

	log.Info("success to like post", slog.Int("like_id", id))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"like_id": id,
	}))
}
