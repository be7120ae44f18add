// Package readbyname реализует HTTP-обработчик для получения тега по имени.
package readbyname

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
	services "github.com/magabrotheeeer/blog-platform/internal/services/tag"
)

type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики чтения тега по имени.
type Service interface {
	ReadByName(ctx context.Context, name string) (*models.Tag, error)
}

// New создает новый Handler с переданным логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tag.readbyname"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, "name")
	if name == "" {
		log.Error("tag name is empty")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("tag name is empty"))
		return
	}

	res, err := h.service.ReadByName(r.Context(), name)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			log.Error("tag not found", slog.String("name", name))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("tag not found"))
			return
		}
		log.Error("failed to read tag", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not read tag"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"tag": res,
	}))
}
