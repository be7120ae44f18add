package listbyuser

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

type LikeServiceMock struct {
	mock.Mock
}

func (m *LikeServiceMock) List(ctx context.Context, filter models.LikeFilter) ([]*models.Like, int, error) {
	args := m.Called(ctx, filter)
	likes, _ := args.Get(0).([]*models.Like)
	return likes, args.Int(1), args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestListByUserHandler_ServeHTTP(t *testing.T) {
	userUID := "11111111-2222-3333-4444-555555555555"

	t.Run("valid list", func(t *testing.T) {
		serviceMock := new(LikeServiceMock)
		serviceMock.On("List", mock.Anything, mock.MatchedBy(func(filter models.LikeFilter) bool {
			return filter.UserUID != nil && *filter.UserUID == userUID &&
				filter.PostID == nil &&
				filter.Limit == 10 && filter.Offset == 0
		})).Return([]*models.Like{{ID: 3, UserUID: userUID, PostID: 7}}, 1, nil).Once()

		handler := New(newNoopLogger(), serviceMock)
		rec := doRequest(t, handler, userUID, "")

		assert.Equal(t, http.StatusOK, rec.Code)
		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "OK", got["status"])
		data, ok := got["data"].(map[string]any)
		assert.True(t, ok)
		assert.Equal(t, float64(1), data["total"])
		serviceMock.AssertExpectations(t)
	})

	t.Run("custom page", func(t *testing.T) {
		serviceMock := new(LikeServiceMock)
		serviceMock.On("List", mock.Anything, mock.MatchedBy(func(filter models.LikeFilter) bool {
			return filter.Limit == 5 && filter.Offset == 10
		})).Return([]*models.Like{}, 0, nil).Once()

		handler := New(newNoopLogger(), serviceMock)
		rec := doRequest(t, handler, userUID, "?limit=5&offset=10")

		assert.Equal(t, http.StatusOK, rec.Code)
		serviceMock.AssertExpectations(t)
	})

	t.Run("service error", func(t *testing.T) {
		serviceMock := new(LikeServiceMock)
		serviceMock.On("List", mock.Anything, mock.Anything).
			Return(nil, 0, errors.New("db error")).Once()

		handler := New(newNoopLogger(), serviceMock)
		rec := doRequest(t, handler, userUID, "")

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		var got map[string]any
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
		assert.Equal(t, "failed to list likes", got["error"])
	})
}

func doRequest(t *testing.T, handler *Handler, uid, query string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/likes/user/"+uid+query, nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("uid", uid)
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	ctx = context.WithValue(ctx, middleware.RequestIDKey, "reqid123")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}
