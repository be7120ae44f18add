package create

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/blog-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-platform/internal/models"
)

type PostServiceMock struct {
	mock.Mock
}

func (m *PostServiceMock) Create(ctx context.Context, authorUID string, req models.DummyPost) (int, error) {
	args := m.Called(ctx, authorUID, req)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCreateHandler_ServeHTTP(t *testing.T) {
	authorUID := "11111111-2222-3333-4444-555555555555"

	tests := []struct {
		name           string
		requestBody    interface{}
		ctxUID         string
		mockID         int
		mockErr        error
		wantStatusCode int
		wantError      string
		wantStatus     string
	}{
		{
			name:           "valid create",
			requestBody:    models.DummyPost{Title: "Hello", Content: "World"},
			ctxUID:         authorUID,
			mockID:         42,
			wantStatusCode: http.StatusOK,
			wantStatus:     "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			ctxUID:         authorUID,
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing title",
			requestBody:    models.DummyPost{Content: "World"},
			ctxUID:         authorUID,
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Title is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "missing user in context",
			requestBody:    models.DummyPost{Title: "Hello", Content: "World"},
			wantStatusCode: http.StatusUnauthorized,
			wantError:      "unauthorized",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			requestBody:    models.DummyPost{Title: "Hello", Content: "World"},
			ctxUID:         authorUID,
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "could not create post",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(PostServiceMock)
			if tt.mockID != 0 || tt.mockErr != nil {
				serviceMock.On("Create", mock.Anything, tt.ctxUID, tt.requestBody.(models.DummyPost)).
					Return(tt.mockID, tt.mockErr).Once()
			}
			handler := New(newNoopLogger(), serviceMock)

			var bodyBytes []byte
			var err error
			switch v := tt.requestBody.(type) {
			case string:
				bodyBytes = []byte(v)
			default:
				bodyBytes, err = json.Marshal(tt.requestBody)
				if err != nil {
					t.Fatal(err)
				}
			}

			req := httptest.NewRequest(http.MethodPost, "/posts", bytes.NewReader(bodyBytes))
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123")
			if tt.ctxUID != "" {
				ctx = context.WithValue(ctx, middlewarectx.UserUID, tt.ctxUID)
			}
			req = req.WithContext(ctx)

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatusCode, rec.Code)

			var got map[string]any
			err = json.NewDecoder(rec.Body).Decode(&got)
			assert.NoError(t, err)

			assert.Equal(t, tt.wantStatus, got["status"])

			if tt.wantError != "" {
				errStr, ok := got["error"].(string)
				assert.True(t, ok)
				assert.Equal(t, tt.wantError, errStr)
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
