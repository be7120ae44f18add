package register

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

	"github.com/magabrotheeeer/blog-platform/internal/models"
	services "github.com/magabrotheeeer/blog-platform/internal/services/auth"
)

type AuthServiceMock struct {
	mock.Mock
}

func (m *AuthServiceMock) Register(ctx context.Context, req models.DummyRegister) (*models.User, *models.TokenPair, error) {
	args := m.Called(ctx, req)
	var user *models.User
	if args.Get(0) != nil {
		user = args.Get(0).(*models.User)
	}
	var pair *models.TokenPair
	if args.Get(1) != nil {
		pair = args.Get(1).(*models.TokenPair)
	}
	return user, pair, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRegisterHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name           string
		requestBody    interface{}
		mockUser       *models.User
		mockPair       *models.TokenPair
		mockErr        error
		wantStatusCode int
		wantData       map[string]any
		wantError      string
		wantStatus     string
	}{
		{
			name:        "valid registration",
			requestBody: models.DummyRegister{Email: "user@example.com", Password: "password123", Name: "user1"},
			mockUser: &models.User{
				UID:   "some-uuid",
				Email: "user@example.com",
				Name:  "user1",
				Role:  models.RoleUser,
			},
			mockPair:       &models.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"},
			wantStatusCode: http.StatusOK,
			wantData: map[string]any{
				"access_token":  "access-token",
				"refresh_token": "refresh-token",
			},
			wantStatus: "OK",
		},
		{
			name:           "invalid json body",
			requestBody:    "not a json",
			wantStatusCode: http.StatusBadRequest,
			wantError:      "invalid request body",
			wantStatus:     "Error",
		},
		{
			name:           "validation error - missing password",
			requestBody:    models.DummyRegister{Email: "user@example.com", Name: "user1"},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field Password is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "email taken",
			requestBody:    models.DummyRegister{Email: "user@example.com", Password: "password123", Name: "user1"},
			mockErr:        services.ErrEmailTaken,
			wantStatusCode: http.StatusConflict,
			wantError:      "email already taken",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			requestBody:    models.DummyRegister{Email: "user@example.com", Password: "password123", Name: "user1"},
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to register user",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if tt.mockUser != nil || tt.mockErr != nil {
				serviceMock.On("Register", mock.Anything, tt.requestBody.(models.DummyRegister)).
					Return(tt.mockUser, tt.mockPair, tt.mockErr).Once()
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

			req := httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(bodyBytes))
			req = req.WithContext(context.WithValue(req.Context(), middleware.RequestIDKey, "reqid123"))

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
			} else {
				assert.Nil(t, got["error"])
			}

			if tt.wantData != nil {
				data, ok := got["data"].(map[string]any)
				assert.True(t, ok)
				for k, v := range tt.wantData {
					assert.Equal(t, v, data[k])
				}
				user, ok := data["user"].(map[string]any)
				assert.True(t, ok)
				assert.Equal(t, "some-uuid", user["id"])
				// хэши не должны утекать в ответ
				assert.NotContains(t, user, "password_hash")
				assert.NotContains(t, user, "refresh_token_hash")
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
