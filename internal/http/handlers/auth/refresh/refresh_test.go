package refresh

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

func (m *AuthServiceMock) Refresh(ctx context.Context, refreshToken string) (*models.User, *models.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	user, _ := args.Get(0).(*models.User)
	pair, _ := args.Get(1).(*models.TokenPair)
	return user, pair, args.Error(2)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestRefreshHandler_ServeHTTP(t *testing.T) {
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
			name:        "valid refresh",
			requestBody: Request{RefreshToken: "old-refresh"},
			mockUser:    &models.User{UID: "some-uuid", Email: "user@example.com", Role: models.RoleUser},
			mockPair:    &models.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"},
			wantStatusCode: http.StatusOK,
			wantData: map[string]any{
				"access_token":  "new-access",
				"refresh_token": "new-refresh",
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
			name:           "missing token",
			requestBody:    Request{},
			wantStatusCode: http.StatusUnprocessableEntity,
			wantError:      "field RefreshToken is a required field",
			wantStatus:     "Error",
		},
		{
			name:           "denied refresh collapses to forbidden",
			requestBody:    Request{RefreshToken: "stolen-token"},
			mockErr:        services.ErrInvalidRefreshToken,
			wantStatusCode: http.StatusForbidden,
			wantError:      "access denied",
			wantStatus:     "Error",
		},
		{
			name:           "service error",
			requestBody:    Request{RefreshToken: "old-refresh"},
			mockErr:        errors.New("db error"),
			wantStatusCode: http.StatusInternalServerError,
			wantError:      "failed to refresh tokens",
			wantStatus:     "Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			serviceMock := new(AuthServiceMock)
			if tt.mockPair != nil || tt.mockErr != nil {
				serviceMock.On("Refresh", mock.Anything, tt.requestBody.(Request).RefreshToken).
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

			req := httptest.NewRequest(http.MethodPost, "/auth/refresh", bytes.NewReader(bodyBytes))
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
			}

			serviceMock.AssertExpectations(t)
		})
	}
}
