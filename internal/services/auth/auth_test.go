package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-platform/internal/lib/password"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	services "github.com/magabrotheeeer/blog-platform/internal/services/auth"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error {
	args := m.Called(ctx, userUID, passwordHash)
	return args.Error(0)
}

func (m *UserRepoMock) SetRefreshTokenHash(ctx context.Context, userUID string, hash *string) error {
	args := m.Called(ctx, userUID, hash)
	return args.Error(0)
}

func (m *UserRepoMock) RotateRefreshTokenHash(ctx context.Context, userUID, currentHash, newHash string) (int, error) {
	args := m.Called(ctx, userUID, currentHash, newHash)
	return args.Int(0), args.Error(1)
}

// Мок для jwt.Maker
type JwtMakerMock struct {
	mock.Mock
}

func (m *JwtMakerMock) GeneratePair(userUID, email, role string) (string, string, error) {
	args := m.Called(userUID, email, role)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *JwtMakerMock) ParseAccess(tokenStr string) (*customjwt.AccessClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.AccessClaims), args.Error(1)
}

func (m *JwtMakerMock) ParseRefresh(tokenStr string) (*customjwt.RefreshClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customjwt.RefreshClaims), args.Error(1)
}

func refreshClaims(userUID string) *customjwt.RefreshClaims {
	return &customjwt.RefreshClaims{
		Email: "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func TestAuthService_Register(t *testing.T) {
	userUID := uuid.NewString()

	tests := []struct {
		name       string
		req        models.DummyRegister
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name: "successful registration",
			req:  models.DummyRegister{Email: "test@example.com", Password: "password123", Name: "testuser"},
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Email == "test@example.com" &&
						user.Name == "testuser" &&
						user.PasswordHash != "" &&
						user.Role == models.RoleUser
				})).Return(userUID, nil).Once()
				r.On("GetUser", mock.Anything, userUID).Return(&models.User{
					UID:   userUID,
					Email: "test@example.com",
					Name:  "testuser",
					Role:  models.RoleUser,
				}, nil).Once()
				j.On("GeneratePair", userUID, "test@example.com", models.RoleUser).
					Return("access-token", "refresh-token", nil).Once()
				r.On("SetRefreshTokenHash", mock.Anything, userUID, mock.MatchedBy(func(hash *string) bool {
					return hash != nil && password.CompareTokenHash(*hash, "refresh-token") == nil
				})).Return(nil).Once()
			},
		},
		{
			name: "email already taken",
			req:  models.DummyRegister{Email: "test@example.com", Password: "password123", Name: "testuser"},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return("", storage.ErrAlreadyExists).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
		{
			name: "repository error",
			req:  models.DummyRegister{Email: "test@example.com", Password: "password123", Name: "testuser"},
			setupMocks: func(r *UserRepoMock, _ *JwtMakerMock) {
				r.On("CreateUser", mock.Anything, mock.Anything).Return("", errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)
			svc := services.NewAuthService(repo, jwtMock)

			user, pair, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr.Error())
				assert.Nil(t, user)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, pair)
				assert.Equal(t, userUID, user.UID)
				assert.Equal(t, "access-token", pair.AccessToken)
				assert.Equal(t, "refresh-token", pair.RefreshToken)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hashed, err := password.GetHash("password123")
	require.NoError(t, err)
	userUID := uuid.NewString()

	tests := []struct {
		name       string
		email      string
		password   string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			email:    "test@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(&models.User{
					UID:          userUID,
					Email:        "test@example.com",
					PasswordHash: hashed,
					Role:         models.RoleUser,
				}, nil).Once()
				j.On("GeneratePair", userUID, "test@example.com", models.RoleUser).
					Return("access-token", "refresh-token", nil).Once()
				r.On("SetRefreshTokenHash", mock.Anything, userUID, mock.MatchedBy(func(hash *string) bool {
					return hash != nil && password.CompareTokenHash(*hash, "refresh-token") == nil
				})).Return(nil).Once()
			},
		},
		{
			name:     "unknown email",
			email:    "missing@example.com",
			password: "password123",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "missing@example.com").Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "test@example.com",
			password: "wrong-password",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").Return(&models.User{
					UID:          userUID,
					Email:        "test@example.com",
					PasswordHash: hashed,
					Role:         models.RoleUser,
				}, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)
			svc := services.NewAuthService(repo, jwtMock)

			user, pair, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, pair)
				assert.Equal(t, userUID, user.UID)
				assert.Equal(t, "access-token", pair.AccessToken)
				assert.Equal(t, "refresh-token", pair.RefreshToken)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Refresh(t *testing.T) {
	userUID := uuid.NewString()
	storedHash, err := password.GetTokenHash("old-refresh-token")
	require.NoError(t, err)
	otherHash, err := password.GetTokenHash("some-other-token")
	require.NoError(t, err)

	tests := []struct {
		name       string
		token      string
		setupMocks func(r *UserRepoMock, j *JwtMakerMock)
		wantErr    error
	}{
		{
			name:  "successful rotation",
			token: "old-refresh-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseRefresh", "old-refresh-token").Return(refreshClaims(userUID), nil).Once()
				r.On("GetUser", mock.Anything, userUID).Return(&models.User{
					UID:              userUID,
					Email:            "test@example.com",
					Role:             models.RoleUser,
					RefreshTokenHash: &storedHash,
				}, nil).Once()
				j.On("GeneratePair", userUID, "test@example.com", models.RoleUser).
					Return("new-access", "new-refresh", nil).Once()
				r.On("RotateRefreshTokenHash", mock.Anything, userUID, storedHash, mock.Anything).
					Return(1, nil).Once()
			},
		},
		{
			name:  "malformed token",
			token: "garbage",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseRefresh", "garbage").Return(nil, errors.New("token is malformed")).Once()
			},
			wantErr: services.ErrInvalidRefreshToken,
		},
		{
			name:  "user not found",
			token: "old-refresh-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseRefresh", "old-refresh-token").Return(refreshClaims(userUID), nil).Once()
				r.On("GetUser", mock.Anything, userUID).Return(nil, storage.ErrNotFound).Once()
			},
			wantErr: services.ErrInvalidRefreshToken,
		},
		{
			name:  "no stored session",
			token: "old-refresh-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseRefresh", "old-refresh-token").Return(refreshClaims(userUID), nil).Once()
				r.On("GetUser", mock.Anything, userUID).Return(&models.User{
					UID:   userUID,
					Email: "test@example.com",
					Role:  models.RoleUser,
				}, nil).Once()
			},
			wantErr: services.ErrInvalidRefreshToken,
		},
		{
			name:  "token does not match stored hash",
			token: "old-refresh-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseRefresh", "old-refresh-token").Return(refreshClaims(userUID), nil).Once()
				r.On("GetUser", mock.Anything, userUID).Return(&models.User{
					UID:              userUID,
					Email:            "test@example.com",
					Role:             models.RoleUser,
					RefreshTokenHash: &otherHash,
				}, nil).Once()
			},
			wantErr: services.ErrInvalidRefreshToken,
		},
		{
			name:  "concurrent rotation loses race",
			token: "old-refresh-token",
			setupMocks: func(r *UserRepoMock, j *JwtMakerMock) {
				j.On("ParseRefresh", "old-refresh-token").Return(refreshClaims(userUID), nil).Once()
				r.On("GetUser", mock.Anything, userUID).Return(&models.User{
					UID:              userUID,
					Email:            "test@example.com",
					Role:             models.RoleUser,
					RefreshTokenHash: &storedHash,
				}, nil).Once()
				j.On("GeneratePair", userUID, "test@example.com", models.RoleUser).
					Return("new-access", "new-refresh", nil).Once()
				r.On("RotateRefreshTokenHash", mock.Anything, userUID, storedHash, mock.Anything).
					Return(0, nil).Once()
			},
			wantErr: services.ErrInvalidRefreshToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo, jwtMock)
			svc := services.NewAuthService(repo, jwtMock)

			user, pair, err := svc.Refresh(context.Background(), tt.token)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, pair)
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				require.NotNil(t, pair)
				assert.Equal(t, userUID, user.UID)
				assert.Equal(t, "new-access", pair.AccessToken)
				assert.Equal(t, "new-refresh", pair.RefreshToken)
			}
			repo.AssertExpectations(t)
			jwtMock.AssertExpectations(t)
		})
	}
}

func TestAuthService_Logout(t *testing.T) {
	userUID := uuid.NewString()

	repo := new(UserRepoMock)
	jwtMock := new(JwtMakerMock)
	repo.On("SetRefreshTokenHash", mock.Anything, userUID, (*string)(nil)).Return(nil).Once()
	svc := services.NewAuthService(repo, jwtMock)

	err := svc.Logout(context.Background(), userUID)
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestAuthService_ChangePassword(t *testing.T) {
	userUID := uuid.NewString()
	hashed, err := password.GetHash("old-password")
	require.NoError(t, err)

	tests := []struct {
		name       string
		oldPass    string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:    "successful change",
			oldPass: "old-password",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, userUID).Return(&models.User{
					UID:          userUID,
					PasswordHash: hashed,
				}, nil).Once()
				r.On("UpdatePasswordHash", mock.Anything, userUID, mock.MatchedBy(func(hash string) bool {
					return password.CompareHash(hash, "new-password") == nil
				})).Return(nil).Once()
			},
		},
		{
			name:    "wrong old password",
			oldPass: "not-the-old-password",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUser", mock.Anything, userUID).Return(&models.User{
					UID:          userUID,
					PasswordHash: hashed,
				}, nil).Once()
			},
			wantErr: services.ErrWrongOldPassword,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			jwtMock := new(JwtMakerMock)
			tt.setupMocks(repo)
			svc := services.NewAuthService(repo, jwtMock)

			err := svc.ChangePassword(context.Background(), userUID, tt.oldPass, "new-password")
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			repo.AssertExpectations(t)
		})
	}
}
