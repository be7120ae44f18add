// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/blog-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/blog-platform/internal/lib/password"
	"github.com/magabrotheeeer/blog-platform/internal/models"
	"github.com/magabrotheeeer/blog-platform/internal/storage"
)

// Ошибки бизнес-уровня. Обработчики транслируют их в HTTP-статусы.
var (
	// ErrEmailTaken возвращается при попытке регистрации с занятым email.
	ErrEmailTaken = errors.New("email already taken")
	// ErrInvalidCredentials возвращается при неверной паре email/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidRefreshToken возвращается при любом отказе в обновлении пары токенов.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrWrongOldPassword возвращается при смене пароля с неверным текущим паролем.
	ErrWrongOldPassword = errors.New("wrong old password")
	// ErrUserNotFound возвращается, если пользователь с валидным токеном уже удалён.
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по email или storage.ErrNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или storage.ErrNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdatePasswordHash заменяет хэш пароля пользователя.
	UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error

	// SetRefreshTokenHash безусловно записывает хэш refresh-токена (nil — сброс).
	SetRefreshTokenHash(ctx context.Context, userUID string, hash *string) error

	// RotateRefreshTokenHash заменяет хэш только если текущее значение совпадает
	// с currentHash, возвращает число обновлённых строк.
	RotateRefreshTokenHash(ctx context.Context, userUID, currentHash, newHash string) (int, error)
}

// AuthService отвечает за регистрацию, вход, выход и ротацию refresh-токенов.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной ролью
// USER, затем сразу открывает сессию: выдает пару токенов и сохраняет хэш
// refresh-токена.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegister) (*models.User, *models.TokenPair, error) {
	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return nil, nil, err
	}
	newUser := models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hashed,
		Role:         models.RoleUser, // дефолтная роль при регистрации
	}
	uid, err := s.users.CreateUser(ctx, newUser)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}
	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, nil, err
	}

	pair, refreshHash, err := s.generatePair(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.SetRefreshTokenHash(ctx, user.UID, &refreshHash); err != nil {
		return nil, nil, err
	}
	return sanitize(user), pair, nil
}

// Login проверяет пароль и выдает новую пару access/refresh токенов.
// Хэш refresh-токена сохраняется в базе, перезаписывая предыдущую сессию.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, *models.TokenPair, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, refreshHash, err := s.generatePair(user)
	if err != nil {
		return nil, nil, err
	}
	if err := s.users.SetRefreshTokenHash(ctx, user.UID, &refreshHash); err != nil {
		return nil, nil, err
	}
	return sanitize(user), pair, nil
}

// Logout сбрасывает сохранённый хэш refresh-токена. Повторный выход не ошибка.
func (s *AuthService) Logout(ctx context.Context, userUID string) error {
	return s.users.SetRefreshTokenHash(ctx, userUID, nil)
}

// Refresh проверяет refresh-токен и атомарно ротирует пару токенов.
// Любая причина отказа схлопывается в ErrInvalidRefreshToken, чтобы не
// раскрывать, что именно не совпало. Ротация защищена от гонки: замена
// хэша выполняется только при совпадении с текущим значением.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*models.User, *models.TokenPair, error) {
	const op = "services.AuthService.Refresh"

	claims, err := s.jwtMaker.ParseRefresh(refreshToken)
	if err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	userUID := claims.Subject
	if _, err := uuid.Parse(userUID); err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil, ErrInvalidRefreshToken
		}
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if user.RefreshTokenHash == nil {
		return nil, nil, ErrInvalidRefreshToken
	}
	if err := password.CompareTokenHash(*user.RefreshTokenHash, refreshToken); err != nil {
		return nil, nil, ErrInvalidRefreshToken
	}

	pair, newHash, err := s.generatePair(user)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	count, err := s.users.RotateRefreshTokenHash(ctx, user.UID, *user.RefreshTokenHash, newHash)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		// параллельный refresh или logout успел первым
		return nil, nil, ErrInvalidRefreshToken
	}
	return sanitize(user), pair, nil
}

// sanitize очищает хэши пароля и refresh-токена перед выдачей пользователя
// наружу. Поля и так помечены json:"-", но за пределы сервиса хэши не выходят
// вовсе.
func sanitize(user *models.User) *models.User {
	user.PasswordHash = ""
	user.RefreshTokenHash = nil
	return user
}

// generatePair выдает подписанную пару токенов и считает bcrypt-хэш
// refresh-токена для сохранения в базе.
func (s *AuthService) generatePair(user *models.User) (*models.TokenPair, string, error) {
	access, refresh, err := s.jwtMaker.GeneratePair(user.UID, user.Email, user.Role)
	if err != nil {
		return nil, "", err
	}
	refreshHash, err := password.GetTokenHash(refresh)
	if err != nil {
		return nil, "", err
	}
	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, refreshHash, nil
}

// ChangePassword меняет пароль после проверки текущего. Активные access-токены
// продолжают действовать до истечения срока.
func (s *AuthService) ChangePassword(ctx context.Context, userUID, oldPassword, newPassword string) error {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return err
	}
	if err := password.CompareHash(user.PasswordHash, oldPassword); err != nil {
		return ErrWrongOldPassword
	}
	hashed, err := password.GetHash(newPassword)
	if err != nil {
		return err
	}
	return s.users.UpdatePasswordHash(ctx, userUID, hashed)
}

// Profile возвращает данные текущего пользователя. Если пользователь удалён
// после выдачи токена, возвращается ErrUserNotFound.
func (s *AuthService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return sanitize(user), nil
}
