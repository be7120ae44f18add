// Package jwt реализует генерацию и парсинг пар JWT токенов (access + refresh)
// с пользовательскими claim полями.
//
// Maker определяет интерфейс для создания пары токенов и проверки каждого из них.
// MakerImpl — конкретная реализация с двумя независимыми секретными ключами:
// access-токен никогда не может быть предъявлен как refresh-токен и наоборот.
package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims описывает данные, хранящиеся в access-токене.
// Идентификатор пользователя лежит в стандартном поле Subject.
type AccessClaims struct {
	Email                string `json:"email"` // Электронная почта пользователя
	Role                 string `json:"role"`  // Роль пользователя
	jwt.RegisteredClaims        // Встроенные стандартные claims JWT (ExpiresAt, IssuedAt и пр.)
}

// RefreshClaims описывает данные, хранящиеся в refresh-токене.
// Роль в refresh-токен намеренно не включается.
type RefreshClaims struct {
	Email                string `json:"email"`
	jwt.RegisteredClaims
}

// Maker описывает интерфейс для генерации и парсинга пар JWT токенов.
type Maker interface {
	// GeneratePair создает пару access + refresh токенов для пользователя.
	GeneratePair(userUID, email, role string) (access, refresh string, err error)
	// ParseAccess возвращает *AccessClaims, если access-токен корректен.
	ParseAccess(tokenStr string) (*AccessClaims, error)
	// ParseRefresh возвращает *RefreshClaims, если refresh-токен корректен.
	ParseRefresh(tokenStr string) (*RefreshClaims, error)
}

// MakerImpl реализует интерфейс Maker с использованием раздельных
// секретных ключей и времени жизни для access и refresh токенов.
type MakerImpl struct {
	accessSecret  string        // Секретный ключ для подписи access-токенов
	refreshSecret string        // Секретный ключ для подписи refresh-токенов
	accessTTL     time.Duration // Время жизни access-токена
	refreshTTL    time.Duration // Время жизни refresh-токена
}

// NewJWTMaker создаёт новый экземпляр MakerImpl на основе пары секретов и TTL.
func NewJWTMaker(accessSecret, refreshSecret string, accessTTL, refreshTTL time.Duration) *MakerImpl {
	return &MakerImpl{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}
