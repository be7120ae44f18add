package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GeneratePair создает пару токенов для пользователя: короткоживущий
// access-токен с ролью и долгоживущий refresh-токен без роли.
// Каждый токен подписывается своим секретным ключом. Поле ID (jti)
// делает каждый выданный токен уникальным: две пары, выданные в одну
// и ту же секунду, не совпадают байт в байт, иначе ротация refresh-токена
// не отличала бы старый токен от нового.
func (j *MakerImpl) GeneratePair(userUID, email, role string) (string, string, error) {
	const op = "jwt.GeneratePair"
	now := time.Now()

	accessClaims := AccessClaims{
		Email: email,
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.accessTTL)),
			ID:        uuid.NewString(),
		},
	}
	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(j.accessSecret))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	refreshClaims := RefreshClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userUID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
			ID:        uuid.NewString(),
		},
	}
	refresh, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(j.refreshSecret))
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", op, err)
	}

	return access, refresh, nil
}

// ParseAccess парсит access-токен, проверяет его подпись и срок действия,
// возвращает AccessClaims с данными, если токен корректен.
func (j *MakerImpl) ParseAccess(tokenStr string) (*AccessClaims, error) {
	const op = "jwt.ParseAccess"
	token, err := jwt.ParseWithClaims(tokenStr, &AccessClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.accessSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*AccessClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}

// ParseRefresh парсит refresh-токен, проверяя подпись refresh-секретом.
func (j *MakerImpl) ParseRefresh(tokenStr string) (*RefreshClaims, error) {
	const op = "jwt.ParseRefresh"
	token, err := jwt.ParseWithClaims(tokenStr, &RefreshClaims{}, func(_ *jwt.Token) (any, error) {
		return []byte(j.refreshSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	claims, ok := token.Claims.(*RefreshClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%s: invalid token", op)
	}
	return claims, nil
}
