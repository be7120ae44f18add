// Package password реализует функции для безопасного хеширования и проверки
// паролей и refresh-токенов.
//
// GetHash и CompareHash работают с паролями напрямую.
// GetTokenHash и CompareTokenHash предназначены для refresh-токенов: bcrypt
// принимает не более 72 байт, а подписанный JWT значительно длиннее, поэтому
// токен сначала сворачивается в SHA-256.
package password

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// GetHash принимает пароль и возвращает его bcrypt‑хэш.
//
// Используется для безопасного хранения паролей в базе данных.
func GetHash(secret string) (string, error) {
	const op = "password.GetHash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareHash сравнивает bcrypt‑хэш с введённым значением.
//
// Возвращает nil, если значение соответствует хэшу, иначе — ошибку.
func CompareHash(originalHash, external string) error {
	const op = "password.CompareHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(external)); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetTokenHash возвращает bcrypt-хэш refresh-токена. Токен предварительно
// сворачивается в hex от SHA-256: сам JWT длиннее лимита bcrypt в 72 байта.
func GetTokenHash(token string) (string, error) {
	const op = "password.GetTokenHash"
	hashed, err := bcrypt.GenerateFromPassword([]byte(digest(token)), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return string(hashed), nil
}

// CompareTokenHash сравнивает хэш, полученный через GetTokenHash, с токеном.
func CompareTokenHash(originalHash, token string) error {
	const op = "password.CompareTokenHash"
	if err := bcrypt.CompareHashAndPassword([]byte(originalHash), []byte(digest(token))); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func digest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
