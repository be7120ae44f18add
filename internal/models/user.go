// Package models содержит доменную модель пользователя блог-платформы,
// включающую данные учётной записи, хэш пароля и хэш refresh-токена.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// Роли пользователей. Сравнение ролей выполняется по точному совпадению.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash и RefreshTokenHash никогда не сериализуются наружу:
// оба поля помечены json:"-" и остаются на стороне сервера.
type User struct {
	UID              string    `json:"id"`     // Уникальный идентификатор пользователя (uuid)
	Email            string    `json:"email"`  // Электронная почта (уникальная, регистрозависимая)
	Name             string    `json:"name"`   // Отображаемое имя
	Bio              *string   `json:"bio"`    // Краткая биография (опционально)
	Avatar           *string   `json:"avatar"` // URL аватара (опционально)
	PasswordHash     string    `json:"-"`      // bcrypt-хэш пароля
	Role             string    `json:"role"`   // Роль пользователя, USER или ADMIN
	RefreshTokenHash *string   `json:"-"`      // bcrypt-хэш активного refresh-токена, nil — сессии нет
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DummyRegister используется для приёма данных регистрации из JSON-запроса.
type DummyRegister struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
}

// DummyUpdateUser используется для частичного обновления профиля.
// nil-поля не изменяются.
type DummyUpdateUser struct {
	Name   *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Bio    *string `json:"bio,omitempty"`
	Avatar *string `json:"avatar,omitempty" validate:"omitempty,url"`
}

// TokenPair содержит пару подписанных токенов, выдаваемую при регистрации,
// входе и ротации refresh-токена.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
