package models

import "time"

// Like представляет отметку "нравится" пользователя на публикации.
// Пара (UserUID, PostID) уникальна: повторный лайк невозможен.
type Like struct {
	ID        int       `json:"id"`
	UserUID   string    `json:"user_id"`
	User      *User     `json:"user,omitempty"`
	PostID    int       `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// DummyLike используется для приёма данных лайка из JSON-запроса.
type DummyLike struct {
	PostID int `json:"post_id" validate:"required,gt=0"`
}

// LikeFilter представляет параметры фильтрации списка лайков.
type LikeFilter struct {
	UserUID *string
	PostID  *int
	Limit   int
	Offset  int
}
