// Package models содержит доменные структуры, описывающие публикации,
// а также вспомогательные типы для работы с данными из внешних источников
// (например, JSON-запросы).
package models

import "time"

// Post представляет собой публикацию пользователя.
// Slug генерируется из заголовка при создании и уникален в рамках таблицы.
type Post struct {
	ID         int       `json:"id"`
	Slug       string    `json:"slug"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Thumbnail  *string   `json:"thumbnail"` // URL обложки (опционально)
	Published  bool      `json:"published"`
	Views      int       `json:"views"`
	AuthorUID  string    `json:"author_id"`
	Author     *User     `json:"author,omitempty"` // Автор, если запрошен вместе с публикацией
	Tags       []*Tag    `json:"tags,omitempty"`
	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// DummyPost используется для приёма данных публикации из JSON-запроса,
// прежде чем конвертировать их в Post.
type DummyPost struct {
	Title     string  `json:"title" validate:"required,min=3,max=200"`
	Content   string  `json:"content" validate:"required"`
	Thumbnail *string `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Published bool    `json:"published"`
	TagIDs    []int   `json:"tag_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// DummyUpdatePost используется для частичного обновления публикации.
// nil-поля не изменяются.
type DummyUpdatePost struct {
	Title     *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
	Content   *string `json:"content,omitempty"`
	Thumbnail *string `json:"thumbnail,omitempty" validate:"omitempty,url"`
	Published *bool   `json:"published,omitempty"`
	TagIDs    []int   `json:"tag_ids,omitempty" validate:"omitempty,dive,gt=0"`
}

// PostFilter представляет параметры фильтрации списка публикаций,
// которые передаются в слой доступа к данным.
type PostFilter struct {
	Published *bool   // nil — без фильтра по статусу публикации
	AuthorUID *string // nil — публикации всех авторов
	TagID     *int    // nil — без фильтра по тегу
	Search    *string // Подстрока в заголовке или тексте
	Limit     int
	Offset    int
}
