package models

import "time"

// Comment представляет комментарий пользователя к публикации.
type Comment struct {
	ID        int       `json:"id"`
	Content   string    `json:"content"`
	AuthorUID string    `json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	PostID    int       `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DummyComment используется для приёма данных комментария из JSON-запроса.
type DummyComment struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
	PostID  int    `json:"post_id" validate:"required,gt=0"`
}

// DummyUpdateComment используется для обновления текста комментария.
type DummyUpdateComment struct {
	Content string `json:"content" validate:"required,min=1,max=2000"`
}

// CommentFilter представляет параметры фильтрации списка комментариев.
type CommentFilter struct {
	PostID    *int    // nil — комментарии ко всем публикациям
	AuthorUID *string // nil — комментарии всех авторов
	Limit     int
	Offset    int
}
