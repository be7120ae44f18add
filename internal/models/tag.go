package models

// Tag представляет тег публикации. Имя тега уникально.
type Tag struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	PostsCount int    `json:"posts_count,omitempty"` // Заполняется при выборке популярных тегов
}

// DummyTag используется для приёма данных тега из JSON-запроса.
type DummyTag struct {
	Name string `json:"name" validate:"required,min=2,max=50"`
}
