package storage

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// CreateTag вставляет новый тег и возвращает его ID.
// Повторное имя приводит к ErrAlreadyExists.
func (s *Storage) CreateTag(ctx context.Context, name string) (int, error) {
	const op = "storage.CreateTag"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO tags (name) VALUES ($1) RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, name).Scan(&newID); err != nil {
		return 0, wrapErr(op, err)
	}
	return newID, nil
}

// GetTag возвращает тег по ID.
func (s *Storage) GetTag(ctx context.Context, id int) (*models.Tag, error) {
	const op = "storage.GetTag"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var t models.Tag
	query := `SELECT id, name FROM tags WHERE id = $1`
	if err := s.DB.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.Name); err != nil {
		return nil, wrapErr(op, err)
	}
	return &t, nil
}

// GetTagByName возвращает тег по имени (точное совпадение).
func (s *Storage) GetTagByName(ctx context.Context, name string) (*models.Tag, error) {
	const op = "storage.GetTagByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var t models.Tag
	query := `SELECT id, name FROM tags WHERE name = $1`
	if err := s.DB.QueryRowContext(ctx, query, name).Scan(&t.ID, &t.Name); err != nil {
		return nil, wrapErr(op, err)
	}
	return &t, nil
}

// ListTags возвращает все теги, отсортированные по имени.
func (s *Storage) ListTags(ctx context.Context) ([]*models.Tag, error) {
	const op = "storage.ListTags"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM tags ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// PopularTags возвращает теги, отсортированные по числу связанных публикаций.
func (s *Storage) PopularTags(ctx context.Context, limit int) ([]*models.Tag, error) {
	const op = "storage.PopularTags"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT t.id, t.name, COUNT(pt.post_id) AS posts_count
			  FROM tags t
			  LEFT JOIN post_tags pt ON pt.tag_id = t.id
			  GROUP BY t.id, t.name
			  ORDER BY posts_count DESC, t.name
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.PostsCount); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// DeleteTag удаляет тег по ID и возвращает количество удалённых строк.
// Связи в post_tags удаляются каскадно.
func (s *Storage) DeleteTag(ctx context.Context, id int) (int, error) {
	const op = "storage.DeleteTag"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
