package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

const commentColumns = `c.id, c.content, c.author_uid, c.post_id, c.created_at, c.updated_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	c := &models.Comment{}
	var authorName, authorEmail string
	if err := row.Scan(&c.ID, &c.Content, &c.AuthorUID, &c.PostID,
		&c.CreatedAt, &c.UpdatedAt, &authorName, &authorEmail); err != nil {
		return nil, err
	}
	c.Author = &models.User{UID: c.AuthorUID, Name: authorName, Email: authorEmail}
	return c, nil
}

// CreateComment вставляет новый комментарий и возвращает его ID.
func (s *Storage) CreateComment(ctx context.Context, comment models.Comment) (int, error) {
	const op = "storage.CreateComment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO comments (content, author_uid, post_id)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query,
		comment.Content, comment.AuthorUID, comment.PostID).Scan(&newID); err != nil {
		return 0, wrapErr(op, err)
	}
	return newID, nil
}

// GetComment возвращает комментарий по ID вместе с автором.
func (s *Storage) GetComment(ctx context.Context, id int) (*models.Comment, error) {
	const op = "storage.GetComment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + commentColumns + `, u.name, u.email
			  FROM comments c
			  JOIN users u ON u.uid = c.author_uid
			  WHERE c.id = $1`
	c, err := scanComment(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return c, nil
}

// ListComments возвращает страницу комментариев по фильтру и общее число записей.
func (s *Storage) ListComments(ctx context.Context, filter models.CommentFilter) ([]*models.Comment, int, error) {
	const op = "storage.ListComments"
	select {
	case <-ctx.Done():
		return nil, 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	conds := []string{"1=1"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}
	if filter.PostID != nil {
		conds = append(conds, "c.post_id = "+arg(*filter.PostID))
	}
	if filter.AuthorUID != nil {
		conds = append(conds, "c.author_uid = "+arg(*filter.AuthorUID))
	}
	where := strings.Join(conds, " AND ")

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM comments c WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + commentColumns + `, u.name, u.email
			  FROM comments c
			  JOIN users u ON u.uid = c.author_uid
			  WHERE ` + where + `
			  ORDER BY c.created_at DESC
			  LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, c)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// UpdateComment обновляет текст комментария только для его автора.
// Возвращает количество обновлённых строк.
func (s *Storage) UpdateComment(ctx context.Context, id int, authorUID, content string) (int, error) {
	const op = "storage.UpdateComment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE comments
			  SET content = $1, updated_at = NOW()
			  WHERE id = $2 AND author_uid = $3`
	result, err := s.DB.ExecContext(ctx, query, content, id, authorUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteComment удаляет комментарий только для его автора и возвращает
// количество удалённых строк.
func (s *Storage) DeleteComment(ctx context.Context, id int, authorUID string) (int, error) {
	const op = "storage.DeleteComment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM comments WHERE id = $1 AND author_uid = $2`
	result, err := s.DB.ExecContext(ctx, query, id, authorUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// CommentExists проверяет существование комментария по ID.
func (s *Storage) CommentExists(ctx context.Context, id int) (bool, error) {
	const op = "storage.CommentExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM comments WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}
