package storage

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

// CreateLike вставляет отметку "нравится" и возвращает её ID.
// Повторный лайк той же публикации приводит к ErrAlreadyExists.
func (s *Storage) CreateLike(ctx context.Context, userUID string, postID int) (int, error) {
	const op = "storage.CreateLike"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO likes (user_uid, post_id)
			  VALUES ($1, $2)
			  RETURNING id`
	var newID int
	if err := s.DB.QueryRowContext(ctx, query, userUID, postID).Scan(&newID); err != nil {
		return 0, wrapErr(op, err)
	}
	return newID, nil
}

// DeleteLike удаляет лайк пользователя с публикации и возвращает
// количество удалённых строк.
func (s *Storage) DeleteLike(ctx context.Context, userUID string, postID int) (int, error) {
	const op = "storage.DeleteLike"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM likes WHERE user_uid = $1 AND post_id = $2`
	result, err := s.DB.ExecContext(ctx, query, userUID, postID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListLikes возвращает страницу лайков по фильтру и общее число записей.
func (s *Storage) ListLikes(ctx context.Context, filter models.LikeFilter) ([]*models.Like, int, error) {
	const op = "storage.ListLikes"
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
	if filter.UserUID != nil {
		conds = append(conds, "l.user_uid = "+arg(*filter.UserUID))
	}
	if filter.PostID != nil {
		conds = append(conds, "l.post_id = "+arg(*filter.PostID))
	}
	where := strings.Join(conds, " AND ")

	var total int
	if err := s.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM likes l WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT l.id, l.user_uid, l.post_id, l.created_at, u.name, u.email
			  FROM likes l
			  JOIN users u ON u.uid = l.user_uid
			  WHERE ` + where + `
			  ORDER BY l.created_at DESC
			  LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Like
	for rows.Next() {
		l := &models.Like{}
		var name, email string
		if err := rows.Scan(&l.ID, &l.UserUID, &l.PostID, &l.CreatedAt, &name, &email); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		l.User = &models.User{UID: l.UserUID, Name: name, Email: email}
		result = append(result, l)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}
