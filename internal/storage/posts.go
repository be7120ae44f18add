package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

const postColumns = `p.id, p.slug, p.title, p.content, p.thumbnail, p.published,
			      p.views, p.author_uid, p.created_at, p.updated_at`

func scanPost(row interface{ Scan(...any) error }) (*models.Post, error) {
	p := &models.Post{}
	var thumbnail sql.NullString
	var likes int
	var authorName, authorEmail string
	if err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Content, &thumbnail, &p.Published,
		&p.Views, &p.AuthorUID, &p.CreatedAt, &p.UpdatedAt,
		&likes, &authorName, &authorEmail); err != nil {
		return nil, err
	}
	if thumbnail.Valid {
		p.Thumbnail = &thumbnail.String
	}
	p.LikesCount = likes
	p.Author = &models.User{UID: p.AuthorUID, Name: authorName, Email: authorEmail}
	return p, nil
}

// CreatePost вставляет новую публикацию и привязывает теги в одной транзакции.
// Возвращает ID созданной записи.
func (s *Storage) CreatePost(ctx context.Context, post models.Post, tagIDs []int) (int, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `INSERT INTO posts (slug, title, content, thumbnail, published, author_uid)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	if err := tx.QueryRowContext(ctx, query,
		post.Slug, post.Title, post.Content, post.Thumbnail, post.Published,
		post.AuthorUID).Scan(&newID); err != nil {
		return 0, wrapErr(op, err)
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
			newID, tagID); err != nil {
			return 0, wrapErr(op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// GetPost возвращает публикацию по ID вместе с автором, тегами и числом лайков.
func (s *Storage) GetPost(ctx context.Context, id int) (*models.Post, error) {
	const op = "storage.GetPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `,
			      (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
			      u.name, u.email
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.id = $1`
	p, err := scanPost(s.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if p.Tags, err = s.listPostTags(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// GetPostBySlug возвращает публикацию по её slug.
func (s *Storage) GetPostBySlug(ctx context.Context, slug string) (*models.Post, error) {
	const op = "storage.GetPostBySlug"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `,
			      (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
			      u.name, u.email
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.slug = $1`
	p, err := scanPost(s.DB.QueryRowContext(ctx, query, slug))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	if p.Tags, err = s.listPostTags(ctx, p.ID); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

// PostExists проверяет существование публикации по ID.
func (s *Storage) PostExists(ctx context.Context, id int) (bool, error) {
	const op = "storage.PostExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	err := s.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM posts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListPosts возвращает страницу публикаций по фильтру и общее число записей,
// попадающих под фильтр. Условия собираются динамически из непустых полей.
func (s *Storage) ListPosts(ctx context.Context, filter models.PostFilter) ([]*models.Post, int, error) {
	const op = "storage.ListPosts"
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
	if filter.Published != nil {
		conds = append(conds, "p.published = "+arg(*filter.Published))
	}
	if filter.AuthorUID != nil {
		conds = append(conds, "p.author_uid = "+arg(*filter.AuthorUID))
	}
	if filter.TagID != nil {
		conds = append(conds, "EXISTS (SELECT 1 FROM post_tags pt WHERE pt.post_id = p.id AND pt.tag_id = "+arg(*filter.TagID)+")")
	}
	if filter.Search != nil {
		ph := arg("%" + *filter.Search + "%")
		conds = append(conds, "(p.title ILIKE "+ph+" OR p.content ILIKE "+ph+")")
	}
	where := strings.Join(conds, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM posts p WHERE ` + where
	if err := s.DB.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}

	query := `SELECT ` + postColumns + `,
			      (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
			      u.name, u.email
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE ` + where + `
			  ORDER BY p.created_at DESC
			  LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset)
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", op, err)
	}
	return result, total, nil
}

// PopularPosts возвращает опубликованные публикации, отсортированные по числу лайков.
func (s *Storage) PopularPosts(ctx context.Context, limit int) ([]*models.Post, error) {
	const op = "storage.PopularPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `,
			      (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
			      u.name, u.email
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.published = true
			  ORDER BY likes_count DESC, p.created_at DESC
			  LIMIT $1`
	rows, err := s.DB.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdatePost обновляет публикацию по ID только для её автора: nil-поля
// не изменяются. Возвращает количество обновлённых строк — 0 означает,
// что публикации нет или она принадлежит другому пользователю.
func (s *Storage) UpdatePost(ctx context.Context, id int, authorUID string, upd models.DummyUpdatePost) (int, error) {
	const op = "storage.UpdatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `UPDATE posts
			  SET title = COALESCE($3, title),
			      content = COALESCE($4, content),
			      thumbnail = COALESCE($5, thumbnail),
			      published = COALESCE($6, published),
			      updated_at = NOW()
			  WHERE id = $1 AND author_uid = $2`
	result, err := tx.ExecContext(ctx, query, id, authorUID,
		upd.Title, upd.Content, upd.Thumbnail, upd.Published)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	if rowsAffected > 0 && upd.TagIDs != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, id); err != nil {
			return 0, fmt.Errorf("%s: %w", op, err)
		}
		for _, tagID := range upd.TagIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
				id, tagID); err != nil {
				return 0, wrapErr(op, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeletePost удаляет публикацию только для её автора и возвращает
// количество удалённых строк.
func (s *Storage) DeletePost(ctx context.Context, id int, authorUID string) (int, error) {
	const op = "storage.DeletePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM posts WHERE id = $1 AND author_uid = $2`
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

// IncrementViews увеличивает счётчик просмотров публикации.
func (s *Storage) IncrementViews(ctx context.Context, id int) error {
	const op = "storage.IncrementViews"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx,
		`UPDATE posts SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}

// PostsByAuthor возвращает публикации пользователя, отсортированные по дате.
func (s *Storage) PostsByAuthor(ctx context.Context, authorUID string) ([]*models.Post, error) {
	const op = "storage.PostsByAuthor"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `,
			      (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS likes_count,
			      u.name, u.email
			  FROM posts p
			  JOIN users u ON u.uid = p.author_uid
			  WHERE p.author_uid = $1
			  ORDER BY p.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, authorUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) listPostTags(ctx context.Context, postID int) ([]*models.Tag, error) {
	query := `SELECT t.id, t.name
			  FROM tags t
			  JOIN post_tags pt ON pt.tag_id = t.id
			  WHERE pt.post_id = $1
			  ORDER BY t.name`
	rows, err := s.DB.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, err
		}
		result = append(result, &t)
	}
	return result, rows.Err()
}
