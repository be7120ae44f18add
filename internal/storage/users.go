package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/magabrotheeeer/blog-platform/internal/models"
)

const userColumns = `uid, email, name, bio, avatar, password_hash, role,
			      refresh_token_hash, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	var bio, avatar, refreshHash sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.Name, &bio, &avatar, &u.PasswordHash,
		&u.Role, &refreshHash, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	if bio.Valid {
		u.Bio = &bio.String
	}
	if avatar.Valid {
		u.Avatar = &avatar.String
	}
	if refreshHash.Valid {
		u.RefreshTokenHash = &refreshHash.String
	}
	return u, nil
}

// CreateUser сохраняет нового пользователя в базу данных и возвращает его UID.
// Нарушение уникальности email приводит к ErrAlreadyExists.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, name, bio, avatar, password_hash, role)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.Name, user.Bio, user.Avatar, user.PasswordHash,
		user.Role).Scan(&newUID); err != nil {
		return "", wrapErr(op, err)
	}
	return newUID, nil
}

// GetUserByEmail возвращает пользователя по email. Сравнение регистрозависимое:
// email хранится и ищется ровно в том виде, в котором был передан.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// ListUsers возвращает список всех пользователей с пагинацией.
func (s *Storage) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	const op = "storage.ListUsers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + `
			  FROM users
			  ORDER BY created_at DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateUser частично обновляет профиль пользователя: nil-поля не изменяются.
func (s *Storage) UpdateUser(ctx context.Context, userUID string, upd models.DummyUpdateUser) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = COALESCE($2, name),
			      bio = COALESCE($3, bio),
			      avatar = COALESCE($4, avatar),
			      updated_at = NOW()
			  WHERE uid = $1
			  RETURNING ` + userColumns
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, userUID, upd.Name, upd.Bio, upd.Avatar))
	if err != nil {
		return nil, wrapErr(op, err)
	}
	return u, nil
}

// UpdatePasswordHash заменяет хэш пароля пользователя.
func (s *Storage) UpdatePasswordHash(ctx context.Context, userUID, passwordHash string) error {
	const op = "storage.UpdatePasswordHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET password_hash = $1, updated_at = NOW()
			  WHERE uid = $2`
	result, err := s.DB.ExecContext(ctx, query, passwordHash, userUID)
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

// SetRefreshTokenHash безусловно заменяет хэш refresh-токена пользователя.
// nil очищает хэш (logout). У пользователя всегда не более одного живого хэша.
func (s *Storage) SetRefreshTokenHash(ctx context.Context, userUID string, hash *string) error {
	const op = "storage.SetRefreshTokenHash"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET refresh_token_hash = $1, updated_at = NOW()
			  WHERE uid = $2`
	_, err := s.DB.ExecContext(ctx, query, hash, userUID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// RotateRefreshTokenHash заменяет хэш refresh-токена только если текущее
// значение в базе совпадает с прочитанным на этапе проверки. Возвращает
// количество обновлённых строк: 0 означает, что хэш уже был заменён или
// очищен конкурирующим запросом, и ротация должна быть отклонена.
func (s *Storage) RotateRefreshTokenHash(ctx context.Context, userUID, currentHash, newHash string) (int, error) {
	const op = "storage.RotateRefreshTokenHash"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET refresh_token_hash = $1, updated_at = NOW()
			  WHERE uid = $2 AND refresh_token_hash = $3`
	result, err := s.DB.ExecContext(ctx, query, newHash, userUID, currentHash)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteUser удаляет пользователя по UID и возвращает количество удалённых строк.
func (s *Storage) DeleteUser(ctx context.Context, userUID string) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM users WHERE uid = $1`
	result, err := s.DB.ExecContext(ctx, query, userUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
