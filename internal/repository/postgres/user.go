package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/room-service/internal/domain"
)

// UserRepository реализует repository.UserRepository для PostgreSQL.
// Чтения всегда идут в БД и строго консистентны, поэтому флаг forceFresh
// здесь не меняет поведение; он значим для кеширующих реализаций.
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID получает пользователя по ID
func (r *UserRepository) GetByID(ctx context.Context, userID uint64, _ bool) (*domain.User, error) {
	query := `
		SELECT id, name, auth_code, room_id, is_admin, created_at
		FROM users
		WHERE id = $1
	`

	return r.scanUser(r.db.QueryRow(ctx, query, userID), "id")
}

// GetByCode получает пользователя по коду авторизации
func (r *UserRepository) GetByCode(ctx context.Context, authCode string, _ bool) (*domain.User, error) {
	query := `
		SELECT id, name, auth_code, room_id, is_admin, created_at
		FROM users
		WHERE auth_code = $1
	`

	return r.scanUser(r.db.QueryRow(ctx, query, authCode), "userCode")
}

// scanUser читает пользователя из строки результата
func (r *UserRepository) scanUser(row pgx.Row, notFoundField string) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.AuthCode,
		&user.RoomID,
		&user.IsAdmin,
		&user.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError(notFoundField, "user not found")
		}
		return nil, err
	}

	return &user, nil
}
