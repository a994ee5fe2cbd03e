package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/room-service/internal/domain"
)

// RoomRepository реализует repository.RoomRepository для PostgreSQL
type RoomRepository struct {
	db *pgxpool.Pool
}

// NewRoomRepository создает новый экземпляр RoomRepository
func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{db: db}
}

// Create создает комнату вместе с её администратором
func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx) // Ignore error as it will fail if transaction was committed
	}()

	roomQuery := `
		INSERT INTO rooms (name, code, version)
		VALUES ($1, $2, 1)
		RETURNING id, version, created_at
	`

	err = tx.QueryRow(ctx, roomQuery, room.Name, room.Code).Scan(&room.ID, &room.Version, &room.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return domain.NewBadRequestError("code", "room code is already taken")
		}
		return err
	}

	userQuery := `
		INSERT INTO users (name, auth_code, room_id, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	for i := range room.Users {
		user := &room.Users[i]
		user.RoomID = room.ID
		err = tx.QueryRow(ctx, userQuery, user.Name, user.AuthCode, user.RoomID, user.IsAdmin).
			Scan(&user.ID, &user.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// GetByCode получает комнату по коду приглашения
func (r *RoomRepository) GetByCode(ctx context.Context, code string) (*domain.Room, error) {
	query := `
		SELECT id, name, code, closed_on, version, created_at
		FROM rooms
		WHERE code = $1
	`

	return r.getRoom(ctx, query, code, "roomCode")
}

// GetByUserCode получает комнату, которой принадлежит пользователь с указанным кодом авторизации
func (r *RoomRepository) GetByUserCode(ctx context.Context, authCode string) (*domain.Room, error) {
	query := `
		SELECT r.id, r.name, r.code, r.closed_on, r.version, r.created_at
		FROM rooms r
		INNER JOIN users u ON u.room_id = r.id
		WHERE u.auth_code = $1
	`

	return r.getRoom(ctx, query, authCode, "userCode")
}

// getRoom загружает комнату одним запросом и всех её участников вторым
func (r *RoomRepository) getRoom(ctx context.Context, query string, arg any, notFoundField string) (*domain.Room, error) {
	var room domain.Room
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&room.ID,
		&room.Name,
		&room.Code,
		&room.ClosedOn,
		&room.Version,
		&room.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError(notFoundField, "room not found")
		}
		return nil, err
	}

	usersQuery := `
		SELECT id, name, auth_code, room_id, is_admin, created_at
		FROM users
		WHERE room_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(ctx, usersQuery, room.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Name, &user.AuthCode, &user.RoomID, &user.IsAdmin, &user.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	room.Users = users
	return &room, nil
}

// AddUser добавляет участника в комнату
func (r *RoomRepository) AddUser(ctx context.Context, roomID uint64, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (name, auth_code, room_id, is_admin)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	user.RoomID = roomID
	err := r.db.QueryRow(ctx, query, user.Name, user.AuthCode, roomID, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return nil, domain.NewNotFoundError("roomCode", "room not found")
		}
		return nil, err
	}

	return user, nil
}

// Update сохраняет агрегат комнаты целиком.
// Версия комнаты проверяется оптимистически: если конкурирующий запрос успел
// обновить ту же комнату, запись отклоняется ошибкой ErrConcurrentUpdate.
func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	roomQuery := `
		UPDATE rooms
		SET name = $1, closed_on = $2, version = version + 1, updated_at = NOW()
		WHERE id = $3 AND version = $4
	`

	result, err := tx.Exec(ctx, roomQuery, room.Name, room.ClosedOn, room.ID, room.Version)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrConcurrentUpdate
	}

	// Участники, отсутствующие в агрегате, были удалены из комнаты
	memberIDs := make([]int64, 0, len(room.Users))
	for _, user := range room.Users {
		memberIDs = append(memberIDs, int64(user.ID))
	}

	deleteQuery := `
		DELETE FROM users
		WHERE room_id = $1 AND NOT (id = ANY($2))
	`

	if _, err := tx.Exec(ctx, deleteQuery, room.ID, memberIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	room.Version++
	return nil
}
