package service

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Stats represents overall service statistics
type Stats struct {
	TotalRooms  int `json:"total_rooms"`
	OpenRooms   int `json:"open_rooms"`
	ClosedRooms int `json:"closed_rooms"`
	TotalUsers  int `json:"total_users"`
	Admins      int `json:"admins"`
}

// StatsService handles statistics queries
type StatsService struct {
	db *pgxpool.Pool
}

// NewStatsService creates a new StatsService
func NewStatsService(db *pgxpool.Pool) *StatsService {
	return &StatsService{db: db}
}

// GetStats returns overall statistics
func (s *StatsService) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	roomQuery := `
		SELECT
			COUNT(*) as total_rooms,
			COUNT(CASE WHEN closed_on IS NULL THEN 1 END) as open_rooms,
			COUNT(CASE WHEN closed_on IS NOT NULL THEN 1 END) as closed_rooms
		FROM rooms
	`

	if err := s.db.QueryRow(ctx, roomQuery).Scan(
		&stats.TotalRooms,
		&stats.OpenRooms,
		&stats.ClosedRooms,
	); err != nil {
		return nil, err
	}

	userQuery := `
		SELECT
			COUNT(*) as total_users,
			COUNT(CASE WHEN is_admin THEN 1 END) as admins
		FROM users
	`

	if err := s.db.QueryRow(ctx, userQuery).Scan(
		&stats.TotalUsers,
		&stats.Admins,
	); err != nil {
		return nil, err
	}

	return stats, nil
}
