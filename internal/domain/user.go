package domain

import "time"

// User представляет участника комнаты
type User struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	AuthCode  string     `json:"-"`
	RoomID    uint64     `json:"room_id"`
	IsAdmin   bool       `json:"is_admin"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}
