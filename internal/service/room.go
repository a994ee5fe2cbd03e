package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/aidar/room-service/internal/domain"
	"github.com/aidar/room-service/internal/repository"
)

// RoomService handles business logic for rooms
type RoomService struct {
	roomRepo repository.RoomRepository
}

// NewRoomService creates a new RoomService
func NewRoomService(roomRepo repository.RoomRepository) *RoomService {
	return &RoomService{
		roomRepo: roomRepo,
	}
}

// CreateRoom creates a new room together with its admin user.
// The room invite code and the admin's authorization code are generated here
// and returned inside the aggregate.
func (s *RoomService) CreateRoom(ctx context.Context, roomName, adminName string) (*domain.Room, error) {
	room := &domain.Room{
		Name: roomName,
		Code: uuid.NewString(),
		Users: []domain.User{
			{
				Name:     adminName,
				AuthCode: uuid.NewString(),
				IsAdmin:  true,
			},
		},
	}

	if err := s.roomRepo.Create(ctx, room); err != nil {
		return nil, err
	}

	return room, nil
}

// JoinRoom adds a participant to the room identified by its invite code
func (s *RoomService) JoinRoom(ctx context.Context, roomCode, userName string) (*domain.User, error) {
	room, err := s.roomRepo.GetByCode(ctx, roomCode)
	if err != nil {
		return nil, err
	}

	user := domain.User{
		Name:     userName,
		AuthCode: uuid.NewString(),
	}

	if err := room.AddUser(user); err != nil {
		return nil, err
	}

	return s.roomRepo.AddUser(ctx, room.ID, &room.Users[len(room.Users)-1])
}

// GetByUserCode retrieves the room owning the user with the given authorization code
func (s *RoomService) GetByUserCode(ctx context.Context, authCode string) (*domain.Room, error) {
	return s.roomRepo.GetByUserCode(ctx, authCode)
}
