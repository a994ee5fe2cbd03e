package service

import (
	"context"

	"github.com/aidar/room-service/internal/domain"
	"github.com/aidar/room-service/internal/repository"
)

// UserService handles business logic for room participants
type UserService struct {
	userRepo repository.UserRepository
	roomRepo repository.RoomRepository
}

// NewUserService creates a new UserService
func NewUserService(userRepo repository.UserRepository, roomRepo repository.RoomRepository) *UserService {
	return &UserService{
		userRepo: userRepo,
		roomRepo: roomRepo,
	}
}

// DeleteUser removes a participant from the acting user's room.
// Checks run in a fixed order and the first failure wins: target lookup,
// actor lookup, admin capability, same-room check, self-deletion guard,
// then the aggregate mutation and the write-back. Both user lookups demand
// fresh reads so the authorization decision never relies on stale data.
func (s *UserService) DeleteUser(ctx context.Context, actingUserCode string, targetUserID uint64) error {
	target, err := s.userRepo.GetByID(ctx, targetUserID, true)
	if err != nil {
		return err
	}

	actor, err := s.userRepo.GetByCode(ctx, actingUserCode, true)
	if err != nil {
		return err
	}

	if !actor.IsAdmin {
		return domain.NewForbiddenError("userCode", "only an admin may remove participants")
	}

	if actor.RoomID != target.RoomID {
		return domain.NewNotAuthorizedError("id", "acting user and target belong to different rooms")
	}

	if actor.ID == target.ID {
		return domain.NewBadRequestError("id", "an admin cannot remove itself")
	}

	room, err := s.roomRepo.GetByUserCode(ctx, actingUserCode)
	if err != nil {
		return err
	}

	if err := room.RemoveUser(targetUserID); err != nil {
		return err
	}

	if err := s.roomRepo.Update(ctx, room); err != nil {
		return domain.NewBadRequestError("", err.Error())
	}

	return nil
}
