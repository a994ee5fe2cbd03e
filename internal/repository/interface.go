package repository

import (
	"context"

	"github.com/aidar/room-service/internal/domain"
)

// UserRepository определяет методы для чтения данных пользователей.
// Флаг forceFresh требует строго консистентного чтения; реализации с кешем
// обязаны при forceFresh=true идти мимо кеша в хранилище.
type UserRepository interface {
	// GetByID получает пользователя по ID
	GetByID(ctx context.Context, userID uint64, forceFresh bool) (*domain.User, error)

	// GetByCode получает пользователя по коду авторизации
	GetByCode(ctx context.Context, authCode string, forceFresh bool) (*domain.User, error)
}

// RoomRepository определяет методы для работы с агрегатом комнаты
type RoomRepository interface {
	// Create создает комнату вместе с её администратором
	Create(ctx context.Context, room *domain.Room) error

	// GetByCode получает комнату по коду приглашения
	GetByCode(ctx context.Context, code string) (*domain.Room, error)

	// GetByUserCode получает комнату, которой принадлежит пользователь с указанным кодом авторизации
	GetByUserCode(ctx context.Context, authCode string) (*domain.Room, error)

	// AddUser добавляет участника в комнату
	AddUser(ctx context.Context, roomID uint64, user *domain.User) (*domain.User, error)

	// Update сохраняет агрегат комнаты целиком.
	// Запись атомарна и защищена оптимистической проверкой версии:
	// конкурирующее обновление той же комнаты возвращает ошибку.
	Update(ctx context.Context, room *domain.Room) error
}
