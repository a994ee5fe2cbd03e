package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/room-service/internal/domain"
)

// fakeUserRepo реализует repository.UserRepository и записывает вызовы
type fakeUserRepo struct {
	usersByID   map[uint64]*domain.User
	usersByCode map[string]*domain.User
	calls       []string
	freshReads  []bool
}

func (f *fakeUserRepo) GetByID(_ context.Context, userID uint64, forceFresh bool) (*domain.User, error) {
	f.calls = append(f.calls, "GetByID")
	f.freshReads = append(f.freshReads, forceFresh)

	user, ok := f.usersByID[userID]
	if !ok {
		return nil, domain.NewNotFoundError("id", "user not found")
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByCode(_ context.Context, authCode string, forceFresh bool) (*domain.User, error) {
	f.calls = append(f.calls, "GetByCode")
	f.freshReads = append(f.freshReads, forceFresh)

	user, ok := f.usersByCode[authCode]
	if !ok {
		return nil, domain.NewNotFoundError("userCode", "user not found")
	}
	copied := *user
	return &copied, nil
}

// fakeRoomRepo реализует repository.RoomRepository и записывает вызовы
type fakeRoomRepo struct {
	room      *domain.Room
	updateErr error
	calls     []string
	updated   *domain.Room
}

func (f *fakeRoomRepo) Create(context.Context, *domain.Room) error {
	f.calls = append(f.calls, "Create")
	return nil
}

func (f *fakeRoomRepo) GetByCode(context.Context, string) (*domain.Room, error) {
	f.calls = append(f.calls, "GetByCode")
	return f.room, nil
}

func (f *fakeRoomRepo) GetByUserCode(_ context.Context, _ string) (*domain.Room, error) {
	f.calls = append(f.calls, "GetByUserCode")
	if f.room == nil {
		return nil, domain.NewNotFoundError("userCode", "room not found")
	}
	return f.room, nil
}

func (f *fakeRoomRepo) AddUser(_ context.Context, _ uint64, user *domain.User) (*domain.User, error) {
	f.calls = append(f.calls, "AddUser")
	return user, nil
}

func (f *fakeRoomRepo) Update(_ context.Context, room *domain.Room) error {
	f.calls = append(f.calls, "Update")
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = room
	return nil
}

func newFixture() (*fakeUserRepo, *fakeRoomRepo, *UserService) {
	admin := &domain.User{ID: 1, Name: "Alice", AuthCode: "admin-code", RoomID: 1, IsAdmin: true}
	member := &domain.User{ID: 2, Name: "Bob", AuthCode: "member-code", RoomID: 1}

	userRepo := &fakeUserRepo{
		usersByID:   map[uint64]*domain.User{1: admin, 2: member},
		usersByCode: map[string]*domain.User{"admin-code": admin, "member-code": member},
	}
	roomRepo := &fakeRoomRepo{
		room: &domain.Room{
			ID:    1,
			Name:  "test room",
			Code:  "room-code",
			Users: []domain.User{*admin, *member},
		},
	}

	return userRepo, roomRepo, NewUserService(userRepo, roomRepo)
}

func requireValidation(t *testing.T, err error, kind domain.ErrorKind, field string) {
	t.Helper()
	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok, "expected a validation error, got %v", err)
	assert.Equal(t, kind, vErr.Kind)
	require.NotEmpty(t, vErr.Fields)
	assert.Equal(t, field, vErr.Fields[0].Field)
}

func TestDeleteUser_Success(t *testing.T) {
	userRepo, roomRepo, svc := newFixture()

	err := svc.DeleteUser(context.Background(), "admin-code", 2)

	require.NoError(t, err)
	assert.Equal(t, []string{"GetByID", "GetByCode"}, userRepo.calls)
	assert.Equal(t, []string{"GetByUserCode", "Update"}, roomRepo.calls)

	// Агрегат ушел на запись уже без удаленного участника
	require.NotNil(t, roomRepo.updated)
	require.Len(t, roomRepo.updated.Users, 1)
	assert.Equal(t, uint64(1), roomRepo.updated.Users[0].ID)
}

func TestDeleteUser_LookupsDemandFreshReads(t *testing.T) {
	userRepo, _, svc := newFixture()

	err := svc.DeleteUser(context.Background(), "admin-code", 2)

	require.NoError(t, err)
	assert.Equal(t, []bool{true, true}, userRepo.freshReads)
}

func TestDeleteUser_TargetNotFound(t *testing.T) {
	userRepo, roomRepo, svc := newFixture()

	err := svc.DeleteUser(context.Background(), "admin-code", 99)

	requireValidation(t, err, domain.KindNotFound, "id")
	// Первый провалившийся шаг останавливает весь конвейер
	assert.Equal(t, []string{"GetByID"}, userRepo.calls)
	assert.Empty(t, roomRepo.calls)
}

func TestDeleteUser_ActorNotFound(t *testing.T) {
	userRepo, roomRepo, svc := newFixture()

	err := svc.DeleteUser(context.Background(), "unknown-code", 2)

	requireValidation(t, err, domain.KindNotFound, "userCode")
	assert.Equal(t, []string{"GetByID", "GetByCode"}, userRepo.calls)
	assert.Empty(t, roomRepo.calls)
}

func TestDeleteUser_ActorIsNotAdmin(t *testing.T) {
	_, roomRepo, svc := newFixture()

	err := svc.DeleteUser(context.Background(), "member-code", 1)

	requireValidation(t, err, domain.KindForbidden, "userCode")
	assert.Empty(t, roomRepo.calls)
}

func TestDeleteUser_DifferentRooms(t *testing.T) {
	userRepo, roomRepo, svc := newFixture()
	outsider := &domain.User{ID: 3, Name: "Eve", AuthCode: "outsider-code", RoomID: 2, IsAdmin: true}
	userRepo.usersByID[3] = outsider
	userRepo.usersByCode["outsider-code"] = outsider

	// Администратор чужой комнаты не может удалять участников этой
	err := svc.DeleteUser(context.Background(), "outsider-code", 2)

	requireValidation(t, err, domain.KindNotAuthorized, "id")
	assert.Empty(t, roomRepo.calls)
}

func TestDeleteUser_SelfDeletion(t *testing.T) {
	_, roomRepo, svc := newFixture()

	// Даже администратор своей комнаты не может удалить сам себя
	err := svc.DeleteUser(context.Background(), "admin-code", 1)

	requireValidation(t, err, domain.KindBadRequest, "id")
	assert.Empty(t, roomRepo.calls)
}

func TestDeleteUser_RoomNotFound(t *testing.T) {
	_, roomRepo, svc := newFixture()
	roomRepo.room = nil

	err := svc.DeleteUser(context.Background(), "admin-code", 2)

	// Ошибка поиска комнаты пробрасывается без изменений
	requireValidation(t, err, domain.KindNotFound, "userCode")
	assert.Equal(t, []string{"GetByUserCode"}, roomRepo.calls)
}

func TestDeleteUser_ClosedRoom(t *testing.T) {
	_, roomRepo, svc := newFixture()
	closedOn := time.Now().Add(-24 * time.Hour)
	roomRepo.room.ClosedOn = &closedOn

	err := svc.DeleteUser(context.Background(), "admin-code", 2)

	requireValidation(t, err, domain.KindBadRequest, "room.ClosedOn")
	assert.Equal(t, []string{"GetByUserCode"}, roomRepo.calls, "closed room must never reach Update")
}

func TestDeleteUser_TargetMissingFromRoom(t *testing.T) {
	_, roomRepo, svc := newFixture()
	// Пользователь существует, но в составе комнаты его уже нет
	roomRepo.room.Users = roomRepo.room.Users[:1]

	err := svc.DeleteUser(context.Background(), "admin-code", 2)

	requireValidation(t, err, domain.KindNotFound, "id")
	assert.Equal(t, []string{"GetByUserCode"}, roomRepo.calls)
}

func TestDeleteUser_PersistenceFailure(t *testing.T) {
	_, roomRepo, svc := newFixture()
	roomRepo.updateErr = errors.New("room was modified by another request")

	err := svc.DeleteUser(context.Background(), "admin-code", 2)

	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindBadRequest, vErr.Kind)
	require.Len(t, vErr.Fields, 1)
	// Ошибка хранилища отдается с пустым тегом поля и дословным сообщением
	assert.Equal(t, "", vErr.Fields[0].Field)
	assert.Equal(t, "room was modified by another request", vErr.Fields[0].Message)
}

func TestDeleteUser_ReadPhaseHasNoSideEffects(t *testing.T) {
	userRepo, _, svc := newFixture()

	first := svc.DeleteUser(context.Background(), "unknown-code", 2)
	second := svc.DeleteUser(context.Background(), "unknown-code", 2)

	requireValidation(t, first, domain.KindNotFound, "userCode")
	requireValidation(t, second, domain.KindNotFound, "userCode")
	assert.Equal(t, []string{"GetByID", "GetByCode", "GetByID", "GetByCode"}, userRepo.calls)
}
