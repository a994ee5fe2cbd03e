package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aidar/room-service/internal/domain"
)

func newAuthFixture() (*fakeUserRepo, *AuthService) {
	user := &domain.User{ID: 1, Name: "Alice", AuthCode: "admin-code", RoomID: 7, IsAdmin: true}
	userRepo := &fakeUserRepo{
		usersByID:   map[uint64]*domain.User{1: user},
		usersByCode: map[string]*domain.User{"admin-code": user},
	}
	return userRepo, NewAuthService(userRepo, "test-secret", time.Hour)
}

func TestAuthService_LoginAndValidate(t *testing.T) {
	_, svc := newAuthFixture()

	token, err := svc.Login(context.Background(), "admin-code")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin-code", claims.UserCode)
	assert.Equal(t, uint64(7), claims.RoomID)
}

func TestAuthService_LoginUnknownCode(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.Login(context.Background(), "bogus")

	vErr, ok := domain.AsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.KindNotFound, vErr.Kind)
}

func TestAuthService_ValidateGarbageToken(t *testing.T) {
	_, svc := newAuthFixture()

	_, err := svc.ValidateToken("not-a-token")

	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestAuthService_ValidateTokenSignedWithOtherSecret(t *testing.T) {
	userRepo, svc := newAuthFixture()
	other := NewAuthService(userRepo, "other-secret", time.Hour)

	token, err := other.Login(context.Background(), "admin-code")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}
