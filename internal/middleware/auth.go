package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/aidar/room-service/internal/service"
)

// ContextKey это кастомный тип для ключей контекста
type ContextKey string

const (
	// UserCodeKey ключ контекста для кода авторизации пользователя
	UserCodeKey ContextKey = "user_code"
	// RoomIDKey ключ контекста для ID комнаты
	RoomIDKey ContextKey = "room_id"
)

// AuthMiddleware создает middleware для валидации JWT токенов
func AuthMiddleware(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Получаем токен из заголовка Authorization
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"missing authorization header"}}`, http.StatusUnauthorized)
				return
			}

			// Проверяем формат Bearer
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid authorization header format"}}`, http.StatusUnauthorized)
				return
			}

			token := parts[1]

			// Валидируем токен
			claims, err := authService.ValidateToken(token)
			if err != nil {
				http.Error(w, `{"error":{"code":"UNAUTHORIZED","message":"invalid or expired token"}}`, http.StatusUnauthorized)
				return
			}

			// Добавляем claims в контекст
			ctx := context.WithValue(r.Context(), UserCodeKey, claims.UserCode)
			ctx = context.WithValue(ctx, RoomIDKey, claims.RoomID)

			// Вызываем следующий обработчик
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserCodeFromContext извлекает код авторизации пользователя из контекста
func GetUserCodeFromContext(ctx context.Context) string {
	userCode, ok := ctx.Value(UserCodeKey).(string)
	if !ok {
		return ""
	}
	return userCode
}

// GetRoomIDFromContext извлекает ID комнаты из контекста
func GetRoomIDFromContext(ctx context.Context) uint64 {
	roomID, ok := ctx.Value(RoomIDKey).(uint64)
	if !ok {
		return 0
	}
	return roomID
}
