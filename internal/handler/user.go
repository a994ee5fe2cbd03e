package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aidar/room-service/internal/middleware"
	"github.com/aidar/room-service/internal/service"
)

// UserHandler обрабатывает эндпоинты пользователей
type UserHandler struct {
	userService *service.UserService
}

// NewUserHandler создает новый UserHandler
func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// DeleteUser обрабатывает DELETE /users/{id}.
// Код авторизации инициатора берется из валидированного токена.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	userCode := middleware.GetUserCodeFromContext(r.Context())
	if userCode == "" {
		RespondWithError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	targetUserID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "id must be a positive integer")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), userCode, targetUserID); err != nil {
		HandleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
