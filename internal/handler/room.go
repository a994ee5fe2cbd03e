package handler

import (
	"encoding/json"
	"net/http"

	"github.com/aidar/room-service/internal/domain"
	"github.com/aidar/room-service/internal/middleware"
	"github.com/aidar/room-service/internal/service"
)

// RoomHandler обрабатывает эндпоинты комнат
type RoomHandler struct {
	roomService *service.RoomService
}

// NewRoomHandler создает новый RoomHandler
func NewRoomHandler(roomService *service.RoomService) *RoomHandler {
	return &RoomHandler{
		roomService: roomService,
	}
}

// CreateRoomRequest представляет тело запроса на создание комнаты
type CreateRoomRequest struct {
	RoomName  string `json:"room_name"`
	AdminName string `json:"admin_name"`
}

// CreateRoomResponse представляет ответ на создание комнаты
type CreateRoomResponse struct {
	Room          *domain.Room `json:"room"`
	AdminAuthCode string       `json:"admin_auth_code"`
}

// CreateRoom обрабатывает POST /rooms
func (h *RoomHandler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.RoomName == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "room_name is required")
		return
	}
	if req.AdminName == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "admin_name is required")
		return
	}

	room, err := h.roomService.CreateRoom(r.Context(), req.RoomName, req.AdminName)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, CreateRoomResponse{
		Room:          room,
		AdminAuthCode: room.Users[0].AuthCode,
	})
}

// JoinRoomRequest представляет тело запроса на вступление в комнату
type JoinRoomRequest struct {
	RoomCode string `json:"room_code"`
	UserName string `json:"user_name"`
}

// JoinRoomResponse представляет ответ на вступление в комнату
type JoinRoomResponse struct {
	User     *domain.User `json:"user"`
	AuthCode string       `json:"auth_code"`
}

// JoinRoom обрабатывает POST /rooms/join
func (h *RoomHandler) JoinRoom(w http.ResponseWriter, r *http.Request) {
	var req JoinRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	if req.RoomCode == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "room_code is required")
		return
	}
	if req.UserName == "" {
		RespondWithError(w, r, http.StatusBadRequest, "BAD_REQUEST", "user_name is required")
		return
	}

	user, err := h.roomService.JoinRoom(r.Context(), req.RoomCode, req.UserName)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusCreated, JoinRoomResponse{
		User:     user,
		AuthCode: user.AuthCode,
	})
}

// GetRoom обрабатывает GET /room — комната аутентифицированного пользователя
func (h *RoomHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	userCode := middleware.GetUserCodeFromContext(r.Context())
	if userCode == "" {
		RespondWithError(w, r, http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized")
		return
	}

	room, err := h.roomService.GetByUserCode(r.Context(), userCode)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	RespondWithJSON(w, r, http.StatusOK, room)
}
