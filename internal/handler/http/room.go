package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/room"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type RoomHandler interface {
	CreateRoom(w http.ResponseWriter, r *http.Request)
	ListRooms(w http.ResponseWriter, r *http.Request)
	UpdateRoom(w http.ResponseWriter, r *http.Request)
	DeleteRoom(w http.ResponseWriter, r *http.Request)
}

type roomHandlerImpl struct {
	roomService room.RoomService
}

func NewRoomHandler(roomService room.RoomService) RoomHandler {
	return &roomHandlerImpl{
		roomService: roomService,
	}
}

// CreateRoom implements RoomHandler.
func (h *roomHandlerImpl) CreateRoom(w http.ResponseWriter, r *http.Request) {
	var req room.UpsertRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateRoom decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.roomService.CreateRoom(r.Context(), &req)
	if err != nil {
		slog.Error("CreateRoom service error", "error", err, "name", req.Name)
		response.HandleError(w, err)
		return
	}

	slog.Info("Room created", "room_id", result.ID, "name", req.Name)
	response.Created(w, "Room created successfully", result)
}

// ListRooms implements RoomHandler.
func (h *roomHandlerImpl) ListRooms(w http.ResponseWriter, r *http.Request) {
	result, err := h.roomService.ListRooms(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateRoom implements RoomHandler.
func (h *roomHandlerImpl) UpdateRoom(w http.ResponseWriter, r *http.Request) {
	var req room.UpsertRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateRoom decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	roomID := chi.URLParam(r, "roomID")
	result, err := h.roomService.UpdateRoom(r.Context(), roomID, &req)
	if err != nil {
		slog.Error("UpdateRoom service error", "error", err, "room_id", roomID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Room updated successfully", result)
}

// DeleteRoom implements RoomHandler.
func (h *roomHandlerImpl) DeleteRoom(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")

	if err := h.roomService.DeleteRoom(r.Context(), roomID); err != nil {
		slog.Error("DeleteRoom service error", "error", err, "room_id", roomID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Room deleted", "room_id", roomID)
	response.SuccessWithMessage(w, "Room deleted successfully", nil)
}
