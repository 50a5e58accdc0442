package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/calendar"
	"github.com/teamops/teamops-backend-go/internal/handler/http/middleware"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type CalendarHandler interface {
	CreateEvent(w http.ResponseWriter, r *http.Request)
	ListEvents(w http.ResponseWriter, r *http.Request)
	UpdateEvent(w http.ResponseWriter, r *http.Request)
	DeleteEvent(w http.ResponseWriter, r *http.Request)
}

type calendarHandlerImpl struct {
	calendarService calendar.CalendarService
}

func NewCalendarHandler(calendarService calendar.CalendarService) CalendarHandler {
	return &calendarHandlerImpl{
		calendarService: calendarService,
	}
}

// CreateEvent implements CalendarHandler.
func (h *calendarHandlerImpl) CreateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req calendar.UpsertEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.calendarService.CreateEvent(r.Context(), caller, &req)
	if err != nil {
		slog.Error("CreateEvent service error", "error", err, "creator_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Calendar event created", "event_id", result.ID, "creator_id", caller.UserID)
	response.Created(w, "Event created successfully", result)
}

// ListEvents implements CalendarHandler. The window defaults to the
// current calendar month when from/to are omitted.
func (h *calendarHandlerImpl) ListEvents(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	now := time.Now().UTC()
	filter := calendar.EventFilter{
		From: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC),
		To:   time.Date(now.Year(), now.Month()+1, 1, 0, 0, 0, 0, time.UTC),
	}
	if v := r.URL.Query().Get("from"); v != "" {
		from, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(w, "from must be an RFC 3339 timestamp", nil)
			return
		}
		filter.From = from
	}
	if v := r.URL.Query().Get("to"); v != "" {
		to, err := time.Parse(time.RFC3339, v)
		if err != nil {
			response.BadRequest(w, "to must be an RFC 3339 timestamp", nil)
			return
		}
		filter.To = to
	}
	if v := r.URL.Query().Get("team_id"); v != "" {
		filter.TeamID = &v
	}
	if v := r.URL.Query().Get("room_id"); v != "" {
		filter.RoomID = &v
	}

	result, err := h.calendarService.ListEvents(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateEvent implements CalendarHandler.
func (h *calendarHandlerImpl) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req calendar.UpsertEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	eventID := chi.URLParam(r, "eventID")
	result, err := h.calendarService.UpdateEvent(r.Context(), caller, eventID, &req)
	if err != nil {
		slog.Error("UpdateEvent service error", "error", err, "event_id", eventID, "caller_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event updated successfully", result)
}

// DeleteEvent implements CalendarHandler.
func (h *calendarHandlerImpl) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	eventID := chi.URLParam(r, "eventID")
	if err := h.calendarService.DeleteEvent(r.Context(), caller, eventID); err != nil {
		slog.Error("DeleteEvent service error", "error", err, "event_id", eventID, "caller_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Calendar event deleted", "event_id", eventID)
	response.SuccessWithMessage(w, "Event deleted successfully", nil)
}
