package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/leave"
	"github.com/teamops/teamops-backend-go/internal/handler/http/middleware"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type LeaveHandler interface {
	RequestLeave(w http.ResponseWriter, r *http.Request)
	MyRequests(w http.ResponseWriter, r *http.Request)
	PendingRequests(w http.ResponseWriter, r *http.Request)
	Review(w http.ResponseWriter, r *http.Request)
}

type leaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &leaveHandlerImpl{
		leaveService: leaveService,
	}
}

// RequestLeave implements LeaveHandler.
func (h *leaveHandlerImpl) RequestLeave(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req leave.CreateLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RequestLeave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.leaveService.RequestLeave(r.Context(), caller.UserID, &req)
	if err != nil {
		slog.Error("RequestLeave service error", "error", err, "user_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave requested", "user_id", caller.UserID, "from", req.StartDate, "to", req.EndDate)
	response.Created(w, "Leave request submitted", result)
}

// MyRequests implements LeaveHandler.
func (h *leaveHandlerImpl) MyRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	result, err := h.leaveService.MyRequests(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// PendingRequests implements LeaveHandler.
func (h *leaveHandlerImpl) PendingRequests(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	result, err := h.leaveService.PendingRequests(r.Context(), caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Review implements LeaveHandler.
func (h *leaveHandlerImpl) Review(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req leave.ReviewLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("Review leave decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	requestID := chi.URLParam(r, "requestID")
	result, err := h.leaveService.Review(r.Context(), caller.UserID, requestID, &req)
	if err != nil {
		slog.Error("Review leave service error", "error", err, "reviewer_id", caller.UserID, "request_id", requestID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Leave request reviewed", "request_id", requestID, "status", req.Status, "reviewer_id", caller.UserID)
	response.SuccessWithMessage(w, "Leave request reviewed", result)
}
