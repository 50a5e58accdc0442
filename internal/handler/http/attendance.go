package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/handler/http/middleware"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	MyReport(w http.ResponseWriter, r *http.Request)
	UserReport(w http.ResponseWriter, r *http.Request)
	TeamReport(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{
		attendanceService: attendanceService,
	}
}

// CheckIn implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req attendance.CheckInRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("CheckIn decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	event, err := h.attendanceService.CheckIn(r.Context(), caller, req)
	if err != nil {
		slog.Error("CheckIn service error", "error", err, "user_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User checked in", "user_id", caller.UserID)
	response.Created(w, "Checked in successfully", event)
}

// CheckOut implements AttendanceHandler.
func (h *attendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req attendance.CheckOutRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			slog.Error("CheckOut decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	event, err := h.attendanceService.CheckOut(r.Context(), caller, req)
	if err != nil {
		slog.Error("CheckOut service error", "error", err, "user_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User checked out", "user_id", caller.UserID)
	response.Created(w, "Checked out successfully", event)
}

// MyReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) MyReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	filter := reportFilterFromQuery(r)
	report, err := h.attendanceService.MyReport(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// UserReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) UserReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	filter := reportFilterFromQuery(r)
	filter.UserID = chi.URLParam(r, "userID")

	report, err := h.attendanceService.UserReport(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

// TeamReport implements AttendanceHandler.
func (h *attendanceHandlerImpl) TeamReport(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	filter := reportFilterFromQuery(r)
	teamID := chi.URLParam(r, "teamID")
	filter.TeamID = &teamID

	report, err := h.attendanceService.TeamReport(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, report)
}

func reportFilterFromQuery(r *http.Request) attendance.ReportFilter {
	return attendance.ReportFilter{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
}
