package response

import (
	"errors"
	"net/http"

	"github.com/teamops/teamops-backend-go/internal/domain/attendance"
	"github.com/teamops/teamops-backend-go/internal/domain/auth"
	"github.com/teamops/teamops-backend-go/internal/domain/calendar"
	"github.com/teamops/teamops-backend-go/internal/domain/leave"
	"github.com/teamops/teamops-backend-go/internal/domain/note"
	"github.com/teamops/teamops-backend-go/internal/domain/room"
	"github.com/teamops/teamops-backend-go/internal/domain/settings"
	"github.com/teamops/teamops-backend-go/internal/domain/task"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrOAuthNotConfigured):
		BadRequest(w, "OAuth login is not configured", nil)
	case errors.Is(err, auth.ErrOAuthStateMismatch):
		Unauthorized(w, "OAuth state mismatch")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrInvalidRole):
		BadRequest(w, "Unknown role", nil)
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrCannotManageRole):
		Forbidden(w, "Cannot manage a user of equal or higher role")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "You already have an open session")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "You have not checked in yet")
	case errors.Is(err, attendance.ErrOutsideAllowedRadius):
		Forbidden(w, "You are outside the allowed check-in radius")
	case errors.Is(err, attendance.ErrLocationRequired):
		BadRequest(w, "Location is required for check-in", nil)
	case errors.Is(err, attendance.ErrDuplicateEvent):
		Conflict(w, "An event with this timestamp already exists")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this attendance record")
	case errors.Is(err, attendance.ErrInvalidDateRange):
		BadRequest(w, "Invalid date range", nil)

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Attendance settings not found")
	case errors.Is(err, settings.ErrInvalidCheckoutTime),
		errors.Is(err, settings.ErrInvalidMaxHours),
		errors.Is(err, settings.ErrIncompleteGeofence):
		BadRequest(w, err.Error(), nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "Start date must not be after end date", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Leave request has already been reviewed")

	// Task domain errors
	case errors.Is(err, task.ErrTaskNotFound):
		NotFound(w, "Task not found")
	case errors.Is(err, task.ErrInvalidColumn):
		BadRequest(w, "Invalid task column", nil)

	// Note domain errors
	case errors.Is(err, note.ErrNoteNotFound):
		NotFound(w, "Note not found")
	case errors.Is(err, note.ErrNotNoteOwner):
		Forbidden(w, "You do not own this note")

	// Room and calendar domain errors
	case errors.Is(err, room.ErrRoomNotFound):
		NotFound(w, "Room not found")
	case errors.Is(err, room.ErrRoomNameExists):
		Conflict(w, "A room with this name already exists")
	case errors.Is(err, calendar.ErrEventNotFound):
		NotFound(w, "Calendar event not found")
	case errors.Is(err, calendar.ErrInvalidInterval):
		BadRequest(w, "Event must end after it starts", nil)
	case errors.Is(err, calendar.ErrRoomDoubleBooked):
		Conflict(w, "Room is already booked for this time")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
