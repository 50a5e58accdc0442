package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in errors
	ErrAlreadyCheckedIn     = errors.New("you already have an open session")
	ErrNotCheckedIn         = errors.New("you have not checked in yet")
	ErrOutsideAllowedRadius = errors.New("you are outside the allowed check-in radius")
	ErrLocationRequired     = errors.New("location is required for check-in")

	// General errors
	ErrEventNotFound    = errors.New("attendance event not found")
	ErrDuplicateEvent   = errors.New("an event with this timestamp already exists")
	ErrUnauthorized     = errors.New("unauthorized to access this attendance record")
	ErrInvalidDateRange = errors.New("invalid date range")
)
