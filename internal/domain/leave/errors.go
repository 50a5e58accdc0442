package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("start date must not be after end date")
	ErrOverlappingRequest   = errors.New("an overlapping leave request already exists")
	ErrAlreadyReviewed      = errors.New("leave request has already been reviewed")
	ErrValidation           = errors.New("validation failed")
)
