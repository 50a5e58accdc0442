package task

import "errors"

var (
	ErrTaskNotFound  = errors.New("task not found")
	ErrInvalidColumn = errors.New("invalid task column")
	ErrValidation    = errors.New("validation failed")
)
