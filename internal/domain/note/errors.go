package note

import "errors"

var (
	ErrNoteNotFound = errors.New("note not found")
	ErrNotNoteOwner = errors.New("you do not own this note")
	ErrValidation   = errors.New("validation failed")
)
