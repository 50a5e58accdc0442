package room

import "errors"

var (
	ErrRoomNotFound   = errors.New("room not found")
	ErrRoomNameExists = errors.New("a room with this name already exists")
	ErrValidation     = errors.New("validation failed")
)
