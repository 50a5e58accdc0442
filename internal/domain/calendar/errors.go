package calendar

import "errors"

var (
	ErrEventNotFound   = errors.New("calendar event not found")
	ErrInvalidInterval = errors.New("event must end after it starts")
	ErrRoomDoubleBooked = errors.New("room is already booked for this time")
	ErrValidation      = errors.New("validation failed")
)
