package calendar

import (
	"context"
	"time"
)

type EventFilter struct {
	TeamID *string
	RoomID *string
	From   time.Time
	To     time.Time
}

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, filter EventFilter) ([]Event, error)
	HasRoomConflict(ctx context.Context, roomID string, start, end time.Time, excludeEventID *string) (bool, error)
	Update(ctx context.Context, e *Event) error
	Delete(ctx context.Context, id string) error
}
