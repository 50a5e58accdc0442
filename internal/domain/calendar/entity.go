package calendar

import "time"

type Event struct {
	ID          string
	Title       string
	Description *string
	StartsAt    time.Time
	EndsAt      time.Time
	RoomID      *string
	TeamID      *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	RoomName *string
}

// Overlaps reports whether two half-open intervals [StartsAt, EndsAt)
// intersect.
func (e *Event) Overlaps(start, end time.Time) bool {
	return e.StartsAt.Before(end) && start.Before(e.EndsAt)
}
