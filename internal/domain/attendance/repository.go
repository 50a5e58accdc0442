package attendance

import (
	"context"
	"time"
)

// EventRepository defines data access for raw attendance events. Events
// are append-only facts; corrections happen by inserting compensating
// events, never by mutating history. The store serializes concurrent
// check-ins for one user via a uniqueness constraint on
// (user_id, timestamp).
type EventRepository interface {
	// Create appends a new event
	Create(ctx context.Context, ev Event) (Event, error)

	// GetByUser retrieves all events for one user in [from, to)
	GetByUser(ctx context.Context, userID string, from, to time.Time) ([]Event, error)

	// GetByUsers retrieves all events for a set of users in [from, to).
	// Order is unspecified; the aggregator sorts.
	GetByUsers(ctx context.Context, userIDs []string, from, to time.Time) ([]Event, error)

	// GetLastEvent returns the most recent event for a user, or nil
	GetLastEvent(ctx context.Context, userID string) (*Event, error)

	// GetOpenCheckIns returns, for every user, the trailing check-in that
	// has no later check-out. Input to the auto-checkout batch job.
	GetOpenCheckIns(ctx context.Context, before time.Time) ([]Event, error)
}
