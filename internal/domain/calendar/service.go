package calendar

import (
	"context"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

// CalendarService defines business logic for shared calendar events.
// Listing and mutation are scoped to the caller: team-scope roles only
// see and manage their own team's events.
type CalendarService interface {
	CreateEvent(ctx context.Context, caller user.Principal, req *UpsertEventRequest) (*EventResponse, error)
	ListEvents(ctx context.Context, caller user.Principal, filter EventFilter) ([]EventResponse, error)
	UpdateEvent(ctx context.Context, caller user.Principal, id string, req *UpsertEventRequest) (*EventResponse, error)
	DeleteEvent(ctx context.Context, caller user.Principal, id string) error
}
