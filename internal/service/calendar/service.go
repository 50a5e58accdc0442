package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/calendar"
	"github.com/teamops/teamops-backend-go/internal/domain/room"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

type CalendarServiceImpl struct {
	calendar.EventRepository
	room.RoomRepository
}

func NewCalendarService(eventRepository calendar.EventRepository, roomRepository room.RoomRepository) calendar.CalendarService {
	return &CalendarServiceImpl{
		EventRepository: eventRepository,
		RoomRepository:  roomRepository,
	}
}

// CreateEvent implements calendar.CalendarService. Team-scoped callers
// may only create events for their own team.
func (s *CalendarServiceImpl) CreateEvent(ctx context.Context, caller user.Principal, req *calendar.UpsertEventRequest) (*calendar.EventResponse, error) {
	if !user.CanAccess(caller.Role, "calendar.manage", user.ScopeAll) {
		if !user.CanAccess(caller.Role, "calendar.manage", user.ScopeTeam) {
			return nil, user.ErrInsufficientPermissions
		}
		if req.TeamID == nil || !caller.SameTeam(req.TeamID) {
			return nil, user.ErrInsufficientPermissions
		}
	}

	e, err := s.buildEvent(ctx, req, nil)
	if err != nil {
		return nil, err
	}
	e.ID = uuid.NewString()
	e.CreatedBy = caller.UserID

	if err := s.EventRepository.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}

	resp := calendar.ToEventResponse(e)
	return &resp, nil
}

// ListEvents implements calendar.CalendarService. Team-scoped callers
// only see their own team's events regardless of the requested filter.
func (s *CalendarServiceImpl) ListEvents(ctx context.Context, caller user.Principal, filter calendar.EventFilter) ([]calendar.EventResponse, error) {
	switch {
	case user.CanAccess(caller.Role, "calendar.view", user.ScopeAll):
	case user.CanAccess(caller.Role, "calendar.view", user.ScopeTeam):
		if caller.TeamID == nil {
			return nil, user.ErrInsufficientPermissions
		}
		filter.TeamID = caller.TeamID
	default:
		return nil, user.ErrInsufficientPermissions
	}

	events, err := s.EventRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	responses := make([]calendar.EventResponse, 0, len(events))
	for i := range events {
		responses = append(responses, calendar.ToEventResponse(&events[i]))
	}
	return responses, nil
}

// UpdateEvent implements calendar.CalendarService.
func (s *CalendarServiceImpl) UpdateEvent(ctx context.Context, caller user.Principal, id string, req *calendar.UpsertEventRequest) (*calendar.EventResponse, error) {
	existing, err := s.getEvent(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayManage(caller, existing) {
		return nil, user.ErrInsufficientPermissions
	}
	// Team-scoped callers cannot move an event to another team either
	if !user.CanAccess(caller.Role, "calendar.manage", user.ScopeAll) {
		if req.TeamID == nil || !caller.SameTeam(req.TeamID) {
			return nil, user.ErrInsufficientPermissions
		}
	}

	e, err := s.buildEvent(ctx, req, &id)
	if err != nil {
		return nil, err
	}
	e.ID = existing.ID
	e.CreatedBy = existing.CreatedBy
	e.CreatedAt = existing.CreatedAt

	if err := s.EventRepository.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("failed to update event: %w", err)
	}

	resp := calendar.ToEventResponse(e)
	return &resp, nil
}

// DeleteEvent implements calendar.CalendarService.
func (s *CalendarServiceImpl) DeleteEvent(ctx context.Context, caller user.Principal, id string) error {
	existing, err := s.getEvent(ctx, id)
	if err != nil {
		return err
	}
	if !s.mayManage(caller, existing) {
		return user.ErrInsufficientPermissions
	}
	if err := s.EventRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

func (s *CalendarServiceImpl) getEvent(ctx context.Context, id string) (*calendar.Event, error) {
	e, err := s.EventRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, calendar.ErrEventNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return e, nil
}

func (s *CalendarServiceImpl) mayManage(caller user.Principal, e *calendar.Event) bool {
	if user.CanAccess(caller.Role, "calendar.manage", user.ScopeAll) {
		return true
	}
	if !user.CanAccess(caller.Role, "calendar.manage", user.ScopeTeam) {
		return false
	}
	return e.TeamID != nil && caller.SameTeam(e.TeamID)
}

// buildEvent validates the request, resolves the room and rejects
// double-bookings. excludeEventID skips the event being updated in the
// conflict check.
func (s *CalendarServiceImpl) buildEvent(ctx context.Context, req *calendar.UpsertEventRequest, excludeEventID *string) (*calendar.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse starts_at: %w", err)
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse ends_at: %w", err)
	}
	if !endsAt.After(startsAt) {
		return nil, calendar.ErrInvalidInterval
	}

	if req.RoomID != nil {
		if _, err := s.RoomRepository.GetByID(ctx, *req.RoomID); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil, room.ErrRoomNotFound
			}
			return nil, fmt.Errorf("failed to get room: %w", err)
		}

		conflict, err := s.EventRepository.HasRoomConflict(ctx, *req.RoomID, startsAt, endsAt, excludeEventID)
		if err != nil {
			return nil, fmt.Errorf("failed to check room availability: %w", err)
		}
		if conflict {
			return nil, calendar.ErrRoomDoubleBooked
		}
	}

	return &calendar.Event{
		Title:       req.Title,
		Description: req.Description,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		RoomID:      req.RoomID,
		TeamID:      req.TeamID,
	}, nil
}
