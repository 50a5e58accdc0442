package calendar

import (
	"time"

	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

type UpsertEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	StartsAt    string  `json:"starts_at"`
	EndsAt      string  `json:"ends_at"`
	RoomID      *string `json:"room_id,omitempty"`
	TeamID      *string `json:"team_id,omitempty"`
}

func (r *UpsertEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if _, err := time.Parse(time.RFC3339, r.StartsAt); err != nil {
		errs = append(errs, validator.ValidationError{Field: "starts_at", Message: "starts_at must be an RFC3339 timestamp"})
	}
	if _, err := time.Parse(time.RFC3339, r.EndsAt); err != nil {
		errs = append(errs, validator.ValidationError{Field: "ends_at", Message: "ends_at must be an RFC3339 timestamp"})
	}
	if r.RoomID != nil && !validator.IsValidUUID(*r.RoomID) {
		errs = append(errs, validator.ValidationError{Field: "room_id", Message: "room id must be a valid UUID"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartsAt    time.Time `json:"starts_at"`
	EndsAt      time.Time `json:"ends_at"`
	RoomID      *string   `json:"room_id,omitempty"`
	RoomName    *string   `json:"room_name,omitempty"`
	TeamID      *string   `json:"team_id,omitempty"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

func ToEventResponse(e *Event) EventResponse {
	return EventResponse{
		ID:          e.ID,
		Title:       e.Title,
		Description: e.Description,
		StartsAt:    e.StartsAt,
		EndsAt:      e.EndsAt,
		RoomID:      e.RoomID,
		RoomName:    e.RoomName,
		TeamID:      e.TeamID,
		CreatedBy:   e.CreatedBy,
		CreatedAt:   e.CreatedAt,
	}
}
