package room

import (
	"time"

	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

type UpsertRoomRequest struct {
	Name     string  `json:"name"`
	Location *string `json:"location,omitempty"`
	Capacity int     `json:"capacity"`
}

func (r *UpsertRoomRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "name is required"})
	}
	if r.Capacity < 1 {
		errs = append(errs, validator.ValidationError{Field: "capacity", Message: "capacity must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RoomResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  *string   `json:"location,omitempty"`
	Capacity  int       `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

func ToRoomResponse(r *Room) RoomResponse {
	return RoomResponse{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Capacity:  r.Capacity,
		CreatedAt: r.CreatedAt,
	}
}
