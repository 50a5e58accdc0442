package note

import (
	"time"

	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

type CreateNoteRequest struct {
	Title      string `json:"title"`
	Body       string `json:"body"`
	Visibility string `json:"visibility"`
}

func (r *CreateNoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if !Visibility(r.Visibility).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "visibility", Message: "visibility must be personal or team"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateNoteRequest struct {
	Title  *string `json:"title,omitempty"`
	Body   *string `json:"body,omitempty"`
	Pinned *bool   `json:"pinned,omitempty"`
}

func (r *UpdateNoteRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not be empty"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type NoteResponse struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	TeamID     *string   `json:"team_id,omitempty"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	Visibility string    `json:"visibility"`
	Pinned     bool      `json:"pinned"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func ToNoteResponse(n *Note) NoteResponse {
	return NoteResponse{
		ID:         n.ID,
		OwnerID:    n.OwnerID,
		TeamID:     n.TeamID,
		Title:      n.Title,
		Body:       n.Body,
		Visibility: string(n.Visibility),
		Pinned:     n.Pinned,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}
