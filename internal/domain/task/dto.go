package task

import (
	"time"

	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

type CreateTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	TeamID      *string `json:"team_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (r *CreateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title is required"})
	}
	if r.AssigneeID != nil && !validator.IsValidUUID(*r.AssigneeID) {
		errs = append(errs, validator.ValidationError{Field: "assignee_id", Message: "assignee id must be a valid UUID"})
	}
	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "due_date", Message: "due date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateTaskRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	AssigneeID  *string `json:"assignee_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
}

func (r *UpdateTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Title != nil && validator.IsEmpty(*r.Title) {
		errs = append(errs, validator.ValidationError{Field: "title", Message: "title must not be empty"})
	}
	if r.AssigneeID != nil && !validator.IsValidUUID(*r.AssigneeID) {
		errs = append(errs, validator.ValidationError{Field: "assignee_id", Message: "assignee id must be a valid UUID"})
	}
	if r.DueDate != nil {
		if _, ok := validator.IsValidDate(*r.DueDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "due_date", Message: "due date must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MoveTaskRequest struct {
	Column string `json:"column"`
}

func (r *MoveTaskRequest) Validate() error {
	var errs validator.ValidationErrors

	if !Column(r.Column).IsValid() {
		errs = append(errs, validator.ValidationError{Field: "column", Message: "column must be one of todo, in_progress, review, done"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TaskResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  *string    `json:"description,omitempty"`
	Column       string     `json:"column"`
	AssigneeID   *string    `json:"assignee_id,omitempty"`
	AssigneeName *string    `json:"assignee_name,omitempty"`
	TeamID       *string    `json:"team_id,omitempty"`
	CreatedBy    string     `json:"created_by"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func ToTaskResponse(t *Task) TaskResponse {
	return TaskResponse{
		ID:           t.ID,
		Title:        t.Title,
		Description:  t.Description,
		Column:       string(t.Column),
		AssigneeID:   t.AssigneeID,
		AssigneeName: t.AssigneeName,
		TeamID:       t.TeamID,
		CreatedBy:    t.CreatedBy,
		DueDate:      t.DueDate,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
}

// BoardResponse groups a team's tasks by column for the kanban view.
type BoardResponse struct {
	Todo       []TaskResponse `json:"todo"`
	InProgress []TaskResponse `json:"in_progress"`
	Review     []TaskResponse `json:"review"`
	Done       []TaskResponse `json:"done"`
}
