package task

import "time"

type Column string

const (
	ColumnTodo       Column = "todo"
	ColumnInProgress Column = "in_progress"
	ColumnReview     Column = "review"
	ColumnDone       Column = "done"
)

func (c Column) IsValid() bool {
	switch c {
	case ColumnTodo, ColumnInProgress, ColumnReview, ColumnDone:
		return true
	}
	return false
}

type Task struct {
	ID          string
	Title       string
	Description *string
	Column      Column
	AssigneeID  *string
	TeamID      *string
	CreatedBy   string
	DueDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	AssigneeName *string
}

func (t *Task) IsOverdue(now time.Time) bool {
	return t.DueDate != nil && t.Column != ColumnDone && now.After(*t.DueDate)
}
