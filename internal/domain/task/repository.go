package task

import "context"

type TaskFilter struct {
	AssigneeID *string
	TeamID     *string
	Column     *Column
}

type TaskRepository interface {
	Create(ctx context.Context, t *Task) error
	GetByID(ctx context.Context, id string) (*Task, error)
	List(ctx context.Context, filter TaskFilter) ([]Task, error)
	Update(ctx context.Context, t *Task) error
	UpdateColumn(ctx context.Context, id string, column Column) error
	Delete(ctx context.Context, id string) error
}
