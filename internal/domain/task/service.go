package task

import (
	"context"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

// TaskService defines business logic for the kanban board. Every
// operation is scoped to the caller: all-scope roles reach every task,
// team-scope roles their own team's board, self-scope roles only tasks
// they created or are assigned to.
type TaskService interface {
	CreateTask(ctx context.Context, caller user.Principal, req *CreateTaskRequest) (*TaskResponse, error)
	GetTask(ctx context.Context, caller user.Principal, id string) (*TaskResponse, error)
	Board(ctx context.Context, caller user.Principal, filter TaskFilter) (*BoardResponse, error)
	UpdateTask(ctx context.Context, caller user.Principal, id string, req *UpdateTaskRequest) (*TaskResponse, error)
	MoveTask(ctx context.Context, caller user.Principal, id string, req *MoveTaskRequest) (*TaskResponse, error)
	DeleteTask(ctx context.Context, caller user.Principal, id string) error
}
