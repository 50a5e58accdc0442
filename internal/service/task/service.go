package task

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/task"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

type TaskServiceImpl struct {
	task.TaskRepository
}

func NewTaskService(taskRepository task.TaskRepository) task.TaskService {
	return &TaskServiceImpl{
		TaskRepository: taskRepository,
	}
}

// CreateTask implements task.TaskService. Self-scoped callers may only
// create tasks for themselves inside their own team.
func (s *TaskServiceImpl) CreateTask(ctx context.Context, caller user.Principal, req *task.CreateTaskRequest) (*task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	switch {
	case user.CanAccess(caller.Role, "tasks.manage", user.ScopeAll):
	case user.CanAccess(caller.Role, "tasks.manage", user.ScopeTeam):
		if req.TeamID == nil || !caller.SameTeam(req.TeamID) {
			return nil, user.ErrInsufficientPermissions
		}
	case user.CanAccess(caller.Role, "tasks.manage", user.ScopeSelf):
		if req.AssigneeID != nil && *req.AssigneeID != caller.UserID {
			return nil, user.ErrInsufficientPermissions
		}
		if req.TeamID != nil && !caller.SameTeam(req.TeamID) {
			return nil, user.ErrInsufficientPermissions
		}
	default:
		return nil, user.ErrInsufficientPermissions
	}

	t := task.Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Column:      task.ColumnTodo,
		AssigneeID:  req.AssigneeID,
		TeamID:      req.TeamID,
		CreatedBy:   caller.UserID,
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse due date: %w", err)
		}
		t.DueDate = &due
	}

	if err := s.TaskRepository.Create(ctx, &t); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	resp := task.ToTaskResponse(&t)
	return &resp, nil
}

// GetTask implements task.TaskService.
func (s *TaskServiceImpl) GetTask(ctx context.Context, caller user.Principal, id string) (*task.TaskResponse, error) {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayView(caller, t) {
		return nil, user.ErrInsufficientPermissions
	}
	resp := task.ToTaskResponse(t)
	return &resp, nil
}

// Board implements task.TaskService. The filter is narrowed to the
// widest scope the caller's role grants before it reaches the store.
func (s *TaskServiceImpl) Board(ctx context.Context, caller user.Principal, filter task.TaskFilter) (*task.BoardResponse, error) {
	switch {
	case user.CanAccess(caller.Role, "tasks.view", user.ScopeAll):
	case user.CanAccess(caller.Role, "tasks.view", user.ScopeTeam):
		if caller.TeamID == nil {
			return nil, user.ErrInsufficientPermissions
		}
		filter.TeamID = caller.TeamID
	case user.CanAccess(caller.Role, "tasks.view", user.ScopeSelf):
		assigneeID := caller.UserID
		filter.AssigneeID = &assigneeID
		filter.TeamID = nil
	default:
		return nil, user.ErrInsufficientPermissions
	}

	tasks, err := s.TaskRepository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	board := task.BoardResponse{
		Todo:       []task.TaskResponse{},
		InProgress: []task.TaskResponse{},
		Review:     []task.TaskResponse{},
		Done:       []task.TaskResponse{},
	}
	for i := range tasks {
		resp := task.ToTaskResponse(&tasks[i])
		switch tasks[i].Column {
		case task.ColumnTodo:
			board.Todo = append(board.Todo, resp)
		case task.ColumnInProgress:
			board.InProgress = append(board.InProgress, resp)
		case task.ColumnReview:
			board.Review = append(board.Review, resp)
		case task.ColumnDone:
			board.Done = append(board.Done, resp)
		}
	}
	return &board, nil
}

// UpdateTask implements task.TaskService.
func (s *TaskServiceImpl) UpdateTask(ctx context.Context, caller user.Principal, id string, req *task.UpdateTaskRequest) (*task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayManage(caller, t) {
		return nil, user.ErrInsufficientPermissions
	}
	// Self-scoped callers cannot hand their tasks to someone else
	if req.AssigneeID != nil && *req.AssigneeID != caller.UserID && s.selfScopeOnly(caller) {
		return nil, user.ErrInsufficientPermissions
	}

	if req.Title != nil {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.AssigneeID != nil {
		t.AssigneeID = req.AssigneeID
	}
	if req.DueDate != nil {
		due, err := time.Parse("2006-01-02", *req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("failed to parse due date: %w", err)
		}
		t.DueDate = &due
	}

	if err := s.TaskRepository.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	resp := task.ToTaskResponse(t)
	return &resp, nil
}

// MoveTask implements task.TaskService.
func (s *TaskServiceImpl) MoveTask(ctx context.Context, caller user.Principal, id string, req *task.MoveTaskRequest) (*task.TaskResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t, err := s.getTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !s.mayManage(caller, t) {
		return nil, user.ErrInsufficientPermissions
	}

	column := task.Column(req.Column)
	if err := s.TaskRepository.UpdateColumn(ctx, id, column); err != nil {
		return nil, fmt.Errorf("failed to move task: %w", err)
	}

	t.Column = column
	resp := task.ToTaskResponse(t)
	return &resp, nil
}

// DeleteTask implements task.TaskService.
func (s *TaskServiceImpl) DeleteTask(ctx context.Context, caller user.Principal, id string) error {
	t, err := s.getTask(ctx, id)
	if err != nil {
		return err
	}
	if !s.mayManage(caller, t) {
		return user.ErrInsufficientPermissions
	}
	if err := s.TaskRepository.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (s *TaskServiceImpl) getTask(ctx context.Context, id string) (*task.Task, error) {
	t, err := s.TaskRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (s *TaskServiceImpl) mayView(caller user.Principal, t *task.Task) bool {
	if user.CanAccess(caller.Role, "tasks.view", user.ScopeAll) {
		return true
	}
	if user.CanAccess(caller.Role, "tasks.view", user.ScopeTeam) && t.TeamID != nil && caller.SameTeam(t.TeamID) {
		return true
	}
	if user.CanAccess(caller.Role, "tasks.view", user.ScopeSelf) && s.ownTask(caller, t) {
		return true
	}
	return false
}

func (s *TaskServiceImpl) mayManage(caller user.Principal, t *task.Task) bool {
	if user.CanAccess(caller.Role, "tasks.manage", user.ScopeAll) {
		return true
	}
	if user.CanAccess(caller.Role, "tasks.manage", user.ScopeTeam) && t.TeamID != nil && caller.SameTeam(t.TeamID) {
		return true
	}
	if user.CanAccess(caller.Role, "tasks.manage", user.ScopeSelf) && s.ownTask(caller, t) {
		return true
	}
	return false
}

func (s *TaskServiceImpl) selfScopeOnly(caller user.Principal) bool {
	return !user.CanAccess(caller.Role, "tasks.manage", user.ScopeAll) &&
		!user.CanAccess(caller.Role, "tasks.manage", user.ScopeTeam)
}

func (s *TaskServiceImpl) ownTask(caller user.Principal, t *task.Task) bool {
	if t.CreatedBy == caller.UserID {
		return true
	}
	return t.AssigneeID != nil && *t.AssigneeID == caller.UserID
}
