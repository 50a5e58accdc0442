package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/task"
	"github.com/teamops/teamops-backend-go/internal/handler/http/middleware"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type TaskHandler interface {
	CreateTask(w http.ResponseWriter, r *http.Request)
	GetTask(w http.ResponseWriter, r *http.Request)
	Board(w http.ResponseWriter, r *http.Request)
	UpdateTask(w http.ResponseWriter, r *http.Request)
	MoveTask(w http.ResponseWriter, r *http.Request)
	DeleteTask(w http.ResponseWriter, r *http.Request)
}

type taskHandlerImpl struct {
	taskService task.TaskService
}

func NewTaskHandler(taskService task.TaskService) TaskHandler {
	return &taskHandlerImpl{
		taskService: taskService,
	}
}

// CreateTask implements TaskHandler.
func (h *taskHandlerImpl) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req task.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.taskService.CreateTask(r.Context(), caller, &req)
	if err != nil {
		slog.Error("CreateTask service error", "error", err, "creator_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task created", "task_id", result.ID, "creator_id", caller.UserID)
	response.Created(w, "Task created successfully", result)
}

// GetTask implements TaskHandler.
func (h *taskHandlerImpl) GetTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	result, err := h.taskService.GetTask(r.Context(), caller, chi.URLParam(r, "taskID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Board implements TaskHandler.
func (h *taskHandlerImpl) Board(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var filter task.TaskFilter
	if v := r.URL.Query().Get("assignee_id"); v != "" {
		filter.AssigneeID = &v
	}
	if v := r.URL.Query().Get("team_id"); v != "" {
		filter.TeamID = &v
	}

	result, err := h.taskService.Board(r.Context(), caller, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateTask implements TaskHandler.
func (h *taskHandlerImpl) UpdateTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req task.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	taskID := chi.URLParam(r, "taskID")
	result, err := h.taskService.UpdateTask(r.Context(), caller, taskID, &req)
	if err != nil {
		slog.Error("UpdateTask service error", "error", err, "task_id", taskID, "caller_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Task updated successfully", result)
}

// MoveTask implements TaskHandler.
func (h *taskHandlerImpl) MoveTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req task.MoveTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("MoveTask decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	taskID := chi.URLParam(r, "taskID")
	result, err := h.taskService.MoveTask(r.Context(), caller, taskID, &req)
	if err != nil {
		slog.Error("MoveTask service error", "error", err, "task_id", taskID, "caller_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task moved", "task_id", taskID, "column", req.Column)
	response.SuccessWithMessage(w, "Task moved successfully", result)
}

// DeleteTask implements TaskHandler.
func (h *taskHandlerImpl) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	taskID := chi.URLParam(r, "taskID")
	if err := h.taskService.DeleteTask(r.Context(), caller, taskID); err != nil {
		slog.Error("DeleteTask service error", "error", err, "task_id", taskID, "caller_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Task deleted", "task_id", taskID)
	response.SuccessWithMessage(w, "Task deleted successfully", nil)
}
