package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/handler/http/middleware"
	"github.com/teamops/teamops-backend-go/internal/handler/http/response"
)

type UserHandler interface {
	ListUsers(w http.ResponseWriter, r *http.Request)
	GetUser(w http.ResponseWriter, r *http.Request)
	GetMe(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	ChangeRole(w http.ResponseWriter, r *http.Request)
}

type userHandlerImpl struct {
	userService user.UserService
}

func NewUserHandler(userService user.UserService) UserHandler {
	return &userHandlerImpl{
		userService: userService,
	}
}

// ListUsers implements UserHandler.
func (h *userHandlerImpl) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	filter := user.UserFilter{
		Search: r.URL.Query().Get("search"),
		Page:   1,
		Limit:  20,
	}
	if teamID := r.URL.Query().Get("team_id"); teamID != "" {
		filter.TeamID = &teamID
	}
	if role := r.URL.Query().Get("role"); role != "" {
		filter.Role = &role
	}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && page > 0 {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && limit > 0 && limit <= 100 {
		filter.Limit = limit
	}

	result, err := h.userService.ListUsers(r.Context(), caller, filter)
	if err != nil {
		slog.Error("ListUsers service error", "error", err, "caller_id", caller.UserID)
		response.HandleError(w, err)
		return
	}

	meta := &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	}
	if result.Limit > 0 {
		meta.TotalPages = int((result.TotalCount + int64(result.Limit) - 1) / int64(result.Limit))
	}
	response.SuccessWithMeta(w, result.Users, meta)
}

// GetUser implements UserHandler.
func (h *userHandlerImpl) GetUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	result, err := h.userService.GetUser(r.Context(), caller, chi.URLParam(r, "userID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetMe implements UserHandler.
func (h *userHandlerImpl) GetMe(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	result, err := h.userService.GetUser(r.Context(), caller, caller.UserID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateUser implements UserHandler.
func (h *userHandlerImpl) UpdateUser(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateUser decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "userID")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.UpdateUser(r.Context(), caller, req)
	if err != nil {
		slog.Error("UpdateUser service error", "error", err, "caller_id", caller.UserID, "user_id", req.ID)
		response.HandleError(w, err)
		return
	}

	slog.Info("User updated", "user_id", req.ID, "updated_by", caller.UserID)
	response.SuccessWithMessage(w, "User updated successfully", result)
}

// ChangeRole implements UserHandler.
func (h *userHandlerImpl) ChangeRole(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.PrincipalFromRequest(r)
	if !ok {
		response.Unauthorized(w, "Failed to extract claims from context")
		return
	}

	var req user.UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ChangeRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "userID")
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	result, err := h.userService.ChangeRole(r.Context(), caller, req)
	if err != nil {
		slog.Error("ChangeRole service error", "error", err, "caller_id", caller.UserID, "user_id", req.ID)
		response.HandleError(w, err)
		return
	}

	slog.Info("Role changed", "user_id", req.ID, "role", req.Role, "changed_by", caller.UserID)
	response.SuccessWithMessage(w, "Role updated successfully", result)
}
