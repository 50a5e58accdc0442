package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/teamops/teamops-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepository user.UserRepository) user.UserService {
	return &UserServiceImpl{
		UserRepository: userRepository,
	}
}

// ListUsers implements user.UserService.
func (s *UserServiceImpl) ListUsers(ctx context.Context, caller user.Principal, filter user.UserFilter) (user.ListUsersResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	// Widest scope wins; team-scoped callers only see their own team.
	switch {
	case user.CanAccess(caller.Role, "users.view", user.ScopeAll):
	case user.CanAccess(caller.Role, "users.view", user.ScopeTeam):
		if caller.TeamID == nil {
			return user.ListUsersResponse{}, user.ErrInsufficientPermissions
		}
		filter.TeamID = caller.TeamID
	default:
		return user.ListUsersResponse{}, user.ErrInsufficientPermissions
	}

	users, total, err := s.UserRepository.List(ctx, filter)
	if err != nil {
		return user.ListUsersResponse{}, fmt.Errorf("failed to list users: %w", err)
	}

	resp := user.ListUsersResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		Users:      make([]user.UserResponse, 0, len(users)),
	}
	for i := range users {
		resp.Users = append(resp.Users, toUserResponse(&users[i]))
	}
	return resp, nil
}

// GetUser implements user.UserService.
func (s *UserServiceImpl) GetUser(ctx context.Context, caller user.Principal, id string) (user.UserResponse, error) {
	target, err := s.UserRepository.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	if caller.UserID != id {
		scope := user.ScopeAll
		if caller.SameTeam(target.TeamID) {
			scope = user.ScopeTeam
		}
		if !user.CanAccess(caller.Role, "users.view", scope) {
			return user.UserResponse{}, user.ErrInsufficientPermissions
		}
	}

	return toUserResponse(&target), nil
}

// UpdateUser implements user.UserService.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, caller user.Principal, req user.UpdateUserRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	target, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	// Self-edit covers the name only; moving users between teams needs
	// the management permission.
	if caller.UserID != req.ID || req.TeamID != nil {
		if !user.CanAccess(caller.Role, "users.manage", user.ScopeAll) {
			return user.UserResponse{}, user.ErrInsufficientPermissions
		}
		if caller.UserID != req.ID && !user.CanManage(caller.Role, target.Role) {
			return user.UserResponse{}, user.ErrCannotManageRole
		}
	}

	if req.FullName != nil {
		target.FullName = *req.FullName
	}
	if req.TeamID != nil {
		target.TeamID = req.TeamID
	}

	if err := s.UserRepository.Update(ctx, target); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update user: %w", err)
	}

	updated, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to reload user: %w", err)
	}
	return toUserResponse(&updated), nil
}

// ChangeRole implements user.UserService.
func (s *UserServiceImpl) ChangeRole(ctx context.Context, caller user.Principal, req user.UpdateRoleRequest) (user.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return user.UserResponse{}, err
	}

	target, err := s.UserRepository.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.UserResponse{}, user.ErrUserNotFound
		}
		return user.UserResponse{}, fmt.Errorf("failed to get user: %w", err)
	}

	newRole := user.Role(req.Role)

	// The actor must outrank the target's current role and the role
	// being assigned; nobody can promote past their own rank.
	if !user.CanManage(caller.Role, target.Role) || !user.CanManage(caller.Role, newRole) {
		return user.UserResponse{}, user.ErrCannotManageRole
	}

	if err := s.UserRepository.UpdateRole(ctx, req.ID, newRole); err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to update role: %w", err)
	}

	target.Role = newRole
	return toUserResponse(&target), nil
}

func toUserResponse(u *user.User) user.UserResponse {
	return user.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Role:          string(u.Role),
		RoleLevel:     user.RoleHierarchy[u.Role],
		TeamID:        u.TeamID,
		TeamName:      u.TeamName,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     u.UpdatedAt.Format(time.RFC3339),
	}
}
