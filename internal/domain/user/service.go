package user

import "context"

// UserService defines business logic for user and role management
type UserService interface {
	// ListUsers retrieves users at the widest scope the caller's role allows
	ListUsers(ctx context.Context, caller Principal, filter UserFilter) (ListUsersResponse, error)

	// GetUser retrieves a single user by ID (scoped access)
	GetUser(ctx context.Context, caller Principal, id string) (UserResponse, error)

	// UpdateUser updates profile fields
	UpdateUser(ctx context.Context, caller Principal, req UpdateUserRequest) (UserResponse, error)

	// ChangeRole changes a user's role; the actor must outrank both the
	// target's current role and the requested role
	ChangeRole(ctx context.Context, caller Principal, req UpdateRoleRequest) (UserResponse, error)
}
