package user

import (
	"github.com/teamops/teamops-backend-go/internal/pkg/validator"
)

// UserResponse represents user data in API responses
type UserResponse struct {
	ID            string  `json:"id"`
	Email         string  `json:"email"`
	FullName      string  `json:"full_name"`
	Role          string  `json:"role"`
	RoleLevel     int     `json:"role_level"`
	TeamID        *string `json:"team_id,omitempty"`
	TeamName      *string `json:"team_name,omitempty"`
	EmailVerified bool    `json:"email_verified"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

// UserFilter filters the user list
type UserFilter struct {
	TeamID  *string
	UserIDs []string
	Role    *string
	Search  string
	Page    int
	Limit   int
}

// UpdateUserRequest updates profile-level fields
type UpdateUserRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	TeamID   *string `json:"team_id,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full name cannot be empty",
		})
	}
	if r.TeamID != nil && !validator.IsValidUUID(*r.TeamID) {
		errs = append(errs, validator.ValidationError{
			Field:   "team_id",
			Message: "invalid team id",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateRoleRequest changes a user's role
type UpdateRoleRequest struct {
	ID   string `json:"-"`
	Role string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !IsValidRole(Role(r.Role)) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "unknown role",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ListUsersResponse is the paginated user list payload
type ListUsersResponse struct {
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Users      []UserResponse `json:"users"`
}
