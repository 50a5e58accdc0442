package user

import "errors"

var (
	ErrUserNotFound             = errors.New("user not found")
	ErrUserEmailExists          = errors.New("email already registered")
	ErrInvalidEmailFormat       = errors.New("invalid email format")
	ErrInvalidPasswordLength    = errors.New("password must be at least 8 characters")
	ErrInvalidRole              = errors.New("invalid role")
	ErrInvalidOAuthProvider     = errors.New("invalid oauth provider")
	ErrEmailNotVerified         = errors.New("email not verified")
	ErrPendingApproval          = errors.New("account is pending approval")
	ErrInsufficientPermissions  = errors.New("insufficient permissions")
	ErrCannotManageRole         = errors.New("cannot manage a user of equal or higher role")
	ErrTeamNotFound             = errors.New("team not found")
	ErrUpdatedAtBeforeCreatedAt = errors.New("updated_at cannot be before created_at")
)
