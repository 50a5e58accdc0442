package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)

	// List retrieves users filtered by team when teamID is non-nil
	List(ctx context.Context, filter UserFilter) ([]User, int64, error)

	Update(ctx context.Context, u User) error
	UpdateRole(ctx context.Context, userID string, role Role) error
	UpdatePassword(ctx context.Context, userID, passwordHash string) error

	// GetTeamMemberIDs returns the user ids of every member of a team.
	// Used by scoped list queries elsewhere.
	GetTeamMemberIDs(ctx context.Context, teamID string) ([]string, error)
}
