package auth

import "context"

// AuthService defines authentication business logic
type AuthService interface {
	// Register creates a pending-approval account
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, string, error)

	// Login authenticates with email and password. Returns the access
	// token payload plus the refresh token for the cookie.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, string, error)

	// LoginWithGoogle authenticates with a Google account, creating a
	// pending-approval account on first login
	LoginWithGoogle(ctx context.Context, code string) (TokenResponse, string, error)

	// Refresh exchanges a valid refresh token for a new access token
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, string, error)

	// Logout revokes the refresh token
	Logout(ctx context.Context, refreshToken string) error
}

// RefreshTokenRepository persists issued refresh tokens so they can be
// revoked server-side
type RefreshTokenRepository interface {
	Store(ctx context.Context, userID, token string, expiresAt int64) error
	IsActive(ctx context.Context, token string) (bool, error)
	Revoke(ctx context.Context, token string) error
	RevokeAllForUser(ctx context.Context, userID string) error
}
