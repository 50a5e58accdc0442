package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidToken        = errors.New("invalid or expired token")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrUserNotFound        = errors.New("user not found")
	ErrOAuthNotConfigured  = errors.New("oauth login is not configured")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrAccountPending      = errors.New("account is pending approval")
)
