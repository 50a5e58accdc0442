package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/teamops/teamops-backend-go/internal/domain/auth"
	"github.com/teamops/teamops-backend-go/internal/domain/user"
	"github.com/teamops/teamops-backend-go/internal/pkg/jwt"
	"github.com/teamops/teamops-backend-go/internal/pkg/oauth"
)

type AuthServiceImpl struct {
	user.UserRepository
	auth.RefreshTokenRepository
	jwt.Service
	google oauth.GoogleService
}

func NewAuthService(userRepository user.UserRepository, refreshTokenRepository auth.RefreshTokenRepository, jwtService jwt.Service, googleService oauth.GoogleService) auth.AuthService {
	return &AuthServiceImpl{
		UserRepository:         userRepository,
		RefreshTokenRepository: refreshTokenRepository,
		Service:                jwtService,
		google:                 googleService,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// issueTokens creates the access/refresh pair and persists the refresh
// token so it can be revoked server-side.
func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, string, error) {
	accessToken, expiresAt, err := a.Service.GenerateAccessToken(userData.ID, userData.Email, userData.Role, userData.TeamID)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.Service.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.RefreshTokenRepository.Store(ctx, userData.ID, refreshToken, refreshExpiresAt); err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to save refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken: accessToken,
		ExpiresAt:   expiresAt,
		UserID:      userData.ID,
		Email:       userData.Email,
		Role:        string(userData.Role),
	}, refreshToken, nil
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, string, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, "", err
	}

	exists, err := a.UserRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return auth.TokenResponse{}, "", user.ErrUserEmailExists
	}

	hashedPassword, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to hash password: %w", err)
	}

	newUser := user.User{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: &hashedPassword,
		Role:         user.RolePendingApproval,
	}
	newUser, err = a.UserRepository.Create(ctx, newUser)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	return a.issueTokens(ctx, newUser)
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, string, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, "", err
	}

	userData, err := a.UserRepository.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, "", auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, "", fmt.Errorf("failed to get user by email: %w", err)
	}

	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidCredentials
	}

	return a.issueTokens(ctx, userData)
}

// LoginWithGoogle implements auth.AuthService.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, code string) (auth.TokenResponse, string, error) {
	if a.google == nil {
		return auth.TokenResponse{}, "", auth.ErrOAuthNotConfigured
	}

	token, err := a.google.ExchangeCode(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	googleUser, err := a.google.FetchUser(ctx, token)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to fetch google user: %w", err)
	}

	userData, err := a.UserRepository.GetByEmail(ctx, googleUser.Email)
	if err != nil {
		if !errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, "", fmt.Errorf("failed to get user by email: %w", err)
		}

		// First Google login creates a pending account.
		provider := "google"
		newUser := user.User{
			Email:           googleUser.Email,
			FullName:        googleUser.Name,
			Role:            user.RolePendingApproval,
			OAuthProvider:   &provider,
			OAuthProviderID: &googleUser.GoogleID,
			EmailVerified:   true,
		}
		userData, err = a.UserRepository.Create(ctx, newUser)
		if err != nil {
			return auth.TokenResponse{}, "", fmt.Errorf("failed to create user: %w", err)
		}
	} else if userData.OAuthProvider == nil || userData.OAuthProviderID == nil {
		userData, err = a.UserRepository.LinkGoogleAccount(ctx, googleUser.GoogleID, userData.Email)
		if err != nil {
			return auth.TokenResponse{}, "", fmt.Errorf("failed to link google account: %w", err)
		}
	}

	return a.issueTokens(ctx, userData)
}

// Refresh implements auth.AuthService. Tokens rotate: the presented
// refresh token is revoked and a new one is issued.
func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, string, error) {
	userID, err := a.Service.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, "", auth.ErrInvalidToken
	}

	active, err := a.RefreshTokenRepository.IsActive(ctx, refreshToken)
	if err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to check refresh token: %w", err)
	}
	if !active {
		return auth.TokenResponse{}, "", auth.ErrRefreshTokenRevoked
	}

	userData, err := a.UserRepository.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.TokenResponse{}, "", auth.ErrUserNotFound
		}
		return auth.TokenResponse{}, "", fmt.Errorf("failed to get user: %w", err)
	}

	if err := a.RefreshTokenRepository.Revoke(ctx, refreshToken); err != nil {
		return auth.TokenResponse{}, "", fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return a.issueTokens(ctx, userData)
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	if err := a.RefreshTokenRepository.Revoke(ctx, refreshToken); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}
