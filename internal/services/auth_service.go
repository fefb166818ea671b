package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mbuchoff/niche-todo-backend/internal/googleauth"
	"github.com/mbuchoff/niche-todo-backend/internal/models"
	"github.com/mbuchoff/niche-todo-backend/internal/repository"
)

var (
	ErrIdentityNotVerified = errors.New("identity could not be verified")
	ErrInvalidRefreshToken = errors.New("refresh token is invalid")
	ErrUserNotFound        = errors.New("user not found")
)

// AuthService handles login, token refresh, and identity reconciliation.
type AuthService struct {
	userRepo     repository.UserRepository
	refreshRepo  repository.RefreshTokenRepository
	tokenService *TokenService
	verifier     googleauth.Verifier
	now          func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, refreshRepo repository.RefreshTokenRepository, tokenService *TokenService, verifier googleauth.Verifier) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		refreshRepo:  refreshRepo,
		tokenService: tokenService,
		verifier:     verifier,
		now:          time.Now,
	}
}

// LoginResult bundles the reconciled user with a freshly issued token pair.
type LoginResult struct {
	User   *models.User
	Tokens *IssuedTokens
}

// LoginWithGoogle verifies the ID token, reconciles the user record, and
// issues a token pair for the device.
func (s *AuthService) LoginWithGoogle(ctx context.Context, idToken, deviceID string) (*LoginResult, error) {
	identity, err := s.verifier.Verify(ctx, idToken)
	if err != nil {
		return nil, ErrIdentityNotVerified
	}

	user, err := s.ReconcileUser(identity, s.now())
	if err != nil {
		return nil, err
	}

	return s.issueAndStore(user, deviceID)
}

// ReconcileUser upserts the stored user for an external identity. A new user
// gets every field set; an existing one only has fields that actually changed
// overwritten, with LastLoginAt always advanced. Idempotent apart from the
// timestamps.
func (s *AuthService) ReconcileUser(identity *googleauth.Identity, now time.Time) (*models.User, error) {
	user, err := s.userRepo.FindByGoogleSubject(identity.Subject)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to look up user: %w", err)
		}

		user = &models.User{
			ID:            uuid.NewString(),
			GoogleSubject: identity.Subject,
			Email:         identity.Email,
			Name:          identity.Name,
			AvatarURL:     identity.AvatarURL,
			LastLoginAt:   now,
		}
		if err := s.userRepo.Create(user); err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		return user, nil
	}

	if identity.Email != "" && identity.Email != user.Email {
		user.Email = identity.Email
	}
	if identity.Name != user.Name {
		user.Name = identity.Name
	}
	if identity.AvatarURL != user.AvatarURL {
		user.AvatarURL = identity.AvatarURL
	}
	user.LastLoginAt = now
	user.UpdatedAt = now

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return user, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Unknown, expired, and revoked tokens all fail the same way
// so a caller learns nothing about which check tripped.
func (s *AuthService) Refresh(rawRefresh, deviceID string) (*LoginResult, error) {
	hash := s.tokenService.HashRefreshToken(rawRefresh)

	row, err := s.refreshRepo.FindByHash(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}

	now := s.now()
	if !row.Usable(now) {
		return nil, ErrInvalidRefreshToken
	}

	if err := s.refreshRepo.Revoke(row.ID, now); err != nil {
		return nil, fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	user, err := s.userRepo.FindByID(row.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidRefreshToken
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if deviceID == "" {
		deviceID = row.DeviceID
	}

	return s.issueAndStore(user, deviceID)
}

// Logout revokes the presented refresh token. An unknown token is not an
// error; logout must always succeed from the client's point of view.
func (s *AuthService) Logout(rawRefresh string) error {
	hash := s.tokenService.HashRefreshToken(rawRefresh)

	row, err := s.refreshRepo.FindByHash(hash)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to look up refresh token: %w", err)
	}

	if row.RevokedAt != nil {
		return nil
	}

	if err := s.refreshRepo.Revoke(row.ID, s.now()); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *AuthService) issueAndStore(user *models.User, deviceID string) (*LoginResult, error) {
	tokens, err := s.tokenService.IssueTokens(user, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue tokens: %w", err)
	}

	row := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		TokenHash: tokens.RefreshTokenHash,
		DeviceID:  deviceID,
		ExpiresAt: tokens.RefreshExpiresAt,
	}
	if err := s.refreshRepo.Create(row); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResult{User: user, Tokens: tokens}, nil
}
