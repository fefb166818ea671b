package dto

import (
	"time"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
	"github.com/mbuchoff/niche-todo-backend/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	AvatarURL   string    `json:"avatar_url"`
	LastLoginAt time.Time `json:"last_login_at"`
}

// TokenPairResponse is returned by login and refresh. The refresh token is
// the only time the raw value leaves the server.
type TokenPairResponse struct {
	User             UserDTO   `json:"user"`
	AccessToken      string    `json:"access_token"`
	AccessExpiresAt  time.Time `json:"access_expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		Name:        user.Name,
		AvatarURL:   user.AvatarURL,
		LastLoginAt: user.LastLoginAt.UTC(),
	}
}

// ToTokenPairResponse converts a login result to the response shape
func ToTokenPairResponse(result *services.LoginResult) TokenPairResponse {
	return TokenPairResponse{
		User:             ToUserDTO(*result.User),
		AccessToken:      result.Tokens.AccessToken,
		AccessExpiresAt:  result.Tokens.AccessExpiresAt.UTC(),
		RefreshToken:     result.Tokens.RefreshTokenRaw,
		RefreshExpiresAt: result.Tokens.RefreshExpiresAt.UTC(),
	}
}
