package repository

import (
	"time"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
)

// TodoRepository defines the interface for todo data access. The todo set is
// always read and written whole per owner so the tree engine sees a complete,
// consistent snapshot.
type TodoRepository interface {
	// LoadAll returns every todo owned by the given user
	LoadAll(ownerID string) ([]models.Todo, error)

	// Mutate loads the owner's todo set, applies fn to it and replaces the
	// stored set with fn's result, all inside one transaction. The load takes
	// row locks so concurrent mutations for the same owner serialize instead
	// of overwriting each other's snapshot. An error from fn rolls back and
	// is returned unchanged.
	Mutate(ownerID string, fn func(items []models.Todo) ([]models.Todo, error)) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// Update updates a user
	Update(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id string) (*models.User, error)

	// FindByGoogleSubject finds a user by the identity provider subject
	FindByGoogleSubject(subject string) (*models.User, error)
}

// RefreshTokenRepository defines the interface for refresh token data access
type RefreshTokenRepository interface {
	// Create stores a new refresh token row
	Create(token *models.RefreshToken) error

	// FindByHash finds a refresh token by its stored hash
	FindByHash(hash string) (*models.RefreshToken, error)

	// Revoke marks a refresh token revoked; revoked rows are kept
	Revoke(id string, at time.Time) error
}
