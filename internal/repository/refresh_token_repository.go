package repository

import (
	"time"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
	"gorm.io/gorm"
)

// GormRefreshTokenRepository is a GORM implementation of RefreshTokenRepository
type GormRefreshTokenRepository struct {
	db *gorm.DB
}

// NewRefreshTokenRepository creates a new RefreshTokenRepository
func NewRefreshTokenRepository(db *gorm.DB) RefreshTokenRepository {
	return &GormRefreshTokenRepository{db: db}
}

// Create stores a new refresh token row
func (r *GormRefreshTokenRepository) Create(token *models.RefreshToken) error {
	return r.db.Create(token).Error
}

// FindByHash finds a refresh token by its stored hash
func (r *GormRefreshTokenRepository) FindByHash(hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := r.db.Where("token_hash = ?", hash).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// Revoke marks a refresh token revoked at the given time
func (r *GormRefreshTokenRepository) Revoke(id string, at time.Time) error {
	return r.db.Model(&models.RefreshToken{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"revoked_at": at, "updated_at": at}).Error
}
