package repository

import (
	"github.com/mbuchoff/niche-todo-backend/internal/models"
	"gorm.io/gorm"
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// Update updates a user
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByGoogleSubject finds a user by the identity provider subject
func (r *GormUserRepository) FindByGoogleSubject(subject string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("google_subject = ?", subject).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
