package repository

import (
	"fmt"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormTodoRepository is a GORM implementation of TodoRepository
type GormTodoRepository struct {
	db *gorm.DB
}

// NewTodoRepository creates a new TodoRepository
func NewTodoRepository(db *gorm.DB) TodoRepository {
	return &GormTodoRepository{db: db}
}

// LoadAll returns every todo owned by the given user
func (r *GormTodoRepository) LoadAll(ownerID string) ([]models.Todo, error) {
	var todos []models.Todo
	if err := r.db.Where("owner_id = ?", ownerID).Find(&todos).Error; err != nil {
		return nil, err
	}
	return todos, nil
}

// Mutate runs a whole-set mutation of the owner's todos in one transaction.
// The read locks the owner's rows (SELECT ... FOR UPDATE; SQLite has no
// row locks and relies on its single writer), so two concurrent mutations
// for the same owner cannot both build on the same snapshot.
func (r *GormTodoRepository) Mutate(ownerID string, fn func(items []models.Todo) ([]models.Todo, error)) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var todos []models.Todo
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("owner_id = ?", ownerID).
			Find(&todos).Error; err != nil {
			return fmt.Errorf("failed to load todos: %w", err)
		}

		updated, err := fn(todos)
		if err != nil {
			return err
		}

		if err := tx.Where("owner_id = ?", ownerID).Delete(&models.Todo{}).Error; err != nil {
			return fmt.Errorf("failed to save todos: %w", err)
		}

		if len(updated) == 0 {
			return nil
		}

		if err := tx.Create(&updated).Error; err != nil {
			return fmt.Errorf("failed to save todos: %w", err)
		}
		return nil
	})
}
