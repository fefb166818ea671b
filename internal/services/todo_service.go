package services

import (
	"fmt"
	"time"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
	"github.com/mbuchoff/niche-todo-backend/internal/repository"
	"github.com/mbuchoff/niche-todo-backend/internal/todotree"
)

// TodoService runs tree engine operations against one owner's persisted set.
// Each mutation loads the owner's complete set, applies the pure engine
// operation and writes the whole set back, all inside one repository
// transaction so concurrent mutations for the same owner serialize.
type TodoService struct {
	todoRepo repository.TodoRepository
	now      func() time.Time
}

// NewTodoService creates a new TodoService
func NewTodoService(todoRepo repository.TodoRepository) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		now:      time.Now,
	}
}

// ListTodos returns the owner's todos in listing order (parents before
// children, siblings by sort order).
func (s *TodoService) ListTodos(ownerID string) ([]models.Todo, error) {
	items, err := s.todoRepo.LoadAll(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load todos: %w", err)
	}
	return todotree.OrderForListing(items), nil
}

// CreateTodo creates a todo for the owner and persists the updated set.
func (s *TodoService) CreateTodo(ownerID string, input todotree.CreateInput) (*models.Todo, error) {
	var created *models.Todo
	err := s.todoRepo.Mutate(ownerID, func(items []models.Todo) ([]models.Todo, error) {
		updated, todo, err := todotree.Create(items, ownerID, input, s.now())
		if err != nil {
			return nil, err
		}
		created = todo
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateTodo updates one of the owner's todos and persists the updated set.
func (s *TodoService) UpdateTodo(ownerID, id string, input todotree.UpdateInput) (*models.Todo, error) {
	var result *models.Todo
	err := s.todoRepo.Mutate(ownerID, func(items []models.Todo) ([]models.Todo, error) {
		updated, todo, err := todotree.Update(items, id, input, s.now())
		if err != nil {
			return nil, err
		}
		result = todo
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// DeleteTodo deletes a todo and its whole subtree.
func (s *TodoService) DeleteTodo(ownerID, id string) error {
	return s.todoRepo.Mutate(ownerID, func(items []models.Todo) ([]models.Todo, error) {
		return todotree.Delete(items, id)
	})
}

// ReorderTodos applies a bulk parent/order reassignment and returns the new
// listing order.
func (s *TodoService) ReorderTodos(ownerID string, entries []todotree.ReorderEntry) ([]models.Todo, error) {
	var reordered []models.Todo
	err := s.todoRepo.Mutate(ownerID, func(items []models.Todo) ([]models.Todo, error) {
		updated, err := todotree.Reorder(items, entries, s.now())
		if err != nil {
			return nil, err
		}
		reordered = updated
		return updated, nil
	})
	if err != nil {
		return nil, err
	}
	return todotree.OrderForListing(reordered), nil
}
