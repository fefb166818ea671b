package dto

import (
	"time"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
)

// TodoDTO represents a todo in API responses
type TodoDTO struct {
	ID          string     `json:"id"`
	ParentID    *string    `json:"parent_id"`
	Title       string     `json:"title"`
	StartTime   *time.Time `json:"start_time"`
	EndTime     *time.Time `json:"end_time"`
	IsCompleted bool       `json:"is_completed"`
	SortOrder   int64      `json:"sort_order"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TodoListResponse represents the owner's full set in listing order
type TodoListResponse struct {
	Todos []TodoDTO `json:"todos"`
}

// ToTodoDTO converts a Todo model to TodoDTO. Timestamps go out in UTC.
func ToTodoDTO(todo models.Todo) TodoDTO {
	return TodoDTO{
		ID:          todo.ID,
		ParentID:    todo.ParentID,
		Title:       todo.Title,
		StartTime:   utcTime(todo.StartTime),
		EndTime:     utcTime(todo.EndTime),
		IsCompleted: todo.IsCompleted,
		SortOrder:   todo.SortOrder,
		CreatedAt:   todo.CreatedAt.UTC(),
		UpdatedAt:   todo.UpdatedAt.UTC(),
	}
}

// ToTodoListResponse converts an ordered slice of todos to a list response
func ToTodoListResponse(todos []models.Todo) TodoListResponse {
	items := make([]TodoDTO, len(todos))
	for i, todo := range todos {
		items[i] = ToTodoDTO(todo)
	}
	return TodoListResponse{Todos: items}
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}
