package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mbuchoff/niche-todo-backend/internal/dto"
	apierrors "github.com/mbuchoff/niche-todo-backend/internal/errors"
	"github.com/mbuchoff/niche-todo-backend/internal/middleware"
	"github.com/mbuchoff/niche-todo-backend/internal/services"
	"github.com/mbuchoff/niche-todo-backend/internal/todotree"
)

// TodoHandler coordinates todo HTTP handlers.
type TodoHandler struct {
	todoService *services.TodoService
}

// NewTodoHandler creates a new TodoHandler
func NewTodoHandler(todoService *services.TodoService) *TodoHandler {
	return &TodoHandler{
		todoService: todoService,
	}
}

// ListTodos returns the caller's complete todo set in listing order.
func (h *TodoHandler) ListTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	todos, err := h.todoService.ListTodos(userID)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch todos")
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoListResponse(todos))
}

// CreateTodo creates a new todo, optionally under a parent.
func (h *TodoHandler) CreateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type CreateTodoRequest struct {
		Title       string     `json:"title" binding:"required"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
		IsCompleted bool       `json:"is_completed"`
		ParentID    *string    `json:"parent_id"`
	}

	var req CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.CreateTodo(userID, todotree.CreateInput{
		Title:       req.Title,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsCompleted: req.IsCompleted,
		ParentID:    req.ParentID,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTodoDTO(*todo))
}

// UpdateTodo overwrites the mutable fields of one todo.
func (h *TodoHandler) UpdateTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type UpdateTodoRequest struct {
		Title       string     `json:"title" binding:"required"`
		StartTime   *time.Time `json:"start_time"`
		EndTime     *time.Time `json:"end_time"`
		IsCompleted bool       `json:"is_completed"`
	}

	var req UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	todo, err := h.todoService.UpdateTodo(userID, c.Param("id"), todotree.UpdateInput{
		Title:       req.Title,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoDTO(*todo))
}

// DeleteTodo deletes a todo together with its subtree.
func (h *TodoHandler) DeleteTodo(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.todoService.DeleteTodo(userID, c.Param("id")); err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Todo deleted successfully",
	})
}

// ReorderTodos reassigns parents and sort orders for the whole set at once.
func (h *TodoHandler) ReorderTodos(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "")
		return
	}

	type ReorderItem struct {
		ID        string  `json:"id" binding:"required"`
		ParentID  *string `json:"parent_id"`
		SortOrder int64   `json:"sort_order"`
	}
	type ReorderRequest struct {
		Items []ReorderItem `json:"items" binding:"required"`
	}

	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	entries := make([]todotree.ReorderEntry, len(req.Items))
	for i, item := range req.Items {
		entries[i] = todotree.ReorderEntry{
			ID:        item.ID,
			ParentID:  item.ParentID,
			SortOrder: item.SortOrder,
		}
	}

	todos, err := h.todoService.ReorderTodos(userID, entries)
	if err != nil {
		respondTodoError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTodoListResponse(todos))
}

func respondTodoError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, todotree.ErrTodoNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, todotree.ErrParentNotFound),
		errors.Is(err, todotree.ErrTitleEmpty),
		errors.Is(err, todotree.ErrTitleTooLong):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, todotree.ErrReorderSetMismatch),
		errors.Is(err, todotree.ErrReorderSelfParent),
		errors.Is(err, todotree.ErrReorderParentMissing),
		errors.Is(err, todotree.ErrReorderCycle),
		errors.Is(err, todotree.ErrDuplicateSortOrder):
		apierrors.Conflict(c, err.Error())
	default:
		apierrors.InternalError(c, "")
	}
}
