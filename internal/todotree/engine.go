// Package todotree implements the hierarchy operations for one owner's todo
// set. Every operation takes the owner's complete set, returns the complete
// set, and performs no I/O; callers are responsible for loading and persisting
// the set around each call.
package todotree

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/mbuchoff/niche-todo-backend/internal/constants"
	"github.com/mbuchoff/niche-todo-backend/internal/models"
)

var (
	ErrTodoNotFound         = errors.New("todo not found")
	ErrParentNotFound       = errors.New("parent todo not found")
	ErrTitleEmpty           = errors.New("title cannot be empty")
	ErrTitleTooLong         = errors.New("title exceeds maximum length")
	ErrReorderSetMismatch   = errors.New("reorder request must contain every todo id exactly once")
	ErrReorderSelfParent    = errors.New("todo cannot be its own parent")
	ErrReorderParentMissing = errors.New("parent id must be included in the reorder request")
	ErrReorderCycle         = errors.New("parent links form a cycle")
	ErrDuplicateSortOrder   = errors.New("duplicate sort order among siblings")
)

// CreateInput represents input for creating a todo
type CreateInput struct {
	Title       string
	StartTime   *time.Time
	EndTime     *time.Time
	IsCompleted bool
	ParentID    *string
}

// UpdateInput represents input for updating a todo
type UpdateInput struct {
	Title       string
	StartTime   *time.Time
	EndTime     *time.Time
	IsCompleted bool
}

// ReorderEntry assigns a parent and sort order to one todo in a bulk reorder.
type ReorderEntry struct {
	ID        string
	ParentID  *string
	SortOrder int64
}

// Create validates input, places the new todo after its last sibling, and
// runs completion propagation seeded with the new item.
func Create(items []models.Todo, ownerID string, input CreateInput, now time.Time) ([]models.Todo, *models.Todo, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, nil, err
	}

	out := make([]models.Todo, len(items), len(items)+1)
	copy(out, items)

	if input.ParentID != nil {
		found := false
		for i := range out {
			if out[i].ID == *input.ParentID {
				found = true
				break
			}
		}
		if !found {
			return nil, nil, ErrParentNotFound
		}
	}

	todo := models.Todo{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		ParentID:    cloneParentID(input.ParentID),
		Title:       title,
		StartTime:   normalizeTime(input.StartTime),
		EndTime:     normalizeTime(input.EndTime),
		IsCompleted: input.IsCompleted,
		SortOrder:   nextSortOrder(out, input.ParentID),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	out = append(out, todo)

	idx := indexByID(out)
	propagateFrom(idx, todo.ID)

	created := *idx[todo.ID]
	return out, &created, nil
}

// Update overwrites the mutable fields of one todo and runs completion
// propagation seeded at it.
func Update(items []models.Todo, id string, input UpdateInput, now time.Time) ([]models.Todo, *models.Todo, error) {
	title, err := normalizeTitle(input.Title)
	if err != nil {
		return nil, nil, err
	}

	out := make([]models.Todo, len(items))
	copy(out, items)

	idx := indexByID(out)
	todo, ok := idx[id]
	if !ok {
		return nil, nil, ErrTodoNotFound
	}

	todo.Title = title
	todo.StartTime = normalizeTime(input.StartTime)
	todo.EndTime = normalizeTime(input.EndTime)
	todo.IsCompleted = input.IsCompleted
	todo.UpdatedAt = now

	propagateFrom(idx, id)

	updated := *idx[id]
	return out, &updated, nil
}

// Delete removes a todo and its entire subtree, then recomputes completion
// state over the remaining set.
func Delete(items []models.Todo, id string) ([]models.Todo, error) {
	idx := indexByID(items)
	if _, ok := idx[id]; !ok {
		return nil, ErrTodoNotFound
	}

	children := childIDsByParent(items)

	// Descendant closure, cycle-safe.
	doomed := map[string]bool{id: true}
	stack := append([]string(nil), children[id]...)
	for len(stack) > 0 {
		next := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if doomed[next] {
			continue
		}
		doomed[next] = true
		stack = append(stack, children[next]...)
	}

	out := make([]models.Todo, 0, len(items)-len(doomed))
	for i := range items {
		if !doomed[items[i].ID] {
			out = append(out, items[i])
		}
	}

	recompute(indexByID(out))
	return out, nil
}

// Reorder reassigns every todo's parent and sort order at once. The entry set
// must cover the owner's set exactly and the resulting parent links must stay
// a forest with distinct sort orders per sibling group.
func Reorder(items []models.Todo, entries []ReorderEntry, now time.Time) ([]models.Todo, error) {
	byID := make(map[string]ReorderEntry, len(entries))
	for _, e := range entries {
		if _, dup := byID[e.ID]; dup {
			return nil, ErrReorderSetMismatch
		}
		byID[e.ID] = e
	}
	if len(byID) != len(items) {
		return nil, ErrReorderSetMismatch
	}
	for i := range items {
		if _, ok := byID[items[i].ID]; !ok {
			return nil, ErrReorderSetMismatch
		}
	}

	for _, e := range entries {
		if e.ParentID != nil && *e.ParentID == e.ID {
			return nil, ErrReorderSelfParent
		}
	}

	for _, e := range entries {
		if e.ParentID != nil {
			if _, ok := byID[*e.ParentID]; !ok {
				return nil, ErrReorderParentMissing
			}
		}
	}

	// Walk each parent chain; revisiting an id within one walk is a cycle.
	for _, e := range entries {
		seen := map[string]bool{e.ID: true}
		cur := e
		for cur.ParentID != nil {
			parent := byID[*cur.ParentID]
			if seen[parent.ID] {
				return nil, ErrReorderCycle
			}
			seen[parent.ID] = true
			cur = parent
		}
	}

	ordersByParent := make(map[string]map[int64]bool)
	for _, e := range entries {
		key := ""
		if e.ParentID != nil {
			key = *e.ParentID
		}
		orders := ordersByParent[key]
		if orders == nil {
			orders = make(map[int64]bool)
			ordersByParent[key] = orders
		}
		if orders[e.SortOrder] {
			return nil, ErrDuplicateSortOrder
		}
		orders[e.SortOrder] = true
	}

	out := make([]models.Todo, len(items))
	copy(out, items)
	for i := range out {
		e := byID[out[i].ID]
		out[i].ParentID = cloneParentID(e.ParentID)
		out[i].SortOrder = e.SortOrder
		out[i].UpdatedAt = now
	}

	recompute(indexByID(out))
	return out, nil
}

func normalizeTitle(title string) (string, error) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return "", ErrTitleEmpty
	}
	// The cap is counted in characters, not bytes, so multibyte titles get
	// the full length.
	if utf8.RuneCountInString(trimmed) > constants.MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return trimmed, nil
}

func normalizeTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	utc := t.UTC()
	return &utc
}

func cloneParentID(parentID *string) *string {
	if parentID == nil {
		return nil
	}
	id := *parentID
	return &id
}

// nextSortOrder returns 1 + the highest sort order among siblings of the
// given parent, or 0 when the todo has no siblings yet.
func nextSortOrder(items []models.Todo, parentID *string) int64 {
	var max int64
	found := false
	for i := range items {
		if !sameParent(items[i].ParentID, parentID) {
			continue
		}
		if !found || items[i].SortOrder > max {
			max = items[i].SortOrder
			found = true
		}
	}
	if !found {
		return 0
	}
	return max + 1
}

func sameParent(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func indexByID(items []models.Todo) map[string]*models.Todo {
	idx := make(map[string]*models.Todo, len(items))
	for i := range items {
		idx[items[i].ID] = &items[i]
	}
	return idx
}

func childIDsByParent(items []models.Todo) map[string][]string {
	children := make(map[string][]string)
	for i := range items {
		if items[i].ParentID != nil {
			children[*items[i].ParentID] = append(children[*items[i].ParentID], items[i].ID)
		}
	}
	return children
}
