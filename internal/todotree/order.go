package todotree

import (
	"sort"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
)

// OrderForListing returns the set in pre-order: every parent immediately
// precedes its children, roots and sibling groups sorted by sort order with
// the id as a stable tie-break. Items whose parent id does not resolve are
// treated as roots. Anything the traversal never reaches (inconsistent data)
// is appended at the end rather than dropped.
func OrderForListing(items []models.Todo) []models.Todo {
	idx := indexByID(items)

	childrenOf := make(map[string][]*models.Todo)
	var roots []*models.Todo
	for i := range items {
		todo := idx[items[i].ID]
		if todo.ParentID == nil {
			roots = append(roots, todo)
			continue
		}
		if _, ok := idx[*todo.ParentID]; !ok {
			roots = append(roots, todo)
			continue
		}
		childrenOf[*todo.ParentID] = append(childrenOf[*todo.ParentID], todo)
	}

	sortSiblings(roots)
	for _, siblings := range childrenOf {
		sortSiblings(siblings)
	}

	ordered := make([]models.Todo, 0, len(items))
	visited := make(map[string]bool, len(items))

	stack := make([]*models.Todo, 0, len(items))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		todo := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[todo.ID] {
			continue
		}
		visited[todo.ID] = true
		ordered = append(ordered, *todo)

		siblings := childrenOf[todo.ID]
		for i := len(siblings) - 1; i >= 0; i-- {
			stack = append(stack, siblings[i])
		}
	}

	if len(ordered) < len(items) {
		var leftovers []*models.Todo
		for i := range items {
			if !visited[items[i].ID] {
				leftovers = append(leftovers, idx[items[i].ID])
			}
		}
		sortSiblings(leftovers)
		for _, todo := range leftovers {
			ordered = append(ordered, *todo)
		}
	}

	return ordered
}

func sortSiblings(siblings []*models.Todo) {
	sort.SliceStable(siblings, func(i, j int) bool {
		if siblings[i].SortOrder != siblings[j].SortOrder {
			return siblings[i].SortOrder < siblings[j].SortOrder
		}
		return siblings[i].ID < siblings[j].ID
	})
}
