package todotree

import "github.com/mbuchoff/niche-todo-backend/internal/models"

// propagateFrom applies the seeded completion rules after one item's state
// changed. Completion needs every direct child of an ancestor to be complete
// before the ancestor rolls up; incompletion propagates to the root
// unconditionally.
func propagateFrom(idx map[string]*models.Todo, seedID string) {
	seed, ok := idx[seedID]
	if !ok {
		return
	}

	children := childIndexOf(idx)

	if seed.IsCompleted {
		markDescendantsCompleted(idx, children, seedID)

		seen := map[string]bool{seedID: true}
		cur := seed
		for cur.ParentID != nil {
			parent, ok := idx[*cur.ParentID]
			if !ok || seen[parent.ID] {
				break
			}
			seen[parent.ID] = true
			if !allChildrenCompleted(idx, children, parent.ID) {
				break
			}
			parent.IsCompleted = true
			cur = parent
		}
		return
	}

	seen := map[string]bool{seedID: true}
	cur := seed
	for cur.ParentID != nil {
		parent, ok := idx[*cur.ParentID]
		if !ok || seen[parent.ID] {
			break
		}
		seen[parent.ID] = true
		parent.IsCompleted = false
		cur = parent
	}
}

func markDescendantsCompleted(idx map[string]*models.Todo, children map[string][]string, seedID string) {
	visited := map[string]bool{seedID: true}
	stack := append([]string(nil), children[seedID]...)
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		idx[id].IsCompleted = true
		stack = append(stack, children[id]...)
	}
}

func allChildrenCompleted(idx map[string]*models.Todo, children map[string][]string, parentID string) bool {
	for _, childID := range children[parentID] {
		if !idx[childID].IsCompleted {
			return false
		}
	}
	return true
}

// recompute recalculates completion state for the whole set bottom-up. Every
// item with children becomes the AND of its direct children; leaves keep
// their stored value.
func recompute(idx map[string]*models.Todo) {
	children := childIndexOf(idx)

	type frame struct {
		id       string
		expanded bool
	}

	visited := make(map[string]bool, len(idx))
	for id := range idx {
		if visited[id] {
			continue
		}
		stack := []frame{{id: id}}
		for len(stack) > 0 {
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if f.expanded {
				kids := children[f.id]
				if len(kids) == 0 {
					continue
				}
				idx[f.id].IsCompleted = allChildrenCompleted(idx, children, f.id)
				continue
			}

			if visited[f.id] {
				continue
			}
			visited[f.id] = true
			stack = append(stack, frame{id: f.id, expanded: true})
			for _, childID := range children[f.id] {
				if !visited[childID] {
					stack = append(stack, frame{id: childID})
				}
			}
		}
	}
}

func childIndexOf(idx map[string]*models.Todo) map[string][]string {
	children := make(map[string][]string)
	for id, todo := range idx {
		if todo.ParentID != nil {
			children[*todo.ParentID] = append(children[*todo.ParentID], id)
		}
	}
	return children
}
