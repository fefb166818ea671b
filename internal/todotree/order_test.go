package todotree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
)

func orderedIDs(items []models.Todo) []string {
	ids := make([]string, len(items))
	for i := range items {
		ids[i] = items[i].ID
	}
	return ids
}

func TestOrderForListing_ParentsPrecedeChildren(t *testing.T) {
	// A (root, order 0), B (child of A), C (root, order 1), D (child of C).
	items := []models.Todo{
		newTodo("D", ptr("C"), 0, false),
		newTodo("B", ptr("A"), 0, false),
		newTodo("C", nil, 1, false),
		newTodo("A", nil, 0, false),
	}

	ordered := OrderForListing(items)
	assert.Equal(t, []string{"A", "B", "C", "D"}, orderedIDs(ordered))
}

func TestOrderForListing_SiblingsBySortOrderThenID(t *testing.T) {
	items := []models.Todo{
		newTodo("root", nil, 0, false),
		newTodo("z", ptr("root"), 1, false),
		newTodo("m", ptr("root"), 0, false),
		// Equal sort order falls back to id order.
		newTodo("b", ptr("root"), 2, false),
		newTodo("a", ptr("root"), 2, false),
	}

	ordered := OrderForListing(items)
	assert.Equal(t, []string{"root", "m", "z", "a", "b"}, orderedIDs(ordered))
}

func TestOrderForListing_OrphanTreatedAsRoot(t *testing.T) {
	items := []models.Todo{
		newTodo("a", nil, 1, false),
		newTodo("orphan", ptr("gone"), 0, false),
	}

	ordered := OrderForListing(items)
	require.Len(t, ordered, 2)
	assert.Equal(t, []string{"orphan", "a"}, orderedIDs(ordered))
}

func TestOrderForListing_CyclicItemsAreAppendedNotDropped(t *testing.T) {
	// x and y reference each other, so neither qualifies as a root. They must
	// still appear in the output after the reachable items.
	items := []models.Todo{
		newTodo("a", nil, 0, false),
		newTodo("x", ptr("y"), 1, false),
		newTodo("y", ptr("x"), 2, false),
	}

	ordered := OrderForListing(items)
	assert.Equal(t, []string{"a", "x", "y"}, orderedIDs(ordered))
}

func TestOrderForListing_DeepPreOrder(t *testing.T) {
	items := []models.Todo{
		newTodo("r1", nil, 0, false),
		newTodo("r1c1", ptr("r1"), 0, false),
		newTodo("r1c1g1", ptr("r1c1"), 0, false),
		newTodo("r1c2", ptr("r1"), 1, false),
		newTodo("r2", nil, 1, false),
	}

	ordered := OrderForListing(items)
	assert.Equal(t, []string{"r1", "r1c1", "r1c1g1", "r1c2", "r2"}, orderedIDs(ordered))
}
