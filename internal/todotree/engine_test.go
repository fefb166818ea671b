package todotree

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbuchoff/niche-todo-backend/internal/models"
)

const testOwner = "owner-1"

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr(s string) *string {
	return &s
}

func newTodo(id string, parentID *string, sortOrder int64, completed bool) models.Todo {
	return models.Todo{
		ID:          id,
		OwnerID:     testOwner,
		ParentID:    parentID,
		Title:       "Todo " + id,
		IsCompleted: completed,
		SortOrder:   sortOrder,
	}
}

func findByID(t *testing.T, items []models.Todo, id string) models.Todo {
	t.Helper()
	for i := range items {
		if items[i].ID == id {
			return items[i]
		}
	}
	t.Fatalf("todo %s not found in set", id)
	return models.Todo{}
}

func TestCreate_AssignsNextSortOrder(t *testing.T) {
	items := []models.Todo{
		newTodo("a", nil, 0, false),
		newTodo("b", nil, 5, false),
	}

	out, created, err := Create(items, testOwner, CreateInput{Title: "new root"}, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(6), created.SortOrder)
	assert.Len(t, out, 3)

	// Sort orders never collide among siblings.
	for i := range out {
		if out[i].ID != created.ID && out[i].ParentID == nil {
			assert.Less(t, out[i].SortOrder, created.SortOrder)
		}
	}
}

func TestCreate_FirstSiblingGetsZero(t *testing.T) {
	items := []models.Todo{newTodo("a", nil, 3, false)}

	_, created, err := Create(items, testOwner, CreateInput{Title: "child", ParentID: ptr("a")}, testNow)
	require.NoError(t, err)
	assert.Equal(t, int64(0), created.SortOrder)
	assert.Equal(t, "a", *created.ParentID)
}

func TestCreate_ParentNotFound(t *testing.T) {
	items := []models.Todo{newTodo("a", nil, 0, false)}

	_, _, err := Create(items, testOwner, CreateInput{Title: "child", ParentID: ptr("missing")}, testNow)
	assert.ErrorIs(t, err, ErrParentNotFound)
}

func TestCreate_TitleValidation(t *testing.T) {
	_, _, err := Create(nil, testOwner, CreateInput{Title: "   "}, testNow)
	assert.ErrorIs(t, err, ErrTitleEmpty)

	_, _, err = Create(nil, testOwner, CreateInput{Title: strings.Repeat("x", 257)}, testNow)
	assert.ErrorIs(t, err, ErrTitleTooLong)
}

func TestCreate_TitleLengthCountsCharactersNotBytes(t *testing.T) {
	// 256 three-byte characters must be accepted.
	_, created, err := Create(nil, testOwner, CreateInput{Title: strings.Repeat("あ", 256)}, testNow)
	require.NoError(t, err)
	assert.Equal(t, 256, utf8.RuneCountInString(created.Title))

	_, _, err = Create(nil, testOwner, CreateInput{Title: strings.Repeat("あ", 257)}, testNow)
	assert.ErrorIs(t, err, ErrTitleTooLong)
}

func TestCreate_TrimsTitleAndNormalizesTimesToUTC(t *testing.T) {
	loc := time.FixedZone("JST", 9*3600)
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, loc)

	_, created, err := Create(nil, testOwner, CreateInput{Title: "  trimmed  ", StartTime: &start}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "trimmed", created.Title)
	assert.Equal(t, time.UTC, created.StartTime.Location())
	assert.True(t, created.StartTime.Equal(start))
}

func TestCreate_CompletedChildCanCompleteParent(t *testing.T) {
	items := []models.Todo{
		newTodo("parent", nil, 0, false),
		newTodo("done-child", ptr("parent"), 0, true),
	}

	out, created, err := Create(items, testOwner, CreateInput{
		Title:       "second child",
		ParentID:    ptr("parent"),
		IsCompleted: true,
	}, testNow)
	require.NoError(t, err)
	assert.True(t, created.IsCompleted)
	assert.True(t, findByID(t, out, "parent").IsCompleted)
}

func TestUpdate_NotFound(t *testing.T) {
	items := []models.Todo{newTodo("a", nil, 0, false)}

	_, _, err := Update(items, "missing", UpdateInput{Title: "x"}, testNow)
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestUpdate_OverwritesFields(t *testing.T) {
	items := []models.Todo{newTodo("a", nil, 0, false)}
	end := time.Date(2026, 3, 5, 18, 0, 0, 0, time.UTC)

	out, updated, err := Update(items, "a", UpdateInput{
		Title:       "renamed",
		EndTime:     &end,
		IsCompleted: true,
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Title)
	assert.True(t, updated.IsCompleted)
	assert.True(t, updated.EndTime.Equal(end))
	assert.Equal(t, testNow, updated.UpdatedAt)
	assert.True(t, findByID(t, out, "a").IsCompleted)
}

func TestDelete_RemovesSubtreeOnly(t *testing.T) {
	items := []models.Todo{
		newTodo("root", nil, 0, false),
		newTodo("child", ptr("root"), 0, false),
		newTodo("grandchild", ptr("child"), 0, false),
		newTodo("other", nil, 1, false),
	}

	out, err := Delete(items, "child")
	require.NoError(t, err)
	require.Len(t, out, 2)

	ids := map[string]bool{}
	for i := range out {
		ids[out[i].ID] = true
	}
	assert.True(t, ids["root"])
	assert.True(t, ids["other"])
	assert.False(t, ids["child"])
	assert.False(t, ids["grandchild"])
}

func TestDelete_NotFound(t *testing.T) {
	_, err := Delete([]models.Todo{newTodo("a", nil, 0, false)}, "missing")
	assert.ErrorIs(t, err, ErrTodoNotFound)
}

func TestDelete_RecomputesRemainingAncestors(t *testing.T) {
	// Parent incomplete because of one incomplete child; removing that child
	// leaves only the completed one, so the parent rolls up to completed.
	items := []models.Todo{
		newTodo("parent", nil, 0, false),
		newTodo("done", ptr("parent"), 0, true),
		newTodo("pending", ptr("parent"), 1, false),
	}

	out, err := Delete(items, "pending")
	require.NoError(t, err)
	assert.True(t, findByID(t, out, "parent").IsCompleted)
}

func TestReorder_SetMismatch(t *testing.T) {
	items := []models.Todo{
		newTodo("a", nil, 0, false),
		newTodo("b", nil, 1, false),
	}

	cases := []struct {
		name    string
		entries []ReorderEntry
	}{
		{"missing id", []ReorderEntry{{ID: "a"}}},
		{"extra id", []ReorderEntry{{ID: "a"}, {ID: "b", SortOrder: 1}, {ID: "c", SortOrder: 2}}},
		{"duplicate id", []ReorderEntry{{ID: "a"}, {ID: "a", SortOrder: 1}}},
		{"unknown id replacing known", []ReorderEntry{{ID: "a"}, {ID: "c", SortOrder: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := Reorder(items, tc.entries, testNow)
			assert.ErrorIs(t, err, ErrReorderSetMismatch)
			assert.Nil(t, out)
		})
	}

	// The original set is never mutated on failure.
	assert.Nil(t, items[0].ParentID)
	assert.Equal(t, int64(1), items[1].SortOrder)
}

func TestReorder_SelfParent(t *testing.T) {
	items := []models.Todo{newTodo("a", nil, 0, false)}

	_, err := Reorder(items, []ReorderEntry{{ID: "a", ParentID: ptr("a")}}, testNow)
	assert.ErrorIs(t, err, ErrReorderSelfParent)
}

func TestReorder_Cycle(t *testing.T) {
	items := []models.Todo{
		newTodo("a", nil, 0, false),
		newTodo("b", nil, 1, false),
		newTodo("c", nil, 2, false),
	}

	// a -> b -> c -> a
	_, err := Reorder(items, []ReorderEntry{
		{ID: "a", ParentID: ptr("b")},
		{ID: "b", ParentID: ptr("c")},
		{ID: "c", ParentID: ptr("a")},
	}, testNow)
	assert.ErrorIs(t, err, ErrReorderCycle)
}

func TestReorder_DuplicateSortOrder(t *testing.T) {
	items := []models.Todo{
		newTodo("a", nil, 0, false),
		newTodo("b", nil, 1, false),
	}

	_, err := Reorder(items, []ReorderEntry{
		{ID: "a", SortOrder: 3},
		{ID: "b", SortOrder: 3},
	}, testNow)
	assert.ErrorIs(t, err, ErrDuplicateSortOrder)
}

func TestReorder_SameSortOrderUnderDifferentParentsIsFine(t *testing.T) {
	items := []models.Todo{
		newTodo("a", nil, 0, false),
		newTodo("b", nil, 1, false),
		newTodo("c", nil, 2, false),
	}

	out, err := Reorder(items, []ReorderEntry{
		{ID: "a", SortOrder: 0},
		{ID: "b", ParentID: ptr("a"), SortOrder: 0},
		{ID: "c", SortOrder: 1},
	}, testNow)
	require.NoError(t, err)
	assert.Equal(t, "a", *findByID(t, out, "b").ParentID)
}

func TestReorder_RecomputesCompletionAfterReparenting(t *testing.T) {
	// "parent" starts incomplete because of an incomplete child. Moving that
	// child out from under it leaves only a completed child, so "parent"
	// rolls up; "other" gains the incomplete child and stays incomplete.
	items := []models.Todo{
		newTodo("parent", nil, 0, false),
		newTodo("done", ptr("parent"), 0, true),
		newTodo("pending", ptr("parent"), 1, false),
		newTodo("other", nil, 1, false),
	}

	out, err := Reorder(items, []ReorderEntry{
		{ID: "parent", SortOrder: 0},
		{ID: "done", ParentID: ptr("parent"), SortOrder: 0},
		{ID: "pending", ParentID: ptr("other"), SortOrder: 0},
		{ID: "other", SortOrder: 1},
	}, testNow)
	require.NoError(t, err)
	assert.True(t, findByID(t, out, "parent").IsCompleted)
	assert.False(t, findByID(t, out, "other").IsCompleted)
	assert.False(t, findByID(t, out, "pending").IsCompleted)
}
