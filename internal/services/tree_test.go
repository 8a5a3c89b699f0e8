package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackplan/stackplan/internal/db/models"
)

func uintPtr(v uint) *uint { return &v }

func TestBuildTaskTree(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Name: "root-b", SortOrder: 2},
		{ID: 2, Name: "root-a", SortOrder: 1},
		{ID: 3, Name: "child-second", ParentTaskID: uintPtr(2), SortOrder: 5},
		{ID: 4, Name: "child-first", ParentTaskID: uintPtr(2), SortOrder: 0},
		{ID: 5, Name: "grandchild", ParentTaskID: uintPtr(4)},
	}

	roots := BuildTaskTree(tasks)
	require.Len(t, roots, 2)

	// Root ordering follows SortOrder
	assert.Equal(t, "root-a", roots[0].Name)
	assert.Equal(t, "root-b", roots[1].Name)

	// Children ordered by SortOrder, nested recursively
	require.Len(t, roots[0].Children, 2)
	assert.Equal(t, "child-first", roots[0].Children[0].Name)
	assert.Equal(t, "child-second", roots[0].Children[1].Name)
	require.Len(t, roots[0].Children[0].Children, 1)
	assert.Equal(t, "grandchild", roots[0].Children[0].Children[0].Name)

	assert.Empty(t, roots[1].Children)
}

func TestBuildTaskTreeEmpty(t *testing.T) {
	assert.Empty(t, BuildTaskTree(nil))
	assert.Empty(t, BuildTaskTree([]models.Task{}))
}

func TestBuildTaskTreeDropsOrphans(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "orphan", ParentTaskID: uintPtr(99)},
		{ID: 3, Name: "orphan-child", ParentTaskID: uintPtr(2)},
	}

	roots := BuildTaskTree(tasks)
	require.Len(t, roots, 1)
	assert.Equal(t, "root", roots[0].Name)
	assert.Empty(t, roots[0].Children)
}

func TestBuildTaskTreeStableOnTies(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Name: "first", SortOrder: 0},
		{ID: 2, Name: "second", SortOrder: 0},
		{ID: 3, Name: "third", SortOrder: 0},
	}

	roots := BuildTaskTree(tasks)
	require.Len(t, roots, 3)
	assert.Equal(t, "first", roots[0].Name)
	assert.Equal(t, "second", roots[1].Name)
	assert.Equal(t, "third", roots[2].Name)
}

// The tree is what the API and the assistant snapshot serialize, so the
// children array must survive a JSON round trip.
func TestTaskNodeJSON(t *testing.T) {
	tasks := []models.Task{
		{ID: 1, Name: "root"},
		{ID: 2, Name: "child", ParentTaskID: uintPtr(1)},
	}

	data, err := json.Marshal(BuildTaskTree(tasks))
	require.NoError(t, err)

	var decoded []struct {
		ID       uint   `json:"id"`
		Name     string `json:"name"`
		Children []struct {
			Name     string        `json:"name"`
			Children []interface{} `json:"children"`
		} `json:"children"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "root", decoded[0].Name)
	require.Len(t, decoded[0].Children, 1)
	assert.Equal(t, "child", decoded[0].Children[0].Name)
	assert.Empty(t, decoded[0].Children[0].Children)
}
