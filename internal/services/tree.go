// Package services contains the business logic sitting between the HTTP
// handlers and the repositories.
package services

import (
	"sort"

	"github.com/stackplan/stackplan/internal/db/models"
)

// TaskNode is a task together with its recursively nested children.
type TaskNode struct {
	models.Task
	Children []*TaskNode `json:"children"`
}

// BuildTaskTree reconstructs the parent/children forest from the flat
// task list of a single project. Siblings are ordered ascending by
// SortOrder; ties keep their original relative order. Tasks whose
// ParentTaskID references a task outside the given set are orphans and
// are dropped from the forest entirely (they are neither pseudo-roots
// nor an error). The input is not mutated.
func BuildTaskTree(tasks []models.Task) []*TaskNode {
	nodes := make(map[uint]*TaskNode, len(tasks))
	order := make([]*TaskNode, 0, len(tasks))
	for i := range tasks {
		node := &TaskNode{Task: tasks[i], Children: []*TaskNode{}}
		nodes[node.ID] = node
		order = append(order, node)
	}

	var roots []*TaskNode
	for _, node := range order {
		if node.ParentTaskID == nil {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[*node.ParentTaskID]
		if !ok || parent == node {
			// Orphaned or self-referential row; excluded from the forest.
			continue
		}
		parent.Children = append(parent.Children, node)
	}

	sortSiblings(roots)
	for _, node := range order {
		sortSiblings(node.Children)
	}
	return roots
}

func sortSiblings(nodes []*TaskNode) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].SortOrder < nodes[j].SortOrder
	})
}
