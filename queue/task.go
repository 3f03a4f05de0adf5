package queue

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

// Task represents a tree.Node to be developed
// on a tree.Tree.
type Task struct {
	// The node to be developed. It already exists
	// on the tree's NodeStore.
	Node *tree.Node
	// The training rows that reached the node
	Rows dataset.Rows
	// The dominant class of the parent node's rows,
	// used when Rows is empty. Empty for the root.
	Fallback string
	// The depth of the node in the tree, 1 for the root
	Depth int
	// The attributes that can be used to split the
	// node into branches. It excludes the attributes
	// used in ancestor nodes.
	AvailableAttributes []int
}

// ID returns a string that identifies the
// task, the ID of its Node.
func (t *Task) ID() string {
	return t.Node.ID
}

// Available returns whether the attribute can be
// used to split the task's node.
func (t *Task) Available(attribute int) bool {
	for _, a := range t.AvailableAttributes {
		if a == attribute {
			return true
		}
	}
	return false
}

// Without returns the available attributes of the
// task minus the given one, for the task's children.
func (t *Task) Without(attribute int) []int {
	result := make([]int, 0, len(t.AvailableAttributes))
	for _, a := range t.AvailableAttributes {
		if a != attribute {
			result = append(result, a)
		}
	}
	return result
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %s depth:%d rows:%d}", t.Node.ID, t.Depth, len(t.Rows))
}
