package tree

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
)

// Tree represents a decision tree. It is composed of a
// NodeStore where all its nodes are stored, the id for the
// root node of the tree, the index of the label column it
// predicts and the names of the columns of the rows it
// was grown from.
type Tree struct {
	NodeStore
	RootID     string
	LabelIndex int
	Header     []string
}

// New takes the ID for the root Node, a NodeStore, a label index and a
// header and returns a tree composed of the nodes in the NodeStore
// connected to the node with the given root ID.
func New(rootID string, nodeStore NodeStore, labelIndex int, header []string) *Tree {
	return &Tree{nodeStore, rootID, labelIndex, header}
}

// ColumnName returns the name of the column at index i
func (t *Tree) ColumnName(i int) string {
	return dataset.ColumnName(t.Header, i)
}

// Root returns the root node of the tree
func (t *Tree) Root(ctx context.Context) (*Node, error) {
	return t.node(ctx, t.RootID)
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	return t.TraverseFrom(ctx, t.RootID, bottomup, f)
}

// TraverseFrom works like Traverse on the subtree rooted at the node
// with the given ID.
func (t *Tree) TraverseFrom(ctx context.Context, nodeID string, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.node(ctx, nodeID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		if err = f(ctx, n); err != nil {
			return err
		}
	}
	for _, cID := range n.ChildIDs() {
		c, err := t.node(ctx, cID)
		if err != nil {
			return err
		}
		if err = t.traverse(ctx, c, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(ctx, n)
	}
	return nil
}

/*
ReplaceWithLeaf takes the ID of a non-root node and a class, creates a leaf
predicting that class for the node's rows and puts it in place of the node
on its parent's branches. The replaced subtree is no longer reachable and
is deleted from the store. The new leaf is returned, or an error wrapping
ErrRootReplacement if the node is the root of the tree.
*/
func (t *Tree) ReplaceWithLeaf(ctx context.Context, nodeID, class string) (*Node, error) {
	n, err := t.node(ctx, nodeID)
	if err != nil {
		return nil, err
	}
	if n.IsRoot() || nodeID == t.RootID {
		return nil, fmt.Errorf("replacing node %s: %w", nodeID, ErrRootReplacement)
	}
	parent, err := t.node(ctx, n.ParentID)
	if err != nil {
		return nil, err
	}
	value, ok := parent.BranchTo(nodeID)
	if !ok {
		return nil, fmt.Errorf("replacing node %s: parent %s has no branch to it", nodeID, parent.ID)
	}
	var subtree []*Node
	err = t.TraverseFrom(ctx, nodeID, true, func(_ context.Context, sn *Node) error {
		subtree = append(subtree, sn)
		return nil
	})
	if err != nil {
		return nil, err
	}
	leaf := NewLeaf(parent.ID, n.Rows, class)
	if err = t.NodeStore.Create(ctx, leaf); err != nil {
		return nil, fmt.Errorf("replacing node %s: creating leaf: %w", nodeID, err)
	}
	parent.AddBranch(value, leaf.ID)
	if err = t.NodeStore.Store(ctx, parent); err != nil {
		return nil, fmt.Errorf("replacing node %s: storing parent %s: %w", nodeID, parent.ID, err)
	}
	for _, sn := range subtree {
		if err = t.NodeStore.Delete(ctx, sn); err != nil {
			return nil, fmt.Errorf("replacing node %s: deleting node %s: %w", nodeID, sn.ID, err)
		}
	}
	return leaf, nil
}

// Size returns the number of nodes and the number of leaves of the tree
func (t *Tree) Size(ctx context.Context) (nodes, leaves int, err error) {
	err = t.Traverse(ctx, false, func(_ context.Context, n *Node) error {
		nodes++
		if n.IsLeaf() {
			leaves++
		}
		return nil
	})
	return nodes, leaves, err
}

// Depth returns the number of levels of the tree, 1 for a single leaf
func (t *Tree) Depth(ctx context.Context) (int, error) {
	root, err := t.node(ctx, t.RootID)
	if err != nil {
		return 0, err
	}
	return t.depth(ctx, root)
}

func (t *Tree) depth(ctx context.Context, n *Node) (int, error) {
	deepest := 0
	for _, cID := range n.ChildIDs() {
		c, err := t.node(ctx, cID)
		if err != nil {
			return 0, err
		}
		d, err := t.depth(ctx, c)
		if err != nil {
			return 0, err
		}
		if d > deepest {
			deepest = d
		}
	}
	return deepest + 1, nil
}

func (t *Tree) node(ctx context.Context, id string) (*Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("retrieving node %v: %w", id, err)
	}
	if n == nil {
		return nil, fmt.Errorf("node %v not found", id)
	}
	return n, nil
}

func (t *Tree) String() string {
	return t.subtreeString(t.RootID)
}

func (t *Tree) subtreeString(nodeID string) string {
	n, err := t.node(context.TODO(), nodeID)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] (%d rows)\n", nodeID, len(n.Rows))
	if n.IsLeaf() {
		fmt.Fprintf(&b, "{ %s }\n", n.Class)
		return b.String()
	}
	fmt.Fprintf(&b, "{ %s? }\n|\n", t.ColumnName(n.Attribute))
	for i, value := range n.BranchOrder {
		last := i == len(n.BranchOrder)-1
		fmt.Fprintf(&b, "|__ = %s\n", value)
		for _, line := range strings.Split(t.subtreeString(n.Branches[value]), "\n") {
			if len(line) == 0 {
				continue
			}
			if last {
				fmt.Fprintf(&b, "    %s\n", line)
			} else {
				fmt.Fprintf(&b, "|   %s\n", line)
			}
		}
	}
	return b.String()
}
