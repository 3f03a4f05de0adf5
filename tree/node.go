package tree

import (
	"github.com/pbanos/arbor/dataset"
)

// Kind tells the variant of a node
type Kind int

const (
	// Internal nodes split their rows on an attribute and have children
	Internal Kind = iota
	// Leaf nodes predict a class and have no children
	Leaf
)

// NoAttribute is the attribute index of a node that does not split rows
const NoAttribute = -1

func (k Kind) String() string {
	if k == Leaf {
		return "leaf"
	}
	return "internal"
}

/*
Node is a node of the tree. Nodes reference each other through their
IDs in the NodeStore holding them, never through pointers, so that a
subtree can be replaced without leaving dangling references behind.
*/
type Node struct {
	// An ID to identify the node
	ID string
	// The ID for the parent of the node in the tree, empty for the root
	ParentID string
	// Whether the node is an internal node or a leaf
	Kind Kind
	// The training rows that reached the node
	Rows dataset.Rows
	// For internal nodes, the index of the attribute the node splits on.
	// NoAttribute for leaves.
	Attribute int
	// For internal nodes, the ID of the child for every observed value of
	// the attribute.
	Branches map[string]string
	// The keys of Branches in the order they were added
	BranchOrder []string
	// For leaves, the predicted class
	Class string
}

// NewLeaf returns a leaf under the given parent predicting class for the
// given rows.
func NewLeaf(parentID string, rows dataset.Rows, class string) *Node {
	return &Node{ParentID: parentID, Kind: Leaf, Rows: rows, Attribute: NoAttribute, Class: class}
}

// NewInternal returns an internal node under the given parent splitting
// the given rows on attribute. Branches are added with AddBranch.
func NewInternal(parentID string, rows dataset.Rows, attribute int) *Node {
	return &Node{ParentID: parentID, Kind: Internal, Rows: rows, Attribute: attribute, Branches: make(map[string]string)}
}

// IsLeaf returns whether the node is a leaf
func (n *Node) IsLeaf() bool {
	return n.Kind == Leaf
}

// IsRoot returns whether the node has no parent
func (n *Node) IsRoot() bool {
	return n.ParentID == ""
}

// MakeLeaf turns the node into a leaf predicting class, dropping any
// branch it may have.
func (n *Node) MakeLeaf(class string) {
	n.Kind = Leaf
	n.Attribute = NoAttribute
	n.Branches = nil
	n.BranchOrder = nil
	n.Class = class
}

// MakeInternal turns the node into an internal node splitting on
// attribute, with no branches yet.
func (n *Node) MakeInternal(attribute int) {
	n.Kind = Internal
	n.Attribute = attribute
	n.Branches = make(map[string]string)
	n.BranchOrder = nil
	n.Class = ""
}

// AddBranch makes the node with the given ID the child followed by rows
// holding value for the node's attribute.
func (n *Node) AddBranch(value, childID string) {
	if n.Branches == nil {
		n.Branches = make(map[string]string)
	}
	if _, ok := n.Branches[value]; !ok {
		n.BranchOrder = append(n.BranchOrder, value)
	}
	n.Branches[value] = childID
}

// ChildIDs returns the IDs of the children of the node in branch order
func (n *Node) ChildIDs() []string {
	result := make([]string, 0, len(n.BranchOrder))
	for _, v := range n.BranchOrder {
		result = append(result, n.Branches[v])
	}
	return result
}

// BranchTo returns the value leading to the child with the given ID
func (n *Node) BranchTo(childID string) (string, bool) {
	for _, v := range n.BranchOrder {
		if n.Branches[v] == childID {
			return v, true
		}
	}
	return "", false
}
