package json

import (
	"encoding/json"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

/*
NodeEncodeDecoder is an interface for objects
that allow encoding nodes into slices of
bytes and decoding them back to nodes.
*/
type NodeEncodeDecoder interface {

	//Encode receives a *tree.Node
	//and returns a slice of bytes with the node
	//encoded or an error if the encoding could not
	//be performed for some reason.
	Encode(*tree.Node) ([]byte, error)

	//Decode receives a slice of bytes
	//and returns a *tree.Node decoded from the
	//slice of bytes or an error if the decoding
	//could not be performed for some reason.
	Decode([]byte) (*tree.Node, error)
}

type nodeEncodeDecoder struct {
	withoutRows bool
}

type branch struct {
	Value string `json:"v"`
	ID    string `json:"id"`
}

type node struct {
	ID        string     `json:"id"`
	ParentID  string     `json:"pId,omitempty"`
	Leaf      bool       `json:"leaf,omitempty"`
	Attribute *int       `json:"a,omitempty"`
	Branches  []branch   `json:"br,omitempty"`
	Class     string     `json:"class,omitempty"`
	Rows      [][]string `json:"rows,omitempty"`
}

/*
NewNodeEncodeDecoder returns a NodeEncodeDecoder that encodes every field
of a node, including the training rows that reached it. Those rows are
needed to prune a decoded tree.
*/
func NewNodeEncodeDecoder() NodeEncodeDecoder {
	return &nodeEncodeDecoder{}
}

/*
NewCompactNodeEncodeDecoder returns a NodeEncodeDecoder that leaves the
training rows of nodes out of the encoding. Decoded trees can predict
but dominant classes can no longer be computed on their nodes.
*/
func NewCompactNodeEncodeDecoder() NodeEncodeDecoder {
	return &nodeEncodeDecoder{withoutRows: true}
}

func (ned *nodeEncodeDecoder) Encode(n *tree.Node) ([]byte, error) {
	jn := &node{
		ID:       n.ID,
		ParentID: n.ParentID,
		Leaf:     n.IsLeaf(),
		Class:    n.Class,
	}
	if !n.IsLeaf() {
		a := n.Attribute
		jn.Attribute = &a
		for _, v := range n.BranchOrder {
			jn.Branches = append(jn.Branches, branch{v, n.Branches[v]})
		}
	}
	if !ned.withoutRows && len(n.Rows) > 0 {
		jn.Rows = make([][]string, len(n.Rows))
		for i, r := range n.Rows {
			jn.Rows[i] = r
		}
	}
	return json.Marshal(jn)
}

func (ned *nodeEncodeDecoder) Decode(data []byte) (*tree.Node, error) {
	jn := &node{}
	err := json.Unmarshal(data, jn)
	if err != nil {
		return nil, err
	}
	var rows dataset.Rows
	if len(jn.Rows) > 0 {
		rows = make(dataset.Rows, len(jn.Rows))
		for i, r := range jn.Rows {
			rows[i] = r
		}
	}
	if jn.Leaf {
		n := tree.NewLeaf(jn.ParentID, rows, jn.Class)
		n.ID = jn.ID
		return n, nil
	}
	attribute := tree.NoAttribute
	if jn.Attribute != nil {
		attribute = *jn.Attribute
	}
	n := tree.NewInternal(jn.ParentID, rows, attribute)
	n.ID = jn.ID
	for _, b := range jn.Branches {
		n.AddBranch(b.Value, b.ID)
	}
	return n, nil
}
