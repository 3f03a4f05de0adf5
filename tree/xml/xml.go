/*
Package xml exports trees as XML documents with one element per node:

	<DecisionTree>
	  <Node attributeIndex="hair">
	    <IF value="blond">
	      <LeafNode class="+"></LeafNode>
	    </IF>
	    ...
	  </Node>
	</DecisionTree>

Internal nodes carry the name of the column they split on and an IF
element per branch; leaves carry the class they predict.
*/
package xml

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/pbanos/arbor/tree"
)

const (
	nDecisionTree = "DecisionTree"
	nNode         = "Node"
	nIf           = "IF"
	nLeafNode     = "LeafNode"
	aAttribute    = "attributeIndex"
	aValue        = "value"
	aClass        = "class"
)

/*
WriteXMLTree takes a context, a tree and an io.Writer and writes an
indented XML representation of the tree onto the writer. It returns an
error if the tree cannot be traversed or the document cannot be written.
*/
func WriteXMLTree(ctx context.Context, t *tree.Tree, w io.Writer) error {
	root, err := t.Root(ctx)
	if err != nil {
		return err
	}
	if _, err = io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	start := xml.StartElement{Name: xml.Name{Local: nDecisionTree}}
	if err = enc.EncodeToken(start); err != nil {
		return err
	}
	if err = encodeNode(ctx, t, root, enc); err != nil {
		return err
	}
	if err = enc.EncodeToken(start.End()); err != nil {
		return err
	}
	if err = enc.Flush(); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

/*
WriteXMLTreeToFile takes a context, a tree and a filepath string, creates
the file and writes the tree on it with WriteXMLTree.
*/
func WriteXMLTreeToFile(ctx context.Context, t *tree.Tree, filepath string) error {
	f, err := os.Create(filepath)
	if err != nil {
		return fmt.Errorf("creating %s to write tree as XML: %w", filepath, err)
	}
	defer f.Close()
	return WriteXMLTree(ctx, t, f)
}

func encodeNode(ctx context.Context, t *tree.Tree, n *tree.Node, enc *xml.Encoder) error {
	if n.IsLeaf() {
		leaf := xml.StartElement{
			Name: xml.Name{Local: nLeafNode},
			Attr: []xml.Attr{{Name: xml.Name{Local: aClass}, Value: n.Class}},
		}
		if err := enc.EncodeToken(leaf); err != nil {
			return err
		}
		return enc.EncodeToken(leaf.End())
	}
	start := xml.StartElement{
		Name: xml.Name{Local: nNode},
		Attr: []xml.Attr{{Name: xml.Name{Local: aAttribute}, Value: t.ColumnName(n.Attribute)}},
	}
	if err := enc.EncodeToken(start); err != nil {
		return err
	}
	for _, value := range n.BranchOrder {
		child, err := t.NodeStore.Get(ctx, n.Branches[value])
		if err != nil {
			return err
		}
		if child == nil {
			return fmt.Errorf("node %s not found", n.Branches[value])
		}
		cond := xml.StartElement{
			Name: xml.Name{Local: nIf},
			Attr: []xml.Attr{{Name: xml.Name{Local: aValue}, Value: value}},
		}
		if err = enc.EncodeToken(cond); err != nil {
			return err
		}
		if err = encodeNode(ctx, t, child, enc); err != nil {
			return err
		}
		if err = enc.EncodeToken(cond.End()); err != nil {
			return err
		}
	}
	return enc.EncodeToken(start.End())
}
