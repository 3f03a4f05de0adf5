package arbor

import (
	"context"
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

// PruneError represents an error related with pruning trees
type PruneError string

const (
	// ErrEmptyValidationSet is returned when pruning a tree
	// without validation rows to measure its accuracy.
	ErrEmptyValidationSet = PruneError("cannot prune with an empty validation set")
)

func (pe PruneError) Error() string {
	return string(pe)
}

// PruneReport summarizes a reduced-error pruning pass
type PruneReport struct {
	// Evaluated is the number of internal nodes considered for replacement
	Evaluated int
	// Replaced is the number of internal nodes replaced by leaves
	Replaced int
}

func (pr *PruneReport) String() string {
	return fmt.Sprintf("{PruneReport evaluated: %d replaced: %d}", pr.Evaluated, pr.Replaced)
}

/*
Prune takes a context, a tree, a set of validation rows and the index of their
label column and applies reduced-error pruning to the tree in place.

Internal nodes are visited bottom-up, children before parents. For every
non-root internal node, the accuracy of the whole tree on the validation rows
is compared with the share of validation rows whose label equals the dominant
class of the node's training rows. When the latter is not lower, the node's
subtree is replaced by a leaf predicting that class. The root is never
replaced.

An error wrapping ErrEmptyValidationSet is returned if there are no
validation rows.
*/
func Prune(ctx context.Context, t *tree.Tree, validation dataset.Rows, labelIndex int) (*PruneReport, error) {
	if len(validation) == 0 {
		return nil, fmt.Errorf("pruning tree: %w", ErrEmptyValidationSet)
	}
	report := &PruneReport{}
	err := t.Traverse(ctx, true, func(ctx context.Context, visited *tree.Node) error {
		if visited.ID == t.RootID {
			return nil
		}
		n, err := t.NodeStore.Get(ctx, visited.ID)
		if err != nil {
			return err
		}
		if n == nil || n.IsLeaf() || n.IsRoot() {
			return nil
		}
		report.Evaluated++
		before, err := t.Accuracy(ctx, validation)
		if err != nil {
			return err
		}
		class, err := n.Rows.DominantClass(labelIndex)
		if err != nil {
			return fmt.Errorf("pruning node %s: %w", n.ID, err)
		}
		after := classShare(validation, labelIndex, class)
		if after < before {
			return nil
		}
		_, err = t.ReplaceWithLeaf(ctx, n.ID, class)
		if err != nil {
			return err
		}
		report.Replaced++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// classShare returns the share of rows labelled with class
func classShare(rows dataset.Rows, labelIndex int, class string) float64 {
	var count int
	for _, r := range rows {
		if r[labelIndex] == class {
			count++
		}
	}
	return float64(count) / float64(len(rows))
}
