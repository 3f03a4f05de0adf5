package tree

import (
	"context"
	"errors"
	"fmt"

	"github.com/pbanos/arbor/dataset"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrNoMatchingBranch is the error returned by the Predict method of a tree
when a row holds a value for which the node being traversed has no branch,
so the tree cannot classify it.
*/
const ErrNoMatchingBranch = PredictionError("no branch matches the row value")

/*
ErrRootReplacement is the error returned when trying to replace the root
of a tree with a leaf: the root has no parent holding a branch to it.
*/
const ErrRootReplacement = PredictionError("the root node cannot be replaced")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
Predict takes a row and returns the class the tree predicts for it. Starting
at the root, it follows the branch for the row's value of every internal
node's attribute until a leaf is reached. If an internal node has no branch
for that value, an error wrapping ErrNoMatchingBranch is returned.
*/
func (t *Tree) Predict(ctx context.Context, row dataset.Row) (string, error) {
	if t == nil {
		return "", fmt.Errorf("nil tree cannot predict rows")
	}
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return "", fmt.Errorf("predicting row: %w", err)
	}
	for !n.IsLeaf() {
		if n.Attribute < 0 || n.Attribute >= len(row) {
			return "", fmt.Errorf("row has no value for attribute %d: %w", n.Attribute, ErrNoMatchingBranch)
		}
		value := row[n.Attribute]
		childID, ok := n.Branches[value]
		if !ok {
			return "", fmt.Errorf("%s is %q: %w", t.ColumnName(n.Attribute), value, ErrNoMatchingBranch)
		}
		n, err = t.node(ctx, childID)
		if err != nil {
			return "", fmt.Errorf("predicting row: %w", err)
		}
	}
	return n.Class, nil
}

/*
Test takes a context and a set of rows and returns three values:
  - the share of rows whose label the tree predicts correctly
  - the number of rows the tree could not classify because of
    ErrNoMatchingBranch errors, counted as wrong predictions
  - an error if a prediction failed for a reason other than the
    tree not having a branch for the row. If this is not nil, the
    other values will be 0.0 and 0 respectively

The success rate of an empty set of rows is 0.
*/
func (t *Tree) Test(ctx context.Context, rows dataset.Rows) (float64, int, error) {
	if t == nil || len(rows) == 0 {
		return 0.0, 0, nil
	}
	var correct, unmatched int
	for _, row := range rows {
		class, err := t.Predict(ctx, row)
		if err != nil {
			if !errors.Is(err, ErrNoMatchingBranch) {
				return 0.0, 0, err
			}
			unmatched++
			continue
		}
		if class == row[t.LabelIndex] {
			correct++
		}
	}
	return float64(correct) / float64(len(rows)), unmatched, nil
}

// Accuracy returns the share of rows whose label the tree predicts
// correctly. Rows the tree cannot classify count as wrong.
func (t *Tree) Accuracy(ctx context.Context, rows dataset.Rows) (float64, error) {
	accuracy, _, err := t.Test(ctx, rows)
	return accuracy, err
}
