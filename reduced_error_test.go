package arbor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/dataset"
)

func TestPruneReplacesSubtree(t *testing.T) {
	ctx := context.Background()
	tr, err := CreateTree(ctx, weatherRows(), 2)
	require.NoError(t, err)
	validation := dataset.Rows{{"sunny", "yes", "no"}, {"overcast", "yes", "no"}}

	report, err := Prune(ctx, tr, validation, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Evaluated)
	assert.Equal(t, 1, report.Replaced)

	root, err := tr.Root(ctx)
	require.NoError(t, err)
	assert.False(t, root.IsLeaf())
	for _, id := range root.ChildIDs() {
		c, err := tr.NodeStore.Get(ctx, id)
		require.NoError(t, err)
		assert.True(t, c.IsLeaf())
	}
	accuracy, err := tr.Accuracy(ctx, validation)
	require.NoError(t, err)
	assert.Equal(t, 1.0, accuracy)

	report, err = Prune(ctx, tr, validation, 2)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Replaced)
}

func TestPruneKeepsUsefulSubtree(t *testing.T) {
	ctx := context.Background()
	tr, err := CreateTree(ctx, weatherRows(), 2)
	require.NoError(t, err)
	report, err := Prune(ctx, tr, dataset.Rows{{"overcast", "yes", "yes"}}, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Evaluated)
	assert.Equal(t, 0, report.Replaced)
	nodes, _, err := tr.Size(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, nodes)
}

func TestPruneNeverReplacesRoot(t *testing.T) {
	ctx := context.Background()
	rows := dataset.Rows{{"a", "yes"}, {"b", "no"}, {"a", "yes"}}
	tr, err := CreateTree(ctx, rows, 1)
	require.NoError(t, err)
	report, err := Prune(ctx, tr, dataset.Rows{{"a", "no"}, {"b", "yes"}}, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Replaced)
	root, err := tr.Root(ctx)
	require.NoError(t, err)
	assert.False(t, root.IsLeaf())
}

func TestPruneEmptyValidationSet(t *testing.T) {
	ctx := context.Background()
	tr, err := CreateTree(ctx, weatherRows(), 2)
	require.NoError(t, err)
	_, err = Prune(ctx, tr, nil, 2)
	assert.True(t, errors.Is(err, ErrEmptyValidationSet))
}
