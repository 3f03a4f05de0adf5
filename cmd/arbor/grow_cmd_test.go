package main

import (
	"bytes"
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor"
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/tree"
)

func TestPruningStrategy(t *testing.T) {
	for _, ps := range []string{"none", "minimum-description-length", "minimum-information-gain:0.2"} {
		p, err := pruningStrategy(ps)
		assert.NoError(t, err, ps)
		assert.NotNil(t, p, ps)
	}
	p, err := pruningStrategy("minimum-information-gain:0.5")
	require.NoError(t, err)
	assert.True(t, p.Prune(nil, &arbor.Partition{InformationGain: 0.5}, 0))
	assert.False(t, p.Prune(nil, &arbor.Partition{InformationGain: 0.6}, 0))

	for _, ps := range []string{"minimum-information-gain", "minimum-information-gain:x", "default"} {
		_, err := pruningStrategy(ps)
		assert.Error(t, err, ps)
	}
}

func TestReportCrossValidation(t *testing.T) {
	ctx := context.Background()
	rows := dataset.Rows{
		{"a", "yes"}, {"b", "no"}, {"a", "yes"}, {"b", "no"},
		{"a", "yes"}, {"b", "no"}, {"a", "yes"}, {"b", "no"},
	}
	cv, err := arbor.CrossValidate(ctx, rows, 1, arbor.ID3Trainer(), 2, arbor.WithRand(rand.New(rand.NewSource(1))))
	require.NoError(t, err)

	var b bytes.Buffer
	require.NoError(t, reportCrossValidation(ctx, &b, "without pruning", cv))
	assert.Equal(t, "Cross validation without pruning\n"+
		"  1st fold: 100% accuracy on 4 rows, trained on 4 rows\n"+
		"  2nd fold: 100% accuracy on 4 rows, trained on 4 rows\n"+
		"Best accuracy: 100% on the 1st fold, with 3 nodes (2 leaves) and depth 2\n", b.String())
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "87.5%", percent(0.875))
	assert.Equal(t, "0%", percent(0))
}

func TestRowFromValues(t *testing.T) {
	tr := tree.New("1", tree.NewMemoryNodeStore(), 2, []string{"outlook", "windy", "play"})
	row, err := rowFromValues(tr, map[string]string{"windy": "yes"})
	require.NoError(t, err)
	assert.Equal(t, dataset.Row{"?", "yes", "?"}, row)

	_, err = rowFromValues(tr, map[string]string{"humidity": "high"})
	assert.Error(t, err)
}
