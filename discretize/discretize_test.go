package discretize

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbanos/arbor/dataset"
)

func column(values ...string) *dataset.Dataset {
	rows := make(dataset.Rows, len(values))
	for i, v := range values {
		rows[i] = dataset.Row{v, "yes"}
	}
	return &dataset.Dataset{Header: []string{"x", "label"}, Rows: rows, LabelIndex: 1}
}

func labels(d *dataset.Dataset) []string {
	return d.Rows.Values(0)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "23.0", formatNumber(23))
	assert.Equal(t, "-1.0", formatNumber(-1))
	assert.Equal(t, "2.5", formatNumber(2.5))
	assert.Equal(t, "0.125", formatNumber(0.125))
}

func TestEqualFrequencySortsAndSplits(t *testing.T) {
	d := column("5", "1", "3", "2", "4", "6")
	require.NoError(t, EqualFrequency{}.Discretize(3, d, 0))
	assert.Equal(t, []string{
		"x: [1.0; 2.0]", "x: [1.0; 2.0]",
		"x: [3.0; 4.0]", "x: [3.0; 4.0]",
		"x: [5.0; 6.0]", "x: [5.0; 6.0]",
	}, labels(d))
}

func TestEqualFrequencyRemainder(t *testing.T) {
	d := column("1", "2", "3", "4", "5", "6", "7")
	require.NoError(t, EqualFrequency{}.Discretize(3, d, 0))
	assert.Equal(t, []string{
		"x: [1.0; 3.0]", "x: [1.0; 3.0]", "x: [1.0; 3.0]",
		"x: [4.0; 5.0]", "x: [4.0; 5.0]",
		"x: [6.0; 7.0]", "x: [6.0; 7.0]",
	}, labels(d))
}

func TestEqualFrequencyKeepsTiesTogether(t *testing.T) {
	d := column("1", "1", "1", "2", "3", "4")
	require.NoError(t, EqualFrequency{}.Discretize(3, d, 0))
	assert.Equal(t, []string{
		"x: [1.0; 1.0]", "x: [1.0; 1.0]", "x: [1.0; 1.0]",
		"x: [2.0; 3.0]", "x: [2.0; 3.0]",
		"x: [4.0; 4.0]",
	}, labels(d))

	d = column("1", "1", "1", "1", "1")
	require.NoError(t, EqualFrequency{}.Discretize(3, d, 0))
	for _, l := range labels(d) {
		assert.Equal(t, "x: [1.0; 1.0]", l)
	}
}

func TestEqualWidth(t *testing.T) {
	d := column("0", "10", "5", "2.5", "7.5")
	require.NoError(t, EqualWidth{}.Discretize(4, d, 0))
	assert.Equal(t, []string{
		"x: [0.0, 2.5)",
		"x: [7.5, 10.0]",
		"x: [5.0, 7.5)",
		"x: [2.5, 5.0)",
		"x: [7.5, 10.0]",
	}, labels(d))
}

func TestEqualWidthConstantColumn(t *testing.T) {
	d := column("3", "3", "3")
	require.NoError(t, EqualWidth{}.Discretize(2, d, 0))
	assert.Equal(t, []string{"x: [3.0, 3.0]", "x: [3.0, 3.0]", "x: [3.0, 3.0]"}, labels(d))
}

func TestDiscretizeInvalidValueLeavesRowsUntouched(t *testing.T) {
	for _, disc := range []Discretizer{EqualFrequency{}, EqualWidth{}, &KMeans{Rand: rand.New(rand.NewSource(1))}} {
		d := column("3", "1", "abc", "2")
		err := disc.Discretize(2, d, 0)
		if assert.Error(t, err) {
			assert.True(t, errors.Is(err, ErrInvalidAttributeType))
		}
		assert.Equal(t, []string{"3", "1", "abc", "2"}, labels(d))
	}
}

func TestDiscretizeInvalidBins(t *testing.T) {
	for _, disc := range []Discretizer{EqualFrequency{}, EqualWidth{}, &KMeans{}} {
		err := disc.Discretize(0, column("1", "2"), 0)
		if assert.Error(t, err) {
			assert.True(t, errors.Is(err, ErrInvalidBinCount))
		}
	}
	err := (&KMeans{}).Discretize(3, column("1", "2"), 0)
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, ErrInvalidBinCount))
	}
}

func TestDiscretizeEmptyDataset(t *testing.T) {
	err := EqualWidth{}.Discretize(2, column(), 0)
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, dataset.ErrEmptyDataset))
	}
}

func TestKMeansSeparatesGroups(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		d := column("1", "2", "3", "100", "101", "102")
		km := &KMeans{Rand: rand.New(rand.NewSource(seed))}
		require.NoError(t, km.Discretize(2, d, 0))
		assert.Equal(t, []string{
			"x: [1.0; 3.0]", "x: [1.0; 3.0]", "x: [1.0; 3.0]",
			"x: [100.0; 102.0]", "x: [100.0; 102.0]", "x: [100.0; 102.0]",
		}, labels(d), "seed %d", seed)
	}
}

func TestKMeansClusterQualityHistory(t *testing.T) {
	values := []float64{1, 2, 3, 10, 11, 12, 30, 31}
	km := &KMeans{Epsilon: 0.1, Rand: rand.New(rand.NewSource(7))}
	c := km.Cluster(values, 3)
	require.NotEmpty(t, c.Quality)
	assert.Len(t, c.Assignment, len(values))
	assert.Len(t, c.Centroids, 3)
	for i := 1; i < len(c.Quality); i++ {
		assert.True(t, c.Quality[i] <= c.Quality[i-1])
	}

	capped := &KMeans{MaxIterations: 1, Rand: rand.New(rand.NewSource(7))}
	assert.Len(t, capped.Cluster(values, 3).Quality, 1)
}

func TestKMeansEmptyCluster(t *testing.T) {
	d := column("5", "5", "5")
	km := &KMeans{Rand: rand.New(rand.NewSource(3))}
	require.NoError(t, km.Discretize(2, d, 0))
	assert.Equal(t, []string{"x: [5.0; 5.0]", "x: [5.0; 5.0]", "x: [5.0; 5.0]"}, labels(d))
	c := km.Cluster([]float64{5, 5, 5}, 2)
	assert.Equal(t, []int{0, 0, 0}, c.Assignment)
	assert.Equal(t, []float64{5, 0}, c.Centroids)
}

func TestByName(t *testing.T) {
	d, err := ByName("equal-frequency", 0, nil)
	require.NoError(t, err)
	assert.IsType(t, EqualFrequency{}, d)
	d, err = ByName("Equal-Width", 0, nil)
	require.NoError(t, err)
	assert.IsType(t, EqualWidth{}, d)
	d, err = ByName("k-means", 0.5, nil)
	require.NoError(t, err)
	assert.Equal(t, 0.5, d.(*KMeans).Epsilon)
	_, err = ByName("median", 0, nil)
	if assert.Error(t, err) {
		assert.True(t, errors.Is(err, ErrUnknownMethod))
	}
}

func TestAll(t *testing.T) {
	d := &dataset.Dataset{
		Header: []string{"a", "b", "label"},
		Rows: dataset.Rows{
			{"1", "10", "yes"},
			{"2", "20", "no"},
			{"3", "30", "yes"},
			{"4", "40", "no"},
		},
		LabelIndex: 2,
	}
	require.NoError(t, All(2, d, EqualWidth{}, []int{0, 1}))
	assert.Equal(t, dataset.Row{"a: [1.0, 2.5)", "b: [10.0, 25.0)", "yes"}, d.Rows[0])
	assert.Equal(t, dataset.Row{"a: [2.5, 4.0]", "b: [25.0, 40.0]", "no"}, d.Rows[3])

	d.Rows[0][1] = "oops"
	err := All(2, d, EqualWidth{}, []int{1})
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "discretizing b")
	}
}
