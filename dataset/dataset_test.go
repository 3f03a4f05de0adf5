package dataset

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsMissing(t *testing.T) {
	for _, v := range []string{"NA", "na", "N/A", "NaN", "null", "NULL", "nil", "None", ""} {
		assert.True(t, IsMissing(v), v)
	}
	for _, v := range []string{"0", "no", "nada", "yes"} {
		assert.False(t, IsMissing(v), v)
	}
	assert.True(t, HasMissing(Row{"1", "NA", "yes"}))
	assert.False(t, HasMissing(Row{"1", "2", "yes"}))
}

func TestNew(t *testing.T) {
	d, err := New([]string{"a", "b"}, Rows{{"1", "x"}, {"2", "y"}}, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, d.Width())
	assert.Equal(t, "b", d.ColumnName(1))
	assert.Equal(t, "column 5", d.ColumnName(5))

	_, err = New([]string{"a", "b"}, Rows{{"1", "x"}, {"2"}}, 1)
	assert.True(t, errors.Is(err, ErrRowLength))
	_, err = New(nil, Rows{{"1", "x"}}, 2)
	assert.True(t, errors.Is(err, ErrLabelIndex))

	d, err = New(nil, Rows{{"1", "x", "z"}}, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, d.Width())
}

func TestSplit(t *testing.T) {
	rows := Rows{{"0"}, {"1"}, {"2"}, {"3"}, {"4"}, {"5"}, {"6"}}
	d := &Dataset{Rows: rows}
	held, rest, err := d.Split(0.3, rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	assert.Len(t, held, 3)
	assert.Len(t, rest, 4)
	seen := map[string]bool{}
	for _, r := range append(held.Copy(), rest...) {
		assert.False(t, seen[r[0]], "row %s appears twice", r[0])
		seen[r[0]] = true
	}
	assert.Len(t, seen, 7)
	for i := 1; i < len(rest); i++ {
		assert.True(t, rest[i-1][0] < rest[i][0])
	}

	_, _, err = d.Split(1.5, rand.New(rand.NewSource(1)))
	assert.True(t, errors.Is(err, ErrInvalidFraction))
}

func TestRows(t *testing.T) {
	rows := Rows{
		{"sunny", "yes"},
		{"rain", "no"},
		{"sunny", "no"},
		{"overcast", "yes"},
	}
	values, counts := rows.CountValues(0)
	assert.Equal(t, []string{"sunny", "rain", "overcast"}, values)
	assert.Equal(t, []int{2, 1, 1}, counts)
	assert.Equal(t, []string{"yes", "no"}, rows.DistinctValues(1))
	assert.Equal(t, Rows{{"sunny", "yes"}, {"sunny", "no"}}, rows.Filter(0, "sunny"))

	keys, groups := rows.PartitionBy(1)
	assert.Equal(t, []string{"yes", "no"}, keys)
	assert.Equal(t, Rows{{"sunny", "yes"}, {"overcast", "yes"}}, groups[0])
	assert.Equal(t, Rows{{"rain", "no"}, {"sunny", "no"}}, groups[1])

	assert.False(t, rows.SameValue(1))
	assert.True(t, groups[0].SameValue(1))
	assert.True(t, Rows{}.SameValue(0))

	clone := rows.Clone()
	clone[0][0] = "fog"
	assert.Equal(t, "sunny", rows[0][0])
	cp := rows.Copy()
	cp[0], cp[1] = cp[1], cp[0]
	assert.Equal(t, "sunny", rows[0][0])
}

func TestDominantClass(t *testing.T) {
	class, err := Rows{{"a", "no"}, {"b", "yes"}, {"c", "yes"}}.DominantClass(1)
	require.NoError(t, err)
	assert.Equal(t, "yes", class)

	class, err = Rows{{"a", "no"}, {"b", "yes"}}.DominantClass(1)
	require.NoError(t, err)
	assert.Equal(t, "no", class)

	_, err = Rows{}.DominantClass(1)
	assert.True(t, errors.Is(err, ErrEmptyDataset))
}
