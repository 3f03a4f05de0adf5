package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pbanos/arbor/dataset"
)

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, Entropy(nil))
	assert.Equal(t, 0.0, Entropy([]int{0, 0}))
	assert.Equal(t, 0.0, Entropy([]int{7}))
	assert.InDelta(t, 1.0, Entropy([]int{4, 4}), 1e-12)
	assert.InDelta(t, 2.0, Entropy([]int{1, 1, 1, 1}), 1e-12)
	assert.InDelta(t, 0.954434002924965, Entropy([]int{3, 5}), 1e-12)
	assert.InDelta(t, Entropy([]int{3, 5}), Entropy([]int{3, 0, 5}), 1e-12)
}

var rows = dataset.Rows{
	{"sunny", "no", "yes"},
	{"sunny", "yes", "no"},
	{"rain", "no", "yes"},
	{"rain", "yes", "no"},
	{"overcast", "no", "yes"},
	{"overcast", "yes", "yes"},
	{"sunny", "no", "yes"},
	{"rain", "yes", "no"},
}

func TestInformationGain(t *testing.T) {
	assert.InDelta(t, 0.954434002924965, LabelEntropy(rows, 2), 1e-12)
	assert.InDelta(t, 0.0, ForAttributeValue(rows, 1, "no", 2), 1e-12)
	assert.InDelta(t, 0.8112781244591328, ForAttributeValue(rows, 1, "yes", 2), 1e-12)
	assert.InDelta(t, 0.4056390622295664, Rest(rows, 1, 2), 1e-12)
	assert.InDelta(t, 0.5487949406953986, InformationGain(rows, 1, 2), 1e-12)
	assert.Equal(t, 0.0, Rest(nil, 0, 1))
}

func TestGainVector(t *testing.T) {
	gains := GainVector(rows, 2)
	if assert.Len(t, gains, 2) {
		assert.Equal(t, 0, gains[0].Attribute)
		assert.Equal(t, 1, gains[1].Attribute)
		assert.True(t, gains[1].Value > gains[0].Value)
	}
	gains = GainVector(rows, 0)
	if assert.Len(t, gains, 2) {
		assert.Equal(t, 1, gains[0].Attribute)
		assert.Equal(t, 2, gains[1].Attribute)
	}
	assert.Nil(t, GainVector(nil, 0))
}

func TestBest(t *testing.T) {
	gains := []Gain{{0, 0.2}, {1, 0.5}, {2, 0.5}, {3, 0.1}}
	g, ok := Best(gains, nil)
	assert.True(t, ok)
	assert.Equal(t, 1, g.Attribute)

	g, ok = Best(gains, func(a int) bool { return a != 1 })
	assert.True(t, ok)
	assert.Equal(t, 2, g.Attribute)

	_, ok = Best(gains, func(a int) bool { return false })
	assert.False(t, ok)
}
