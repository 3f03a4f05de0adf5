/*
Package entropy computes Shannon entropy and information gain over rows of
categorical values, used by the tree builder to choose split attributes.
*/
package entropy

import (
	"math"

	"github.com/pbanos/arbor/dataset"
)

// Gain holds the information gain obtained by splitting on an attribute
type Gain struct {
	Attribute int
	Value     float64
}

/*
Entropy takes the number of elements of each class in a set and returns
the entropy of the set in bits:

	-Σ (c/N) x log2(c/N)

Zero counts contribute nothing. An empty slice, or one whose counts add
up to 0, has an entropy of 0.
*/
func Entropy(counts []int) float64 {
	total := 0
	for _, c := range counts {
		total += c
	}
	if total == 0 {
		return 0
	}
	var result float64
	n := float64(total)
	for _, c := range counts {
		if c <= 0 {
			continue
		}
		p := float64(c) / n
		result -= p * math.Log2(p)
	}
	return result
}

// LabelEntropy returns the entropy of the label distribution of the rows
func LabelEntropy(rows dataset.Rows, label int) float64 {
	_, counts := rows.CountValues(label)
	return Entropy(counts)
}

// ForAttributeValue returns the entropy of the label distribution of the
// rows whose value for attribute equals value.
func ForAttributeValue(rows dataset.Rows, attribute int, value string, label int) float64 {
	return LabelEntropy(rows.Filter(attribute, value), label)
}

/*
Rest returns the weighted entropy left after splitting the rows on the
given attribute:

	Σv |Sv|/|S| x H(Sv)

for every distinct value v of the attribute in the rows.
*/
func Rest(rows dataset.Rows, attribute int, label int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var result float64
	n := float64(len(rows))
	_, groups := rows.PartitionBy(attribute)
	for _, g := range groups {
		result += float64(len(g)) / n * LabelEntropy(g, label)
	}
	return result
}

// InformationGain returns the reduction of label entropy obtained by
// splitting the rows on the given attribute.
func InformationGain(rows dataset.Rows, attribute int, label int) float64 {
	return LabelEntropy(rows, label) - Rest(rows, attribute, label)
}

/*
GainVector returns the information gain of every column of the rows but
the label, in column order. The label column is left out of the result
rather than zeroed, so each Gain carries the attribute it belongs to.
*/
func GainVector(rows dataset.Rows, label int) []Gain {
	if len(rows) == 0 {
		return nil
	}
	sEntropy := LabelEntropy(rows, label)
	width := len(rows[0])
	result := make([]Gain, 0, width)
	for a := 0; a < width; a++ {
		if a == label {
			continue
		}
		result = append(result, Gain{Attribute: a, Value: sEntropy - Rest(rows, a, label)})
	}
	return result
}

/*
Best returns the gain with the highest value among those whose attribute
is accepted by the available function (a nil function accepts every
attribute). The first one wins ties. The boolean result is false when
no gain is acceptable.
*/
func Best(gains []Gain, available func(int) bool) (Gain, bool) {
	var best Gain
	found := false
	for _, g := range gains {
		if available != nil && !available(g.Attribute) {
			continue
		}
		if !found || g.Value > best.Value {
			best = g
			found = true
		}
	}
	return best, found
}
