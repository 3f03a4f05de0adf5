/*
Package discretize turns continuous columns of a dataset into categorical
ones, replacing every numeric value with the label of the bin it falls in.
*/
package discretize

import (
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/pbanos/arbor/dataset"
)

// DiscretizationError represents an error related with discretization
type DiscretizationError string

const (
	// ErrInvalidAttributeType is returned when a value of the column
	// to discretize cannot be parsed as a number.
	ErrInvalidAttributeType = DiscretizationError("attribute value is not numeric")
	// ErrInvalidBinCount is returned when the number of bins is not
	// positive or cannot be honored by the discretizer.
	ErrInvalidBinCount = DiscretizationError("invalid number of bins")
	// ErrUnknownMethod is returned by ByName for names that do not
	// identify a discretizer.
	ErrUnknownMethod = DiscretizationError("unknown discretization method")
)

func (de DiscretizationError) Error() string {
	return string(de)
}

/*
Discretizer is an interface wrapping the Discretize method, which takes a
number of bins, a dataset and the index of one of its columns and replaces
in place the value of that column on every row with the label of the bin it
is assigned to. All values are parsed before any row is modified, so on
error the dataset is left untouched.
*/
type Discretizer interface {
	Discretize(bins int, d *dataset.Dataset, attribute int) error
}

// Method names accepted by ByName
const (
	EqualFrequencyMethod = "equal-frequency"
	EqualWidthMethod     = "equal-width"
	KMeansMethod         = "k-means"
)

// Methods lists the names accepted by ByName
var Methods = []string{EqualFrequencyMethod, EqualWidthMethod, KMeansMethod}

/*
ByName takes the name of a discretization method, an epsilon and a source
of randomness and returns the corresponding Discretizer. The epsilon and the
source of randomness are only used by the k-means discretizer.
*/
func ByName(name string, epsilon float64, rnd *rand.Rand) (Discretizer, error) {
	switch strings.ToLower(name) {
	case EqualFrequencyMethod:
		return EqualFrequency{}, nil
	case EqualWidthMethod:
		return EqualWidth{}, nil
	case KMeansMethod:
		return &KMeans{Epsilon: epsilon, Rand: rnd}, nil
	}
	return nil, errors.Wrapf(ErrUnknownMethod, "%q (expected one of %s)", name, strings.Join(Methods, ", "))
}

/*
All takes a number of bins, a dataset, a Discretizer and the indexes of the
continuous columns of the dataset and discretizes each of them in order.
It stops at the first error, which is returned annotated with the column's
name.
*/
func All(bins int, d *dataset.Dataset, discretizer Discretizer, attributes []int) error {
	for _, a := range attributes {
		err := discretizer.Discretize(bins, d, a)
		if err != nil {
			return errors.Wrapf(err, "discretizing %s", d.ColumnName(a))
		}
	}
	return nil
}

// parseColumn returns the numeric values of the given column, in row order
func parseColumn(d *dataset.Dataset, attribute int) ([]float64, error) {
	if len(d.Rows) == 0 {
		return nil, errors.Wrapf(dataset.ErrEmptyDataset, "discretizing %s", d.ColumnName(attribute))
	}
	values := make([]float64, len(d.Rows))
	for i, r := range d.Rows {
		if attribute < 0 || attribute >= len(r) {
			return nil, errors.Wrapf(dataset.ErrRowLength, "row %d has no column %d", i, attribute)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(r[attribute]), 64)
		if err != nil || math.IsNaN(v) {
			return nil, errors.Wrapf(ErrInvalidAttributeType, "row %d: %s is %q", i, d.ColumnName(attribute), r[attribute])
		}
		values[i] = v
	}
	return values, nil
}

func checkBins(bins int) error {
	if bins <= 0 {
		return errors.Wrapf(ErrInvalidBinCount, "%d bins", bins)
	}
	return nil
}

// formatNumber prints integral values with one decimal and the rest
// with the fewest digits that represent them exactly.
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 1, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// rangeLabel returns "name: [min; max]"
func rangeLabel(name string, min, max float64) string {
	return name + ": [" + formatNumber(min) + "; " + formatNumber(max) + "]"
}
