/*
Package dataset provides the tabular data model shared by the discretizers,
the entropy engine and the tree builder: rows of attribute values with one
designated label column.
*/
package dataset

import (
	"fmt"
	"math/rand"
	"strings"
)

// DatasetError represents an error related with datasets
type DatasetError string

const (
	// ErrEmptyDataset is returned when an operation requires at least
	// one row and none is available.
	ErrEmptyDataset = DatasetError("empty dataset")
	// ErrRowLength is returned when a row does not have the same number
	// of values as the rest of rows (or the header) of a dataset.
	ErrRowLength = DatasetError("inconsistent row length")
	// ErrLabelIndex is returned when the label index does not point
	// to a column of the dataset.
	ErrLabelIndex = DatasetError("label index out of range")
	// ErrInvalidFraction is returned when splitting a dataset with a
	// fraction outside [0, 1].
	ErrInvalidFraction = DatasetError("fraction must be between 0 and 1")
)

func (de DatasetError) Error() string {
	return string(de)
}

var missingValues = map[string]bool{
	"na":   true,
	"n/a":  true,
	"nan":  true,
	"null": true,
	"nil":  true,
	"none": true,
	"n.a.": true,
	"n.a":  true,
	"n_a":  true,
	"":     true,
}

// IsMissing returns whether the given cell value is one of the recognized
// tokens for a missing value. The comparison is case-insensitive.
func IsMissing(value string) bool {
	return missingValues[strings.ToLower(value)]
}

// HasMissing returns whether any value in the row is missing.
func HasMissing(r Row) bool {
	for _, v := range r {
		if IsMissing(v) {
			return true
		}
	}
	return false
}

/*
Dataset is an ordered collection of rows with a designated label column.
The header holds the column names, used to name discretization bins and
to export trees.
*/
type Dataset struct {
	Header     []string
	Rows       Rows
	LabelIndex int
}

/*
New takes a header, a set of rows and a label index and returns a dataset
or an error if the rows do not all have the same length, or the label
index is not a column of the rows. The header may be nil, otherwise it
must have as many names as the rows have values.
*/
func New(header []string, rows Rows, labelIndex int) (*Dataset, error) {
	width := len(header)
	if header == nil && len(rows) > 0 {
		width = len(rows[0])
	}
	for i, r := range rows {
		if len(r) != width {
			return nil, fmt.Errorf("row %d has %d values, expected %d: %w", i, len(r), width, ErrRowLength)
		}
	}
	if width > 0 && (labelIndex < 0 || labelIndex >= width) {
		return nil, fmt.Errorf("label index %d with %d columns: %w", labelIndex, width, ErrLabelIndex)
	}
	return &Dataset{Header: header, Rows: rows, LabelIndex: labelIndex}, nil
}

// Width returns the number of columns of the dataset
func (d *Dataset) Width() int {
	if d.Header != nil {
		return len(d.Header)
	}
	if len(d.Rows) > 0 {
		return len(d.Rows[0])
	}
	return 0
}

// ColumnName returns the name of the column at index i, falling back
// to "column i" when the dataset has no header for it.
func (d *Dataset) ColumnName(i int) string {
	return ColumnName(d.Header, i)
}

// ColumnName returns header[i] or "column i" if the header does not
// name that column.
func ColumnName(header []string, i int) string {
	if i >= 0 && i < len(header) {
		return header[i]
	}
	return fmt.Sprintf("column %d", i)
}

/*
Split takes a fraction between 0 and 1 and a source of randomness and
returns two disjoint sets of rows: held, with ceil(fraction x N) rows
picked at random without replacement, and rest, with the remaining rows
in their original order.
*/
func (d *Dataset) Split(fraction float64, rnd *rand.Rand) (held, rest Rows, err error) {
	if fraction < 0 || fraction > 1 {
		return nil, nil, fmt.Errorf("splitting with %v: %w", fraction, ErrInvalidFraction)
	}
	n := len(d.Rows)
	want := int(fraction * float64(n))
	if float64(want) < fraction*float64(n) {
		want++
	}
	picked := make(map[int]bool, want)
	for _, i := range rnd.Perm(n)[:want] {
		picked[i] = true
		held = append(held, d.Rows[i])
	}
	for i, r := range d.Rows {
		if !picked[i] {
			rest = append(rest, r)
		}
	}
	return held, rest, nil
}
