package discretize

import (
	"sort"

	"github.com/pbanos/arbor/dataset"
)

/*
EqualFrequency is a Discretizer that sorts the rows of the dataset by the
column's value and splits them in bins holding about the same number of
rows. With N rows and b bins, every bin takes ⌊N/b⌋ rows and the first
N mod b bins one more. A bin boundary never separates equal values: a bin
is extended over the rows that share its last value, and the last bin takes
whatever remains, so fewer than b bins may result.

Discretize leaves the rows of the dataset sorted by the column's value.
Bins are labelled "<column>: [<min>; <max>]".
*/
type EqualFrequency struct{}

// Discretize implements Discretizer
func (EqualFrequency) Discretize(bins int, d *dataset.Dataset, attribute int) error {
	if err := checkBins(bins); err != nil {
		return err
	}
	values, err := parseColumn(d, attribute)
	if err != nil {
		return err
	}
	order := make([]int, len(values))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] < values[order[j]]
	})
	sorted := make(dataset.Rows, len(order))
	sortedValues := make([]float64, len(order))
	for i, o := range order {
		sorted[i] = d.Rows[o]
		sortedValues[i] = values[o]
	}
	name := d.ColumnName(attribute)
	for _, b := range equalFrequencyBounds(sortedValues, bins) {
		label := rangeLabel(name, sortedValues[b[0]], sortedValues[b[1]-1])
		for _, r := range sorted[b[0]:b[1]] {
			r[attribute] = label
		}
	}
	copy(d.Rows, sorted)
	return nil
}

// equalFrequencyBounds returns the [start, end) index ranges of every bin
// over the sorted values
func equalFrequencyBounds(sorted []float64, bins int) [][2]int {
	n := len(sorted)
	base, remainder := n/bins, n%bins
	var bounds [][2]int
	for i, start := 0, 0; i < bins && start < n; i++ {
		size := base
		if i < remainder {
			size++
		}
		end := start + size
		if i == bins-1 || end > n {
			end = n
		}
		for end < n && sorted[end] == sorted[end-1] {
			end++
		}
		bounds = append(bounds, [2]int{start, end})
		start = end
	}
	return bounds
}
