package discretize

import (
	"math"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/pbanos/arbor/dataset"
)

/*
EqualWidth is a Discretizer that splits the range between the minimum and
the maximum value of the column in bins of the same width, (max-min)/b.
A value v falls in bin min(⌊(v-min)/width⌋, b-1), and every value falls in
the first bin if all of them are equal.

Row order is preserved. Bins are labelled "<column>: [<lo>, <hi>)", except
the last one, which is closed: "<column>: [<lo>, <hi>]".
*/
type EqualWidth struct{}

// Discretize implements Discretizer
func (EqualWidth) Discretize(bins int, d *dataset.Dataset, attribute int) error {
	if err := checkBins(bins); err != nil {
		return err
	}
	values, err := parseColumn(d, attribute)
	if err != nil {
		return err
	}
	min, err := stats.Min(values)
	if err != nil {
		return errors.Wrap(err, "computing minimum")
	}
	max, err := stats.Max(values)
	if err != nil {
		return errors.Wrap(err, "computing maximum")
	}
	width := (max - min) / float64(bins)
	labels := equalWidthLabels(d.ColumnName(attribute), min, max, width, bins)
	for i, v := range values {
		d.Rows[i][attribute] = labels[equalWidthBin(v, min, width, bins)]
	}
	return nil
}

func equalWidthBin(v, min, width float64, bins int) int {
	if width == 0 {
		return 0
	}
	i := int(math.Floor((v - min) / width))
	if i >= bins {
		return bins - 1
	}
	if i < 0 {
		return 0
	}
	return i
}

func equalWidthLabels(name string, min, max, width float64, bins int) []string {
	labels := make([]string, bins)
	for i := range labels {
		lo, hi := min+float64(i)*width, min+float64(i+1)*width
		closing := ")"
		if i == bins-1 || width == 0 {
			hi = max
			closing = "]"
		}
		labels[i] = name + ": [" + formatNumber(lo) + ", " + formatNumber(hi) + closing
	}
	return labels
}
