package arbor

import (
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/entropy"
)

/*
Partition represents a partition of a set of rows according to the values
of an attribute, with the information gain it provides to predict the label.
Keys[i] is the value shared by every row in Groups[i], in the order the
values are first seen.
*/
type Partition struct {
	Attribute       int
	Keys            []string
	Groups          []dataset.Rows
	InformationGain float64
}

/*
NewPartition takes a set of rows, an attribute index and a label index and
returns the partition of the rows by the attribute's values along with
its information gain.
*/
func NewPartition(rows dataset.Rows, attribute, label int) *Partition {
	keys, groups := rows.PartitionBy(attribute)
	return &Partition{
		Attribute:       attribute,
		Keys:            keys,
		Groups:          groups,
		InformationGain: entropy.InformationGain(rows, attribute, label),
	}
}

// Discriminates returns whether the partition splits the rows in more
// than one group.
func (p *Partition) Discriminates() bool {
	return len(p.Groups) > 1
}

/*
bestPartition returns the partition of the rows on the available attribute
with the highest information gain, the first one in column order winning
ties, or nil if no attribute is available.
*/
func bestPartition(rows dataset.Rows, label int, available func(int) bool) *Partition {
	best, ok := entropy.Best(entropy.GainVector(rows, label), available)
	if !ok {
		return nil
	}
	keys, groups := rows.PartitionBy(best.Attribute)
	return &Partition{
		Attribute:       best.Attribute,
		Keys:            keys,
		Groups:          groups,
		InformationGain: best.Value,
	}
}
