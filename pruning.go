package arbor

import (
	"math"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/entropy"
)

// PruningStrategy holds the configuration
// for when a node must not be partitioned
// further or at all while growing a tree.
type PruningStrategy struct {
	// Pruner is applied to the best partition of
	// a node's rows to determine if the result
	// is worth incorporating into the tree. A nil
	// Pruner never prunes.
	Pruner
	// MaxDepth is the depth at which nodes stop
	// being developed and become leaves predicting
	// the dominant class of their rows. The root is
	// at depth 1. 0 means no limit.
	MaxDepth int
}

/*
Pruner is an interface wrapping the Prune method, that can be used
to decide whether a partition is good enough to become part of a tree
or if it must be pruned instead, turning the node into a leaf.

The Prune method takes the rows of the node, a partition of them and the
label index and returns a boolean: true to indicate the partition must be
pruned, false to allow its adding to the tree and further development.
*/
type Pruner interface {
	Prune(rows dataset.Rows, p *Partition, label int) bool
}

/*
PrunerFunc wraps a function with the Prune method signature to implement
the Pruner interface
*/
type PrunerFunc func(rows dataset.Rows, p *Partition, label int) bool

/*
Prune takes a set of rows, a partition and a label index and invokes the
PrunerFunc with those parameters to return its boolean result.
*/
func (pf PrunerFunc) Prune(rows dataset.Rows, p *Partition, label int) bool {
	return pf(rows, p, label)
}

/*
MinimumDescriptionLengthPruner returns a Pruner whose Prune method evaluates
a minimum information gain for the partition and returns true if the
partition information gain is below this minimum and false otherwise.
This minimum is calculated as

	(1/N) x log2(N-1) + (1/N) x [ log2 (3^k-2) - (k x Entropy(S) – k1 x Entropy(S1) – k2 x Entropy(S2) ... - ki x Entropy(Si)) ]

with
  - N being the number of rows
  - k being the number of different labels on the rows
  - k1, k2, ... ki being the number of different labels on the rows of group 1, 2, ... i
  - S1, S2, ... Si being the rows of group 1, 2, ... i
*/
func MinimumDescriptionLengthPruner() Pruner {
	return PrunerFunc(func(rows dataset.Rows, p *Partition, label int) bool {
		n := float64(len(rows))
		if n < 2 {
			return true
		}
		k := float64(len(rows.DistinctValues(label)))
		minimum := math.Log2(n-1.0) + math.Log2(math.Pow(3.0, k)-2) - k*entropy.LabelEntropy(rows, label)
		for _, g := range p.Groups {
			minimum += float64(len(g.DistinctValues(label))) * entropy.LabelEntropy(g, label)
		}
		minimum = minimum / n
		return minimum > p.InformationGain
	})
}

/*
FixedInformationGainPruner takes an informationGainThreshold float64 value
and returns a Pruner whose Prune method returns whether the informationGainThreshold
is greater or equal to the received partition's information gain
*/
func FixedInformationGainPruner(informationGainThreshold float64) Pruner {
	return PrunerFunc(func(rows dataset.Rows, p *Partition, label int) bool {
		return informationGainThreshold >= p.InformationGain
	})
}

/*
NoPruner returns a Pruner whose Prune method always returns false, that is,
never prunes.
*/
func NoPruner() Pruner {
	return PrunerFunc(func(rows dataset.Rows, p *Partition, label int) bool {
		return false
	})
}

func (ps *PruningStrategy) prune(rows dataset.Rows, p *Partition, label int) bool {
	if ps == nil || ps.Pruner == nil {
		return false
	}
	return ps.Pruner.Prune(rows, p, label)
}

func (ps *PruningStrategy) maxDepthReached(depth int) bool {
	return ps != nil && ps.MaxDepth > 0 && depth >= ps.MaxDepth
}
