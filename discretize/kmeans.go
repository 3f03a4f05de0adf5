package discretize

import (
	"math"
	"math/rand"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/pkg/errors"

	"github.com/pbanos/arbor/dataset"
)

const (
	// DefaultEpsilon is the quality change below which KMeans stops
	// iterating if no Epsilon is set
	DefaultEpsilon = 0.1
	// DefaultMaxIterations is the number of iterations after which
	// KMeans stops if no MaxIterations is set
	DefaultMaxIterations = 300
)

/*
KMeans is a Discretizer that groups the values of the column in b clusters
with Lloyd's algorithm on one dimension. Initial centroids are the first b
values of a random permutation of the column. Every iteration assigns each
value to its nearest centroid, the lowest centroid index winning ties, moves
every centroid to the mean of its values (0 for an empty cluster) and
computes the clustering quality as the sum of squared distances of the values
to their centroids. Iterations stop when the quality changes less than
Epsilon or after MaxIterations.

Row order is preserved. Clusters are labelled "<column>: [<min>; <max>]"
with the bounds of their values, or "<column>: [empty]".
*/
type KMeans struct {
	Epsilon       float64
	MaxIterations int
	Rand          *rand.Rand
}

// Clustering is the outcome of KMeans.Cluster
type Clustering struct {
	// Assignment holds the cluster of every value
	Assignment []int
	// Centroids holds the final centroid of every cluster
	Centroids []float64
	// Quality holds the sum of squared distances after every iteration
	Quality []float64
}

// Discretize implements Discretizer. It fails with ErrInvalidBinCount
// when there are more bins than rows.
func (km *KMeans) Discretize(bins int, d *dataset.Dataset, attribute int) error {
	if err := checkBins(bins); err != nil {
		return err
	}
	values, err := parseColumn(d, attribute)
	if err != nil {
		return err
	}
	if bins > len(values) {
		return errors.Wrapf(ErrInvalidBinCount, "%d clusters for %d rows", bins, len(values))
	}
	c := km.Cluster(values, bins)
	labels := make([]string, bins)
	name := d.ColumnName(attribute)
	for k := range labels {
		var members []float64
		for i, v := range values {
			if c.Assignment[i] == k {
				members = append(members, v)
			}
		}
		if len(members) == 0 {
			labels[k] = name + ": [empty]"
			continue
		}
		min, _ := stats.Min(members)
		max, _ := stats.Max(members)
		labels[k] = rangeLabel(name, min, max)
	}
	for i, k := range c.Assignment {
		d.Rows[i][attribute] = labels[k]
	}
	return nil
}

// Cluster groups the values in k clusters. It expects 0 < k <= len(values).
func (km *KMeans) Cluster(values []float64, k int) *Clustering {
	epsilon, maxIterations, rnd := km.settings()
	centroids := make([]float64, k)
	for i, p := range rnd.Perm(len(values))[:k] {
		centroids[i] = values[p]
	}
	c := &Clustering{Assignment: make([]int, len(values))}
	previous := math.Inf(1)
	for it := 0; it < maxIterations; it++ {
		for i, v := range values {
			c.Assignment[i] = nearest(v, centroids)
		}
		centroids = recomputeCentroids(values, c.Assignment, k)
		quality := 0.0
		for i, v := range values {
			delta := v - centroids[c.Assignment[i]]
			quality += delta * delta
		}
		c.Quality = append(c.Quality, quality)
		if math.Abs(previous-quality) < epsilon {
			break
		}
		previous = quality
	}
	c.Centroids = centroids
	return c
}

func (km *KMeans) settings() (float64, int, *rand.Rand) {
	epsilon, maxIterations, rnd := km.Epsilon, km.MaxIterations, km.Rand
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return epsilon, maxIterations, rnd
}

func nearest(v float64, centroids []float64) int {
	best := 0
	for i := 1; i < len(centroids); i++ {
		if math.Abs(v-centroids[i]) < math.Abs(v-centroids[best]) {
			best = i
		}
	}
	return best
}

func recomputeCentroids(values []float64, assignment []int, k int) []float64 {
	members := make([][]float64, k)
	for i, v := range values {
		members[assignment[i]] = append(members[assignment[i]], v)
	}
	centroids := make([]float64, k)
	for i, m := range members {
		if len(m) == 0 {
			continue
		}
		centroids[i], _ = stats.Mean(m)
	}
	return centroids
}
