package dataset

import "fmt"

// Row is an ordered, fixed-length sequence of attribute values
type Row []string

// Rows is an ordered collection of rows
type Rows []Row

// Copy returns a new slice with the same rows, so that reordering the
// copy does not affect the receiver. The rows themselves are shared.
func (rs Rows) Copy() Rows {
	result := make(Rows, len(rs))
	copy(result, rs)
	return result
}

// Clone returns a deep copy of the rows
func (rs Rows) Clone() Rows {
	result := make(Rows, len(rs))
	for i, r := range rs {
		result[i] = append(Row(nil), r...)
	}
	return result
}

// Values returns the value at index for every row
func (rs Rows) Values(index int) []string {
	result := make([]string, len(rs))
	for i, r := range rs {
		result[i] = r[index]
	}
	return result
}

// CountValues returns the distinct values at index in the order they
// are first seen and how many rows hold each of them.
func (rs Rows) CountValues(index int) ([]string, []int) {
	var values []string
	var counts []int
	positions := make(map[string]int)
	for _, r := range rs {
		v := r[index]
		p, ok := positions[v]
		if !ok {
			p = len(values)
			positions[v] = p
			values = append(values, v)
			counts = append(counts, 0)
		}
		counts[p]++
	}
	return values, counts
}

// DistinctValues returns the distinct values at index in the order
// they are first seen.
func (rs Rows) DistinctValues(index int) []string {
	values, _ := rs.CountValues(index)
	return values
}

// Filter returns the rows whose value at index equals the given value
func (rs Rows) Filter(index int, value string) Rows {
	var result Rows
	for _, r := range rs {
		if r[index] == value {
			result = append(result, r)
		}
	}
	return result
}

// PartitionBy groups the rows by their value at index. Groups are
// returned in the order their key is first seen, keys[i] being the
// value shared by all rows in groups[i].
func (rs Rows) PartitionBy(index int) (keys []string, groups []Rows) {
	positions := make(map[string]int)
	for _, r := range rs {
		v := r[index]
		p, ok := positions[v]
		if !ok {
			p = len(keys)
			positions[v] = p
			keys = append(keys, v)
			groups = append(groups, nil)
		}
		groups[p] = append(groups[p], r)
	}
	return keys, groups
}

// SameValue returns whether every row holds the same value at index.
func (rs Rows) SameValue(index int) bool {
	for _, r := range rs[min(1, len(rs)):] {
		if r[index] != rs[0][index] {
			return false
		}
	}
	return true
}

/*
DominantClass returns the most frequent value at labelIndex among the
rows. Ties are resolved in favour of the value that appears first in
row order. ErrEmptyDataset is returned for an empty set of rows.
*/
func (rs Rows) DominantClass(labelIndex int) (string, error) {
	if len(rs) == 0 {
		return "", fmt.Errorf("computing dominant class: %w", ErrEmptyDataset)
	}
	values, counts := rs.CountValues(labelIndex)
	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}
	return values[best], nil
}
