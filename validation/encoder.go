package validation

import "slices"

// LabelEncoder maps arbitrary integer labels onto the dense range [0, m)
// by their position in the sorted set of distinct labels.
type LabelEncoder struct {
	labels []int
}

// NewLabelEncoder builds the sorted unique label table of y.
func NewLabelEncoder(y []int) *LabelEncoder {
	labels := slices.Clone(y)
	slices.Sort(labels)
	return &LabelEncoder{labels: slices.Compact(labels)}
}

// Labels returns the sorted distinct labels.
func (e *LabelEncoder) Labels() []int {
	return slices.Clone(e.labels)
}

// Len returns the number of distinct labels.
func (e *LabelEncoder) Len() int {
	return len(e.labels)
}

// IndexOf returns the dense id of label, or -1 if it was never seen.
func (e *LabelEncoder) IndexOf(label int) int {
	i, ok := slices.BinarySearch(e.labels, label)
	if !ok {
		return -1
	}
	return i
}

// IsIdentity reports whether the labels are already exactly 0..m-1.
func (e *LabelEncoder) IsIdentity() bool {
	m := len(e.labels)
	return m == 0 || (e.labels[0] == 0 && e.labels[m-1] == m-1)
}

// Encode maps y to dense ids. When the labels are already 0..m-1, y is
// returned as is.
func (e *LabelEncoder) Encode(y []int) []int {
	if e.IsIdentity() {
		return y
	}
	out := make([]int, len(y))
	for i, label := range y {
		out[i] = e.IndexOf(label)
	}
	return out
}

// Strata groups the indices of y by dense id. Stratum i lists, in ascending
// order, the positions whose label encodes to i.
func (e *LabelEncoder) Strata(y []int) [][]int {
	ids := e.Encode(y)
	sizes := make([]int, e.Len())
	for _, id := range ids {
		sizes[id]++
	}
	strata := make([][]int, e.Len())
	for i := range strata {
		strata[i] = make([]int, 0, sizes[i])
	}
	for i, id := range ids {
		strata[id] = append(strata[id], i)
	}
	return strata
}
