// Package validation implements resampling based model validation.
//
// The resamplers (Bootstrap, StratifiedBootstrap, KFold, StratifiedKFold)
// return an ordered list of Bag values, one per replication or fold. The
// drivers (BootstrapClassification, BootstrapRegression and their matrix
// variants) train a caller supplied model on each bag's train indices and
// score it on the test indices.
package validation

// Bag is one train/test partition of the index range [0, n).
//
// For bootstrap bags Train holds n draws with replacement in draw order and
// Test holds every index that was never drawn, in ascending order. For k-fold
// bags both are ascending and disjoint.
type Bag struct {
	Train []int `json:"train" yaml:"train"`
	Test  []int `json:"test" yaml:"test"`
}

// OutOfBagFraction returns len(Test) / n, or 0 when n is 0.
func (b Bag) OutOfBagFraction(n int) float64 {
	if n == 0 {
		return 0
	}
	return float64(len(b.Test)) / float64(n)
}
