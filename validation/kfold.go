package validation

import (
	"slices"

	"github.com/YuminosukeSato/sciboot/core/rng"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// KFold splits [0, n) into k shuffled folds. Bag i tests on fold i and trains
// on the rest; both lists are ascending. Fold sizes differ by at most one,
// the first n%k folds being the larger ones.
//
// Fails with errors.ErrInvalidArgument unless 2 <= k <= n.
func KFold(n, k int, opts ...Option) ([]Bag, error) {
	if n < 0 {
		return nil, errors.NewValidationError("n", "sample size must be non-negative", n)
	}
	if k < 2 || k > n {
		return nil, errors.NewValidationError("k", "number of folds must be in [2, n]", k)
	}

	cfg := newConfig(opts)
	perm := permutation(cfg.source, n)

	assignment := make([]int, n)
	size, remainder := n/k, n%k
	start := 0
	for fold := 0; fold < k; fold++ {
		end := start + size
		if fold < remainder {
			end++
		}
		for _, idx := range perm[start:end] {
			assignment[idx] = fold
		}
		start = end
	}

	bags := foldsFromAssignment(assignment, k)
	cfg.logger.Debug("k-fold partition built",
		log.OperationKey, log.OperationKFold,
		log.SamplesKey, n,
		log.RoundsKey, k,
	)
	return bags, nil
}

// StratifiedKFold splits the samples into k folds keeping every class spread
// as evenly as possible: each class is shuffled and dealt round-robin across
// the folds, continuing where the previous class stopped.
//
// Fails with errors.ErrInvalidArgument unless 2 <= k <= len(categories).
func StratifiedKFold(categories []int, k int, opts ...Option) ([]Bag, error) {
	n := len(categories)
	if k < 2 || k > n {
		return nil, errors.NewValidationError("k", "number of folds must be in [2, len(categories)]", k)
	}

	cfg := newConfig(opts)
	encoder := NewLabelEncoder(categories)
	strata := encoder.Strata(categories)

	assignment := make([]int, n)
	next := 0
	for _, stratum := range strata {
		shuffled := slices.Clone(stratum)
		shuffle(cfg.source, shuffled)
		for _, idx := range shuffled {
			assignment[idx] = next
			next = (next + 1) % k
		}
	}

	bags := foldsFromAssignment(assignment, k)
	cfg.logger.Debug("stratified k-fold partition built",
		log.OperationKey, log.OperationKFold,
		log.SamplesKey, n,
		log.StrataKey, encoder.Len(),
		log.RoundsKey, k,
	)
	return bags, nil
}

// foldsFromAssignment turns a fold id per index into k ascending bags.
func foldsFromAssignment(assignment []int, k int) []Bag {
	n := len(assignment)
	bags := make([]Bag, k)
	for fold := range bags {
		bags[fold] = Bag{Train: make([]int, 0, n), Test: make([]int, 0, n/k+1)}
	}
	for idx, fold := range assignment {
		for f := range bags {
			if f == fold {
				bags[f].Test = append(bags[f].Test, idx)
			} else {
				bags[f].Train = append(bags[f].Train, idx)
			}
		}
	}
	return bags
}

// permutation returns a uniformly shuffled [0, n).
func permutation(src rng.Source, n int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	shuffle(src, perm)
	return perm
}

// shuffle is a Fisher-Yates shuffle driven by src.
func shuffle(src rng.Source, s []int) {
	for i := len(s) - 1; i > 0; i-- {
		j := src.IntN(i + 1)
		s[i], s[j] = s[j], s[i]
	}
}
