package validation

import (
	"context"
	"time"

	"github.com/YuminosukeSato/sciboot/core/parallel"
	"github.com/YuminosukeSato/sciboot/core/rng"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// Bootstrap draws k bootstrap replications of the index range [0, n).
//
// Each bag's Train holds n indices drawn uniformly with replacement, in draw
// order. Test holds the indices never drawn in that round, ascending. About
// (1-1/n)^n of the population, roughly 36.8% for large n, ends up in Test.
//
// Negative n or k fails with an error matching errors.ErrInvalidArgument.
// n == 0 yields k empty bags and k == 0 yields no bags.
func Bootstrap(n, k int, opts ...Option) ([]Bag, error) {
	if n < 0 {
		return nil, errors.NewValidationError("n", "sample size must be non-negative", n)
	}
	if k < 0 {
		return nil, errors.NewValidationError("k", "number of bootstrap rounds must be non-negative", k)
	}

	cfg := newConfig(opts)
	population := make([]int, n)
	for i := range population {
		population[i] = i
	}
	return cfg.resample(log.OperationBootstrap, [][]int{population}, n, k), nil
}

// StratifiedBootstrap draws k bootstrap replications that preserve the class
// proportions of categories exactly.
//
// Labels may be any integers; they are re-encoded through a sorted unique
// table. Within every stratum, ascending by label, as many indices are drawn
// with replacement as the stratum holds, from that stratum only, and appended
// to Train in draw order. Test holds every index not drawn in the round,
// ascending. A small stratum whose members are all drawn contributes nothing
// to Test.
//
// Negative k fails with an error matching errors.ErrInvalidArgument.
func StratifiedBootstrap(categories []int, k int, opts ...Option) ([]Bag, error) {
	if k < 0 {
		return nil, errors.NewValidationError("k", "number of bootstrap rounds must be non-negative", k)
	}

	cfg := newConfig(opts)
	strata := NewLabelEncoder(categories).Strata(categories)
	return cfg.resample(log.OperationStratifiedBootstrap, strata, len(categories), k), nil
}

// resample produces k bags over a population of n indices split into strata.
func (c *config) resample(op string, strata [][]int, n, k int) []Bag {
	start := time.Now()
	bags := make([]Bag, k)

	if c.workers <= 1 {
		for r := range bags {
			bags[r] = drawBag(c.source, strata, n)
		}
	} else {
		streams := rng.Split(c.source, k)
		_ = parallel.ForEach(k, c.workers, func(r int) error {
			bags[r] = drawBag(streams[r], strata, n)
			return nil
		})
	}

	if c.logger.Enabled(context.Background(), log.LevelDebug) {
		for r, bag := range bags {
			c.logger.Debug("bootstrap round drawn",
				log.OperationKey, op,
				log.RoundKey, r,
				log.TrainSizeKey, len(bag.Train),
				log.TestSizeKey, len(bag.Test),
			)
		}
		c.logger.Debug("bootstrap sampling finished",
			log.OperationKey, op,
			log.SamplesKey, n,
			log.StrataKey, len(strata),
			log.RoundsKey, k,
			log.WorkersKey, c.workers,
			log.DurationMsKey, time.Since(start).Milliseconds(),
		)
	}
	return bags
}

// drawBag draws one replication. Every stratum contributes exactly its own
// size to Train.
func drawBag(src rng.Source, strata [][]int, n int) Bag {
	hit := make([]bool, n)
	hits := 0

	train := make([]int, 0, n)
	for _, stratum := range strata {
		size := len(stratum)
		for j := 0; j < size; j++ {
			sample := stratum[src.IntN(size)]
			train = append(train, sample)
			if !hit[sample] {
				hit[sample] = true
				hits++
			}
		}
	}

	test := make([]int, 0, n-hits)
	for i, drawn := range hit {
		if !drawn {
			test = append(test, i)
		}
	}
	return Bag{Train: train, Test: test}
}
