package validation

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/sciboot/core/rng"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
)

// requirePartition checks the invariants every bootstrap bag over [0, n) must hold.
func requirePartition(t *testing.T, bag Bag, n int) {
	t.Helper()
	require.Len(t, bag.Train, n)

	drawn := make([]bool, n)
	for _, idx := range bag.Train {
		require.GreaterOrEqual(t, idx, 0)
		require.Less(t, idx, n)
		drawn[idx] = true
	}
	var want []int
	for i, d := range drawn {
		if !d {
			want = append(want, i)
		}
	}
	require.True(t, slices.IsSorted(bag.Test), "test indices not ascending: %v", bag.Test)
	if len(want) == 0 {
		require.Empty(t, bag.Test)
	} else {
		require.Equal(t, want, bag.Test)
	}
}

func TestBootstrapScriptedDraws(t *testing.T) {
	src := rng.NewSequence(0, 0, 2, 3)
	bags, err := Bootstrap(4, 1, WithSource(src))
	require.NoError(t, err)
	require.Len(t, bags, 1)

	assert.Equal(t, []int{0, 0, 2, 3}, bags[0].Train)
	assert.Equal(t, []int{1}, bags[0].Test)
	assert.Equal(t, 0, src.Remaining())
}

func TestStratifiedBootstrapScriptedDraws(t *testing.T) {
	tests := []struct {
		name       string
		categories []int
	}{
		{name: "dense labels", categories: []int{0, 0, 1, 1, 1}},
		{name: "sparse labels", categories: []int{-3, -3, 7, 7, 7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// stratum 0 = {0,1}: draws 0,1; stratum 1 = {2,3,4}: draws 0,0,2
			src := rng.NewSequence(0, 1, 0, 0, 2)
			bags, err := StratifiedBootstrap(tt.categories, 1, WithSource(src))
			require.NoError(t, err)
			require.Len(t, bags, 1)

			assert.Equal(t, []int{0, 1, 2, 2, 4}, bags[0].Train)
			assert.Equal(t, []int{3}, bags[0].Test)
		})
	}
}

func TestStratifiedBootstrapUnsortedLabels(t *testing.T) {
	// Strata follow ascending label order: label 1 = {1,3}, label 4 = {0,2}.
	src := rng.NewSequence(1, 1, 0, 0)
	bags, err := StratifiedBootstrap([]int{4, 1, 4, 1}, 1, WithSource(src))
	require.NoError(t, err)

	assert.Equal(t, []int{3, 3, 0, 0}, bags[0].Train)
	assert.Equal(t, []int{1, 2}, bags[0].Test)
}

func TestBootstrapInvalidArguments(t *testing.T) {
	tests := []struct {
		name string
		call func() ([]Bag, error)
	}{
		{name: "negative n", call: func() ([]Bag, error) { return Bootstrap(-1, 3) }},
		{name: "negative k", call: func() ([]Bag, error) { return Bootstrap(3, -1) }},
		{name: "negative n and k", call: func() ([]Bag, error) { return Bootstrap(-2, -2) }},
		{name: "stratified negative k", call: func() ([]Bag, error) { return StratifiedBootstrap([]int{0, 1}, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bags, err := tt.call()
			require.Error(t, err)
			assert.Nil(t, bags)
			assert.True(t, errors.Is(err, errors.ErrInvalidArgument), "got %v", err)

			var verr *errors.ValidationError
			assert.True(t, errors.As(err, &verr))
		})
	}
}

func TestBootstrapDegenerateSizes(t *testing.T) {
	t.Run("empty population", func(t *testing.T) {
		bags, err := Bootstrap(0, 5)
		require.NoError(t, err)
		require.Len(t, bags, 5)
		for _, bag := range bags {
			assert.Empty(t, bag.Train)
			assert.Empty(t, bag.Test)
		}
	})

	t.Run("zero rounds", func(t *testing.T) {
		bags, err := Bootstrap(10, 0)
		require.NoError(t, err)
		assert.Empty(t, bags)
	})

	t.Run("empty categories", func(t *testing.T) {
		bags, err := StratifiedBootstrap(nil, 3)
		require.NoError(t, err)
		require.Len(t, bags, 3)
		for _, bag := range bags {
			assert.Empty(t, bag.Train)
			assert.Empty(t, bag.Test)
		}
	})

	t.Run("single sample", func(t *testing.T) {
		bags, err := Bootstrap(1, 4)
		require.NoError(t, err)
		for _, bag := range bags {
			assert.Equal(t, []int{0}, bag.Train)
			assert.Empty(t, bag.Test)
		}
	})
}

func TestBootstrapPartitions(t *testing.T) {
	const n, k = 57, 40
	bags, err := Bootstrap(n, k, WithSeed(11))
	require.NoError(t, err)
	require.Len(t, bags, k)
	for _, bag := range bags {
		requirePartition(t, bag, n)
	}
}

func TestBootstrapOutOfBagFraction(t *testing.T) {
	const n, k = 1000, 200
	bags, err := Bootstrap(n, k, WithSeed(2024))
	require.NoError(t, err)

	var sum float64
	for _, bag := range bags {
		sum += bag.OutOfBagFraction(n)
	}
	// (1 - 1/n)^n -> 1/e ~ 0.368
	assert.InDelta(t, 0.368, sum/k, 0.01)
}

func TestStratifiedBootstrapPreservesProportions(t *testing.T) {
	categories := []int{2, 2, 2, 2, 2, 2, 9, 9, 9, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5}
	population := make(map[int]int)
	for _, c := range categories {
		population[c]++
	}

	bags, err := StratifiedBootstrap(categories, 25, WithSeed(5))
	require.NoError(t, err)
	for _, bag := range bags {
		requirePartition(t, bag, len(categories))

		drawn := make(map[int]int)
		for _, idx := range bag.Train {
			drawn[categories[idx]]++
		}
		assert.Equal(t, population, drawn)
	}
}

func TestStratifiedBootstrapTrainIsGroupedByStratum(t *testing.T) {
	categories := []int{1, 0, 1, 0, 1, 1}
	bags, err := StratifiedBootstrap(categories, 10, WithSeed(8))
	require.NoError(t, err)
	for _, bag := range bags {
		// two label-0 draws come first, then four label-1 draws
		for i, idx := range bag.Train {
			want := 0
			if i >= 2 {
				want = 1
			}
			assert.Equal(t, want, categories[idx], "train position %d", i)
		}
	}
}

func TestBootstrapSeededIsReproducible(t *testing.T) {
	a, err := Bootstrap(30, 8, WithSeed(99))
	require.NoError(t, err)
	b, err := Bootstrap(30, 8, WithSeed(99))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBootstrapParallelIsDeterministic(t *testing.T) {
	reference, err := Bootstrap(40, 16, WithSeed(3), WithWorkers(2))
	require.NoError(t, err)

	for _, workers := range []int{3, 4, 16, 64} {
		bags, err := Bootstrap(40, 16, WithSeed(3), WithWorkers(workers))
		require.NoError(t, err)
		assert.Equal(t, reference, bags, "workers=%d", workers)
	}
	for _, bag := range reference {
		requirePartition(t, bag, 40)
	}

	strat, err := StratifiedBootstrap([]int{0, 1, 1, 0, 2, 2, 2}, 12, WithSeed(3), WithWorkers(4))
	require.NoError(t, err)
	again, err := StratifiedBootstrap([]int{0, 1, 1, 0, 2, 2, 2}, 12, WithSeed(3), WithWorkers(7))
	require.NoError(t, err)
	assert.Equal(t, strat, again)
}

func TestBootstrapParallelRoundsDiffer(t *testing.T) {
	bags, err := Bootstrap(200, 4, WithSeed(1), WithWorkers(4))
	require.NoError(t, err)
	for i := 1; i < len(bags); i++ {
		assert.NotEqual(t, bags[0].Train, bags[i].Train, "round %d repeats round 0", i)
	}
}

func TestOutOfBagFraction(t *testing.T) {
	assert.Equal(t, 0.0, Bag{}.OutOfBagFraction(0))
	assert.Equal(t, 0.25, Bag{Test: []int{3}}.OutOfBagFraction(4))
}

func BenchmarkBootstrap(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = Bootstrap(10000, 10, WithSeed(uint64(i)))
	}
}
