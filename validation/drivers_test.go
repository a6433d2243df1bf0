package validation

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/sciboot/core/model"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// thresholdData returns points on [0, 1) labeled 1 above 0.5.
func thresholdData(n int) ([]float64, []int) {
	x := make([]float64, n)
	y := make([]int, n)
	for i := range x {
		x[i] = float64(i) / float64(n)
		if x[i] > 0.5 {
			y[i] = 1
		}
	}
	return x, y
}

func stumpTrainer(x []float64, y []int) (model.ClassifierFunc[float64], error) {
	// midpoint between the largest 0 and the smallest 1
	lo, hi := math.Inf(-1), math.Inf(1)
	for i, xi := range x {
		if y[i] == 0 && xi > lo {
			lo = xi
		}
		if y[i] == 1 && xi < hi {
			hi = xi
		}
	}
	cut := (lo + hi) / 2
	return func(v float64) int {
		if v > cut {
			return 1
		}
		return 0
	}, nil
}

// lineTrainer fits a least squares line through (x, y).
func lineTrainer(x, y []float64) (model.RegressorFunc[float64], error) {
	var mx, my float64
	for i := range x {
		mx += x[i]
		my += y[i]
	}
	n := float64(len(x))
	mx, my = mx/n, my/n
	var sxy, sxx float64
	for i := range x {
		sxy += (x[i] - mx) * (y[i] - my)
		sxx += (x[i] - mx) * (x[i] - mx)
	}
	slope := 0.0
	if sxx > 0 {
		slope = sxy / sxx
	}
	intercept := my - slope*mx
	return func(v float64) float64 { return intercept + slope*v }, nil
}

// captureWarnings records library warnings for the duration of the test.
func captureWarnings(t *testing.T) func() []error {
	t.Helper()
	var mu sync.Mutex
	var got []error
	errors.SetWarningHandler(func(w error) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, w)
	})
	t.Cleanup(func() { errors.SetWarningHandler(nil) })
	return func() []error {
		mu.Lock()
		defer mu.Unlock()
		return append([]error(nil), got...)
	}
}

func TestBootstrapClassification(t *testing.T) {
	x, y := thresholdData(60)
	result, err := BootstrapClassification(10, x, y, stumpTrainer, WithSeed(12))
	require.NoError(t, err)
	require.Len(t, result.Rounds, 10)

	for i, round := range result.Rounds {
		assert.Equal(t, len(round.Truth), len(round.Prediction), "round %d", i)
		assert.Equal(t, float64(len(round.Truth)), round.Metrics.Size)
		assert.Greater(t, round.Metrics.Accuracy, 0.8, "round %d", i)
		assert.False(t, math.IsNaN(round.Metrics.F1), "binary labels must produce F1")
	}
	assert.Greater(t, result.Avg.Accuracy, 0.9)
	assert.GreaterOrEqual(t, result.Std.Accuracy, 0.0)
	assert.Len(t, result.Accuracies(), 10)
}

func TestBootstrapClassificationMulticlassSkipsBinaryScores(t *testing.T) {
	x := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8}
	y := []int{0, 0, 0, 1, 1, 1, 2, 2, 2}
	trainer := func(x []float64, y []int) (model.ClassifierFunc[float64], error) {
		return func(v float64) int { return int(v) / 3 }, nil
	}

	result, err := BootstrapClassification(5, x, y, trainer, WithSeed(1))
	require.NoError(t, err)
	for _, round := range result.Rounds {
		if len(round.Truth) == 0 {
			continue
		}
		assert.Equal(t, 1.0, round.Metrics.Accuracy)
		assert.Equal(t, 0.0, round.Metrics.Error)
		assert.True(t, math.IsNaN(round.Metrics.Precision))
		assert.True(t, math.IsNaN(round.Metrics.MCC))
	}
}

func TestBootstrapRegression(t *testing.T) {
	x := make([]float64, 40)
	y := make([]float64, 40)
	for i := range x {
		x[i] = float64(i)
		y[i] = 3*x[i] - 2
	}

	result, err := BootstrapRegression(8, x, y, lineTrainer, WithSeed(21))
	require.NoError(t, err)
	require.Len(t, result.Rounds, 8)
	for _, round := range result.Rounds {
		assert.InDelta(t, 0, round.Metrics.RMSE, 1e-9)
		assert.InDelta(t, 1, round.Metrics.R2, 1e-9)
	}
	assert.InDelta(t, 0, result.Avg.MAE, 1e-9)
	assert.Len(t, result.RMSEs(), 8)
}

func TestDriversRejectMismatchedLengths(t *testing.T) {
	_, err := BootstrapClassification(3, []float64{1, 2}, []int{0}, stumpTrainer)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = BootstrapRegression(3, []float64{1}, []float64{1, 2}, lineTrainer)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = BootstrapRegression(-1, []float64{1}, []float64{1}, lineTrainer)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))

	_, err = ClassificationOf[float64, model.ClassifierFunc[float64]](nil, []float64{1}, []int{1}, nil)
	assert.True(t, errors.Is(err, errors.ErrInvalidArgument))
}

func TestDriverTrainerErrorAbortsRun(t *testing.T) {
	sentinel := errors.New("cannot fit")
	calls := 0
	trainer := func(x []float64, y []int) (model.ClassifierFunc[float64], error) {
		calls++
		if calls == 2 {
			return nil, sentinel
		}
		return stumpTrainer(x, y)
	}

	x, y := thresholdData(20)
	result, err := BootstrapClassification(5, x, y, trainer, WithSeed(2))
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, sentinel))
	assert.Contains(t, err.Error(), "round 1")
	assert.Equal(t, 2, calls, "sequential run must stop at the first failure")
}

func TestDriverTrainerPanicIsRecovered(t *testing.T) {
	trainer := func(x, y []float64) (model.RegressorFunc[float64], error) {
		panic("boom")
	}

	for _, workers := range []int{1, 4} {
		_, err := BootstrapRegression(3, []float64{1, 2, 3}, []float64{1, 2, 3}, trainer, WithSeed(1), WithWorkers(workers))
		require.Error(t, err)

		var perr *errors.PanicError
		require.True(t, errors.As(err, &perr), "workers=%d: %v", workers, err)
		assert.Equal(t, "boom", perr.PanicValue)
	}
}

func TestDriverEmptyTestSetIsUndefined(t *testing.T) {
	warnings := captureWarnings(t)

	x, y := thresholdData(4)
	bags := []Bag{
		{Train: []int{0, 1, 2, 3}, Test: []int{}},
		{Train: []int{0, 0, 3, 3}, Test: []int{1, 2}},
	}
	result, err := ClassificationOf(bags, x, y, stumpTrainer)
	require.NoError(t, err)

	empty := result.Rounds[0].Metrics
	assert.True(t, math.IsNaN(empty.Accuracy))
	assert.True(t, math.IsNaN(empty.Error))
	assert.Equal(t, 0.0, empty.Size)
	assert.NotNil(t, result.Rounds[0].Model, "rounds with an empty test set are still trained")

	// The aggregate only covers the scored round.
	assert.Equal(t, result.Rounds[1].Metrics.Accuracy, result.Avg.Accuracy)
	assert.Equal(t, 0.0, result.Std.Accuracy)

	got := warnings()
	require.Len(t, got, 1)
	var w *errors.UndefinedMetricWarning
	require.True(t, errors.As(got[0], &w))
	assert.Equal(t, "accuracy", w.Metric)
}

func TestRegressionConstantTruthHasUndefinedR2(t *testing.T) {
	x := []float64{0, 1, 2}
	y := []float64{5, 5, 5}
	bags := []Bag{{Train: []int{0, 1, 2}, Test: []int{0, 1}}}

	result, err := RegressionOf(bags, x, y, lineTrainer)
	require.NoError(t, err)
	assert.True(t, math.IsNaN(result.Rounds[0].Metrics.R2))
	assert.InDelta(t, 0, result.Rounds[0].Metrics.RMSE, 1e-12)
}

func TestDriversParallelMatchSequentialBags(t *testing.T) {
	x, y := thresholdData(50)

	a, err := BootstrapClassification(12, x, y, stumpTrainer, WithSeed(9), WithWorkers(2))
	require.NoError(t, err)
	b, err := BootstrapClassification(12, x, y, stumpTrainer, WithSeed(9), WithWorkers(6))
	require.NoError(t, err)

	assert.Equal(t, a.Accuracies(), b.Accuracies())
	for i := range a.Rounds {
		assert.Equal(t, a.Rounds[i].Truth, b.Rounds[i].Truth)
	}
}

func TestDriverLogsRunSummary(t *testing.T) {
	logger := log.NewTestLogger(log.LevelDebug)
	x, y := thresholdData(10)

	_, err := BootstrapClassification(2, x, y, stumpTrainer, WithSeed(1), WithLogger(logger))
	require.NoError(t, err)

	assert.True(t, logger.ContainsMessage("validation finished"))
	assert.True(t, logger.ContainsMessage("round scored"))
	assert.True(t, logger.ContainsField(log.RoundsKey, float64(2)))
}

func TestSummarize(t *testing.T) {
	nan := math.NaN()
	mean, std := summarize([][]float64{
		{1, nan, nan},
		{3, 4, nan},
	}, 3)

	assert.Equal(t, 2.0, mean[0])
	assert.InDelta(t, math.Sqrt2, std[0], 1e-12)
	assert.Equal(t, 4.0, mean[1])
	assert.Equal(t, 0.0, std[1])
	assert.True(t, math.IsNaN(mean[2]))
	assert.True(t, math.IsNaN(std[2]))
}
