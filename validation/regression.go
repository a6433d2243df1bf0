package validation

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciboot/core/model"
	"github.com/YuminosukeSato/sciboot/metrics"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// RegressorTrainer fits a regressor on the given samples and responses.
type RegressorTrainer[T any, M model.Regressor[T]] func(x []T, y []float64) (M, error)

// BootstrapRegression runs k rounds of bootstrap validation of a regressor.
func BootstrapRegression[T any, M model.Regressor[T]](k int, x []T, y []float64, trainer RegressorTrainer[T, M], opts ...Option) (*RegressionValidations[M], error) {
	if len(x) != len(y) {
		return nil, errors.NewValidationError("y", fmt.Sprintf("must have the same length as x (%d)", len(x)), len(y))
	}
	bags, err := Bootstrap(len(x), k, opts...)
	if err != nil {
		return nil, err
	}
	return RegressionOf(bags, x, y, trainer, opts...)
}

// RegressionOf trains and scores one regressor per bag, in bag order.
func RegressionOf[T any, M model.Regressor[T]](bags []Bag, x []T, y []float64, trainer RegressorTrainer[T, M], opts ...Option) (*RegressionValidations[M], error) {
	if len(x) != len(y) {
		return nil, errors.NewValidationError("y", fmt.Sprintf("must have the same length as x (%d)", len(x)), len(y))
	}
	if trainer == nil {
		return nil, errors.NewValidationError("trainer", "must not be nil", nil)
	}

	cfg := newConfig(opts)
	r := newRun(cfg, typeName[M](), len(bags))
	rounds := make([]RegressionValidation[M], len(bags))

	err := r.each(bags, func(round int, bag Bag) error {
		start := time.Now()
		m, err := trainer(gather(x, bag.Train), gather(y, bag.Train))
		if err != nil {
			return errors.NewModelError("RegressionOf", "training failed", err)
		}
		fitTime := elapsedMs(start)

		testX := gather(x, bag.Test)
		start = time.Now()
		prediction := make([]float64, len(testX))
		for i, xi := range testX {
			prediction[i] = m.Predict(xi)
		}
		scoreTime := elapsedMs(start)

		truth := gather(y, bag.Test)
		scores := scoreRegression(truth, prediction, round)
		scores.FitTime, scores.ScoreTime = fitTime, scoreTime
		rounds[round] = RegressionValidation[M]{Model: m, Truth: truth, Prediction: prediction, Metrics: scores}

		r.logger.Debug("round scored",
			log.RoundKey, round,
			log.TrainSizeKey, len(bag.Train),
			log.TestSizeKey, len(bag.Test),
			log.RMSEKey, scores.RMSE,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := newRegressionValidations(rounds)
	r.finished(log.RMSEKey, result.Avg.RMSE, log.R2ScoreKey, result.Avg.R2)
	return result, nil
}

// scoreRegression computes the round metrics. R2 is NaN when the test
// responses have no variance; everything is NaN for an empty test set.
func scoreRegression(truth, prediction []float64, round int) RegressionMetrics {
	nan := math.NaN()
	scores := RegressionMetrics{Size: float64(len(truth)), RSS: nan, MSE: nan, RMSE: nan, MAE: nan, R2: nan}
	if len(truth) == 0 {
		undefinedRound("rmse", round)
		return scores
	}

	yTrue := mat.NewVecDense(len(truth), truth)
	yPred := mat.NewVecDense(len(prediction), prediction)
	scores.RSS, _ = metrics.RSS(yTrue, yPred)
	scores.MSE, _ = metrics.MSE(yTrue, yPred)
	scores.RMSE, _ = metrics.RMSE(yTrue, yPred)
	scores.MAE, _ = metrics.MAE(yTrue, yPred)
	if r2, err := metrics.R2Score(yTrue, yPred); err == nil {
		scores.R2 = r2
	}
	return scores
}
