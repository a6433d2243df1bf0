package validation

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciboot/core/model"
	"github.com/YuminosukeSato/sciboot/core/parallel"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// rowCopyThreshold is the number of rows above which row subsets are copied
// in parallel.
const rowCopyThreshold = 1000

// MatrixTrainer fits a matrix based model. X is n×p and y is n×1.
type MatrixTrainer[M model.Predictor] func(X, y mat.Matrix) (M, error)

// BootstrapRegressionMatrix runs k bootstrap rounds of a matrix regressor.
// X holds one sample per row and y is a column vector with as many rows.
func BootstrapRegressionMatrix[M model.Predictor](k int, X, y mat.Matrix, trainer MatrixTrainer[M], opts ...Option) (*RegressionValidations[M], error) {
	n, err := checkXY(X, y)
	if err != nil {
		return nil, err
	}
	bags, err := Bootstrap(n, k, opts...)
	if err != nil {
		return nil, err
	}
	return RegressionMatrixOf(bags, X, y, trainer, opts...)
}

// RegressionMatrixOf trains and scores one matrix regressor per bag.
func RegressionMatrixOf[M model.Predictor](bags []Bag, X, y mat.Matrix, trainer MatrixTrainer[M], opts ...Option) (*RegressionValidations[M], error) {
	if _, err := checkXY(X, y); err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, errors.NewValidationError("trainer", "must not be nil", nil)
	}

	cfg := newConfig(opts)
	r := newRun(cfg, typeName[M](), len(bags))
	rounds := make([]RegressionValidation[M], len(bags))

	err := r.each(bags, func(round int, bag Bag) error {
		m, truth, prediction, fitTime, scoreTime, err := fitAndPredict(X, y, bag, trainer)
		if err != nil {
			return err
		}
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

// BootstrapClassificationMatrix runs k bootstrap rounds of a matrix
// classifier. Labels in y and predictions are rounded to the nearest integer.
func BootstrapClassificationMatrix[M model.Predictor](k int, X, y mat.Matrix, trainer MatrixTrainer[M], opts ...Option) (*ClassificationValidations[M], error) {
	n, err := checkXY(X, y)
	if err != nil {
		return nil, err
	}
	bags, err := Bootstrap(n, k, opts...)
	if err != nil {
		return nil, err
	}
	return ClassificationMatrixOf(bags, X, y, trainer, opts...)
}

// ClassificationMatrixOf trains and scores one matrix classifier per bag.
func ClassificationMatrixOf[M model.Predictor](bags []Bag, X, y mat.Matrix, trainer MatrixTrainer[M], opts ...Option) (*ClassificationValidations[M], error) {
	n, err := checkXY(X, y)
	if err != nil {
		return nil, err
	}
	if trainer == nil {
		return nil, errors.NewValidationError("trainer", "must not be nil", nil)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = toLabel(y.At(i, 0))
	}
	binary := isBinary(labels)

	cfg := newConfig(opts)
	r := newRun(cfg, typeName[M](), len(bags))
	rounds := make([]ClassificationValidation[M], len(bags))

	err = r.each(bags, func(round int, bag Bag) error {
		m, _, raw, fitTime, scoreTime, err := fitAndPredict(X, y, bag, trainer)
		if err != nil {
			return err
		}
		truth := gather(labels, bag.Test)
		prediction := make([]int, len(raw))
		for i, v := range raw {
			prediction[i] = toLabel(v)
		}
		scores := scoreClassification(truth, prediction, binary, round)
		scores.FitTime, scores.ScoreTime = fitTime, scoreTime
		rounds[round] = ClassificationValidation[M]{Model: m, Truth: truth, Prediction: prediction, Metrics: scores}

		r.logger.Debug("round scored",
			log.RoundKey, round,
			log.TrainSizeKey, len(bag.Train),
			log.TestSizeKey, len(bag.Test),
			log.AccuracyKey, scores.Accuracy,
		)
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := newClassificationValidations(rounds)
	r.finished(log.AccuracyKey, result.Avg.Accuracy)
	return result, nil
}

// fitAndPredict trains on the bag's train rows and predicts its test rows.
// Truth and prediction are empty when the test set is.
func fitAndPredict[M model.Predictor](X, y mat.Matrix, bag Bag, trainer MatrixTrainer[M]) (m M, truth, prediction []float64, fitTime, scoreTime float64, err error) {
	start := time.Now()
	m, err = trainer(Rows(X, bag.Train), Rows(y, bag.Train))
	if err != nil {
		return m, nil, nil, 0, 0, errors.NewModelError("MatrixTrainer", "training failed", err)
	}
	fitTime = elapsedMs(start)

	if len(bag.Test) == 0 {
		return m, []float64{}, []float64{}, fitTime, 0, nil
	}

	start = time.Now()
	pred, err := m.Predict(Rows(X, bag.Test))
	if err != nil {
		return m, nil, nil, fitTime, 0, errors.NewModelError("Predictor", "prediction failed", err)
	}
	scoreTime = elapsedMs(start)

	rows, _ := pred.Dims()
	if rows != len(bag.Test) {
		return m, nil, nil, fitTime, scoreTime, errors.NewDimensionError("Predictor.Predict", len(bag.Test), rows, 0)
	}
	truth = make([]float64, len(bag.Test))
	prediction = make([]float64, rows)
	for i, idx := range bag.Test {
		truth[i] = y.At(idx, 0)
		prediction[i] = pred.At(i, 0)
	}
	return m, truth, prediction, fitTime, scoreTime, nil
}

// Rows copies the rows of X listed in idx, in order and with repeats, into a
// new dense matrix. idx must not be empty.
func Rows(X mat.Matrix, idx []int) *mat.Dense {
	_, c := X.Dims()
	out := mat.NewDense(len(idx), c, nil)
	parallel.ParallelizeWithThreshold(len(idx), rowCopyThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				out.Set(i, j, X.At(idx[i], j))
			}
		}
	})
	return out
}

// checkXY validates that y is a column vector matching X's rows.
func checkXY(X, y mat.Matrix) (int, error) {
	if X == nil || y == nil {
		return 0, errors.NewValidationError("X", "X and y must not be nil", nil)
	}
	n, _ := X.Dims()
	ry, cy := y.Dims()
	if cy != 1 {
		return 0, errors.NewValidationError("y", "must be a column vector", cy)
	}
	if ry != n {
		return 0, errors.NewValidationError("y", fmt.Sprintf("must have the same number of rows as X (%d)", n), ry)
	}
	return n, nil
}

func toLabel(v float64) int {
	return int(math.Round(v))
}
