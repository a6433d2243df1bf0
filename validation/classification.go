package validation

import (
	"fmt"
	"math"
	"time"

	"github.com/YuminosukeSato/sciboot/core/model"
	"github.com/YuminosukeSato/sciboot/metrics"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// ClassifierTrainer fits a classifier on the given samples and labels.
type ClassifierTrainer[T any, M model.Classifier[T]] func(x []T, y []int) (M, error)

// BootstrapClassification runs k rounds of bootstrap validation: each round
// trains on a bootstrap bag of (x, y) and scores on its out-of-bag samples.
func BootstrapClassification[T any, M model.Classifier[T]](k int, x []T, y []int, trainer ClassifierTrainer[T, M], opts ...Option) (*ClassificationValidations[M], error) {
	if len(x) != len(y) {
		return nil, errors.NewValidationError("y", fmt.Sprintf("must have the same length as x (%d)", len(x)), len(y))
	}
	bags, err := Bootstrap(len(x), k, opts...)
	if err != nil {
		return nil, err
	}
	return ClassificationOf(bags, x, y, trainer, opts...)
}

// ClassificationOf trains and scores one model per bag. The result lists the
// rounds in bag order.
func ClassificationOf[T any, M model.Classifier[T]](bags []Bag, x []T, y []int, trainer ClassifierTrainer[T, M], opts ...Option) (*ClassificationValidations[M], error) {
	if len(x) != len(y) {
		return nil, errors.NewValidationError("y", fmt.Sprintf("must have the same length as x (%d)", len(x)), len(y))
	}
	if trainer == nil {
		return nil, errors.NewValidationError("trainer", "must not be nil", nil)
	}

	cfg := newConfig(opts)
	binary := isBinary(y)
	r := newRun(cfg, typeName[M](), len(bags))
	rounds := make([]ClassificationValidation[M], len(bags))

	err := r.each(bags, func(round int, bag Bag) error {
		start := time.Now()
		m, err := trainer(gather(x, bag.Train), gather(y, bag.Train))
		if err != nil {
			return errors.NewModelError("ClassificationOf", "training failed", err)
		}
		fitTime := elapsedMs(start)

		testX := gather(x, bag.Test)
		start = time.Now()
		prediction := make([]int, len(testX))
		for i, xi := range testX {
			prediction[i] = m.Predict(xi)
		}
		scoreTime := elapsedMs(start)

		truth := gather(y, bag.Test)
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

// scoreClassification computes the round metrics. An empty test set yields NaN
// scores and an UndefinedMetricWarning.
func scoreClassification(truth, prediction []int, binary bool, round int) ClassificationMetrics {
	nan := math.NaN()
	scores := ClassificationMetrics{
		Size: float64(len(truth)), Error: nan, Accuracy: nan,
		Precision: nan, Recall: nan, Specificity: nan, F1: nan, MCC: nan,
	}
	if len(truth) == 0 {
		undefinedRound("accuracy", round)
		return scores
	}

	errs, _ := metrics.ErrorCount(truth, prediction)
	scores.Error = float64(errs)
	scores.Accuracy, _ = metrics.Accuracy(truth, prediction)
	if binary {
		s, _ := metrics.NewBinaryStats(truth, prediction)
		scores.Precision = s.Precision()
		scores.Recall = s.Recall()
		scores.Specificity = s.Specificity()
		scores.F1 = s.F1()
		scores.MCC = s.MCC()
	}
	return scores
}

func isBinary(y []int) bool {
	for _, label := range y {
		if label != 0 && label != 1 {
			return false
		}
	}
	return true
}
