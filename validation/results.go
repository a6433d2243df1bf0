package validation

import (
	"fmt"
	"math"
	"reflect"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/YuminosukeSato/sciboot/core/parallel"
	"github.com/YuminosukeSato/sciboot/pkg/errors"
	"github.com/YuminosukeSato/sciboot/pkg/log"
)

// ClassificationMetrics are the scores of one classification round, or their
// mean/standard deviation across rounds. The binary scores (Precision, Recall,
// Specificity, F1, MCC) treat label 1 as positive and are NaN unless every
// label is 0 or 1. Times are in milliseconds.
type ClassificationMetrics struct {
	FitTime     float64 `json:"fit_time_ms" yaml:"fit_time_ms"`
	ScoreTime   float64 `json:"score_time_ms" yaml:"score_time_ms"`
	Size        float64 `json:"size" yaml:"size"`
	Error       float64 `json:"error" yaml:"error"`
	Accuracy    float64 `json:"accuracy" yaml:"accuracy"`
	Precision   float64 `json:"precision" yaml:"precision"`
	Recall      float64 `json:"recall" yaml:"recall"`
	Specificity float64 `json:"specificity" yaml:"specificity"`
	F1          float64 `json:"f1" yaml:"f1"`
	MCC         float64 `json:"mcc" yaml:"mcc"`
}

func (m ClassificationMetrics) values() []float64 {
	return []float64{m.FitTime, m.ScoreTime, m.Size, m.Error, m.Accuracy, m.Precision, m.Recall, m.Specificity, m.F1, m.MCC}
}

func classificationMetricsFrom(v []float64) ClassificationMetrics {
	return ClassificationMetrics{
		FitTime: v[0], ScoreTime: v[1], Size: v[2], Error: v[3], Accuracy: v[4],
		Precision: v[5], Recall: v[6], Specificity: v[7], F1: v[8], MCC: v[9],
	}
}

// RegressionMetrics are the scores of one regression round, or their
// mean/standard deviation across rounds. Times are in milliseconds.
type RegressionMetrics struct {
	FitTime   float64 `json:"fit_time_ms" yaml:"fit_time_ms"`
	ScoreTime float64 `json:"score_time_ms" yaml:"score_time_ms"`
	Size      float64 `json:"size" yaml:"size"`
	RSS       float64 `json:"rss" yaml:"rss"`
	MSE       float64 `json:"mse" yaml:"mse"`
	RMSE      float64 `json:"rmse" yaml:"rmse"`
	MAE       float64 `json:"mae" yaml:"mae"`
	R2        float64 `json:"r2" yaml:"r2"`
}

func (m RegressionMetrics) values() []float64 {
	return []float64{m.FitTime, m.ScoreTime, m.Size, m.RSS, m.MSE, m.RMSE, m.MAE, m.R2}
}

func regressionMetricsFrom(v []float64) RegressionMetrics {
	return RegressionMetrics{
		FitTime: v[0], ScoreTime: v[1], Size: v[2], RSS: v[3],
		MSE: v[4], RMSE: v[5], MAE: v[6], R2: v[7],
	}
}

// ClassificationValidation is the outcome of one round.
type ClassificationValidation[M any] struct {
	Model      M                     `json:"-" yaml:"-"`
	Truth      []int                 `json:"truth" yaml:"truth"`
	Prediction []int                 `json:"prediction" yaml:"prediction"`
	Metrics    ClassificationMetrics `json:"metrics" yaml:"metrics"`
}

// ClassificationValidations collects all rounds in round order.
type ClassificationValidations[M any] struct {
	Rounds []ClassificationValidation[M] `json:"rounds" yaml:"rounds"`
	Avg    ClassificationMetrics         `json:"avg" yaml:"avg"`
	Std    ClassificationMetrics         `json:"std" yaml:"std"`
}

func newClassificationValidations[M any](rounds []ClassificationValidation[M]) *ClassificationValidations[M] {
	rows := make([][]float64, len(rounds))
	for i, r := range rounds {
		rows[i] = r.Metrics.values()
	}
	avg, std := summarize(rows, len(ClassificationMetrics{}.values()))
	return &ClassificationValidations[M]{
		Rounds: rounds,
		Avg:    classificationMetricsFrom(avg),
		Std:    classificationMetricsFrom(std),
	}
}

// Accuracies returns the per-round accuracy in round order.
func (v *ClassificationValidations[M]) Accuracies() []float64 {
	out := make([]float64, len(v.Rounds))
	for i, r := range v.Rounds {
		out[i] = r.Metrics.Accuracy
	}
	return out
}

// RegressionValidation is the outcome of one round.
type RegressionValidation[M any] struct {
	Model      M                 `json:"-" yaml:"-"`
	Truth      []float64         `json:"truth" yaml:"truth"`
	Prediction []float64         `json:"prediction" yaml:"prediction"`
	Metrics    RegressionMetrics `json:"metrics" yaml:"metrics"`
}

// RegressionValidations collects all rounds in round order.
type RegressionValidations[M any] struct {
	Rounds []RegressionValidation[M] `json:"rounds" yaml:"rounds"`
	Avg    RegressionMetrics         `json:"avg" yaml:"avg"`
	Std    RegressionMetrics         `json:"std" yaml:"std"`
}

func newRegressionValidations[M any](rounds []RegressionValidation[M]) *RegressionValidations[M] {
	rows := make([][]float64, len(rounds))
	for i, r := range rounds {
		rows[i] = r.Metrics.values()
	}
	avg, std := summarize(rows, len(RegressionMetrics{}.values()))
	return &RegressionValidations[M]{
		Rounds: rounds,
		Avg:    regressionMetricsFrom(avg),
		Std:    regressionMetricsFrom(std),
	}
}

// RMSEs returns the per-round RMSE in round order.
func (v *RegressionValidations[M]) RMSEs() []float64 {
	out := make([]float64, len(v.Rounds))
	for i, r := range v.Rounds {
		out[i] = r.Metrics.RMSE
	}
	return out
}

// summarize computes the column-wise mean and sample standard deviation,
// ignoring NaN entries. A column with no finite entries is NaN; a column with
// one entry has zero deviation.
func summarize(rows [][]float64, width int) (mean, std []float64) {
	mean = make([]float64, width)
	std = make([]float64, width)
	col := make([]float64, 0, len(rows))
	for j := 0; j < width; j++ {
		col = col[:0]
		for _, row := range rows {
			if !math.IsNaN(row[j]) {
				col = append(col, row[j])
			}
		}
		switch len(col) {
		case 0:
			mean[j], std[j] = math.NaN(), math.NaN()
		case 1:
			mean[j], std[j] = col[0], 0
		default:
			mean[j], std[j] = stat.MeanStdDev(col, nil)
		}
	}
	return mean, std
}

// run is the shared per-round loop of the drivers.
type run struct {
	cfg    *config
	logger log.Logger
	start  time.Time
}

func newRun(cfg *config, modelName string, rounds int) *run {
	logger := cfg.logger.With(
		log.RunIDKey, uuid.NewString(),
		log.ModelNameKey, modelName,
		log.RoundsKey, rounds,
	)
	return &run{cfg: cfg, logger: logger, start: time.Now()}
}

// each runs fn for every bag, recovering panics and tagging errors with the
// round number. The first failing round (by index) aborts the run.
func (r *run) each(bags []Bag, fn func(round int, bag Bag) error) error {
	err := parallel.ForEach(len(bags), r.cfg.workers, func(round int) error {
		op := fmt.Sprintf("validation round %d", round)
		if err := errors.SafeExecute(op, func() error { return fn(round, bags[round]) }); err != nil {
			return errors.Wrapf(err, "round %d", round)
		}
		return nil
	})
	if err != nil {
		r.logger.Error("validation failed", err, log.PhaseKey, log.PhaseValidation)
	}
	return err
}

func (r *run) finished(fields ...any) {
	fields = append(fields, log.DurationMsKey, time.Since(r.start).Milliseconds())
	r.logger.Info("validation finished", fields...)
}

func elapsedMs(start time.Time) float64 {
	return float64(time.Since(start).Nanoseconds()) / 1e6
}

func undefinedRound(metric string, round int) {
	errors.Warn(errors.NewUndefinedMetricWarning(metric, fmt.Sprintf("empty test set in round %d", round), math.NaN()))
}

// typeName names the model type in log entries.
func typeName[M any]() string {
	return reflect.TypeFor[M]().String()
}

func gather[E any](s []E, idx []int) []E {
	out := make([]E, len(idx))
	for i, j := range idx {
		out[i] = s[j]
	}
	return out
}
