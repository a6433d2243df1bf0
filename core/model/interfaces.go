// Package model provides the model interfaces consumed by the validation drivers.
//
// Two families exist: matrix based (Fitter, Predictor over gonum matrices, see
// estimator.go) and generic single-sample models parameterized over the
// sample type T, used when samples are not naturally rows of a dense matrix.
package model

// Classifier predicts an integer class label for one sample.
type Classifier[T any] interface {
	Predict(x T) int
}

// Regressor predicts a real value for one sample.
type Regressor[T any] interface {
	Predict(x T) float64
}

// ClassifierFunc adapts a plain function to Classifier.
type ClassifierFunc[T any] func(x T) int

// Predict implements Classifier.
func (f ClassifierFunc[T]) Predict(x T) int { return f(x) }

// RegressorFunc adapts a plain function to Regressor.
type RegressorFunc[T any] func(x T) float64

// Predict implements Regressor.
func (f RegressorFunc[T]) Predict(x T) float64 { return f(x) }
