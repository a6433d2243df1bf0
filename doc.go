// Package sciboot provides bootstrap resampling and resampling based model
// validation for Go.
//
// A bootstrap replication of a data set of n samples draws n indices
// uniformly with replacement (the train bag) and keeps the indices that were
// never drawn (the out-of-bag test set, about 36.8% of the data for large n).
// Repeating this k times and scoring a model trained on each bag against its
// test set estimates how the model generalizes.
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/sciboot/linear"
//	    "github.com/YuminosukeSato/sciboot/validation"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    X := mat.NewDense(6, 1, []float64{1, 2, 3, 4, 5, 6})
//	    y := mat.NewDense(6, 1, []float64{2.1, 3.9, 6.2, 7.8, 10.1, 12.0})
//
//	    trainer := func(X, y mat.Matrix) (*linear.LinearRegression, error) {
//	        lr := linear.NewLinearRegression()
//	        return lr, lr.Fit(X, y)
//	    }
//	    result, err := validation.BootstrapRegressionMatrix(100, X, y, trainer, validation.WithSeed(42))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Printf("RMSE %.3f ± %.3f\n", result.Avg.RMSE, result.Std.RMSE)
//	}
//
// # Packages
//
//   - validation: Bootstrap, StratifiedBootstrap, KFold, StratifiedKFold and the validation drivers
//   - core/rng: injectable random sources (seeded, split per worker, scripted)
//   - core/model: model interfaces (generic per-sample and gonum matrix based)
//   - core/parallel: parallel processing utilities
//   - metrics: regression and classification metrics
//   - linear: ordinary least squares regression
//   - preprocessing: StandardScaler and scaler pipelines
//   - report: histograms of per-round scores
//   - pkg/errors, pkg/log: structured errors and logging
//
// # Reproducibility
//
// Sampling uses the process-wide math/rand/v2 generator unless a source is
// injected with validation.WithSource or validation.WithSeed. With a seeded
// source the output is identical across runs, and with WithWorkers(n) it is
// identical for every n > 1, because each round draws from its own stream
// derived from the seed.
//
// # Command Line
//
// The sciboot command (cmd/sciboot) exposes the resamplers and an OLS
// validation of CSV data sets.
package sciboot
