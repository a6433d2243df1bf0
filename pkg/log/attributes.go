// Package log defines standard attribute keys for resampling and validation runs.
//
// Keys follow a hierarchical naming convention (e.g. "model.name",
// "resample.round") so that records from different packages can be filtered
// consistently.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the type of model being trained per round.
	ModelNameKey = "model.name"

	// RunIDKey identifies one validation run (all of its rounds share it).
	RunIDKey = "run.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "bootstrap", "stratified_bootstrap", "kfold", "fit", "predict".
	OperationKey = "ml.operation"

	// ComponentKey identifies which component or package is logging.
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the run: "resampling", "training", "validation".
	PhaseKey = "ml.phase"
)

// Resampling shape.
const (
	// SamplesKey is the population size n.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns.
	FeaturesKey = "data.features"

	// StrataKey is the number of distinct strata (classes).
	StrataKey = "resample.strata"

	// RoundsKey is the number of replications k.
	RoundsKey = "resample.rounds"

	// RoundKey is the zero-based replication index.
	RoundKey = "resample.round"

	// TrainSizeKey is the size of a bag's train sequence.
	TrainSizeKey = "resample.train_size"

	// TestSizeKey is the size of a bag's out-of-bag/test sequence.
	TestSizeKey = "resample.test_size"

	// WorkersKey is the number of goroutines used.
	WorkersKey = "resample.workers"
)

// Metrics and timing.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy.
	AccuracyKey = "metrics.accuracy"

	// RMSEKey records regression root mean squared error.
	RMSEKey = "metrics.rmse"

	// R2ScoreKey records R² coefficient of determination.
	R2ScoreKey = "metrics.r2_score"
)

// Error context.
const (
	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	StacktraceKey = "error.stacktrace"
)

// Standard attribute values.
const (
	OperationBootstrap           = "bootstrap"
	OperationStratifiedBootstrap = "stratified_bootstrap"
	OperationKFold               = "kfold"
	OperationFit                 = "fit"
	OperationPredict             = "predict"

	PhaseResampling = "resampling"
	PhaseTraining   = "training"
	PhaseValidation = "validation"
)
