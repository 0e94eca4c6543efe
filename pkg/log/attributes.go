// Package log defines standard attribute keys for kernel-approximation
// operations.
//
// Using these keys keeps log output consistent across packages and enables
// structured filtering (e.g. all records of one feature-map instance).
// The keys follow a hierarchical naming convention ("model.name",
// "data.samples").
package log

// Model and operation context.
const (
	// ModelNameKey identifies the estimator type.
	// Examples: "RandomFourierFeatures", "PCA", "LogisticRegression"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "transform", "fit_transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "rff", "decomposition", "pipeline"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"
)

// Kernel approximation parameters.
const (
	// SigmaKey records the estimated kernel bandwidth.
	SigmaKey = "kernel.sigma"

	// VariantKey records the feature-map variant in use.
	// Values: "identity", "random_fourier", "orthogonal_random_fourier"
	VariantKey = "kernel.variant"

	// FeatureCountKey records the number of random features generated.
	FeatureCountKey = "kernel.feature_count"

	// TargetDimKey records the input dimensionality the projection was built
	// against (after optional reduction).
	TargetDimKey = "kernel.target_dim"

	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"
)

// Performance and metrics.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy for evaluation operations.
	AccuracyKey = "metrics.accuracy"

	// LossKey records loss value during training or evaluation.
	LossKey = "metrics.loss"

	// IterationKey records the current iteration number during training.
	IterationKey = "training.iteration"
)

// Error context.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "INSUFFICIENT_DATA"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	ErrorTypeKey = "error.type"
)

// Standard attribute value constants for common operations.
const (
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"

	ErrorNotFitted         = "NOT_FITTED"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorEmptyData         = "EMPTY_DATA"
	ErrorInsufficientData  = "INSUFFICIENT_DATA"
	ErrorRankDeficient     = "RANK_DEFICIENT"
)
