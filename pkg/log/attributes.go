// Package log defines structured logging helpers and standard attribute keys
// for pipeline operations. Using these keys keeps fit/transform and
// cross-validation log records filterable across the library.
package log

// Operation context.
const (
	// NodeKey identifies the pipeline node performing the operation,
	// rendered in constructor form, e.g. "Seq(scale, Par(ohe, pca))".
	NodeKey = "pipeline.node"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "transform", "fit_transform", "crossvalidate"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package performs the operation.
	// Examples: "pipeline", "ensemble", "crossval"
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows in the dataset being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns in the dataset being processed.
	FeaturesKey = "data.features"
)

// Cross-validation context.
const (
	// RunIDKey is the UUID assigned to one cross-validation run.
	RunIDKey = "run.id"

	// FoldKey is the zero-based fold index within a run.
	FoldKey = "cv.fold"

	// MetricKey is the name of the scoring metric in use.
	MetricKey = "cv.metric"

	// FailedFoldsKey is the number of folds that failed within a run.
	FailedFoldsKey = "cv.failed_folds"
)
