// Package model defines the capability contract every pipeline element
// satisfies. Filters, transformers and learners all expose the same two
// operations; whether Fit consumes the target is the only difference between
// them, so learners can sit mid-chain and feed later stages like any filter.
package model

import "gonum.org/v1/gonum/mat"

// Component is the minimal contract for anything admitted into a pipeline.
//
// Fit learns internal state from X and, for supervised components, y. Filters
// and transformers ignore y (it may be nil). Transform applies the learned
// state and always returns a matrix, so any component's output is a valid
// input to any other component. Clone returns a fresh, unfitted copy with the
// same hyperparameters; it must never share learned state with the receiver,
// which is what makes per-fold refitting safe.
type Component interface {
	Fit(X mat.Matrix, y *mat.VecDense) error
	Transform(X mat.Matrix) (mat.Matrix, error)
	Clone() Component
}

// ColumnNamer is an optional extension for components whose output width
// differs from their input width. ColumnNames maps the input column names to
// the output column names and must return exactly as many names as Transform
// returns columns for the same input.
type ColumnNamer interface {
	ColumnNames(in []string) []string
}

// FitTransform fits c on X (and optional y), then transforms the same data.
// It is a convenience, not an atomic operation.
func FitTransform(c Component, X mat.Matrix, y *mat.VecDense) (mat.Matrix, error) {
	if err := c.Fit(X, y); err != nil {
		return nil, err
	}
	return c.Transform(X)
}
