// Package dummy provides trivial baseline learners, useful as pipeline leaves
// in tests and as sanity baselines in cross-validation.
package dummy

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/pkg/errors"
)

// MostFrequentClassifier always predicts the majority class seen at fit time.
// Ties break toward the smallest class label for determinism.
type MostFrequentClassifier struct {
	model.BaseEstimator

	// Class is the learned majority class.
	Class float64
}

// NewMostFrequentClassifier creates an unfitted majority-class baseline.
func NewMostFrequentClassifier() *MostFrequentClassifier {
	return &MostFrequentClassifier{}
}

// Fit memorizes the majority class of y.
func (c *MostFrequentClassifier) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, _ := X.Dims()
	if y == nil {
		return errors.NewModelError("MostFrequentClassifier.Fit", "missing target", errors.ErrMissingTarget)
	}
	if y.Len() != r {
		return errors.NewDimensionError("MostFrequentClassifier.Fit", r, y.Len(), 0)
	}

	counts := make(map[float64]int)
	for i := 0; i < y.Len(); i++ {
		counts[y.AtVec(i)]++
	}
	best := y.AtVec(0)
	bestCount := 0
	for label, n := range counts {
		if n > bestCount || (n == bestCount && label < best) {
			best, bestCount = label, n
		}
	}
	c.Class = best

	c.SetFitted()
	return nil
}

// Transform returns a one-column prediction of the majority class.
func (c *MostFrequentClassifier) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !c.IsFitted() {
		return nil, errors.NewNotFittedError("MostFrequentClassifier", "Transform")
	}
	r, _ := X.Dims()
	result := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		result.Set(i, 0, c.Class)
	}
	return result, nil
}

// Clone returns an unfitted copy.
func (c *MostFrequentClassifier) Clone() model.Component {
	return NewMostFrequentClassifier()
}
