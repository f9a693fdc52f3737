package preprocessing

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/pkg/errors"
)

// ColumnSelector projects the input onto a fixed set of column indices,
// preserving their order and names. It is the usual first stage of a branch
// that routes categorical and numeric columns through different transformers.
type ColumnSelector struct {
	model.BaseEstimator

	// Indices are the zero-based input columns to keep, in output order.
	Indices []int
}

// NewColumnSelector creates a selector over the given column indices.
func NewColumnSelector(indices ...int) *ColumnSelector {
	owned := make([]int, len(indices))
	copy(owned, indices)
	return &ColumnSelector{Indices: owned}
}

// Fit validates the indices against the input width. The target is ignored.
func (s *ColumnSelector) Fit(X mat.Matrix, _ *mat.VecDense) error {
	_, c := X.Dims()
	if len(s.Indices) == 0 {
		return errors.NewValidationError("indices", "must select at least one column", 0)
	}
	for _, j := range s.Indices {
		if j < 0 || j >= c {
			return errors.NewValueError("ColumnSelector.Fit", fmt.Sprintf("column index %d out of range [0, %d)", j, c))
		}
	}
	s.SetFitted()
	return nil
}

// Transform returns the selected columns.
func (s *ColumnSelector) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("ColumnSelector", "Transform")
	}
	r, c := X.Dims()
	result := mat.NewDense(r, len(s.Indices), nil)
	for jo, j := range s.Indices {
		if j >= c {
			return nil, errors.NewDimensionError("ColumnSelector.Transform", j+1, c, 1)
		}
		for i := 0; i < r; i++ {
			result.Set(i, jo, X.At(i, j))
		}
	}
	return result, nil
}

// ColumnNames maps the selected input names through the projection.
func (s *ColumnSelector) ColumnNames(in []string) []string {
	names := make([]string, len(s.Indices))
	for jo, j := range s.Indices {
		if j < len(in) {
			names[jo] = in[j]
		} else {
			names[jo] = fmt.Sprintf("x%d", j)
		}
	}
	return names
}

// Clone returns an unfitted copy selecting the same indices.
func (s *ColumnSelector) Clone() model.Component {
	return NewColumnSelector(s.Indices...)
}
