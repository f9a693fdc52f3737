package preprocessing

import (
	"sort"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/pkg/errors"
)

// OneHotEncoder expands float-coded categorical columns into indicator
// columns, one per category value learned at fit time. Values unseen during
// fit encode as all zeros. Output columns are named "<col>=<value>" so
// column identity survives the expansion.
type OneHotEncoder struct {
	model.BaseEstimator

	// Categories holds the sorted distinct values per input column.
	Categories [][]float64

	// NFeatures is the fitted input feature count.
	NFeatures int
}

// NewOneHotEncoder creates an unfitted OneHotEncoder.
func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit learns the distinct category values of every column. The target is ignored.
func (e *OneHotEncoder) Fit(X mat.Matrix, _ *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("OneHotEncoder.Fit", "empty data", errors.ErrEmptyData)
	}

	e.NFeatures = c
	e.Categories = make([][]float64, c)
	for j := 0; j < c; j++ {
		seen := make(map[float64]bool)
		var values []float64
		for i := 0; i < r; i++ {
			v := X.At(i, j)
			if !seen[v] {
				seen[v] = true
				values = append(values, v)
			}
		}
		sort.Float64s(values)
		e.Categories[j] = values
	}

	e.SetFitted()
	return nil
}

// Transform expands each input column into its indicator columns.
func (e *OneHotEncoder) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !e.IsFitted() {
		return nil, errors.NewNotFittedError("OneHotEncoder", "Transform")
	}
	r, c := X.Dims()
	if c != e.NFeatures {
		return nil, errors.NewDimensionError("OneHotEncoder.Transform", e.NFeatures, c, 1)
	}

	total := 0
	offsets := make([]int, c)
	for j, values := range e.Categories {
		offsets[j] = total
		total += len(values)
	}

	result := mat.NewDense(r, total, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := X.At(i, j)
			values := e.Categories[j]
			k := sort.SearchFloat64s(values, v)
			if k < len(values) && values[k] == v {
				result.Set(i, offsets[j]+k, 1)
			}
		}
	}
	return result, nil
}

// ColumnNames maps input column names to "<col>=<value>" indicator names.
func (e *OneHotEncoder) ColumnNames(in []string) []string {
	var names []string
	for j, values := range e.Categories {
		col := strconv.Itoa(j)
		if j < len(in) {
			col = in[j]
		}
		for _, v := range values {
			names = append(names, col+"="+strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	return names
}

// Clone returns an unfitted copy.
func (e *OneHotEncoder) Clone() model.Component {
	return NewOneHotEncoder()
}
