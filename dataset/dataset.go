// Package dataset provides the named-column tabular structure exchanged
// between pipeline nodes. A Dataset pairs a gonum matrix with ordered column
// names; the names travel through transforms so column identity is preserved
// across a fitted pipeline.
package dataset

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/pkg/errors"
)

// Dataset is an ordered, named-column view over a dense matrix.
type Dataset struct {
	names []string
	m     *mat.Dense
}

// New creates a Dataset from a matrix and column names. When names is nil,
// columns are named x0..x(n-1). The number of names must match the matrix
// width.
func New(m *mat.Dense, names []string) (*Dataset, error) {
	if m == nil {
		return nil, errors.NewValueError("dataset.New", "nil matrix")
	}
	r, c := m.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("dataset.New", "empty data", errors.ErrEmptyData)
	}
	if names == nil {
		names = defaultNames(c)
	}
	if len(names) != c {
		return nil, errors.NewDimensionError("dataset.New", c, len(names), 1)
	}
	owned := make([]string, c)
	copy(owned, names)
	return &Dataset{names: owned, m: m}, nil
}

// FromColumn wraps a single column vector as a one-column Dataset. Learner
// predictions re-enter the pipeline through this path.
func FromColumn(name string, v *mat.VecDense) (*Dataset, error) {
	if v == nil || v.Len() == 0 {
		return nil, errors.NewModelError("dataset.FromColumn", "empty data", errors.ErrEmptyData)
	}
	m := mat.NewDense(v.Len(), 1, nil)
	for i := 0; i < v.Len(); i++ {
		m.Set(i, 0, v.AtVec(i))
	}
	return &Dataset{names: []string{name}, m: m}, nil
}

func defaultNames(c int) []string {
	names := make([]string, c)
	for j := range names {
		names[j] = fmt.Sprintf("x%d", j)
	}
	return names
}

// Rows returns the number of rows.
func (d *Dataset) Rows() int {
	r, _ := d.m.Dims()
	return r
}

// Cols returns the number of columns.
func (d *Dataset) Cols() int {
	_, c := d.m.Dims()
	return c
}

// Columns returns a copy of the ordered column names.
func (d *Dataset) Columns() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// Matrix returns the underlying matrix. Callers must not mutate it; transform
// results are always freshly allocated.
func (d *Dataset) Matrix() *mat.Dense {
	return d.m
}

// ColumnIndex returns the position of the named column.
func (d *Dataset) ColumnIndex(name string) (int, bool) {
	for j, n := range d.names {
		if n == name {
			return j, true
		}
	}
	return 0, false
}

// Clone returns a deep copy of the Dataset.
func (d *Dataset) Clone() *Dataset {
	m := mat.DenseCopyOf(d.m)
	names := make([]string, len(d.names))
	copy(names, d.names)
	return &Dataset{names: names, m: m}
}

// SelectRows returns a new Dataset containing the given rows in index order.
// Indices may repeat (bootstrap samples rely on this).
func (d *Dataset) SelectRows(idx []int) (*Dataset, error) {
	if len(idx) == 0 {
		return nil, errors.NewModelError("Dataset.SelectRows", "empty index set", errors.ErrEmptyData)
	}
	r, c := d.m.Dims()
	out := mat.NewDense(len(idx), c, nil)
	for i, row := range idx {
		if row < 0 || row >= r {
			return nil, errors.NewValueError("Dataset.SelectRows", fmt.Sprintf("row index %d out of range [0, %d)", row, r))
		}
		for j := 0; j < c; j++ {
			out.Set(i, j, d.m.At(row, j))
		}
	}
	names := make([]string, c)
	copy(names, d.names)
	return &Dataset{names: names, m: out}, nil
}

// SelectColumns returns a new Dataset containing the given columns in index
// order, keeping their names.
func (d *Dataset) SelectColumns(idx []int) (*Dataset, error) {
	if len(idx) == 0 {
		return nil, errors.NewModelError("Dataset.SelectColumns", "empty index set", errors.ErrEmptyData)
	}
	r, c := d.m.Dims()
	out := mat.NewDense(r, len(idx), nil)
	names := make([]string, len(idx))
	for jo, col := range idx {
		if col < 0 || col >= c {
			return nil, errors.NewValueError("Dataset.SelectColumns", fmt.Sprintf("column index %d out of range [0, %d)", col, c))
		}
		names[jo] = d.names[col]
		for i := 0; i < r; i++ {
			out.Set(i, jo, d.m.At(i, col))
		}
	}
	return &Dataset{names: names, m: out}, nil
}

// Column returns the named column as a vector.
func (d *Dataset) Column(name string) (*mat.VecDense, error) {
	j, ok := d.ColumnIndex(name)
	if !ok {
		return nil, errors.NewValueError("Dataset.Column", fmt.Sprintf("no column named %q", name))
	}
	return d.ColumnAt(j), nil
}

// ColumnAt returns the j-th column as a vector.
func (d *Dataset) ColumnAt(j int) *mat.VecDense {
	r, _ := d.m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, d.m.At(i, j))
	}
	return v
}

// HStack concatenates datasets column-wise, preserving part order for
// deterministic column ordering. All parts must have the same row count or
// the call fails with a dimension error. Duplicate column names are
// disambiguated with a numeric suffix.
func HStack(parts ...*Dataset) (*Dataset, error) {
	if len(parts) == 0 {
		return nil, errors.NewModelError("dataset.HStack", "no parts", errors.ErrEmptyData)
	}
	rows := parts[0].Rows()
	total := 0
	for _, p := range parts {
		if p.Rows() != rows {
			return nil, errors.NewDimensionError("dataset.HStack", rows, p.Rows(), 0)
		}
		total += p.Cols()
	}

	out := mat.NewDense(rows, total, nil)
	names := make([]string, 0, total)
	seen := make(map[string]int, total)
	off := 0
	for _, p := range parts {
		c := p.Cols()
		for j := 0; j < c; j++ {
			name := p.names[j]
			if n, dup := seen[name]; dup {
				seen[name] = n + 1
				name = fmt.Sprintf("%s_%d", name, n)
			} else {
				seen[name] = 1
			}
			names = append(names, name)
			for i := 0; i < rows; i++ {
				out.Set(i, off+j, p.m.At(i, j))
			}
		}
		off += c
	}
	return &Dataset{names: names, m: out}, nil
}

// SubsetVec returns the elements of y at the given indices as a new vector.
func SubsetVec(y *mat.VecDense, idx []int) *mat.VecDense {
	out := mat.NewVecDense(len(idx), nil)
	for i, row := range idx {
		out.SetVec(i, y.AtVec(row))
	}
	return out
}
