// Package pipeline implements the composite node tree behind compiled
// pipeline expressions. A node is anything with the uniform fit/transform
// protocol: atomic wrappers around registered components, sequential chains,
// parallel fan-outs, and (from the ensemble package) meta-learners. Composites
// hold no learned state of their own; only atomic leaves do, so cloning the
// tree is all it takes to reset it for a fresh fit.
package pipeline

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Node is one element of a compiled pipeline tree. Every variant, atomic or
// composite, exposes exactly these operations; composites delegate
// recursively.
//
// Clone returns an unfitted deep copy of the tree structure; it must not
// share learned state with the receiver. String renders the node in explicit
// constructor form, e.g. "Seq(scale, Par(ohe, pca))", for inspection only.
type Node interface {
	Fit(ds *dataset.Dataset, y *mat.VecDense) error
	Transform(ds *dataset.Dataset) (*dataset.Dataset, error)
	Clone() Node
	String() string
}

// Atomic wraps one external component as a pipeline leaf. It mediates between
// the named-column dataset boundary and the component's matrix boundary:
// transform output is re-wrapped as a dataset so it can re-enter any node,
// including learners used mid-chain as filters.
type Atomic struct {
	name string
	comp model.Component
}

// NewAtomic wraps comp as a leaf node named name.
func NewAtomic(name string, comp model.Component) *Atomic {
	return &Atomic{name: name, comp: comp}
}

// Name returns the leaf's registered name.
func (a *Atomic) Name() string { return a.name }

// Component returns the wrapped component.
func (a *Atomic) Component() model.Component { return a.comp }

// Fit delegates to the wrapped component. Filters and transformers ignore y.
func (a *Atomic) Fit(ds *dataset.Dataset, y *mat.VecDense) error {
	if y != nil && y.Len() != ds.Rows() {
		return errors.NewDimensionError(a.name+".Fit", ds.Rows(), y.Len(), 0)
	}
	return a.comp.Fit(ds.Matrix(), y)
}

// Transform delegates to the wrapped component and re-wraps the result with
// column names. Components implementing model.ColumnNamer decide their output
// names; otherwise names pass through when the width is unchanged, and a
// single-column output is named "<node>.pred".
func (a *Atomic) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	out, err := a.comp.Transform(ds.Matrix())
	if err != nil {
		return nil, err
	}
	outRows, outCols := out.Dims()
	if outRows != ds.Rows() {
		return nil, errors.NewDimensionError(a.name+".Transform", ds.Rows(), outRows, 0)
	}

	names := a.outputNames(ds.Columns(), outCols)
	if len(names) != outCols {
		return nil, errors.NewDimensionError(a.name+".Transform", outCols, len(names), 1)
	}

	dense, ok := out.(*mat.Dense)
	if !ok {
		dense = mat.DenseCopyOf(out)
	}
	return dataset.New(dense, names)
}

func (a *Atomic) outputNames(in []string, outCols int) []string {
	if namer, ok := a.comp.(model.ColumnNamer); ok {
		return namer.ColumnNames(in)
	}
	if outCols == len(in) {
		return in
	}
	if outCols == 1 {
		return []string{a.name + ".pred"}
	}
	names := make([]string, outCols)
	for j := range names {
		names[j] = fmt.Sprintf("%s.%d", a.name, j)
	}
	return names
}

// Clone returns a fresh leaf around an unfitted copy of the component.
func (a *Atomic) Clone() Node {
	return &Atomic{name: a.name, comp: a.comp.Clone()}
}

func (a *Atomic) String() string { return a.name }
