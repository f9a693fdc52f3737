package pipeline

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Parallel fans the same input out to every child and concatenates the
// children's transform outputs column-wise. Children never observe each
// other; output column order follows the left-to-right child order, so the
// result is deterministic. Nested Parallel children are spliced flat on
// construction, making `a + b + c` n-ary rather than a binary nesting.
type Parallel struct {
	children []Node
}

// NewParallel builds a parallel combination over two or more children.
func NewParallel(children ...Node) (*Parallel, error) {
	flat := flattenPar(children)
	if len(flat) < 2 {
		return nil, errors.NewValidationError("children", "parallel node requires at least 2 children", len(flat))
	}
	return &Parallel{children: flat}, nil
}

func flattenPar(children []Node) []Node {
	flat := make([]Node, 0, len(children))
	for _, c := range children {
		if p, ok := c.(*Parallel); ok {
			flat = append(flat, p.children...)
			continue
		}
		flat = append(flat, c)
	}
	return flat
}

// Children returns the ordered child nodes.
func (p *Parallel) Children() []Node {
	out := make([]Node, len(p.children))
	copy(out, p.children)
	return out
}

// Fit fits every child independently on the same input.
func (p *Parallel) Fit(ds *dataset.Dataset, y *mat.VecDense) error {
	for _, c := range p.children {
		if err := c.Fit(ds, y); err != nil {
			return err
		}
	}
	return nil
}

// Transform transforms the input through every child and stacks the outputs
// column-wise. Row counts across children must agree with the input or the
// call fails with a dimension error.
func (p *Parallel) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	outs := make([]*dataset.Dataset, len(p.children))
	for i, c := range p.children {
		out, err := c.Transform(ds)
		if err != nil {
			return nil, err
		}
		if out.Rows() != ds.Rows() {
			return nil, errors.NewDimensionError("Parallel.Transform", ds.Rows(), out.Rows(), 0)
		}
		outs[i] = out
	}
	return dataset.HStack(outs...)
}

// Clone returns an unfitted copy of the fan-out.
func (p *Parallel) Clone() Node {
	children := make([]Node, len(p.children))
	for i, c := range p.children {
		children[i] = c.Clone()
	}
	return &Parallel{children: children}
}

func (p *Parallel) String() string {
	parts := make([]string, len(p.children))
	for i, c := range p.children {
		parts[i] = c.String()
	}
	return "Par(" + strings.Join(parts, ", ") + ")"
}
