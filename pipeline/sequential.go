package pipeline

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Sequential pipes each child's transform output into the next child. The
// chain is n-ary with strict left-to-right execution order; nested Sequential
// children are spliced flat on construction so `a |> b |> c` and
// `(a |> b) |> c` build the same tree.
type Sequential struct {
	children []Node
}

// NewSequential builds a sequential chain over two or more children.
func NewSequential(children ...Node) (*Sequential, error) {
	flat := flattenSeq(children)
	if len(flat) < 2 {
		return nil, errors.NewValidationError("children", "sequential node requires at least 2 children", len(flat))
	}
	return &Sequential{children: flat}, nil
}

func flattenSeq(children []Node) []Node {
	flat := make([]Node, 0, len(children))
	for _, c := range children {
		if s, ok := c.(*Sequential); ok {
			flat = append(flat, s.children...)
			continue
		}
		flat = append(flat, c)
	}
	return flat
}

// Children returns the ordered child nodes.
func (s *Sequential) Children() []Node {
	out := make([]Node, len(s.children))
	copy(out, s.children)
	return out
}

// Fit fits the first child on the input, transforms through it, and repeats
// down the chain. Intermediate filters never touch the target: every child is
// fit against the original y.
func (s *Sequential) Fit(ds *dataset.Dataset, y *mat.VecDense) error {
	cur := ds
	for i, c := range s.children {
		if err := c.Fit(cur, y); err != nil {
			return err
		}
		if i == len(s.children)-1 {
			break
		}
		next, err := c.Transform(cur)
		if err != nil {
			return err
		}
		cur = next
	}
	return nil
}

// Transform re-runs the left-to-right transform chain with each child's
// already-fitted state.
func (s *Sequential) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	cur := ds
	for _, c := range s.children {
		next, err := c.Transform(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// Clone returns an unfitted copy of the chain.
func (s *Sequential) Clone() Node {
	children := make([]Node, len(s.children))
	for i, c := range s.children {
		children[i] = c.Clone()
	}
	return &Sequential{children: children}
}

func (s *Sequential) String() string {
	parts := make([]string, len(s.children))
	for i, c := range s.children {
		parts[i] = c.String()
	}
	return "Seq(" + strings.Join(parts, ", ") + ")"
}
