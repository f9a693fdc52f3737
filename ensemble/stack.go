package ensemble

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Stack feeds its children's predictions as engineered features into a
// designated meta-learner. With passthrough enabled the original features
// are appended to the stacked predictions.
type Stack struct {
	children    []pipeline.Node
	meta        pipeline.Node
	passthrough bool
}

// StackOption configures a Stack ensemble.
type StackOption func(*Stack)

// WithPassthrough appends the original features to the stacked child
// predictions fed into the meta-learner.
func WithPassthrough(passthrough bool) StackOption {
	return func(s *Stack) {
		s.passthrough = passthrough
	}
}

// NewStack builds a stacking ensemble with the given meta-learner over two or
// more base learners.
func NewStack(meta pipeline.Node, children []pipeline.Node, opts ...StackOption) (*Stack, error) {
	if meta == nil {
		return nil, errors.NewValidationError("meta", "stacking requires a meta-learner", nil)
	}
	if len(children) < 2 {
		return nil, errors.NewValidationError("children", "stack ensemble requires at least 2 learners", len(children))
	}
	s := &Stack{children: children, meta: meta}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Fit fits every child on the input, stacks their in-sample predictions, and
// fits the meta-learner on the stacked features against the same target.
func (s *Stack) Fit(ds *dataset.Dataset, y *mat.VecDense) error {
	for _, c := range s.children {
		if err := c.Fit(ds, y); err != nil {
			return err
		}
	}
	stacked, err := s.stackedFeatures(ds)
	if err != nil {
		return err
	}
	return s.meta.Fit(stacked, y)
}

// Transform stacks the children's predictions and transforms them through the
// fitted meta-learner.
func (s *Stack) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	stacked, err := s.stackedFeatures(ds)
	if err != nil {
		return nil, err
	}
	return s.meta.Transform(stacked)
}

func (s *Stack) stackedFeatures(ds *dataset.Dataset) (*dataset.Dataset, error) {
	preds, err := predictions("Stack.Transform", s.children, ds)
	if err != nil {
		return nil, err
	}
	parts := make([]*dataset.Dataset, 0, len(preds)+1)
	for i, p := range preds {
		col, err := dataset.FromColumn("stack."+s.children[i].String(), p)
		if err != nil {
			return nil, err
		}
		parts = append(parts, col)
	}
	if s.passthrough {
		parts = append(parts, ds)
	}
	return dataset.HStack(parts...)
}

// Clone returns an unfitted copy of the ensemble.
func (s *Stack) Clone() pipeline.Node {
	return &Stack{
		children:    cloneChildren(s.children),
		meta:        s.meta.Clone(),
		passthrough: s.passthrough,
	}
}

func (s *Stack) String() string {
	return "Stack(" + s.meta.String() + "; " + strings.Join(childNames(s.children), ", ") + ")"
}
