package ensemble

import (
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Vote predicts the per-row majority class among its children. Ties break
// toward the first child in registration order among the tied classes.
type Vote struct {
	children []pipeline.Node
}

// NewVote builds a majority-vote ensemble over two or more learners.
func NewVote(children ...pipeline.Node) (*Vote, error) {
	if len(children) < 2 {
		return nil, errors.NewValidationError("children", "vote ensemble requires at least 2 learners", len(children))
	}
	return &Vote{children: children}, nil
}

// Children returns the ordered child nodes.
func (v *Vote) Children() []pipeline.Node {
	out := make([]pipeline.Node, len(v.children))
	copy(out, v.children)
	return out
}

// Fit fits every child independently on the same data.
func (v *Vote) Fit(ds *dataset.Dataset, y *mat.VecDense) error {
	for _, c := range v.children {
		if err := c.Fit(ds, y); err != nil {
			return err
		}
	}
	return nil
}

// Transform returns the one-column majority prediction.
func (v *Vote) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	preds, err := predictions("Vote.Transform", v.children, ds)
	if err != nil {
		return nil, err
	}
	return dataset.FromColumn("vote.pred", majorityColumn(preds))
}

// Clone returns an unfitted copy of the ensemble.
func (v *Vote) Clone() pipeline.Node {
	return &Vote{children: cloneChildren(v.children)}
}

func (v *Vote) String() string {
	return "Vote(" + strings.Join(childNames(v.children), ", ") + ")"
}
