package ensemble

import (
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Bagging fits every child on its own bootstrap sample (drawn with
// replacement) and predicts by majority vote. Each child gets a distinct,
// seed-derived sample so repeated fits are reproducible.
type Bagging struct {
	children []pipeline.Node
	fraction float64
	seed     uint64
}

// BaggingOption configures a Bagging ensemble.
type BaggingOption func(*Bagging)

// WithSampleFraction sets the bootstrap sample size as a fraction of the
// training rows, in (0, 1]. Default 1.0.
func WithSampleFraction(fraction float64) BaggingOption {
	return func(b *Bagging) {
		b.fraction = fraction
	}
}

// WithBaggingSeed sets the base seed for bootstrap sampling. Default 0.
func WithBaggingSeed(seed uint64) BaggingOption {
	return func(b *Bagging) {
		b.seed = seed
	}
}

// NewBagging builds a bagging ensemble over two or more learners.
func NewBagging(children []pipeline.Node, opts ...BaggingOption) (*Bagging, error) {
	if len(children) < 2 {
		return nil, errors.NewValidationError("children", "bagging ensemble requires at least 2 learners", len(children))
	}
	b := &Bagging{children: children, fraction: 1.0}
	for _, opt := range opts {
		opt(b)
	}
	if b.fraction <= 0 || b.fraction > 1 {
		return nil, errors.NewValidationError("sample_fraction", "must be in (0, 1]", b.fraction)
	}
	return b, nil
}

// Fit fits each child on its own bootstrap sample of the input.
func (b *Bagging) Fit(ds *dataset.Dataset, y *mat.VecDense) error {
	n := ds.Rows()
	size := int(float64(n) * b.fraction)
	if size < 1 {
		size = 1
	}

	for k, child := range b.children {
		rng := rand.New(rand.NewPCG(b.seed+uint64(k), b.seed+uint64(k)))
		idx := make([]int, size)
		for i := range idx {
			idx[i] = rng.IntN(n)
		}

		sample, err := ds.SelectRows(idx)
		if err != nil {
			return err
		}
		var sampleY *mat.VecDense
		if y != nil {
			sampleY = dataset.SubsetVec(y, idx)
		}
		if err := child.Fit(sample, sampleY); err != nil {
			return err
		}
	}
	return nil
}

// Transform returns the one-column majority prediction over the children.
func (b *Bagging) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	preds, err := predictions("Bagging.Transform", b.children, ds)
	if err != nil {
		return nil, err
	}
	return dataset.FromColumn("bagging.pred", majorityColumn(preds))
}

// Clone returns an unfitted copy with the same sampling policy.
func (b *Bagging) Clone() pipeline.Node {
	return &Bagging{
		children: cloneChildren(b.children),
		fraction: b.fraction,
		seed:     b.seed,
	}
}

func (b *Bagging) String() string {
	return "Bagging(" + strings.Join(childNames(b.children), ", ") + ")"
}
