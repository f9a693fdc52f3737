package ensemble

import (
	"math/rand/v2"
	"strings"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/metrics"
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Best validates every child on an internal holdout split during fit and
// retains only the top-scoring one for subsequent transforms. The selection
// policy (holdout fraction, metric, stratification, seed) is configurable.
// Score ties break toward the first child in registration order. After
// selection the winner is refit on the full training data.
type Best struct {
	model.BaseEstimator

	children   []pipeline.Node
	holdout    float64
	metricName string
	stratified bool
	seed       uint64

	best    pipeline.Node
	bestIdx int
}

// BestOption configures a Best ensemble.
type BestOption func(*Best)

// WithHoldout sets the fraction of rows held out for internal validation,
// in (0, 1). Default 0.25.
func WithHoldout(fraction float64) BestOption {
	return func(b *Best) {
		b.holdout = fraction
	}
}

// WithSelectionMetric sets the registry metric used to rank children.
// Default "accuracy".
func WithSelectionMetric(name string) BestOption {
	return func(b *Best) {
		b.metricName = name
	}
}

// WithStratifiedHoldout controls whether the holdout split preserves class
// proportions. Default true.
func WithStratifiedHoldout(stratified bool) BestOption {
	return func(b *Best) {
		b.stratified = stratified
	}
}

// WithSeed sets the shuffle seed for the holdout split. Default 0.
func WithSeed(seed uint64) BestOption {
	return func(b *Best) {
		b.seed = seed
	}
}

// NewBest builds a best-of ensemble over two or more learners.
func NewBest(children []pipeline.Node, opts ...BestOption) (*Best, error) {
	if len(children) < 2 {
		return nil, errors.NewValidationError("children", "best ensemble requires at least 2 learners", len(children))
	}
	b := &Best{
		children:   children,
		holdout:    0.25,
		metricName: "accuracy",
		stratified: true,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.holdout <= 0 || b.holdout >= 1 {
		return nil, errors.NewValidationError("holdout", "must be in (0, 1)", b.holdout)
	}
	return b, nil
}

// BestIndex returns the index of the selected child. Valid only after fit.
func (b *Best) BestIndex() int { return b.bestIdx }

// Fit scores every child on the internal holdout split, keeps the winner, and
// refits it on the full data. The target is required for scoring.
func (b *Best) Fit(ds *dataset.Dataset, y *mat.VecDense) error {
	if y == nil {
		return errors.NewModelError("Best.Fit", "missing target", errors.ErrMissingTarget)
	}
	if y.Len() != ds.Rows() {
		return errors.NewDimensionError("Best.Fit", ds.Rows(), y.Len(), 0)
	}
	metric, err := metrics.Get(b.metricName)
	if err != nil {
		return err
	}

	trainIdx, valIdx, err := b.split(ds.Rows(), y)
	if err != nil {
		return err
	}
	trainDS, err := ds.SelectRows(trainIdx)
	if err != nil {
		return err
	}
	valDS, err := ds.SelectRows(valIdx)
	if err != nil {
		return err
	}
	trainY := dataset.SubsetVec(y, trainIdx)
	valY := dataset.SubsetVec(y, valIdx)

	b.bestIdx = -1
	bestScore := 0.0
	for i, child := range b.children {
		// Candidates are scored on clones so the holdout fit never leaks
		// into the retained tree.
		candidate := child.Clone()
		if err := candidate.Fit(trainDS, trainY); err != nil {
			return err
		}
		out, err := candidate.Transform(valDS)
		if err != nil {
			return err
		}
		score, err := metric.Fn(valY, out.ColumnAt(0))
		if err != nil {
			return err
		}
		if b.bestIdx < 0 || better(score, bestScore, metric.Loss) {
			b.bestIdx = i
			bestScore = score
		}
	}

	b.best = b.children[b.bestIdx]
	if err := b.best.Fit(ds, y); err != nil {
		return err
	}
	b.SetFitted()
	return nil
}

func better(score, incumbent float64, loss bool) bool {
	if loss {
		return score < incumbent
	}
	return score > incumbent
}

// Transform delegates to the selected child.
func (b *Best) Transform(ds *dataset.Dataset) (*dataset.Dataset, error) {
	if !b.IsFitted() {
		return nil, errors.NewNotFittedError("Best", "Transform")
	}
	return b.best.Transform(ds)
}

// split partitions row indices into train and validation sets.
func (b *Best) split(n int, y *mat.VecDense) (train, val []int, err error) {
	rng := rand.New(rand.NewPCG(b.seed, b.seed))

	if b.stratified {
		groups := make(map[float64][]int)
		var order []float64
		for i := 0; i < n; i++ {
			label := y.AtVec(i)
			if groups[label] == nil {
				order = append(order, label)
			}
			groups[label] = append(groups[label], i)
		}
		for _, label := range order {
			idx := groups[label]
			rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
			take := int(float64(len(idx)) * b.holdout)
			if take == 0 && len(idx) > 1 {
				take = 1
			}
			val = append(val, idx[:take]...)
			train = append(train, idx[take:]...)
		}
	} else {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		take := int(float64(n) * b.holdout)
		if take == 0 {
			take = 1
		}
		val = idx[:take]
		train = idx[take:]
	}

	if len(train) == 0 || len(val) == 0 {
		return nil, nil, errors.NewValidationError("holdout", "split produced an empty train or validation set", b.holdout)
	}
	return train, val, nil
}

// Clone returns an unfitted copy with the same selection policy.
func (b *Best) Clone() pipeline.Node {
	return &Best{
		children:   cloneChildren(b.children),
		holdout:    b.holdout,
		metricName: b.metricName,
		stratified: b.stratified,
		seed:       b.seed,
	}
}

func (b *Best) String() string {
	return "Best(" + strings.Join(childNames(b.children), ", ") + ")"
}
