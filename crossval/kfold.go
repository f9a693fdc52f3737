// Package crossval provides k-fold splitters and a fault-tolerant
// cross-validation orchestrator for pipeline node trees. Folds are scored
// independently: a failing fold is recorded, not propagated, and only
// surviving folds enter the aggregate.
package crossval

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/pkg/errors"
)

// Fold is a disjoint train/test partition of row indices. Folds are owned
// transiently by the orchestrator and discarded after scoring.
type Fold struct {
	TrainIndices []int
	TestIndices  []int
}

// Splitter partitions n rows (with the target available for stratification)
// into k folds.
type Splitter interface {
	Split(n int, y *mat.VecDense) ([]Fold, error)
	K() int
}

// KFold partitions rows into k disjoint test slices. Without shuffling the
// slices are contiguous blocks in row order.
type KFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewKFold creates a plain k-fold splitter.
func NewKFold(nSplits int, shuffle bool, seed uint64) *KFold {
	return &KFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// K returns the number of splits.
func (kf *KFold) K() int { return kf.NSplits }

// Split generates train/test indices for each fold.
func (kf *KFold) Split(n int, _ *mat.VecDense) ([]Fold, error) {
	if kf.NSplits < 2 {
		return nil, errors.NewValidationError("k", "must be at least 2", kf.NSplits)
	}
	if n < kf.NSplits {
		return nil, errors.NewValidationError("k", "must not exceed the row count", kf.NSplits)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	if kf.Shuffle {
		r := rand.New(rand.NewPCG(kf.Seed, kf.Seed))
		r.Shuffle(n, func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})
	}

	folds := make([]Fold, kf.NSplits)
	foldSize := n / kf.NSplits
	remainder := n % kf.NSplits

	cur := 0
	for i := 0; i < kf.NSplits; i++ {
		testSize := foldSize
		if i < remainder {
			testSize++
		}

		test := make([]int, testSize)
		copy(test, indices[cur:cur+testSize])

		train := make([]int, 0, n-testSize)
		train = append(train, indices[:cur]...)
		train = append(train, indices[cur+testSize:]...)

		folds[i] = Fold{TrainIndices: train, TestIndices: test}
		cur += testSize
	}
	return folds, nil
}

// StratifiedKFold partitions rows so each fold's test slice preserves the
// class proportions of the target.
type StratifiedKFold struct {
	NSplits int
	Shuffle bool
	Seed    uint64
}

// NewStratifiedKFold creates a stratified k-fold splitter.
func NewStratifiedKFold(nSplits int, shuffle bool, seed uint64) *StratifiedKFold {
	return &StratifiedKFold{NSplits: nSplits, Shuffle: shuffle, Seed: seed}
}

// K returns the number of splits.
func (skf *StratifiedKFold) K() int { return skf.NSplits }

// Split generates stratified train/test indices for each fold.
func (skf *StratifiedKFold) Split(n int, y *mat.VecDense) ([]Fold, error) {
	if skf.NSplits < 2 {
		return nil, errors.NewValidationError("k", "must be at least 2", skf.NSplits)
	}
	if y == nil || y.Len() != n {
		got := 0
		if y != nil {
			got = y.Len()
		}
		return nil, errors.NewDimensionError("StratifiedKFold.Split", n, got, 0)
	}
	if n < skf.NSplits {
		return nil, errors.NewValidationError("k", "must not exceed the row count", skf.NSplits)
	}

	classIndices := make(map[float64][]int)
	var order []float64
	for i := 0; i < n; i++ {
		label := y.AtVec(i)
		if classIndices[label] == nil {
			order = append(order, label)
		}
		classIndices[label] = append(classIndices[label], i)
	}

	if skf.Shuffle {
		r := rand.New(rand.NewPCG(skf.Seed, skf.Seed))
		for _, label := range order {
			idx := classIndices[label]
			r.Shuffle(len(idx), func(i, j int) {
				idx[i], idx[j] = idx[j], idx[i]
			})
		}
	}

	folds := make([]Fold, skf.NSplits)

	// Deal each class across the folds in turn.
	for _, label := range order {
		idx := classIndices[label]
		perFold := len(idx) / skf.NSplits
		remainder := len(idx) % skf.NSplits

		cur := 0
		for i := 0; i < skf.NSplits; i++ {
			take := perFold
			if i < remainder {
				take++
			}
			folds[i].TestIndices = append(folds[i].TestIndices, idx[cur:cur+take]...)
			cur += take
		}
	}

	for i := range folds {
		inTest := make(map[int]bool, len(folds[i].TestIndices))
		for _, idx := range folds[i].TestIndices {
			inTest[idx] = true
		}
		for j := 0; j < n; j++ {
			if !inTest[j] {
				folds[i].TrainIndices = append(folds[i].TrainIndices, j)
			}
		}
	}
	return folds, nil
}
