package crossval

import (
	"log/slog"
	"math"
	"sync"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/metrics"
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
	pipelog "github.com/pipeml/pipeml/pkg/log"
)

// ScoreRecord is the outcome of one fold: its metric value, or the error
// that failed it.
type ScoreRecord struct {
	Fold  int
	Score float64
	Err   error
}

// Failed reports whether the fold failed.
func (r ScoreRecord) Failed() bool { return r.Err != nil }

// Result aggregates a cross-validation run. Mean and Std cover successful
// folds only; Std is the sample standard deviation.
type Result struct {
	RunID   string
	Metric  string
	Records []ScoreRecord
	Mean    float64
	Std     float64
	Folds   int
	Failed  int
}

type config struct {
	k          int
	shuffle    bool
	seed       uint64
	metric     string
	splitter   Splitter
	stratified bool
	parallel   bool
}

// Option configures a cross-validation run.
type Option func(*config)

// WithK sets the number of folds. Default 5.
func WithK(k int) Option {
	return func(c *config) {
		c.k = k
	}
}

// WithMetric sets the scoring metric by registry name. Default "accuracy".
func WithMetric(name string) Option {
	return func(c *config) {
		c.metric = name
	}
}

// WithShuffle enables seeded row shuffling before splitting. Without it the
// default splitter uses contiguous blocks in row order.
func WithShuffle(seed uint64) Option {
	return func(c *config) {
		c.shuffle = true
		c.seed = seed
	}
}

// WithStratified uses a stratified splitter preserving class proportions.
func WithStratified() Option {
	return func(c *config) {
		c.splitter = nil
		c.stratified = true
	}
}

// WithSplitter overrides the splitter entirely; WithK and WithShuffle are
// then ignored.
func WithSplitter(s Splitter) Option {
	return func(c *config) {
		c.splitter = s
	}
}

// WithParallelFolds runs folds concurrently. Folds are independent (each
// operates on its own clone of the node tree), so this only changes wall
// time, never results or failure isolation.
func WithParallelFolds(parallel bool) Option {
	return func(c *config) {
		c.parallel = parallel
	}
}

// CrossValidate scores a node tree with k-fold cross-validation. For each
// fold the tree is cloned back to an unfitted state, fit on the training
// slice, and scored on the test slice with the configured metric. A fold
// whose fit or predict fails (including panics from wrapped external
// components) is recorded as failed and excluded from the aggregate; the
// remaining folds still run. Only when every fold fails does the call return
// AllFoldsFailed.
func CrossValidate(node pipeline.Node, ds *dataset.Dataset, y *mat.VecDense, opts ...Option) (*Result, error) {
	if node == nil {
		return nil, errors.NewValueError("crossval.CrossValidate", "nil node")
	}
	if ds == nil || ds.Rows() == 0 {
		return nil, errors.NewModelError("crossval.CrossValidate", "empty data", errors.ErrEmptyData)
	}
	if y == nil {
		return nil, errors.NewModelError("crossval.CrossValidate", "missing target", errors.ErrMissingTarget)
	}
	if y.Len() != ds.Rows() {
		return nil, errors.NewDimensionError("crossval.CrossValidate", ds.Rows(), y.Len(), 0)
	}

	cfg := config{k: 5, metric: "accuracy"}
	for _, opt := range opts {
		opt(&cfg)
	}
	metric, err := metrics.Get(cfg.metric)
	if err != nil {
		return nil, err
	}
	splitter := cfg.splitter
	if splitter == nil {
		if cfg.stratified {
			splitter = NewStratifiedKFold(cfg.k, cfg.shuffle, cfg.seed)
		} else {
			splitter = NewKFold(cfg.k, cfg.shuffle, cfg.seed)
		}
	}

	folds, err := splitter.Split(ds.Rows(), y)
	if err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	slog.Info("starting cross-validation",
		pipelog.RunIDKey, runID,
		pipelog.NodeKey, node.String(),
		pipelog.OperationKey, "crossvalidate",
		pipelog.MetricKey, metric.Name,
		pipelog.SamplesKey, ds.Rows(),
		"cv.folds", len(folds),
	)

	records := make([]ScoreRecord, len(folds))
	if cfg.parallel {
		var wg sync.WaitGroup
		for i := range folds {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				records[idx] = runFold(node, ds, y, folds[idx], idx, metric, runID)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range folds {
			records[i] = runFold(node, ds, y, folds[i], i, metric, runID)
		}
	}

	result := &Result{
		RunID:   runID,
		Metric:  metric.Name,
		Records: records,
		Folds:   len(folds),
	}

	var firstFail error
	sum := 0.0
	succeeded := 0
	for _, rec := range records {
		if rec.Failed() {
			result.Failed++
			if firstFail == nil {
				firstFail = rec.Err
			}
			continue
		}
		sum += rec.Score
		succeeded++
	}
	if succeeded == 0 {
		return nil, errors.NewAllFoldsFailedError(len(folds), firstFail)
	}

	result.Mean = sum / float64(succeeded)
	if succeeded > 1 {
		sumSq := 0.0
		for _, rec := range records {
			if !rec.Failed() {
				diff := rec.Score - result.Mean
				sumSq += diff * diff
			}
		}
		result.Std = math.Sqrt(sumSq / float64(succeeded-1))
	}

	slog.Info("cross-validation finished",
		pipelog.RunIDKey, runID,
		pipelog.MetricKey, metric.Name,
		pipelog.FailedFoldsKey, result.Failed,
		"cv.mean", result.Mean,
		"cv.std", result.Std,
	)
	return result, nil
}

// runFold fits a fresh clone of the tree on the fold's training slice and
// scores its test-slice predictions. All failures, panics included, come
// back as the record's error.
func runFold(node pipeline.Node, ds *dataset.Dataset, y *mat.VecDense, fold Fold, idx int, metric metrics.Metric, runID string) ScoreRecord {
	rec := ScoreRecord{Fold: idx}
	rec.Err = errors.SafeExecute("crossval.fold", func() error {
		trainDS, err := ds.SelectRows(fold.TrainIndices)
		if err != nil {
			return err
		}
		testDS, err := ds.SelectRows(fold.TestIndices)
		if err != nil {
			return err
		}
		trainY := dataset.SubsetVec(y, fold.TrainIndices)
		testY := dataset.SubsetVec(y, fold.TestIndices)

		// A fresh clone per fold: learned state never leaks across folds.
		tree := node.Clone()
		if err := tree.Fit(trainDS, trainY); err != nil {
			return err
		}
		out, err := tree.Transform(testDS)
		if err != nil {
			return err
		}
		score, err := metric.Fn(testY, out.ColumnAt(0))
		if err != nil {
			return err
		}
		rec.Score = score
		return nil
	})
	if rec.Err != nil {
		slog.Warn("cross-validation fold failed",
			pipelog.RunIDKey, runID,
			pipelog.FoldKey, idx,
			pipelog.ErrAttrKey, rec.Err,
		)
	}
	return rec
}
