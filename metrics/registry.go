package metrics

import (
	"sort"
	"sync"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/pkg/errors"
)

// Func is a scoring function over aligned ground-truth and prediction vectors.
type Func func(yTrue, yPred *mat.VecDense) (float64, error)

// Metric is a named scoring function. Loss marks metrics where lower values
// are better, which selection logic (Best ensembles, fold comparison) uses to
// orient comparisons.
type Metric struct {
	Name string
	Fn   Func
	Loss bool
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Metric)
)

// Register adds a metric to the registry. Names may not be rebound.
func Register(m Metric) error {
	if m.Name == "" || m.Fn == nil {
		return errors.NewValidationError("metric", "requires a name and a function", m.Name)
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := registry[m.Name]; ok {
		return errors.NewValidationError("metric", "already registered", m.Name)
	}
	registry[m.Name] = m
	return nil
}

// Get looks a metric up by name.
func Get(name string) (Metric, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	m, ok := registry[name]
	if !ok {
		return Metric{}, errors.NewValidationError("metric", "unknown metric name", name)
	}
	return m, nil
}

// Names returns the registered metric names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	for _, m := range []Metric{
		{Name: "accuracy", Fn: Accuracy},
		{Name: "balanced_accuracy", Fn: BalancedAccuracy},
		{Name: "cohen_kappa", Fn: CohenKappa},
		{Name: "jaccard", Fn: Jaccard},
		{Name: "matthews_corrcoef", Fn: MatthewsCorrCoef},
		{Name: "hamming_loss", Fn: HammingLoss, Loss: true},
		{Name: "zero_one_loss", Fn: ZeroOneLoss, Loss: true},
		{Name: "f1", Fn: F1},
		{Name: "precision", Fn: Precision},
		{Name: "recall", Fn: Recall},
	} {
		if err := Register(m); err != nil {
			panic(err)
		}
	}
}
