package pipeline

import (
	"log/slog"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pkg/errors"
	pipelog "github.com/pipeml/pipeml/pkg/log"
)

// The executor is stateless orchestration: it validates preconditions, logs
// the operation, and delegates into the node tree. Child failures surface
// unchanged.

// Fit fits the node tree on ds and the optional target y.
func Fit(n Node, ds *dataset.Dataset, y *mat.VecDense) error {
	if err := validateInput("pipeline.Fit", ds, y); err != nil {
		return err
	}
	slog.Debug("fitting pipeline",
		pipelog.NodeKey, n.String(),
		pipelog.OperationKey, "fit",
		pipelog.SamplesKey, ds.Rows(),
		pipelog.FeaturesKey, ds.Cols(),
	)
	return n.Fit(ds, y)
}

// Transform transforms ds through an already-fitted node tree.
func Transform(n Node, ds *dataset.Dataset) (*dataset.Dataset, error) {
	if err := validateInput("pipeline.Transform", ds, nil); err != nil {
		return nil, err
	}
	slog.Debug("transforming through pipeline",
		pipelog.NodeKey, n.String(),
		pipelog.OperationKey, "transform",
		pipelog.SamplesKey, ds.Rows(),
		pipelog.FeaturesKey, ds.Cols(),
	)
	return n.Transform(ds)
}

// FitTransform fits the tree and transforms the same data. The two steps are
// not atomic: a transform failure leaves the tree fitted.
func FitTransform(n Node, ds *dataset.Dataset, y *mat.VecDense) (*dataset.Dataset, error) {
	if err := Fit(n, ds, y); err != nil {
		return nil, err
	}
	return Transform(n, ds)
}

func validateInput(op string, ds *dataset.Dataset, y *mat.VecDense) error {
	if ds == nil {
		return errors.NewValueError(op, "nil dataset")
	}
	if ds.Rows() == 0 || ds.Cols() == 0 {
		return errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if y != nil && y.Len() != ds.Rows() {
		return errors.NewDimensionError(op, ds.Rows(), y.Len(), 0)
	}
	return nil
}
