package pipeline

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/dummy"
	"github.com/pipeml/pipeml/pkg/errors"
	"github.com/pipeml/pipeml/preprocessing"
)

const tol = 1e-6

func smallDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	ds, err := dataset.New(mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	}), []string{"a", "b"})
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}
	return ds
}

func datasetsEqual(a, b *dataset.Dataset) bool {
	if a.Rows() != b.Rows() || a.Cols() != b.Cols() {
		return false
	}
	na, nb := a.Columns(), b.Columns()
	for j := range na {
		if na[j] != nb[j] {
			return false
		}
	}
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			if math.Abs(a.Matrix().At(i, j)-b.Matrix().At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}

func TestAtomic_NamePassthrough(t *testing.T) {
	ds := smallDataset(t)
	node := NewAtomic("scale", preprocessing.NewStandardScalerDefault())

	out, err := FitTransform(node, ds, nil)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	names := out.Columns()
	if names[0] != "a" || names[1] != "b" {
		t.Errorf("Columns() = %v, want [a b]", names)
	}
}

func TestAtomic_PredictionName(t *testing.T) {
	ds := smallDataset(t)
	y := mat.NewVecDense(4, []float64{0, 1, 1, 1})
	node := NewAtomic("clf", dummy.NewMostFrequentClassifier())

	out, err := FitTransform(node, ds, y)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if out.Cols() != 1 {
		t.Fatalf("Cols() = %d, want 1", out.Cols())
	}
	if got := out.Columns()[0]; got != "clf.pred" {
		t.Errorf("column name = %q, want %q", got, "clf.pred")
	}
	if got := out.Matrix().At(0, 0); got != 1 {
		t.Errorf("prediction = %v, want 1", got)
	}
}

func TestAtomic_ColumnNamer(t *testing.T) {
	ds := smallDataset(t)
	node := NewAtomic("sel", preprocessing.NewColumnSelector(1))

	out, err := FitTransform(node, ds, nil)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if out.Cols() != 1 || out.Columns()[0] != "b" {
		t.Errorf("Columns() = %v, want [b]", out.Columns())
	}
}

func TestAtomic_TargetMismatch(t *testing.T) {
	ds := smallDataset(t)
	y := mat.NewVecDense(3, []float64{0, 1, 1})
	node := NewAtomic("clf", dummy.NewMostFrequentClassifier())

	err := Fit(node, ds, y)
	if err == nil {
		t.Fatal("Fit() expected error for misaligned target")
	}
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("Fit() error = %T, want *DimensionError", err)
	}
}

func TestNewSequential_Validation(t *testing.T) {
	_, err := NewSequential(NewAtomic("scale", preprocessing.NewStandardScalerDefault()))
	if err == nil {
		t.Fatal("NewSequential() expected error for a single child")
	}
	var valErr *errors.ValidationError
	if !errors.As(err, &valErr) {
		t.Errorf("NewSequential() error = %T, want *ValidationError", err)
	}
}

func TestNewSequential_Flattening(t *testing.T) {
	inner, err := NewSequential(
		NewAtomic("a", preprocessing.NewStandardScalerDefault()),
		NewAtomic("b", preprocessing.NewMinMaxScalerDefault()),
	)
	if err != nil {
		t.Fatalf("NewSequential() error = %v", err)
	}
	outer, err := NewSequential(inner, NewAtomic("c", preprocessing.NewStandardScalerDefault()))
	if err != nil {
		t.Fatalf("NewSequential() error = %v", err)
	}
	if len(outer.Children()) != 3 {
		t.Errorf("len(Children()) = %d, want 3", len(outer.Children()))
	}
	if got := outer.String(); got != "Seq(a, b, c)" {
		t.Errorf("String() = %q, want %q", got, "Seq(a, b, c)")
	}
}

func TestSequential_ChainsTransforms(t *testing.T) {
	ds := smallDataset(t)
	node, err := NewSequential(
		NewAtomic("scale", preprocessing.NewStandardScalerDefault()),
		NewAtomic("minmax", preprocessing.NewMinMaxScalerDefault()),
	)
	if err != nil {
		t.Fatalf("NewSequential() error = %v", err)
	}

	out, err := FitTransform(node, ds, nil)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	// The final minmax stage maps each column onto [0, 1].
	for j := 0; j < out.Cols(); j++ {
		col := out.ColumnAt(j)
		if math.Abs(col.AtVec(0)-0) > tol || math.Abs(col.AtVec(3)-1) > tol {
			t.Errorf("column %d range = [%v, %v], want [0, 1]", j, col.AtVec(0), col.AtVec(3))
		}
	}
}

func TestSequential_MidChainLearner(t *testing.T) {
	ds := smallDataset(t)
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})
	node, err := NewSequential(
		NewAtomic("clf", dummy.NewMostFrequentClassifier()),
		NewAtomic("scale", preprocessing.NewStandardScaler(true, false)),
	)
	if err != nil {
		t.Fatalf("NewSequential() error = %v", err)
	}

	out, err := FitTransform(node, ds, y)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if out.Cols() != 1 {
		t.Fatalf("Cols() = %d, want 1", out.Cols())
	}
	if got := out.Columns()[0]; got != "clf.pred" {
		t.Errorf("column name = %q, want %q", got, "clf.pred")
	}
}

func TestParallel_ConcatenatesColumns(t *testing.T) {
	ds := smallDataset(t)
	node, err := NewParallel(
		NewAtomic("scale", preprocessing.NewStandardScalerDefault()),
		NewAtomic("first", preprocessing.NewColumnSelector(0)),
	)
	if err != nil {
		t.Fatalf("NewParallel() error = %v", err)
	}

	out, err := FitTransform(node, ds, nil)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if out.Rows() != ds.Rows() {
		t.Errorf("Rows() = %d, want %d", out.Rows(), ds.Rows())
	}
	if out.Cols() != 3 {
		t.Errorf("Cols() = %d, want 3", out.Cols())
	}
}

func TestParallel_BranchOrderIsColumnOrder(t *testing.T) {
	ds := smallDataset(t)
	node, err := NewParallel(
		NewAtomic("second", preprocessing.NewColumnSelector(1)),
		NewAtomic("first", preprocessing.NewColumnSelector(0)),
	)
	if err != nil {
		t.Fatalf("NewParallel() error = %v", err)
	}

	out, err := FitTransform(node, ds, nil)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	names := out.Columns()
	if names[0] != "b" || names[1] != "a" {
		t.Errorf("Columns() = %v, want [b a]", names)
	}
}

func TestSequential_FreshFitIsDeterministic(t *testing.T) {
	ds := smallDataset(t)
	build := func() Node {
		node, err := NewSequential(
			NewAtomic("scale", preprocessing.NewStandardScalerDefault()),
			NewAtomic("minmax", preprocessing.NewMinMaxScalerDefault()),
		)
		if err != nil {
			t.Fatalf("NewSequential() error = %v", err)
		}
		return node
	}

	first, err := FitTransform(build(), ds, nil)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	second, err := FitTransform(build(), ds, nil)
	if err != nil {
		t.Fatalf("FitTransform() error = %v", err)
	}
	if !datasetsEqual(first, second) {
		t.Error("fresh fits on identical data gave different outputs")
	}
}

func TestTransform_Stateless(t *testing.T) {
	ds := smallDataset(t)
	node, err := NewSequential(
		NewAtomic("scale", preprocessing.NewStandardScalerDefault()),
		NewAtomic("minmax", preprocessing.NewMinMaxScalerDefault()),
	)
	if err != nil {
		t.Fatalf("NewSequential() error = %v", err)
	}
	if err := Fit(node, ds, nil); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	first, err := Transform(node, ds)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	second, err := Transform(node, ds)
	if err != nil {
		t.Fatalf("Transform() error = %v", err)
	}
	if !datasetsEqual(first, second) {
		t.Error("repeated Transform() on the same fitted tree gave different results")
	}
}

func TestClone_ResetsFittedState(t *testing.T) {
	ds := smallDataset(t)
	node := NewAtomic("scale", preprocessing.NewStandardScalerDefault())
	if err := Fit(node, ds, nil); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	clone := node.Clone()
	_, err := Transform(clone, ds)
	if err == nil {
		t.Fatal("Transform() on a clone succeeded; clone shares fitted state")
	}
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("Transform() error = %T, want *NotFittedError", err)
	}
}

func TestExecutor_Validation(t *testing.T) {
	node := NewAtomic("scale", preprocessing.NewStandardScalerDefault())
	ds := smallDataset(t)

	if err := Fit(node, nil, nil); err == nil {
		t.Error("Fit() expected error for nil dataset")
	}
	if err := Fit(node, ds, mat.NewVecDense(2, []float64{0, 1})); err == nil {
		t.Error("Fit() expected error for misaligned target")
	}
}

func TestRegistry(t *testing.T) {
	reg := NewRegistry()
	if err := reg.Register("scale", preprocessing.NewStandardScalerDefault()); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if err := reg.Register("scale", preprocessing.NewMinMaxScalerDefault()); err == nil {
		t.Error("Register() expected error for rebinding")
	}
	if err := reg.Register("0bad", preprocessing.NewMinMaxScalerDefault()); err == nil {
		t.Error("Register() expected error for invalid identifier")
	}
	if err := reg.Register("ok", nil); err == nil {
		t.Error("Register() expected error for nil component")
	}

	node, err := reg.Resolve("scale")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if node.String() != "scale" {
		t.Errorf("Resolve().String() = %q, want %q", node.String(), "scale")
	}

	_, err = reg.Resolve("missing")
	var unkErr *errors.UnknownComponentError
	if !errors.As(err, &unkErr) {
		t.Fatalf("Resolve() error = %T, want *UnknownComponentError", err)
	}
}

func TestRegistry_ResolveHandsOutClones(t *testing.T) {
	reg := NewRegistry()
	reg.MustRegister("scale", preprocessing.NewStandardScalerDefault())
	ds := smallDataset(t)

	a, err := reg.Resolve("scale")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if err := Fit(a, ds, nil); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	b, err := reg.Resolve("scale")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if _, err := Transform(b, ds); err == nil {
		t.Error("Transform() on a fresh resolution succeeded; registry leaks fitted state")
	}
}
