package expr

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/dataset"
	"github.com/pipeml/pipeml/pipeline"
	"github.com/pipeml/pipeml/pkg/errors"
	"github.com/pipeml/pipeml/preprocessing"
)

func testRegistry(t *testing.T) *pipeline.Registry {
	t.Helper()
	reg := pipeline.NewRegistry()
	reg.MustRegister("scale", preprocessing.NewStandardScalerDefault())
	reg.MustRegister("minmax", preprocessing.NewMinMaxScalerDefault())
	reg.MustRegister("first", preprocessing.NewColumnSelector(0))
	return reg
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "Single leaf",
			src:  "scale",
			want: "scale",
		},
		{
			name: "Sequential tree",
			src:  "scale |> minmax",
			want: "Seq(scale, minmax)",
		},
		{
			name: "Mixed tree",
			src:  "first |> scale + minmax",
			want: "Seq(first, Par(scale, minmax))",
		},
	}

	reg := testRegistry(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, err := Compile(tt.src, reg)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.src, err)
			}
			if got := node.String(); got != tt.want {
				t.Errorf("Compile(%q).String() = %q, want %q", tt.src, got, tt.want)
			}
		})
	}
}

func TestCompile_UnknownComponent(t *testing.T) {
	reg := testRegistry(t)
	_, err := Compile("scale |> nope", reg)
	if err == nil {
		t.Fatal("Compile() expected error for unknown identifier")
	}
	var unkErr *errors.UnknownComponentError
	if !errors.As(err, &unkErr) {
		t.Fatalf("Compile() error = %T, want *UnknownComponentError", err)
	}
	if unkErr.Component != "nope" {
		t.Errorf("Component = %q, want %q", unkErr.Component, "nope")
	}
}

func TestCompile_AllOrNothing(t *testing.T) {
	reg := testRegistry(t)
	node, err := Compile("scale |> (nope + minmax)", reg)
	if err == nil {
		t.Fatal("Compile() expected error")
	}
	if node != nil {
		t.Errorf("Compile() node = %v, want nil on error", node)
	}
}

// Compiling the same source twice must give trees with independent state:
// fitting one leaves the other unfitted.
func TestCompile_IndependentTrees(t *testing.T) {
	reg := testRegistry(t)
	ds, err := dataset.New(mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	}), nil)
	if err != nil {
		t.Fatalf("dataset.New() error = %v", err)
	}

	a, err := Compile("scale |> minmax", reg)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}
	b, err := Compile("scale |> minmax", reg)
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if err := pipeline.Fit(a, ds, nil); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	if _, err := pipeline.Transform(a, ds); err != nil {
		t.Fatalf("Transform() on fitted tree error = %v", err)
	}

	_, err = pipeline.Transform(b, ds)
	if err == nil {
		t.Fatal("Transform() on second tree succeeded; trees share fitted state")
	}
	var nfErr *errors.NotFittedError
	if !errors.As(err, &nfErr) {
		t.Errorf("Transform() error = %T, want *NotFittedError", err)
	}
}

func TestBuild_MatchesParse(t *testing.T) {
	reg := testRegistry(t)
	ast, err := Parse("(first |> scale) + minmax")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	node, err := Build(ast, reg)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if node.String() != ast.String() {
		t.Errorf("Build().String() = %q, want %q", node.String(), ast.String())
	}
}
