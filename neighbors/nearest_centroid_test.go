package neighbors

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/pkg/errors"
)

func TestNearestCentroid(t *testing.T) {
	X := mat.NewDense(4, 1, []float64{0, 0, 10, 10})
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})

	nc := NewNearestCentroid()
	if err := nc.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	tests := []struct {
		name  string
		input float64
		want  float64
	}{
		{name: "Near first centroid", input: 1, want: 0},
		{name: "Near second centroid", input: 9, want: 1},
		{name: "Equidistant breaks toward smallest label", input: 5, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := nc.Transform(mat.NewDense(1, 1, []float64{tt.input}))
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			if got := out.At(0, 0); got != tt.want {
				t.Errorf("Transform(%v) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNearestCentroid_CentroidValues(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		0, 2,
		2, 0,
		8, 10,
		10, 8,
	})
	y := mat.NewVecDense(4, []float64{0, 0, 1, 1})

	nc := NewNearestCentroid()
	if err := nc.Fit(X, y); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}

	if len(nc.Classes) != 2 || nc.Classes[0] != 0 || nc.Classes[1] != 1 {
		t.Fatalf("Classes = %v, want [0 1]", nc.Classes)
	}
	if nc.Centroids[0][0] != 1 || nc.Centroids[0][1] != 1 {
		t.Errorf("Centroids[0] = %v, want [1 1]", nc.Centroids[0])
	}
	if nc.Centroids[1][0] != 9 || nc.Centroids[1][1] != 9 {
		t.Errorf("Centroids[1] = %v, want [9 9]", nc.Centroids[1])
	}
}

func TestNearestCentroid_Errors(t *testing.T) {
	nc := NewNearestCentroid()
	X := mat.NewDense(2, 1, []float64{0, 1})

	if err := nc.Fit(X, nil); err == nil {
		t.Error("Fit() expected error for nil target")
	}
	if err := nc.Fit(X, mat.NewVecDense(3, nil)); err == nil {
		t.Error("Fit() expected error for misaligned target")
	}

	if _, err := nc.Transform(X); err == nil {
		t.Error("Transform() expected error before Fit()")
	}

	if err := nc.Fit(X, mat.NewVecDense(2, []float64{0, 1})); err != nil {
		t.Fatalf("Fit() error = %v", err)
	}
	_, err := nc.Transform(mat.NewDense(2, 2, []float64{0, 1, 2, 3}))
	var dimErr *errors.DimensionError
	if !errors.As(err, &dimErr) {
		t.Errorf("Transform() error = %T, want *DimensionError", err)
	}
}
