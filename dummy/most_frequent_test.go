package dummy

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/pkg/errors"
)

func TestMostFrequentClassifier(t *testing.T) {
	tests := []struct {
		name string
		y    []float64
		want float64
	}{
		{name: "Clear majority", y: []float64{1, 1, 1, 0}, want: 1},
		{name: "Tie breaks toward smallest label", y: []float64{2, 1, 2, 1}, want: 1},
		{name: "Single class", y: []float64{3, 3}, want: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := len(tt.y)
			X := mat.NewDense(n, 1, nil)
			y := mat.NewVecDense(n, tt.y)

			c := NewMostFrequentClassifier()
			if err := c.Fit(X, y); err != nil {
				t.Fatalf("Fit() error = %v", err)
			}
			out, err := c.Transform(mat.NewDense(2, 1, nil))
			if err != nil {
				t.Fatalf("Transform() error = %v", err)
			}
			for i := 0; i < 2; i++ {
				if got := out.At(i, 0); got != tt.want {
					t.Errorf("Transform()[%d] = %v, want %v", i, got, tt.want)
				}
			}
		})
	}
}

func TestMostFrequentClassifier_RequiresTarget(t *testing.T) {
	c := NewMostFrequentClassifier()
	err := c.Fit(mat.NewDense(2, 1, nil), nil)
	if err == nil {
		t.Fatal("Fit() expected error for nil target")
	}
	if !errors.Is(err, errors.ErrMissingTarget) {
		t.Errorf("Fit() error = %v, want ErrMissingTarget in the chain", err)
	}
}
