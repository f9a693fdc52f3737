// Package decomposition provides principal component analysis as a reference
// dimensionality-reduction component.
package decomposition

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/pkg/errors"
)

// PCA projects mean-centered data onto its top principal components,
// computed with a thin SVD. Output columns are named pc1..pcK.
type PCA struct {
	model.BaseEstimator

	// NComponents is the number of components to keep.
	NComponents int

	// Mean holds the per-feature mean learned at fit time.
	Mean []float64

	// Components is the (features × NComponents) projection matrix.
	Components *mat.Dense

	// NFeatures is the fitted input feature count.
	NFeatures int
}

// NewPCA creates a PCA keeping nComponents components.
func NewPCA(nComponents int) *PCA {
	return &PCA{NComponents: nComponents}
}

// Fit learns the mean and the projection from X. The target is ignored.
func (p *PCA) Fit(X mat.Matrix, _ *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("PCA.Fit", "empty data", errors.ErrEmptyData)
	}
	if p.NComponents < 1 {
		return errors.NewValidationError("n_components", "must be at least 1", p.NComponents)
	}
	if p.NComponents > c {
		return errors.NewValidationError("n_components", "must not exceed the feature count", p.NComponents)
	}

	p.NFeatures = c
	p.Mean = make([]float64, c)
	for j := 0; j < c; j++ {
		sum := 0.0
		for i := 0; i < r; i++ {
			sum += X.At(i, j)
		}
		p.Mean[j] = sum / float64(r)
	}

	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.Mean[j])
		}
	}

	var svd mat.SVD
	if ok := svd.Factorize(centered, mat.SVDThin); !ok {
		return errors.NewModelError("PCA.Fit", "SVD factorization failed", nil)
	}
	var v mat.Dense
	svd.VTo(&v)

	p.Components = mat.NewDense(c, p.NComponents, nil)
	for j := 0; j < c; j++ {
		for k := 0; k < p.NComponents; k++ {
			p.Components.Set(j, k, v.At(j, k))
		}
	}

	p.SetFitted()
	return nil
}

// Transform projects X onto the fitted components.
func (p *PCA) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !p.IsFitted() {
		return nil, errors.NewNotFittedError("PCA", "Transform")
	}
	r, c := X.Dims()
	if c != p.NFeatures {
		return nil, errors.NewDimensionError("PCA.Transform", p.NFeatures, c, 1)
	}

	centered := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			centered.Set(i, j, X.At(i, j)-p.Mean[j])
		}
	}

	result := mat.NewDense(r, p.NComponents, nil)
	result.Mul(centered, p.Components)
	return result, nil
}

// ColumnNames names the projected columns pc1..pcK.
func (p *PCA) ColumnNames(_ []string) []string {
	names := make([]string, p.NComponents)
	for k := range names {
		names[k] = fmt.Sprintf("pc%d", k+1)
	}
	return names
}

// Clone returns an unfitted copy keeping the same component count.
func (p *PCA) Clone() model.Component {
	return NewPCA(p.NComponents)
}
