// Package neighbors provides distance-based reference learners.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/pkg/errors"
)

// NearestCentroid classifies each row by the Euclidean-closest class centroid
// learned at fit time. Distance ties break toward the smallest class label.
type NearestCentroid struct {
	model.BaseEstimator

	// Classes holds the sorted class labels seen at fit time.
	Classes []float64

	// Centroids holds one centroid per class, aligned with Classes.
	Centroids [][]float64

	// NFeatures is the fitted feature count.
	NFeatures int
}

// NewNearestCentroid creates an unfitted NearestCentroid classifier.
func NewNearestCentroid() *NearestCentroid {
	return &NearestCentroid{}
}

// Fit computes one centroid per class.
func (nc *NearestCentroid) Fit(X mat.Matrix, y *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("NearestCentroid.Fit", "empty data", errors.ErrEmptyData)
	}
	if y == nil {
		return errors.NewModelError("NearestCentroid.Fit", "missing target", errors.ErrMissingTarget)
	}
	if y.Len() != r {
		return errors.NewDimensionError("NearestCentroid.Fit", r, y.Len(), 0)
	}

	sums := make(map[float64][]float64)
	counts := make(map[float64]int)
	for i := 0; i < r; i++ {
		label := y.AtVec(i)
		if sums[label] == nil {
			sums[label] = make([]float64, c)
		}
		for j := 0; j < c; j++ {
			sums[label][j] += X.At(i, j)
		}
		counts[label]++
	}

	nc.Classes = make([]float64, 0, len(sums))
	for label := range sums {
		nc.Classes = append(nc.Classes, label)
	}
	sort.Float64s(nc.Classes)

	nc.NFeatures = c
	nc.Centroids = make([][]float64, len(nc.Classes))
	for k, label := range nc.Classes {
		centroid := make([]float64, c)
		for j := 0; j < c; j++ {
			centroid[j] = sums[label][j] / float64(counts[label])
		}
		nc.Centroids[k] = centroid
	}

	nc.SetFitted()
	return nil
}

// Transform returns a one-column prediction with the nearest centroid's label
// per row.
func (nc *NearestCentroid) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !nc.IsFitted() {
		return nil, errors.NewNotFittedError("NearestCentroid", "Transform")
	}
	r, c := X.Dims()
	if c != nc.NFeatures {
		return nil, errors.NewDimensionError("NearestCentroid.Transform", nc.NFeatures, c, 1)
	}

	result := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		bestDist := -1.0
		best := nc.Classes[0]
		for k, centroid := range nc.Centroids {
			dist := 0.0
			for j := 0; j < c; j++ {
				diff := X.At(i, j) - centroid[j]
				dist += diff * diff
			}
			if bestDist < 0 || dist < bestDist {
				bestDist = dist
				best = nc.Classes[k]
			}
		}
		result.Set(i, 0, best)
	}
	return result, nil
}

// Clone returns an unfitted copy.
func (nc *NearestCentroid) Clone() model.Component {
	return NewNearestCentroid()
}
