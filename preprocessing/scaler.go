// Package preprocessing provides reference transformers for pipeline
// expressions: feature scalers, a one-hot encoder, and a column selector.
// All of them implement the component capability contract; the target is
// ignored at fit time.
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/core/model"
	"github.com/pipeml/pipeml/core/parallel"
	"github.com/pipeml/pipeml/pkg/errors"
)

// Rows below this count are transformed sequentially.
const parallelThreshold = 1000

// StandardScaler standardizes features to zero mean and unit variance.
type StandardScaler struct {
	model.BaseEstimator

	// Mean holds the per-feature mean learned at fit time.
	Mean []float64

	// Scale holds the per-feature standard deviation learned at fit time.
	Scale []float64

	// NFeatures is the fitted feature count.
	NFeatures int

	// WithMean controls whether the mean is subtracted (default true).
	WithMean bool

	// WithStd controls whether features are divided by their std (default true).
	WithStd bool
}

// NewStandardScaler creates a StandardScaler with the given centering and
// scaling behavior.
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{WithMean: withMean, WithStd: withStd}
}

// NewStandardScalerDefault creates a StandardScaler that both centers and scales.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit learns per-feature mean and standard deviation. The target is ignored.
func (s *StandardScaler) Fit(X mat.Matrix, _ *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("StandardScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		mean := 0.0
		if s.WithMean {
			for i := 0; i < r; i++ {
				mean += X.At(i, j)
			}
			mean /= float64(r)
		}
		s.Mean[j] = mean

		scale := 1.0
		if s.WithStd {
			sumSq := 0.0
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - mean
				sumSq += diff * diff
			}
			scale = math.Sqrt(sumSq / float64(r))
			// Constant features would divide by zero.
			if math.Abs(scale) < 1e-8 {
				scale = 1.0
			}
		}
		s.Scale[j] = scale
	}

	s.SetFitted()
	return nil
}

// Transform standardizes X with the fitted statistics.
func (s *StandardScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !s.IsFitted() {
		return nil, errors.NewNotFittedError("StandardScaler", "Transform")
	}
	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, errors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				result.Set(i, j, (X.At(i, j)-s.Mean[j])/s.Scale[j])
			}
		}
	})
	return result, nil
}

// Clone returns an unfitted copy with the same settings.
func (s *StandardScaler) Clone() model.Component {
	return NewStandardScaler(s.WithMean, s.WithStd)
}

// MinMaxScaler rescales features into a fixed range, [0, 1] by default.
type MinMaxScaler struct {
	model.BaseEstimator

	// DataMin and DataMax hold the per-feature extrema learned at fit time.
	DataMin []float64
	DataMax []float64

	// Scale holds the per-feature data range (max - min).
	Scale []float64

	// NFeatures is the fitted feature count.
	NFeatures int

	// FeatureRange is the target output range [min, max].
	FeatureRange [2]float64
}

// NewMinMaxScaler creates a MinMaxScaler targeting the given output range.
func NewMinMaxScaler(featureRange [2]float64) *MinMaxScaler {
	return &MinMaxScaler{FeatureRange: featureRange}
}

// NewMinMaxScalerDefault creates a MinMaxScaler targeting [0, 1].
func NewMinMaxScalerDefault() *MinMaxScaler {
	return NewMinMaxScaler([2]float64{0.0, 1.0})
}

// Fit learns per-feature minima and maxima. The target is ignored.
func (m *MinMaxScaler) Fit(X mat.Matrix, _ *mat.VecDense) error {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return errors.NewModelError("MinMaxScaler.Fit", "empty data", errors.ErrEmptyData)
	}

	m.NFeatures = c
	m.DataMin = make([]float64, c)
	m.DataMax = make([]float64, c)
	m.Scale = make([]float64, c)

	for j := 0; j < c; j++ {
		lo, hi := X.At(0, j), X.At(0, j)
		for i := 1; i < r; i++ {
			v := X.At(i, j)
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
		m.DataMin[j] = lo
		m.DataMax[j] = hi

		dataRange := hi - lo
		if math.Abs(dataRange) < 1e-8 {
			// Constant feature: map everything to the range minimum.
			dataRange = 1.0
		}
		m.Scale[j] = dataRange
	}

	m.SetFitted()
	return nil
}

// Transform rescales X into the configured feature range.
func (m *MinMaxScaler) Transform(X mat.Matrix) (mat.Matrix, error) {
	if !m.IsFitted() {
		return nil, errors.NewNotFittedError("MinMaxScaler", "Transform")
	}
	r, c := X.Dims()
	if c != m.NFeatures {
		return nil, errors.NewDimensionError("MinMaxScaler.Transform", m.NFeatures, c, 1)
	}

	span := m.FeatureRange[1] - m.FeatureRange[0]
	result := mat.NewDense(r, c, nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			for j := 0; j < c; j++ {
				std := (X.At(i, j) - m.DataMin[j]) / m.Scale[j]
				result.Set(i, j, std*span+m.FeatureRange[0])
			}
		}
	})
	return result, nil
}

// Clone returns an unfitted copy with the same settings.
func (m *MinMaxScaler) Clone() model.Component {
	return NewMinMaxScaler(m.FeatureRange)
}
