package fit

import (
	"github.com/btracey/crossval"
	"github.com/btracey/crossval/lsq"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Mean predicts the (weighted) mean training response everywhere. It is a
// baseline against which other fitters can be compared.
type Mean struct{}

var _ crossval.Fitter = Mean{}

// Fit computes the mean response of the samples in inds.
func (Mean) Fit(x mat.Matrix, y, weights []float64, inds []int) (crossval.Predictor, error) {
	if len(inds) == 0 {
		return nil, lsq.ErrNoSamples
	}
	ys := make([]float64, len(inds))
	var ws []float64
	if weights != nil {
		ws = make([]float64, len(inds))
	}
	for i, idx := range inds {
		ys[i] = y[idx]
		if ws != nil {
			ws[i] = weights[idx]
		}
	}
	return Constant(stat.Mean(ys, ws)), nil
}

// Constant is a Predictor that always returns the same value.
type Constant float64

// Predict returns c.
func (c Constant) Predict(x []float64) float64 {
	return float64(c)
}
