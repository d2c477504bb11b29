// package fit provides estimators that satisfy crossval.Fitter.
package fit

import (
	"math"

	"github.com/btracey/crossval"
	"github.com/btracey/crossval/lsq"
	"gonum.org/v1/gonum/mat"
)

// Polynomial fits a polynomial without cross terms to the data by least
// squares. Order 1 is ordinary linear regression with an intercept.
type Polynomial struct {
	Order int
}

var _ crossval.Fitter = Polynomial{}

// NumTerms returns the number of polynomial coefficients for inputs of
// dimension dim.
func (p Polynomial) NumTerms(dim int) int {
	return 1 + p.Order*dim
}

// Terms puts in 1, x_1, x_2, ... x_n , x_1^2, ..., x_n^2, ... , x_1^order, ..., x_n^order
func (p Polynomial) Terms(terms, x []float64) {
	dim := len(x)
	terms[0] = 1
	for i := 0; i < p.Order; i++ {
		for j, v := range x {
			terms[1+j+dim*i] = math.Pow(v, float64(i)+1)
		}
	}
}

// Fit fits a polynomial to the data samples in inds.
func (p Polynomial) Fit(x mat.Matrix, y, weights []float64, inds []int) (crossval.Predictor, error) {
	if p.Order < 0 {
		panic("fit: negative polynomial order")
	}
	_, dim := x.Dims()
	beta, err := lsq.Coeffs(x, y, weights, inds, p)
	if err != nil {
		return nil, err
	}
	return &PolyPred{
		Beta:  beta,
		order: p.Order,
		dim:   dim,
	}, nil
}

// PolyPred is a fitted polynomial.
type PolyPred struct {
	Beta  []float64 // coefficients in the order given by Polynomial.Terms
	order int
	dim   int
}

// Predict evaluates the polynomial at x.
func (p *PolyPred) Predict(x []float64) float64 {
	if len(x) != p.dim {
		panic("fit: length mismatch")
	}
	return lsq.Predict(x, p.Beta, nil, Polynomial{Order: p.order})
}
