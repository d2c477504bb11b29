// Package dataset generates synthetic regression problems for cross validation.
package dataset

import (
	"fmt"
	"math/rand/v2"

	"github.com/btracey/crossval/distribution"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize/functions"
	"gonum.org/v1/gonum/stat/distuv"
)

// Intercept is the constant term of the Linear target.
const Intercept = -1.3337

// Target names accepted by Generate.
const (
	Linear     = "linear"
	Rosenbrock = "rosenbrock"
)

// Input distributions accepted by Generate.
const (
	Uniform  = "uniform"
	Gaussian = "gaussian"
)

// Spec describes a synthetic data set.
type Spec struct {
	Samples int     // number of rows
	Dim     int     // number of input features
	Func    string  // Linear or Rosenbrock
	Inputs  string  // Uniform (the default) or Gaussian
	Noise   float64 // standard deviation of Gaussian noise added to y
	Seed    uint64
}

// Generate draws Samples inputs and evaluates the target function at each of
// them. Uniform inputs lie in the unit hypercube, Gaussian inputs are
// standard normal.
//
// The Linear target is y = x·w + Intercept with w = (1, -2, 3, -4, ...), which a
// first-order polynomial fits exactly when Noise is zero.
func Generate(s Spec) (*mat.Dense, []float64, error) {
	if s.Samples <= 0 || s.Dim <= 0 {
		return nil, nil, fmt.Errorf("dataset: samples and dim must be positive, got %d and %d", s.Samples, s.Dim)
	}
	var f func([]float64) float64
	switch s.Func {
	case Linear:
		w := Weights(s.Dim)
		f = func(x []float64) float64 { return floats.Dot(x, w) + Intercept }
	case Rosenbrock:
		if s.Dim < 2 {
			return nil, nil, fmt.Errorf("dataset: rosenbrock needs dim >= 2, got %d", s.Dim)
		}
		f = functions.ExtendedRosenbrock{}.Func
	default:
		return nil, nil, fmt.Errorf("dataset: unknown target %q", s.Func)
	}

	src := rand.NewPCG(s.Seed, s.Seed)
	var inputs distribution.Rander
	switch s.Inputs {
	case Uniform, "":
		inputs = distribution.NewIndependentUniform(s.Dim, 0, 1, src)
	case Gaussian:
		inputs = distribution.NewIndependentGaussian(s.Dim, 0, 1, src)
	default:
		return nil, nil, fmt.Errorf("dataset: unknown input distribution %q", s.Inputs)
	}
	x := mat.NewDense(s.Samples, s.Dim, nil)
	distribution.Sample(x, inputs)

	noise := distuv.Normal{Mu: 0, Sigma: s.Noise, Src: src}
	y := make([]float64, s.Samples)
	for i := range y {
		y[i] = f(x.RawRowView(i))
		if s.Noise > 0 {
			y[i] += noise.Rand()
		}
	}
	return x, y, nil
}

// Weights returns the coefficients of the Linear target.
func Weights(dim int) []float64 {
	w := make([]float64, dim)
	for i := range w {
		w[i] = float64(i + 1)
		if i%2 == 1 {
			w[i] = -w[i]
		}
	}
	return w
}
