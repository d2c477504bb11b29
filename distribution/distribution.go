// package distribution generates sample locations for synthetic data sets.
package distribution

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

const errLen = "distribution: length mismatch"

// Rander puts a random location into x, allocating x if it is nil.
type Rander interface {
	Rand(x []float64) []float64
	Dim() int
}

// Sample fills each row of data with a draw from r.
func Sample(data *mat.Dense, r Rander) {
	nSamples, dim := data.Dims()
	if dim != r.Dim() {
		panic(errLen)
	}
	for i := 0; i < nSamples; i++ {
		r.Rand(data.RawRowView(i))
	}
}

// IndependentGaussian is a Gaussian distribution where the
// dimensions are independent from one another.
type IndependentGaussian struct {
	Norms []distuv.Normal
}

// NewIndependentGaussian returns an IndependentGaussian of dimension dim with
// every coordinate distributed as N(mu, sigma²), drawing from src.
func NewIndependentGaussian(dim int, mu, sigma float64, src rand.Source) IndependentGaussian {
	norms := make([]distuv.Normal, dim)
	for i := range norms {
		norms[i] = distuv.Normal{Mu: mu, Sigma: sigma, Src: src}
	}
	return IndependentGaussian{Norms: norms}
}

func (ind IndependentGaussian) Dim() int {
	return len(ind.Norms)
}

func (ind IndependentGaussian) Rand(x []float64) []float64 {
	if x == nil {
		x = make([]float64, len(ind.Norms))
	}
	if len(x) != len(ind.Norms) {
		panic(errLen)
	}
	for i := range x {
		x[i] = ind.Norms[i].Rand()
	}
	return x
}

// IndependentUniform is a uniform distribution over a hyper-rectangle.
type IndependentUniform struct {
	Unifs []distuv.Uniform
}

// NewIndependentUniform returns an IndependentUniform of dimension dim with
// every coordinate uniform on [min, max), drawing from src.
func NewIndependentUniform(dim int, min, max float64, src rand.Source) IndependentUniform {
	unifs := make([]distuv.Uniform, dim)
	for i := range unifs {
		unifs[i] = distuv.Uniform{Min: min, Max: max, Src: src}
	}
	return IndependentUniform{Unifs: unifs}
}

func (u IndependentUniform) Dim() int {
	return len(u.Unifs)
}

func (u IndependentUniform) Rand(x []float64) []float64 {
	if x == nil {
		x = make([]float64, len(u.Unifs))
	}
	if len(x) != len(u.Unifs) {
		panic(errLen)
	}
	for i := range x {
		x[i] = u.Unifs[i].Rand()
	}
	return x
}
