package crossval

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// RMSE returns the root mean squared error between y and yhat. It is NaN
// for empty inputs and panics if the lengths differ.
func RMSE(y, yhat []float64) float64 {
	return math.Sqrt(MSE(y, yhat))
}

// MSE returns the mean squared error between y and yhat.
func MSE(y, yhat []float64) float64 {
	if len(y) != len(yhat) {
		panic(errLen)
	}
	d := floats.Distance(y, yhat, 2)
	return d * d / float64(len(y))
}

// MAE returns the mean absolute error between y and yhat.
func MAE(y, yhat []float64) float64 {
	if len(y) != len(yhat) {
		panic(errLen)
	}
	return floats.Distance(y, yhat, 1) / float64(len(y))
}
