// package crossval implements n-fold cross validation of regression estimators.
//
// The samples are shuffled and divided into folds. Each fold holds out one
// block of the data for testing, and the estimator is fit to the remaining
// samples. The error of the fit is computed on both the training and the
// held-out data, giving one train and one test error per fold.
//
// The main routines are KFold, which generates the folds, and Score, which
// fits and assesses an estimator on each of them. Binary classification
// metrics live in the binary subpackage.
package crossval

import (
	"fmt"
	"math"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

const errLen = "crossval: length mismatch"

// A Fitter can produce a Predictor based on a given set of samples.
type Fitter interface {
	// Fit fits the rows of x and the responses y listed in inds. If weights
	// is non-nil, it holds one weight per row of x.
	Fit(x mat.Matrix, y, weights []float64, inds []int) (Predictor, error)
}

// A Predictor predicts the response at an input location.
type Predictor interface {
	Predict(x []float64) float64
}

// ErrorFunc computes the error between the true responses and the predicted
// ones. RMSE, MSE and MAE are ErrorFuncs.
type ErrorFunc func(y, yhat []float64) float64

// Settings controls optional behavior of Score.
type Settings struct {
	// Weights are passed through to the Fitter. If nil, all samples are
	// weighted equally.
	Weights []float64
	// Logger receives one debug entry per fold. If nil, nothing is logged.
	Logger *zap.Logger
}

// Score fits the estimator to the training samples of each fold and computes
// the error on the training and the held-out samples. Entry i of train and test
// is the error for folds[i]. If errFunc is nil, RMSE is used. The error of a
// fold with no samples in a set is NaN.
//
// Score panics if len(y) does not match the number of rows of x. Errors from
// the Fitter are returned along with the fold on which they occurred.
func Score(fitter Fitter, x mat.Matrix, y []float64, folds []Fold, errFunc ErrorFunc, settings *Settings) (train, test []float64, err error) {
	nSamples, dim := x.Dims()
	if len(y) != nSamples {
		panic(errLen)
	}
	if settings == nil {
		settings = &Settings{}
	}
	if settings.Weights != nil && len(settings.Weights) != nSamples {
		panic(errLen)
	}
	if errFunc == nil {
		errFunc = RMSE
	}
	logger := settings.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	train = make([]float64, len(folds))
	test = make([]float64, len(folds))
	row := make([]float64, dim)
	for i, fold := range folds {
		pred, err := fitter.Fit(x, y, settings.Weights, fold.Train)
		if err != nil {
			return nil, nil, fmt.Errorf("crossval: fit fold %d: %w", i, err)
		}
		train[i] = assess(pred, x, y, fold.Train, row, errFunc)
		test[i] = assess(pred, x, y, fold.Test, row, errFunc)
		logger.Debug("fold scored",
			zap.Int("fold", i),
			zap.Int("train_size", len(fold.Train)),
			zap.Int("test_size", len(fold.Test)),
			zap.Float64("train_error", train[i]),
			zap.Float64("test_error", test[i]),
		)
	}
	return train, test, nil
}

// ScoreKFold runs Score on nFolds folds generated by KFold with the given seed.
func ScoreKFold(fitter Fitter, x mat.Matrix, y []float64, nFolds int, seed uint64, errFunc ErrorFunc, settings *Settings) (train, test []float64, err error) {
	nSamples, _ := x.Dims()
	return Score(fitter, x, y, KFold(nSamples, nFolds, seed), errFunc, settings)
}

// assess predicts at the rows in inds and compares with the true responses.
// row is scratch space of length equal to the columns of x.
func assess(pred Predictor, x mat.Matrix, y []float64, inds []int, row []float64, errFunc ErrorFunc) float64 {
	if len(inds) == 0 {
		return math.NaN()
	}
	truth := make([]float64, len(inds))
	guess := make([]float64, len(inds))
	for i, idx := range inds {
		mat.Row(row, idx, x)
		truth[i] = y[idx]
		guess[i] = pred.Predict(row)
	}
	return errFunc(truth, guess)
}
