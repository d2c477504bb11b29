// package analyze summarizes the errors of cross validation runs.
package analyze

import (
	"context"
	"fmt"
	"math"

	"github.com/btracey/crossval"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
	"golang.org/x/sync/errgroup"
)

// Summary describes a set of per-fold errors.
type Summary struct {
	N      int     // number of finite errors summarized
	Mean   float64 // mean error
	Std    float64 // sample standard deviation
	StdErr float64 // standard error of the mean
}

// Summarize computes the mean, standard deviation and standard error of the
// finite entries of errs. NaN errors, as produced for folds without samples,
// are skipped. Fields are NaN if fewer values remain than the statistic needs.
func Summarize(errs []float64) Summary {
	e := make([]float64, 0, len(errs))
	for _, v := range errs {
		if !math.IsNaN(v) {
			e = append(e, v)
		}
	}
	s := Summary{N: len(e)}
	if len(e) == 0 {
		s.Mean, s.Std, s.StdErr = math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Mean, s.Std = stat.MeanStdDev(e, nil)
	s.StdErr = stat.StdErr(s.Std, float64(len(e)))
	return s
}

// Result is the outcome of cross validation with one number of folds.
type Result struct {
	Folds      int
	TrainError []float64
	TestError  []float64
	Train      Summary
	Test       Summary
}

// NewResult summarizes the per-fold errors returned by crossval.Score.
func NewResult(train, test []float64) Result {
	return Result{
		Folds:      len(test),
		TrainError: train,
		TestError:  test,
		Train:      Summarize(train),
		Test:       Summarize(test),
	}
}

// SweepFolds runs k-fold cross validation once for each entry of nFolds, all
// with the same seed, and summarizes the errors. The runs are sequential.
func SweepFolds(fitter crossval.Fitter, x mat.Matrix, y []float64, nFolds []int, seed uint64, errFunc crossval.ErrorFunc, settings *crossval.Settings) ([]Result, error) {
	results := make([]Result, len(nFolds))
	for i, k := range nFolds {
		train, test, err := crossval.ScoreKFold(fitter, x, y, k, seed, errFunc, settings)
		if err != nil {
			return nil, fmt.Errorf("analyze: %d folds: %w", k, err)
		}
		results[i] = NewResult(train, test)
	}
	return results, nil
}

// SweepFoldsConcurrent is like SweepFolds, but scores up to limit fold counts
// at once. A limit of zero or less runs them all at once. The fitter must be
// safe for concurrent use. The first error cancels the fold counts that have
// not started yet.
func SweepFoldsConcurrent(ctx context.Context, fitter crossval.Fitter, x mat.Matrix, y []float64, nFolds []int, seed uint64, errFunc crossval.ErrorFunc, settings *crossval.Settings, limit int) ([]Result, error) {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	results := make([]Result, len(nFolds))
	for i, k := range nFolds {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			train, test, err := crossval.ScoreKFold(fitter, x, y, k, seed, errFunc, settings)
			if err != nil {
				return fmt.Errorf("analyze: %d folds: %w", k, err)
			}
			results[i] = NewResult(train, test)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// RoundedLogSpan returns n fold counts spaced evenly in log between lb and ub,
// rounded to integers. Counts that round to the same value are kept once, so
// fewer than n may be returned.
func RoundedLogSpan(n, lb, ub int) []int {
	if n < 1 {
		panic("analyze: span length must be positive")
	}
	if lb < 1 || ub < lb {
		panic("analyze: bad span bounds")
	}
	if n == 1 {
		return []int{lb}
	}
	span := make([]float64, n)
	floats.LogSpan(span, float64(lb), float64(ub))
	counts := make([]int, 0, n)
	for _, v := range span {
		c := int(floats.Round(v, 0))
		if len(counts) > 0 && counts[len(counts)-1] == c {
			continue
		}
		counts = append(counts, c)
	}
	return counts
}
