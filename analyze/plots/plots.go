// Package plots draws the results of a fold sweep.
package plots

import (
	"errors"
	"math"

	"github.com/btracey/crossval/analyze"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Settings control the labels of a plot.
type Settings struct {
	Title  string
	YLabel string // defaults to "Error"
}

type yerrs struct {
	plotter.XYs
	plotter.YErrors
}

// FoldErrors plots the mean train and test error against the number of folds,
// with the standard error of the mean as error bars, and saves it to path. The
// image format is chosen from the extension of path (.png, .pdf, .svg, ...).
// Results whose mean is NaN are left out.
func FoldErrors(path string, results []analyze.Result, settings Settings) error {
	var trainMeans, trainErrs, testMeans, testErrs []float64
	var trainFolds, testFolds []float64
	for _, r := range results {
		if !math.IsNaN(r.Train.Mean) {
			trainFolds = append(trainFolds, float64(r.Folds))
			trainMeans = append(trainMeans, r.Train.Mean)
			trainErrs = append(trainErrs, finite(r.Train.StdErr))
		}
		if !math.IsNaN(r.Test.Mean) {
			testFolds = append(testFolds, float64(r.Folds))
			testMeans = append(testMeans, r.Test.Mean)
			testErrs = append(testErrs, finite(r.Test.StdErr))
		}
	}
	if len(trainMeans) == 0 && len(testMeans) == 0 {
		return errors.New("plots: no finite errors to plot")
	}

	plt := plot.New()
	plt.Title.Text = settings.Title
	plt.X.Label.Text = "Number of Folds"
	plt.Y.Label.Text = settings.YLabel
	if plt.Y.Label.Text == "" {
		plt.Y.Label.Text = "Error"
	}
	plt.Legend.Top = true
	plt.Legend.Left = false

	var lines []interface{}
	var bars []*plotter.YErrorBars
	for i, series := range []struct {
		name               string
		folds, means, errs []float64
	}{
		{"train", trainFolds, trainMeans, trainErrs},
		{"test", testFolds, testMeans, testErrs},
	} {
		if len(series.means) == 0 {
			continue
		}
		b, err := makeErrorBars(series.folds, series.means, series.errs)
		if err != nil {
			return err
		}
		b.LineStyle.Color = plotutil.SoftColors[i]
		lines = append(lines, series.name, b.XYs)
		bars = append(bars, b)
	}
	if err := plotutil.AddLinePoints(plt, lines...); err != nil {
		return err
	}
	for _, b := range bars {
		plt.Add(b)
	}

	return plt.Save(4.48*vg.Inch, 3.37*vg.Inch, path)
}

func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func makeErrorBars(pointVec, means, eims []float64) (*plotter.YErrorBars, error) {
	if len(pointVec) != len(means) {
		panic("plots: slice length mismatch")
	}
	if len(means) != len(eims) {
		panic("plots: slice length mismatch")
	}
	n := len(pointVec)
	xys := make(plotter.XYs, n)
	for i, v := range means {
		xys[i].X = pointVec[i]
		xys[i].Y = v
	}
	yErrors := make(plotter.YErrors, n)
	for i, v := range eims {
		yErrors[i].Low = v
		yErrors[i].High = v
	}
	return plotter.NewYErrorBars(yerrs{xys, yErrors})
}
