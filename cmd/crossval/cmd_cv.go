package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"text/tabwriter"

	"github.com/btracey/crossval"
	"github.com/btracey/crossval/analyze"
	"github.com/btracey/crossval/analyze/plots"
	"github.com/btracey/crossval/fit"
	"github.com/btracey/crossval/internal/config"
	"github.com/btracey/crossval/internal/dataset"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newCVCommand(a *app) *cobra.Command {
	var (
		flags  cvFlags
		model  string
		sweep  []int
		span   int
		procs  int
		plotTo string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "cv",
		Short: "Cross validate a least-squares fit on synthetic data",
		Long: `Generate a synthetic regression data set, then fit and score the
model on every fold of k-fold cross validation. The RMSE on the train and test
rows of each fold is printed, followed by the mean and its standard error.

With the default linear target and no noise, a first-order polynomial fits
the data exactly and every error is zero.

Examples:
  # 101 samples, 3 features, 7 folds
  crossval cv

  # Noisy quadratic fit to the Rosenbrock function, over several fold counts
  crossval cv --func rosenbrock --order 2 --noise 0.1 --sweep 2,5,10

  # Six fold counts from 2 up to leave-one-out
  crossval cv --noise 0.5 --log-span 6

  # Save the mean errors of the sweep as an image
  crossval cv --noise 0.5 --sweep 2,5,10,20 --plot sweep.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := *a.cfg
			flags.apply(cmd, &cfg)
			if err := cfg.Validate(); err != nil {
				return err
			}

			var fitter crossval.Fitter
			switch model {
			case "poly":
				fitter = fit.Polynomial{Order: cfg.Order}
			case "mean":
				fitter = fit.Mean{}
			default:
				return fmt.Errorf("unknown model %q", model)
			}

			x, y, err := dataset.Generate(dataset.Spec{
				Samples: cfg.Samples,
				Dim:     cfg.Dim,
				Func:    cfg.Func,
				Inputs:  cfg.Inputs,
				Noise:   cfg.Noise,
				Seed:    cfg.Seed,
			})
			if err != nil {
				return err
			}

			switch {
			case span > 0 && len(sweep) > 0:
				return fmt.Errorf("--sweep and --log-span are mutually exclusive")
			case span > 0:
				sweep = analyze.RoundedLogSpan(span, 2, max(cfg.Samples, 2))
			case len(sweep) == 0:
				sweep = []int{cfg.Folds}
			}
			for _, k := range sweep {
				if k < 1 {
					return fmt.Errorf("folds must be positive, got %d", k)
				}
			}
			a.logger.Info("cross validating",
				zap.String("model", model),
				zap.String("func", cfg.Func),
				zap.Int("samples", cfg.Samples),
				zap.Ints("folds", sweep),
			)
			settings := &crossval.Settings{Logger: a.logger}
			var results []analyze.Result
			if procs > 1 {
				results, err = analyze.SweepFoldsConcurrent(cmd.Context(), fitter, x, y, sweep, cfg.Seed, crossval.RMSE, settings, procs)
			} else {
				results, err = analyze.SweepFolds(fitter, x, y, sweep, cfg.Seed, crossval.RMSE, settings)
			}
			if err != nil {
				return err
			}

			if plotTo != "" {
				title := fmt.Sprintf("%s fit, %s target", model, cfg.Func)
				if err := plots.FoldErrors(plotTo, results, plots.Settings{Title: title, YLabel: "RMSE"}); err != nil {
					return fmt.Errorf("failed to plot: %w", err)
				}
				a.logger.Info("saved plot", zap.String("path", plotTo))
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(jsonResults(results))
			}
			return writeResults(cmd.OutOrStdout(), results)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&model, "model", "poly", "estimator to fit (poly, mean)")
	cmd.Flags().IntSliceVar(&sweep, "sweep", nil, "comma-separated fold counts to run instead of --folds")
	cmd.Flags().IntVar(&span, "log-span", 0, "sweep this many fold counts spaced in log from 2 to leave-one-out")
	cmd.Flags().IntVar(&procs, "parallel", 1, "number of fold counts to score at once")
	cmd.Flags().StringVar(&plotTo, "plot", "", "save a plot of the mean errors to this file (.png, .pdf, .svg)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print results as JSON")

	return cmd
}

// cvFlags are the data set flags of the cv command. A flag overrides the
// configuration only when it is set.
type cvFlags struct {
	samples, dim, folds, order int
	seed                       uint64
	fn, inputs                 string
	noise                      float64
}

func (f *cvFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.samples, "samples", 0, "number of samples (default from config)")
	cmd.Flags().IntVar(&f.dim, "dim", 0, "number of input features (default from config)")
	cmd.Flags().IntVar(&f.folds, "folds", 0, "number of folds (default from config)")
	cmd.Flags().IntVar(&f.order, "order", 0, "polynomial order (default from config)")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "seed for the data and the folds (default from config)")
	cmd.Flags().StringVar(&f.fn, "func", "", "target function: linear or rosenbrock (default from config)")
	cmd.Flags().StringVar(&f.inputs, "inputs", "", "input distribution: uniform or gaussian (default from config)")
	cmd.Flags().Float64Var(&f.noise, "noise", 0, "standard deviation of noise on the targets (default from config)")
}

func (f *cvFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("samples") {
		cfg.Samples = f.samples
	}
	if changed("dim") {
		cfg.Dim = f.dim
	}
	if changed("folds") {
		cfg.Folds = f.folds
	}
	if changed("order") {
		cfg.Order = f.order
	}
	if changed("seed") {
		cfg.Seed = f.seed
	}
	if changed("func") {
		cfg.Func = f.fn
	}
	if changed("inputs") {
		cfg.Inputs = f.inputs
	}
	if changed("noise") {
		cfg.Noise = f.noise
	}
}

type resultJSON struct {
	Folds      int         `json:"folds"`
	TrainError []jsonFloat `json:"train_error"`
	TestError  []jsonFloat `json:"test_error"`
	Train      summaryJSON `json:"train"`
	Test       summaryJSON `json:"test"`
}

type summaryJSON struct {
	N      int       `json:"n"`
	Mean   jsonFloat `json:"mean"`
	StdErr jsonFloat `json:"std_err"`
}

// jsonFloat encodes NaN as null, which encoding/json otherwise rejects.
type jsonFloat float64

func (f jsonFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

func jsonResults(results []analyze.Result) []resultJSON {
	out := make([]resultJSON, len(results))
	for i, r := range results {
		out[i] = resultJSON{
			Folds:      r.Folds,
			TrainError: jsonFloats(r.TrainError),
			TestError:  jsonFloats(r.TestError),
			Train:      summaryJSON{N: r.Train.N, Mean: jsonFloat(r.Train.Mean), StdErr: jsonFloat(r.Train.StdErr)},
			Test:       summaryJSON{N: r.Test.N, Mean: jsonFloat(r.Test.Mean), StdErr: jsonFloat(r.Test.StdErr)},
		}
	}
	return out
}

func jsonFloats(s []float64) []jsonFloat {
	out := make([]jsonFloat, len(s))
	for i, v := range s {
		out[i] = jsonFloat(v)
	}
	return out
}

func writeResults(w io.Writer, results []analyze.Result) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%d folds\n", r.Folds)
		fmt.Fprintln(tw, "fold\ttrain RMSE\ttest RMSE")
		for j := range r.TestError {
			fmt.Fprintf(tw, "%d\t%.4f\t%.4f\n", j, r.TrainError[j], r.TestError[j])
		}
		fmt.Fprintf(tw, "mean\t%.4f ± %.4f\t%.4f ± %.4f\n", r.Train.Mean, r.Train.StdErr, r.Test.Mean, r.Test.StdErr)
	}
	return tw.Flush()
}
