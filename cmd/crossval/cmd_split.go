package main

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/btracey/crossval/fold"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// foldJSON is the --json form of one fold.
type foldJSON struct {
	Fold  int   `json:"fold"`
	Train []int `json:"train"`
	Test  []int `json:"test"`
}

func newSplitCommand(a *app) *cobra.Command {
	var (
		n       int
		nFolds  int
		repeats int
		seed    uint64
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "split",
		Short: "Partition example ids into train and test folds",
		Long: `Shuffle the ids 0..n-1 with the given seed and divide them into test
folds whose sizes differ by at most one. Each fold's train ids are all of the
ids not in its test fold.

With --repeats, the partition is repeated with a fresh shuffle each time and
all of the folds are printed in order.

Examples:
  # 11 examples, 3 folds
  crossval split --n 11 --folds 3

  # Machine-readable output
  crossval split --n 11 --folds 3 --seed 42 --json

  # Three different 5-fold partitions
  crossval split --n 20 --folds 5 --repeats 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("n") {
				n = a.cfg.Samples
			}
			if !cmd.Flags().Changed("folds") {
				nFolds = a.cfg.Folds
			}
			if !cmd.Flags().Changed("seed") {
				seed = a.cfg.Seed
			}
			if n < 0 {
				return fmt.Errorf("n must be non-negative, got %d", n)
			}
			if nFolds < 1 {
				return fmt.Errorf("folds must be positive, got %d", nFolds)
			}
			if repeats < 1 {
				return fmt.Errorf("repeats must be positive, got %d", repeats)
			}

			var folder fold.Folder = fold.KFold{K: nFolds, Seed: seed}
			if repeats > 1 {
				folder = fold.MultiKFold{K: nFolds, Multi: repeats, Seed: seed}
			}
			folds := folder.Folds(n)
			a.logger.Debug("split",
				zap.Int("n", n),
				zap.Int("folds", nFolds),
				zap.Int("repeats", repeats),
				zap.Uint64("seed", seed),
			)

			out := make([]foldJSON, len(folds))
			for i, f := range folds {
				out[i] = foldJSON{Fold: i, Train: sortedCopy(f.Train), Test: sortedCopy(f.Test)}
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}
			for _, f := range out {
				fmt.Fprintf(w, "fold %d: test %v train %v\n", f.Fold, f.Test, f.Train)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&n, "n", 0, "number of examples (default from config samples)")
	cmd.Flags().IntVar(&nFolds, "folds", 0, "number of folds (default from config)")
	cmd.Flags().IntVar(&repeats, "repeats", 1, "number of independent partitions to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "seed for the shuffle (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print folds as JSON")

	return cmd
}

func sortedCopy(s []int) []int {
	c := slices.Clone(s)
	slices.Sort(c)
	return c
}
