package main

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/btracey/crossval/binary"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// metricsJSON is the --json form of the metrics report.
type metricsJSON struct {
	N   int     `json:"n"`
	TP  int     `json:"tp"`
	TN  int     `json:"tn"`
	FP  int     `json:"fp"`
	FN  int     `json:"fn"`
	ACC float64 `json:"acc"`
	TPR float64 `json:"tpr"`
	TNR float64 `json:"tnr"`
	PPV float64 `json:"ppv"`
	NPV float64 `json:"npv"`
}

func newMetricsCommand(a *app) *cobra.Command {
	var (
		threshold float64
		header    bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "metrics [file]",
		Short: "Score binary predictions against true labels",
		Long: `Read a CSV file with one example per row: the true label (0 or 1) in
the first column and the predicted label in the second. Print the confusion
counts and the accuracy, true positive rate, true negative rate, positive
predictive value and negative predictive value.

With --threshold, the second column holds scores, and a score at or above the
threshold predicts 1.

Examples:
  # Hard predictions
  crossval metrics labels.csv

  # Classifier scores from stdin, with a header row
  cat scores.csv | crossval metrics --header --threshold 0.5 -`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			name := "stdin"
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				r, name = f, args[0]
			}

			ytrue, yhat, err := readLabels(r, header)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", name, err)
			}
			if cmd.Flags().Changed("threshold") {
				yhat = binary.Threshold(yhat, yhat, threshold)
			}
			if err := checkLabels(ytrue, "true"); err != nil {
				return err
			}
			if err := checkLabels(yhat, "predicted"); err != nil {
				return err
			}

			c := binary.Count(ytrue, yhat)
			a.logger.Debug("counted labels",
				zap.String("input", name),
				zap.Int("n", c.N()),
			)
			rep := metricsJSON{
				N: c.N(), TP: c.TP, TN: c.TN, FP: c.FP, FN: c.FN,
				ACC: c.ACC(), TPR: c.TPR(), TNR: c.TNR(), PPV: c.PPV(), NPV: c.NPV(),
			}

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(rep)
			}
			fmt.Fprintf(w, "N   %d\nTP  %d\nTN  %d\nFP  %d\nFN  %d\n", rep.N, rep.TP, rep.TN, rep.FP, rep.FN)
			fmt.Fprintf(w, "ACC %.3f\nTPR %.3f\nTNR %.3f\nPPV %.3f\nNPV %.3f\n", rep.ACC, rep.TPR, rep.TNR, rep.PPV, rep.NPV)
			return nil
		},
	}

	cmd.Flags().Float64Var(&threshold, "threshold", 0.5, "treat the second column as scores and predict 1 at or above this value")
	cmd.Flags().BoolVar(&header, "header", false, "skip the first row")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the report as JSON")

	return cmd
}

// readLabels parses the first two columns of every CSV record as floats.
func readLabels(r io.Reader, header bool) (ytrue, yhat []float64, err error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	for n := 1; ; n++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		if header && n == 1 {
			continue
		}
		if len(rec) < 2 {
			return nil, nil, fmt.Errorf("record %d: want 2 columns, got %d", n, len(rec))
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(rec[0]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", n, err)
		}
		p, err := strconv.ParseFloat(strings.TrimSpace(rec[1]), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("record %d: %w", n, err)
		}
		ytrue = append(ytrue, t)
		yhat = append(yhat, p)
	}
	return ytrue, yhat, nil
}

// checkLabels reports the first value that binary.Count would reject.
func checkLabels(y []float64, which string) error {
	for i, v := range y {
		if v != 0 && v != 1 {
			return fmt.Errorf("%s label %d is %v, want 0 or 1", which, i, v)
		}
	}
	return nil
}
