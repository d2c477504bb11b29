package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command with args and returns what it printed.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := newRootCommand()
	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
		assert.NotEmpty(t, c.Short, c.Name())
		assert.NotEmpty(t, c.Long, c.Name())
	}
	for _, want := range []string{"split", "cv", "metrics"} {
		assert.Contains(t, names, want)
	}
}

func TestSplitCommand_JSON(t *testing.T) {
	out, err := run(t, "", "split", "--n", "11", "--folds", "3", "--json")
	require.NoError(t, err)

	var folds []foldJSON
	require.NoError(t, json.Unmarshal([]byte(out), &folds))
	require.Len(t, folds, 3)

	var testSizes, allTest []int
	for _, f := range folds {
		testSizes = append(testSizes, len(f.Test))
		assert.Len(t, f.Train, 11-len(f.Test))
		assert.True(t, slices.IsSorted(f.Test))
		allTest = append(allTest, f.Test...)
	}
	assert.Equal(t, []int{4, 4, 3}, testSizes)
	slices.Sort(allTest)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, allTest)
}

func TestSplitCommand_Seed(t *testing.T) {
	a, err := run(t, "", "split", "--n", "20", "--folds", "4", "--seed", "3")
	require.NoError(t, err)
	b, err := run(t, "", "split", "--n", "20", "--folds", "4", "--seed", "3")
	require.NoError(t, err)
	c, err := run(t, "", "split", "--n", "20", "--folds", "4", "--seed", "4")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 4, strings.Count(a, "fold "))
}

func TestSplitCommand_Repeats(t *testing.T) {
	out, err := run(t, "", "split", "--n", "10", "--folds", "5", "--repeats", "3", "--json")
	require.NoError(t, err)

	var folds []foldJSON
	require.NoError(t, json.Unmarshal([]byte(out), &folds))
	require.Len(t, folds, 15)
	for r := 0; r < 3; r++ {
		var ids []int
		for _, f := range folds[r*5 : (r+1)*5] {
			assert.Len(t, f.Test, 2)
			ids = append(ids, f.Test...)
		}
		slices.Sort(ids)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, ids, "repeat %d", r)
	}

	_, err = run(t, "", "split", "--n", "10", "--repeats", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repeats must be positive")
}

func TestSplitCommand_EnvFolds(t *testing.T) {
	t.Setenv("CROSSVAL_FOLDS", "5")
	out, err := run(t, "", "split", "--n", "10", "--json")
	require.NoError(t, err)

	var folds []foldJSON
	require.NoError(t, json.Unmarshal([]byte(out), &folds))
	assert.Len(t, folds, 5)
}

func TestSplitCommand_InvalidFolds(t *testing.T) {
	_, err := run(t, "", "split", "--n", "10", "--folds", "0")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "folds must be positive")
}

func TestCVCommand_Linear(t *testing.T) {
	out, err := run(t, "", "cv", "--json")
	require.NoError(t, err)

	var results []struct {
		Folds      int       `json:"folds"`
		TrainError []float64 `json:"train_error"`
		TestError  []float64 `json:"test_error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 1)
	assert.Equal(t, 7, results[0].Folds)
	require.Len(t, results[0].TestError, 7)
	for i := range results[0].TestError {
		assert.InDelta(t, 0, results[0].TrainError[i], 1e-8)
		assert.InDelta(t, 0, results[0].TestError[i], 1e-8)
	}
}

func TestCVCommand_Sweep(t *testing.T) {
	out, err := run(t, "", "cv", "--func", "rosenbrock", "--order", "2", "--noise", "0.1", "--samples", "60", "--sweep", "2,5")
	require.NoError(t, err)
	assert.Contains(t, out, "2 folds")
	assert.Contains(t, out, "5 folds")
	assert.Contains(t, out, "mean")
}

func TestCVCommand_LogSpan(t *testing.T) {
	out, err := run(t, "", "cv", "--samples", "32", "--noise", "0.2", "--log-span", "5", "--json")
	require.NoError(t, err)

	var results []struct {
		Folds int `json:"folds"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	var folds []int
	for _, r := range results {
		folds = append(folds, r.Folds)
	}
	assert.Equal(t, []int{2, 4, 8, 16, 32}, folds)

	_, err = run(t, "", "cv", "--log-span", "3", "--sweep", "2,3")
	require.Error(t, err)
}

func TestCVCommand_Parallel(t *testing.T) {
	args := []string{"cv", "--func", "rosenbrock", "--order", "2", "--noise", "0.1", "--sweep", "2,3,5,7,10", "--json"}
	seq, err := run(t, "", args...)
	require.NoError(t, err)
	par, err := run(t, "", append(args, "--parallel", "3")...)
	require.NoError(t, err)
	assert.JSONEq(t, seq, par)
}

func TestCVCommand_Plot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sweep.png")
	_, err := run(t, "", "cv", "--noise", "0.5", "--sweep", "2,4", "--plot", path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestCVCommand_Errors(t *testing.T) {
	_, err := run(t, "", "cv", "--model", "forest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown model")

	_, err = run(t, "", "cv", "--folds", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no training samples")

	_, err = run(t, "", "cv", "--func", "cubic")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown func")
}

func TestMetricsCommand_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "labels.csv")
	content := "0,0\n0,0\n0,1\n0,0\n1,1\n1,1\n1,0\n1,0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, err := run(t, "", "metrics", path)
	require.NoError(t, err)
	for _, want := range []string{"TP  2", "TN  3", "FP  1", "FN  2", "ACC 0.625", "TPR 0.500", "PPV 0.667", "TNR 0.750", "NPV 0.600"} {
		assert.Contains(t, out, want)
	}
}

func TestMetricsCommand_ThresholdStdin(t *testing.T) {
	in := "label,score\n0,0.1\n0,0.7\n1,0.9\n1,0.4\n"
	out, err := run(t, in, "metrics", "--header", "--threshold", "0.5", "--json", "-")
	require.NoError(t, err)

	var rep metricsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, metricsJSON{N: 4, TP: 1, TN: 1, FP: 1, FN: 1}, metricsJSON{N: rep.N, TP: rep.TP, TN: rep.TN, FP: rep.FP, FN: rep.FN})
	assert.InDelta(t, 0.5, rep.ACC, 1e-9)
}

func TestMetricsCommand_Empty(t *testing.T) {
	out, err := run(t, "", "metrics", "--json")
	require.NoError(t, err)

	var rep metricsJSON
	require.NoError(t, json.Unmarshal([]byte(out), &rep))
	assert.Equal(t, 0, rep.N)
	assert.Equal(t, 0.0, rep.TPR)
	assert.Equal(t, 0.0, rep.PPV)
}

func TestMetricsCommand_Errors(t *testing.T) {
	_, err := run(t, "0,2\n", "metrics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 0 or 1")

	_, err = run(t, "0\n", "metrics")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "want 2 columns")

	_, err = run(t, "0,x\n", "metrics")
	require.Error(t, err)

	_, err = run(t, "", "metrics", filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open")
}
