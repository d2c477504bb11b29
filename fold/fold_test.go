package fold

import (
	"slices"
	"testing"

	"github.com/btracey/crossval"
)

// checkPartition verifies that folds is one k-fold partition of n samples.
func checkPartition(t *testing.T, name string, folds []crossval.Fold, n int) {
	testCount := make([]int, n)
	for i, f := range folds {
		if len(f.Train)+len(f.Test) != n {
			t.Errorf("Case %s: fold %d has %d samples, want %d", name, i, len(f.Train)+len(f.Test), n)
		}
		for _, v := range f.Test {
			testCount[v]++
		}
	}
	for v, c := range testCount {
		if c != 1 {
			t.Errorf("Case %s: sample %d tested %d times", name, v, c)
		}
	}
}

func TestAll(t *testing.T) {
	folds := All{}.Folds(5)
	if len(folds) != 1 {
		t.Fatalf("got %d folds, want 1", len(folds))
	}
	want := []int{0, 1, 2, 3, 4}
	if !slices.Equal(folds[0].Train, want) || !slices.Equal(folds[0].Test, want) {
		t.Errorf("All folds = %v, want train and test %v", folds[0], want)
	}
}

func TestKFold(t *testing.T) {
	k := KFold{K: 4, Seed: 3}
	folds := k.Folds(22)
	if len(folds) != 4 {
		t.Fatalf("got %d folds, want 4", len(folds))
	}
	checkPartition(t, "KFold", folds, 22)
	want := crossval.KFold(22, 4, 3)
	for i := range folds {
		if !slices.Equal(folds[i].Test, want[i].Test) {
			t.Errorf("fold %d differs from crossval.KFold", i)
		}
	}
}

func TestMultiKFold(t *testing.T) {
	const n, k, multi = 17, 3, 4
	m := MultiKFold{K: k, Multi: multi, Seed: 5}
	folds := m.Folds(n)
	if len(folds) != k*multi {
		t.Fatalf("got %d folds, want %d", len(folds), k*multi)
	}
	for r := 0; r < multi; r++ {
		checkPartition(t, "MultiKFold", folds[r*k:(r+1)*k], n)
	}

	// The first repetition matches a single KFold with the same seed.
	first := KFold{K: k, Seed: 5}.Folds(n)
	for i := range first {
		if !slices.Equal(folds[i].Test, first[i].Test) {
			t.Errorf("fold %d of the first repetition differs from KFold", i)
		}
	}
	if slices.Equal(folds[0].Test, folds[k].Test) {
		t.Errorf("repetitions shuffled identically")
	}

	again := m.Folds(n)
	for i := range folds {
		if !slices.Equal(folds[i].Test, again[i].Test) {
			t.Errorf("fold %d not reproducible", i)
		}
	}
}
