// package fold implements types for generating the folds of a cross validation
// run.
package fold

import (
	"math/rand/v2"

	"github.com/btracey/crossval"
)

// Folder generates folds for the given number of samples.
type Folder interface {
	Folds(nSamples int) []crossval.Fold
}

var (
	_ Folder = All{}
	_ Folder = KFold{}
	_ Folder = MultiKFold{}
)

// All uses all of the samples for everything -- one fold. The test error is
// then the resubstitution error of the fit.
type All struct{}

func (a All) Folds(nSamples int) []crossval.Fold {
	folds := make([]crossval.Fold, 1)
	folds[0].Train = make([]int, nSamples)
	folds[0].Test = make([]int, nSamples)
	for i := range folds[0].Train {
		folds[0].Train[i] = i
		folds[0].Test[i] = i
	}
	return folds
}

// KFold generates K folds with crossval.KFold. Every call with the same Seed
// returns the same folds.
type KFold struct {
	K    int
	Seed uint64
}

func (k KFold) Folds(nSamples int) []crossval.Fold {
	return crossval.KFold(nSamples, k.K, k.Seed)
}

// MultiKFold repeats K-fold partitioning Multi times, returning K*Multi folds.
// All repetitions draw from one generator seeded with Seed, so each
// repetition shuffles the samples differently.
type MultiKFold struct {
	K     int
	Multi int
	Seed  uint64
}

func (m MultiKFold) Folds(nSamples int) []crossval.Fold {
	rnd := rand.New(rand.NewPCG(m.Seed, m.Seed))
	var folds []crossval.Fold
	for i := 0; i < m.Multi; i++ {
		folds = append(folds, crossval.KFoldRand(nSamples, m.K, rnd)...)
	}
	return folds
}
