package crossval

import "math/rand/v2"

const (
	errNegFolds = "crossval: number of folds must be positive"
	errNegData  = "crossval: negative amount of data"
)

// Fold represents the data samples used in one round of cross validation.
// Each index refers to a row of the data passed into Score.
type Fold struct {
	Train []int // rows used to fit the estimator
	Test  []int // held-out rows used to assess the fit
}

// KFold generates nFolds folds for k-fold cross validation of nData samples.
// A fresh generator seeded with seed shuffles the samples, so identical seeds
// produce identical folds.
func KFold(nData, nFolds int, seed uint64) []Fold {
	return KFoldRand(nData, nFolds, rand.New(rand.NewPCG(seed, seed)))
}

// KFoldRand is like KFold, but shuffles using the supplied generator. The
// generator state advances, so successive calls with the same generator give
// different folds.
func KFoldRand(nData, nFolds int, rnd *rand.Rand) []Fold {
	training, testing := Partition(nData, nFolds, rnd)
	folds := make([]Fold, nFolds)
	for i := range folds {
		folds[i].Train = training[i]
		folds[i].Test = testing[i]
	}
	return folds
}

// Partition partitions the data into nFolds for training and testing.
//
// The samples are shuffled with rnd and cut into nFolds contiguous blocks. Every
// block holds nData/nFolds samples, and the first nData%nFolds blocks hold one
// more. Block i is testing[i], and training[i] is every other sample. If
// nFolds > nData, the trailing folds have no test samples and train on all of
// the data.
//
// Partition panics if nFolds <= 0 or nData < 0.
func Partition(nData, nFolds int, rnd *rand.Rand) (training, testing [][]int) {
	if nFolds <= 0 {
		panic(errNegFolds)
	}
	if nData < 0 {
		panic(errNegData)
	}

	// Get a random permutation of the data samples
	perm := rnd.Perm(nData)

	training = make([][]int, nFolds)
	testing = make([][]int, nFolds)

	nSampPerFold := nData / nFolds
	remainder := nData % nFolds

	idx := 0
	for i := 0; i < nFolds; i++ {
		nTestElems := nSampPerFold
		if i < remainder {
			nTestElems++
		}
		testing[i] = make([]int, nTestElems)
		copy(testing[i], perm[idx:idx+nTestElems])

		training[i] = make([]int, nData-nTestElems)
		copy(training[i], perm[:idx])
		copy(training[i][idx:], perm[idx+nTestElems:])

		idx += nTestElems
	}
	if idx != nData {
		panic("bad logic")
	}
	return training, testing
}
