// package binary computes metrics for the hard decisions of a binary
// classifier.
//
// True and predicted labels are float64 slices holding 0 (negative) or 1
// (positive). Count tallies the four outcome categories into a Confusion, and
// the metric functions derive ratios from it:
//
//  ACC = (TP + TN) / (TP + TN + FP + FN)
//  TPR = TP / (TP + FN)   (recall, sensitivity)
//  TNR = TN / (TN + FP)   (specificity)
//  PPV = TP / (TP + FP)   (precision)
//  NPV = TN / (TN + FN)
//
// Epsilon is added to every denominator, so a metric with no relevant
// examples is 0 rather than NaN.
package binary

const (
	errLength = "binary: length mismatch"
	errLabel  = "binary: label not 0 or 1"
)

// Confusion holds the counts of the four outcomes of binary predictions.
type Confusion struct {
	TP int // true 1, predicted 1
	TN int // true 0, predicted 0
	FP int // true 0, predicted 1
	FN int // true 1, predicted 0
}

// N returns the number of compared label pairs.
func (c Confusion) N() int {
	return c.TP + c.TN + c.FP + c.FN
}

// Count counts the true positives, true negatives, false positives and false
// negatives of the predictions yhat against the true labels ytrue.
//
// Count panics if the lengths differ or if a label is not exactly 0 or 1.
func Count(ytrue, yhat []float64) Confusion {
	if len(ytrue) != len(yhat) {
		panic(errLength)
	}
	var c Confusion
	for i, v := range ytrue {
		t := label(v)
		p := label(yhat[i])
		c.TP += t & p
		c.TN += (1 - t) & (1 - p)
		c.FP += (1 - t) & p
		c.FN += t & (1 - p)
	}
	return c
}

func label(v float64) int {
	switch v {
	case 0:
		return 0
	case 1:
		return 1
	}
	panic(errLabel)
}

// Threshold sets dst[i] to 1 if scores[i] >= cutoff and 0 otherwise. If dst
// is nil, a new slice is allocated. Threshold panics if dst is non-nil and
// its length differs from scores.
func Threshold(dst, scores []float64, cutoff float64) []float64 {
	if dst == nil {
		dst = make([]float64, len(scores))
	}
	if len(dst) != len(scores) {
		panic(errLength)
	}
	for i, s := range scores {
		if s >= cutoff {
			dst[i] = 1
		} else {
			dst[i] = 0
		}
	}
	return dst
}
