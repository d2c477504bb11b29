package binary

// Epsilon is added to the denominator of every metric.
const Epsilon = 1e-10

// ACC returns the accuracy of yhat, the fraction of labels predicted correctly.
func ACC(ytrue, yhat []float64) float64 {
	return Count(ytrue, yhat).ACC()
}

// TPR returns the true positive rate of yhat, also known as the recall.
func TPR(ytrue, yhat []float64) float64 {
	return Count(ytrue, yhat).TPR()
}

// TNR returns the true negative rate of yhat, also known as the specificity.
func TNR(ytrue, yhat []float64) float64 {
	return Count(ytrue, yhat).TNR()
}

// PPV returns the positive predictive value of yhat, also known as the
// precision.
func PPV(ytrue, yhat []float64) float64 {
	return Count(ytrue, yhat).PPV()
}

// NPV returns the negative predictive value of yhat.
func NPV(ytrue, yhat []float64) float64 {
	return Count(ytrue, yhat).NPV()
}

// ACC returns (TP+TN) / (TP+TN+FP+FN+Epsilon).
func (c Confusion) ACC() float64 {
	return ratio(c.TP+c.TN, c.N())
}

// TPR returns TP / (TP+FN+Epsilon).
func (c Confusion) TPR() float64 {
	return ratio(c.TP, c.TP+c.FN)
}

// TNR returns TN / (TN+FP+Epsilon).
func (c Confusion) TNR() float64 {
	return ratio(c.TN, c.TN+c.FP)
}

// PPV returns TP / (TP+FP+Epsilon).
func (c Confusion) PPV() float64 {
	return ratio(c.TP, c.TP+c.FP)
}

// NPV returns TN / (TN+FN+Epsilon).
func (c Confusion) NPV() float64 {
	return ratio(c.TN, c.TN+c.FN)
}

func ratio(num, den int) float64 {
	return float64(num) / (float64(den) + Epsilon)
}
