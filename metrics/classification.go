// Package metrics provides classification metrics and the named registry the
// cross-validation orchestrator scores with. Every metric is a pure function
// of (ground truth, predictions) returning a scalar. Labels are float-coded
// classes; multiclass precision/recall/F1/Jaccard are macro-averaged over the
// observed label set.
package metrics

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/pipeml/pipeml/pkg/errors"
)

func validate(op string, yTrue, yPred *mat.VecDense) (int, error) {
	if yTrue == nil || yTrue.Len() == 0 {
		return 0, errors.NewValueError(op, "empty vector")
	}
	if yPred == nil || yPred.Len() != yTrue.Len() {
		got := 0
		if yPred != nil {
			got = yPred.Len()
		}
		return 0, errors.NewDimensionError(op, yTrue.Len(), got, 0)
	}
	return yTrue.Len(), nil
}

// labelSet returns the sorted union of labels observed in yTrue and yPred.
func labelSet(yTrue, yPred *mat.VecDense) []float64 {
	seen := make(map[float64]bool)
	var labels []float64
	collect := func(v *mat.VecDense) {
		for i := 0; i < v.Len(); i++ {
			l := v.AtVec(i)
			if !seen[l] {
				seen[l] = true
				labels = append(labels, l)
			}
		}
	}
	collect(yTrue)
	collect(yPred)
	for i := 1; i < len(labels); i++ {
		for j := i; j > 0 && labels[j] < labels[j-1]; j-- {
			labels[j], labels[j-1] = labels[j-1], labels[j]
		}
	}
	return labels
}

// classCounts holds per-class tallies from one pass over the label vectors.
type classCounts struct {
	tp, fp, fn map[float64]int
	trueCount  map[float64]int
	predCount  map[float64]int
	correct    int
	n          int
}

func count(yTrue, yPred *mat.VecDense) classCounts {
	c := classCounts{
		tp:        make(map[float64]int),
		fp:        make(map[float64]int),
		fn:        make(map[float64]int),
		trueCount: make(map[float64]int),
		predCount: make(map[float64]int),
		n:         yTrue.Len(),
	}
	for i := 0; i < yTrue.Len(); i++ {
		t, p := yTrue.AtVec(i), yPred.AtVec(i)
		c.trueCount[t]++
		c.predCount[p]++
		if t == p {
			c.tp[t]++
			c.correct++
		} else {
			c.fn[t]++
			c.fp[p]++
		}
	}
	return c
}

// Accuracy is the fraction of exactly matching predictions.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	correct := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) == yPred.AtVec(i) {
			correct++
		}
	}
	return float64(correct) / float64(n), nil
}

// ZeroOneLoss is the fraction of misclassified samples, 1 - accuracy.
func ZeroOneLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	acc, err := Accuracy(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	return 1 - acc, nil
}

// HammingLoss is the fraction of wrong labels. For single-label
// classification it coincides with the zero-one loss.
func HammingLoss(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("HammingLoss", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	wrong := 0
	for i := 0; i < n; i++ {
		if yTrue.AtVec(i) != yPred.AtVec(i) {
			wrong++
		}
	}
	return float64(wrong) / float64(n), nil
}

// BalancedAccuracy is the mean per-class recall over classes present in yTrue.
func BalancedAccuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := validate("BalancedAccuracy", yTrue, yPred); err != nil {
		return 0, err
	}
	c := count(yTrue, yPred)
	sum := 0.0
	classes := 0
	for label, total := range c.trueCount {
		sum += float64(c.tp[label]) / float64(total)
		classes++
	}
	return sum / float64(classes), nil
}

// Recall is the macro-averaged recall over the observed label set. Classes
// absent from yTrue contribute 0 and raise an UndefinedMetricWarning.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := validate("Recall", yTrue, yPred); err != nil {
		return 0, err
	}
	c := count(yTrue, yPred)
	labels := labelSet(yTrue, yPred)
	sum := 0.0
	for _, label := range labels {
		denom := c.tp[label] + c.fn[label]
		if denom == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true samples for a class", 0))
			continue
		}
		sum += float64(c.tp[label]) / float64(denom)
	}
	return sum / float64(len(labels)), nil
}

// Precision is the macro-averaged precision over the observed label set.
// Classes never predicted contribute 0 and raise an UndefinedMetricWarning.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := validate("Precision", yTrue, yPred); err != nil {
		return 0, err
	}
	c := count(yTrue, yPred)
	labels := labelSet(yTrue, yPred)
	sum := 0.0
	for _, label := range labels {
		denom := c.tp[label] + c.fp[label]
		if denom == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted samples for a class", 0))
			continue
		}
		sum += float64(c.tp[label]) / float64(denom)
	}
	return sum / float64(len(labels)), nil
}

// F1 is the macro-averaged harmonic mean of per-class precision and recall.
func F1(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := validate("F1", yTrue, yPred); err != nil {
		return 0, err
	}
	c := count(yTrue, yPred)
	labels := labelSet(yTrue, yPred)
	sum := 0.0
	for _, label := range labels {
		tp := float64(c.tp[label])
		predDenom := tp + float64(c.fp[label])
		trueDenom := tp + float64(c.fn[label])
		if predDenom == 0 || trueDenom == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("f1", "class missing from predictions or ground truth", 0))
			continue
		}
		prec := tp / predDenom
		rec := tp / trueDenom
		if prec+rec > 0 {
			sum += 2 * prec * rec / (prec + rec)
		}
	}
	return sum / float64(len(labels)), nil
}

// Jaccard is the macro-averaged intersection-over-union per class,
// tp / (tp + fp + fn).
func Jaccard(yTrue, yPred *mat.VecDense) (float64, error) {
	if _, err := validate("Jaccard", yTrue, yPred); err != nil {
		return 0, err
	}
	c := count(yTrue, yPred)
	labels := labelSet(yTrue, yPred)
	sum := 0.0
	for _, label := range labels {
		denom := c.tp[label] + c.fp[label] + c.fn[label]
		if denom == 0 {
			errors.Warn(errors.NewUndefinedMetricWarning("jaccard", "class absent from both vectors", 0))
			continue
		}
		sum += float64(c.tp[label]) / float64(denom)
	}
	return sum / float64(len(labels)), nil
}

// CohenKappa is the agreement between predictions and ground truth corrected
// for chance. When chance agreement is total (a single shared class), the
// statistic is undefined; 1 is returned for perfect agreement and 0 otherwise
// with an UndefinedMetricWarning.
func CohenKappa(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("CohenKappa", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	c := count(yTrue, yPred)
	po := float64(c.correct) / float64(n)
	pe := 0.0
	for _, label := range labelSet(yTrue, yPred) {
		pe += float64(c.trueCount[label]) * float64(c.predCount[label])
	}
	pe /= float64(n) * float64(n)

	if math.Abs(1-pe) < 1e-12 {
		result := 0.0
		if po == 1 {
			result = 1.0
		}
		errors.Warn(errors.NewUndefinedMetricWarning("cohen_kappa", "chance agreement is 1", result))
		return result, nil
	}
	return (po - pe) / (1 - pe), nil
}

// MatthewsCorrCoef is the multiclass Matthews correlation coefficient
// (Gorodkin form). A degenerate confusion matrix (single true or predicted
// class) yields 0 with an UndefinedMetricWarning.
func MatthewsCorrCoef(yTrue, yPred *mat.VecDense) (float64, error) {
	n, err := validate("MatthewsCorrCoef", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	c := count(yTrue, yPred)
	s := float64(n)
	correct := float64(c.correct)

	var sumTP, sumPP, sumTT float64
	for _, label := range labelSet(yTrue, yPred) {
		t := float64(c.trueCount[label])
		p := float64(c.predCount[label])
		sumTP += t * p
		sumPP += p * p
		sumTT += t * t
	}

	cov := correct*s - sumTP
	denom := math.Sqrt(s*s-sumPP) * math.Sqrt(s*s-sumTT)
	if denom == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("matthews_corrcoef", "degenerate confusion matrix", 0))
		return 0, nil
	}
	return cov / denom, nil
}
