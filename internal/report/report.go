// Package report scores identification results: overall accuracy, the
// confusion matrix, and per-class precision and recall.
package report

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/abhisek/letterid/internal/letters"
)

// Result pairs a record's true label with the label the ensemble chose.
type Result struct {
	Actual    letters.Label
	Predicted letters.Label
}

// Correct reports whether the prediction matches.
func (r Result) Correct() bool {
	return r.Actual == r.Predicted
}

// Accuracy returns the fraction of correct results. An empty list yields 0.
func Accuracy(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	correct := 0
	for _, r := range results {
		if r.Correct() {
			correct++
		}
	}
	return float64(correct) / float64(len(results))
}

// ConfusionMatrix counts results by [actual][predicted] ordinal. Results
// with labels outside the alphabet are ignored.
type ConfusionMatrix [letters.Count][letters.Count]int

// NewConfusionMatrix tallies results.
func NewConfusionMatrix(results []Result) *ConfusionMatrix {
	var m ConfusionMatrix
	for _, r := range results {
		if !r.Actual.Valid() || !r.Predicted.Valid() {
			continue
		}
		m[r.Actual.Ordinal()][r.Predicted.Ordinal()]++
	}
	return &m
}

// Count returns how many records of class actual were identified as
// predicted.
func (m *ConfusionMatrix) Count(actual, predicted letters.Label) int {
	return m[actual.Ordinal()][predicted.Ordinal()]
}

// ClassMetrics holds one-vs-rest scores for a class. Precision, Recall and
// F1 are NaN when undefined.
type ClassMetrics struct {
	Label     letters.Label
	Support   int
	TP        int
	FP        int
	FN        int
	Precision float64
	Recall    float64
	F1        float64
}

// PerClass returns metrics for every label in canonical order.
func (m *ConfusionMatrix) PerClass() []ClassMetrics {
	out := make([]ClassMetrics, letters.Count)
	for j, l := range letters.All() {
		cm := ClassMetrics{Label: l, TP: m[j][j]}
		for i := range letters.Count {
			cm.Support += m[j][i]
			if i != j {
				cm.FN += m[j][i]
				cm.FP += m[i][j]
			}
		}
		cm.Precision = ratio(cm.TP, cm.TP+cm.FP)
		cm.Recall = ratio(cm.TP, cm.TP+cm.FN)
		if math.IsNaN(cm.Precision) || math.IsNaN(cm.Recall) || cm.Precision+cm.Recall == 0 {
			cm.F1 = math.NaN()
		} else {
			cm.F1 = 2 * cm.Precision * cm.Recall / (cm.Precision + cm.Recall)
		}
		out[j] = cm
	}
	return out
}

func ratio(num, den int) float64 {
	if den == 0 {
		return math.NaN()
	}
	return float64(num) / float64(den)
}

// Summary aggregates a result list.
type Summary struct {
	Total    int
	Correct  int
	Accuracy float64

	// Support-weighted means over classes with at least one record.
	WeightedPrecision float64
	WeightedRecall    float64

	// Spread of recall across classes with at least one record.
	RecallMean   float64
	RecallStdDev float64

	Classes []ClassMetrics
}

// Summarize computes accuracy and per-class statistics for results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results), Accuracy: Accuracy(results)}
	for _, r := range results {
		if r.Correct() {
			s.Correct++
		}
	}
	s.Classes = NewConfusionMatrix(results).PerClass()

	var recalls, recallWeights, precisions, precisionWeights []float64
	for _, c := range s.Classes {
		if c.Support == 0 {
			continue
		}
		recalls = append(recalls, c.Recall)
		recallWeights = append(recallWeights, float64(c.Support))
		if !math.IsNaN(c.Precision) {
			precisions = append(precisions, c.Precision)
			precisionWeights = append(precisionWeights, float64(c.Support))
		}
	}
	if len(recalls) > 0 {
		s.WeightedRecall = stat.Mean(recalls, recallWeights)
		s.RecallMean = stat.Mean(recalls, nil)
	}
	if len(recalls) > 1 {
		s.RecallStdDev = stat.StdDev(recalls, nil)
	}
	if len(precisions) > 0 {
		s.WeightedPrecision = stat.Mean(precisions, precisionWeights)
	}
	return s
}
