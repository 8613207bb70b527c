package report

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []Result {
	return []Result{
		{Actual: 'A', Predicted: 'A'},
		{Actual: 'A', Predicted: 'A'},
		{Actual: 'A', Predicted: 'B'},
		{Actual: 'B', Predicted: 'B'},
		{Actual: 'C', Predicted: 'A'},
	}
}

func TestAccuracy(t *testing.T) {
	assert.InDelta(t, 0.6, Accuracy(sampleResults()), 1e-9)
	assert.Equal(t, 0.0, Accuracy(nil))
	assert.Equal(t, 1.0, Accuracy([]Result{{Actual: 'Z', Predicted: 'Z'}}))
}

func TestConfusionMatrix(t *testing.T) {
	m := NewConfusionMatrix(append(sampleResults(), Result{Actual: '?', Predicted: 'A'}))
	assert.Equal(t, 2, m.Count('A', 'A'))
	assert.Equal(t, 1, m.Count('A', 'B'))
	assert.Equal(t, 1, m.Count('C', 'A'))
	assert.Equal(t, 0, m.Count('B', 'A'))
}

func TestPerClass(t *testing.T) {
	classes := NewConfusionMatrix(sampleResults()).PerClass()
	require.Len(t, classes, 26)

	a := classes[0]
	assert.Equal(t, 3, a.Support)
	assert.Equal(t, 2, a.TP)
	assert.Equal(t, 1, a.FP)
	assert.Equal(t, 1, a.FN)
	assert.InDelta(t, 2.0/3, a.Precision, 1e-9)
	assert.InDelta(t, 2.0/3, a.Recall, 1e-9)
	assert.InDelta(t, 2.0/3, a.F1, 1e-9)

	b := classes[1]
	assert.InDelta(t, 0.5, b.Precision, 1e-9)
	assert.InDelta(t, 1.0, b.Recall, 1e-9)

	c := classes[2]
	assert.True(t, math.IsNaN(c.Precision))
	assert.Equal(t, 0.0, c.Recall)
	assert.True(t, math.IsNaN(c.F1))

	z := classes[25]
	assert.Equal(t, 0, z.Support)
	assert.True(t, math.IsNaN(z.Recall))
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleResults())
	assert.Equal(t, 5, s.Total)
	assert.Equal(t, 3, s.Correct)
	assert.InDelta(t, 0.6, s.Accuracy, 1e-9)

	// Recalls over supported classes: A 2/3, B 1, C 0.
	assert.InDelta(t, (2.0/3+1+0)/3, s.RecallMean, 1e-9)
	assert.InDelta(t, (3*(2.0/3)+1*1+1*0)/5, s.WeightedRecall, 1e-9)
	assert.Positive(t, s.RecallStdDev)
	// C has no predictions, so only A and B count toward precision.
	assert.InDelta(t, (3*(2.0/3)+1*0.5)/4, s.WeightedPrecision, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	s := Summarize(nil)
	assert.Equal(t, 0, s.Total)
	assert.Equal(t, 0.0, s.Accuracy)
	assert.Equal(t, 0.0, s.RecallStdDev)
}

func TestWriteResultsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteResultsCSV(&buf, sampleResults()[2:4]))
	assert.Equal(t, "actual,predicted,correct\nA,B,false\nB,B,true\n", buf.String())
}

func TestConfusionMatrix_WriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewConfusionMatrix(sampleResults()).WriteCSV(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 27)
	assert.True(t, strings.HasPrefix(lines[0], "actual,A,B,C,"))
	assert.True(t, strings.HasPrefix(lines[1], "A,2,1,0,"))
	assert.True(t, strings.HasPrefix(lines[3], "C,1,0,0,"))
}

func TestRender(t *testing.T) {
	out := Render(Summarize(sampleResults()))
	assert.Contains(t, out, "Identification results")
	assert.Contains(t, out, "60.0%")
}
