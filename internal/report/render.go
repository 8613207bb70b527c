package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/letterid/internal/letters"
	"github.com/abhisek/letterid/internal/ui/theme"
)

// WriteResultsCSV writes one "actual,predicted,correct" row per result
// after a header row.
func WriteResultsCSV(w io.Writer, results []Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"actual", "predicted", "correct"}); err != nil {
		return err
	}
	for _, r := range results {
		row := []string{r.Actual.String(), r.Predicted.String(), strconv.FormatBool(r.Correct())}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteCSV writes the matrix with a header row of predicted labels
// and one row per actual label.
func (m *ConfusionMatrix) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := []string{"actual"}
	for _, l := range letters.All() {
		header = append(header, l.String())
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for i, l := range letters.All() {
		row := []string{l.String()}
		for j := range letters.Count {
			row = append(row, strconv.Itoa(m[i][j]))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Render formats s for a terminal.
func Render(s Summary) string {
	var b strings.Builder

	b.WriteString(theme.Title.Render("Identification results"))
	b.WriteString("\n\n")
	b.WriteString(field("Records", strconv.Itoa(s.Total)))
	b.WriteString(field("Correct", strconv.Itoa(s.Correct)))
	b.WriteString(theme.Label.Render(fmt.Sprintf("%-20s", "Accuracy")))
	b.WriteString(theme.Score(s.Accuracy).Render(percent(s.Accuracy)))
	b.WriteString("\n")
	b.WriteString(field("Weighted precision", percent(s.WeightedPrecision)))
	b.WriteString(field("Weighted recall", percent(s.WeightedRecall)))
	b.WriteString(field("Recall spread", fmt.Sprintf("%s ± %s", percent(s.RecallMean), percent(s.RecallStdDev))))
	b.WriteString("\n")

	b.WriteString(theme.Label.Render(fmt.Sprintf("%-5s %7s %9s %7s", "Class", "Support", "Precision", "Recall")))
	b.WriteString("\n")
	for _, c := range s.Classes {
		if c.Support == 0 {
			continue
		}
		line := fmt.Sprintf("%-5s %7d %9s ", c.Label, c.Support, percent(c.Precision))
		b.WriteString(line)
		b.WriteString(theme.Score(c.Recall).Render(fmt.Sprintf("%7s", percent(c.Recall))))
		b.WriteString("\n")
	}

	return theme.Card.Render(strings.TrimRight(b.String(), "\n"))
}

func field(name, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		theme.Label.Render(fmt.Sprintf("%-20s", name)),
		theme.Value.Render(value),
	) + "\n"
}

func percent(f float64) string {
	if math.IsNaN(f) {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", f*100)
}
