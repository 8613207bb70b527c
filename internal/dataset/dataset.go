// Package dataset reads and writes delimited letter records of the form
// "label,attr1,...,attrN".
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/abhisek/letterid/internal/ensemble"
	"github.com/abhisek/letterid/internal/letters"
)

// DefaultDelimiter separates fields in a record.
const DefaultDelimiter = ","

// Record is one labeled attribute vector.
type Record struct {
	Label      letters.Label
	Attributes []float64
}

// ErrParse reports a malformed record with its 1-based line number.
type ErrParse struct {
	Line int
	Err  error
}

func (e *ErrParse) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *ErrParse) Unwrap() error { return e.Err }

// Options configures Read.
type Options struct {
	Delimiter string

	// AttributeCount, when positive, is the required number of attributes
	// per record.
	AttributeCount int
}

// Read parses records from r. Blank lines are skipped.
func Read(r io.Reader, opts Options) ([]Record, error) {
	delim := opts.Delimiter
	if delim == "" {
		delim = DefaultDelimiter
	}

	var records []Record
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		rec, err := parseRecord(text, delim, opts.AttributeCount)
		if err != nil {
			return nil, &ErrParse{Line: line, Err: err}
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan records: %w", err)
	}
	return records, nil
}

// ReadFile opens path and parses its records.
func ReadFile(path string, opts Options) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	records, err := Read(f, opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return records, nil
}

func parseRecord(text, delim string, want int) (Record, error) {
	fields := strings.Split(text, delim)
	label, err := letters.Parse(fields[0])
	if err != nil {
		return Record{}, err
	}
	attrs := make([]float64, len(fields)-1)
	for i, f := range fields[1:] {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return Record{}, fmt.Errorf("attribute %d: %w", i+1, err)
		}
		attrs[i] = v
	}
	if len(attrs) == 0 {
		return Record{}, fmt.Errorf("record has no attributes")
	}
	if want > 0 && len(attrs) != want {
		return Record{}, fmt.Errorf("got %d attributes, want %d", len(attrs), want)
	}
	return Record{Label: label, Attributes: attrs}, nil
}

// Format renders rec as a delimited line without a trailing newline.
func Format(rec Record, delim string) string {
	if delim == "" {
		delim = DefaultDelimiter
	}
	var b strings.Builder
	b.WriteString(rec.Label.String())
	for _, v := range rec.Attributes {
		b.WriteString(delim)
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return b.String()
}

// Write renders records to w, one per line.
func Write(w io.Writer, records []Record, delim string) error {
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		if _, err := bw.WriteString(Format(rec, delim) + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteFile writes records to path, replacing any existing file.
func WriteFile(path string, records []Record, delim string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, records, delim); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// GroupByLabel collects attribute vectors per class, preserving input order.
func GroupByLabel(records []Record) ensemble.TrainingData {
	data := make(ensemble.TrainingData)
	for _, rec := range records {
		data[rec.Label] = append(data[rec.Label], rec.Attributes)
	}
	return data
}
