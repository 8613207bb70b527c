package letters

import (
	"fmt"
	"strings"
)

// Label is one of the 26 uppercase letter classes.
type Label byte

const (
	First Label = 'A'
	Last  Label = 'Z'

	// Count is the size of the alphabet.
	Count = int(Last-First) + 1
)

// ErrLabelOutOfRange indicates a label outside A-Z.
type ErrLabelOutOfRange struct {
	Label Label
}

func (e *ErrLabelOutOfRange) Error() string {
	return fmt.Sprintf("class label %q out of range %c-%c", rune(e.Label), First, Last)
}

// Valid reports whether l is part of the alphabet.
func (l Label) Valid() bool {
	return l >= First && l <= Last
}

// Check returns ErrLabelOutOfRange if l is not valid.
func (l Label) Check() error {
	if !l.Valid() {
		return &ErrLabelOutOfRange{Label: l}
	}
	return nil
}

// Ordinal returns the zero-based position of l in the alphabet.
// The result is meaningless for invalid labels.
func (l Label) Ordinal() int {
	return int(l - First)
}

func (l Label) String() string {
	return string(rune(l))
}

// FromOrdinal returns the label at zero-based position i.
func FromOrdinal(i int) (Label, error) {
	if i < 0 || i >= Count {
		return 0, &ErrLabelOutOfRange{Label: Label(int(First) + i)}
	}
	return First + Label(i), nil
}

// Parse reads a single-letter label. Surrounding whitespace is ignored;
// lowercase letters are not accepted.
func Parse(s string) (Label, error) {
	s = strings.TrimSpace(s)
	if len(s) != 1 {
		return 0, fmt.Errorf("parse label %q: want a single letter", s)
	}
	l := Label(s[0])
	if err := l.Check(); err != nil {
		return 0, err
	}
	return l, nil
}

// All returns every label in canonical order.
func All() []Label {
	out := make([]Label, Count)
	for i := range out {
		out[i] = First + Label(i)
	}
	return out
}
