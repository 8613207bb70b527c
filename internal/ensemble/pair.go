package ensemble

import (
	"fmt"

	"github.com/abhisek/letterid/internal/letters"
)

// PairCount is the number of unordered pairs of distinct labels.
const PairCount = letters.Count * (letters.Count - 1) / 2

// Pair is a canonical unordered pair of distinct labels with Low < High.
type Pair struct {
	Low  letters.Label
	High letters.Label
}

// NewPair validates a and b and returns them in canonical order.
func NewPair(a, b letters.Label) (Pair, error) {
	if err := a.Check(); err != nil {
		return Pair{}, err
	}
	if err := b.Check(); err != nil {
		return Pair{}, err
	}
	if a == b {
		return Pair{}, &ErrSelfComparison{Label: a}
	}
	if b < a {
		a, b = b, a
	}
	return Pair{Low: a, High: b}, nil
}

func (p Pair) String() string {
	return fmt.Sprintf("%s/%s", p.Low, p.High)
}

// AllPairs returns every canonical pair ordered by Low, then High.
func AllPairs() []Pair {
	pairs := make([]Pair, 0, PairCount)
	for _, lo := range letters.All() {
		for hi := lo + 1; hi <= letters.Last; hi++ {
			pairs = append(pairs, Pair{Low: lo, High: hi})
		}
	}
	return pairs
}
