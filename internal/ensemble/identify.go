package ensemble

import (
	"github.com/abhisek/letterid/internal/letters"
	"github.com/abhisek/letterid/internal/perceptron"
)

// Tally holds vote counts indexed by label ordinal.
type Tally [letters.Count]int

// Votes returns the count for l.
func (t *Tally) Votes(l letters.Label) int {
	return t[l.Ordinal()]
}

// Total returns the number of votes cast.
func (t *Tally) Total() int {
	n := 0
	for _, v := range t {
		n += v
	}
	return n
}

// Leaders returns every label holding the maximum vote count, in canonical
// order.
func (t *Tally) Leaders() []letters.Label {
	best := -1
	var leaders []letters.Label
	for i, v := range t {
		switch {
		case v > best:
			best = v
			leaders = append(leaders[:0], letters.First+letters.Label(i))
		case v == best:
			leaders = append(leaders, letters.First+letters.Label(i))
		}
	}
	return leaders
}

// Votes runs every classifier on input. A firing classifier votes for the
// higher label of its pair, otherwise for the lower one.
func (e *Ensemble) Votes(input []float64) (Tally, error) {
	var t Tally
	if len(input) != e.attributeCount {
		return t, &perceptron.ErrLengthMismatch{Want: e.attributeCount, Got: len(input)}
	}
	for _, pair := range AllPairs() {
		clf, err := e.lookup(pair)
		if err != nil {
			return Tally{}, err
		}
		fires, err := clf.Evaluate(input)
		if err != nil {
			return Tally{}, err
		}
		if fires {
			t[pair.High.Ordinal()]++
		} else {
			t[pair.Low.Ordinal()]++
		}
	}
	return t, nil
}

// Identify returns the label with the most votes for input. Ties are
// broken uniformly at random, so repeated calls may differ when several
// labels share the lead.
func (e *Ensemble) Identify(input []float64) (letters.Label, error) {
	t, err := e.Votes(input)
	if err != nil {
		return 0, err
	}
	leaders := t.Leaders()
	if len(leaders) == 1 {
		return leaders[0], nil
	}
	return leaders[e.intN(len(leaders))], nil
}
