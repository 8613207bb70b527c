// Package ensemble implements a one-vs-one committee of perceptrons over the
// 26 letter classes. Every unordered pair of classes has its own classifier;
// inference lets each classifier vote and picks the class with the most votes.
package ensemble

import (
	"math/rand/v2"
	"sync"

	"github.com/abhisek/letterid/internal/letters"
	"github.com/abhisek/letterid/internal/perceptron"
)

// Ensemble owns one perceptron per canonical pair. Classifiers live in a
// fixed table indexed by [low][high] ordinal; only cells with low < high are
// populated.
//
// Training must not run concurrently with Identify or with another TrainAll.
type Ensemble struct {
	attributeCount int
	classifiers    [letters.Count][letters.Count]*perceptron.Perceptron

	mu  sync.Mutex // guards rng
	rng *rand.Rand
}

// New builds an ensemble whose classifiers all take attributeCount inputs.
// rng seeds the initial weights and is kept for training shuffles and
// tie-breaks.
func New(attributeCount int, rng *rand.Rand) (*Ensemble, error) {
	if attributeCount <= 0 {
		return nil, &ErrInvalidAttributeCount{Count: attributeCount}
	}
	e := &Ensemble{attributeCount: attributeCount, rng: rng}
	for _, p := range AllPairs() {
		e.classifiers[p.Low.Ordinal()][p.High.Ordinal()] = perceptron.New(attributeCount, rng)
	}
	return e, nil
}

// AttributeCount returns the input vector length every classifier expects.
func (e *Ensemble) AttributeCount() int {
	return e.attributeCount
}

// Len returns the number of stored classifiers.
func (e *Ensemble) Len() int {
	n := 0
	for i := range e.classifiers {
		for j := i + 1; j < letters.Count; j++ {
			if e.classifiers[i][j] != nil {
				n++
			}
		}
	}
	return n
}

// ClassifierFor returns the classifier separating a and b. The order of a
// and b does not matter.
func (e *Ensemble) ClassifierFor(a, b letters.Label) (*perceptron.Perceptron, error) {
	pair, err := NewPair(a, b)
	if err != nil {
		return nil, err
	}
	return e.lookup(pair)
}

func (e *Ensemble) lookup(pair Pair) (*perceptron.Perceptron, error) {
	p := e.classifiers[pair.Low.Ordinal()][pair.High.Ordinal()]
	if p == nil {
		return nil, &ErrNotFound{Pair: pair}
	}
	return p, nil
}

// ClassifiersInvolving returns the classifiers whose pair includes c, ordered
// by the other label.
func (e *Ensemble) ClassifiersInvolving(c letters.Label) ([]*perceptron.Perceptron, error) {
	if err := c.Check(); err != nil {
		return nil, err
	}
	out := make([]*perceptron.Perceptron, 0, letters.Count-1)
	for _, other := range letters.All() {
		if other == c {
			continue
		}
		p, err := e.ClassifierFor(c, other)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// childRand derives an independent generator from the ensemble generator.
func (e *Ensemble) childRand() *rand.Rand {
	e.mu.Lock()
	defer e.mu.Unlock()
	return rand.New(rand.NewPCG(e.rng.Uint64(), e.rng.Uint64()))
}

func (e *Ensemble) intN(n int) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng.IntN(n)
}
