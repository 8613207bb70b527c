// Package perceptron implements a single linear threshold unit trained by
// hill-climbing over perceptron-rule epochs.
package perceptron

import (
	"fmt"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// ErrLengthMismatch indicates an input vector whose length differs from the
// classifier's weight count.
type ErrLengthMismatch struct {
	Want int
	Got  int
}

func (e *ErrLengthMismatch) Error() string {
	return fmt.Sprintf("input length %d does not match weight count %d", e.Got, e.Want)
}

// Example is one training input with its desired output.
type Example struct {
	Input  []float64
	Target bool
}

// Perceptron is a linear threshold unit: it fires when
// bias + dot(input, weights) >= 0.
type Perceptron struct {
	bias    float64
	weights []float64
}

// New returns a Perceptron with weightCount weights. The bias and every
// weight are drawn uniformly from (-1, 1).
func New(weightCount int, rng *rand.Rand) *Perceptron {
	p := &Perceptron{
		bias:    smallRandom(rng),
		weights: make([]float64, weightCount),
	}
	for i := range p.weights {
		p.weights[i] = smallRandom(rng)
	}
	return p
}

// NewWithWeights returns a Perceptron with the given state. The weights
// slice is copied.
func NewWithWeights(bias float64, weights []float64) *Perceptron {
	return &Perceptron{bias: bias, weights: append([]float64(nil), weights...)}
}

// WeightCount returns the expected input length.
func (p *Perceptron) WeightCount() int {
	return len(p.weights)
}

// Bias returns the current bias.
func (p *Perceptron) Bias() float64 {
	return p.bias
}

// Weights returns a copy of the current weights.
func (p *Perceptron) Weights() []float64 {
	return append([]float64(nil), p.weights...)
}

// SetState replaces the bias and weights. The weight count cannot change.
func (p *Perceptron) SetState(bias float64, weights []float64) error {
	if len(weights) != len(p.weights) {
		return &ErrLengthMismatch{Want: len(p.weights), Got: len(weights)}
	}
	p.bias = bias
	copy(p.weights, weights)
	return nil
}

// Evaluate reports whether the unit fires for input.
func (p *Perceptron) Evaluate(input []float64) (bool, error) {
	if len(input) != len(p.weights) {
		return false, &ErrLengthMismatch{Want: len(p.weights), Got: len(input)}
	}
	return p.bias+floats.Dot(input, p.weights) >= 0, nil
}

// BatchAccuracy returns how many examples Evaluate gets right. An example
// whose input has the wrong length counts as a miss.
func (p *Perceptron) BatchAccuracy(examples []Example) int {
	correct := 0
	for _, ex := range examples {
		got, err := p.Evaluate(ex.Input)
		if err == nil && got == ex.Target {
			correct++
		}
	}
	return correct
}

// smallRandom returns a value uniformly distributed in (-1, 1).
func smallRandom(rng *rand.Rand) float64 {
	v := rng.Float64()
	if rng.IntN(2) == 0 {
		return -v
	}
	return v
}
