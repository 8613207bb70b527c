package perceptron

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// TrainStats summarizes one call to Train.
type TrainStats struct {
	// Epochs counts every epoch run, including the final rejected or
	// non-improving one.
	Epochs int

	InitialAccuracy int
	FinalAccuracy   int

	// History holds the accuracy after each committed epoch, in order.
	History []int
}

// Train hill-climbs over perceptron-rule epochs. Each epoch starts from a
// copy of the current state and visits every example once in shuffled
// order, nudging the copy toward the target of each example it gets wrong.
// The copy is committed when its accuracy is at least the current accuracy.
// Training continues only while an epoch strictly improves accuracy.
//
// Examples whose input length is wrong are scored as misses and never
// applied as updates. An empty example set leaves the state unchanged.
func (p *Perceptron) Train(examples []Example, learningRate float64, rng *rand.Rand) TrainStats {
	accuracy := p.BatchAccuracy(examples)
	stats := TrainStats{InitialAccuracy: accuracy, FinalAccuracy: accuracy}
	if len(examples) == 0 {
		return stats
	}

	order := make([]int, len(examples))
	for i := range order {
		order[i] = i
	}

	for {
		next := p.epoch(examples, order, learningRate, rng)
		nextAccuracy := next.BatchAccuracy(examples)
		stats.Epochs++

		delta := nextAccuracy - accuracy
		if delta >= 0 {
			p.bias = next.bias
			p.weights = next.weights
			accuracy = nextAccuracy
			stats.History = append(stats.History, accuracy)
		}
		if delta <= 0 {
			break
		}
	}

	stats.FinalAccuracy = accuracy
	return stats
}

// epoch runs one pass over examples and returns the resulting unit.
// p is not modified.
func (p *Perceptron) epoch(examples []Example, order []int, learningRate float64, rng *rand.Rand) *Perceptron {
	next := NewWithWeights(p.bias, p.weights)

	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	for _, idx := range order {
		ex := examples[idx]
		got, err := next.Evaluate(ex.Input)
		if err != nil || got == ex.Target {
			continue
		}
		step := -learningRate
		if ex.Target {
			step = learningRate
		}
		next.bias += step
		floats.AddScaled(next.weights, step, ex.Input)
	}
	return next
}
