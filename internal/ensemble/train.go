package ensemble

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/abhisek/letterid/internal/letters"
	"github.com/abhisek/letterid/internal/perceptron"
)

// TrainingData maps each class to its example vectors. Missing classes
// contribute no examples.
type TrainingData map[letters.Label][][]float64

// TrainOptions configures TrainAll.
type TrainOptions struct {
	LearningRate float64

	// Workers bounds how many pairs train at once. Values below 1 mean 1.
	// The outcome for a given seed does not depend on Workers.
	Workers int

	// Logger receives progress. Nil uses slog.Default().
	Logger *slog.Logger
}

// PairStats records how one pair's classifier trained.
type PairStats struct {
	Pair     Pair
	Examples int
	perceptron.TrainStats
}

// TrainSummary describes a TrainAll run. Pairs is in canonical pair order.
type TrainSummary struct {
	Pairs    []PairStats
	Duration time.Duration
}

// TotalEpochs sums epochs over every pair.
func (s *TrainSummary) TotalEpochs() int {
	n := 0
	for _, p := range s.Pairs {
		n += p.Epochs
	}
	return n
}

// TrainingAccuracy is the fraction of pairwise examples classified
// correctly after training, pooled over all pairs. Zero examples yields 0.
func (s *TrainSummary) TrainingAccuracy() float64 {
	correct, total := 0, 0
	for _, p := range s.Pairs {
		correct += p.FinalAccuracy
		total += p.Examples
	}
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// TrainAll trains every pair classifier on the examples of its two classes:
// the lower class as false, the higher class as true. Vectors are checked up
// front; a wrong-length vector aborts before any classifier changes.
func (e *Ensemble) TrainAll(ctx context.Context, data TrainingData, opts TrainOptions) (*TrainSummary, error) {
	if err := e.validate(data); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	workers := max(opts.Workers, 1)

	pairs := AllPairs()
	// Child generators are drawn in pair order before any work starts so
	// scheduling cannot change the result.
	rngs := make([]*rand.Rand, len(pairs))
	for i := range pairs {
		rngs[i] = e.childRand()
	}

	logger.Info("training started",
		slog.Int("pairs", len(pairs)),
		slog.Int("workers", workers),
		slog.Float64("learning_rate", opts.LearningRate),
	)
	start := time.Now()

	summary := &TrainSummary{Pairs: make([]PairStats, len(pairs))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, pair := range pairs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			clf, err := e.lookup(pair)
			if err != nil {
				return err
			}
			examples := pairExamples(data, pair, rngs[i])
			stats := clf.Train(examples, opts.LearningRate, rngs[i])
			summary.Pairs[i] = PairStats{Pair: pair, Examples: len(examples), TrainStats: stats}

			logger.Debug("pair trained",
				slog.String("pair", pair.String()),
				slog.Int("examples", len(examples)),
				slog.Int("epochs", stats.Epochs),
				slog.Int("accuracy", stats.FinalAccuracy),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("train pairs: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("train pairs: %w", err)
	}

	summary.Duration = time.Since(start)
	logger.Info("training finished",
		slog.Duration("duration", summary.Duration),
		slog.Int("epochs", summary.TotalEpochs()),
		slog.Float64("training_accuracy", summary.TrainingAccuracy()),
	)
	return summary, nil
}

// validate rejects unknown labels and vectors of the wrong length.
func (e *Ensemble) validate(data TrainingData) error {
	for label, vectors := range data {
		if err := label.Check(); err != nil {
			return err
		}
		for i, v := range vectors {
			if len(v) != e.attributeCount {
				return &ErrTrainingVector{
					Label: label,
					Index: i,
					Err:   &perceptron.ErrLengthMismatch{Want: e.attributeCount, Got: len(v)},
				}
			}
		}
	}
	return nil
}

// pairExamples returns the shuffled binary training set for pair.
func pairExamples(data TrainingData, pair Pair, rng *rand.Rand) []perceptron.Example {
	low, high := data[pair.Low], data[pair.High]
	examples := make([]perceptron.Example, 0, len(low)+len(high))
	for _, v := range low {
		examples = append(examples, perceptron.Example{Input: v, Target: false})
	}
	for _, v := range high {
		examples = append(examples, perceptron.Example{Input: v, Target: true})
	}
	rng.Shuffle(len(examples), func(i, j int) { examples[i], examples[j] = examples[j], examples[i] })
	return examples
}
