// Package app wires the loader, ensemble and report into the
// train-then-evaluate pipeline.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/abhisek/letterid/internal/config"
	"github.com/abhisek/letterid/internal/dataset"
	"github.com/abhisek/letterid/internal/ensemble"
	"github.com/abhisek/letterid/internal/report"
	"github.com/abhisek/letterid/internal/store"
)

// Options holds the dependencies for a pipeline run.
type Options struct {
	Config config.Config
	Logger *slog.Logger

	// Now is used for the run timestamp and for clock-derived seeds.
	// Nil uses time.Now.
	Now func() time.Time
}

// Outcome is everything a run produced.
type Outcome struct {
	Results  []report.Result
	Summary  report.Summary
	Training *ensemble.TrainSummary
	Run      store.Run
}

// NewRand returns the generator used for a given seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x5851f42d4c957f2d))
}

// Run loads both datasets, trains a fresh ensemble on the training records
// and identifies every test record.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if cfg.TrainPath == "" || cfg.TestPath == "" {
		return nil, fmt.Errorf("both a training and a test dataset are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	started := now()
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(started.UnixNano())
	}

	readOpts := dataset.Options{Delimiter: cfg.Delimiter, AttributeCount: cfg.AttributeCount}
	trainRecs, err := dataset.ReadFile(cfg.TrainPath, readOpts)
	if err != nil {
		return nil, fmt.Errorf("load training data: %w", err)
	}
	testRecs, err := dataset.ReadFile(cfg.TestPath, readOpts)
	if err != nil {
		return nil, fmt.Errorf("load test data: %w", err)
	}
	logger.Info("datasets loaded",
		slog.Int("train", len(trainRecs)),
		slog.Int("test", len(testRecs)),
		slog.Uint64("seed", seed),
	)

	ens, err := ensemble.New(cfg.AttributeCount, NewRand(seed))
	if err != nil {
		return nil, err
	}
	training, err := ens.TrainAll(ctx, dataset.GroupByLabel(trainRecs), ensemble.TrainOptions{
		LearningRate: cfg.LearningRate,
		Workers:      cfg.Workers,
		Logger:       logger,
	})
	if err != nil {
		return nil, err
	}

	results, err := Identify(ens, testRecs)
	if err != nil {
		return nil, err
	}
	summary := report.Summarize(results)

	return &Outcome{
		Results:  results,
		Summary:  summary,
		Training: training,
		Run: store.Run{
			StartedAt:        started.UTC(),
			AttributeCount:   cfg.AttributeCount,
			LearningRate:     cfg.LearningRate,
			Seed:             seed,
			Workers:          cfg.Workers,
			TrainRecords:     len(trainRecs),
			TestRecords:      len(testRecs),
			Correct:          summary.Correct,
			Accuracy:         summary.Accuracy,
			TrainingAccuracy: training.TrainingAccuracy(),
			Epochs:           training.TotalEpochs(),
			TrainDuration:    training.Duration,
		},
	}, nil
}

// Identify runs the ensemble on every record and pairs each guess with the
// record's true label.
func Identify(ens *ensemble.Ensemble, records []dataset.Record) ([]report.Result, error) {
	results := make([]report.Result, 0, len(records))
	for i, rec := range records {
		guess, err := ens.Identify(rec.Attributes)
		if err != nil {
			return nil, fmt.Errorf("identify record %d: %w", i, err)
		}
		results = append(results, report.Result{Actual: rec.Label, Predicted: guess})
	}
	return results, nil
}
