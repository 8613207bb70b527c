package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

// QueryOpts configures run queries with filtering and pagination.
type QueryOpts struct {
	Limit int   // max results (0 = unlimited)
	After int64 // sequence > After
}

// Run records the configuration and outcome of one train-and-evaluate run.
type Run struct {
	ID        uuid.UUID
	Sequence  int64
	StartedAt time.Time

	AttributeCount int
	LearningRate   float64
	Seed           uint64
	Workers        int

	TrainRecords int
	TestRecords  int
	Correct      int
	Accuracy     float64

	// TrainingAccuracy is the pooled pairwise accuracy on the training set.
	TrainingAccuracy float64
	Epochs           int
	TrainDuration    time.Duration
}

// RunRepo persists run history.
type RunRepo interface {
	// Save assigns ID (when zero) and Sequence, then stores run.
	Save(ctx context.Context, run *Run) error

	// List returns runs newest first.
	List(ctx context.Context, opts QueryOpts) ([]Run, error)

	// Get returns the run with id, or nil if none exists.
	Get(ctx context.Context, id uuid.UUID) (*Run, error)
}

var runColumns = []string{
	"id", "sequence", "started_at", "attribute_count", "learning_rate", "seed",
	"workers", "train_records", "test_records", "correct", "accuracy",
	"training_accuracy", "epochs", "train_ms",
}

type runRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

func (r *runRepo) Save(ctx context.Context, run *Run) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	run.Sequence = seq

	query, args := entsql.Dialect(dialect.SQLite).
		Insert("runs").
		Columns(runColumns...).
		Values(
			run.ID.String(), run.Sequence, run.StartedAt.UnixMilli(), run.AttributeCount,
			run.LearningRate, int64(run.Seed), run.Workers, run.TrainRecords, run.TestRecords,
			run.Correct, run.Accuracy, run.TrainingAccuracy, run.Epochs, run.TrainDuration.Milliseconds(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func (r *runRepo) List(ctx context.Context, opts QueryOpts) ([]Run, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(runColumns...).
		From(entsql.Table("runs")).
		OrderBy(entsql.Desc("sequence"))
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (r *runRepo) Get(ctx context.Context, id uuid.UUID) (*Run, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(runColumns...).
		From(entsql.Table("runs")).
		Where(entsql.EQ("id", id.String())).
		Query()

	run, err := scanRun(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(s scanner) (*Run, error) {
	var (
		run       Run
		id        string
		startedAt int64
		seed      int64
		trainMs   int64
	)
	err := s.Scan(
		&id, &run.Sequence, &startedAt, &run.AttributeCount, &run.LearningRate, &seed,
		&run.Workers, &run.TrainRecords, &run.TestRecords, &run.Correct, &run.Accuracy,
		&run.TrainingAccuracy, &run.Epochs, &trainMs,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan run: %w", err)
	}

	run.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("parse run id %q: %w", id, err)
	}
	run.StartedAt = time.UnixMilli(startedAt).UTC()
	run.Seed = uint64(seed)
	run.TrainDuration = time.Duration(trainMs) * time.Millisecond
	return &run, nil
}
