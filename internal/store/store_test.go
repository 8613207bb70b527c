package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func testRun(accuracy float64) *Run {
	return &Run{
		StartedAt:        time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		AttributeCount:   16,
		LearningRate:     0.2,
		Seed:             1<<63 + 5,
		Workers:          4,
		TrainRecords:     9990,
		TestRecords:      10010,
		Correct:          7000,
		Accuracy:         accuracy,
		TrainingAccuracy: 0.97,
		Epochs:           1234,
		TrainDuration:    2500 * time.Millisecond,
	}
}

func TestRunSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	run := testRun(0.7)
	require.NoError(t, repo.Save(ctx, run))
	require.NotEqual(t, uuid.Nil, run.ID)
	assert.Equal(t, int64(1), run.Sequence)

	got, err := repo.Get(ctx, run.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, run.StartedAt.Equal(got.StartedAt), "started_at = %v, want %v", got.StartedAt, run.StartedAt)
	got.StartedAt = run.StartedAt
	assert.Equal(t, *run, *got)
}

func TestRunGet_Missing(t *testing.T) {
	s := openTestStore(t)
	got, err := s.RunRepo().Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRunList(t *testing.T) {
	s := openTestStore(t)
	repo := s.RunRepo()
	ctx := context.Background()

	runs, err := repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, runs)

	for _, acc := range []float64{0.1, 0.2, 0.3} {
		require.NoError(t, repo.Save(ctx, testRun(acc)))
	}

	runs, err = repo.List(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, int64(3), runs[0].Sequence)
	assert.Equal(t, 0.3, runs[0].Accuracy)
	assert.Equal(t, 0.1, runs[2].Accuracy)

	runs, err = repo.List(ctx, QueryOpts{Limit: 2})
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, int64(2), runs[1].Sequence)

	runs, err = repo.List(ctx, QueryOpts{After: 2})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, int64(3), runs[0].Sequence)
}

func TestSequenceSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.RunRepo().Save(ctx, testRun(0.5)))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	run := testRun(0.6)
	require.NoError(t, s.RunRepo().Save(ctx, run))
	assert.Equal(t, int64(2), run.Sequence)
}

func TestEnsureDir(t *testing.T) {
	p := filepath.Join(t.TempDir(), "a", "b", "c.db")
	require.NoError(t, EnsureDir(p))
	assert.DirExists(t, filepath.Dir(p))
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "x", "env.db")
	t.Setenv("LETTERID_DB", p)
	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
}
