package output

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"splitstep/internal/sims/langevin"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreRunLifecycle(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	cfg := langevin.DefaultConfig()

	rec, err := s.StartRun(ctx, "baseline", cfg.Parameters())
	require.NoError(t, err)
	require.NotEmpty(t, rec.ID())

	in := []langevin.Record{
		{Iteration: 50, Time: 5, Density: 0.8, Wall: time.Millisecond},
		{Iteration: 100, Time: 10, Density: 0.6, Wall: 2 * time.Millisecond},
	}
	for _, r := range in {
		require.NoError(t, rec.Emit(r))
	}
	require.NoError(t, rec.Finish(ctx, langevin.Result{
		Iterations: 100, Converged: true, Time: 10, Density: 0, Elapsed: time.Second,
	}))

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, rec.ID(), runs[0].ID)
	assert.Equal(t, "baseline", runs[0].Label)
	assert.True(t, runs[0].Finished)
	assert.True(t, runs[0].Converged)
	assert.Equal(t, 100, runs[0].Iterations)
	assert.Equal(t, time.Second, runs[0].Elapsed)

	got, err := s.Records(ctx, rec.ID())
	require.NoError(t, err)
	if diff := cmp.Diff(in, got); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}

	snap, err := s.Params(ctx, rec.ID())
	require.NoError(t, err)
	assert.Equal(t, cfg, langevin.ConfigFromSnapshot(snap))
}

func TestStoreUnfinishedRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.StartRun(ctx, "interrupted", langevin.DefaultConfig().Parameters())
	require.NoError(t, err)

	runs, err := s.Runs(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.False(t, runs[0].Finished)
}

func TestStoreUnknownRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	_, err := s.Records(ctx, "missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))
	_, err = s.Params(ctx, "missing")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestStoreRecordsDuringRun(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	cfg := langevin.DefaultConfig()
	cfg.M = 6
	cfg.Workers = 2
	cfg.Timespan = 20

	rec, err := s.StartRun(ctx, "short", cfg.Parameters())
	require.NoError(t, err)
	sim, err := langevin.New(cfg, langevin.WithSinks(rec))
	require.NoError(t, err)
	res, err := sim.Run(ctx)
	require.NoError(t, err)
	require.NoError(t, rec.Finish(ctx, res))

	got, err := s.Records(ctx, rec.ID())
	require.NoError(t, err)
	require.NotEmpty(t, got)
	for _, r := range got {
		assert.Zero(t, r.Iteration%50, "records only at checkpoints")
	}
}
