package sweep

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"splitstep/internal/sims/langevin"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func smallBase() langevin.Config {
	cfg := langevin.DefaultConfig()
	cfg.M = 6
	cfg.Workers = 2
	cfg.Timespan = 20
	return cfg
}

func TestValues(t *testing.T) {
	assert.Nil(t, Values(1, 2, 0))
	assert.Equal(t, []float64{1}, Values(1, 2, 1))
	assert.Equal(t, []float64{1, 1.5, 2}, Values(1, 2, 3))
	assert.Equal(t, []float64{1.8}, Values(1.8, 1.8, 4))
}

func TestRunSortsByA(t *testing.T) {
	var (
		mu   sync.Mutex
		seen = map[float64]int{}
	)
	attach := func(_ context.Context, cfg langevin.Config) ([]langevin.RecordSink, func(langevin.Result) error, error) {
		a := cfg.Params.A
		sink := langevin.RecordFunc(func(langevin.Record) error {
			mu.Lock()
			seen[a]++
			mu.Unlock()
			return nil
		})
		return []langevin.RecordSink{sink}, nil, nil
	}

	out, err := Run(context.Background(), Options{
		Base:     smallBase(),
		Values:   []float64{3, -5},
		Parallel: 2,
		Attach:   attach,
		Logger:   zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	require.Len(t, out, 2)

	assert.Equal(t, -5.0, out[0].A)
	assert.True(t, out[0].Converged, "strong decay is absorbed")
	assert.Equal(t, 3.0, out[1].A)
	assert.False(t, out[1].Converged, "strong growth stays active")
	assert.Greater(t, out[1].Density, 0.0)
	assert.Positive(t, seen[3.0])

	lo, hi, ok := Critical(out)
	require.True(t, ok)
	assert.Equal(t, -5.0, lo)
	assert.Equal(t, 3.0, hi)
}

func TestRunFinishHook(t *testing.T) {
	var results []langevin.Result
	attach := func(context.Context, langevin.Config) ([]langevin.RecordSink, func(langevin.Result) error, error) {
		return nil, func(r langevin.Result) error {
			results = append(results, r)
			return nil
		}, nil
	}
	_, err := Run(context.Background(), Options{
		Base:     smallBase(),
		Values:   []float64{2},
		Parallel: 1,
		Attach:   attach,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, 199, results[0].Iterations)
}

func TestRunAttachError(t *testing.T) {
	boom := errors.New("boom")
	attach := func(context.Context, langevin.Config) ([]langevin.RecordSink, func(langevin.Result) error, error) {
		return nil, nil, boom
	}
	_, err := Run(context.Background(), Options{
		Base:     smallBase(),
		Values:   []float64{1, 2},
		Parallel: 2,
		Attach:   attach,
	})
	assert.ErrorIs(t, err, boom)
}

func TestRunOneFinishesWhenSimulationFails(t *testing.T) {
	finished := 0
	attach := func(context.Context, langevin.Config) ([]langevin.RecordSink, func(langevin.Result) error, error) {
		return nil, func(langevin.Result) error {
			finished++
			return nil
		}, nil
	}
	cfg := smallBase()
	cfg.Workers = 3

	_, err := runOne(context.Background(), cfg, attach, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, langevin.ErrInvalidConfig)
	assert.Equal(t, 1, finished)
}

func TestRunValidatesFirst(t *testing.T) {
	base := smallBase()
	base.Workers = 3

	_, err := Run(context.Background(), Options{Base: base, Values: []float64{1}})
	assert.ErrorIs(t, err, langevin.ErrInvalidConfig)

	_, err = Run(context.Background(), Options{Base: smallBase()})
	assert.ErrorIs(t, err, ErrNoValues)

	_, err = Run(context.Background(), Options{Base: smallBase(), Values: []float64{2, 1, 2}})
	assert.ErrorIs(t, err, ErrDuplicateValue)
}

func TestCriticalWithoutBracket(t *testing.T) {
	_, _, ok := Critical([]Outcome{{A: 1, Result: langevin.Result{Converged: false}}})
	assert.False(t, ok)
	_, _, ok = Critical([]Outcome{{A: 1, Result: langevin.Result{Converged: true}}})
	assert.False(t, ok)
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTable(&buf, []Outcome{
		{A: 1.5, Result: langevin.Result{Converged: true, Time: 12.5}},
		{A: 2, Result: langevin.Result{Time: 20, Density: 0.75}},
	})
	require.NoError(t, err)

	out := buf.String()
	for _, want := range []string{"converged", "1.5", "true", "12.5", "0.75"} {
		assert.Contains(t, out, want)
	}
}
