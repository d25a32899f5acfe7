package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/market-sim/internal/engine"
)

func TestRunnerSimulatesEveryPeriod(t *testing.T) {
	m := referenceMarket(t)
	r := engine.NewRunner(m, 6)

	var periods []int
	r.OnPeriod = func(res engine.PeriodResult, _ *engine.Market) {
		periods = append(periods, res.Period)
	}

	done, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 6, done)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, periods)
	assert.Equal(t, 6, m.CurrentPeriod)
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	m := referenceMarket(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	done, err := engine.NewRunner(m, 10).Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, done)
	assert.Zero(t, m.CurrentPeriod)
}

func TestRunnerCancelMidRun(t *testing.T) {
	m := referenceMarket(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := engine.NewRunner(m, 10)
	r.OnPeriod = func(res engine.PeriodResult, _ *engine.Market) {
		if res.Period == 2 {
			cancel()
		}
	}

	done, err := r.Run(ctx)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, done)
	assert.Equal(t, 3, m.CurrentPeriod)
}

func TestRunnerPacesPeriods(t *testing.T) {
	m := referenceMarket(t)
	r := engine.NewRunner(m, 3)
	r.Interval = 10 * time.Millisecond

	start := time.Now()
	done, err := r.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, done)
	// The first period runs on the initial token; the other two wait.
	assert.GreaterOrEqual(t, time.Since(start), 15*time.Millisecond)
}
