package engine

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Runner drives a market through a fixed number of periods.
type Runner struct {
	Market   *Market
	Periods  int           // Periods to simulate
	Interval time.Duration // Minimum wall time between periods; 0 runs flat out

	// OnPeriod, when set, is called after every simulated period.
	OnPeriod func(res PeriodResult, m *Market)
}

// NewRunner creates a runner for periods periods with no pacing.
func NewRunner(m *Market, periods int) *Runner {
	return &Runner{
		Market:  m,
		Periods: periods,
	}
}

// Run simulates the configured periods in order and returns how many completed.
// It stops early only when ctx is done.
func (r *Runner) Run(ctx context.Context) (int, error) {
	var limiter *rate.Limiter
	if r.Interval > 0 {
		limiter = rate.NewLimiter(rate.Every(r.Interval), 1)
	}

	slog.Info("simulation started",
		"periods", r.Periods,
		"firms", len(r.Market.Firms),
		"start_period", r.Market.CurrentPeriod,
		"interval", r.Interval,
	)

	for done := 0; done < r.Periods; done++ {
		if limiter != nil {
			if err := limiter.Wait(ctx); err != nil {
				slog.Info("simulation interrupted", "completed", done, "error", err)
				return done, err
			}
		} else if err := ctx.Err(); err != nil {
			slog.Info("simulation interrupted", "completed", done, "error", err)
			return done, err
		}

		res := r.Market.SimulatePeriod()
		if r.OnPeriod != nil {
			r.OnPeriod(res, r.Market)
		}
	}

	slog.Info("simulation finished",
		"periods", r.Periods,
		"current_period", r.Market.CurrentPeriod,
		"total_market_value", r.Market.TotalMarketValue,
		"phase", r.Market.MarketPhase(),
	)
	return r.Periods, nil
}
