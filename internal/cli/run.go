package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/talgya/market-sim/internal/engine"
	"github.com/talgya/market-sim/internal/metrics"
	"github.com/talgya/market-sim/internal/persistence"
	"github.com/talgya/market-sim/internal/scenario"
	"github.com/talgya/market-sim/internal/tracelog"
)

func newRunCommand(a *app) *cobra.Command {
	var (
		scenarioPath string
		periods      int
		interval     time.Duration
		quiet        bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Simulate a market",
		Long: `Simulate a market scenario and print its status after every period,
followed by a performance report.

Firms whose parameters are invalid are reported and left out; the run
continues with the rest. Ctrl+C stops the run after the current period.

Examples:
  marketsim run
  marketsim run --scenario scenario.yaml --periods 24 --interval 500ms`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sim := a.cfg.Simulation
			if cmd.Flags().Changed("scenario") {
				sim.Scenario = scenarioPath
			}
			if cmd.Flags().Changed("periods") {
				sim.Periods = periods
			}
			if cmd.Flags().Changed("interval") {
				sim.Interval = interval
			}
			if sim.Periods < 0 {
				return errors.New("--periods must not be negative")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return a.run(ctx, cmd.OutOrStdout(), sim.Scenario, sim.Periods, sim.Interval, !quiet)
		},
	}

	cmd.Flags().StringVar(&scenarioPath, "scenario", "", "Scenario file (default: built-in three-firm oligopoly)")
	cmd.Flags().IntVar(&periods, "periods", 0, "Periods to simulate (default: the scenario's max_periods)")
	cmd.Flags().DurationVar(&interval, "interval", 0, "Minimum wall time between periods")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the final report")

	return cmd
}

func loadScenario(path string) (*scenario.Document, string, error) {
	if path == "" {
		return scenario.Default(), "builtin", nil
	}
	doc, err := scenario.Load(path)
	return doc, path, err
}

// run simulates one scenario and feeds every enabled reporting sink.
func (a *app) run(ctx context.Context, out io.Writer, scenarioPath string, periods int, interval time.Duration, status bool) error {
	doc, name, err := loadScenario(scenarioPath)
	if err != nil {
		return err
	}

	m, rejected := doc.Build()
	for _, r := range rejected {
		fmt.Fprintf(out, "Error creating firm %s: %v\n", r.Name, r.Err)
	}
	if len(m.Firms) == 0 {
		return errors.New("no valid firms in scenario")
	}
	if periods == 0 {
		periods = m.MaxPeriods
	}

	runID := uuid.NewString()
	sinks, err := a.openSinks(runID, name, m)
	if err != nil {
		return err
	}
	defer sinks.close()

	r := engine.NewRunner(m, periods)
	r.Interval = interval
	r.OnPeriod = func(res engine.PeriodResult, m *engine.Market) {
		if status {
			printPeriodStatus(out, res, m)
		}
		sinks.observe(res, m)
	}

	slog.Info("run started", "run", runID, "scenario", name)
	done, err := r.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if err != nil {
		fmt.Fprintf(out, "\nStopped after %d of %d periods.\n", done, periods)
	}

	sinks.finish(m, done)
	printReport(out, runID, m)
	return nil
}

// sinks are the optional reporting outputs of a run. A sink that fails
// mid-run is logged and dropped; the simulation itself never depends on one.
type sinks struct {
	runID        string
	store        *persistence.DB
	trace        *tracelog.Writer
	collector    *metrics.Collector
	textfilePath string
}

func (a *app) openSinks(runID, scenarioName string, m *engine.Market) (*sinks, error) {
	s := &sinks{runID: runID}

	if a.cfg.Store.Enabled {
		db, err := persistence.Open(a.cfg.Store.Path)
		if err != nil {
			return nil, fmt.Errorf("open run store: %w", err)
		}
		if _, err := db.BeginRun(runID, scenarioName, m); err != nil {
			db.Close()
			return nil, err
		}
		s.store = db
	}

	if a.cfg.Trace.Enabled {
		w, err := tracelog.Create(a.cfg.Trace.Dir, runID)
		if err != nil {
			s.close()
			return nil, fmt.Errorf("create trace: %w", err)
		}
		s.trace = w
	}

	if a.cfg.Metrics.Enabled {
		s.collector = metrics.NewCollector()
		s.textfilePath = a.cfg.Metrics.TextfilePath
	}

	return s, nil
}

func (s *sinks) observe(res engine.PeriodResult, m *engine.Market) {
	if s.store != nil {
		if err := s.store.SavePeriod(s.runID, res, m); err != nil {
			slog.Error("save period failed, disabling run store", "period", res.Period, "error", err)
			s.store.Close()
			s.store = nil
		}
	}
	if s.trace != nil {
		if err := s.trace.Write(tracelog.NewRecord(s.runID, res, m)); err != nil {
			slog.Error("trace write failed, disabling trace", "period", res.Period, "error", err)
			s.trace.Close()
			s.trace = nil
		}
	}
	if s.collector != nil {
		s.collector.Observe(res, m)
		if err := s.collector.WriteTextfile(s.textfilePath); err != nil {
			slog.Error("metrics textfile write failed", "path", s.textfilePath, "error", err)
		}
	}
}

func (s *sinks) finish(m *engine.Market, periods int) {
	if s.store != nil {
		if err := s.store.FinishRun(s.runID, m, periods); err != nil {
			slog.Error("final save failed", "run", s.runID, "error", err)
		}
	}
}

func (s *sinks) close() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
	if s.trace != nil {
		if err := s.trace.Close(); err != nil {
			slog.Error("close trace failed", "error", err)
		}
		s.trace = nil
	}
}
