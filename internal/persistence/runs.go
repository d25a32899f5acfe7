package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/talgya/market-sim/internal/engine"
)

// Run is one simulation run.
type Run struct {
	ID               string          `db:"id"`
	StartedAt        time.Time       `db:"-"`
	Scenario         string          `db:"scenario"`
	MarketType       string          `db:"market_type"`
	Firms            int             `db:"firms"`
	Periods          int             `db:"periods"`
	TotalMarketValue decimal.Decimal `db:"total_market_value"`
	Phase            string          `db:"phase"`

	StartedUnix int64 `db:"started_at"`
}

// PricePoint is one period's recorded prices.
type PricePoint struct {
	Period        int             `db:"period"`
	SnapshotPrice decimal.Decimal `db:"snapshot_price"`
	ClearingPrice decimal.Decimal `db:"clearing_price"`
	Supply        float64         `db:"supply"`
	MarketValue   decimal.Decimal `db:"market_value"`
}

// FirmPeriod is one firm's row for one period.
type FirmPeriod struct {
	Firm       string          `db:"firm"`
	Period     int             `db:"period"`
	Production float64         `db:"production"`
	Executed   bool            `db:"executed"`
	Revenue    decimal.Decimal `db:"revenue"`
	Cost       decimal.Decimal `db:"cost"`
	Profit     decimal.Decimal `db:"profit"`
	Capital    decimal.Decimal `db:"capital"`
	Inventory  float64         `db:"inventory"`
	Capacity   float64         `db:"capacity"`
	Efficiency float64         `db:"efficiency"`
}

// Money rounds an amount to cents.
func Money(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// BeginRun records a new run for m and returns its ID. A fresh ID is
// generated when id is empty.
func (db *DB) BeginRun(id, scenario string, m *engine.Market) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	_, err := db.conn.Exec(`INSERT INTO runs
		(id, started_at, scenario, market_type, firms)
		VALUES (?, ?, ?, ?, ?)`,
		id, time.Now().Unix(), scenario, m.Type, len(m.Firms),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// SavePeriod appends the prices and every firm's row for one simulated
// period. Firm state columns are read from m as it stands after the period.
func (db *DB) SavePeriod(runID string, res engine.PeriodResult, m *engine.Market) error {
	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`INSERT INTO prices
		(run_id, period, snapshot_price, clearing_price, supply, market_value)
		VALUES (?, ?, ?, ?, ?, ?)`,
		runID, res.Period, Money(res.SnapshotPrice), Money(res.ClearingPrice),
		res.ClearingSupply, Money(res.MarketValue),
	)
	if err != nil {
		return fmt.Errorf("insert price %d: %w", res.Period, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO firm_periods
		(run_id, firm, period, production, executed, revenue, cost, profit,
		 capital, inventory, capacity, efficiency)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, fp := range res.Firms {
		f, ok := m.Firm(fp.Name)
		if !ok {
			return fmt.Errorf("firm %q not in market", fp.Name)
		}
		hist := m.FirmMetrics[fp.Name]
		profit := hist.Profits[len(hist.Profits)-1]

		_, err := stmt.Exec(
			runID, fp.Name, res.Period, fp.Decided, fp.Executed,
			Money(fp.Revenue), Money(fp.ProductionCost), Money(profit),
			Money(f.Capital), f.Inventory.Stock(), f.Production.Capacity, f.Production.Efficiency,
		)
		if err != nil {
			return fmt.Errorf("insert firm period %s/%d: %w", fp.Name, res.Period, err)
		}
	}

	return tx.Commit()
}

// FinishRun stores the run's closing totals.
func (db *DB) FinishRun(runID string, m *engine.Market, periods int) error {
	res, err := db.conn.Exec(`UPDATE runs
		SET periods = ?, total_market_value = ?, phase = ?
		WHERE id = ?`,
		periods, Money(m.TotalMarketValue), string(m.MarketPhase()), runID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("run %s not found", runID)
	}
	slog.Info("run saved", "run", runID, "periods", periods)
	return nil
}

// PriceHistory returns a run's recorded prices in period order.
func (db *DB) PriceHistory(runID string) ([]PricePoint, error) {
	var points []PricePoint
	err := db.conn.Select(&points, `SELECT period, snapshot_price, clearing_price, supply, market_value
		FROM prices WHERE run_id = ? ORDER BY period`, runID)
	return points, err
}

// FirmPeriods returns one firm's rows for a run in period order.
func (db *DB) FirmPeriods(runID, firm string) ([]FirmPeriod, error) {
	var rows []FirmPeriod
	err := db.conn.Select(&rows, `SELECT firm, period, production, executed, revenue, cost, profit,
		capital, inventory, capacity, efficiency
		FROM firm_periods WHERE run_id = ? AND firm = ? ORDER BY period`, runID, firm)
	return rows, err
}

// RecentRuns returns the most recently started runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, `SELECT id, started_at, scenario, market_type, firms, periods,
		total_market_value, phase
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	for i := range runs {
		runs[i].StartedAt = time.Unix(runs[i].StartedUnix, 0)
	}
	return runs, nil
}
