// Package engine runs the period-driven market simulation: firms decide output
// against a shared price, the market clears their stock, and the aggregate
// statistics (shares, concentration, price trend, phase) are derived from the
// resulting history.
//
// A Market is not safe for concurrent use; callers that share one must
// serialize SimulatePeriod.
package engine

import (
	"errors"
	"fmt"

	"github.com/talgya/market-sim/internal/firms"
)

// ErrDuplicateFirm is returned when a firm name is already taken in a market.
var ErrDuplicateFirm = errors.New("duplicate firm name")

// Demand is the price-formation collaborator a market consults.
type Demand interface {
	// MarketPrice quotes the clearing price for the given aggregate supply.
	MarketPrice(totalSupply float64) float64
	// AdvancePeriod moves the collaborator's own period state forward.
	AdvancePeriod()
}

// Config carries the descriptive market settings.
type Config struct {
	Type       string `mapstructure:"market_type" yaml:"market_type" json:"market_type"`
	MaxPeriods int    `mapstructure:"max_periods" yaml:"max_periods" json:"max_periods" validate:"min=0"`
}

// FirmHistory is the market's per-firm record. All four series gain exactly
// one entry per completed period.
type FirmHistory struct {
	Revenue     []float64 `json:"revenue"`
	Costs       []float64 `json:"costs"` // Production cost, 0 when production was unaffordable
	Profits     []float64 `json:"profits"`
	MarketPrice []float64 `json:"market_price"`
}

// Market owns the demand curve and the competing firms.
type Market struct {
	Type       string
	MaxPeriods int

	Demand Demand
	Firms  []*firms.Firm // Iteration order for every stage

	CurrentPeriod    int
	TotalMarketValue float64 // Sales value of the last completed period only
	PriceHistory     []float64
	Periods          []int
	FirmMetrics      map[string]*FirmHistory

	// OnStage, when set, is called after each stage of a period completes.
	OnStage func(stage Stage, m *Market)

	cycle *PeriodResult
}

// New creates an empty market around a demand collaborator.
func New(cfg Config, demand Demand) *Market {
	return &Market{
		Type:        cfg.Type,
		MaxPeriods:  cfg.MaxPeriods,
		Demand:      demand,
		FirmMetrics: make(map[string]*FirmHistory),
	}
}

// AddFirm enters a firm into the market and opens its history record.
func (m *Market) AddFirm(f *firms.Firm) error {
	if _, ok := m.FirmMetrics[f.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateFirm, f.Name)
	}
	m.Firms = append(m.Firms, f)
	m.FirmMetrics[f.Name] = &FirmHistory{}
	return nil
}

// Firm returns the firm with the given name.
func (m *Market) Firm(name string) (*firms.Firm, bool) {
	for _, f := range m.Firms {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// TotalSupply is the sum of every firm's current stock.
func (m *Market) TotalSupply() float64 {
	total := 0.0
	for _, f := range m.Firms {
		total += f.Inventory.Stock()
	}
	return total
}

// InProgress returns the result of the period being simulated, or nil between periods.
func (m *Market) InProgress() *PeriodResult {
	return m.cycle
}
