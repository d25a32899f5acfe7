package engine_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/talgya/market-sim/internal/economy"
	"github.com/talgya/market-sim/internal/engine"
	"github.com/talgya/market-sim/internal/firms"
)

// scriptedDemand quotes a fixed price per period regardless of supply and
// remembers every supply it was asked about.
type scriptedDemand struct {
	prices []float64
	period int
	quoted []float64
}

func (d *scriptedDemand) MarketPrice(totalSupply float64) float64 {
	d.quoted = append(d.quoted, totalSupply)
	if len(d.prices) == 0 {
		return 100
	}
	return d.prices[min(d.period, len(d.prices)-1)]
}

func (d *scriptedDemand) AdvancePeriod() { d.period++ }

func float64Ptr(v float64) *float64 { return &v }

func testFirmParams() firms.Params {
	return firms.Params{
		InitialCapital: float64Ptr(10000),
		Strategy:       "balanced",
		Production: &economy.ProductionParams{
			InitialCapacity:       100,
			InitialEfficiency:     1.0,
			MaxEfficiency:         2.0,
			UpgradeCostFactor:     100,
			MaintenanceCostFactor: 0.1,
		},
		Costs: &economy.Costs{
			FixedCosts:          1000,
			VariableCostPerUnit: 20,
			OverheadRatio:       0.1,
		},
		Inventory: &economy.InventoryParams{
			HoldingCost: 5,
			MaxCapacity: 200,
		},
		RiskTolerance:     float64Ptr(0.5),
		MinProfitMargin:   float64Ptr(0.1),
		MaxInventoryRatio: float64Ptr(0.8),
	}
}

func newTestFirm(t *testing.T, name string, mutate func(*firms.Params)) *firms.Firm {
	t.Helper()
	p := testFirmParams()
	if mutate != nil {
		mutate(&p)
	}
	f, err := firms.New(name, p)
	require.NoError(t, err)
	return f
}

func newTestMarket(t *testing.T, demand engine.Demand, fs ...*firms.Firm) *engine.Market {
	t.Helper()
	m := engine.New(engine.Config{Type: "oligopoly", MaxPeriods: 10}, demand)
	for _, f := range fs {
		require.NoError(t, m.AddFirm(f))
	}
	return m
}

// referenceMarket is the three-firm setup used by the command-line default scenario.
func referenceMarket(t *testing.T) *engine.Market {
	t.Helper()
	demand := economy.NewDemand(economy.DemandParams{
		BasePrice:       100,
		PriceElasticity: 0.5,
		MinPrice:        20,
		SeasonalFactors: []float64{1.0, 1.1, 1.2, 0.9, 0.8, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.0},
		NoiseAmplitude:  0.1,
		NoiseSeed:       42,
	})
	return newTestMarket(t, demand,
		newTestFirm(t, "Acme Corp", func(p *firms.Params) {
			p.Strategy = "aggressive"
			p.RiskTolerance = float64Ptr(0.8)
		}),
		newTestFirm(t, "Beta Industries", func(p *firms.Params) {
			p.Strategy = "conservative"
			p.RiskTolerance = float64Ptr(0.3)
			p.Production.InitialCapacity = 120
		}),
		newTestFirm(t, "Gamma Ltd", func(p *firms.Params) {
			p.Costs.FixedCosts = 800
		}),
	)
}
