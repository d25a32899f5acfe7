package scenario

import (
	"github.com/talgya/market-sim/internal/economy"
	"github.com/talgya/market-sim/internal/engine"
)

// Default returns the built-in scenario: an oligopoly of three firms over ten
// periods with a twelve-period seasonal cycle.
func Default() *Document {
	return &Document{
		Market: engine.Config{Type: "oligopoly", MaxPeriods: 10},
		Demand: economy.DemandParams{
			BasePrice:       100,
			PriceElasticity: 0.5,
			MinPrice:        20,
			SeasonalFactors: []float64{1.0, 1.1, 1.2, 0.9, 0.8, 0.7, 0.8, 0.9, 1.0, 1.1, 1.2, 1.0},
		},
		FirmDefaults: DefaultFirmParams(),
		Firms: []FirmSpec{
			{
				Name: "Acme Corp",
				Params: map[string]any{
					"strategy":       "aggressive",
					"risk_tolerance": 0.8,
				},
			},
			{
				Name: "Beta Industries",
				Params: map[string]any{
					"strategy":       "conservative",
					"risk_tolerance": 0.3,
					"production":     map[string]any{"initial_capacity": 120},
				},
			},
			{
				Name: "Gamma Ltd",
				Params: map[string]any{
					"strategy":       "balanced",
					"risk_tolerance": 0.5,
					"costs":          map[string]any{"fixed_costs": 800},
				},
			},
		},
	}
}

// DefaultFirmParams is the baseline firm bundle the default scenario's firms override.
func DefaultFirmParams() map[string]any {
	return map[string]any{
		"initial_capital": 10000,
		"strategy":        "balanced",
		"production": map[string]any{
			"initial_capacity":        100,
			"initial_efficiency":      1.0,
			"max_efficiency":          2.0,
			"upgrade_cost_factor":     100,
			"maintenance_cost_factor": 0.1,
		},
		"costs": map[string]any{
			"fixed_costs":            1000,
			"variable_cost_per_unit": 20,
			"overhead_ratio":         0.1,
			"labor_cost_factor":      15,
			"material_cost_factor":   10,
		},
		"inventory": map[string]any{
			"holding_cost":        5,
			"max_capacity":        200,
			"spoilage_rate":       0.02,
			"min_stock_level":     10,
			"storage_cost_factor": 2,
		},
		"risk_tolerance":      0.5,
		"min_profit_margin":   0.1,
		"max_inventory_ratio": 0.8,
	}
}
