package scenario_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/market-sim/internal/engine"
	"github.com/talgya/market-sim/internal/firms"
	"github.com/talgya/market-sim/internal/scenario"
	"github.com/talgya/market-sim/internal/strategy"
)

func TestDefaultScenarioBuildsThreeFirms(t *testing.T) {
	m, rejected := scenario.Default().Build()

	require.Empty(t, rejected)
	require.Len(t, m.Firms, 3)
	assert.Equal(t, "oligopoly", m.Type)
	assert.Equal(t, 10, m.MaxPeriods)

	acme, beta, gamma := m.Firms[0], m.Firms[1], m.Firms[2]

	assert.Equal(t, "Acme Corp", acme.Name)
	assert.Equal(t, strategy.Aggressive, acme.Strategy)
	assert.Equal(t, 0.8, acme.RiskTolerance)
	assert.Equal(t, 100.0, acme.Production.Capacity)
	assert.Equal(t, 10000.0, acme.Capital)

	assert.Equal(t, "Beta Industries", beta.Name)
	assert.Equal(t, strategy.Conservative, beta.Strategy)
	assert.Equal(t, 120.0, beta.Production.Capacity)
	assert.Equal(t, 1.0, beta.Production.Efficiency, "untouched production keys come from the defaults")
	assert.Equal(t, 1000.0, beta.Costs.FixedCosts)

	assert.Equal(t, "Gamma Ltd", gamma.Name)
	assert.Equal(t, strategy.Balanced, gamma.Strategy)
	assert.Equal(t, 800.0, gamma.Costs.FixedCosts)
	assert.Equal(t, 20.0, gamma.Costs.VariableCostPerUnit)
	assert.Equal(t, 200.0, gamma.Inventory.MaxCapacity)
}

func TestSaveAndLoadDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, scenario.Save(path, scenario.Default()))

	doc, err := scenario.Load(path)
	require.NoError(t, err)

	assert.Equal(t, scenario.Default().Market, doc.Market)
	assert.Equal(t, scenario.Default().Demand, doc.Demand)

	loaded, rejected := doc.Build()
	require.Empty(t, rejected)
	builtin, _ := scenario.Default().Build()

	for i := 0; i < 5; i++ {
		assert.Equal(t, builtin.SimulatePeriod(), loaded.SimulatePeriod())
	}
}

const partialScenario = `
market:
  market_type: duopoly
  max_periods: 4
demand:
  base_price: 100
  price_elasticity: 0.5
  min_price: 20
firms:
  - name: Half Built
    params:
      initial_capital: 5000
      strategy: balanced
`

func TestMissingKeysAreRejected(t *testing.T) {
	doc, err := scenario.Parse([]byte(partialScenario))
	require.NoError(t, err)

	m, rejected := doc.Build()

	assert.Empty(t, m.Firms)
	require.Len(t, rejected, 1)
	assert.Equal(t, "Half Built", rejected[0].Name)
	assert.ErrorIs(t, rejected[0].Err, firms.ErrInvalidParams)
	assert.Equal(t, "duopoly", m.Type)
}

func TestResolveParamsRequiresCarriedKeys(t *testing.T) {
	tests := []struct {
		section string
		key     string
	}{
		{"inventory", "spoilage_rate"},
		{"inventory", "min_stock_level"},
		{"inventory", "storage_cost_factor"},
		{"costs", "labor_cost_factor"},
		{"costs", "material_cost_factor"},
	}
	for _, tt := range tests {
		t.Run(tt.section+"."+tt.key, func(t *testing.T) {
			doc := scenario.Default()
			delete(doc.FirmDefaults[tt.section].(map[string]any), tt.key)

			_, err := doc.ResolveParams(doc.Firms[0])

			assert.ErrorIs(t, err, firms.ErrInvalidParams)
		})
	}
}

func TestResolveParamsRequiresTopLevelKeys(t *testing.T) {
	for _, key := range []string{"initial_capital", "risk_tolerance", "min_profit_margin", "max_inventory_ratio"} {
		t.Run(key, func(t *testing.T) {
			doc := scenario.Default()
			delete(doc.FirmDefaults, key)
			spec := scenario.FirmSpec{Name: "Bare Co"}

			_, err := doc.ResolveParams(spec)

			assert.ErrorIs(t, err, firms.ErrInvalidParams)
		})
	}
}

func TestResolveParamsKeepsExplicitZero(t *testing.T) {
	doc := scenario.Default()

	p, err := doc.ResolveParams(scenario.FirmSpec{
		Name:   "Zero Co",
		Params: map[string]any{"risk_tolerance": 0, "initial_capital": 0},
	})

	require.NoError(t, err)
	require.NotNil(t, p.RiskTolerance)
	assert.Zero(t, *p.RiskTolerance)
	require.NotNil(t, p.InitialCapital)
	assert.Zero(t, *p.InitialCapital)
}

func TestInvalidFirmsAreSkipped(t *testing.T) {
	doc := scenario.Default()
	doc.Firms = append(doc.Firms,
		scenario.FirmSpec{Name: "Odd Co", Params: map[string]any{"strategy": "chaotic"}},
		scenario.FirmSpec{Name: "Acme Corp"},
		scenario.FirmSpec{Name: "Risky Co", Params: map[string]any{"risk_tolerance": 1.5}},
	)

	m, rejected := doc.Build()

	assert.Len(t, m.Firms, 3)
	require.Len(t, rejected, 3)
	assert.ErrorIs(t, rejected[0].Err, firms.ErrInvalidStrategy)
	assert.ErrorIs(t, rejected[1].Err, engine.ErrDuplicateFirm)
	assert.ErrorIs(t, rejected[2].Err, firms.ErrInvalidParams)
	assert.Contains(t, rejected[0].Error(), "Odd Co")
}

func TestParseRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "market: [unclosed"},
		{"min above base", "demand:\n  base_price: 10\n  min_price: 20\n"},
		{"no base price", "demand:\n  price_elasticity: 0.5\n"},
		{"negative periods", "market:\n  max_periods: -1\ndemand:\n  base_price: 100\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := scenario.Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, scenario.ErrInvalidScenario)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := scenario.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestMergeOverlaysNestedMaps(t *testing.T) {
	base := map[string]any{
		"strategy":   "balanced",
		"production": map[string]any{"initial_capacity": 100, "max_efficiency": 2.0},
	}

	merged := scenario.Merge(base, map[string]any{
		"strategy":   "aggressive",
		"production": map[string]any{"initial_capacity": 120},
	})

	assert.Equal(t, "aggressive", merged["strategy"])
	assert.Equal(t, map[string]any{"initial_capacity": 120, "max_efficiency": 2.0}, merged["production"])
	assert.Equal(t, "balanced", base["strategy"], "base is not modified")
	assert.Equal(t, 100, base["production"].(map[string]any)["initial_capacity"])
}

func TestMergeWithoutDefaults(t *testing.T) {
	merged := scenario.Merge(nil, map[string]any{"strategy": "balanced"})
	assert.Equal(t, map[string]any{"strategy": "balanced"}, merged)
}
