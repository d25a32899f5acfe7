package economy

// Costs is a firm's cost structure. It is read-only during a run.
// LaborCostFactor and MaterialCostFactor are part of the schema but are not
// consumed by any decision rule yet.
type Costs struct {
	FixedCosts          float64 `mapstructure:"fixed_costs" yaml:"fixed_costs" json:"fixed_costs" validate:"min=0"`
	VariableCostPerUnit float64 `mapstructure:"variable_cost_per_unit" yaml:"variable_cost_per_unit" json:"variable_cost_per_unit" validate:"min=0"`
	OverheadRatio       float64 `mapstructure:"overhead_ratio" yaml:"overhead_ratio" json:"overhead_ratio" validate:"min=0"`
	LaborCostFactor     float64 `mapstructure:"labor_cost_factor" yaml:"labor_cost_factor" json:"labor_cost_factor" validate:"min=0"`
	MaterialCostFactor  float64 `mapstructure:"material_cost_factor" yaml:"material_cost_factor" json:"material_cost_factor" validate:"min=0"`
}

// EffectiveVariableCost is the variable cost of one unit at the given efficiency.
func (c *Costs) EffectiveVariableCost(efficiency float64) float64 {
	if efficiency <= 0 {
		return c.VariableCostPerUnit
	}
	return c.VariableCostPerUnit / efficiency
}
