// Package economy provides the per-firm production and inventory model, the
// cost structure, and the demand curve that turns aggregate supply into a price.
package economy

// ProductionParams is the configuration bundle for a firm's production line.
type ProductionParams struct {
	InitialCapacity       float64 `mapstructure:"initial_capacity" yaml:"initial_capacity" json:"initial_capacity" validate:"min=0"`
	InitialEfficiency     float64 `mapstructure:"initial_efficiency" yaml:"initial_efficiency" json:"initial_efficiency" validate:"gt=0"`
	MaxEfficiency         float64 `mapstructure:"max_efficiency" yaml:"max_efficiency" json:"max_efficiency" validate:"gtefield=InitialEfficiency"`
	UpgradeCostFactor     float64 `mapstructure:"upgrade_cost_factor" yaml:"upgrade_cost_factor" json:"upgrade_cost_factor" validate:"gt=0"`
	MaintenanceCostFactor float64 `mapstructure:"maintenance_cost_factor" yaml:"maintenance_cost_factor" json:"maintenance_cost_factor" validate:"min=0"`
}

// Production tracks a firm's output capacity and efficiency.
// Capacity only grows; efficiency never exceeds MaxEfficiency.
type Production struct {
	Capacity              float64 `json:"capacity"`
	Efficiency            float64 `json:"efficiency"`
	MaxEfficiency         float64 `json:"max_efficiency"`
	UpgradeCostFactor     float64 `json:"upgrade_cost_factor"`
	MaintenanceCostFactor float64 `json:"maintenance_cost_factor"`
}

// NewProduction creates a production line from its parameter bundle.
func NewProduction(p ProductionParams) *Production {
	eff := p.InitialEfficiency
	if eff > p.MaxEfficiency {
		eff = p.MaxEfficiency
	}
	return &Production{
		Capacity:              p.InitialCapacity,
		Efficiency:            eff,
		MaxEfficiency:         p.MaxEfficiency,
		UpgradeCostFactor:     p.UpgradeCostFactor,
		MaintenanceCostFactor: p.MaintenanceCostFactor,
	}
}

// UpgradeCapacity adds amount units of capacity and returns the cost.
// Capacity has no upper bound.
func (p *Production) UpgradeCapacity(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	p.Capacity += amount
	return p.UpgradeCostFactor * amount
}

// ImproveEfficiency raises efficiency by amount, clamped at MaxEfficiency.
// Efficiency work costs twice as much per unit as capacity, and the cost is
// charged on the requested amount even when the clamp shrinks the real gain.
func (p *Production) ImproveEfficiency(amount float64) float64 {
	if amount < 0 {
		amount = 0
	}
	p.Efficiency = min(p.MaxEfficiency, p.Efficiency+amount)
	return p.UpgradeCostFactor * amount * 2
}

// MaintenanceCost returns the per-period upkeep of the installed capacity,
// owed whether or not anything is produced.
func (p *Production) MaintenanceCost() float64 {
	return p.Capacity * p.MaintenanceCostFactor
}
