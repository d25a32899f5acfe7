package firms

import "log/slog"

// PriceSignal is anything a firm can read a market price from: a bare Price
// or a full MarketData snapshot.
type PriceSignal interface {
	MarketPrice() float64
}

// Price is a bare market price.
type Price float64

func (p Price) MarketPrice() float64 { return float64(p) }

// MarketData is the snapshot a market hands its firms at the start of a period.
type MarketData struct {
	Price       float64 `json:"price"`
	TotalSupply float64 `json:"total_supply"`
	Period      int     `json:"period"`
}

func (m MarketData) MarketPrice() float64 { return m.Price }

// UnitCost returns the efficiency-adjusted variable cost per unit plus the
// overhead share of fixed costs spread over capacity. It reports false when
// capacity is zero, where the overhead share is undefined.
func (f *Firm) UnitCost() (float64, bool) {
	capacity := f.Production.Capacity
	if capacity <= 0 {
		return 0, false
	}
	return f.Costs.EffectiveVariableCost(f.Production.Efficiency) +
		f.Costs.OverheadRatio*f.Costs.FixedCosts/capacity, true
}

// TargetMargin is the minimum profit margin scaled by the strategy.
func (f *Firm) TargetMargin() float64 {
	return f.MinProfitMargin * f.Strategy.Profile().MarginMultiplier
}

// TargetPrice is the price at which producing meets the target margin.
func (f *Firm) TargetPrice(unitCost float64) float64 {
	return unitCost * (1 + f.TargetMargin())
}

// MakeProductionDecision sizes this period's output and records it in the
// production history. The result is never negative and never exceeds the
// free inventory space or what the firm's capital can pay for at unit cost.
// A firm with no capacity produces nothing.
func (f *Firm) MakeProductionDecision(signal PriceSignal) float64 {
	price := signal.MarketPrice()
	maxProduction := f.Production.Capacity
	availableSpace := f.Inventory.AvailableSpace()

	unitCost, ok := f.UnitCost()
	if !ok {
		f.ProductionHistory = append(f.ProductionHistory, 0)
		return 0
	}

	targetPrice := f.TargetPrice(unitCost)

	var qty float64
	if price >= targetPrice {
		// Good price: strategy base, scaled up for risk seekers and down for the averse.
		base := maxProduction * f.Strategy.Profile().ProductionRatio
		qty = base * (1 + (f.RiskTolerance - 0.5))
	} else {
		qty = maxProduction * (price / targetPrice) * f.RiskTolerance
	}

	qty = min(qty, availableSpace)
	if unitCost > 0 {
		qty = min(qty, f.Capital/unitCost)
	}
	qty = max(0, qty)

	f.ProductionHistory = append(f.ProductionHistory, qty)
	return qty
}

// Investment describes the upgrades a firm bought in one investment round.
type Investment struct {
	Budget          float64 `json:"budget"`
	CapacityAdded   float64 `json:"capacity_added"`
	EfficiencyAdded float64 `json:"efficiency_added"` // Requested amount, before the efficiency cap
	Cost            float64 `json:"cost"`
}

// MakeInvestmentDecisions spends part of the capital above a two-period
// fixed-cost buffer on capacity and efficiency. Each upgrade is bought only if
// its share of the budget covers at least one unit; either, both or neither
// may happen.
func (f *Firm) MakeInvestmentDecisions(marketPrice float64) Investment {
	budget := max(0, f.Capital-f.Costs.FixedCosts*2)
	if budget <= 0 {
		return Investment{}
	}

	profile := f.Strategy.Profile()
	capacityInvestment := budget * profile.CapacityInvestRatio
	efficiencyInvestment := budget * profile.EfficiencyInvestRatio
	unitPrice := f.Production.UpgradeCostFactor

	inv := Investment{Budget: budget}

	if capacityInvestment > unitPrice {
		inv.CapacityAdded = capacityInvestment / unitPrice
		cost := f.Production.UpgradeCapacity(inv.CapacityAdded)
		f.Capital -= cost
		f.TotalCosts += cost
		inv.Cost += cost
	}

	if efficiencyInvestment > unitPrice*2 {
		inv.EfficiencyAdded = efficiencyInvestment / (unitPrice * 2)
		cost := f.Production.ImproveEfficiency(inv.EfficiencyAdded)
		f.Capital -= cost
		f.TotalCosts += cost
		inv.Cost += cost
	}

	if inv.Cost > 0 {
		slog.Debug("firm invested",
			"firm", f.Name,
			"price", marketPrice,
			"capacity_added", inv.CapacityAdded,
			"efficiency_added", inv.EfficiencyAdded,
			"cost", inv.Cost,
		)
	}
	return inv
}
