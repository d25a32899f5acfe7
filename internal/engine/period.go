package engine

import (
	"log/slog"

	"github.com/talgya/market-sim/internal/firms"
)

// Stage is one step of a simulated period. Stages always run in declaration order.
type Stage uint8

const (
	StageSnapshot   Stage = iota // Quote the price for the opening supply
	StageProduction              // Firms decide and, if affordable, produce
	StageClearing                // Stock is sold at the post-production price
	StageInvestment              // Firms reinvest at the clearing price
	StageAdvance                 // Period counters move forward
)

func (s Stage) String() string {
	switch s {
	case StageSnapshot:
		return "snapshot"
	case StageProduction:
		return "production"
	case StageClearing:
		return "clearing"
	case StageInvestment:
		return "investment"
	case StageAdvance:
		return "advance"
	default:
		return "unknown"
	}
}

// FirmPeriod is what happened to one firm during a period.
type FirmPeriod struct {
	Name           string           `json:"name"`
	Decided        float64          `json:"decided"`  // Quantity the firm chose to produce
	Executed       bool             `json:"executed"` // False when the production cost exceeded capital
	ProductionCost float64          `json:"production_cost"`
	Sold           float64          `json:"sold"`
	Revenue        float64          `json:"revenue"`
	HoldingCost    float64          `json:"holding_cost"`
	Investment     firms.Investment `json:"investment"`
}

// PeriodResult summarizes one simulated period.
type PeriodResult struct {
	Period         int          `json:"period"`
	OpeningSupply  float64      `json:"opening_supply"`
	SnapshotPrice  float64      `json:"snapshot_price"`
	ClearingSupply float64      `json:"clearing_supply"`
	ClearingPrice  float64      `json:"clearing_price"` // Equals SnapshotPrice when nothing cleared
	Cleared        bool         `json:"cleared"`
	MarketValue    float64      `json:"market_value"`
	Firms          []FirmPeriod `json:"firms"`
}

// SimulatePeriod advances the market by exactly one period.
func (m *Market) SimulatePeriod() PeriodResult {
	m.cycle = &PeriodResult{
		Period: m.CurrentPeriod,
		Firms:  make([]FirmPeriod, len(m.Firms)),
	}
	for i, f := range m.Firms {
		m.cycle.Firms[i].Name = f.Name
	}

	m.snapshot()
	m.stageDone(StageSnapshot)

	m.produce()
	m.stageDone(StageProduction)

	m.clear()
	m.stageDone(StageClearing)

	m.invest()
	m.stageDone(StageInvestment)

	m.advance()

	res := *m.cycle
	m.cycle = nil
	m.stageDone(StageAdvance)

	slog.Debug("period simulated",
		"period", res.Period,
		"price", res.SnapshotPrice,
		"clearing_price", res.ClearingPrice,
		"supply", res.ClearingSupply,
		"market_value", res.MarketValue,
	)
	return res
}

func (m *Market) stageDone(s Stage) {
	if m.OnStage != nil {
		m.OnStage(s, m)
	}
}

// snapshot quotes the opening price and records it.
func (m *Market) snapshot() {
	supply := m.TotalSupply()
	price := m.Demand.MarketPrice(supply)

	m.Periods = append(m.Periods, m.CurrentPeriod)
	m.PriceHistory = append(m.PriceHistory, price)

	m.cycle.OpeningSupply = supply
	m.cycle.SnapshotPrice = price
	m.cycle.ClearingPrice = price
}

// produce runs every firm's production decision against the snapshot price.
// A firm that cannot pay keeps its decision on record but adds no stock and
// books a zero cost.
func (m *Market) produce() {
	data := firms.MarketData{
		Price:       m.cycle.SnapshotPrice,
		TotalSupply: m.cycle.OpeningSupply,
		Period:      m.CurrentPeriod,
	}

	for i, f := range m.Firms {
		fp := &m.cycle.Firms[i]
		hist := m.FirmMetrics[f.Name]

		qty := f.MakeProductionDecision(data)
		fp.Decided = qty

		cost := f.Costs.EffectiveVariableCost(f.Production.Efficiency)*qty +
			f.Costs.FixedCosts +
			f.Production.MaintenanceCost()

		if cost > f.Capital {
			hist.Costs = append(hist.Costs, 0)
			slog.Debug("production skipped, unaffordable",
				"firm", f.Name, "quantity", qty, "cost", cost, "capital", f.Capital)
			continue
		}

		f.Inventory.AddStock(qty)
		f.Debit(cost)
		hist.Costs = append(hist.Costs, cost)
		fp.Executed = true
		fp.ProductionCost = cost
	}
}

// clear sells stock at the price quoted for the post-production supply.
// Each firm's sales are min(stock, share*supply) with share = stock/supply,
// so every firm sells its whole stock each period.
func (m *Market) clear() {
	supply := m.TotalSupply()
	m.cycle.ClearingSupply = supply

	if supply <= 0 {
		for i, f := range m.Firms {
			fp := &m.cycle.Firms[i]
			hist := m.FirmMetrics[f.Name]
			lastCost := hist.Costs[len(hist.Costs)-1]

			hist.Revenue = append(hist.Revenue, 0)
			hist.Profits = append(hist.Profits, -lastCost)
			hist.MarketPrice = append(hist.MarketPrice, m.cycle.SnapshotPrice)
			f.RecordPeriod(0, fp.ProductionCost)
		}
		return
	}

	price := m.Demand.MarketPrice(supply)
	m.cycle.ClearingPrice = price
	m.cycle.Cleared = true

	for i, f := range m.Firms {
		fp := &m.cycle.Firms[i]
		hist := m.FirmMetrics[f.Name]

		stock := f.Inventory.Stock()
		share := stock / supply
		sold := min(stock, share*supply)
		revenue := sold * price

		f.Inventory.RemoveStock(sold)
		f.Credit(revenue)
		m.cycle.MarketValue += revenue

		holding := f.Inventory.Stock() * f.Inventory.HoldingCost
		f.Debit(holding)

		lastCost := hist.Costs[len(hist.Costs)-1]
		hist.Revenue = append(hist.Revenue, revenue)
		hist.Profits = append(hist.Profits, revenue-lastCost)
		hist.MarketPrice = append(hist.MarketPrice, price)

		fp.Sold = sold
		fp.Revenue = revenue
		fp.HoldingCost = holding
		f.RecordPeriod(revenue, fp.ProductionCost+holding)
	}
}

// invest lets each firm reinvest at the clearing price. A firm's investment
// reads and writes only its own state, so running it after every firm has
// cleared gives the same outcome as interleaving it with sales.
func (m *Market) invest() {
	if !m.cycle.Cleared {
		return
	}
	for i, f := range m.Firms {
		m.cycle.Firms[i].Investment = f.MakeInvestmentDecisions(m.cycle.ClearingPrice)
	}
}

// advance closes the period. TotalMarketValue is replaced, not accumulated.
func (m *Market) advance() {
	m.TotalMarketValue = m.cycle.MarketValue
	m.CurrentPeriod++
	m.Demand.AdvancePeriod()
}
