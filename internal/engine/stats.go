package engine

// Phase is a qualitative label for the market's current state, derived from
// the price trend and concentration. It is reporting-only.
type Phase string

const (
	PhaseMonopolisticGrowth Phase = "Monopolistic Growth"
	PhaseMarketCorrection   Phase = "Market Correction"
	PhaseStableOligopoly    Phase = "Stable Oligopoly"
	PhaseCompetitiveGrowth  Phase = "Competitive Growth"
	PhasePriceWar           Phase = "Price War"
	PhaseStableCompetition  Phase = "Stable Competition"
)

// Classification thresholds.
const (
	ConcentrationThreshold = 2500.0 // HHI above this counts as concentrated
	TrendThreshold         = 0.05   // Average relative price change counted as rising or falling
	DefaultTrendWindow     = 5      // Recorded prices the trend looks back over
)

// FirmShare is one firm's share of the stock currently on the market.
type FirmShare struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"` // Fraction in [0, 1]
}

// MarketShares returns each firm's share of total stock, in firm order.
// Every share is 0 when the market holds no stock.
func (m *Market) MarketShares() []FirmShare {
	total := m.TotalSupply()
	shares := make([]FirmShare, len(m.Firms))
	for i, f := range m.Firms {
		shares[i].Name = f.Name
		if total > 0 {
			shares[i].Share = f.Inventory.Stock() / total
		}
	}
	return shares
}

// Concentration returns the Herfindahl-Hirschman index of the current
// shares: the sum of squared fractional shares scaled by 10000.
func (m *Market) Concentration() float64 {
	hhi := 0.0
	for _, s := range m.MarketShares() {
		hhi += s.Share * s.Share * 10000
	}
	return hhi
}

// PriceTrend returns the average relative change across the last window
// recorded prices. Fewer than two prices give 0; a zero price contributes no
// change for the step that follows it.
func (m *Market) PriceTrend(window int) float64 {
	if window <= 0 {
		window = DefaultTrendWindow
	}
	if len(m.PriceHistory) < 2 {
		return 0
	}
	recent := m.PriceHistory[max(0, len(m.PriceHistory)-window):]
	if len(recent) < 2 {
		return 0
	}

	sum := 0.0
	for i := 1; i < len(recent); i++ {
		if recent[i-1] == 0 {
			continue
		}
		sum += (recent[i] - recent[i-1]) / recent[i-1]
	}
	return sum / float64(len(recent)-1)
}

// ClassifyPhase maps a price trend and an HHI to a market phase.
func ClassifyPhase(trend, hhi float64) Phase {
	if hhi > ConcentrationThreshold {
		switch {
		case trend > TrendThreshold:
			return PhaseMonopolisticGrowth
		case trend < -TrendThreshold:
			return PhaseMarketCorrection
		default:
			return PhaseStableOligopoly
		}
	}
	switch {
	case trend > TrendThreshold:
		return PhaseCompetitiveGrowth
	case trend < -TrendThreshold:
		return PhasePriceWar
	default:
		return PhaseStableCompetition
	}
}

// MarketPhase classifies the market from its default-window price trend and
// current concentration.
func (m *Market) MarketPhase() Phase {
	return ClassifyPhase(m.PriceTrend(DefaultTrendWindow), m.Concentration())
}

// Stats is a point-in-time view of the market.
type Stats struct {
	Period           int         `json:"period"`
	TotalSupply      float64     `json:"total_supply"`
	MarketPrice      float64     `json:"market_price"` // Quote for TotalSupply; does not advance demand
	TotalMarketValue float64     `json:"total_market_value"`
	Concentration    float64     `json:"market_concentration"`
	Shares           []FirmShare `json:"market_shares"`
}

// Stats returns the current market statistics.
func (m *Market) Stats() Stats {
	supply := m.TotalSupply()
	return Stats{
		Period:           m.CurrentPeriod,
		TotalSupply:      supply,
		MarketPrice:      m.Demand.MarketPrice(supply),
		TotalMarketValue: m.TotalMarketValue,
		Concentration:    m.Concentration(),
		Shares:           m.MarketShares(),
	}
}

// FirmReport is one firm's line in a performance report.
type FirmReport struct {
	Name               string  `json:"name"`
	Capital            float64 `json:"capital"`
	MarketShare        float64 `json:"market_share"`
	ProductionCapacity float64 `json:"production_capacity"`
	Efficiency         float64 `json:"efficiency"`
	InventoryLevel     float64 `json:"inventory_level"`
}

// Report is the market-wide performance summary.
type Report struct {
	Phase            Phase        `json:"market_phase"`
	TotalMarketValue float64      `json:"total_market_value"`
	AveragePrice     float64      `json:"average_price"`
	PriceVolatility  float64      `json:"price_volatility"` // The default-window price trend
	Firms            []FirmReport `json:"firms"`
}

// PerformanceReport summarizes the market and every firm, in firm order.
func (m *Market) PerformanceReport() Report {
	r := Report{
		Phase:            m.MarketPhase(),
		TotalMarketValue: m.TotalMarketValue,
		PriceVolatility:  m.PriceTrend(DefaultTrendWindow),
		Firms:            make([]FirmReport, len(m.Firms)),
	}

	if n := len(m.PriceHistory); n > 0 {
		sum := 0.0
		for _, p := range m.PriceHistory {
			sum += p
		}
		r.AveragePrice = sum / float64(n)
	}

	shares := m.MarketShares()
	for i, f := range m.Firms {
		r.Firms[i] = FirmReport{
			Name:               f.Name,
			Capital:            f.Capital,
			MarketShare:        shares[i].Share,
			ProductionCapacity: f.Production.Capacity,
			Efficiency:         f.Production.Efficiency,
			InventoryLevel:     f.Inventory.Stock(),
		}
	}
	return r
}
