package firms

// utilizationWindow is how many trailing periods capacity utilization covers.
const utilizationWindow = 3

// PerformanceMetrics is a read-only snapshot of a firm's derived statistics.
type PerformanceMetrics struct {
	Name                string  `json:"name"`
	Capital             float64 `json:"capital"`
	ProductionCapacity  float64 `json:"production_capacity"`
	Efficiency          float64 `json:"efficiency"`
	InventoryLevel      float64 `json:"inventory_level"`
	TotalRevenue        float64 `json:"total_revenue"`
	TotalCosts          float64 `json:"total_costs"`
	ProfitMargin        float64 `json:"profit_margin"`
	CapacityUtilization float64 `json:"capacity_utilization"`
	RevenueGrowth       float64 `json:"revenue_growth"`
}

// PerformanceMetrics derives the firm's current statistics. Ratios with an
// empty or zero denominator report 0.
func (f *Firm) PerformanceMetrics() PerformanceMetrics {
	m := PerformanceMetrics{
		Name:               f.Name,
		Capital:            f.Capital,
		ProductionCapacity: f.Production.Capacity,
		Efficiency:         f.Production.Efficiency,
		InventoryLevel:     f.Inventory.Stock(),
		TotalRevenue:       f.TotalRevenue,
		TotalCosts:         f.TotalCosts,
	}

	if f.TotalRevenue > 0 {
		m.ProfitMargin = (f.TotalRevenue - f.TotalCosts) / f.TotalRevenue
	}

	if n := len(f.ProductionHistory); n > 0 && f.Production.Capacity > 0 {
		recent := f.ProductionHistory[max(0, n-utilizationWindow):]
		sum := 0.0
		for _, q := range recent {
			sum += q
		}
		m.CapacityUtilization = sum / (f.Production.Capacity * utilizationWindow)
	}

	if n := len(f.RevenueHistory); n > 1 && f.RevenueHistory[n-2] != 0 {
		m.RevenueGrowth = f.RevenueHistory[n-1]/f.RevenueHistory[n-2] - 1
	}

	return m
}
