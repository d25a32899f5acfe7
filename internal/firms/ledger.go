package firms

// Credit adds amount to capital without touching the period histories.
func (f *Firm) Credit(amount float64) {
	f.Capital += amount
}

// Debit removes amount from capital without touching the period histories.
func (f *Firm) Debit(amount float64) {
	f.Capital -= amount
}

// UpdateCapital applies a period's revenue and costs to capital and records them.
func (f *Firm) UpdateCapital(revenue, costs float64) {
	f.Capital += revenue - costs
	f.RecordPeriod(revenue, costs)
}

// RecordPeriod closes a period in the firm's books: it accumulates the totals
// and appends one entry to each of the revenue, cost, profit and period
// histories. Capital is left alone; callers that already moved capital
// through Credit and Debit use this directly.
func (f *Firm) RecordPeriod(revenue, costs float64) {
	f.TotalRevenue += revenue
	f.TotalCosts += costs

	f.RevenueHistory = append(f.RevenueHistory, revenue)
	f.CostHistory = append(f.CostHistory, costs)
	f.ProfitHistory = append(f.ProfitHistory, revenue-costs)
	f.Periods = append(f.Periods, len(f.Periods))
}
