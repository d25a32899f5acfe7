package cli

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"

	"github.com/talgya/market-sim/internal/engine"
)

// money formats an amount in dollars, rounded to cents and comma-grouped.
// Negative amounts carry the sign ahead of the dollar sign.
func money(v float64) string {
	cents := decimal.NewFromFloat(v).Round(2)
	sign := ""
	if cents.IsNegative() {
		sign, cents = "-", cents.Neg()
	}
	return sign + "$" + humanize.FormatFloat("#,###.##", cents.InexactFloat64())
}

func units(v float64) string {
	return humanize.FormatFloat("#,###.", v)
}

func percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v*100)
}

func printPeriodStatus(w io.Writer, res engine.PeriodResult, m *engine.Market) {
	fmt.Fprintf(w, "\n=== Period %d (%s) ===\n", res.Period+1, humanize.Ordinal(res.Period+1))
	fmt.Fprintf(w, "Market Phase: %s\n", m.MarketPhase())
	fmt.Fprintf(w, "Market Price: %s\n", money(res.ClearingPrice))
	fmt.Fprintf(w, "Total Supply: %s\n", units(res.ClearingSupply))
	fmt.Fprintf(w, "Market Value: %s\n", money(m.TotalMarketValue))

	fmt.Fprintln(w, "\nFirm Status:")
	for i, f := range m.Firms {
		pm := f.PerformanceMetrics()
		fmt.Fprintf(w, "\n%s:\n", f.Name)
		fmt.Fprintf(w, "  Capital: %s\n", money(pm.Capital))
		fmt.Fprintf(w, "  Inventory: %s\n", units(pm.InventoryLevel))
		fmt.Fprintf(w, "  Production Capacity: %.1f\n", pm.ProductionCapacity)
		fmt.Fprintf(w, "  Efficiency: %.2f\n", pm.Efficiency)
		fmt.Fprintf(w, "  Profit Margin: %s\n", percent(pm.ProfitMargin))
		fmt.Fprintf(w, "  Capacity Utilization: %s\n", percent(pm.CapacityUtilization))
		if pm.RevenueGrowth != 0 {
			fmt.Fprintf(w, "  Revenue Growth: %s\n", percent(pm.RevenueGrowth))
		}
		if !res.Firms[i].Executed {
			fmt.Fprintf(w, "  Production skipped: could not pay for %s units\n", units(res.Firms[i].Decided))
		}
	}
}

func printReport(w io.Writer, runID string, m *engine.Market) {
	r := m.PerformanceReport()

	fmt.Fprintf(w, "\n=== Performance Report (run %s) ===\n", runID)
	fmt.Fprintf(w, "Periods: %d\n", m.CurrentPeriod)
	fmt.Fprintf(w, "Market Phase: %s\n", r.Phase)
	fmt.Fprintf(w, "Concentration (HHI): %.0f\n", m.Concentration())
	fmt.Fprintf(w, "Average Price: %s\n", money(r.AveragePrice))
	fmt.Fprintf(w, "Price Trend: %s\n", percent(r.PriceVolatility))
	fmt.Fprintf(w, "Last Period Market Value: %s\n", money(r.TotalMarketValue))

	for _, f := range r.Firms {
		fmt.Fprintf(w, "\n%s:\n", f.Name)
		fmt.Fprintf(w, "  Capital: %s\n", money(f.Capital))
		fmt.Fprintf(w, "  Market Share: %s\n", percent(f.MarketShare))
		fmt.Fprintf(w, "  Production Capacity: %.1f\n", f.ProductionCapacity)
		fmt.Fprintf(w, "  Efficiency: %.2f\n", f.Efficiency)
		fmt.Fprintf(w, "  Inventory: %s\n", units(f.InventoryLevel))
	}
}
