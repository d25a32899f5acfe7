package firms_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUpdateCapital(t *testing.T) {
	f := newFirm(t, nil)

	f.UpdateCapital(500, 200)
	f.UpdateCapital(300, 400)

	assert.InDelta(t, 10200.0, f.Capital, 1e-9)
	assert.InDelta(t, 800.0, f.TotalRevenue, 1e-9)
	assert.InDelta(t, 600.0, f.TotalCosts, 1e-9)
	assert.Equal(t, []float64{500, 300}, f.RevenueHistory)
	assert.Equal(t, []float64{300, -100}, f.ProfitHistory)
	assert.Equal(t, []int{0, 1}, f.Periods)
}

// The cost history must grow by exactly one plain entry per update.
func TestUpdateCapitalAppendsCostHistory(t *testing.T) {
	f := newFirm(t, nil)

	for i, c := range []float64{200, 0, 75.5} {
		f.UpdateCapital(100, c)
		assert.Len(t, f.CostHistory, i+1)
		assert.Equal(t, c, f.CostHistory[i])
	}
	assert.Equal(t, len(f.RevenueHistory), len(f.CostHistory))
	assert.Equal(t, len(f.Periods), len(f.CostHistory))
}

func TestRecordPeriodLeavesCapital(t *testing.T) {
	f := newFirm(t, nil)

	f.Debit(1200)
	f.Credit(900)
	f.RecordPeriod(900, 1200)

	assert.InDelta(t, 9700.0, f.Capital, 1e-9)
	assert.Equal(t, []float64{-300}, f.ProfitHistory)
}
