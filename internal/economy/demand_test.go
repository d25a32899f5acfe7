package economy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDemandParams() DemandParams {
	return DemandParams{
		BasePrice:       100,
		PriceElasticity: 0.5,
		MinPrice:        20,
	}
}

func TestMarketPriceAtReferenceSupply(t *testing.T) {
	d := NewDemand(testDemandParams())
	assert.InDelta(t, 100.0, d.MarketPrice(DefaultReferenceSupply), 1e-9)
}

func TestMarketPriceFallsWithSupply(t *testing.T) {
	d := NewDemand(testDemandParams())

	low := d.MarketPrice(50)
	mid := d.MarketPrice(100)
	high := d.MarketPrice(200)

	assert.Greater(t, low, mid)
	assert.Greater(t, mid, high)
	assert.InDelta(t, 100/1.4142135623730951, high, 1e-9)
}

func TestMarketPriceBounds(t *testing.T) {
	d := NewDemand(testDemandParams())

	assert.Equal(t, 400.0, d.MarketPrice(0), "empty market quotes the ceiling")
	assert.Equal(t, 20.0, d.MarketPrice(1e9), "flooded market quotes the floor")
}

func TestSeasonalFactorsCycle(t *testing.T) {
	p := testDemandParams()
	p.SeasonalFactors = []float64{1.0, 1.2, 0.8}
	d := NewDemand(p)

	var quotes []float64
	for i := 0; i < 4; i++ {
		quotes = append(quotes, d.MarketPrice(100))
		d.AdvancePeriod()
	}

	assert.InDeltaSlice(t, []float64{100, 120, 80, 100}, quotes, 1e-9)
	assert.Equal(t, 4, d.Period())
}

func TestNoiseIsDeterministicForSeed(t *testing.T) {
	p := testDemandParams()
	p.NoiseAmplitude = 0.2
	p.NoiseSeed = 7

	a, b := NewDemand(p), NewDemand(p)
	for i := 0; i < 6; i++ {
		pa, pb := a.MarketPrice(120), b.MarketPrice(120)
		assert.Equal(t, pa, pb)
		assert.InDelta(t, NewDemand(testDemandParams()).MarketPrice(120), pa, 0.2*100)
		a.AdvancePeriod()
		b.AdvancePeriod()
	}
}
