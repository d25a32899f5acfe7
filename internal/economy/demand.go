package economy

import (
	"math"

	opensimplex "github.com/ojrac/opensimplex-go"
)

// Demand curve defaults.
const (
	DefaultReferenceSupply = 100.0
	DefaultMaxPriceRatio   = 4.0

	noiseFrequency = 0.37 // Period step along the noise axis
)

// DemandParams configures the market demand curve.
type DemandParams struct {
	BasePrice       float64   `mapstructure:"base_price" yaml:"base_price" json:"base_price" validate:"gt=0"`
	PriceElasticity float64   `mapstructure:"price_elasticity" yaml:"price_elasticity" json:"price_elasticity" validate:"min=0"`
	MinPrice        float64   `mapstructure:"min_price" yaml:"min_price" json:"min_price" validate:"min=0,ltefield=BasePrice"`
	SeasonalFactors []float64 `mapstructure:"seasonal_factors" yaml:"seasonal_factors,omitempty" json:"seasonal_factors,omitempty" validate:"dive,gt=0"`

	// ReferenceSupply is the supply at which the unadjusted price equals BasePrice.
	ReferenceSupply float64 `mapstructure:"reference_supply" yaml:"reference_supply,omitempty" json:"reference_supply,omitempty" validate:"min=0"`
	// MaxPriceRatio caps the price at BasePrice*MaxPriceRatio.
	MaxPriceRatio float64 `mapstructure:"max_price_ratio" yaml:"max_price_ratio,omitempty" json:"max_price_ratio,omitempty" validate:"min=0"`

	// NoiseAmplitude scales a seeded simplex shock applied to every quote.
	NoiseAmplitude float64 `mapstructure:"noise_amplitude" yaml:"noise_amplitude,omitempty" json:"noise_amplitude,omitempty" validate:"min=0,max=1"`
	NoiseSeed      int64   `mapstructure:"noise_seed" yaml:"noise_seed,omitempty" json:"noise_seed,omitempty"`
}

// Demand turns aggregate supply into a market-clearing price. It keeps its
// own period counter for the seasonal cycle and the demand shock.
type Demand struct {
	BasePrice       float64
	PriceElasticity float64
	MinPrice        float64
	SeasonalFactors []float64
	ReferenceSupply float64
	MaxPriceRatio   float64
	NoiseAmplitude  float64

	period int
	noise  opensimplex.Noise
}

// NewDemand creates a demand curve, filling unset tuning values with defaults.
func NewDemand(p DemandParams) *Demand {
	d := &Demand{
		BasePrice:       p.BasePrice,
		PriceElasticity: p.PriceElasticity,
		MinPrice:        p.MinPrice,
		SeasonalFactors: append([]float64(nil), p.SeasonalFactors...),
		ReferenceSupply: p.ReferenceSupply,
		MaxPriceRatio:   p.MaxPriceRatio,
		NoiseAmplitude:  p.NoiseAmplitude,
	}
	if d.ReferenceSupply <= 0 {
		d.ReferenceSupply = DefaultReferenceSupply
	}
	if d.MaxPriceRatio <= 0 {
		d.MaxPriceRatio = DefaultMaxPriceRatio
	}
	if d.NoiseAmplitude > 0 {
		d.noise = opensimplex.New(p.NoiseSeed)
	}
	return d
}

// Period returns the demand curve's internal period.
func (d *Demand) Period() int {
	return d.period
}

// SeasonalFactor returns the multiplier for the current period.
func (d *Demand) SeasonalFactor() float64 {
	if len(d.SeasonalFactors) == 0 {
		return 1.0
	}
	return d.SeasonalFactors[d.period%len(d.SeasonalFactors)]
}

// MarketPrice quotes the price at which totalSupply clears this period.
// More supply means a lower price; the quote is bounded below by MinPrice
// and above by BasePrice*MaxPriceRatio.
func (d *Demand) MarketPrice(totalSupply float64) float64 {
	supply := totalSupply
	if supply < 1 {
		supply = 1 // an empty market quotes as if one unit were offered
	}

	price := d.BasePrice * d.SeasonalFactor() * math.Pow(d.ReferenceSupply/supply, d.PriceElasticity)
	if d.noise != nil {
		price *= 1 + d.NoiseAmplitude*d.noise.Eval2(float64(d.period)*noiseFrequency, 0)
	}

	floor := d.MinPrice
	ceiling := d.BasePrice * d.MaxPriceRatio
	if price > ceiling {
		price = ceiling
	}
	if price < floor {
		price = floor
	}
	return price
}

// AdvancePeriod moves the seasonal cycle forward one period.
func (d *Demand) AdvancePeriod() {
	d.period++
}
