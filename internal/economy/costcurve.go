package economy

import "errors"

var (
	ErrNegativeQuantity    = errors.New("quantity must be non-negative")
	ErrNonPositiveQuantity = errors.New("quantity must be positive")
)

// DefaultDifferenceStep is the step used for numerical marginal cost.
const DefaultDifferenceStep = 0.0001

// CostCurve is a quadratic cost function TC(q) = Fixed + Linear*q + Quadratic*q².
type CostCurve struct {
	Fixed     float64
	Linear    float64
	Quadratic float64
}

// VariableCost returns VC(q) without the fixed component.
func (c CostCurve) VariableCost(q float64) float64 {
	return c.Linear*q + c.Quadratic*q*q
}

// TotalCost returns TC(q).
func (c CostCurve) TotalCost(q float64) (float64, error) {
	if q < 0 {
		return 0, ErrNegativeQuantity
	}
	return c.Fixed + c.VariableCost(q), nil
}

// AverageCost returns TC(q)/q.
func (c CostCurve) AverageCost(q float64) (float64, error) {
	if q <= 0 {
		return 0, ErrNonPositiveQuantity
	}
	tc, err := c.TotalCost(q)
	if err != nil {
		return 0, err
	}
	return tc / q, nil
}

// MarginalCost returns dTC/dq.
func (c CostCurve) MarginalCost(q float64) (float64, error) {
	if q < 0 {
		return 0, ErrNegativeQuantity
	}
	return c.Linear + 2*c.Quadratic*q, nil
}

// MarginalCostNumerical approximates dTC/dq with a forward difference of step h.
// A non-positive h falls back to DefaultDifferenceStep.
func (c CostCurve) MarginalCostNumerical(q, h float64) (float64, error) {
	if q < 0 {
		return 0, ErrNegativeQuantity
	}
	if h <= 0 {
		h = DefaultDifferenceStep
	}
	hi, _ := c.TotalCost(q + h)
	lo, _ := c.TotalCost(q)
	return (hi - lo) / h, nil
}
