// Package firms provides the firm entity and its per-period decision rules:
// how much to produce at a given market price and how to reinvest surplus capital.
package firms

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/talgya/market-sim/internal/economy"
	"github.com/talgya/market-sim/internal/strategy"
)

var (
	// ErrInvalidParams is returned when a firm's parameter bundle is missing
	// a key or holds an out-of-range value.
	ErrInvalidParams = errors.New("invalid firm parameters")
	// ErrInvalidStrategy is returned for a strategy name outside the known set.
	ErrInvalidStrategy = errors.New("invalid strategy type")
)

// Params is the fixed parameter bundle a firm is created from. Every field is
// required; the pointers tell a missing key apart from an explicit zero.
// MaxInventoryRatio is accepted for forward compatibility and is currently inert.
type Params struct {
	InitialCapital    *float64                  `mapstructure:"initial_capital" yaml:"initial_capital" json:"initial_capital" validate:"required"`
	Strategy          string                    `mapstructure:"strategy" yaml:"strategy" json:"strategy" validate:"required"`
	Production        *economy.ProductionParams `mapstructure:"production" yaml:"production" json:"production" validate:"required"`
	Costs             *economy.Costs            `mapstructure:"costs" yaml:"costs" json:"costs" validate:"required"`
	Inventory         *economy.InventoryParams  `mapstructure:"inventory" yaml:"inventory" json:"inventory" validate:"required"`
	RiskTolerance     *float64                  `mapstructure:"risk_tolerance" yaml:"risk_tolerance" json:"risk_tolerance" validate:"required,min=0,max=1"`
	MinProfitMargin   *float64                  `mapstructure:"min_profit_margin" yaml:"min_profit_margin" json:"min_profit_margin" validate:"required,min=0"`
	MaxInventoryRatio *float64                  `mapstructure:"max_inventory_ratio" yaml:"max_inventory_ratio" json:"max_inventory_ratio" validate:"required,min=0,max=1"`
}

// Firm is a producer competing in a market. It owns its production line and
// inventory; its cost structure is shared by reference.
type Firm struct {
	Name     string            `json:"name"`
	Capital  float64           `json:"capital"` // May go negative
	Strategy strategy.Strategy `json:"strategy"`

	RiskTolerance     float64 `json:"risk_tolerance"` // 0 = averse, 1 = seeking
	MinProfitMargin   float64 `json:"min_profit_margin"`
	MaxInventoryRatio float64 `json:"max_inventory_ratio"`

	Production *economy.Production `json:"production"`
	Costs      *economy.Costs      `json:"costs"`
	Inventory  *economy.Inventory  `json:"inventory"`

	TotalRevenue float64 `json:"total_revenue"`
	TotalCosts   float64 `json:"total_costs"`

	// Append-only histories, one entry per settled period.
	ProductionHistory []float64 `json:"production_history"`
	RevenueHistory    []float64 `json:"revenue_history"`
	CostHistory       []float64 `json:"cost_history"`
	ProfitHistory     []float64 `json:"profit_history"`
	Periods           []int     `json:"periods"`
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func paramsValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
	})
	return validate
}

// New validates params and creates a firm. Failures wrap ErrInvalidParams or
// ErrInvalidStrategy.
func New(name string, p Params) (*Firm, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: firm name is empty", ErrInvalidParams)
	}
	if err := paramsValidator().Struct(p); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidParams, formatValidationError(err))
	}

	strat, ok := strategy.Parse(p.Strategy)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStrategy, p.Strategy)
	}

	return &Firm{
		Name:              name,
		Capital:           *p.InitialCapital,
		Strategy:          strat,
		RiskTolerance:     *p.RiskTolerance,
		MinProfitMargin:   *p.MinProfitMargin,
		MaxInventoryRatio: *p.MaxInventoryRatio,
		Production:        economy.NewProduction(*p.Production),
		Costs:             p.Costs,
		Inventory:         economy.NewInventory(*p.Inventory),
	}, nil
}

func formatValidationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		msgs = append(msgs, fmt.Sprintf("field '%s' failed validation: %s (value: '%v')",
			e.Namespace(), e.Tag(), e.Value()))
	}
	return strings.Join(msgs, "; ")
}
