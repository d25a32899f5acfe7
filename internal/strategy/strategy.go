// Package strategy defines the firm strategy profiles.
// Every coefficient a firm uses to size production and investment lives here,
// keyed by strategy, so no decision rule carries its own magic numbers.
package strategy

import "fmt"

// Strategy is a firm's fixed risk-appetite profile.
type Strategy uint8

const (
	Aggressive Strategy = iota
	Balanced
	Conservative

	numStrategies // must stay last
)

var names = [numStrategies]string{
	Aggressive:   "aggressive",
	Balanced:     "balanced",
	Conservative: "conservative",
}

// Profile holds the coefficients a strategy applies to firm decisions.
type Profile struct {
	// MarginMultiplier scales the firm's minimum profit margin into its target margin.
	MarginMultiplier float64
	// ProductionRatio is the share of capacity produced when the price clears the target.
	ProductionRatio float64
	// CapacityInvestRatio is the share of the investment budget spent on capacity.
	CapacityInvestRatio float64
	// EfficiencyInvestRatio is the share of the investment budget spent on efficiency.
	EfficiencyInvestRatio float64
}

var profiles = [numStrategies]Profile{
	Aggressive: {
		MarginMultiplier:      1.5,
		ProductionRatio:       0.9,
		CapacityInvestRatio:   0.3,
		EfficiencyInvestRatio: 0.2,
	},
	Balanced: {
		MarginMultiplier:      1.2,
		ProductionRatio:       0.7,
		CapacityInvestRatio:   0.2,
		EfficiencyInvestRatio: 0.15,
	},
	Conservative: {
		MarginMultiplier:      1.0,
		ProductionRatio:       0.5,
		CapacityInvestRatio:   0.1,
		EfficiencyInvestRatio: 0.1,
	},
}

// A strategy added to the enum without a name or profile fails at startup.
func init() {
	for s := Strategy(0); s < numStrategies; s++ {
		if names[s] == "" {
			panic(fmt.Sprintf("strategy %d has no name", s))
		}
		if profiles[s] == (Profile{}) {
			panic(fmt.Sprintf("strategy %q has no profile", names[s]))
		}
	}
}

// All returns every strategy in declaration order.
func All() []Strategy {
	out := make([]Strategy, 0, numStrategies)
	for s := Strategy(0); s < numStrategies; s++ {
		out = append(out, s)
	}
	return out
}

// Parse maps a configuration name to its strategy. Names match exactly.
func Parse(name string) (Strategy, bool) {
	for s := Strategy(0); s < numStrategies; s++ {
		if names[s] == name {
			return s, true
		}
	}
	return 0, false
}

// Valid reports whether s is one of the declared strategies.
func (s Strategy) Valid() bool {
	return s < numStrategies
}

func (s Strategy) String() string {
	if !s.Valid() {
		return fmt.Sprintf("strategy(%d)", s)
	}
	return names[s]
}

// Profile returns the coefficient profile for s. Invalid strategies get the
// zero profile; firms never hold one because construction rejects them.
func (s Strategy) Profile() Profile {
	if !s.Valid() {
		return Profile{}
	}
	return profiles[s]
}
