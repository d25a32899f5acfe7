package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for _, s := range All() {
		got, ok := Parse(s.String())
		require.True(t, ok, s.String())
		assert.Equal(t, s, got)
	}

	for _, name := range []string{"reckless", "AGGRESSIVE", "Balanced", " balanced ", ""} {
		_, ok := Parse(name)
		assert.False(t, ok, "%q", name)
	}
}

func TestProfiles(t *testing.T) {
	tests := []struct {
		strategy Strategy
		want     Profile
	}{
		{Aggressive, Profile{MarginMultiplier: 1.5, ProductionRatio: 0.9, CapacityInvestRatio: 0.3, EfficiencyInvestRatio: 0.2}},
		{Balanced, Profile{MarginMultiplier: 1.2, ProductionRatio: 0.7, CapacityInvestRatio: 0.2, EfficiencyInvestRatio: 0.15}},
		{Conservative, Profile{MarginMultiplier: 1.0, ProductionRatio: 0.5, CapacityInvestRatio: 0.1, EfficiencyInvestRatio: 0.1}},
	}
	for _, tt := range tests {
		t.Run(tt.strategy.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.strategy.Profile())
		})
	}
}

func TestEveryStrategyHasAProfile(t *testing.T) {
	require.Len(t, All(), 3)
	for _, s := range All() {
		assert.True(t, s.Valid())
		assert.NotZero(t, s.Profile().ProductionRatio, s.String())
	}
}

func TestInvalidStrategy(t *testing.T) {
	s := Strategy(9)
	assert.False(t, s.Valid())
	assert.Equal(t, "strategy(9)", s.String())
	assert.Equal(t, Profile{}, s.Profile())
}
