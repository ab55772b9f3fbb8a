package attrib

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillsim/internal/gametime"
)

func TestCollector_AdditiveThenPercentage(t *testing.T) {
	c := NewCollector(StackMultiplicative)
	base := DefaultAttributes()
	base.Armor = 100

	c.ChangeArmor(Percent(50), 0, 10)
	c.ChangeArmor(Add(20), 0, 10)

	for _, now := range []gametime.Time{0, 2.5, 9.99} {
		got := c.Compute(base, now)
		assert.InDelta(t, 180.0, got.Armor, 1e-9, "now=%v", now)
	}
}

func TestCollector_WindowBounds(t *testing.T) {
	c := NewCollector(StackMultiplicative)
	base := DefaultAttributes()

	c.ChangeWalkingSpeed(Percent(50), 1, 2)

	assert.InDelta(t, 100.0, c.Compute(base, 0.99).WalkingSpeed, 1e-9, "before validFrom")
	assert.InDelta(t, 150.0, c.Compute(base, 1).WalkingSpeed, 1e-9, "validFrom inclusive")
	assert.InDelta(t, 100.0, c.Compute(base, 2).WalkingSpeed, 1e-9, "validUntil exclusive")
}

func TestCollector_StackingPolicies(t *testing.T) {
	base := DefaultAttributes()
	base.AttackDamage = 100

	tests := []struct {
		name     string
		stacking Stacking
		want     float64
	}{
		{"multiplicative", StackMultiplicative, 100 * 1.5 * 1.5},
		{"additive", StackAdditive, 100 * 2.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCollector(tt.stacking)
			c.ChangeAttackDamage(Percent(50), 0, 10)
			c.ChangeAttackDamage(Percent(50), 0, 10)
			assert.InDelta(t, tt.want, c.Compute(base, 1).AttackDamage, 1e-9)
		})
	}
}

func TestCollector_ResetAndUntouchedChannels(t *testing.T) {
	c := NewCollector(StackMultiplicative)
	base := DefaultAttributes()

	c.ChangeAttackRange(Add(3), 0, 10)
	c.ChangeAttackSpeed(Percent(-20), 0, 10)
	got := c.Compute(base, 1)
	assert.InDelta(t, base.AttackRange+3, got.AttackRange, 1e-9)
	assert.InDelta(t, 80.0, got.AttackSpeed, 1e-9)
	assert.Equal(t, base.Armor, got.Armor)
	assert.Equal(t, base.MaxHP, got.MaxHP)

	c.Reset()
	assert.Equal(t, 0, c.Len(ChannelAttackRange))
	assert.Equal(t, base, c.Compute(base, 1))
}

func TestParseHelpers(t *testing.T) {
	s, err := ParseStacking("additive")
	require.NoError(t, err)
	assert.Equal(t, StackAdditive, s)

	_, err = ParseStacking("bogus")
	assert.Error(t, err)

	k, err := ParseModifierKind("PERCENT")
	require.NoError(t, err)
	assert.Equal(t, Percentage, k)

	ch, ok := ParseChannel("armor")
	assert.True(t, ok)
	assert.Equal(t, ChannelArmor, ch)

	_, ok = ParseChannel("luck")
	assert.False(t, ok)
}
