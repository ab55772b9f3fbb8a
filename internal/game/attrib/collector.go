package attrib

import "github.com/udisondev/skillsim/internal/gametime"

// Channel names one modifiable attribute.
type Channel int8

const (
	ChannelArmor Channel = iota
	ChannelWalkingSpeed
	ChannelAttackRange
	ChannelAttackDamage
	ChannelAttackSpeed

	channelCount
)

var channelNames = [channelCount]string{
	ChannelArmor:        "armor",
	ChannelWalkingSpeed: "walking_speed",
	ChannelAttackRange:  "attack_range",
	ChannelAttackDamage: "attack_damage",
	ChannelAttackSpeed:  "attack_speed",
}

func (c Channel) String() string {
	if c < 0 || c >= channelCount {
		return "unknown"
	}
	return channelNames[c]
}

// ParseChannel maps config/stat names to channels.
func ParseChannel(name string) (Channel, bool) {
	switch name {
	case "armor":
		return ChannelArmor, true
	case "walking_speed":
		return ChannelWalkingSpeed, true
	case "attack_range":
		return ChannelAttackRange, true
	case "attack_damage":
		return ChannelAttackDamage, true
	case "attack_speed":
		return ChannelAttackSpeed, true
	default:
		return 0, false
	}
}

type timedModifier struct {
	mod        Modifier
	validFrom  gametime.Time
	validUntil gametime.Time
}

func (tm timedModifier) activeAt(now gametime.Time) bool {
	return tm.validFrom <= now && now < tm.validUntil
}

// Collector aggregates time-bounded modifiers per attribute channel.
// It is rebuilt every tick: Reset, let every active status contribute, then
// Compute.
//
// Not safe for concurrent use; the simulation tick owns it.
type Collector struct {
	stacking Stacking
	channels [channelCount][]timedModifier
}

// NewCollector creates an empty collector with the given stacking policy.
func NewCollector(stacking Stacking) *Collector {
	return &Collector{stacking: stacking}
}

// Reset drops every registered modifier, keeping allocated capacity.
func (c *Collector) Reset() {
	for i := range c.channels {
		c.channels[i] = c.channels[i][:0]
	}
}

// Change registers a modifier on an arbitrary channel.
func (c *Collector) Change(ch Channel, mod Modifier, validFrom, validUntil gametime.Time) {
	if ch < 0 || ch >= channelCount {
		return
	}
	c.channels[ch] = append(c.channels[ch], timedModifier{mod: mod, validFrom: validFrom, validUntil: validUntil})
}

func (c *Collector) ChangeArmor(mod Modifier, validFrom, validUntil gametime.Time) {
	c.Change(ChannelArmor, mod, validFrom, validUntil)
}

func (c *Collector) ChangeWalkingSpeed(mod Modifier, validFrom, validUntil gametime.Time) {
	c.Change(ChannelWalkingSpeed, mod, validFrom, validUntil)
}

func (c *Collector) ChangeAttackRange(mod Modifier, validFrom, validUntil gametime.Time) {
	c.Change(ChannelAttackRange, mod, validFrom, validUntil)
}

func (c *Collector) ChangeAttackDamage(mod Modifier, validFrom, validUntil gametime.Time) {
	c.Change(ChannelAttackDamage, mod, validFrom, validUntil)
}

func (c *Collector) ChangeAttackSpeed(mod Modifier, validFrom, validUntil gametime.Time) {
	c.Change(ChannelAttackSpeed, mod, validFrom, validUntil)
}

// Len returns the number of registered modifiers on a channel, expired ones included.
func (c *Collector) Len(ch Channel) int {
	if ch < 0 || ch >= channelCount {
		return 0
	}
	return len(c.channels[ch])
}

// Compute returns base with every modifier active at now applied.
// MaxHP is not a modifier channel and is copied through.
func (c *Collector) Compute(base Attributes, now gametime.Time) Attributes {
	out := base
	out.Armor = c.apply(ChannelArmor, base.Armor, now)
	out.WalkingSpeed = c.apply(ChannelWalkingSpeed, base.WalkingSpeed, now)
	out.AttackRange = c.apply(ChannelAttackRange, base.AttackRange, now)
	out.AttackDamage = c.apply(ChannelAttackDamage, base.AttackDamage, now)
	out.AttackSpeed = c.apply(ChannelAttackSpeed, base.AttackSpeed, now)
	return out
}

// apply: additive modifiers summed first, percentage modifiers second.
func (c *Collector) apply(ch Channel, base float64, now gametime.Time) float64 {
	mods := c.channels[ch]
	if len(mods) == 0 {
		return base
	}

	value := base
	for _, tm := range mods {
		if tm.mod.Kind == Additive && tm.activeAt(now) {
			value += tm.mod.Value
		}
	}

	mul := 1.0
	sum := 0.0
	for _, tm := range mods {
		if tm.mod.Kind != Percentage || !tm.activeAt(now) {
			continue
		}
		mul *= 1 + tm.mod.Value/100
		sum += tm.mod.Value / 100
	}

	if c.stacking == StackAdditive {
		return value * (1 + sum)
	}
	return value * mul
}
