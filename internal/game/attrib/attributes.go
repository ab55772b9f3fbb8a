// Package attrib computes a character's effective attributes from its base
// attributes and the time-bounded modifiers its statuses contribute.
package attrib

// Attributes are the modifiable combat attributes of a character.
// Armor is a damage-reduction percentage; WalkingSpeed and AttackSpeed are
// percentages where 100 means unmodified.
type Attributes struct {
	MaxHP        int32   `yaml:"max_hp"        json:"maxHp"`
	Armor        float64 `yaml:"armor"         json:"armor"`
	WalkingSpeed float64 `yaml:"walking_speed" json:"walkingSpeed"`
	AttackRange  float64 `yaml:"attack_range"  json:"attackRange"`
	AttackDamage float64 `yaml:"attack_damage" json:"attackDamage"`
	AttackSpeed  float64 `yaml:"attack_speed"  json:"attackSpeed"`
}

// DefaultAttributes returns the attributes of an unequipped character.
func DefaultAttributes() Attributes {
	return Attributes{
		MaxHP:        2000,
		Armor:        10,
		WalkingSpeed: 100,
		AttackRange:  2,
		AttackDamage: 76,
		AttackSpeed:  100,
	}
}

// WalkingSpeedFactor returns WalkingSpeed as a ratio (1.0 = normal).
func (a Attributes) WalkingSpeedFactor() float64 {
	return a.WalkingSpeed / 100
}
