// Package event holds the outbound requests the simulation core emits during a
// tick: hp modifications, area attacks, visual effects and sounds. Consumers
// (combat resolver, renderer, audio) drain them once per tick.
package event

import (
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/vmath"
)

// HpModKind classifies an hp modification.
type HpModKind uint8

const (
	HpModBasicDamage HpModKind = iota
	HpModSpellDamage
	HpModPoison
	HpModHeal
)

func (k HpModKind) String() string {
	switch k {
	case HpModBasicDamage:
		return "BASIC_DAMAGE"
	case HpModSpellDamage:
		return "SPELL_DAMAGE"
	case HpModPoison:
		return "POISON"
	case HpModHeal:
		return "HEAL"
	default:
		return "UNKNOWN"
	}
}

// IsHeal reports whether the modification restores hp.
func (k HpModKind) IsHeal() bool {
	return k == HpModHeal
}

// HpModification requests an hp change of Target. Amount is always positive;
// Kind decides the sign.
type HpModification struct {
	Source model.EntityID `json:"source"`
	Target model.EntityID `json:"target"`
	Kind   HpModKind      `json:"kind"`
	Amount int32          `json:"amount"`
}

// Disk is a circular area on the ground plane.
type Disk struct {
	Center vmath.Vec2 `json:"center"`
	Radius float64    `json:"radius"`
}

// Contains reports whether p lies within the disk (boundary included).
func (d Disk) Contains(p vmath.Vec2) bool {
	return d.Center.Distance(p) <= d.Radius
}

// AreaAttack requests Kind/Amount against every enemy of Source inside Area,
// except the Except entity.
type AreaAttack struct {
	Source model.EntityID `json:"source"`
	Area   Disk           `json:"area"`
	Kind   HpModKind      `json:"kind"`
	Amount int32          `json:"amount"`
	Except model.EntityID `json:"except,omitempty"`
}

// PlayMode tells the renderer what to do when an effect animation ends.
type PlayMode uint8

const (
	PlayOnce PlayMode = iota
	PlayRepeat
)

// EffectSpawn requests a visual effect at a position. A nil DieAt means the
// effect lives until its animation ends.
type EffectSpawn struct {
	EffectID  string         `json:"effect"`
	Pos       vmath.Vec2     `json:"pos"`
	StartTime gametime.Time  `json:"start"`
	DieAt     *gametime.Time `json:"dieAt,omitempty"`
	PlayMode  PlayMode       `json:"playMode"`
}

// SoundSpawn requests a one-shot sound at a position.
type SoundSpawn struct {
	SoundID string     `json:"sound"`
	Pos     vmath.Vec2 `json:"pos"`
}
