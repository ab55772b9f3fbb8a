package status

import (
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/vmath"
	"github.com/udisondev/skillsim/internal/world"
)

// CarryStatus marks a character held in the air by a companion. While it is
// attached the character's own movement is suspended.
//
// The owner variant drops the character wherever the companion releases it.
// The ally variant records the drop position and puts the character there on
// teardown.
type CarryStatus struct {
	window
	carryOwner bool
	endPos     vmath.Vec2
}

// NewOwnerCarryStatus creates the status for a companion carrying its owner.
func NewOwnerCarryStatus(owner model.EntityID, now, until gametime.Time) *CarryStatus {
	return &CarryStatus{
		window:     window{caster: owner, started: now, until: until.Max(now)},
		carryOwner: true,
	}
}

// NewAllyCarryStatus creates the status for a companion carrying an ally to endPos.
func NewAllyCarryStatus(owner model.EntityID, now, until gametime.Time, endPos vmath.Vec2) *CarryStatus {
	return &CarryStatus{
		window: window{caster: owner, started: now, until: until.Max(now)},
		endPos: endPos,
	}
}

func (s *CarryStatus) Kind() Kind     { return KindCarry }
func (s *CarryStatus) Nature() Nature { return NatureNeutral }

// IsOwnerCarry reports whether the carried character is the companion's owner.
func (s *CarryStatus) IsOwnerCarry() bool { return s.carryOwner }

// EndPos is the drop position of the ally variant.
func (s *CarryStatus) EndPos() vmath.Vec2 { return s.endPos }

func (s *CarryStatus) OnApply(p ApplyParams) {
	p.Target.SetCarried(true)
}

func (s *CarryStatus) AddModifiers(*attrib.Collector) {}

func (s *CarryStatus) Update(p UpdateParams) Result {
	if s.expired(p.Now) {
		return RemoveIt
	}
	return KeepIt
}

// Teardown lands the character.
func (s *CarryStatus) Teardown(target *model.Character, _ *world.World) {
	target.SetCarried(false)
	target.SetHeight(0)
	if !s.carryOwner {
		target.SetPos(s.endPos)
	}
}
