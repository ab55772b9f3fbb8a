package model

import "github.com/udisondev/skillsim/internal/vmath"

// IntentionKind — что контроллер хочет от своего персонажа в этом тике.
type IntentionKind int32

const (
	// IntentionNone - no intention this tick
	IntentionNone IntentionKind = iota
	// IntentionMoveTo - walk to a clicked position
	IntentionMoveTo
	// IntentionMoveTowardsMouse - keep walking towards the cursor position
	IntentionMoveTowardsMouse
	// IntentionAttack - attack the target entity
	IntentionAttack
)

// String returns human-readable intention name
func (k IntentionKind) String() string {
	switch k {
	case IntentionNone:
		return "NONE"
	case IntentionMoveTo:
		return "MOVE_TO"
	case IntentionMoveTowardsMouse:
		return "MOVE_TOWARDS_MOUSE"
	case IntentionAttack:
		return "ATTACK"
	default:
		return "UNKNOWN"
	}
}

// Intention is a controller's request for its controlled character.
// Pos is set for movement kinds, Target for IntentionAttack.
type Intention struct {
	Kind   IntentionKind
	Pos    vmath.Vec2
	Target EntityID
}

// NoIntention is the zero intention.
var NoIntention = Intention{}

// MoveTo builds a MoveTo intention.
func MoveTo(pos vmath.Vec2) Intention {
	return Intention{Kind: IntentionMoveTo, Pos: pos}
}

// MoveTowardsMouse builds a MoveTowardsMouse intention.
func MoveTowardsMouse(pos vmath.Vec2) Intention {
	return Intention{Kind: IntentionMoveTowardsMouse, Pos: pos}
}

// Attack builds an Attack intention.
func Attack(target EntityID) Intention {
	return Intention{Kind: IntentionAttack, Target: target}
}

// IsMovement reports whether the intention carries a destination.
func (i Intention) IsMovement() bool {
	return i.Kind == IntentionMoveTo || i.Kind == IntentionMoveTowardsMouse
}
