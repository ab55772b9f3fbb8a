package model

// BasicAttackKind selects how a character's basic attack is delivered.
type BasicAttackKind int8

const (
	BasicAttackMelee BasicAttackKind = iota
	BasicAttackRanged
)

// BasicAttack describes a character's auto-attack. Bullet is only meaningful
// for ranged attacks.
type BasicAttack struct {
	Kind   BasicAttackKind
	Bullet string
}

// MeleeSimple is the default basic attack.
var MeleeSimple = BasicAttack{Kind: BasicAttackMelee}

// Ranged returns a ranged basic attack firing the given bullet type.
func Ranged(bullet string) BasicAttack {
	return BasicAttack{Kind: BasicAttackRanged, Bullet: bullet}
}
