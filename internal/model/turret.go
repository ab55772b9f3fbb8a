package model

// Turret marks a character as a sentinel turret built by Owner.
// PreferredTarget, when set, overrides the turret's own target choice while
// it is alive and in range.
type Turret struct {
	Owner           EntityID
	PreferredTarget EntityID
}
