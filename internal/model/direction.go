package model

import (
	"math"

	"github.com/udisondev/skillsim/internal/vmath"
)

// Direction is one of 8 sprite facing directions, 0 = south, clockwise.
type Direction uint8

// DetermineDir returns the facing direction for looking from `from` at `target`.
func DetermineDir(target, from vmath.Vec2) Direction {
	d := target.Sub(from)
	if d.X == 0 && d.Y == 0 {
		return 0
	}
	// angle measured from south (negative Y), clockwise
	angle := math.Atan2(-d.X, -d.Y)
	if angle < 0 {
		angle += 2 * math.Pi
	}
	sector := int(math.Round(angle/(math.Pi/4))) % 8
	return Direction(sector)
}
