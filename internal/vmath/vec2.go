// Package vmath provides the small float vector toolkit the simulation
// needs: planar and 3D vectors and a quadratic Bézier curve.
package vmath

import "math"

// epsilon below which a vector is treated as zero-length.
const epsilon = 1e-9

// Vec2 is a planar world coordinate or direction.
type Vec2 struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// V2 is a shorthand constructor.
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// Magnitude returns the euclidean length.
func (v Vec2) Magnitude() float64 {
	return math.Hypot(v.X, v.Y)
}

// Distance returns the euclidean distance between v and o.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Magnitude()
}

// Normalize returns the unit vector of v.
// ok is false for a zero-length vector; callers skip movement in that case.
func (v Vec2) Normalize() (unit Vec2, ok bool) {
	m := v.Magnitude()
	if m < epsilon {
		return Vec2{}, false
	}
	return Vec2{v.X / m, v.Y / m}, true
}

// Lerp interpolates linearly from v to o by t.
func (v Vec2) Lerp(o Vec2, t float64) Vec2 {
	return v.Add(o.Sub(v).Scale(t))
}

// WithHeight lifts v into 3D space, Y being the height axis.
func (v Vec2) WithHeight(h float64) Vec3 {
	return Vec3{X: v.X, Y: h, Z: v.Y}
}
