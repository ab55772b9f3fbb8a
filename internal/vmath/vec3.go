package vmath

import "math"

// Vec3 is a 3D position where Y is the height above the ground plane and
// (X, Z) maps to the planar Vec2 (X, Y).
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// V3 is a shorthand constructor.
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func (v Vec3) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns the unit vector of v; ok is false for zero length.
func (v Vec3) Normalize() (unit Vec3, ok bool) {
	m := v.Magnitude()
	if m < epsilon {
		return Vec3{}, false
	}
	return Vec3{v.X / m, v.Y / m, v.Z / m}, true
}

// Lerp interpolates linearly from v to o by t.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 {
	return v.Add(o.Sub(v).Scale(t))
}

// Planar drops the height component.
func (v Vec3) Planar() Vec2 {
	return Vec2{X: v.X, Y: v.Z}
}
