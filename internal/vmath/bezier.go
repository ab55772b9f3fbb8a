package vmath

// QuadraticBezier is a three-point curve in 3D space.
type QuadraticBezier struct {
	Start Vec3
	Ctrl  Vec3
	End   Vec3
}

// Evaluate returns the point at parameter t (0 = Start, 1 = End).
func (b QuadraticBezier) Evaluate(t float64) Vec3 {
	u := 1 - t
	return b.Start.Scale(u * u).
		Add(b.Ctrl.Scale(2 * u * t)).
		Add(b.End.Scale(t * t))
}
