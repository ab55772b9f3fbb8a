// Package gametime holds the monotonic simulation time scalar and the clock
// every simulation component reads.
package gametime

// Time is simulation time in seconds since the simulation started.
// Compare it through the helpers below, never with float equality.
type Time float64

// Seconds returns the raw scalar.
func (t Time) Seconds() float64 {
	return float64(t)
}

// AddSeconds returns t shifted by seconds.
func (t Time) AddSeconds(seconds float64) Time {
	return t + Time(seconds)
}

// ElapsedSince returns t - other in seconds.
func (t Time) ElapsedSince(other Time) float64 {
	return float64(t - other)
}

// HasAlreadyPassed reports whether t is at or before now.
// A status with until.HasAlreadyPassed(now) is expired.
func (t Time) HasAlreadyPassed(now Time) bool {
	return t <= now
}

// HasNotPassedYet reports whether t is still in the future relative to now.
func (t Time) HasNotPassedYet(now Time) bool {
	return t > now
}

// IsEarlierThan reports whether t < other.
func (t Time) IsEarlierThan(other Time) bool {
	return t < other
}

// PercentageBetween returns how far t is inside [from, to] as a ratio
// (0 at from, 1 at to; values outside the window are not clamped).
//
// Undefined for a zero-length window: callers must guard from != to.
func (t Time) PercentageBetween(from, to Time) float64 {
	return float64(t-from) / float64(to-from)
}

// Max returns the later of t and other.
func (t Time) Max(other Time) Time {
	if other > t {
		return other
	}
	return t
}
