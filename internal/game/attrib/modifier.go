package attrib

import "fmt"

// ModifierKind defines how a modifier is applied.
type ModifierKind int8

const (
	Additive   ModifierKind = iota // flat bonus summed onto the base (e.g. +20 armor)
	Percentage                     // percentage bonus applied after additive ones (e.g. +50%)
)

func (k ModifierKind) String() string {
	switch k {
	case Additive:
		return "ADD"
	case Percentage:
		return "PERCENT"
	default:
		return "UNKNOWN"
	}
}

// ParseModifierKind parses "ADD" / "PERCENT" (case-sensitive, as written in configs).
func ParseModifierKind(s string) (ModifierKind, error) {
	switch s {
	case "ADD", "":
		return Additive, nil
	case "PERCENT":
		return Percentage, nil
	default:
		return Additive, fmt.Errorf("unknown modifier kind %q", s)
	}
}

// Modifier is a single attribute adjustment. It is immutable once registered.
type Modifier struct {
	Kind  ModifierKind
	Value float64
}

// Add returns an additive modifier.
func Add(v float64) Modifier {
	return Modifier{Kind: Additive, Value: v}
}

// Percent returns a percentage modifier (50 means +50%).
func Percent(v float64) Modifier {
	return Modifier{Kind: Percentage, Value: v}
}

// Stacking selects how several percentage modifiers on one attribute combine.
type Stacking int8

const (
	// StackMultiplicative: (base+add) * (1+p1) * (1+p2) ...
	StackMultiplicative Stacking = iota
	// StackAdditive: (base+add) * (1 + p1 + p2 + ...)
	StackAdditive
)

// ParseStacking parses the config value of attributes.percentage_stacking.
func ParseStacking(s string) (Stacking, error) {
	switch s {
	case "multiplicative", "":
		return StackMultiplicative, nil
	case "additive":
		return StackAdditive, nil
	default:
		return StackMultiplicative, fmt.Errorf("unknown percentage stacking %q", s)
	}
}
