package model

// Team — сторона конфликта. Персонажи одной команды — союзники.
type Team int8

const (
	TeamNeutral Team = iota
	TeamLeft
	TeamRight
)

// IsEnemyTo reports whether t and other fight each other.
// Neutral characters are nobody's enemy.
func (t Team) IsEnemyTo(other Team) bool {
	if t == TeamNeutral || other == TeamNeutral {
		return false
	}
	return t != other
}

// IsAllyTo reports whether t and other are on the same side.
func (t Team) IsAllyTo(other Team) bool {
	return !t.IsEnemyTo(other)
}

func (t Team) String() string {
	switch t {
	case TeamLeft:
		return "LEFT"
	case TeamRight:
		return "RIGHT"
	default:
		return "NEUTRAL"
	}
}

// ParseTeam parses config values "left", "right", "neutral".
func ParseTeam(s string) Team {
	switch s {
	case "left":
		return TeamLeft
	case "right":
		return TeamRight
	default:
		return TeamNeutral
	}
}
