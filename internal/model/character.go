package model

import (
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/vmath"
)

// Character — живое существо на карте (игрок, миньон, турель).
// Хранит позицию, команду, HP, таргет и атрибуты.
//
// Calculated attributes are derived: the simulation rebuilds them every tick
// from the base attributes and the modifiers of active statuses.
//
// Not safe for concurrent use: only the simulation tick touches characters.
type Character struct {
	id     EntityID
	name   string
	team   Team
	pos    vmath.Vec2
	height float64

	hp   int32
	dead bool

	target EntityID

	base        attrib.Attributes
	calculated  attrib.Attributes
	basicAttack BasicAttack

	// carried is set while a companion holds the character in the air;
	// regular movement of the character is suspended meanwhile.
	carried bool

	collider ColliderHandle
}

// NewCharacter создаёт персонажа с полным HP.
func NewCharacter(id EntityID, name string, team Team, pos vmath.Vec2, base attrib.Attributes) *Character {
	return &Character{
		id:          id,
		name:        name,
		team:        team,
		pos:         pos,
		hp:          base.MaxHP,
		base:        base,
		calculated:  base,
		basicAttack: MeleeSimple,
	}
}

// ID возвращает идентификатор (immutable).
func (c *Character) ID() EntityID { return c.id }

func (c *Character) Name() string { return c.name }

func (c *Character) Team() Team { return c.team }

// Pos возвращает позицию на плоскости.
func (c *Character) Pos() vmath.Vec2 { return c.pos }

func (c *Character) SetPos(p vmath.Vec2) { c.pos = p }

// Height — высота над землёй (ненулевая только когда персонажа несут).
func (c *Character) Height() float64 { return c.height }

func (c *Character) SetHeight(h float64) {
	if h < 0 {
		h = 0
	}
	c.height = h
}

func (c *Character) HP() int32 { return c.hp }

// SetHP устанавливает HP с валидацией (clamp 0..maxHP). Zero HP kills.
func (c *Character) SetHP(hp int32) {
	maxHP := c.calculated.MaxHP
	if hp > maxHP {
		hp = maxHP
	}
	if hp <= 0 {
		hp = 0
		c.dead = true
	}
	c.hp = hp
}

// IsDead reports whether the character has died.
func (c *Character) IsDead() bool { return c.dead }

// Target returns the current target or NoEntity.
func (c *Character) Target() EntityID { return c.target }

func (c *Character) SetTarget(id EntityID) { c.target = id }

func (c *Character) ClearTarget() { c.target = NoEntity }

// BaseAttributes returns attributes before status modifiers.
func (c *Character) BaseAttributes() attrib.Attributes { return c.base }

// CalculatedAttributes returns the effective attributes of the current tick.
func (c *Character) CalculatedAttributes() attrib.Attributes { return c.calculated }

// SetCalculatedAttributes stores this tick's effective attributes and clamps HP
// to the (possibly changed) max HP.
func (c *Character) SetCalculatedAttributes(a attrib.Attributes) {
	c.calculated = a
	if c.hp > a.MaxHP {
		c.hp = a.MaxHP
	}
}

func (c *Character) BasicAttack() BasicAttack { return c.basicAttack }

func (c *Character) SetBasicAttack(a BasicAttack) { c.basicAttack = a }

// IsCarried reports whether a companion currently holds the character.
func (c *Character) IsCarried() bool { return c.carried }

func (c *Character) SetCarried(v bool) { c.carried = v }

// Collider returns the physics collider handle of the character.
func (c *Character) Collider() ColliderHandle { return c.collider }

func (c *Character) SetCollider(h ColliderHandle) { c.collider = h }
