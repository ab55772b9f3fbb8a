// Package physics is the narrow collider world the simulation consumes:
// static ground cuboids (sensors placed by skills) and character circles.
// It only reports overlaps; it never resolves contacts.
package physics

import (
	"math"
	"slices"

	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/vmath"
)

// DefaultCharacterRadius is the collider radius of a character.
const DefaultCharacterRadius = 0.5

type shape uint8

const (
	shapeCuboid shape = iota
	shapeCircle
)

type collider struct {
	shape    shape
	entity   model.EntityID
	center   vmath.Vec2
	extents  vmath.Vec2 // half extents, cuboid only
	rotation float64    // radians, cuboid only
	radius   float64    // circle only
}

// Collision reports a character overlapping another collider this step.
type Collision struct {
	Character         model.EntityID
	CharacterCollider model.ColliderHandle
	OtherCollider     model.ColliderHandle
}

// World owns colliders. Not safe for concurrent use.
type World struct {
	next       model.ColliderHandle
	colliders  map[model.ColliderHandle]*collider
	collisions []Collision
}

// NewWorld creates an empty collider world.
func NewWorld() *World {
	return &World{colliders: make(map[model.ColliderHandle]*collider)}
}

func (w *World) insert(c *collider) model.ColliderHandle {
	w.next++
	w.colliders[w.next] = c
	return w.next
}

// AddStaticCuboid adds a ground rectangle owned by entity.
func (w *World) AddStaticCuboid(entity model.EntityID, center, halfExtents vmath.Vec2, rotation float64) model.ColliderHandle {
	return w.insert(&collider{
		shape:    shapeCuboid,
		entity:   entity,
		center:   center,
		extents:  halfExtents,
		rotation: rotation,
	})
}

// AddCharacterCircle adds a character collider.
func (w *World) AddCharacterCircle(entity model.EntityID, pos vmath.Vec2, radius float64) model.ColliderHandle {
	return w.insert(&collider{shape: shapeCircle, entity: entity, center: pos, radius: radius})
}

// SetPosition moves a collider. Unknown handles are ignored.
func (w *World) SetPosition(h model.ColliderHandle, pos vmath.Vec2) {
	if c, ok := w.colliders[h]; ok {
		c.center = pos
	}
}

// Remove deletes a collider. Removing twice is a no-op.
func (w *World) Remove(h model.ColliderHandle) {
	delete(w.colliders, h)
}

// Contains reports whether the handle is alive.
func (w *World) Contains(h model.ColliderHandle) bool {
	_, ok := w.colliders[h]
	return ok
}

// EntityOf returns the entity owning a collider.
func (w *World) EntityOf(h model.ColliderHandle) (model.EntityID, bool) {
	c, ok := w.colliders[h]
	if !ok {
		return model.NoEntity, false
	}
	return c.entity, true
}

// RemoveCharactersWhere drops character circles whose entity matches gone.
func (w *World) RemoveCharactersWhere(gone func(model.EntityID) bool) {
	for h, c := range w.colliders {
		if c.shape == shapeCircle && gone(c.entity) {
			delete(w.colliders, h)
		}
	}
}

// Len returns number of colliders.
func (w *World) Len() int {
	return len(w.colliders)
}

// Step recomputes the overlap list. Order is by character handle then by
// other handle, so results are deterministic.
func (w *World) Step() {
	w.collisions = w.collisions[:0]

	handles := make([]model.ColliderHandle, 0, len(w.colliders))
	for h := range w.colliders {
		handles = append(handles, h)
	}
	slices.Sort(handles)

	for _, ch := range handles {
		circle := w.colliders[ch]
		if circle.shape != shapeCircle {
			continue
		}
		for _, oh := range handles {
			if oh == ch {
				continue
			}
			other := w.colliders[oh]
			if other.entity == circle.entity {
				continue
			}
			if overlaps(circle, other) {
				w.collisions = append(w.collisions, Collision{
					Character:         circle.entity,
					CharacterCollider: ch,
					OtherCollider:     oh,
				})
			}
		}
	}
}

// Collisions returns the overlaps computed by the last Step.
func (w *World) Collisions() []Collision {
	return w.collisions
}

func overlaps(circle, other *collider) bool {
	switch other.shape {
	case shapeCircle:
		return circle.center.Distance(other.center) <= circle.radius+other.radius
	case shapeCuboid:
		return circleIntersectsCuboid(circle.center, circle.radius, other)
	default:
		return false
	}
}

// circleIntersectsCuboid moves the circle center into the cuboid's local
// frame and clamps it to the half extents.
func circleIntersectsCuboid(p vmath.Vec2, r float64, box *collider) bool {
	d := p.Sub(box.center)
	sin, cos := math.Sincos(-box.rotation)
	local := vmath.V2(d.X*cos-d.Y*sin, d.X*sin+d.Y*cos)

	closest := vmath.V2(
		clamp(local.X, -box.extents.X, box.extents.X),
		clamp(local.Y, -box.extents.Y, box.extents.Y),
	)
	return local.Distance(closest) <= r
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
