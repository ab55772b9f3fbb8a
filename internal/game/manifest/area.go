package manifest

import (
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/physics"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/vmath"
)

// StatusFactory builds a fresh status for one target at time now.
type StatusFactory func(now gametime.Time, caster, target model.EntityID) status.Status

// AreaParams configures an AreaApplier.
type AreaParams struct {
	Name        string
	Center      vmath.Vec2
	HalfExtents vmath.Vec2
	Rotation    float64
	// Cooldown between two application rounds, seconds.
	Cooldown float64
	// Lifetime in seconds; zero keeps the area until it is removed.
	Lifetime  float64
	Secondary bool
}

// AreaApplier is a static ground rectangle applying a status to every
// character overlapping it.
//
// The cooldown gate is shared by the whole area: every character colliding in
// the tick the gate opens gets the status, then nobody does until the
// cooldown has elapsed.
type AreaApplier struct {
	base
	params       AreaParams
	factory      StatusFactory
	collider     model.ColliderHandle
	nextActionAt gametime.Time
	until        gametime.Time
}

// NewAreaApplier creates the area and registers its sensor collider.
func NewAreaApplier(caster model.EntityID, now gametime.Time, p AreaParams, factory StatusFactory, phys *physics.World) *AreaApplier {
	a := &AreaApplier{
		base:     base{caster: caster, createdAt: now},
		params:   p,
		factory:  factory,
		collider: phys.AddStaticCuboid(model.NoEntity, p.Center, p.HalfExtents, p.Rotation),
	}
	if p.Lifetime > 0 {
		a.until = now.AddSeconds(p.Lifetime)
	}
	return a
}

// Collider returns the sensor handle.
func (a *AreaApplier) Collider() model.ColliderHandle { return a.collider }

// NextActionAt returns when the gate opens again.
func (a *AreaApplier) NextActionAt() gametime.Time { return a.nextActionAt }

func (a *AreaApplier) Update(_ model.EntityID, collisions []physics.Collision, env *Env) bool {
	if a.until != 0 && a.until.HasAlreadyPassed(env.Now) {
		return true
	}
	if !a.nextActionAt.HasAlreadyPassed(env.Now) {
		return false
	}

	matched := false
	for _, c := range collisions {
		if c.OtherCollider != a.collider {
			continue
		}
		if _, ok := env.World.Character(c.Character); !ok {
			continue
		}
		env.Statuses.Enqueue(status.ApplyRequest{
			Source:    a.caster,
			Target:    c.Character,
			Status:    a.factory(env.Now, a.caster, c.Character),
			Secondary: a.params.Secondary,
		})
		matched = true
	}
	if matched {
		a.nextActionAt = env.Now.AddSeconds(a.params.Cooldown)
	}
	return false
}

// Teardown removes the sensor from the physics world.
func (a *AreaApplier) Teardown(phys *physics.World) {
	phys.Remove(a.collider)
}

// Render draws the area rectangle and a name plate, grey while on cooldown.
func (a *AreaApplier) Render(now gametime.Time, cmds *render.Commands) {
	size := a.params.HalfExtents.Scale(2)
	cmds.Rectangle(a.params.Center.WithHeight(0), size, a.params.Rotation, render.RGBA(0, 1, 0, 1))

	color := render.RGBA(0, 1, 0, 1)
	if a.nextActionAt.HasNotPassedYet(now) {
		color = render.RGBA(0.3, 0.3, 0.3, 1)
	}
	cmds.Billboard(a.params.Name, a.params.Center.WithHeight(3), vmath.V2(1, 0.25), 0, color)
}
