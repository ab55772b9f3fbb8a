// Package manifest holds free-standing skill manifestations (areas,
// projectiles) and the registry updating them every tick.
package manifest

import (
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/physics"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/world"
)

// Env is the simulation context a manifestation sees during its update.
type Env struct {
	Now      gametime.Time
	Dt       float64
	World    *world.World
	Physics  *physics.World
	Statuses *status.Engine
	Events   *event.Queues
}

// Manifestation is a skill effect living in the world on its own.
//
// The caster is a weak reference: implementations look it up when they need
// it and must tolerate its absence.
type Manifestation interface {
	Caster() model.EntityID
	CreatedAt() gametime.Time
	// Update advances the manifestation by one tick and reports whether it
	// is finished.
	Update(self model.EntityID, collisions []physics.Collision, env *Env) (done bool)
	// Render must not mutate state.
	Render(now gametime.Time, cmds *render.Commands)
}

// Teardowner is implemented by manifestations holding external resources,
// such as a collider in the physics world.
type Teardowner interface {
	Teardown(phys *physics.World)
}

type base struct {
	caster    model.EntityID
	createdAt gametime.Time
}

func (b base) Caster() model.EntityID   { return b.caster }
func (b base) CreatedAt() gametime.Time { return b.createdAt }
