package ai

import (
	"log/slog"

	"github.com/udisondev/skillsim/internal/model"
)

// Sentinel drives a turret character: it picks the closest enemy in range,
// sticks to it while valid, and always switches to the owner's preferred
// target when that one is alive and in range.
//
// The decision is written as the controller's intention; the simulation turns
// an Attack intention into the character's target.
type Sentinel struct {
	controller model.ControllerID
	radius     float64
}

// NewSentinel creates the AI for the turret driven by controller.
func NewSentinel(controller model.ControllerID, radius float64) *Sentinel {
	return &Sentinel{controller: controller, radius: radius}
}

// ControllerID returns the controller entity this AI writes to.
func (s *Sentinel) ControllerID() model.ControllerID { return s.controller }

func (s *Sentinel) Start() {
	if IsDebugEnabled() {
		slog.Debug("sentinel AI started", "controller", s.controller, "radius", s.radius)
	}
}

func (s *Sentinel) Stop() {
	if IsDebugEnabled() {
		slog.Debug("sentinel AI stopped", "controller", s.controller)
	}
}

// Tick decides this tick's intention. When the turret character is gone the
// controller entity is deleted and false is returned.
func (s *Sentinel) Tick(ctx *Context) bool {
	ctrl, ok := ctx.World.Controller(s.controller)
	if !ok {
		return false
	}
	turret, ok := ctx.World.Character(ctrl.Controlled)
	if !ok {
		slog.Debug("turret gone, removing controller", "controller", s.controller, "turret", ctrl.Controlled)
		ctx.World.RemoveController(s.controller)
		return false
	}

	ctrl.SetIntention(s.decide(ctx, turret))
	return true
}

func (s *Sentinel) decide(ctx *Context, turret *model.Character) model.Intention {
	current := turret.Target()

	if marker, ok := ctx.World.Turret(turret.ID()); ok && marker.PreferredTarget.Valid() {
		preferred := marker.PreferredTarget
		if current != preferred {
			if p, ok := ctx.World.Character(preferred); ok && !p.IsDead() &&
				p.Pos().Distance(turret.Pos()) < s.radius {
				return model.Attack(preferred)
			}
		}
	}

	if current.Valid() {
		if t, ok := ctx.World.Character(current); ok && !t.IsDead() &&
			t.Pos().Distance(turret.Pos()) <= s.radius {
			return model.Attack(current)
		}
	}

	if enemy, ok := ctx.World.ClosestEnemyInArea(turret.Pos(), s.radius, turret.Team(), turret.ID()); ok {
		return model.Attack(enemy)
	}
	return model.NoIntention
}
