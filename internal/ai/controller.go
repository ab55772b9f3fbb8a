package ai

import (
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/world"
)

// Context is the simulation state an AI tick reads and writes.
type Context struct {
	Now      gametime.Time
	Dt       float64
	World    *world.World
	Statuses *status.Engine
	Events   *event.Queues
}

// Controller is an autonomous per-tick decision maker.
type Controller interface {
	// Start is called on registration.
	Start()

	// Stop is called when the controller is unregistered.
	Stop()

	// Tick runs one decision step. Returning false asks the manager to
	// unregister the controller (its entity is gone).
	Tick(ctx *Context) bool
}
