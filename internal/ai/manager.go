package ai

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/render"
)

// Manager ticks every registered controller once per simulation step, in
// entity id order. It is driven by the simulation loop, not by its own timer.
type Manager struct {
	controllers map[model.EntityID]Controller
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{controllers: make(map[model.EntityID]Controller)}
}

// Register registers a controller under an entity id and starts it.
func (m *Manager) Register(id model.EntityID, controller Controller) {
	if old, ok := m.controllers[id]; ok {
		old.Stop()
	}
	m.controllers[id] = controller
	controller.Start()

	slog.Debug("AI controller registered", "id", id, "type", fmt.Sprintf("%T", controller))
}

// Unregister stops and removes a controller.
func (m *Manager) Unregister(id model.EntityID) {
	controller, ok := m.controllers[id]
	if !ok {
		return
	}
	delete(m.controllers, id)
	controller.Stop()

	slog.Debug("AI controller unregistered", "id", id)
}

// TickAll ticks all controllers and unregisters those whose entity is gone.
func (m *Manager) TickAll(ctx *Context) {
	ids := m.ids()
	for _, id := range ids {
		controller, ok := m.controllers[id]
		if !ok {
			continue
		}
		if !controller.Tick(ctx) {
			m.Unregister(id)
		}
	}

	if len(ids) > 0 && IsDebugEnabled() {
		slog.Debug("AI tick completed", "controllers", len(ids))
	}
}

// Count returns number of registered controllers.
func (m *Manager) Count() int {
	return len(m.controllers)
}

// GetController returns the controller registered under id.
func (m *Manager) GetController(id model.EntityID) (Controller, error) {
	controller, ok := m.controllers[id]
	if !ok {
		return nil, fmt.Errorf("controller not found for id %d", id)
	}
	return controller, nil
}

// CompanionOf returns the companion owned by owner.
func (m *Manager) CompanionOf(owner model.EntityID) (*Companion, bool) {
	for _, c := range m.Companions() {
		if c.Owner() == owner {
			return c, true
		}
	}
	return nil, false
}

// Companions returns registered companions in id order.
func (m *Manager) Companions() []*Companion {
	var out []*Companion
	for _, id := range m.ids() {
		if c, ok := m.controllers[id].(*Companion); ok {
			out = append(out, c)
		}
	}
	return out
}

// Render collects draw requests of controllers with a body (companions).
func (m *Manager) Render(now gametime.Time, cmds *render.Commands) {
	for _, c := range m.Companions() {
		c.Render(now, cmds)
	}
}

func (m *Manager) ids() []model.EntityID {
	ids := make([]model.EntityID, 0, len(m.controllers))
	for id := range m.controllers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
