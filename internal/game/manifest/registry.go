package manifest

import (
	"log/slog"
	"slices"

	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/physics"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/world"
)

type spawned struct {
	id model.EntityID
	m  Manifestation
}

// Registry owns every live manifestation under its entity id.
//
// Spawned manifestations are promoted at the start of the next Update, so a
// manifestation created by a cast is first updated one tick later.
type Registry struct {
	ids     *world.IDGenerator
	phys    *physics.World
	pending []spawned
	live    map[model.EntityID]Manifestation
}

// NewRegistry creates an empty registry.
func NewRegistry(ids *world.IDGenerator, phys *physics.World) *Registry {
	return &Registry{
		ids:  ids,
		phys: phys,
		live: make(map[model.EntityID]Manifestation),
	}
}

// Spawn stores m under a fresh entity id and returns the id.
func (r *Registry) Spawn(m Manifestation) model.EntityID {
	id := r.ids.NextEphemeralID()
	r.pending = append(r.pending, spawned{id: id, m: m})
	return id
}

// Update promotes spawned manifestations, then updates every live one in id
// order and destroys those reporting done.
func (r *Registry) Update(collisions []physics.Collision, env *Env) {
	for _, s := range r.pending {
		r.live[s.id] = s.m
	}
	r.pending = r.pending[:0]

	for _, id := range r.liveIDs() {
		m := r.live[id]
		if m.Update(id, collisions, env) {
			r.destroy(id, m)
		}
	}
}

// Remove deletes a manifestation from outside (the entity was removed).
// Returns false for unknown ids.
func (r *Registry) Remove(id model.EntityID) bool {
	if m, ok := r.live[id]; ok {
		r.destroy(id, m)
		return true
	}
	for i, s := range r.pending {
		if s.id == id {
			r.pending = slices.Delete(r.pending, i, i+1)
			if t, ok := s.m.(Teardowner); ok {
				t.Teardown(r.phys)
			}
			return true
		}
	}
	return false
}

// Get returns a live manifestation.
func (r *Registry) Get(id model.EntityID) (Manifestation, bool) {
	m, ok := r.live[id]
	return m, ok
}

// Len returns number of live manifestations.
func (r *Registry) Len() int {
	return len(r.live)
}

// PendingLen returns number of manifestations waiting for promotion.
func (r *Registry) PendingLen() int {
	return len(r.pending)
}

// Render collects draw requests of live manifestations.
func (r *Registry) Render(now gametime.Time, cmds *render.Commands) {
	for _, id := range r.liveIDs() {
		r.live[id].Render(now, cmds)
	}
}

func (r *Registry) destroy(id model.EntityID, m Manifestation) {
	delete(r.live, id)
	if t, ok := m.(Teardowner); ok {
		t.Teardown(r.phys)
	}
	slog.Debug("manifestation destroyed", "id", id, "caster", m.Caster())
}

func (r *Registry) liveIDs() []model.EntityID {
	ids := make([]model.EntityID, 0, len(r.live))
	for id := range r.live {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
