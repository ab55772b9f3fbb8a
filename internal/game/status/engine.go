package status

import (
	"log/slog"
	"slices"

	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/world"
)

// ApplyRequest asks the engine to attach Status to Target.
// Secondary statuses stack; a main status replaces an existing main status of
// the same kind on the target.
type ApplyRequest struct {
	Source    model.EntityID
	Target    model.EntityID
	Status    Status
	Secondary bool
}

type entry struct {
	status    Status
	secondary bool
}

// Engine owns every active status of every character.
//
// Requests enqueued during a tick are applied by the next ApplyPending call,
// so statuses created by casts become visible one tick later.
// Not safe for concurrent use.
type Engine struct {
	world   *world.World
	pending []ApplyRequest
	active  map[model.EntityID][]entry
}

// NewEngine creates an engine bound to the character store.
func NewEngine(w *world.World) *Engine {
	return &Engine{
		world:  w,
		active: make(map[model.EntityID][]entry),
	}
}

// Enqueue buffers a request until the next ApplyPending.
func (e *Engine) Enqueue(r ApplyRequest) {
	e.pending = append(e.pending, r)
}

// PendingCount returns number of buffered requests.
func (e *Engine) PendingCount() int {
	return len(e.pending)
}

// ApplyPending drains buffered requests in arrival order.
func (e *Engine) ApplyPending(now gametime.Time, events *event.Queues) {
	pending := e.pending
	e.pending = nil

	for _, req := range pending {
		target, ok := e.world.Character(req.Target)
		if !ok {
			slog.Debug("status target gone, request dropped",
				"kind", req.Status.Kind(),
				"target", req.Target)
			continue
		}

		entries := e.active[req.Target]
		replaced := false
		if !req.Secondary {
			for i, existing := range entries {
				if existing.secondary || existing.status.Kind() != req.Status.Kind() {
					continue
				}
				e.teardown(existing.status, target)
				entries[i] = entry{status: req.Status}
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, entry{status: req.Status, secondary: req.Secondary})
		}
		e.active[req.Target] = entries

		req.Status.OnApply(ApplyParams{
			Now:    now,
			Source: req.Source,
			Target: target,
			World:  e.world,
			Events: events,
		})

		slog.Debug("status applied",
			"kind", req.Status.Kind(),
			"source", req.Source,
			"target", req.Target,
			"secondary", req.Secondary,
			"replaced", replaced)
	}
}

// Update runs every status once. Statuses reporting RemoveIt, or whose window
// has passed, are detached and torn down. Statuses of deleted characters are
// discarded.
func (e *Engine) Update(now gametime.Time, dt float64, events *event.Queues) {
	for _, id := range e.targets() {
		target, ok := e.world.Character(id)
		if !ok {
			delete(e.active, id)
			continue
		}

		entries := e.active[id]
		kept := entries[:0]
		for _, en := range entries {
			res := en.status.Update(UpdateParams{
				Now:    now,
				Dt:     dt,
				Target: target,
				World:  e.world,
				Events: events,
			})
			if res == RemoveIt || en.status.Until().HasAlreadyPassed(now) {
				e.teardown(en.status, target)
				slog.Debug("status removed", "kind", en.status.Kind(), "target", id)
				continue
			}
			kept = append(kept, en)
		}
		clear(entries[len(kept):])

		if len(kept) == 0 {
			delete(e.active, id)
		} else {
			e.active[id] = kept
		}
	}
}

// CollectModifiers asks every status of target to register its modifiers.
func (e *Engine) CollectModifiers(target model.EntityID, c *attrib.Collector) {
	for _, en := range e.active[target] {
		en.status.AddModifiers(c)
	}
}

// RebuildAttributes recomputes calculated attributes of every character from
// base attributes and status modifiers.
func (e *Engine) RebuildAttributes(now gametime.Time, c *attrib.Collector) {
	for _, ch := range e.world.Characters() {
		c.Reset()
		e.CollectModifiers(ch.ID(), c)
		ch.SetCalculatedAttributes(c.Compute(ch.BaseAttributes(), now))
	}
}

// RemoveWhere detaches statuses of kind on target matching pred and returns
// how many were removed.
func (e *Engine) RemoveWhere(target model.EntityID, kind Kind, pred func(Status) bool) int {
	entries, ok := e.active[target]
	if !ok {
		return 0
	}
	ch, _ := e.world.Character(target)

	removed := 0
	kept := entries[:0]
	for _, en := range entries {
		if en.status.Kind() == kind && pred(en.status) {
			if ch != nil {
				e.teardown(en.status, ch)
			}
			removed++
			continue
		}
		kept = append(kept, en)
	}
	clear(entries[len(kept):])
	e.active[target] = kept
	return removed
}

// Statuses returns active statuses of target in insertion order.
func (e *Engine) Statuses(target model.EntityID) []Status {
	entries := e.active[target]
	out := make([]Status, 0, len(entries))
	for _, en := range entries {
		out = append(out, en.status)
	}
	return out
}

// Has reports whether target carries a status of kind.
func (e *Engine) Has(target model.EntityID, kind Kind) bool {
	for _, en := range e.active[target] {
		if en.status.Kind() == kind {
			return true
		}
	}
	return false
}

// Count returns number of active statuses across all characters.
func (e *Engine) Count() int {
	n := 0
	for _, entries := range e.active {
		n += len(entries)
	}
	return n
}

// Render collects draw requests of statuses that have a look.
func (e *Engine) Render(now gametime.Time, cmds *render.Commands) {
	for _, id := range e.targets() {
		target, ok := e.world.Character(id)
		if !ok {
			continue
		}
		for _, en := range e.active[id] {
			if r, ok := en.status.(Renderer); ok {
				r.Render(now, target, cmds)
			}
		}
	}
}

func (e *Engine) teardown(s Status, target *model.Character) {
	if t, ok := s.(Teardowner); ok {
		t.Teardown(target, e.world)
	}
}

func (e *Engine) targets() []model.EntityID {
	ids := make([]model.EntityID, 0, len(e.active))
	for id := range e.active {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
