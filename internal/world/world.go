package world

import (
	"errors"
	"slices"

	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/vmath"
)

// ErrCharacterNotFound is returned by lookups of deleted or unknown characters.
var ErrCharacterNotFound = errors.New("character not found")

// World stores characters, controllers and turret markers.
// Everything is owned by the simulation goroutine; no locking.
type World struct {
	ids         *IDGenerator
	characters  map[model.EntityID]*model.Character
	controllers map[model.ControllerID]*model.Controller
	turrets     map[model.EntityID]*model.Turret
}

// New creates an empty world.
func New() *World {
	return &World{
		ids:         NewIDGenerator(),
		characters:  make(map[model.EntityID]*model.Character),
		controllers: make(map[model.ControllerID]*model.Controller),
		turrets:     make(map[model.EntityID]*model.Turret),
	}
}

// IDs returns the id generator shared by everything living in this world.
func (w *World) IDs() *IDGenerator {
	return w.ids
}

// SpawnCharacter creates a character with a fresh id and adds it to the world.
func (w *World) SpawnCharacter(name string, team model.Team, pos vmath.Vec2, base attrib.Attributes) *model.Character {
	c := model.NewCharacter(w.ids.NextCharacterID(), name, team, pos, base)
	w.characters[c.ID()] = c
	return c
}

// Character returns character by id.
func (w *World) Character(id model.EntityID) (*model.Character, bool) {
	c, ok := w.characters[id]
	return c, ok
}

// GetCharacter is Character with an error for callers outside the tick.
func (w *World) GetCharacter(id model.EntityID) (*model.Character, error) {
	c, ok := w.characters[id]
	if !ok {
		return nil, ErrCharacterNotFound
	}
	return c, nil
}

// CharacterByName performs a linear lookup by name.
func (w *World) CharacterByName(name string) (*model.Character, bool) {
	for _, c := range w.Characters() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// RemoveCharacter deletes the character together with its turret marker.
// Controllers pointing at it are left for their AI to clean up.
func (w *World) RemoveCharacter(id model.EntityID) {
	delete(w.characters, id)
	delete(w.turrets, id)
}

// Characters returns all characters ordered by id.
func (w *World) Characters() []*model.Character {
	out := make([]*model.Character, 0, len(w.characters))
	for _, c := range w.characters {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *model.Character) int {
		return int(a.ID()) - int(b.ID())
	})
	return out
}

// CharacterCount returns number of characters.
func (w *World) CharacterCount() int {
	return len(w.characters)
}

// AddController creates a controller for the character.
func (w *World) AddController(controlled model.EntityID) *model.Controller {
	ctrl := model.NewController(w.ids.NextControllerID(), controlled)
	w.controllers[ctrl.ID] = ctrl
	return ctrl
}

// Controller returns controller by id.
func (w *World) Controller(id model.ControllerID) (*model.Controller, bool) {
	c, ok := w.controllers[id]
	return c, ok
}

// ControllerOf returns the first controller (by id) driving the character.
func (w *World) ControllerOf(charID model.EntityID) (*model.Controller, bool) {
	for _, ctrl := range w.Controllers() {
		if ctrl.Controlled == charID {
			return ctrl, true
		}
	}
	return nil, false
}

// RemoveController deletes the controller entity.
func (w *World) RemoveController(id model.ControllerID) {
	delete(w.controllers, id)
}

// Controllers returns all controllers ordered by id.
func (w *World) Controllers() []*model.Controller {
	out := make([]*model.Controller, 0, len(w.controllers))
	for _, c := range w.controllers {
		out = append(out, c)
	}
	slices.SortFunc(out, func(a, b *model.Controller) int {
		return int(a.ID) - int(b.ID)
	})
	return out
}

// MarkTurret attaches a turret marker to the character.
func (w *World) MarkTurret(charID model.EntityID, t model.Turret) {
	w.turrets[charID] = &t
}

// Turret returns the turret marker of the character, if any.
func (w *World) Turret(charID model.EntityID) (*model.Turret, bool) {
	t, ok := w.turrets[charID]
	return t, ok
}

// TurretsOwnedBy returns ids of turret characters built by owner, ordered.
func (w *World) TurretsOwnedBy(owner model.EntityID) []model.EntityID {
	var out []model.EntityID
	for id, t := range w.turrets {
		if t.Owner == owner {
			out = append(out, id)
		}
	}
	slices.Sort(out)
	return out
}

// ClosestEnemyInArea returns the living character nearest to pos, within
// radius, whose team is hostile to team. Ties resolve to the lower id.
func (w *World) ClosestEnemyInArea(pos vmath.Vec2, radius float64, team model.Team, except model.EntityID) (model.EntityID, bool) {
	best := model.NoEntity
	bestDist := radius
	for _, c := range w.Characters() {
		if c.ID() == except || c.IsDead() || !team.IsEnemyTo(c.Team()) {
			continue
		}
		d := c.Pos().Distance(pos)
		if d < bestDist || (best == model.NoEntity && d <= radius) {
			best = c.ID()
			bestDist = d
		}
	}
	return best, best != model.NoEntity
}
