package combat

import (
	"log/slog"
	"math"

	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/world"
)

// Hit is one resolved hp change, reported to observers.
type Hit struct {
	Source model.EntityID  `json:"source"`
	Target model.EntityID  `json:"target"`
	Kind   event.HpModKind `json:"kind"`
	Amount int32           `json:"amount"`
	Killed bool            `json:"killed,omitempty"`
}

// Resolver applies hp-modification and area-attack requests to characters.
//
// Direct and spell damage are reduced by the target's armor percentage;
// poison ignores armor. Heals are clamped to max hp by the character.
type Resolver struct {
	world *world.World
}

// NewResolver creates a resolver over w.
func NewResolver(w *world.World) *Resolver {
	return &Resolver{world: w}
}

// Resolve applies all requests in order and returns what actually happened.
// Requests against missing or dead characters are skipped.
func (r *Resolver) Resolve(mods []event.HpModification, areas []event.AreaAttack) []Hit {
	var hits []Hit
	for _, m := range mods {
		if h, ok := r.apply(m); ok {
			hits = append(hits, h)
		}
	}
	for _, a := range areas {
		for _, m := range r.expandArea(a) {
			if h, ok := r.apply(m); ok {
				hits = append(hits, h)
			}
		}
	}
	return hits
}

// expandArea turns an area attack into per-target requests against living
// enemies of the source inside the disk.
func (r *Resolver) expandArea(a event.AreaAttack) []event.HpModification {
	source, ok := r.world.Character(a.Source)
	if !ok {
		slog.Debug("area attack source gone", "source", a.Source)
		return nil
	}

	var out []event.HpModification
	for _, ch := range r.world.Characters() {
		if ch.ID() == a.Except || ch.IsDead() {
			continue
		}
		if !source.Team().IsEnemyTo(ch.Team()) || !a.Area.Contains(ch.Pos()) {
			continue
		}
		out = append(out, event.HpModification{
			Source: a.Source,
			Target: ch.ID(),
			Kind:   a.Kind,
			Amount: a.Amount,
		})
	}
	return out
}

func (r *Resolver) apply(m event.HpModification) (Hit, bool) {
	target, ok := r.world.Character(m.Target)
	if !ok || target.IsDead() {
		return Hit{}, false
	}

	hit := Hit{Source: m.Source, Target: m.Target, Kind: m.Kind}
	if m.Kind.IsHeal() {
		before := target.HP()
		target.SetHP(before + m.Amount)
		hit.Amount = target.HP() - before
		return hit, true
	}

	hit.Amount = Mitigate(m.Amount, m.Kind, target.CalculatedAttributes().Armor)
	target.SetHP(target.HP() - hit.Amount)
	hit.Killed = target.IsDead()
	if hit.Killed {
		slog.Debug("character died", "target", target.ID(), "name", target.Name(), "killer", m.Source)
	}
	return hit, true
}

// Mitigate returns the damage left after armor. Armor is a percentage
// clamped to [0, 100]; poison is not mitigated.
func Mitigate(amount int32, kind event.HpModKind, armor float64) int32 {
	if kind == event.HpModPoison {
		return amount
	}
	armor = math.Max(0, math.Min(100, armor))
	return int32(math.Round(float64(amount) * (100 - armor) / 100))
}
