// Package status implements timed statuses attached to characters and the
// engine that applies, updates and expires them once per tick.
package status

import (
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/world"
)

// Kind identifies a status variant. Main statuses of the same kind replace
// each other on a target.
type Kind string

const (
	KindExoSkeleton     Kind = "exo_skeleton"
	KindPoison          Kind = "poison"
	KindPyroBlastTarget Kind = "pyro_blast_target"
	KindCarry           Kind = "carry"
	KindStatMod         Kind = "stat_mod"
)

// Nature — бафф или дебафф, для отображения и статистики.
type Nature uint8

const (
	NatureBuff Nature = iota
	NatureDebuff
	NatureNeutral
)

// Result is what a status tells the engine after its update.
type Result uint8

const (
	KeepIt Result = iota
	RemoveIt
)

// ApplyParams is passed to OnApply when a status is inserted.
type ApplyParams struct {
	Now    gametime.Time
	Source model.EntityID
	Target *model.Character
	World  *world.World
	Events *event.Queues
}

// UpdateParams is passed to Update every tick.
type UpdateParams struct {
	Now    gametime.Time
	Dt     float64
	Target *model.Character
	World  *world.World
	Events *event.Queues
}

// Status is a timed effect attached to one character.
//
// Caster is a weak reference: implementations must look it up in the world
// and tolerate its absence.
type Status interface {
	Kind() Kind
	Nature() Nature
	Caster() model.EntityID
	Started() gametime.Time
	Until() gametime.Time

	// OnApply runs exactly once, when the engine inserts the status.
	OnApply(p ApplyParams)
	// AddModifiers registers attribute modifiers for this tick's rebuild.
	AddModifiers(c *attrib.Collector)
	// Update returns RemoveIt once Until has passed.
	Update(p UpdateParams) Result
}

// Teardowner is implemented by statuses that must undo changes to their
// target when detached.
type Teardowner interface {
	Teardown(target *model.Character, w *world.World)
}

// Renderer is implemented by statuses with a visual representation.
type Renderer interface {
	Render(now gametime.Time, target *model.Character, cmds *render.Commands)
}

// window holds the fields every status shares.
type window struct {
	caster  model.EntityID
	started gametime.Time
	until   gametime.Time
}

func newWindow(caster model.EntityID, now gametime.Time, durationSeconds float64) window {
	if durationSeconds < 0 {
		durationSeconds = 0
	}
	return window{caster: caster, started: now, until: now.AddSeconds(durationSeconds)}
}

func (w window) Caster() model.EntityID { return w.caster }

func (w window) Started() gametime.Time { return w.started }

func (w window) Until() gametime.Time { return w.until }

func (w window) expired(now gametime.Time) bool {
	return w.until.HasAlreadyPassed(now)
}

// remaining returns seconds left until expiry, never negative.
func (w window) remaining(now gametime.Time) float64 {
	return max(w.until.ElapsedSince(now), 0)
}

// CompletionPercent returns progress of a status through its window, 0..1.
func CompletionPercent(s Status, now gametime.Time) float64 {
	if s.Until() == s.Started() {
		return 1
	}
	return min(max(now.PercentageBetween(s.Started(), s.Until()), 0), 1)
}
