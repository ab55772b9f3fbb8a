// Package sim wires the simulation core together and runs it one fixed tick
// at a time. It is single-threaded: Step and every mutating method must be
// called from the same goroutine.
package sim

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/udisondev/skillsim/internal/ai"
	"github.com/udisondev/skillsim/internal/config"
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/game/combat"
	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/skill"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/physics"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/vmath"
	"github.com/udisondev/skillsim/internal/world"
)

// ErrNoCompanion is returned when a character has no companion to command.
var ErrNoCompanion = errors.New("no companion")

// TickFrame is the read-only outcome of one Step.
type TickFrame struct {
	Tick     uint64           `json:"tick"`
	Time     float64          `json:"time"`
	Events   event.Batch      `json:"events"`
	Hits     []combat.Hit     `json:"hits,omitempty"`
	Commands []render.Command `json:"commands,omitempty"`
}

// Cast is a finished cast waiting for resolution.
type Cast struct {
	Skill    string
	Caster   model.EntityID
	Target   model.EntityID
	SkillPos *vmath.Vec2
}

type queuedCast struct {
	def  skill.Def
	cast Cast
}

// Simulation owns the world and every engine operating on it.
type Simulation struct {
	cfg   config.Simulation
	clock *gametime.Clock

	world     *world.World
	physics   *physics.World
	statuses  *status.Engine
	collector *attrib.Collector
	registry  *manifest.Registry
	ai        *ai.Manager
	resolver  *combat.Resolver
	events    *event.Queues

	casts     []queuedCast
	scheduled []scheduledCast
}

// New creates an empty simulation at time zero.
func New(cfg config.Simulation) (*Simulation, error) {
	stacking, err := cfg.Attributes.Stacking()
	if err != nil {
		return nil, fmt.Errorf("creating simulation: %w", err)
	}

	w := world.New()
	phys := physics.NewWorld()
	return &Simulation{
		cfg:       cfg,
		clock:     gametime.NewClock(cfg.TickDuration),
		world:     w,
		physics:   phys,
		statuses:  status.NewEngine(w),
		collector: attrib.NewCollector(stacking),
		registry:  manifest.NewRegistry(w.IDs(), phys),
		ai:        ai.NewManager(),
		resolver:  combat.NewResolver(w),
		events:    &event.Queues{},
	}, nil
}

func (s *Simulation) World() *world.World          { return s.world }
func (s *Simulation) Physics() *physics.World      { return s.physics }
func (s *Simulation) Statuses() *status.Engine     { return s.statuses }
func (s *Simulation) Registry() *manifest.Registry { return s.registry }
func (s *Simulation) AI() *ai.Manager              { return s.ai }

// Now returns the current simulation time.
func (s *Simulation) Now() gametime.Time { return s.clock.Now() }

// TickCount returns how many steps have run.
func (s *Simulation) TickCount() uint64 { return s.clock.Tick() }

// SpawnCharacter adds a character with a body collider. Controlled
// characters also get a controller.
func (s *Simulation) SpawnCharacter(name string, team model.Team, pos vmath.Vec2, base attrib.Attributes, controlled bool) *model.Character {
	ch := s.world.SpawnCharacter(name, team, pos, base)
	ch.SetCollider(s.physics.AddCharacterCircle(ch.ID(), pos, physics.DefaultCharacterRadius))
	if controlled {
		s.world.AddController(ch.ID())
	}
	return ch
}

// SpawnCompanion gives owner a falcon hovering above it.
func (s *Simulation) SpawnCompanion(owner model.EntityID) (*ai.Companion, error) {
	ch, err := s.world.GetCharacter(owner)
	if err != nil {
		return nil, fmt.Errorf("spawning companion: %w", err)
	}
	c := ai.NewCompanion(s.world.IDs().NextEphemeralID(), owner, ch.Pos())
	s.ai.Register(c.ID(), c)
	return c, nil
}

// Companion returns the companion owned by owner.
func (s *Simulation) Companion(owner model.EntityID) (*ai.Companion, error) {
	c, ok := s.ai.CompanionOf(owner)
	if !ok {
		return nil, fmt.Errorf("%w: owner %d", ErrNoCompanion, owner)
	}
	return c, nil
}

// SetIntention sets the intention of the controller driving charID.
func (s *Simulation) SetIntention(charID model.EntityID, in model.Intention) error {
	ctrl, ok := s.world.ControllerOf(charID)
	if !ok {
		return fmt.Errorf("setting intention: %w: %d", world.ErrCharacterNotFound, charID)
	}
	ctrl.SetIntention(in)
	return nil
}

// QueueCast schedules a finished cast for the next Step. Its effects become
// visible in the step after that.
func (s *Simulation) QueueCast(c Cast) error {
	def, err := skill.Lookup(c.Skill)
	if err != nil {
		return fmt.Errorf("queueing cast: %w", err)
	}
	if _, err := s.world.GetCharacter(c.Caster); err != nil {
		return fmt.Errorf("queueing cast %s: %w", c.Skill, err)
	}
	s.casts = append(s.casts, queuedCast{def: def, cast: c})
	return nil
}

// PendingCasts returns how many casts wait for resolution.
func (s *Simulation) PendingCasts() int { return len(s.casts) }

// Step advances the simulation by one tick.
func (s *Simulation) Step() TickFrame {
	s.clock.Advance()
	now := s.clock.Now()
	dt := s.clock.Dt()

	s.syncPhysics()

	s.statuses.ApplyPending(now, s.events)
	s.statuses.Update(now, dt, s.events)
	s.statuses.RebuildAttributes(now, s.collector)

	s.registry.Update(s.physics.Collisions(), &manifest.Env{
		Now:      now,
		Dt:       dt,
		World:    s.world,
		Physics:  s.physics,
		Statuses: s.statuses,
		Events:   s.events,
	})

	s.ai.TickAll(&ai.Context{
		Now:      now,
		Dt:       dt,
		World:    s.world,
		Statuses: s.statuses,
		Events:   s.events,
	})

	s.applyIntentions(dt)

	batch := s.events.Drain()
	hits := s.resolver.Resolve(batch.HpModifications, batch.AreaAttacks)
	s.reapTurrets()

	s.releaseScheduled(now)
	s.resolveCasts(now)

	var cmds render.Commands
	s.statuses.Render(now, &cmds)
	s.registry.Render(now, &cmds)
	s.ai.Render(now, &cmds)

	return TickFrame{
		Tick:     s.clock.Tick(),
		Time:     now.Seconds(),
		Events:   batch,
		Hits:     hits,
		Commands: cmds.List(),
	}
}

// syncPhysics mirrors character positions into the collider world, drops
// colliders of removed characters and recomputes contacts.
func (s *Simulation) syncPhysics() {
	s.physics.RemoveCharactersWhere(func(id model.EntityID) bool {
		_, ok := s.world.Character(id)
		return !ok
	})
	for _, ch := range s.world.Characters() {
		if ch.Collider() != model.NoCollider {
			s.physics.SetPosition(ch.Collider(), ch.Pos())
		}
	}
	s.physics.Step()
}

// applyIntentions turns controller intentions into character state:
// attack intentions set the target, movement intentions walk.
func (s *Simulation) applyIntentions(dt float64) {
	for _, ctrl := range s.world.Controllers() {
		ch, ok := s.world.Character(ctrl.Controlled)
		if !ok || ch.IsDead() {
			continue
		}

		switch in := ctrl.Intention; in.Kind {
		case model.IntentionAttack:
			ch.SetTarget(in.Target)
		case model.IntentionMoveTo, model.IntentionMoveTowardsMouse:
			if ch.IsCarried() {
				continue
			}
			if arrived := s.walk(ch, in.Pos, dt); arrived && in.Kind == model.IntentionMoveTo {
				ctrl.SetIntention(model.NoIntention)
			}
		case model.IntentionNone:
			if _, isTurret := s.world.Turret(ch.ID()); isTurret {
				ch.ClearTarget()
			}
		}
	}
}

// walk moves ch towards dest and reports whether it got there.
func (s *Simulation) walk(ch *model.Character, dest vmath.Vec2, dt float64) bool {
	step := s.cfg.MovementSpeed * ch.CalculatedAttributes().WalkingSpeedFactor() * dt
	delta := dest.Sub(ch.Pos())
	if delta.Magnitude() <= step {
		ch.SetPos(dest)
		return true
	}
	dir, ok := delta.Normalize()
	if !ok {
		return true
	}
	ch.SetPos(ch.Pos().Add(dir.Scale(step)))
	return false
}

// reapTurrets removes destroyed turrets. Their sentinels notice on the next
// tick and release their controllers.
func (s *Simulation) reapTurrets() {
	for _, ch := range s.world.Characters() {
		if !ch.IsDead() {
			continue
		}
		if _, ok := s.world.Turret(ch.ID()); !ok {
			continue
		}
		s.physics.Remove(ch.Collider())
		s.world.RemoveCharacter(ch.ID())
		slog.Debug("turret destroyed", "turretID", ch.ID())
	}
}

func (s *Simulation) resolveCasts(now gametime.Time) {
	if len(s.casts) == 0 {
		return
	}
	casts := s.casts
	s.casts = nil

	env := &skill.Env{
		Now:      now,
		World:    s.world,
		Physics:  s.physics,
		Statuses: s.statuses,
		Events:   s.events,
		AI:       s.ai,
		Skills:   &s.cfg.Skills,
		Sentinel: s.cfg.Sentinel,
	}
	for _, q := range casts {
		caster, ok := s.world.Character(q.cast.Caster)
		if !ok || caster.IsDead() {
			slog.Debug("cast dropped, caster gone", "skill", q.def.Name(), "casterID", q.cast.Caster)
			continue
		}

		params := skill.CastParams{
			Caster:    caster.ID(),
			CasterPos: caster.Pos(),
			SkillPos:  q.cast.SkillPos,
			Target:    q.cast.Target,
		}
		if aim, ok := s.aimPoint(q.cast); ok {
			if dir, ok := aim.Sub(caster.Pos()).Normalize(); ok {
				params.Dir = dir
			}
		}

		if m := q.def.FinishCast(params, env); m != nil {
			id := s.registry.Spawn(m)
			slog.Debug("manifestation spawned", "skill", q.def.Name(), "id", id)
		}
	}
}

// aimPoint is the skill position, or the target's position.
func (s *Simulation) aimPoint(c Cast) (vmath.Vec2, bool) {
	if c.SkillPos != nil {
		return *c.SkillPos, true
	}
	if target, ok := s.world.Character(c.Target); ok {
		return target.Pos(), true
	}
	return vmath.Vec2{}, false
}
