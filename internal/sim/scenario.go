package sim

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/udisondev/skillsim/internal/config"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/vmath"
	"github.com/udisondev/skillsim/internal/world"
)

// scheduledCast is a scripted cast released once the clock reaches at.
// Names are resolved at release time so casts may target turrets built
// earlier in the script.
type scheduledCast struct {
	at     gametime.Time
	skill  string
	caster string
	target string
	pos    *vmath.Vec2
}

// LoadScenario spawns the scenario's characters and companions and schedules
// its casts.
func (s *Simulation) LoadScenario(sc config.Scenario) error {
	for _, c := range sc.Characters {
		if _, exists := s.world.CharacterByName(c.Name); exists {
			return fmt.Errorf("loading scenario: duplicate character %q", c.Name)
		}
		base := attrib.DefaultAttributes()
		if c.Attributes != nil {
			base = *c.Attributes
		}
		s.SpawnCharacter(c.Name, model.ParseTeam(c.Team), c.Pos, base, c.Controlled)
	}

	for _, c := range sc.Companions {
		owner, ok := s.world.CharacterByName(c.Owner)
		if !ok {
			return fmt.Errorf("loading scenario: companion owner %q: %w", c.Owner, world.ErrCharacterNotFound)
		}
		if _, err := s.SpawnCompanion(owner.ID()); err != nil {
			return fmt.Errorf("loading scenario: %w", err)
		}
	}

	for _, c := range sc.Casts {
		s.scheduled = append(s.scheduled, scheduledCast{
			at:     gametime.Time(c.AtSeconds),
			skill:  c.Skill,
			caster: c.Caster,
			target: c.Target,
			pos:    c.Pos,
		})
	}
	slices.SortStableFunc(s.scheduled, func(a, b scheduledCast) int {
		return cmp.Compare(a.at, b.at)
	})

	slog.Info("scenario loaded",
		"characters", len(sc.Characters),
		"companions", len(sc.Companions),
		"casts", len(sc.Casts))
	return nil
}

// ScheduledCasts returns how many scripted casts are still waiting.
func (s *Simulation) ScheduledCasts() int { return len(s.scheduled) }

// releaseScheduled queues scripted casts that are due.
func (s *Simulation) releaseScheduled(now gametime.Time) {
	n := 0
	for n < len(s.scheduled) && s.scheduled[n].at.HasAlreadyPassed(now) {
		sc := s.scheduled[n]
		n++

		caster, ok := s.world.CharacterByName(sc.caster)
		if !ok {
			slog.Warn("scripted cast skipped, unknown caster", "skill", sc.skill, "caster", sc.caster)
			continue
		}
		cast := Cast{Skill: sc.skill, Caster: caster.ID(), SkillPos: sc.pos}
		if sc.target != "" {
			if target, ok := s.world.CharacterByName(sc.target); ok {
				cast.Target = target.ID()
			}
		}
		if err := s.QueueCast(cast); err != nil {
			slog.Warn("scripted cast skipped", "error", err)
		}
	}
	s.scheduled = s.scheduled[n:]
}

// ExportStatuses snapshots persistable statuses of every non-turret
// character, keyed by character name.
func (s *Simulation) ExportStatuses() map[string][]status.Record {
	now := s.clock.Now()
	out := make(map[string][]status.Record)
	for _, ch := range s.world.Characters() {
		if _, isTurret := s.world.Turret(ch.ID()); isTurret {
			continue
		}
		recs := s.statuses.Export(ch.ID(), now)
		if len(recs) == 0 {
			continue
		}
		for i := range recs {
			if caster, ok := s.world.Character(recs[i].Caster); ok {
				recs[i].CasterName = caster.Name()
			}
		}
		out[ch.Name()] = recs
	}
	return out
}

// RestoreStatuses re-applies saved statuses to the named character. Casters
// are resolved by name; unknown casters leave the status without one.
func (s *Simulation) RestoreStatuses(name string, recs []status.Record) error {
	ch, ok := s.world.CharacterByName(name)
	if !ok {
		return fmt.Errorf("restoring statuses of %q: %w", name, world.ErrCharacterNotFound)
	}
	for i := range recs {
		recs[i].Caster = model.NoEntity
		if caster, ok := s.world.CharacterByName(recs[i].CasterName); ok {
			recs[i].Caster = caster.ID()
		}
	}
	return s.statuses.Restore(ch.ID(), recs, s.clock.Now())
}
