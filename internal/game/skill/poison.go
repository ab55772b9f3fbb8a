package skill

import (
	"log/slog"

	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/status"
)

// poisonEffectSeconds is how long the poison cloud visual plays.
const poisonEffectSeconds = 0.7

type poisonSkill struct{}

func (poisonSkill) Name() string           { return "poison" }
func (poisonSkill) TargetType() TargetType { return OnlyEnemy }

func (poisonSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	if !p.Target.Valid() {
		slog.Debug("poison without target", "casterID", p.Caster)
		return nil
	}
	pos := p.groundPos()
	if p.SkillPos == nil {
		if target, ok := env.World.Character(p.Target); ok {
			pos = target.Pos()
		}
	}

	dieAt := env.Now.AddSeconds(poisonEffectSeconds)
	env.Events.PushEffect(event.EffectSpawn{
		EffectID:  "Poison",
		Pos:       pos,
		StartTime: env.Now,
		DieAt:     &dieAt,
		PlayMode:  event.PlayRepeat,
	})

	cfg := env.Skills.Poison
	env.Statuses.Enqueue(status.ApplyRequest{
		Source:    p.Caster,
		Target:    p.Target,
		Status:    status.NewPoisonStatus(p.Caster, env.Now, cfg.DurationSeconds, cfg.Damage, cfg.PeriodSeconds),
		Secondary: true,
	})
	return nil
}
