package skill

import (
	"log/slog"

	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/manifest"
)

type healSkill struct{}

func (healSkill) Name() string           { return "heal" }
func (healSkill) TargetType() TargetType { return OnlyAllyAndSelf }

func (healSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	if !p.Target.Valid() {
		slog.Debug("heal without target", "casterID", p.Caster)
		return nil
	}
	env.Events.PushSound(event.SoundSpawn{SoundID: "heal", Pos: p.CasterPos})
	env.Events.PushHpModification(event.HpModification{
		Source: p.Caster,
		Target: p.Target,
		Kind:   event.HpModHeal,
		Amount: env.Skills.Heal.Amount,
	})
	return nil
}
