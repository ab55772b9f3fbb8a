package skill

import (
	"log/slog"

	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/manifest"
)

type falconCarrySkill struct{}

func (falconCarrySkill) Name() string           { return "falcon_carry" }
func (falconCarrySkill) TargetType() TargetType { return OnlyAllyAndSelf }

// FinishCast sends the caster's falcon to carry the caster (no target or
// self) or to fetch an ally.
func (falconCarrySkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	falcon, ok := env.AI.CompanionOf(p.Caster)
	if !ok {
		slog.Debug("falcon_carry: caster has no falcon", "casterID", p.Caster)
		return nil
	}
	cfg := env.Skills.FalconCarry

	if !p.Target.Valid() || p.Target == p.Caster {
		ctrl, ok := env.World.ControllerOf(p.Caster)
		if !ok {
			slog.Debug("falcon_carry: caster is not controlled", "casterID", p.Caster)
			return nil
		}
		if !falcon.CarryOwner(ctrl.ID, p.CasterPos, env.Now, cfg.OwnerDurationSeconds) {
			slog.Debug("falcon_carry: falcon busy", "falconID", falcon.ID())
		}
		return nil
	}

	ally, ok := env.World.Character(p.Target)
	if !ok {
		return nil
	}
	if !falcon.CarryAlly(ally.ID(), ally.Pos(), env.Now, cfg.AllyDurationSeconds) {
		slog.Debug("falcon_carry: falcon busy", "falconID", falcon.ID())
	}
	return nil
}

type falconAttackSkill struct{}

func (falconAttackSkill) Name() string           { return "falcon_attack" }
func (falconAttackSkill) TargetType() TargetType { return Area }

// FinishCast dives the falcon from the caster to the skill position and
// strikes every enemy around the landing point.
func (falconAttackSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	falcon, ok := env.AI.CompanionOf(p.Caster)
	if !ok {
		slog.Debug("falcon_attack: caster has no falcon", "casterID", p.Caster)
		return nil
	}
	cfg := env.Skills.FalconAttack

	end := p.groundPos()
	if p.SkillPos == nil && p.Target.Valid() {
		if target, ok := env.World.Character(p.Target); ok {
			end = target.Pos()
		}
	}
	if !falcon.SetStateToAttack(env.Now, cfg.DurationSeconds, p.CasterPos, end) {
		slog.Debug("falcon_attack: falcon busy", "falconID", falcon.ID())
		return nil
	}
	env.Events.PushAreaAttack(event.AreaAttack{
		Source: p.Caster,
		Area:   event.Disk{Center: end, Radius: cfg.Radius},
		Kind:   event.HpModSpellDamage,
		Amount: cfg.Damage,
	})
	return nil
}
