package skill

import (
	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/status"
)

type exoSkeletonSkill struct{}

func (exoSkeletonSkill) Name() string           { return "gaz_exo_skeleton" }
func (exoSkeletonSkill) TargetType() TargetType { return NoTarget }

// FinishCast puts the exoskeleton on the caster, replacing a running one.
func (exoSkeletonSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	cfg := env.Skills.ExoSkeleton
	bonus := status.ExoSkeletonBonus{
		Armor:        cfg.Armor,
		WalkingSpeed: cfg.WalkingSpeed,
		AttackRange:  cfg.AttackRange,
		AttackDamage: cfg.AttackDamage,
		AttackSpeed:  cfg.AttackSpeed,
	}
	env.Statuses.Enqueue(status.ApplyRequest{
		Source: p.Caster,
		Target: p.Caster,
		Status: status.NewExoSkeletonStatus(p.Caster, env.Now, cfg.DurationSeconds, bonus, cfg.Bullet),
	})
	return nil
}
