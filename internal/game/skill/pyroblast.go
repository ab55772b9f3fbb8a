package skill

import (
	"log/slog"

	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/status"
)

type pyroBlastSkill struct{}

func (pyroBlastSkill) Name() string           { return "wiz_pyroblast" }
func (pyroBlastSkill) TargetType() TargetType { return OnlyEnemy }

// FinishCast marks the target and launches a ball from the caster towards it.
func (pyroBlastSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	if !p.Target.Valid() {
		slog.Debug("pyroblast without target", "casterID", p.Caster)
		return nil
	}
	cfg := env.Skills.PyroBlast

	env.Statuses.Enqueue(status.ApplyRequest{
		Source:    p.Caster,
		Target:    p.Target,
		Status:    status.NewPyroBlastTargetStatus(p.Caster, env.Now, cfg.MarkerSeconds, cfg.SplashRadius),
		Secondary: true,
	})
	return manifest.NewProjectile(p.Caster, env.Now, p.CasterPos, p.Target, manifest.ProjectileParams{
		Damage:          cfg.Damage,
		SecondaryDamage: cfg.SecondaryDamage,
		SplashRadius:    cfg.SplashRadius,
		MovingSpeed:     cfg.MovingSpeed,
		ArrivalDistance: cfg.ArrivalDistance,
		BallSize:        cfg.BallSize,
	})
}
