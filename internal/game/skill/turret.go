package skill

import (
	"log/slog"

	"github.com/udisondev/skillsim/internal/ai"
	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/model"
)

// TurretName is the character name given to spawned turrets.
const TurretName = "turret"

type turretSkill struct{}

func (turretSkill) Name() string           { return "gaz_turret" }
func (turretSkill) TargetType() TargetType { return Area }

// FinishCast builds a turret of the caster's team at the skill position and
// hands it to a sentinel controller.
func (turretSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	caster, ok := env.World.Character(p.Caster)
	if !ok {
		slog.Debug("turret caster gone", "casterID", p.Caster)
		return nil
	}
	cfg := env.Skills.Turret
	pos := p.groundPos()

	turret := env.World.SpawnCharacter(TurretName, caster.Team(), pos, cfg.Attributes)
	turret.SetCollider(env.Physics.AddCharacterCircle(turret.ID(), pos, cfg.SpawnRadius))
	env.World.MarkTurret(turret.ID(), model.Turret{Owner: p.Caster})

	ctrl := env.World.AddController(turret.ID())
	env.AI.Register(turret.ID(), ai.NewSentinel(ctrl.ID, env.Sentinel.AttackRadius))

	slog.Debug("turret built",
		"casterID", p.Caster,
		"turretID", turret.ID(),
		"controllerID", ctrl.ID)
	return nil
}

type destroyTurretSkill struct{}

func (destroyTurretSkill) Name() string           { return "gaz_destroy_turret" }
func (destroyTurretSkill) TargetType() TargetType { return OnlyAllyButNoSelf }

// FinishCast kills the targeted turret if the caster built it.
func (destroyTurretSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	t, ok := env.World.Turret(p.Target)
	if !ok || t.Owner != p.Caster {
		return nil
	}
	if ch, ok := env.World.Character(p.Target); ok {
		ch.SetHP(0)
	}
	return nil
}

type turretTargetSkill struct{}

func (turretTargetSkill) Name() string           { return "gaz_turret_target" }
func (turretTargetSkill) TargetType() TargetType { return OnlyEnemy }

// FinishCast points every turret of the caster at the target. A cast
// without target clears the preference.
func (turretTargetSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	for _, id := range env.World.TurretsOwnedBy(p.Caster) {
		if t, ok := env.World.Turret(id); ok {
			t.PreferredTarget = p.Target
		}
	}
	return nil
}
