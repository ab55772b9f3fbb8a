package skill

import (
	"math"

	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
)

type poisonFieldSkill struct{}

func (poisonFieldSkill) Name() string           { return "poison_field" }
func (poisonFieldSkill) TargetType() TargetType { return Area }

// FinishCast lays a poisoned rectangle oriented along the cast direction.
func (poisonFieldSkill) FinishCast(p CastParams, env *Env) manifest.Manifestation {
	field := env.Skills.PoisonField
	poison := env.Skills.Poison

	var rotation float64
	if p.Dir.X != 0 || p.Dir.Y != 0 {
		rotation = math.Atan2(p.Dir.Y, p.Dir.X)
	}

	return manifest.NewAreaApplier(p.Caster, env.Now, manifest.AreaParams{
		Name:        "Poison Field",
		Center:      p.groundPos(),
		HalfExtents: field.HalfExtents,
		Rotation:    rotation,
		Cooldown:    field.CooldownSeconds,
		Lifetime:    field.LifetimeSeconds,
	}, func(now gametime.Time, caster, _ model.EntityID) status.Status {
		return status.NewPoisonStatus(caster, now, poison.DurationSeconds, poison.Damage, poison.PeriodSeconds)
	}, env.Physics)
}
