package manifest

import (
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/physics"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/vmath"
)

// DefaultArrivalDistance is how close a projectile gets before it explodes.
const DefaultArrivalDistance = 2.0

// ProjectileParams configures a homing projectile.
type ProjectileParams struct {
	Damage          int32
	SecondaryDamage int32
	SplashRadius    float64
	MovingSpeed     float64
	ArrivalDistance float64
	BallSize        float64
}

// Projectile homes in on a target character and explodes when it is close
// enough: direct damage on the target, splash damage around it, an explosion
// effect, and the caster's marker status on the target is stripped.
type Projectile struct {
	base
	params ProjectileParams
	pos    vmath.Vec2
	target model.EntityID
}

// NewProjectile creates a projectile at pos flying to target.
func NewProjectile(caster model.EntityID, now gametime.Time, pos vmath.Vec2, target model.EntityID, p ProjectileParams) *Projectile {
	if p.ArrivalDistance <= 0 {
		p.ArrivalDistance = DefaultArrivalDistance
	}
	return &Projectile{
		base:   base{caster: caster, createdAt: now},
		params: p,
		pos:    pos,
		target: target,
	}
}

// Pos returns the current position.
func (p *Projectile) Pos() vmath.Vec2 { return p.pos }

// Target returns the homing target.
func (p *Projectile) Target() model.EntityID { return p.target }

func (p *Projectile) Update(_ model.EntityID, _ []physics.Collision, env *Env) bool {
	target, ok := env.World.Character(p.target)
	if !ok {
		return true
	}

	targetPos := target.Pos()
	toTarget := targetPos.Sub(p.pos)
	if toTarget.Magnitude() > p.params.ArrivalDistance {
		if dir, ok := toTarget.Normalize(); ok {
			p.pos = p.pos.Add(dir.Scale(env.Dt * p.params.MovingSpeed))
		}
		return false
	}

	env.Events.PushHpModification(event.HpModification{
		Source: p.caster,
		Target: p.target,
		Kind:   event.HpModSpellDamage,
		Amount: p.params.Damage,
	})
	env.Events.PushAreaAttack(event.AreaAttack{
		Source: p.caster,
		Area:   event.Disk{Center: targetPos, Radius: p.params.SplashRadius},
		Kind:   event.HpModSpellDamage,
		Amount: p.params.SecondaryDamage,
		Except: p.target,
	})
	env.Events.PushEffect(event.EffectSpawn{
		EffectID:  "Explosion",
		Pos:       targetPos,
		StartTime: env.Now,
		PlayMode:  event.PlayOnce,
	})
	env.Statuses.RemoveWhere(p.target, status.KindPyroBlastTarget, func(s status.Status) bool {
		return s.Caster() == p.caster
	})
	return true
}

// Render draws the plasma ball.
func (p *Projectile) Render(_ gametime.Time, cmds *render.Commands) {
	size := p.params.BallSize
	if size <= 0 {
		size = 1
	}
	cmds.Billboard("plasma", p.pos.WithHeight(1), vmath.V2(size, size), 0, render.RGBA(1, 1, 1, 1))
}
