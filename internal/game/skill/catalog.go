// Package skill holds the catalog of castable skills. A skill turns a
// finished cast into world effects: status requests, hp requests, visual
// and sound spawns, and optionally a manifestation the caller registers.
package skill

import (
	"errors"
	"fmt"
	"slices"

	"github.com/udisondev/skillsim/internal/ai"
	"github.com/udisondev/skillsim/internal/config"
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/physics"
	"github.com/udisondev/skillsim/internal/vmath"
	"github.com/udisondev/skillsim/internal/world"
)

// ErrUnknownSkill is returned by Lookup for unregistered names.
var ErrUnknownSkill = errors.New("unknown skill")

// TargetType tells the casting layer what a skill may be aimed at.
// The catalog itself never re-validates it.
type TargetType uint8

const (
	NoTarget TargetType = iota
	Area
	OnlyEnemy
	OnlyAllyAndSelf
	OnlyAllyButNoSelf
)

func (t TargetType) String() string {
	switch t {
	case NoTarget:
		return "NO_TARGET"
	case Area:
		return "AREA"
	case OnlyEnemy:
		return "ONLY_ENEMY"
	case OnlyAllyAndSelf:
		return "ONLY_ALLY_AND_SELF"
	case OnlyAllyButNoSelf:
		return "ONLY_ALLY_BUT_NO_SELF"
	default:
		return "UNKNOWN"
	}
}

// CastParams describes a finished cast.
type CastParams struct {
	Caster    model.EntityID
	CasterPos vmath.Vec2
	// SkillPos is the ground position the skill was aimed at, if any.
	SkillPos *vmath.Vec2
	// Dir points from the caster to the skill position.
	Dir    vmath.Vec2
	Target model.EntityID
}

// groundPos returns SkillPos, falling back to the caster position.
func (p CastParams) groundPos() vmath.Vec2 {
	if p.SkillPos != nil {
		return *p.SkillPos
	}
	return p.CasterPos
}

// Env is everything a skill may touch while finishing a cast.
type Env struct {
	Now      gametime.Time
	World    *world.World
	Physics  *physics.World
	Statuses *status.Engine
	Events   *event.Queues
	AI       *ai.Manager
	Skills   *config.SkillsConfig
	Sentinel config.SentinelConfig
}

// Def is a castable skill.
type Def interface {
	Name() string
	TargetType() TargetType
	// FinishCast applies the skill. A non-nil manifestation must be spawned
	// by the caller.
	FinishCast(p CastParams, env *Env) manifest.Manifestation
}

var catalog = map[string]Def{}

func register(d Def) {
	if _, dup := catalog[d.Name()]; dup {
		panic("skill: duplicate registration of " + d.Name())
	}
	catalog[d.Name()] = d
}

// Lookup returns the skill registered under name.
func Lookup(name string) (Def, error) {
	d, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSkill, name)
	}
	return d, nil
}

// Names returns all registered skill names, sorted.
func Names() []string {
	out := make([]string, 0, len(catalog))
	for name := range catalog {
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}

func init() {
	register(healSkill{})
	register(poisonSkill{})
	register(pyroBlastSkill{})
	register(exoSkeletonSkill{})
	register(turretSkill{})
	register(destroyTurretSkill{})
	register(turretTargetSkill{})
	register(poisonFieldSkill{})
	register(blessingSkill{})
	register(falconCarrySkill{})
	register(falconAttackSkill{})
}
