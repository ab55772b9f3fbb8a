package status

import (
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/world"
)

// ExoSkeletonBonus holds the percentage bonuses of the exoskeleton.
type ExoSkeletonBonus struct {
	Armor        float64
	WalkingSpeed float64
	AttackRange  float64
	AttackDamage float64
	AttackSpeed  float64
}

// ExoSkeletonStatus boosts all five combat channels by a percentage and turns
// the wearer's basic attack into a ranged one while it lasts.
type ExoSkeletonStatus struct {
	window
	bonus  ExoSkeletonBonus
	bullet string
}

// NewExoSkeletonStatus creates a self buff lasting durationSeconds.
func NewExoSkeletonStatus(caster model.EntityID, now gametime.Time, durationSeconds float64, bonus ExoSkeletonBonus, bullet string) *ExoSkeletonStatus {
	return &ExoSkeletonStatus{
		window: newWindow(caster, now, durationSeconds),
		bonus:  bonus,
		bullet: bullet,
	}
}

func (s *ExoSkeletonStatus) Kind() Kind     { return KindExoSkeleton }
func (s *ExoSkeletonStatus) Nature() Nature { return NatureBuff }

// OnApply switches the basic attack to ranged and spawns the cart effect.
func (s *ExoSkeletonStatus) OnApply(p ApplyParams) {
	p.Target.SetBasicAttack(model.Ranged(s.bullet))
	p.Events.PushEffect(event.EffectSpawn{
		EffectID:  "Cart",
		Pos:       p.Target.Pos(),
		StartTime: p.Now,
		PlayMode:  event.PlayOnce,
	})
}

func (s *ExoSkeletonStatus) AddModifiers(c *attrib.Collector) {
	c.ChangeArmor(attrib.Percent(s.bonus.Armor), s.started, s.until)
	c.ChangeWalkingSpeed(attrib.Percent(s.bonus.WalkingSpeed), s.started, s.until)
	c.ChangeAttackRange(attrib.Percent(s.bonus.AttackRange), s.started, s.until)
	c.ChangeAttackDamage(attrib.Percent(s.bonus.AttackDamage), s.started, s.until)
	c.ChangeAttackSpeed(attrib.Percent(s.bonus.AttackSpeed), s.started, s.until)
}

func (s *ExoSkeletonStatus) Update(p UpdateParams) Result {
	if s.expired(p.Now) {
		return RemoveIt
	}
	return KeepIt
}

// Teardown restores the default melee attack.
func (s *ExoSkeletonStatus) Teardown(target *model.Character, _ *world.World) {
	target.SetBasicAttack(model.MeleeSimple)
}

func (s *ExoSkeletonStatus) exportParams() map[string]string {
	return map[string]string{
		"armor":         formatFloat(s.bonus.Armor),
		"walking_speed": formatFloat(s.bonus.WalkingSpeed),
		"attack_range":  formatFloat(s.bonus.AttackRange),
		"attack_damage": formatFloat(s.bonus.AttackDamage),
		"attack_speed":  formatFloat(s.bonus.AttackSpeed),
		"bullet":        s.bullet,
	}
}
