package status

import (
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/vmath"
)

// DefaultPoisonPeriod is the interval between two poison ticks, seconds.
const DefaultPoisonPeriod = 1.0

// PoisonStatus deals Damage every Period seconds. The first tick lands in the
// tick the status is applied.
type PoisonStatus struct {
	window
	damage       int32
	period       float64
	nextDamageAt gametime.Time
}

// NewPoisonStatus creates a DoT. period <= 0 falls back to DefaultPoisonPeriod.
func NewPoisonStatus(caster model.EntityID, now gametime.Time, durationSeconds float64, damage int32, period float64) *PoisonStatus {
	if period <= 0 {
		period = DefaultPoisonPeriod
	}
	return &PoisonStatus{
		window:       newWindow(caster, now, durationSeconds),
		damage:       damage,
		period:       period,
		nextDamageAt: now,
	}
}

func (s *PoisonStatus) Kind() Kind     { return KindPoison }
func (s *PoisonStatus) Nature() Nature { return NatureDebuff }

func (s *PoisonStatus) OnApply(ApplyParams) {}

func (s *PoisonStatus) AddModifiers(*attrib.Collector) {}

// NextDamageAt returns when the next tick is due.
func (s *PoisonStatus) NextDamageAt() gametime.Time { return s.nextDamageAt }

// Update checks expiry first so a poison never ticks after its window.
func (s *PoisonStatus) Update(p UpdateParams) Result {
	if s.expired(p.Now) {
		return RemoveIt
	}
	if s.nextDamageAt.HasAlreadyPassed(p.Now) {
		p.Events.PushHpModification(event.HpModification{
			Source: s.caster,
			Target: p.Target.ID(),
			Kind:   event.HpModPoison,
			Amount: s.damage,
		})
		s.nextDamageAt = s.nextDamageAt.AddSeconds(s.period)
	}
	return KeepIt
}

func (s *PoisonStatus) Render(_ gametime.Time, target *model.Character, cmds *render.Commands) {
	cmds.Rectangle(target.Pos().WithHeight(0.01), vmath.V2(1, 1), 0, render.RGBA(0.3, 0.9, 0.2, 0.4))
}

func (s *PoisonStatus) exportParams() map[string]string {
	return map[string]string{
		"damage": formatInt(s.damage),
		"period": formatFloat(s.period),
	}
}
