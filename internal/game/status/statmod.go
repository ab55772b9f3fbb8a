package status

import (
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/vmath"
)

// StatModStatus changes one attribute channel by an additive or percentage
// modifier. A negative value makes it a debuff.
type StatModStatus struct {
	window
	channel  attrib.Channel
	modifier attrib.Modifier
}

// NewStatModStatus creates a one-channel modifier status.
func NewStatModStatus(caster model.EntityID, now gametime.Time, durationSeconds float64, ch attrib.Channel, mod attrib.Modifier) *StatModStatus {
	return &StatModStatus{
		window:   newWindow(caster, now, durationSeconds),
		channel:  ch,
		modifier: mod,
	}
}

func (s *StatModStatus) Kind() Kind { return KindStatMod }

func (s *StatModStatus) Nature() Nature {
	if s.modifier.Value < 0 {
		return NatureDebuff
	}
	return NatureBuff
}

func (s *StatModStatus) Channel() attrib.Channel   { return s.channel }
func (s *StatModStatus) Modifier() attrib.Modifier { return s.modifier }

func (s *StatModStatus) OnApply(ApplyParams) {}

func (s *StatModStatus) AddModifiers(c *attrib.Collector) {
	c.Change(s.channel, s.modifier, s.started, s.until)
}

func (s *StatModStatus) Update(p UpdateParams) Result {
	if s.expired(p.Now) {
		return RemoveIt
	}
	return KeepIt
}

func (s *StatModStatus) Render(_ gametime.Time, target *model.Character, cmds *render.Commands) {
	color := render.RGBA(0.9, 0.9, 0.3, 0.5)
	if s.Nature() == NatureDebuff {
		color = render.RGBA(0.6, 0.2, 0.8, 0.5)
	}
	cmds.Billboard("stat_mod_"+s.channel.String(), target.Pos().WithHeight(2.2), vmath.V2(0.5, 0.5), 0, color)
}

func (s *StatModStatus) exportParams() map[string]string {
	return map[string]string{
		"channel": s.channel.String(),
		"type":    s.modifier.Kind.String(),
		"value":   formatFloat(s.modifier.Value),
	}
}
