package status

import (
	"math"

	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/vmath"
)

// PyroBlastTargetStatus marks a character hit by an incoming pyroblast. It is
// stripped by the projectile of the same caster on impact; until then it only
// shows where the blast will splash.
type PyroBlastTargetStatus struct {
	window
	splashRadius float64
}

// NewPyroBlastTargetStatus creates a marker living at most maxLifetime seconds.
func NewPyroBlastTargetStatus(caster model.EntityID, now gametime.Time, maxLifetime, splashRadius float64) *PyroBlastTargetStatus {
	return &PyroBlastTargetStatus{
		window:       newWindow(caster, now, maxLifetime),
		splashRadius: splashRadius,
	}
}

func (s *PyroBlastTargetStatus) Kind() Kind     { return KindPyroBlastTarget }
func (s *PyroBlastTargetStatus) Nature() Nature { return NatureNeutral }

func (s *PyroBlastTargetStatus) OnApply(ApplyParams) {}

func (s *PyroBlastTargetStatus) AddModifiers(*attrib.Collector) {}

func (s *PyroBlastTargetStatus) Update(p UpdateParams) Result {
	if s.expired(p.Now) {
		return RemoveIt
	}
	return KeepIt
}

// SplashRadius returns the radius drawn around the target.
func (s *PyroBlastTargetStatus) SplashRadius() float64 { return s.splashRadius }

// Render draws a rotating target marker sized to the splash area.
func (s *PyroBlastTargetStatus) Render(now gametime.Time, target *model.Character, cmds *render.Commands) {
	rotation := math.Mod(now.ElapsedSince(s.started)*math.Pi, 2*math.Pi)
	size := s.splashRadius * 2
	cmds.Billboard("pyro_target", target.Pos().WithHeight(0.05), vmath.V2(size, size), rotation,
		render.RGBA(1, 0.4, 0.1, 0.8))
}
