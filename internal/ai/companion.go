package ai

import (
	"context"
	"log/slog"
	"math"

	"github.com/looplab/fsm"

	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/render"
	"github.com/udisondev/skillsim/internal/vmath"
)

// Companion heights, world units.
const (
	CompanionFlyHeight     = 5.0
	CompanionLoweredHeight = 2.0
	CompanionCarryHeight   = 12.0
)

const (
	followDistance = 2.0
	// pickDuration is how long the companion needs to grab its owner, seconds.
	pickDuration = 0.3
	// allyApproachShare of a carry-ally window is spent flying to the ally.
	allyApproachShare = 0.3
	// carriedHeightOffset: a carried character hangs this far below the companion.
	carriedHeightOffset = 2.5

	followAccelerationRate = 0.05
	followSpeedCap         = 0.03
	decelerationRate       = 0.1
	carryAcceleration      = 8.57
	stopThreshold          = 1e-5
)

// CompanionState is the companion's current activity.
type CompanionState string

const (
	StateFollow     CompanionState = "follow"
	StateAttack     CompanionState = "attack"
	StateCarryOwner CompanionState = "carry_owner"
	StateCarryAlly  CompanionState = "carry_ally"
)

// Animation is the sprite action the companion plays.
type Animation uint8

const (
	AnimIdle Animation = iota
	AnimWalking
)

func (a Animation) String() string {
	if a == AnimWalking {
		return "walking"
	}
	return "idle"
}

// Transition events. Everything but finish is only accepted from follow.
const (
	eventAttack     = "attack"
	eventCarryOwner = "carry_owner"
	eventCarryAlly  = "carry_ally"
	eventFinish     = "finish"
)

type attackPlan struct {
	startedAt gametime.Time
	endsAt    gametime.Time
	startPos  vmath.Vec3
	endPos    vmath.Vec3
}

type ownerCarry struct {
	controller model.ControllerID
	startedAt  gametime.Time
	endsAt     gametime.Time
	caught     bool
	startPos   vmath.Vec3
}

type allyCarry struct {
	ally      model.EntityID
	startPos  vmath.Vec3
	startedAt gametime.Time
	endsAt    gametime.Time
	caught    bool
	endPos    vmath.Vec2
	curve     vmath.QuadraticBezier
}

// Companion is a flying pet (the falcon) bound to one owner character.
//
// State machine: follow → {attack, carry_owner, carry_ally} → follow.
// Carry and attack requests are dropped unless the companion is following.
// The companion dies with its owner: a missing owner destroys it.
type Companion struct {
	id      model.EntityID
	owner   model.EntityID
	pos     vmath.Vec3
	accel   float64
	machine *fsm.FSM

	attack     attackPlan
	ownerCarry ownerCarry
	allyCarry  allyCarry

	dir  model.Direction
	anim Animation
}

// NewCompanion creates a following companion above start.
func NewCompanion(id, owner model.EntityID, start vmath.Vec2) *Companion {
	return &Companion{
		id:      id,
		owner:   owner,
		pos:     start.WithHeight(CompanionFlyHeight),
		machine: newCompanionFSM(),
	}
}

func newCompanionFSM() *fsm.FSM {
	follow := string(StateFollow)
	return fsm.NewFSM(follow, fsm.Events{
		{Name: eventAttack, Src: []string{follow}, Dst: string(StateAttack)},
		{Name: eventCarryOwner, Src: []string{follow}, Dst: string(StateCarryOwner)},
		{Name: eventCarryAlly, Src: []string{follow}, Dst: string(StateCarryAlly)},
		{Name: eventFinish, Src: []string{string(StateAttack), string(StateCarryOwner), string(StateCarryAlly)}, Dst: follow},
	}, fsm.Callbacks{})
}

func (c *Companion) ID() model.EntityID         { return c.id }
func (c *Companion) Owner() model.EntityID      { return c.owner }
func (c *Companion) Pos() vmath.Vec3            { return c.pos }
func (c *Companion) Acceleration() float64      { return c.accel }
func (c *Companion) Direction() model.Direction { return c.dir }
func (c *Companion) Animation() Animation       { return c.anim }

// State returns the current state.
func (c *Companion) State() CompanionState {
	return CompanionState(c.machine.Current())
}

func (c *Companion) Start() {
	if IsDebugEnabled() {
		slog.Debug("companion started", "id", c.id, "owner", c.owner)
	}
}

func (c *Companion) Stop() {
	if IsDebugEnabled() {
		slog.Debug("companion stopped", "id", c.id, "owner", c.owner, "state", c.State())
	}
}

func (c *Companion) transition(event string) bool {
	if err := c.machine.Event(context.Background(), event); err != nil {
		if IsDebugEnabled() {
			slog.Debug("companion transition ignored",
				"id", c.id,
				"event", event,
				"state", c.State(),
				"error", err)
		}
		return false
	}
	return true
}

// CarryOwner makes the companion pick up its owner and fly it around for
// duration seconds, steering by the owner controller's movement intention.
// Returns false if the request was dropped.
func (c *Companion) CarryOwner(ownerController model.ControllerID, ownerPos vmath.Vec2, now gametime.Time, duration float64) bool {
	if duration <= 0 || !c.transition(eventCarryOwner) {
		return false
	}
	c.ownerCarry = ownerCarry{
		controller: ownerController,
		startedAt:  now,
		endsAt:     now.AddSeconds(duration),
		startPos:   c.pos,
	}
	c.anim = AnimWalking
	c.dir = model.DetermineDir(ownerPos, c.pos.Planar())
	return true
}

// CarryAlly makes the companion fetch ally and bring it next to the owner.
// Returns false if the request was dropped.
func (c *Companion) CarryAlly(ally model.EntityID, allyPos vmath.Vec2, now gametime.Time, duration float64) bool {
	if duration <= 0 || !c.transition(eventCarryAlly) {
		return false
	}
	c.allyCarry = allyCarry{
		ally:      ally,
		startPos:  c.pos,
		startedAt: now,
		endsAt:    now.AddSeconds(duration),
	}
	c.anim = AnimWalking
	c.dir = model.DetermineDir(allyPos, c.pos.Planar())
	return true
}

// SetStateToAttack starts a dive from start (at fly height) to end.
// Returns false if the request was dropped.
func (c *Companion) SetStateToAttack(now gametime.Time, duration float64, start, end vmath.Vec2) bool {
	if duration <= 0 || !c.transition(eventAttack) {
		return false
	}
	c.pos = start.WithHeight(CompanionFlyHeight)
	c.attack = attackPlan{
		startedAt: now,
		endsAt:    now.AddSeconds(duration),
		startPos:  c.pos,
		endPos:    end.WithHeight(0.5),
	}
	c.anim = AnimWalking
	c.dir = model.DetermineDir(end, start)
	return true
}

// Tick advances the companion. Returns false when it must be destroyed.
func (c *Companion) Tick(ctx *Context) bool {
	switch c.State() {
	case StateFollow:
		return c.tickFollow(ctx)
	case StateCarryOwner:
		return c.tickCarryOwner(ctx)
	case StateCarryAlly:
		return c.tickCarryAlly(ctx)
	case StateAttack:
		c.tickAttack(ctx)
	}
	return true
}

func (c *Companion) tickFollow(ctx *Context) bool {
	owner, ok := ctx.World.Character(c.owner)
	if !ok {
		slog.Debug("companion owner gone", "id", c.id, "owner", c.owner)
		return false
	}

	pos2d := c.pos.Planar()
	diff := owner.Pos().Sub(pos2d)
	distance := diff.Magnitude()
	if distance > followDistance {
		toOwner := owner.Pos().WithHeight(CompanionFlyHeight).Sub(c.pos)
		speedCap := followSpeedCap * owner.CalculatedAttributes().WalkingSpeedFactor()
		c.accel = math.Min(c.accel+ctx.Dt*followAccelerationRate, speedCap)
		c.pos = c.pos.Add(toOwner.Scale(c.accel))
		c.dir = model.DetermineDir(owner.Pos(), pos2d)
		c.anim = AnimWalking
		return true
	}

	c.decelerate(diff.WithHeight(0), distance, ctx.Dt)
	return true
}

// decelerate drifts along toward while braking; stops below the threshold.
func (c *Companion) decelerate(toward vmath.Vec3, distance, dt float64) {
	if c.accel < stopThreshold || distance == 0 {
		c.accel = 0
		c.anim = AnimIdle
		return
	}
	c.accel = math.Max(c.accel-dt*decelerationRate, 0)
	if dir, ok := toward.Normalize(); ok {
		c.pos = c.pos.Add(dir.Scale(c.accel))
	}
}

func (c *Companion) tickCarryOwner(ctx *Context) bool {
	oc := &c.ownerCarry
	picking := ctx.Now.ElapsedSince(oc.startedAt) / pickDuration
	pct := ctx.Now.PercentageBetween(oc.startedAt, oc.endsAt)

	if picking > 1 && pct >= 1 {
		if owner, ok := ctx.World.Character(c.owner); ok {
			owner.SetHeight(0)
		}
		c.finish()
		return true
	}

	owner, ok := ctx.World.Character(c.owner)
	if !ok {
		slog.Debug("carried owner gone", "id", c.id, "owner", c.owner)
		return false
	}

	if picking <= 1 {
		line := owner.Pos().WithHeight(CompanionLoweredHeight).Sub(oc.startPos)
		c.pos = oc.startPos.Add(line.Scale(picking))
		return true
	}

	if !oc.caught {
		oc.caught = true
		c.anim = AnimIdle
		ctx.Statuses.Enqueue(status.ApplyRequest{
			Source: c.owner,
			Target: c.owner,
			Status: status.NewOwnerCarryStatus(c.owner, oc.startedAt, oc.endsAt),
		})
	}

	ctrl, ok := ctx.World.Controller(oc.controller)
	if !ok {
		slog.Debug("carried owner controller gone", "id", c.id, "controller", oc.controller)
		return false
	}

	y := CarryHeight(pct)
	dest := c.pos.Planar()
	switch {
	case ctrl.Intention.IsMovement():
		dest = ctrl.Intention.Pos
	case ctrl.LastIntention.IsMovement():
		dest = ctrl.LastIntention.Pos
	}
	target := dest.WithHeight(y)

	c.pos.Y = y
	diff := target.Sub(c.pos)
	distance := diff.Magnitude()
	if distance > followDistance {
		pos2d := c.pos.Planar()
		if dir, ok := diff.Normalize(); ok {
			c.accel = carryAcceleration * ctx.Dt
			c.pos = c.pos.Add(dir.Scale(c.accel))
		}
		c.dir = model.DetermineDir(dest, pos2d)
	} else {
		c.decelerate(diff, distance, ctx.Dt)
	}

	hang(owner, c.pos)
	return true
}

func (c *Companion) tickCarryAlly(ctx *Context) bool {
	ac := &c.allyCarry
	pct := ctx.Now.PercentageBetween(ac.startedAt, ac.endsAt)

	if pct <= allyApproachShare {
		ally, ok := ctx.World.Character(ac.ally)
		if !ok {
			slog.Debug("ally gone before pick-up", "id", c.id, "ally", ac.ally)
			c.finish()
			return true
		}
		line := ally.Pos().WithHeight(CompanionLoweredHeight).Sub(ac.startPos)
		c.pos = ac.startPos.Add(line.Scale(pct / allyApproachShare))
		return true
	}

	if pct >= 1 {
		if ally, ok := ctx.World.Character(ac.ally); ok {
			ally.SetHeight(0)
		}
		c.finish()
		return true
	}

	if !ac.caught {
		owner, ownerOK := ctx.World.Character(c.owner)
		_, allyOK := ctx.World.Character(ac.ally)
		if !ownerOK || !allyOK {
			slog.Debug("carry curve endpoints gone", "id", c.id, "owner", c.owner, "ally", ac.ally)
			return false
		}

		pos2d := c.pos.Planar()
		line := pos2d.Sub(owner.Pos())
		ctrl := pos2d.Add(line.Scale(0.2)).Add(vmath.V2(5, 0))
		ac.endPos = owner.Pos()
		ac.curve = vmath.QuadraticBezier{
			Start: c.pos,
			Ctrl:  ctrl.WithHeight(20),
			End:   ac.endPos.WithHeight(CompanionLoweredHeight),
		}
		ac.caught = true
		c.anim = AnimIdle
		ctx.Statuses.Enqueue(status.ApplyRequest{
			Source: c.owner,
			Target: ac.ally,
			Status: status.NewAllyCarryStatus(c.owner, ac.startedAt, ac.endsAt, ac.endPos),
		})
	}

	c.pos = ac.curve.Evaluate((pct - allyApproachShare) / (1 - allyApproachShare))
	if ally, ok := ctx.World.Character(ac.ally); ok {
		hang(ally, c.pos)
	}
	c.dir = model.DetermineDir(ac.endPos, c.pos.Planar())
	return true
}

func (c *Companion) tickAttack(ctx *Context) {
	pct := ctx.Now.PercentageBetween(c.attack.startedAt, c.attack.endsAt)
	if pct <= 1 {
		c.pos = c.attack.startPos.Lerp(c.attack.endPos, pct)
		return
	}
	c.finish()
}

func (c *Companion) finish() {
	c.transition(eventFinish)
	c.anim = AnimIdle
}

// hang places a carried character under the companion.
func hang(ch *model.Character, companion vmath.Vec3) {
	ch.SetPos(companion.Planar())
	ch.SetHeight(companion.Y - carriedHeightOffset)
}

// CarryHeight is the owner-carry flight profile for the carry window ratio
// pct: rises from the lowered height to the peak over the first 40%, stays
// flat, then descends over the last 20%.
func CarryHeight(pct float64) float64 {
	span := CompanionCarryHeight - CompanionLoweredHeight
	if pct < 0.4 {
		return pct/0.4*span + CompanionLoweredHeight
	}
	return (1-math.Max(pct-0.8, 0)/0.2)*span + CompanionLoweredHeight
}

// Render draws the companion sprite and its ground shadow.
func (c *Companion) Render(_ gametime.Time, cmds *render.Commands) {
	cmds.Rectangle(c.pos.Planar().WithHeight(0.01), vmath.V2(0.6, 0.6), 0, render.RGBA(0, 0, 0, 0.3))
	cmds.Sprite("falcon_"+c.anim.String(), c.pos, int(c.dir), render.RGBA(1, 1, 1, 1))
}
