package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/vmath"
	"github.com/udisondev/skillsim/internal/world"
)

func newTestEngine(t *testing.T) (*Engine, *world.World, *model.Character) {
	t.Helper()
	w := world.New()
	ch := w.SpawnCharacter("target", model.TeamRight, vmath.V2(0, 0), attrib.DefaultAttributes())
	return NewEngine(w), w, ch
}

func exoBonus() ExoSkeletonBonus {
	return ExoSkeletonBonus{Armor: 50, WalkingSpeed: 20, AttackRange: 20, AttackDamage: 30, AttackSpeed: 10}
}

func TestEngine_ExpiredStatusIsRemovedAndStopsModifying(t *testing.T) {
	e, _, ch := newTestEngine(t)
	var ev event.Queues
	c := attrib.NewCollector(attrib.StackMultiplicative)

	e.Enqueue(ApplyRequest{Source: ch.ID(), Target: ch.ID(), Status: NewExoSkeletonStatus(ch.ID(), 0, 5, exoBonus(), "SilverBullet")})
	e.ApplyPending(0, &ev)

	e.Update(1, 0.1, &ev)
	e.RebuildAttributes(1, c)
	assert.InDelta(t, 15.0, ch.CalculatedAttributes().Armor, 1e-9)
	assert.Equal(t, model.BasicAttackRanged, ch.BasicAttack().Kind)

	e.Update(5, 0.1, &ev)
	e.RebuildAttributes(5, c)
	assert.False(t, e.Has(ch.ID(), KindExoSkeleton))
	assert.InDelta(t, 10.0, ch.CalculatedAttributes().Armor, 1e-9)
	assert.Equal(t, model.MeleeSimple, ch.BasicAttack())
}

func TestEngine_StatusUpdateContract(t *testing.T) {
	now := gametime.Time(10)
	w := world.New()
	ch := w.SpawnCharacter("x", model.TeamLeft, vmath.V2(0, 0), attrib.DefaultAttributes())
	var ev event.Queues
	p := UpdateParams{Now: now, Dt: 0.1, Target: ch, World: w, Events: &ev}

	statuses := []Status{
		NewExoSkeletonStatus(1, 0, 10, exoBonus(), ""),
		NewPoisonStatus(1, 0, 10, 20, 1),
		NewPyroBlastTargetStatus(1, 0, 10, 2),
		NewOwnerCarryStatus(1, 0, 10),
		NewStatModStatus(1, 0, 10, attrib.ChannelArmor, attrib.Add(5)),
	}
	for _, s := range statuses {
		t.Run(string(s.Kind()), func(t *testing.T) {
			require.True(t, s.Until().HasAlreadyPassed(now))
			assert.Equal(t, RemoveIt, s.Update(p))
		})
	}
	assert.Empty(t, ev.HpModifications())
}

func TestEngine_MainReplacesSecondaryStacks(t *testing.T) {
	e, _, ch := newTestEngine(t)
	var ev event.Queues

	e.Enqueue(ApplyRequest{Source: 1, Target: ch.ID(), Status: NewStatModStatus(1, 0, 10, attrib.ChannelArmor, attrib.Add(5))})
	e.Enqueue(ApplyRequest{Source: 2, Target: ch.ID(), Status: NewStatModStatus(2, 0, 10, attrib.ChannelArmor, attrib.Add(7))})
	e.ApplyPending(0, &ev)

	statuses := e.Statuses(ch.ID())
	require.Len(t, statuses, 1)
	assert.Equal(t, model.EntityID(2), statuses[0].Caster())

	e.Enqueue(ApplyRequest{Source: 1, Target: ch.ID(), Status: NewPoisonStatus(1, 0, 10, 10, 1), Secondary: true})
	e.Enqueue(ApplyRequest{Source: 2, Target: ch.ID(), Status: NewPoisonStatus(2, 0, 10, 10, 1), Secondary: true})
	e.ApplyPending(0, &ev)
	assert.Len(t, e.Statuses(ch.ID()), 3)
	assert.Equal(t, 3, e.Count())
}

func TestEngine_ReplacementTearsDownOld(t *testing.T) {
	e, _, ch := newTestEngine(t)
	var ev event.Queues

	e.Enqueue(ApplyRequest{Source: ch.ID(), Target: ch.ID(), Status: NewExoSkeletonStatus(ch.ID(), 0, 5, exoBonus(), "a")})
	e.ApplyPending(0, &ev)
	e.Enqueue(ApplyRequest{Source: ch.ID(), Target: ch.ID(), Status: NewExoSkeletonStatus(ch.ID(), 1, 5, exoBonus(), "b")})
	e.ApplyPending(1, &ev)

	require.Len(t, e.Statuses(ch.ID()), 1)
	assert.Equal(t, model.Ranged("b"), ch.BasicAttack())
	// one cart effect per OnApply
	assert.Len(t, ev.Effects(), 2)
}

func TestEngine_DanglingTargetDropped(t *testing.T) {
	e, w, ch := newTestEngine(t)
	var ev event.Queues

	e.Enqueue(ApplyRequest{Source: 1, Target: ch.ID(), Status: NewPoisonStatus(1, 0, 3, 10, 1), Secondary: true})
	w.RemoveCharacter(ch.ID())
	e.ApplyPending(0, &ev)

	assert.Equal(t, 0, e.Count())
	assert.Equal(t, 0, e.PendingCount())
}

func TestEngine_StatusesOfDeletedCharacterDiscarded(t *testing.T) {
	e, w, ch := newTestEngine(t)
	var ev event.Queues

	e.Enqueue(ApplyRequest{Source: 1, Target: ch.ID(), Status: NewPoisonStatus(1, 0, 3, 10, 1), Secondary: true})
	e.ApplyPending(0, &ev)
	w.RemoveCharacter(ch.ID())
	e.Update(0.5, 0.1, &ev)

	assert.Equal(t, 0, e.Count())
}

func TestPoisonStatus_TicksFromApplication(t *testing.T) {
	e, _, ch := newTestEngine(t)
	var ev event.Queues

	e.Enqueue(ApplyRequest{Source: 1, Target: ch.ID(), Status: NewPoisonStatus(1, 0, 3, 25, 1), Secondary: true})
	e.ApplyPending(0, &ev)

	times := []gametime.Time{0, 0.5, 1, 1.5, 2, 2.5, 3, 3.5}
	for _, now := range times {
		e.Update(now, 0.5, &ev)
	}

	mods := ev.Drain().HpModifications
	require.Len(t, mods, 3)
	for _, m := range mods {
		assert.Equal(t, event.HpModPoison, m.Kind)
		assert.Equal(t, int32(25), m.Amount)
		assert.Equal(t, ch.ID(), m.Target)
		assert.Equal(t, model.EntityID(1), m.Source)
	}
	assert.False(t, e.Has(ch.ID(), KindPoison))
}

func TestEngine_RemoveWhereKeepsOtherCasters(t *testing.T) {
	e, _, ch := newTestEngine(t)
	var ev event.Queues

	e.Enqueue(ApplyRequest{Source: 1, Target: ch.ID(), Status: NewPyroBlastTargetStatus(1, 0, 10, 2), Secondary: true})
	e.Enqueue(ApplyRequest{Source: 2, Target: ch.ID(), Status: NewPyroBlastTargetStatus(2, 0, 10, 2), Secondary: true})
	e.ApplyPending(0, &ev)

	removed := e.RemoveWhere(ch.ID(), KindPyroBlastTarget, func(s Status) bool {
		return s.Caster() == 1
	})
	assert.Equal(t, 1, removed)

	statuses := e.Statuses(ch.ID())
	require.Len(t, statuses, 1)
	assert.Equal(t, model.EntityID(2), statuses[0].Caster())
}

func TestCarryStatus_AllyTeardownDropsAtEndPos(t *testing.T) {
	e, _, ch := newTestEngine(t)
	var ev event.Queues
	drop := vmath.V2(7, 3)

	e.Enqueue(ApplyRequest{Source: 1, Target: ch.ID(), Status: NewAllyCarryStatus(1, 0, 2, drop)})
	e.ApplyPending(0, &ev)
	assert.True(t, ch.IsCarried())
	ch.SetHeight(4)

	e.Update(2, 0.1, &ev)
	assert.False(t, ch.IsCarried())
	assert.Equal(t, 0.0, ch.Height())
	assert.Equal(t, drop, ch.Pos())
}

func TestEngine_ExportRestore(t *testing.T) {
	e, w, ch := newTestEngine(t)
	var ev event.Queues

	e.Enqueue(ApplyRequest{Source: ch.ID(), Target: ch.ID(), Status: NewExoSkeletonStatus(ch.ID(), 0, 10, exoBonus(), "SilverBullet")})
	e.Enqueue(ApplyRequest{Source: 9, Target: ch.ID(), Status: NewPoisonStatus(9, 0, 4, 30, 0.5), Secondary: true})
	e.Enqueue(ApplyRequest{Source: 9, Target: ch.ID(), Status: NewPyroBlastTargetStatus(9, 0, 4, 2), Secondary: true})
	e.ApplyPending(0, &ev)

	records := e.Export(ch.ID(), 3)
	require.Len(t, records, 2)
	assert.Equal(t, KindExoSkeleton, records[0].Kind)
	assert.InDelta(t, 7.0, records[0].Remaining, 1e-9)
	assert.True(t, records[1].Secondary)

	restored := NewEngine(w)
	require.NoError(t, restored.Restore(ch.ID(), records, 100))
	restored.ApplyPending(100, &ev)

	statuses := restored.Statuses(ch.ID())
	require.Len(t, statuses, 2)
	assert.InDelta(t, 107.0, statuses[0].Until().Seconds(), 1e-9)
	poison, ok := statuses[1].(*PoisonStatus)
	require.True(t, ok)
	assert.Equal(t, gametime.Time(100), poison.NextDamageAt())
}

func TestRestoreStatus_Errors(t *testing.T) {
	_, err := RestoreStatus(Record{Kind: KindCarry}, 0)
	assert.Error(t, err)

	_, err = RestoreStatus(Record{Kind: KindStatMod, Params: map[string]string{"channel": "luck"}}, 0)
	assert.Error(t, err)
}

func TestCompletionPercent(t *testing.T) {
	s := NewStatModStatus(1, 0, 4, attrib.ChannelArmor, attrib.Add(1))
	assert.InDelta(t, 0.25, CompletionPercent(s, 1), 1e-9)
	assert.Equal(t, 1.0, CompletionPercent(s, 10))
	assert.Equal(t, 1.0, CompletionPercent(NewStatModStatus(1, 0, 0, attrib.ChannelArmor, attrib.Add(1)), 0))
}
