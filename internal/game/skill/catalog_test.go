package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillsim/internal/ai"
	"github.com/udisondev/skillsim/internal/config"
	"github.com/udisondev/skillsim/internal/event"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/game/manifest"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/gametime"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/physics"
	"github.com/udisondev/skillsim/internal/vmath"
	"github.com/udisondev/skillsim/internal/world"
)

type fixture struct {
	env   *Env
	gaz   *model.Character
	enemy *model.Character
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	cfg := config.DefaultSimulation()
	w := world.New()
	f := &fixture{
		env: &Env{
			Now:      gametime.Time(10),
			World:    w,
			Physics:  physics.NewWorld(),
			Statuses: status.NewEngine(w),
			Events:   &event.Queues{},
			AI:       ai.NewManager(),
			Skills:   &cfg.Skills,
			Sentinel: cfg.Sentinel,
		},
	}
	f.gaz = w.SpawnCharacter("gaz", model.TeamLeft, vmath.V2(0, 0), attrib.DefaultAttributes())
	f.enemy = w.SpawnCharacter("wiz", model.TeamRight, vmath.V2(8, 0), attrib.DefaultAttributes())
	return f
}

func (f *fixture) cast(t *testing.T, name string, p CastParams) manifest.Manifestation {
	t.Helper()
	def, err := Lookup(name)
	require.NoError(t, err)
	if p.Caster == model.NoEntity {
		p.Caster = f.gaz.ID()
		p.CasterPos = f.gaz.Pos()
	}
	return def.FinishCast(p, f.env)
}

func (f *fixture) applyStatuses() {
	f.env.Statuses.ApplyPending(f.env.Now, f.env.Events)
	f.env.Statuses.RebuildAttributes(f.env.Now, attrib.NewCollector(attrib.StackMultiplicative))
}

func TestLookup(t *testing.T) {
	want := []string{
		"blessing", "falcon_attack", "falcon_carry",
		"gaz_destroy_turret", "gaz_exo_skeleton", "gaz_turret", "gaz_turret_target",
		"heal", "poison", "poison_field", "wiz_pyroblast",
	}
	assert.Equal(t, want, Names())

	_, err := Lookup("fireball")
	assert.ErrorIs(t, err, ErrUnknownSkill)
}

func TestTargetTypes(t *testing.T) {
	tests := []struct {
		skill string
		want  TargetType
	}{
		{"heal", OnlyAllyAndSelf},
		{"poison", OnlyEnemy},
		{"wiz_pyroblast", OnlyEnemy},
		{"gaz_exo_skeleton", NoTarget},
		{"gaz_turret", Area},
		{"gaz_destroy_turret", OnlyAllyButNoSelf},
		{"gaz_turret_target", OnlyEnemy},
		{"poison_field", Area},
		{"blessing", OnlyAllyAndSelf},
	}
	for _, tt := range tests {
		t.Run(tt.skill, func(t *testing.T) {
			def, err := Lookup(tt.skill)
			require.NoError(t, err)
			assert.Equal(t, tt.want, def.TargetType())
		})
	}
}

func TestHeal(t *testing.T) {
	f := newFixture(t)
	m := f.cast(t, "heal", CastParams{Target: f.gaz.ID()})
	assert.Nil(t, m)

	batch := f.env.Events.Drain()
	require.Len(t, batch.Sounds, 1)
	assert.Equal(t, "heal", batch.Sounds[0].SoundID)
	require.Len(t, batch.HpModifications, 1)
	assert.Equal(t, event.HpModHeal, batch.HpModifications[0].Kind)
	assert.Equal(t, int32(200), batch.HpModifications[0].Amount)
}

func TestPoison_EffectAndStackingStatus(t *testing.T) {
	f := newFixture(t)
	pos := vmath.V2(8, 0)
	f.cast(t, "poison", CastParams{Target: f.enemy.ID(), SkillPos: &pos})
	f.cast(t, "poison", CastParams{Target: f.enemy.ID(), SkillPos: &pos})

	effects := f.env.Events.Effects()
	require.Len(t, effects, 2)
	assert.Equal(t, "Poison", effects[0].EffectID)
	assert.Equal(t, event.PlayRepeat, effects[0].PlayMode)
	require.NotNil(t, effects[0].DieAt)
	assert.InDelta(t, 10.7, effects[0].DieAt.Seconds(), 1e-9)

	f.applyStatuses()
	assert.Len(t, f.env.Statuses.Statuses(f.enemy.ID()), 2)
}

func TestPyroBlast(t *testing.T) {
	f := newFixture(t)
	m := f.cast(t, "wiz_pyroblast", CastParams{Target: f.enemy.ID()})

	p, ok := m.(*manifest.Projectile)
	require.True(t, ok)
	assert.Equal(t, f.gaz.Pos(), p.Pos())
	assert.Equal(t, f.enemy.ID(), p.Target())

	f.applyStatuses()
	assert.True(t, f.env.Statuses.Has(f.enemy.ID(), status.KindPyroBlastTarget))
}

func TestExoSkeleton_ReplacesOnRecast(t *testing.T) {
	f := newFixture(t)
	f.cast(t, "gaz_exo_skeleton", CastParams{})
	f.applyStatuses()
	f.cast(t, "gaz_exo_skeleton", CastParams{})
	f.applyStatuses()

	assert.Len(t, f.env.Statuses.Statuses(f.gaz.ID()), 1)
	assert.Equal(t, model.BasicAttackRanged, f.gaz.BasicAttack().Kind)
	assert.InDelta(t, 15.0, f.gaz.CalculatedAttributes().Armor, 1e-9)
}

func TestTurretSkills(t *testing.T) {
	f := newFixture(t)
	pos := vmath.V2(2, 2)
	f.cast(t, "gaz_turret", CastParams{SkillPos: &pos})

	turrets := f.env.World.TurretsOwnedBy(f.gaz.ID())
	require.Len(t, turrets, 1)
	turret, ok := f.env.World.Character(turrets[0])
	require.True(t, ok)
	assert.Equal(t, model.TeamLeft, turret.Team())
	assert.Equal(t, pos, turret.Pos())
	assert.True(t, f.env.Physics.Contains(turret.Collider()))
	_, ok = f.env.World.ControllerOf(turret.ID())
	assert.True(t, ok)
	assert.Equal(t, 1, f.env.AI.Count())

	t.Run("preferred target", func(t *testing.T) {
		f.cast(t, "gaz_turret_target", CastParams{Target: f.enemy.ID()})
		marker, _ := f.env.World.Turret(turret.ID())
		assert.Equal(t, f.enemy.ID(), marker.PreferredTarget)
	})

	t.Run("destroy by stranger is ignored", func(t *testing.T) {
		f.cast(t, "gaz_destroy_turret", CastParams{
			Caster:    f.enemy.ID(),
			CasterPos: f.enemy.Pos(),
			Target:    turret.ID(),
		})
		assert.False(t, turret.IsDead())
	})

	t.Run("destroy by owner", func(t *testing.T) {
		f.cast(t, "gaz_destroy_turret", CastParams{Target: turret.ID()})
		assert.True(t, turret.IsDead())
	})
}

func TestPoisonField(t *testing.T) {
	f := newFixture(t)
	pos := vmath.V2(4, 0)
	m := f.cast(t, "poison_field", CastParams{SkillPos: &pos, Dir: vmath.V2(1, 0)})

	area, ok := m.(*manifest.AreaApplier)
	require.True(t, ok)
	assert.True(t, f.env.Physics.Contains(area.Collider()))
	assert.Equal(t, f.env.Now, area.NextActionAt())
}

func TestBlessing_DefaultsToSelf(t *testing.T) {
	f := newFixture(t)
	f.cast(t, "blessing", CastParams{})
	f.applyStatuses()

	assert.True(t, f.env.Statuses.Has(f.gaz.ID(), status.KindStatMod))
	assert.InDelta(t, 30.0, f.gaz.CalculatedAttributes().Armor, 1e-9)
}

func TestFalconSkills(t *testing.T) {
	f := newFixture(t)
	f.env.World.AddController(f.gaz.ID())
	ally := f.env.World.SpawnCharacter("ally", model.TeamLeft, vmath.V2(-3, 0), attrib.DefaultAttributes())

	t.Run("no falcon", func(t *testing.T) {
		assert.Nil(t, f.cast(t, "falcon_carry", CastParams{}))
	})

	falcon := ai.NewCompanion(f.env.World.IDs().NextEphemeralID(), f.gaz.ID(), f.gaz.Pos())
	f.env.AI.Register(falcon.ID(), falcon)

	t.Run("carry owner", func(t *testing.T) {
		f.cast(t, "falcon_carry", CastParams{Target: f.gaz.ID()})
		assert.Equal(t, ai.StateCarryOwner, falcon.State())

		// busy falcon ignores further commands
		f.cast(t, "falcon_carry", CastParams{Target: ally.ID()})
		assert.Equal(t, ai.StateCarryOwner, falcon.State())
	})

	t.Run("attack needs a free falcon", func(t *testing.T) {
		pos := vmath.V2(6, 0)
		f.cast(t, "falcon_attack", CastParams{SkillPos: &pos})
		assert.Empty(t, f.env.Events.AreaAttacks())
	})

	other := ai.NewCompanion(f.env.World.IDs().NextEphemeralID(), ally.ID(), ally.Pos())
	f.env.AI.Register(other.ID(), other)

	t.Run("attack", func(t *testing.T) {
		pos := vmath.V2(6, 0)
		f.cast(t, "falcon_attack", CastParams{Caster: ally.ID(), CasterPos: ally.Pos(), SkillPos: &pos})
		assert.Equal(t, ai.StateAttack, other.State())

		areas := f.env.Events.AreaAttacks()
		require.Len(t, areas, 1)
		assert.Equal(t, ally.ID(), areas[0].Source)
		assert.Equal(t, pos, areas[0].Area.Center)
	})

	t.Run("carry ally", func(t *testing.T) {
		third := ai.NewCompanion(f.env.World.IDs().NextEphemeralID(), f.enemy.ID(), f.enemy.Pos())
		f.env.AI.Register(third.ID(), third)
		f.cast(t, "falcon_carry", CastParams{Caster: f.enemy.ID(), CasterPos: f.enemy.Pos(), Target: ally.ID()})
		assert.Equal(t, ai.StateCarryAlly, third.State())
	})
}
