package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillsim/internal/config"
	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/game/status"
	"github.com/udisondev/skillsim/internal/vmath"
	"github.com/udisondev/skillsim/internal/world"
)

func TestLoadScenario(t *testing.T) {
	s, err := New(testConfig())
	require.NoError(t, err)

	require.NoError(t, s.LoadScenario(config.Scenario{
		Characters: []config.ScenarioCharacter{
			{Name: "gaz", Team: "left", Pos: vmath.V2(0, 0), Controlled: true},
			{Name: "wiz", Team: "right", Pos: vmath.V2(3, 0)},
		},
		Companions: []config.ScenarioCompanion{{Owner: "gaz"}},
		Casts: []config.ScenarioCast{
			{AtSeconds: 0.45, Caster: "gaz", Skill: "poison", Target: "wiz"},
			{AtSeconds: 0.25, Caster: "gaz", Skill: "gaz_exo_skeleton"},
			{AtSeconds: 0.25, Caster: "ghost", Skill: "heal"},
		},
	}))
	assert.Equal(t, 2, s.World().CharacterCount())
	assert.Equal(t, 1, s.AI().Count())
	assert.Equal(t, 3, s.ScheduledCasts())

	steps(s, 2)
	assert.Equal(t, 3, s.ScheduledCasts())

	// 0.3: exoskeleton released and resolved, ghost skipped
	s.Step()
	assert.Equal(t, 1, s.ScheduledCasts())

	gaz, _ := s.World().CharacterByName("gaz")
	s.Step()
	assert.True(t, s.Statuses().Has(gaz.ID(), status.KindExoSkeleton))

	s.Step()
	assert.Zero(t, s.ScheduledCasts())
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name string
		sc   config.Scenario
	}{
		{
			name: "duplicate name",
			sc: config.Scenario{Characters: []config.ScenarioCharacter{
				{Name: "gaz", Team: "left"},
				{Name: "gaz", Team: "right"},
			}},
		},
		{
			name: "unknown companion owner",
			sc:   config.Scenario{Companions: []config.ScenarioCompanion{{Owner: "nobody"}}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(testConfig())
			require.NoError(t, err)
			assert.Error(t, s.LoadScenario(tt.sc))
		})
	}
}

func TestExportRestoreStatuses(t *testing.T) {
	s, gaz, wiz := newTestSim(t)
	require.NoError(t, s.QueueCast(Cast{Skill: "gaz_exo_skeleton", Caster: gaz.ID()}))
	require.NoError(t, s.QueueCast(Cast{Skill: "blessing", Caster: gaz.ID(), Target: wiz.ID()}))
	steps(s, 2)

	saved := s.ExportStatuses()
	require.Len(t, saved["gaz"], 1)
	require.Len(t, saved["wiz"], 1)
	assert.Equal(t, "gaz", saved["wiz"][0].CasterName)

	restarted, err := New(testConfig())
	require.NoError(t, err)
	gaz2 := restarted.SpawnCharacter("gaz", gaz.Team(), gaz.Pos(), attrib.DefaultAttributes(), true)
	wiz2 := restarted.SpawnCharacter("wiz", wiz.Team(), wiz.Pos(), attrib.DefaultAttributes(), false)

	for name, recs := range saved {
		require.NoError(t, restarted.RestoreStatuses(name, recs))
	}
	restarted.Step()

	assert.True(t, restarted.Statuses().Has(gaz2.ID(), status.KindExoSkeleton))
	blessings := restarted.Statuses().Statuses(wiz2.ID())
	require.Len(t, blessings, 1)
	assert.Equal(t, gaz2.ID(), blessings[0].Caster())

	assert.ErrorIs(t, restarted.RestoreStatuses("nobody", nil), world.ErrCharacterNotFound)
}
