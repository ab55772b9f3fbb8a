package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillsim/internal/game/attrib"
	"github.com/udisondev/skillsim/internal/model"
	"github.com/udisondev/skillsim/internal/vmath"
)

func TestWorld_SpawnAndRemoveCharacter(t *testing.T) {
	w := New()
	c := w.SpawnCharacter("gaz", model.TeamLeft, vmath.V2(1, 2), attrib.DefaultAttributes())

	got, err := w.GetCharacter(c.ID())
	require.NoError(t, err)
	assert.Same(t, c, got)

	w.MarkTurret(c.ID(), model.Turret{Owner: 99})
	w.RemoveCharacter(c.ID())

	_, err = w.GetCharacter(c.ID())
	assert.ErrorIs(t, err, ErrCharacterNotFound)
	_, ok := w.Turret(c.ID())
	assert.False(t, ok)
}

func TestWorld_CharactersSortedByID(t *testing.T) {
	w := New()
	a := w.SpawnCharacter("a", model.TeamLeft, vmath.V2(0, 0), attrib.DefaultAttributes())
	b := w.SpawnCharacter("b", model.TeamLeft, vmath.V2(0, 0), attrib.DefaultAttributes())

	chars := w.Characters()
	require.Len(t, chars, 2)
	assert.Equal(t, a.ID(), chars[0].ID())
	assert.Equal(t, b.ID(), chars[1].ID())
}

func TestWorld_ClosestEnemyInArea(t *testing.T) {
	w := New()
	base := attrib.DefaultAttributes()
	turret := w.SpawnCharacter("turret", model.TeamLeft, vmath.V2(0, 0), base)
	far := w.SpawnCharacter("far", model.TeamRight, vmath.V2(5, 0), base)
	near := w.SpawnCharacter("near", model.TeamRight, vmath.V2(2, 0), base)
	w.SpawnCharacter("ally", model.TeamLeft, vmath.V2(1, 0), base)
	outside := w.SpawnCharacter("outside", model.TeamRight, vmath.V2(50, 0), base)

	tests := []struct {
		name   string
		radius float64
		want   model.EntityID
		found  bool
	}{
		{"nearest in range", 10, near.ID(), true},
		{"small radius", 1.5, model.NoEntity, false},
		{"exact boundary", 2, near.ID(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := w.ClosestEnemyInArea(turret.Pos(), tt.radius, turret.Team(), turret.ID())
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	near.SetHP(0)
	got, ok := w.ClosestEnemyInArea(turret.Pos(), 10, turret.Team(), turret.ID())
	require.True(t, ok)
	assert.Equal(t, far.ID(), got)
	assert.NotEqual(t, outside.ID(), got)
}

func TestWorld_ControllersAndTurrets(t *testing.T) {
	w := New()
	owner := w.SpawnCharacter("gaz", model.TeamLeft, vmath.V2(0, 0), attrib.DefaultAttributes())
	t1 := w.SpawnCharacter("t1", model.TeamLeft, vmath.V2(0, 0), attrib.DefaultAttributes())
	t2 := w.SpawnCharacter("t2", model.TeamLeft, vmath.V2(0, 0), attrib.DefaultAttributes())
	w.MarkTurret(t2.ID(), model.Turret{Owner: owner.ID()})
	w.MarkTurret(t1.ID(), model.Turret{Owner: owner.ID()})

	assert.Equal(t, []model.EntityID{t1.ID(), t2.ID()}, w.TurretsOwnedBy(owner.ID()))

	ctrl := w.AddController(t1.ID())
	found, ok := w.ControllerOf(t1.ID())
	require.True(t, ok)
	assert.Equal(t, ctrl.ID, found.ID)

	w.RemoveController(ctrl.ID)
	_, ok = w.Controller(ctrl.ID)
	assert.False(t, ok)
}
