package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/skillsim/internal/vmath"
)

func TestCommands_Collect(t *testing.T) {
	var c Commands
	c.Rectangle(vmath.V3(1, 0, 2), vmath.V2(4, 4), 0.5, RGBA(1, 0, 0, 1))
	c.Billboard("plasma", vmath.V3(0, 1, 0), vmath.V2(1, 1), 0, RGBA(1, 1, 1, 1))
	c.Sprite("falcon", vmath.V3(0, 5, 0), 3, RGBA(1, 1, 1, 1))

	require.Equal(t, 3, c.Len())
	list := c.List()
	assert.Equal(t, KindRectangle, list[0].Kind)
	assert.Equal(t, "plasma", list[1].Texture)
	assert.Equal(t, 3, list[2].Frame)
}
