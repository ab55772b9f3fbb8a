// Package render collects draw requests produced by the simulation core.
// The core never draws anything itself: statuses, manifestations and
// companions describe what they look like and an external renderer (or the
// observer stream) consumes the list.
package render

import "github.com/udisondev/skillsim/internal/vmath"

// Color is RGBA in 0..1.
type Color struct {
	R float32 `json:"r"`
	G float32 `json:"g"`
	B float32 `json:"b"`
	A float32 `json:"a"`
}

// RGBA is a shorthand constructor.
func RGBA(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// CommandKind is the draw primitive.
type CommandKind string

const (
	KindRectangle CommandKind = "rectangle"
	KindBillboard CommandKind = "billboard"
	KindSprite    CommandKind = "sprite"
)

// Command is one draw request. Fields unused by a kind stay zero.
type Command struct {
	Kind     CommandKind `json:"kind"`
	Texture  string      `json:"texture,omitempty"`
	Pos      vmath.Vec3  `json:"pos"`
	Size     vmath.Vec2  `json:"size"`
	Rotation float64     `json:"rotation,omitempty"`
	Color    Color       `json:"color"`
	// Frame is the animation frame or facing direction for sprites.
	Frame int `json:"frame,omitempty"`
}

// Commands is an append-only list of draw requests for one frame.
type Commands struct {
	list []Command
}

// Rectangle draws a flat rectangle on the ground.
func (c *Commands) Rectangle(pos vmath.Vec3, size vmath.Vec2, rotation float64, color Color) {
	c.list = append(c.list, Command{Kind: KindRectangle, Pos: pos, Size: size, Rotation: rotation, Color: color})
}

// Billboard draws a camera-facing textured quad.
func (c *Commands) Billboard(texture string, pos vmath.Vec3, size vmath.Vec2, rotation float64, color Color) {
	c.list = append(c.list, Command{Kind: KindBillboard, Texture: texture, Pos: pos, Size: size, Rotation: rotation, Color: color})
}

// Sprite draws a frame of a sprite sheet.
func (c *Commands) Sprite(texture string, pos vmath.Vec3, frame int, color Color) {
	c.list = append(c.list, Command{Kind: KindSprite, Texture: texture, Pos: pos, Frame: frame, Color: color})
}

// List returns the collected commands.
func (c *Commands) List() []Command {
	return c.list
}

// Len returns number of collected commands.
func (c *Commands) Len() int {
	return len(c.list)
}
