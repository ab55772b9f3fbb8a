package world

import (
	"sync/atomic"

	"github.com/udisondev/skillsim/internal/model"
)

// IDGenerator hands out entity and controller ids.
//
// Entity id ranges (convention):
//
//	0x00000000:              reserved (model.NoEntity)
//	0x10000000 - 0x1FFFFFFF: characters
//	0x20000000 - 0x2FFFFFFF: manifestations and companions
type IDGenerator struct {
	nextCharacterID  atomic.Uint32
	nextEphemeralID  atomic.Uint32
	nextControllerID atomic.Uint32
}

// NewIDGenerator creates a generator with empty ranges.
func NewIDGenerator() *IDGenerator {
	gen := &IDGenerator{}
	gen.nextCharacterID.Store(0x10000000)
	gen.nextEphemeralID.Store(0x20000000)
	return gen
}

// NextCharacterID returns the next character id.
func (g *IDGenerator) NextCharacterID() model.EntityID {
	return model.EntityID(g.nextCharacterID.Add(1))
}

// NextEphemeralID returns an id for a manifestation or a companion.
func (g *IDGenerator) NextEphemeralID() model.EntityID {
	return model.EntityID(g.nextEphemeralID.Add(1))
}

// NextControllerID returns the next controller id.
func (g *IDGenerator) NextControllerID() model.ControllerID {
	return model.ControllerID(g.nextControllerID.Add(1))
}
