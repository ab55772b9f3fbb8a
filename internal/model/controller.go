package model

// Controller drives one character: a player's input or an AI.
// LastIntention keeps the most recent non-empty intention so followers can
// keep tracking it when no input arrives this tick.
type Controller struct {
	ID            ControllerID
	Controlled    EntityID
	Intention     Intention
	LastIntention Intention
}

// NewController creates a controller for the given character.
func NewController(id ControllerID, controlled EntityID) *Controller {
	return &Controller{ID: id, Controlled: controlled}
}

// SetIntention stores the intention and remembers it when non-empty.
func (c *Controller) SetIntention(i Intention) {
	c.Intention = i
	if i.Kind != IntentionNone {
		c.LastIntention = i
	}
}
