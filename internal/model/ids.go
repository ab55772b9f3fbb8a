package model

// EntityID identifies a character, manifestation or companion in the world.
// Zero is never allocated and means "no entity".
type EntityID uint32

// NoEntity — отсутствие ссылки на сущность (аналог пустого таргета).
const NoEntity EntityID = 0

// Valid reports whether id refers to an entity (it may still be deleted).
func (id EntityID) Valid() bool {
	return id != NoEntity
}

// ControllerID identifies a controller entity (player input or AI driver).
type ControllerID uint32

// NoController means "no controller".
const NoController ControllerID = 0

// ColliderHandle identifies a collider inside the physics world.
type ColliderHandle uint32

// NoCollider means the entity has no collider.
const NoCollider ColliderHandle = 0
