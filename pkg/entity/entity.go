// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/mzijlstra/Breakout/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// Entity is the base interface for all game objects
type Entity interface {
	GetID() ID
	GetPosition() physics.Vector2D
	Bounds() physics.Rect
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID ID
	physics.Body
	Active bool
}

func newBaseEntity(x, y float64, w, h int) BaseEntity {
	return BaseEntity{
		ID:     GenerateID(),
		Body:   physics.NewBody(x, y, w, h),
		Active: true,
	}
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetPosition returns the entity's position
func (e *BaseEntity) GetPosition() physics.Vector2D {
	return e.Position()
}

var nextID atomic.Uint64

// GenerateID generates a unique ID for entities
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// wrapHorizontal moves a body that drifted fully off one side of the field
// to the opposite side.
func wrapHorizontal(b *physics.Body, fieldWidth int) {
	if b.X > float64(fieldWidth) {
		b.X = float64(-b.W)
	}
	if b.X < float64(-b.W) {
		b.X = float64(fieldWidth)
	}
}
