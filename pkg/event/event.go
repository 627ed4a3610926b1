// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	BallServed     Type = "ball_served"
	BallLost       Type = "ball_lost"
	BallBounced    Type = "ball_bounced"
	BrickDestroyed Type = "brick_destroyed"
	DirtSpawned    Type = "dirt_spawned"
	DirtSettled    Type = "dirt_settled"
	DirtEscaped    Type = "dirt_escaped"
	TerrainImpact  Type = "terrain_impact"
	PhaseChanged   Type = "phase_changed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription is returned by Subscribe and removes the handler when cancelled.
type Subscription struct {
	ID     uint64
	Cancel func()
}

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[eventType]
	for i, s := range subs {
		if s.id == id {
			b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(b.handlers[eventType]) == 0 {
		delete(b.handlers, eventType)
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, s := range subs {
		s.handler(event)
	}
}

// Specific event implementations

// BallEvent reports a ball being served, bouncing or being lost
type BallEvent struct {
	BaseEvent
	BallID    uint64
	X, Y      float64
	Direction float64
	Velocity  float64
	Cause     string
}

// NewBallEvent creates a new ball event
func NewBallEvent(eventType Type, source interface{}, ballID uint64, x, y, direction, velocity float64, cause string) *BallEvent {
	return &BallEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BallID:    ballID,
		X:         x,
		Y:         y,
		Direction: direction,
		Velocity:  velocity,
		Cause:     cause,
	}
}

// BrickEvent contains information about a destroyed brick
type BrickEvent struct {
	BaseEvent
	BrickID uint64
	DirtID  uint64
	Side    string
}

// NewBrickEvent creates a new brick event
func NewBrickEvent(source interface{}, brickID, dirtID uint64, side string) *BrickEvent {
	return &BrickEvent{
		BaseEvent: BaseEvent{
			EventType: BrickDestroyed,
			Source:    source,
		},
		BrickID: brickID,
		DirtID:  dirtID,
		Side:    side,
	}
}

// DirtEvent contains information about debris changing state
type DirtEvent struct {
	BaseEvent
	DirtID uint64
	X, Y   float64
	Cells  int
}

// NewDirtEvent creates a new dirt event
func NewDirtEvent(eventType Type, source interface{}, dirtID uint64, x, y float64, cells int) *DirtEvent {
	return &DirtEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		DirtID: dirtID,
		X:      x,
		Y:      y,
		Cells:  cells,
	}
}

// TerrainEvent reports the ball striking the ground
type TerrainEvent struct {
	BaseEvent
	X, Y  int
	Cells int
}

// NewTerrainEvent creates a new terrain impact event
func NewTerrainEvent(source interface{}, x, y, cells int) *TerrainEvent {
	return &TerrainEvent{
		BaseEvent: BaseEvent{
			EventType: TerrainImpact,
			Source:    source,
		},
		X:     x,
		Y:     y,
		Cells: cells,
	}
}

// PhaseEvent reports a game phase transition
type PhaseEvent struct {
	BaseEvent
	From string
	To   string
}

// NewPhaseEvent creates a new phase change event
func NewPhaseEvent(source interface{}, from, to string) *PhaseEvent {
	return &PhaseEvent{
		BaseEvent: BaseEvent{
			EventType: PhaseChanged,
			Source:    source,
		},
		From: from,
		To:   to,
	}
}
