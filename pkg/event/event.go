// pkg/event/event.go
package event

import (
	"sync"

	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// Type represents the type of event
type Type string

// Common event types
const (
	LineCollision Type = "line_collision"
	EntitySpawned Type = "entity_spawned"
	EntityKilled  Type = "entity_killed"
	SceneLoaded   Type = "scene_loaded"
	SceneUnloaded Type = "scene_unloaded"
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

// Subscription identifies a registered handler
type Subscription struct {
	ID     uint64
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Cancel: func() { b.unsubscribe(eventType, id) },
	}
}

func (b *Bus) unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			b.handlers[eventType] = append(regs[:i:i], regs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers, in subscription order
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// CollisionEvent reports a line collider deflecting a body
type CollisionEvent struct {
	BaseEvent
	LineEntity uint64
	BodyEntity uint64
	Segment    int
	Point      physics.Vector2D
	Normal     physics.Vector2D
	Speed      float64
}

// NewCollisionEvent creates a collision event from a detection result
func NewCollisionEvent(source interface{}, lineEntity, bodyEntity uint64, hit physics.Hit, resp physics.Response) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: LineCollision,
			Source:    source,
		},
		LineEntity: lineEntity,
		BodyEntity: bodyEntity,
		Segment:    hit.Segment,
		Point:      hit.Point,
		Normal:     hit.Normal,
		Speed:      resp.Velocity.Length(),
	}
}

// EntityEvent reports an entity entering or leaving the world
type EntityEvent struct {
	BaseEvent
	EntityID uint64
	Name     string
	Scene    string
}

// NewEntityEvent creates a new entity event
func NewEntityEvent(eventType Type, source interface{}, entityID uint64, name, scene string) *EntityEvent {
	return &EntityEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		EntityID: entityID,
		Name:     name,
		Scene:    scene,
	}
}

// SceneEvent reports a scene being loaded or unloaded
type SceneEvent struct {
	BaseEvent
	Scene      string
	InstanceID string
	Entities   int
}

// NewSceneEvent creates a new scene event
func NewSceneEvent(eventType Type, source interface{}, scene, instanceID string, entities int) *SceneEvent {
	return &SceneEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Scene:      scene,
		InstanceID: instanceID,
		Entities:   entities,
	}
}
