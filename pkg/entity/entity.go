// pkg/entity/entity.go
package entity

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// ID is a unique identifier for an entity
type ID uint64

// TransformComponent holds position and orientation
type TransformComponent struct {
	Position physics.Vector2D
	Rotation float64
}

// PhysicsComponent holds velocity and the position at the start of the frame
type PhysicsComponent struct {
	Velocity       physics.Vector2D
	OldTranslation physics.Vector2D
}

// Entity is a game object with a transform, optional physics and an optional collider
type Entity struct {
	ecs.BasicEntity

	Name      string
	Scene     string
	Transform TransformComponent
	Physics   *PhysicsComponent
	Collider  physics.Collider
	Active    bool
}

var _ physics.Body = (*Entity)(nil)

// New creates an active entity with a fresh ecs identity
func New(name string) *Entity {
	return &Entity{
		BasicEntity: ecs.NewBasic(),
		Name:        name,
		Active:      true,
	}
}

// GetID returns the entity's unique identifier
func (e *Entity) GetID() ID {
	return ID(e.BasicEntity.ID())
}

// IsDynamic reports whether the entity moves under its own velocity
func (e *Entity) IsDynamic() bool {
	return e.Physics != nil
}

// Update stores the current translation as the old one and integrates velocity
func (e *Entity) Update(deltaTime float64) {
	if e.Physics == nil {
		return
	}
	e.Physics.OldTranslation = e.Transform.Position
	e.Transform.Position = e.Physics.Velocity.ScaleAdd(e.Transform.Position, deltaTime)
}

// Kill deactivates the entity; the world drops it on its next cleanup pass
func (e *Entity) Kill() {
	e.Active = false
}

// Translation implements physics.Transform
func (e *Entity) Translation() physics.Vector2D {
	return e.Transform.Position
}

// SetTranslation implements physics.Transform
func (e *Entity) SetTranslation(p physics.Vector2D) {
	e.Transform.Position = p
}

// Rotation implements physics.Transform
func (e *Entity) Rotation() float64 {
	return e.Transform.Rotation
}

// SetRotation implements physics.Transform
func (e *Entity) SetRotation(r float64) {
	e.Transform.Rotation = r
}

// Velocity implements physics.Kinematics
func (e *Entity) Velocity() physics.Vector2D {
	if e.Physics == nil {
		return physics.Vector2D{}
	}
	return e.Physics.Velocity
}

// SetVelocity implements physics.Kinematics. A static entity gains a physics component.
func (e *Entity) SetVelocity(v physics.Vector2D) {
	if e.Physics == nil {
		e.Physics = &PhysicsComponent{OldTranslation: e.Transform.Position}
	}
	e.Physics.Velocity = v
}

// OldTranslation implements physics.Kinematics. Static entities report their current position.
func (e *Entity) OldTranslation() physics.Vector2D {
	if e.Physics == nil {
		return e.Transform.Position
	}
	return e.Physics.OldTranslation
}

// Render draws the entity according to its collider shape
func (e *Entity) Render(r Renderer) {
	switch c := e.Collider.(type) {
	case *physics.LineCollider:
		r.RenderLines(e, c)
	case *physics.CircleCollider:
		r.RenderBody(e, c.Radius)
	default:
		r.RenderBody(e, 0)
	}
}
