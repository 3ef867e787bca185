package physics

// Transform exposes an entity's position and orientation
type Transform interface {
	Translation() Vector2D
	SetTranslation(Vector2D)
	Rotation() float64
	SetRotation(float64)
}

// Kinematics exposes an entity's velocity and its position at the start of the frame
type Kinematics interface {
	Velocity() Vector2D
	SetVelocity(Vector2D)
	OldTranslation() Vector2D
}

// Body is a moving entity the collision core borrows for one call
type Body interface {
	Transform
	Kinematics
}
