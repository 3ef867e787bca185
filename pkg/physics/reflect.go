package physics

// Response is the new state of a body after reflecting off a segment
type Response struct {
	Position Vector2D
	Rotation float64
	Velocity Vector2D
	// HasHeading is false when neither the reflected vector nor the velocity
	// defines a direction; the body's rotation is then left alone.
	HasHeading bool
}

// Reflect mirrors the incoming vector about the hit normal. The new velocity
// points along the reflection and keeps the speed of velocity.
func Reflect(hit Hit, velocity Vector2D) Response {
	r := hit.Incoming.Reflect(hit.Normal)

	// A body that ends exactly on the line has no incoming vector to mirror.
	heading := r
	if heading.LengthSquared() <= DefaultEpsilon*DefaultEpsilon {
		heading = velocity.Reflect(hit.Normal)
	}

	resp := Response{
		Position: hit.Point.Add(r),
		Velocity: heading.Normalize().Scale(velocity.Length()),
	}
	if !heading.IsZero() {
		resp.Rotation = heading.Angle()
		resp.HasHeading = true
	}
	return resp
}

// Apply writes the response onto body
func (r Response) Apply(body Body) {
	body.SetTranslation(r.Position)
	if r.HasHeading {
		body.SetRotation(r.Rotation)
	}
	body.SetVelocity(r.Velocity)
}
