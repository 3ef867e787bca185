// pkg/entity/entity_test.go
package entity

import (
	"testing"

	"github.com/opd-ai/go-ricochet/pkg/physics"
)

func TestNew_UniqueIDs(t *testing.T) {
	a := New("wall")
	b := New("ball")

	if a.GetID() == b.GetID() {
		t.Errorf("New() returned duplicate IDs %d", a.GetID())
	}
	if !a.Active || a.Name != "wall" {
		t.Errorf("New() = %+v, expected active entity named wall", a)
	}
	if uint64(a.GetID()) != a.BasicEntity.ID() {
		t.Error("GetID() does not match the ecs identity")
	}
}

func TestEntity_Update(t *testing.T) {
	tests := []struct {
		name      string
		physics   *PhysicsComponent
		start     physics.Vector2D
		dt        float64
		wantPos   physics.Vector2D
		wantOld   physics.Vector2D
		wantMoved bool
	}{
		{
			name:      "static_entity_stays",
			start:     physics.Vector2D{X: 1, Y: 1},
			dt:        1,
			wantPos:   physics.Vector2D{X: 1, Y: 1},
			wantOld:   physics.Vector2D{X: 1, Y: 1},
			wantMoved: false,
		},
		{
			name:      "dynamic_entity_integrates",
			physics:   &PhysicsComponent{Velocity: physics.Vector2D{X: 4, Y: -2}},
			start:     physics.Vector2D{X: 1, Y: 1},
			dt:        0.5,
			wantPos:   physics.Vector2D{X: 3, Y: 0},
			wantOld:   physics.Vector2D{X: 1, Y: 1},
			wantMoved: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(tt.name)
			e.Physics = tt.physics
			e.Transform.Position = tt.start

			e.Update(tt.dt)

			if e.Translation() != tt.wantPos {
				t.Errorf("Translation() = %v, want %v", e.Translation(), tt.wantPos)
			}
			if e.OldTranslation() != tt.wantOld {
				t.Errorf("OldTranslation() = %v, want %v", e.OldTranslation(), tt.wantOld)
			}
			if e.IsDynamic() != tt.wantMoved {
				t.Errorf("IsDynamic() = %v, want %v", e.IsDynamic(), tt.wantMoved)
			}
		})
	}
}

func TestEntity_BodyAccessors(t *testing.T) {
	e := New("ball")
	e.Transform.Position = physics.Vector2D{X: 2, Y: 3}

	if !e.Velocity().IsZero() {
		t.Errorf("static Velocity() = %v, want zero", e.Velocity())
	}

	e.SetVelocity(physics.Vector2D{X: 1, Y: 0})
	if e.Physics == nil || e.Velocity() != (physics.Vector2D{X: 1, Y: 0}) {
		t.Fatalf("SetVelocity() did not create a physics component: %+v", e.Physics)
	}
	if e.OldTranslation() != (physics.Vector2D{X: 2, Y: 3}) {
		t.Errorf("OldTranslation() = %v, want the position at creation", e.OldTranslation())
	}

	e.SetTranslation(physics.Vector2D{X: -1, Y: 0})
	e.SetRotation(1.25)
	if e.Translation() != (physics.Vector2D{X: -1, Y: 0}) || e.Rotation() != 1.25 {
		t.Errorf("transform = %+v", e.Transform)
	}
}

func TestEntity_Kill(t *testing.T) {
	e := New("ball")
	e.Kill()
	if e.Active {
		t.Error("Kill() left the entity active")
	}
}

type recordingRenderer struct {
	lines  int
	bodies []float64
}

func (r *recordingRenderer) RenderLines(e *Entity, lines *physics.LineCollider) { r.lines++ }
func (r *recordingRenderer) RenderBody(e *Entity, radius float64)               { r.bodies = append(r.bodies, radius) }
func (r *recordingRenderer) Clear()                                             {}
func (r *recordingRenderer) Present()                                           {}

func TestEntity_RenderDispatch(t *testing.T) {
	r := &recordingRenderer{}

	wall := New("wall")
	wall.Collider, _ = physics.CreateLineCollider()
	ball := New("ball")
	ball.Collider = &physics.CircleCollider{Radius: 2}
	marker := New("marker")

	for _, e := range []*Entity{wall, ball, marker} {
		e.Render(r)
	}

	if r.lines != 1 {
		t.Errorf("RenderLines called %d times, want 1", r.lines)
	}
	if len(r.bodies) != 2 || r.bodies[0] != 2 || r.bodies[1] != 0 {
		t.Errorf("RenderBody radii = %v, want [2 0]", r.bodies)
	}
}
