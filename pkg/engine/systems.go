// pkg/engine/systems.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-ricochet/pkg/entity"
	"github.com/opd-ai/go-ricochet/pkg/event"
	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// System priorities; ecs runs higher priorities first
const (
	MovementPriority  = 20
	CollisionPriority = 10
)

// MovementSystem integrates every dynamic entity over one frame
type MovementSystem struct {
	world    *World
	entities []*entity.Entity
}

// Priority implements ecs.Prioritizer
func (*MovementSystem) Priority() int { return MovementPriority }

// Add registers a dynamic entity
func (m *MovementSystem) Add(e *entity.Entity) {
	m.entities = append(m.entities, e)
}

// Remove satisfies the ecs.System interface
func (m *MovementSystem) Remove(basic ecs.BasicEntity) {
	m.entities = removeByID(m.entities, basic.ID())
}

// Update stores old translations and moves entities by velocity*dt.
// The float32 frame time from ecs is ignored in favour of the world's float64 step.
func (m *MovementSystem) Update(float32) {
	dt := m.world.dt
	for _, e := range m.entities {
		if e.Active {
			e.Update(dt)
		}
	}
}

// CollisionSystem sweeps moving circle bodies against line colliders
type CollisionSystem struct {
	world  *World
	lines  []*entity.Entity
	bodies []*entity.Entity
}

// Priority implements ecs.Prioritizer
func (*CollisionSystem) Priority() int { return CollisionPriority }

// Add registers an entity if it has a line collider or is a moving circle
func (c *CollisionSystem) Add(e *entity.Entity) {
	switch e.Collider.(type) {
	case *physics.LineCollider:
		c.lines = append(c.lines, e)
	case *physics.CircleCollider:
		if e.IsDynamic() {
			c.bodies = append(c.bodies, e)
		}
	}
}

// Remove satisfies the ecs.System interface
func (c *CollisionSystem) Remove(basic ecs.BasicEntity) {
	c.lines = removeByID(c.lines, basic.ID())
	c.bodies = removeByID(c.bodies, basic.ID())
}

// Update runs detection for every overlapping (line, body) pair in insertion order
func (c *CollisionSystem) Update(float32) {
	for _, body := range c.bodies {
		if !body.Active {
			continue
		}
		for _, line := range c.lines {
			if !line.Active {
				continue
			}
			c.check(line, body)
		}
	}
}

func (c *CollisionSystem) check(line, body *entity.Entity) {
	lc := line.Collider.(*physics.LineCollider)
	swept := physics.RectFromCorners(body.OldTranslation(), body.Translation())
	if !lc.Bounds().Intersects(swept) {
		return
	}

	c.world.stats.Checks++
	result, err := c.world.Detector.Collide(lc, body.Collider, body)
	if err != nil {
		c.world.logger.Warn(c.world.ctx, "collision pair rejected", "line", line.Name, "body", body.Name, "error", err)
		return
	}
	c.world.stats.Responses += result.Applied
	if !result.Collided {
		return
	}

	c.world.stats.Collisions++
	c.world.logger.Debug(c.world.ctx, "line collision",
		"line", line.Name,
		"body", body.Name,
		"segment", result.Hit.Segment,
		"x", result.Hit.Point.X,
		"y", result.Hit.Point.Y,
	)
	c.world.pending = append(c.world.pending, event.NewCollisionEvent(c.world,
		uint64(line.GetID()), uint64(body.GetID()), result.Hit, result.Response))
}

func removeByID(list []*entity.Entity, id uint64) []*entity.Entity {
	for i, e := range list {
		if e.ID() == id {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
