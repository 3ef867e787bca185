// pkg/engine/world.go
package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/EngoEngine/ecs"

	"github.com/opd-ai/go-ricochet/pkg/entity"
	"github.com/opd-ai/go-ricochet/pkg/event"
	"github.com/opd-ai/go-ricochet/pkg/logging"
	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// ErrDuplicateEntity is returned when an entity is added twice
var ErrDuplicateEntity = errors.New("entity already in world")

// Stats holds running frame counters
type Stats struct {
	Frames     uint64
	Entities   int
	Checks     int // broadphase pairs passed to the detector
	Collisions int // first-hit collisions reported
	Responses  int // responses written to bodies, including legacy scans
}

// World owns the simulated entities and steps them through the ecs systems
type World struct {
	Detector physics.Detector
	EventBus *event.Bus

	ecs       *ecs.World
	movement  *MovementSystem
	collision *CollisionSystem

	entities map[entity.ID]*entity.Entity
	order    []*entity.Entity

	logger  *logging.Logger
	ctx     context.Context
	dt      float64
	stats   Stats
	pending []event.Event
	mu      sync.RWMutex
}

// NewWorld creates an empty world. A nil logger discards output.
func NewWorld(detector physics.Detector, logger *logging.Logger) *World {
	if logger == nil {
		logger = logging.Discard()
	}
	w := &World{
		Detector: detector,
		EventBus: event.NewEventBus(),
		ecs:      &ecs.World{},
		entities: make(map[entity.ID]*entity.Entity),
		logger:   logger.With("component", "world"),
		ctx:      logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID()),
	}
	w.movement = &MovementSystem{world: w}
	w.collision = &CollisionSystem{world: w}
	w.ecs.AddSystem(w.movement)
	w.ecs.AddSystem(w.collision)
	return w
}

// AddEntity places an entity into the world and its systems
func (w *World) AddEntity(e *entity.Entity) error {
	w.mu.Lock()
	id := e.GetID()
	if _, ok := w.entities[id]; ok {
		w.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrDuplicateEntity, id)
	}
	w.entities[id] = e
	w.order = append(w.order, e)

	if e.IsDynamic() {
		w.movement.Add(e)
	}
	w.collision.Add(e)

	w.logger.Debug(w.ctx, "entity added", "id", id, "name", e.Name, "scene", e.Scene)
	w.pending = append(w.pending, event.NewEntityEvent(event.EntitySpawned, w, uint64(id), e.Name, e.Scene))
	w.mu.Unlock()

	w.flush()
	return nil
}

// flush publishes queued events outside the lock so handlers may query the world
func (w *World) flush() {
	w.mu.Lock()
	pending := w.pending
	w.pending = nil
	w.mu.Unlock()

	for _, ev := range pending {
		w.EventBus.Publish(ev)
	}
}

// Entity returns the entity with the given id
func (w *World) Entity(id entity.ID) (*entity.Entity, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	e, ok := w.entities[id]
	return e, ok
}

// Entities returns the live entities in insertion order
func (w *World) Entities() []*entity.Entity {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]*entity.Entity, 0, len(w.order))
	for _, e := range w.order {
		if e.Active {
			out = append(out, e)
		}
	}
	return out
}

// KillScene deactivates every entity assigned to scene and returns how many were killed
func (w *World) KillScene(scene string) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, e := range w.order {
		if e.Active && e.Scene == scene {
			e.Kill()
			n++
		}
	}
	return n
}

// Step advances the world by dt seconds: movement, then collision, then cleanup
func (w *World) Step(dt float64) {
	w.mu.Lock()
	w.dt = dt
	w.ecs.Update(float32(dt))
	w.cleanupInactiveEntities()
	w.stats.Frames++
	w.mu.Unlock()

	w.flush()
}

func (w *World) cleanupInactiveEntities() {
	kept := w.order[:0]
	var dead []*entity.Entity
	for _, e := range w.order {
		if e.Active {
			kept = append(kept, e)
		} else {
			dead = append(dead, e)
		}
	}
	for i := len(kept); i < len(w.order); i++ {
		w.order[i] = nil
	}
	w.order = kept

	for _, e := range dead {
		delete(w.entities, e.GetID())
		w.ecs.RemoveEntity(e.BasicEntity)
		w.logger.Debug(w.ctx, "entity removed", "id", e.GetID(), "name", e.Name)
		w.pending = append(w.pending, event.NewEntityEvent(event.EntityKilled, w, uint64(e.GetID()), e.Name, e.Scene))
	}
}

// Render draws every active entity
func (w *World) Render(r entity.Renderer) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	r.Clear()
	for _, e := range w.order {
		if e.Active {
			e.Render(r)
		}
	}
	r.Present()
}

// Stats returns a snapshot of the frame counters
func (w *World) Stats() Stats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	s := w.stats
	s.Entities = len(w.entities)
	return s
}
