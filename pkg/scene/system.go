// pkg/scene/system.go
package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/go-ricochet/pkg/engine"
	"github.com/opd-ai/go-ricochet/pkg/event"
	"github.com/opd-ai/go-ricochet/pkg/logging"
)

// ErrSceneNotFound is returned when no archetype has the requested name
var ErrSceneNotFound = errors.New("scene not found")

// System keeps the decoded scene archetypes and the scenes currently
// active in a world. Only entities of active scenes are simulated.
type System struct {
	world  *engine.World
	logger *logging.Logger
	opts   Options

	archetypes []*Scene
	active     []*Scene
	staged     []string
	mu         sync.Mutex
}

// NewSystem creates a scene system that spawns into world.
// A nil logger discards output.
func NewSystem(world *engine.World, logger *logging.Logger, opts Options) *System {
	if logger == nil {
		logger = logging.Discard()
	}
	if opts.MaxSegments <= 0 {
		opts.MaxSegments = DefaultOptions().MaxSegments
	}
	if opts.Epsilon <= 0 {
		opts.Epsilon = DefaultOptions().Epsilon
	}
	return &System{
		world:  world,
		logger: logger.With("component", "scenes"),
		opts:   opts,
	}
}

// Deserialize reads the index in dir and decodes every listed scene into the
// archetype list, in index order. Scenes are decoded concurrently; the first
// error aborts the load and leaves the archetype list unchanged.
func (s *System) Deserialize(ctx context.Context, dir string) error {
	idx, err := ReadIndex(dir)
	if err != nil {
		return err
	}

	scenes := make([]*Scene, len(idx.Scenes))
	warnings := make([][]error, len(idx.Scenes))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range idx.Scenes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sc, warns, err := newScene(dir, name, s.opts)
			if err != nil {
				return err
			}
			scenes[i] = sc
			warnings[i] = warns
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return logging.WrapError(err, "deserialize scenes from %s", dir)
	}

	for _, warns := range warnings {
		for _, w := range warns {
			s.logger.Warn(ctx, "scene geometry warning", "error", w)
		}
	}

	s.mu.Lock()
	s.archetypes = append(s.archetypes, scenes...)
	s.mu.Unlock()

	s.logger.Info(ctx, "scenes deserialized", "dir", dir, "count", len(scenes))
	return nil
}

// AddArchetype registers a scene document built in code. Its Geometry
// fields are not read; only inline segments are used.
func (s *System) AddArchetype(doc *Document) (*Scene, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	sc := &Scene{Name: doc.Name, doc: doc, opts: s.opts}
	s.mu.Lock()
	s.archetypes = append(s.archetypes, sc)
	s.mu.Unlock()
	return sc, nil
}

// FindArchetype returns the archetype with the given name, or nil
func (s *System) FindArchetype(name string) *Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return find(s.archetypes, name)
}

// FindActive returns the active scene with the given name, or nil
func (s *System) FindActive(name string) *Scene {
	s.mu.Lock()
	defer s.mu.Unlock()
	return find(s.active, name)
}

func find(list []*Scene, name string) *Scene {
	for _, sc := range list {
		if sc.Name == name {
			return sc
		}
	}
	return nil
}

// Active returns the names of the active scenes in load order
func (s *System) Active() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, len(s.active))
	for i, sc := range s.active {
		names[i] = sc.Name
	}
	return names
}

// Stage queues a scene to be loaded by a later Update
func (s *System) Stage(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.staged = append(s.staged, name)
}

// Staged returns how many scenes are waiting to load
func (s *System) Staged() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.staged)
}

// Update loads at most one staged scene, oldest first
func (s *System) Update() error {
	s.mu.Lock()
	if len(s.staged) == 0 {
		s.mu.Unlock()
		return nil
	}
	name := s.staged[0]
	s.staged = s.staged[1:]
	s.mu.Unlock()

	return s.LoadScene(name)
}

// LoadScene clones the named archetype into the active list and spawns its
// entities. Loading a scene that is already active does nothing.
func (s *System) LoadScene(name string) error {
	ctx := context.Background()

	s.mu.Lock()
	if find(s.active, name) != nil {
		s.mu.Unlock()
		return nil
	}
	archetype := find(s.archetypes, name)
	if archetype == nil {
		s.mu.Unlock()
		s.logger.Warn(ctx, "load of unknown scene", "scene", name)
		return fmt.Errorf("%w: %q", ErrSceneNotFound, name)
	}
	sc := archetype.Clone()
	s.mu.Unlock()

	entities, err := sc.Spawn()
	if err != nil {
		return logging.WrapError(err, "spawn scene %q", name)
	}
	for _, e := range entities {
		if err := s.world.AddEntity(e); err != nil {
			return logging.WrapError(err, "spawn scene %q", name)
		}
	}

	s.mu.Lock()
	s.active = append(s.active, sc)
	s.mu.Unlock()

	ctx = logging.WithCorrelationID(ctx, sc.InstanceID)
	s.logger.Info(ctx, "scene loaded", "scene", name, "entities", len(entities))
	s.world.EventBus.Publish(event.NewSceneEvent(event.SceneLoaded, s, name, sc.InstanceID, len(entities)))
	return nil
}

// UnloadScene kills every entity assigned to the scene and removes it from
// the active list. It returns how many entities were killed.
func (s *System) UnloadScene(name string) int {
	killed := s.world.KillScene(name)

	s.mu.Lock()
	var removed *Scene
	for i, sc := range s.active {
		if sc.Name == name {
			removed = sc
			s.active = append(s.active[:i:i], s.active[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if removed != nil {
		ctx := logging.WithCorrelationID(context.Background(), removed.InstanceID)
		s.logger.Info(ctx, "scene unloaded", "scene", name, "killed", killed)
		s.world.EventBus.Publish(event.NewSceneEvent(event.SceneUnloaded, s, name, removed.InstanceID, killed))
	}
	return killed
}

// Shutdown empties the archetype, active and staged lists
func (s *System) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.archetypes = nil
	s.active = nil
	s.staged = nil
}
