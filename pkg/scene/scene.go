// pkg/scene/scene.go
package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/opd-ai/go-ricochet/pkg/entity"
	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// Options controls how scene colliders are built
type Options struct {
	// MaxSegments is the capacity of line colliders that do not set their own
	MaxSegments int
	// Epsilon is the degenerate-segment threshold used for validation warnings
	Epsilon float64
}

// DefaultOptions returns the collider defaults
func DefaultOptions() Options {
	return Options{
		MaxSegments: physics.DefaultSegmentCapacity,
		Epsilon:     physics.DefaultEpsilon,
	}
}

// Scene is a named group of entities. Archetypes are decoded once; active
// scenes are clones with their own instance ID.
type Scene struct {
	Name       string
	InstanceID string

	doc  *Document
	opts Options
}

// Clone returns an active copy of an archetype with a fresh instance ID
func (s *Scene) Clone() *Scene {
	return &Scene{
		Name:       s.Name,
		InstanceID: uuid.NewString(),
		doc:        s.doc,
		opts:       s.opts,
	}
}

// EntityCount returns how many entities the scene spawns
func (s *Scene) EntityCount() int {
	return len(s.doc.Entities)
}

// Document returns the decoded scene document
func (s *Scene) Document() *Document {
	return s.doc
}

// newScene decodes the named scene in dir and resolves geometry files.
// Degenerate segments are collected into warnings rather than rejected.
func newScene(dir, name string, opts Options) (*Scene, []error, error) {
	doc, err := ReadDocument(dir, name)
	if err != nil {
		return nil, nil, err
	}

	var warnings []error
	for i := range doc.Entities {
		spec := &doc.Entities[i]
		c := spec.Collider
		if c == nil {
			continue
		}

		kind, err := physics.ParseShapeKind(c.Shape)
		if err != nil {
			return nil, nil, fmt.Errorf("scene %q entity %q: %w", name, spec.Name, err)
		}
		if kind != physics.ShapeLine {
			continue
		}

		if c.Geometry != "" {
			segs, err := loadGeometry(filepath.Join(dir, c.Geometry), capacity(c, opts))
			if err != nil {
				return nil, nil, fmt.Errorf("scene %q entity %q: %w", name, spec.Name, err)
			}
			c.loaded = segs
		}

		lc, err := buildLineCollider(c, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("scene %q entity %q: %w", name, spec.Name, err)
		}
		if err := lc.Validate(opts.Epsilon); err != nil {
			warnings = append(warnings, fmt.Errorf("scene %q entity %q: %w", name, spec.Name, err))
		}
	}

	return &Scene{Name: doc.Name, doc: doc, opts: opts}, warnings, nil
}

func capacity(c *ColliderSpec, opts Options) int {
	if c.Capacity > 0 {
		return c.Capacity
	}
	return opts.MaxSegments
}

// loadGeometry reads a count-then-pairs text file into a line collider
func loadGeometry(path string, capacity int) ([]physics.LineSegment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lc, err := physics.NewLineCollider(capacity)
	if err != nil {
		return nil, err
	}
	if err := lc.LoadFrom(physics.NewTextSource(f)); err != nil {
		return nil, fmt.Errorf("geometry %s: %w", filepath.Base(path), err)
	}
	return lc.SegmentList(), nil
}

func buildLineCollider(c *ColliderSpec, opts Options) (*physics.LineCollider, error) {
	lc, err := physics.NewLineCollider(capacity(c, opts))
	if err != nil {
		return nil, err
	}
	for _, seg := range c.loaded {
		if err := lc.AddSegment(seg.P0, seg.P1); err != nil {
			return nil, err
		}
	}
	for _, seg := range c.Segments {
		if err := lc.AddSegment(seg.From, seg.To); err != nil {
			return nil, err
		}
	}
	return lc, nil
}

func buildCollider(c *ColliderSpec, opts Options) (physics.Collider, error) {
	if c == nil {
		return nil, nil
	}
	kind, err := physics.ParseShapeKind(c.Shape)
	if err != nil {
		return nil, err
	}
	switch kind {
	case physics.ShapeLine:
		return buildLineCollider(c, opts)
	case physics.ShapeCircle:
		return &physics.CircleCollider{Radius: c.Radius}, nil
	default:
		return nil, fmt.Errorf("shape %q: %w", c.Shape, physics.ErrShapeMismatch)
	}
}

// Spawn builds fresh entities for the scene, each tagged with the scene name
func (s *Scene) Spawn() ([]*entity.Entity, error) {
	out := make([]*entity.Entity, 0, len(s.doc.Entities))
	for _, spec := range s.doc.Entities {
		e := entity.New(spec.Name)
		e.Scene = s.Name
		e.Transform.Position = spec.Position
		e.Transform.Rotation = spec.Rotation
		if spec.Velocity != nil {
			e.SetVelocity(*spec.Velocity)
		}

		c, err := buildCollider(spec.Collider, s.opts)
		if err != nil {
			return nil, fmt.Errorf("entity %q: %w", spec.Name, err)
		}
		e.Collider = c
		out = append(out, e)
	}
	return out, nil
}
