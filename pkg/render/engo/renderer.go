// pkg/render/engo/renderer.go
package engo

import (
	"image/color"
	"math"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ricochet/pkg/entity"
	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// LineThickness is the drawn width of a segment in pixels
const LineThickness = 2

var (
	lineColor = color.RGBA{90, 160, 255, 255}
	bodyColor = color.RGBA{255, 220, 0, 255}
)

// sprite is one drawable shape in the engo world
type sprite struct {
	ecs.BasicEntity
	common.RenderComponent
	common.SpaceComponent
}

// EngoRenderer implements entity.Renderer by mirroring entities as engo shapes.
// Lines become thin rotated rectangles, bodies become circles.
type EngoRenderer struct {
	renderSystem *common.RenderSystem
	camera       *CameraSystem

	bodies map[entity.ID]*sprite
	lines  map[entity.ID][]*sprite
	seen   map[entity.ID]bool
}

var _ entity.Renderer = (*EngoRenderer)(nil)

// NewEngoRenderer creates a renderer. renderSystem may be nil, in which case
// shapes are tracked but never drawn.
func NewEngoRenderer(renderSystem *common.RenderSystem, camera *CameraSystem) *EngoRenderer {
	return &EngoRenderer{
		renderSystem: renderSystem,
		camera:       camera,
		bodies:       make(map[entity.ID]*sprite),
		lines:        make(map[entity.ID][]*sprite),
		seen:         make(map[entity.ID]bool),
	}
}

// Clear implements entity.Renderer
func (r *EngoRenderer) Clear() {
	clear(r.seen)
}

// Present implements entity.Renderer. Shapes of entities not rendered since
// the last Clear are removed.
func (r *EngoRenderer) Present() {
	r.cleanupInactiveEntities()
}

// RenderLines implements entity.Renderer
func (r *EngoRenderer) RenderLines(e *entity.Entity, c *physics.LineCollider) {
	id := e.GetID()
	r.seen[id] = true

	sprites := r.lines[id]
	n := c.Segments().Count()
	for len(sprites) < n {
		sprites = append(sprites, r.newSprite(common.Rectangle{}, lineColor))
	}
	for len(sprites) > n {
		r.remove(sprites[len(sprites)-1])
		sprites = sprites[:len(sprites)-1]
	}
	r.lines[id] = sprites

	for i, seg := range c.Segments().All() {
		sprites[i].SpaceComponent = r.segmentSpace(seg)
	}
}

// RenderBody implements entity.Renderer
func (r *EngoRenderer) RenderBody(e *entity.Entity, radius float64) {
	id := e.GetID()
	r.seen[id] = true

	s, ok := r.bodies[id]
	if !ok {
		s = r.newSprite(common.Circle{}, bodyColor)
		r.bodies[id] = s
	}
	s.SpaceComponent = r.bodySpace(e.Translation(), radius)
}

// segmentSpace places a rectangle from P0 to P1. engo rotates clockwise in
// degrees around the top-left corner, which matches atan2 in window space.
func (r *EngoRenderer) segmentSpace(seg physics.LineSegment) common.SpaceComponent {
	a := r.camera.WorldToScreen(seg.P0)
	b := r.camera.WorldToScreen(seg.P1)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	return common.SpaceComponent{
		Position: a,
		Width:    float32(math.Hypot(dx, dy)),
		Height:   LineThickness,
		Rotation: float32(math.Atan2(dy, dx) * 180 / math.Pi),
	}
}

func (r *EngoRenderer) bodySpace(pos physics.Vector2D, radius float64) common.SpaceComponent {
	px := float32(radius) * r.camera.Zoom()
	if px < 2 {
		px = 2
	}
	c := r.camera.WorldToScreen(pos)
	return common.SpaceComponent{
		Position: engo.Point{X: c.X - px, Y: c.Y - px},
		Width:    2 * px,
		Height:   2 * px,
	}
}

func (r *EngoRenderer) newSprite(drawable common.Drawable, c color.Color) *sprite {
	s := &sprite{BasicEntity: ecs.NewBasic()}
	s.RenderComponent = common.RenderComponent{Drawable: drawable, Color: c}
	if r.renderSystem != nil {
		r.renderSystem.Add(&s.BasicEntity, &s.RenderComponent, &s.SpaceComponent)
	}
	return s
}

func (r *EngoRenderer) remove(s *sprite) {
	if r.renderSystem != nil {
		r.renderSystem.Remove(s.BasicEntity)
	}
}

// cleanupInactiveEntities removes shapes for entities that were not rendered this frame
func (r *EngoRenderer) cleanupInactiveEntities() {
	for id, s := range r.bodies {
		if !r.seen[id] {
			r.remove(s)
			delete(r.bodies, id)
		}
	}
	for id, sprites := range r.lines {
		if !r.seen[id] {
			for _, s := range sprites {
				r.remove(s)
			}
			delete(r.lines, id)
		}
	}
}

// Shapes returns how many shapes are currently tracked
func (r *EngoRenderer) Shapes() int {
	n := len(r.bodies)
	for _, sprites := range r.lines {
		n += len(sprites)
	}
	return n
}
