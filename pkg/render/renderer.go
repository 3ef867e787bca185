// pkg/render/renderer.go
package render

import (
	"context"

	"github.com/opd-ai/go-ricochet/pkg/entity"
	"github.com/opd-ai/go-ricochet/pkg/logging"
	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// NullRenderer is an entity.Renderer that only writes debug logs.
type NullRenderer struct {
	logger *logging.Logger
	frames int
}

var _ entity.Renderer = (*NullRenderer)(nil)

// NewNullRenderer creates a new NullRenderer with structured logging.
// A nil logger discards output.
func NewNullRenderer(logger *logging.Logger) *NullRenderer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &NullRenderer{
		logger: logger.With("component", "renderer"),
	}
}

// Frames returns how many frames have been presented
func (d *NullRenderer) Frames() int {
	return d.frames
}

// Clear implements entity.Renderer.
func (d *NullRenderer) Clear() {
	d.logger.Debug(context.Background(), "Clear called")
}

// Present implements entity.Renderer.
func (d *NullRenderer) Present() {
	d.frames++
	d.logger.Debug(context.Background(), "Present called", "frame", d.frames)
}

// RenderLines implements entity.Renderer.
func (d *NullRenderer) RenderLines(e *entity.Entity, c *physics.LineCollider) {
	ctx := context.Background()
	if e == nil || c == nil {
		d.logger.Debug(ctx, "RenderLines called with nil entity or collider")
		return
	}
	d.logger.Debug(ctx, "RenderLines called",
		"entity_id", e.GetID(),
		"name", e.Name,
		"segments", c.Segments().Count(),
	)
}

// RenderBody implements entity.Renderer.
func (d *NullRenderer) RenderBody(e *entity.Entity, radius float64) {
	ctx := context.Background()
	if e == nil {
		d.logger.Debug(ctx, "RenderBody called with nil entity")
		return
	}
	pos := e.Translation()
	d.logger.Debug(ctx, "RenderBody called",
		"entity_id", e.GetID(),
		"name", e.Name,
		"x", pos.X,
		"y", pos.Y,
		"radius", radius,
	)
}
