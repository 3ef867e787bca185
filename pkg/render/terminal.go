// pkg/render/terminal.go
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/opd-ai/go-ricochet/pkg/entity"
	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// Glyphs drawn by the terminal renderer
const (
	LineGlyph = '#'
	BodyGlyph = 'o'
)

var (
	lineStyle = tcell.StyleDefault.Foreground(tcell.ColorBlue)
	bodyStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

type cell struct {
	r     rune
	style tcell.Style
}

// TerminalRenderer draws line colliders and bodies onto a tcell screen.
// World y grows upward; screen rows grow downward.
type TerminalRenderer struct {
	screen    tcell.Screen
	width     int
	height    int
	buffer    [][]cell
	scale     float64
	centerPos physics.Vector2D
}

var _ entity.Renderer = (*TerminalRenderer)(nil)

// NewTerminalRenderer creates a renderer for a width x height cell area.
// scale is world units per cell.
func NewTerminalRenderer(screen tcell.Screen, width, height int, scale float64) *TerminalRenderer {
	if scale <= 0 {
		scale = 1
	}
	buffer := make([][]cell, height)
	for i := range buffer {
		buffer[i] = make([]cell, width)
	}

	r := &TerminalRenderer{
		screen: screen,
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
	r.Clear()
	return r
}

// SetCenter sets the world position shown in the middle of the view
func (r *TerminalRenderer) SetCenter(pos physics.Vector2D) {
	r.centerPos = pos
}

// worldToScreen converts world coordinates to screen coordinates
func (r *TerminalRenderer) worldToScreen(pos physics.Vector2D) (int, int) {
	sx := (pos.X-r.centerPos.X)/r.scale + float64(r.width)/2
	sy := float64(r.height)/2 - (pos.Y-r.centerPos.Y)/r.scale
	return int(math.Floor(sx)), int(math.Floor(sy))
}

func (r *TerminalRenderer) plot(x, y int, c cell) {
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = c
	}
}

// drawLine rasterises a segment with Bresenham's algorithm
func (r *TerminalRenderer) drawLine(x0, y0, x1, y1 int, c cell) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		r.plot(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// At returns the buffered rune at a cell, or 0 outside the view
func (r *TerminalRenderer) At(x, y int) rune {
	if x < 0 || x >= r.width || y < 0 || y >= r.height {
		return 0
	}
	return r.buffer[y][x].r
}

// Clear implements entity.Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = cell{r: ' ', style: tcell.StyleDefault}
		}
	}
}

// Present implements entity.Renderer
func (r *TerminalRenderer) Present() {
	if r.screen == nil {
		return
	}
	r.screen.Clear()
	for y := range r.buffer {
		for x, c := range r.buffer[y] {
			r.screen.SetContent(x, y, c.r, nil, c.style)
		}
	}
	r.screen.Show()
}

// RenderLines implements entity.Renderer
func (r *TerminalRenderer) RenderLines(_ *entity.Entity, c *physics.LineCollider) {
	if c == nil {
		return
	}
	for _, seg := range c.Segments().All() {
		x0, y0 := r.worldToScreen(seg.P0)
		x1, y1 := r.worldToScreen(seg.P1)
		r.drawLine(x0, y0, x1, y1, cell{r: LineGlyph, style: lineStyle})
	}
}

// RenderBody implements entity.Renderer
func (r *TerminalRenderer) RenderBody(e *entity.Entity, _ float64) {
	if e == nil {
		return
	}
	x, y := r.worldToScreen(e.Translation())
	r.plot(x, y, cell{r: BodyGlyph, style: bodyStyle})
}
