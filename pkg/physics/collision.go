// pkg/physics/collision.go
package physics

import "math"

// Rect represents a rectangular area
type Rect struct {
	Center Vector2D
	Width  float64
	Height float64
}

// RectFromCorners builds the rectangle spanning two opposite corners
func RectFromCorners(a, b Vector2D) Rect {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return Rect{
		Center: Vector2D{X: (minX + maxX) / 2, Y: (minY + maxY) / 2},
		Width:  maxX - minX,
		Height: maxY - minY,
	}
}

// Contains reports whether point lies inside the closed rectangle
func (r Rect) Contains(point Vector2D) bool {
	return point.X >= r.Center.X-r.Width/2 &&
		point.X <= r.Center.X+r.Width/2 &&
		point.Y >= r.Center.Y-r.Height/2 &&
		point.Y <= r.Center.Y+r.Height/2
}

// Expand grows the rectangle by margin on every side
func (r Rect) Expand(margin float64) Rect {
	return Rect{
		Center: r.Center,
		Width:  r.Width + 2*margin,
		Height: r.Height + 2*margin,
	}
}

// Intersects reports whether two closed rectangles overlap or touch
func (r Rect) Intersects(area Rect) bool {
	return !(area.Center.X-area.Width/2 > r.Center.X+r.Width/2 ||
		area.Center.X+area.Width/2 < r.Center.X-r.Width/2 ||
		area.Center.Y-area.Height/2 > r.Center.Y+r.Height/2 ||
		area.Center.Y+area.Height/2 < r.Center.Y-r.Height/2)
}
