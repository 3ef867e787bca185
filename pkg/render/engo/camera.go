// pkg/render/engo/camera.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// Button names registered by SetupControls
const (
	ButtonZoomIn    = "zoomIn"
	ButtonZoomOut   = "zoomOut"
	ButtonResetZoom = "resetZoom"
	ButtonPause     = "pause"
	ButtonStep      = "step"
)

// CameraSystem maps world coordinates onto the window. It can follow a
// target and zooms with the mouse wheel or the zoom buttons.
type CameraSystem struct {
	target    physics.Vector2D
	targetSet bool

	zoom    float32
	minZoom float32
	maxZoom float32

	followSpeed float32
	smoothing   bool

	currentPos physics.Vector2D

	// window size in pixels
	width, height float32
}

// NewCameraSystem creates a camera for a width x height window
func NewCameraSystem(width, height float32) *CameraSystem {
	return &CameraSystem{
		zoom:        1.0,
		minZoom:     0.1,
		maxZoom:     10.0,
		followSpeed: 2.0,
		smoothing:   true,
		width:       width,
		height:      height,
	}
}

// Remove satisfies the ecs.System interface
func (cs *CameraSystem) Remove(ecs.BasicEntity) {}

// Update reads zoom input and moves toward the target
func (cs *CameraSystem) Update(dt float32) {
	cs.handleZoomInput()
	if cs.targetSet {
		cs.updateCameraPosition(dt)
	}
}

func (cs *CameraSystem) handleZoomInput() {
	if scrollY := engo.Input.Mouse.ScrollY; scrollY != 0 {
		cs.SetZoom(cs.zoom * (1.0 + scrollY*0.1))
	}
	if engo.Input.Button(ButtonZoomIn).Down() {
		cs.SetZoom(cs.zoom * 1.02)
	}
	if engo.Input.Button(ButtonZoomOut).Down() {
		cs.SetZoom(cs.zoom * 0.98)
	}
	if engo.Input.Button(ButtonResetZoom).JustPressed() {
		cs.SetZoom(1.0)
	}
}

func (cs *CameraSystem) updateCameraPosition(dt float32) {
	if !cs.smoothing {
		cs.currentPos = cs.target
		return
	}
	delta := cs.target.Sub(cs.currentPos)
	cs.currentPos = delta.ScaleAdd(cs.currentPos, float64(cs.followSpeed)*float64(dt))
}

// SetTarget sets the world position to follow
func (cs *CameraSystem) SetTarget(target physics.Vector2D) {
	if !cs.targetSet || !cs.smoothing {
		cs.currentPos = target
	}
	cs.target = target
	cs.targetSet = true
}

// ClearTarget stops following
func (cs *CameraSystem) ClearTarget() {
	cs.targetSet = false
}

// SetZoom sets the zoom level, clamped to the limits
func (cs *CameraSystem) SetZoom(zoom float32) {
	cs.zoom = cs.clampZoom(zoom)
}

// Zoom returns the current zoom level
func (cs *CameraSystem) Zoom() float32 {
	return cs.zoom
}

func (cs *CameraSystem) clampZoom(zoom float32) float32 {
	if zoom < cs.minZoom {
		return cs.minZoom
	}
	if zoom > cs.maxZoom {
		return cs.maxZoom
	}
	return zoom
}

// EnableSmoothing enables or disables eased following
func (cs *CameraSystem) EnableSmoothing(enabled bool) {
	cs.smoothing = enabled
}

// Position returns the world position at the window centre
func (cs *CameraSystem) Position() physics.Vector2D {
	return cs.currentPos
}

// WorldToScreen converts world coordinates to window pixels. World y grows
// upward, window y grows downward.
func (cs *CameraSystem) WorldToScreen(p physics.Vector2D) engo.Point {
	rel := p.Sub(cs.currentPos).Scale(float64(cs.zoom))
	return engo.Point{
		X: float32(rel.X) + cs.width/2,
		Y: cs.height/2 - float32(rel.Y),
	}
}

// ScreenToWorld is the inverse of WorldToScreen
func (cs *CameraSystem) ScreenToWorld(p engo.Point) physics.Vector2D {
	rel := physics.Vector2D{
		X: float64(p.X - cs.width/2),
		Y: float64(cs.height/2 - p.Y),
	}
	return rel.Scale(1 / float64(cs.zoom)).Add(cs.currentPos)
}

// SetupControls registers the viewer key bindings
func SetupControls() {
	engo.Input.RegisterButton(ButtonZoomIn, engo.KeyEquals)
	engo.Input.RegisterButton(ButtonZoomOut, engo.KeyDash)
	engo.Input.RegisterButton(ButtonResetZoom, engo.KeyR)
	engo.Input.RegisterButton(ButtonPause, engo.KeySpace)
	engo.Input.RegisterButton(ButtonStep, engo.KeyN)
}
