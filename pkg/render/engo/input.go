// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
)

// Playback holds the viewer's pause and single-step state
type Playback struct {
	Paused  bool
	pending int
}

// Toggle flips between paused and running
func (p *Playback) Toggle() {
	p.Paused = !p.Paused
}

// RequestStep queues one frame to run while paused
func (p *Playback) RequestStep() {
	p.pending++
}

// ShouldStep reports whether the world advances this frame, consuming a
// queued single step when paused
func (p *Playback) ShouldStep() bool {
	if !p.Paused {
		return true
	}
	if p.pending > 0 {
		p.pending--
		return true
	}
	return false
}

// InputSystem turns key presses into playback changes
type InputSystem struct {
	playback *Playback
}

// NewInputSystem creates an input system driving playback
func NewInputSystem(playback *Playback) *InputSystem {
	return &InputSystem{playback: playback}
}

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(ecs.BasicEntity) {}

// Update reads the pause and step buttons
func (is *InputSystem) Update(float32) {
	if engo.Input.Button(ButtonPause).JustPressed() {
		is.playback.Toggle()
	}
	if engo.Input.Button(ButtonStep).JustPressed() {
		is.playback.RequestStep()
	}
}
