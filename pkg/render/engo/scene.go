// pkg/render/engo/scene.go
package engo

import (
	"context"
	"image/color"

	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"

	"github.com/opd-ai/go-ricochet/pkg/engine"
	"github.com/opd-ai/go-ricochet/pkg/logging"
)

// SceneType is the engo scene name of the viewer
const SceneType = "RicochetViewer"

// ViewerScene runs an engine.World inside an engo window
type ViewerScene struct {
	sim        *engine.World
	frameDelta float64
	width      float32
	height     float32
	logger     *logging.Logger

	playback *Playback
	camera   *CameraSystem
	input    *InputSystem
	renderer *EngoRenderer
}

// NewViewerScene creates a viewer that steps sim by frameDelta seconds per frame
func NewViewerScene(sim *engine.World, frameDelta float64, width, height float32, logger *logging.Logger) *ViewerScene {
	if logger == nil {
		logger = logging.Discard()
	}
	return &ViewerScene{
		sim:        sim,
		frameDelta: frameDelta,
		width:      width,
		height:     height,
		logger:     logger.With("component", "viewer"),
		playback:   &Playback{},
	}
}

// Type returns the scene type (required by Engo)
func (scene *ViewerScene) Type() string {
	return SceneType
}

// Preload is called before the scene starts (required by Engo)
func (scene *ViewerScene) Preload() {}

// Setup is called when the scene starts (required by Engo)
func (scene *ViewerScene) Setup(u engo.Updater) {
	world, _ := u.(*ecs.World)
	common.SetBackground(color.Black)
	SetupControls()

	renderSystem := &common.RenderSystem{}
	world.AddSystem(renderSystem)

	scene.camera = NewCameraSystem(scene.width, scene.height)
	world.AddSystem(scene.camera)

	scene.input = NewInputSystem(scene.playback)
	world.AddSystem(scene.input)

	scene.renderer = NewEngoRenderer(renderSystem, scene.camera)
	world.AddSystem(&StepSystem{scene: scene})

	scene.logger.Info(context.Background(), "viewer started",
		"entities", len(scene.sim.Entities()),
		"frame_delta", scene.frameDelta,
	)
}

// Exit is called when the window closes
func (scene *ViewerScene) Exit() {
	stats := scene.sim.Stats()
	scene.logger.Info(context.Background(), "viewer closed",
		"frames", stats.Frames,
		"collisions", stats.Collisions,
	)
}

// StepSystem advances the simulation and mirrors it into engo shapes
type StepSystem struct {
	scene *ViewerScene
}

// Remove satisfies the ecs.System interface
func (s *StepSystem) Remove(ecs.BasicEntity) {}

// Update steps the world unless playback is paused, then redraws
func (s *StepSystem) Update(float32) {
	if s.scene.playback.ShouldStep() {
		s.scene.sim.Step(s.scene.frameDelta)
	}
	s.scene.sim.Render(s.scene.renderer)
}
