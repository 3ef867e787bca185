// cmd/ricochet/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"io/fs"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/joho/godotenv"

	"github.com/opd-ai/go-ricochet/pkg/config"
	"github.com/opd-ai/go-ricochet/pkg/engine"
	"github.com/opd-ai/go-ricochet/pkg/entity"
	"github.com/opd-ai/go-ricochet/pkg/event"
	"github.com/opd-ai/go-ricochet/pkg/logging"
	"github.com/opd-ai/go-ricochet/pkg/render"
	"github.com/opd-ai/go-ricochet/pkg/scene"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.NewLogger().Warn(context.Background(), "Failed to load .env file", "error", err)
	}

	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	configPath := flag.String("config", "ricochet.yaml", "Path to configuration file (.json or .yaml)")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	sceneDir := flag.String("scenes", "", "Scene directory (overrides config)")
	startScene := flag.String("scene", "", "Scene to load first (overrides config)")
	frames := flag.Int("frames", -1, "Frames to simulate, 0 runs until interrupted (overrides config)")
	view := flag.String("view", "", "Output: 'none' or 'terminal' (overrides config)")
	flag.Parse()

	if *createDefault {
		if err := config.SaveConfig(config.DefaultConfig(), *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file", "config_path", *configPath)
		return
	}

	cfg := loadConfig(ctx, logger, *configPath)
	if *sceneDir != "" {
		cfg.SceneDir = *sceneDir
	}
	if *startScene != "" {
		cfg.StartScene = *startScene
	}
	if *frames >= 0 {
		cfg.Frames = *frames
	}
	if *view != "" {
		cfg.View.Mode = *view
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	world, scenes, err := setup(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "Failed to set up simulation", err, "scene_dir", cfg.SceneDir)
		os.Exit(1)
	}
	defer scenes.Shutdown()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var renderer entity.Renderer
	switch cfg.View.Mode {
	case config.ViewTerminal:
		screen, err := tcell.NewScreen()
		if err == nil {
			err = screen.Init()
		}
		if err != nil {
			logger.Error(ctx, "Failed to initialize terminal", err)
			os.Exit(1)
		}
		defer screen.Fini()
		ctx = watchQuitKeys(ctx, screen)
		renderer = render.NewTerminalRenderer(screen, cfg.View.Width, cfg.View.Height, cfg.View.Scale)
	default:
		renderer = render.NewNullRenderer(logger)
	}

	run(ctx, cfg, world, scenes, renderer, logger)
}

func loadConfig(ctx context.Context, logger *logging.Logger, path string) *config.SimConfig {
	var cfg *config.SimConfig
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration", "config_path", path)
		cfg = config.DefaultConfig()
	} else {
		cfg, err = config.LoadConfig(path)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err, "config_path", path)
			os.Exit(1)
		}
	}

	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}
	return cfg
}

// setup builds the world, reads the scene directory and stages the start scene
func setup(ctx context.Context, cfg *config.SimConfig, logger *logging.Logger) (*engine.World, *scene.System, error) {
	detector, err := cfg.Detector()
	if err != nil {
		return nil, nil, err
	}
	world := engine.NewWorld(detector, logger)

	world.EventBus.Subscribe(event.LineCollision, func(e event.Event) {
		if ce, ok := e.(*event.CollisionEvent); ok {
			logger.Debug(ctx, "Collision",
				"line", ce.LineEntity,
				"body", ce.BodyEntity,
				"segment", ce.Segment,
				"speed", ce.Speed,
			)
		}
	})

	scenes := scene.NewSystem(world, logger, scene.Options{
		MaxSegments: cfg.Physics.MaxSegments,
		Epsilon:     cfg.Physics.ParallelEpsilon,
	})
	if err := scenes.Deserialize(ctx, cfg.SceneDir); err != nil {
		return nil, nil, err
	}
	scenes.Stage(cfg.StartScene)
	return world, scenes, nil
}

// watchQuitKeys cancels the returned context on Escape, q or Ctrl-C
func watchQuitKeys(ctx context.Context, screen tcell.Screen) context.Context {
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer cancel()
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if key, ok := ev.(*tcell.EventKey); ok {
				if key.Key() == tcell.KeyEscape || key.Key() == tcell.KeyCtrlC ||
					(key.Key() == tcell.KeyRune && key.Rune() == 'q') {
					return
				}
			}
		}
	}()
	return ctx
}

func run(ctx context.Context, cfg *config.SimConfig, world *engine.World, scenes *scene.System, r entity.Renderer, logger *logging.Logger) {
	dt := cfg.FrameDelta()
	realtime := cfg.View.Mode == config.ViewTerminal

	var ticker *time.Ticker
	if realtime {
		ticker = time.NewTicker(time.Duration(dt * float64(time.Second)))
		defer ticker.Stop()
	}

	logger.Info(ctx, "Starting simulation",
		"scene", cfg.StartScene,
		"frames", cfg.Frames,
		"frame_rate", cfg.FrameRate,
		"scan_policy", cfg.Physics.ScanPolicy,
	)

	for frame := 0; cfg.Frames == 0 || frame < cfg.Frames; frame++ {
		if ctx.Err() != nil {
			break
		}
		if err := scenes.Update(); err != nil {
			logger.Error(ctx, "Failed to load staged scene", err)
		}
		world.Step(dt)
		world.Render(r)

		if realtime {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
	}

	stats := world.Stats()
	logger.Info(context.Background(), "Simulation finished",
		"frames", stats.Frames,
		"entities", stats.Entities,
		"checks", stats.Checks,
		"collisions", stats.Collisions,
		"responses", stats.Responses,
	)
}
