// cmd/viewer/main.go
package main

import (
	"context"
	"flag"
	"os"

	"github.com/EngoEngine/engo"
	"github.com/joho/godotenv"

	"github.com/opd-ai/go-ricochet/pkg/config"
	"github.com/opd-ai/go-ricochet/pkg/engine"
	"github.com/opd-ai/go-ricochet/pkg/logging"
	engorender "github.com/opd-ai/go-ricochet/pkg/render/engo"
	"github.com/opd-ai/go-ricochet/pkg/scene"
)

func main() {
	_ = godotenv.Load()

	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), logging.GenerateCorrelationID())

	configPath := flag.String("config", "ricochet.yaml", "Path to configuration file (.json or .yaml)")
	sceneDir := flag.String("scenes", "", "Scene directory (overrides config)")
	startScene := flag.String("scene", "", "Scene to load first (overrides config)")
	width := flag.Int("width", 1024, "Window width")
	height := flag.Int("height", 768, "Window height")
	fullscreen := flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flag.Parse()

	cfg := config.DefaultConfig()
	if _, err := os.Stat(*configPath); err == nil {
		if cfg, err = config.LoadConfig(*configPath); err != nil {
			logger.Error(ctx, "Failed to load configuration", err, "config_path", *configPath)
			os.Exit(1)
		}
	}
	if err := config.ApplyEnvironmentOverrides(cfg); err != nil {
		logger.Error(ctx, "Failed to apply environment configuration", err)
		os.Exit(1)
	}
	if *sceneDir != "" {
		cfg.SceneDir = *sceneDir
	}
	if *startScene != "" {
		cfg.StartScene = *startScene
	}
	if err := cfg.Validate(); err != nil {
		logger.Error(ctx, "Invalid configuration", err)
		os.Exit(1)
	}

	detector, err := cfg.Detector()
	if err != nil {
		logger.Error(ctx, "Invalid physics configuration", err)
		os.Exit(1)
	}
	world := engine.NewWorld(detector, logger)

	scenes := scene.NewSystem(world, logger, scene.Options{
		MaxSegments: cfg.Physics.MaxSegments,
		Epsilon:     cfg.Physics.ParallelEpsilon,
	})
	if err := scenes.Deserialize(ctx, cfg.SceneDir); err != nil {
		logger.Error(ctx, "Failed to read scenes", err, "scene_dir", cfg.SceneDir)
		os.Exit(1)
	}
	if err := scenes.LoadScene(cfg.StartScene); err != nil {
		logger.Error(ctx, "Failed to load start scene", err, "scene", cfg.StartScene)
		os.Exit(1)
	}
	defer scenes.Shutdown()

	viewer := engorender.NewViewerScene(world, cfg.FrameDelta(), float32(*width), float32(*height), logger)

	engo.Run(engo.RunOptions{
		Title:      "Ricochet",
		Width:      *width,
		Height:     *height,
		Fullscreen: *fullscreen,
		VSync:      true,
		FPSLimit:   cfg.FrameRate,
	}, viewer)
}
