// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/opd-ai/go-ricochet/pkg/physics"
)

// View modes understood by cmd/ricochet
const (
	ViewNone     = "none"
	ViewTerminal = "terminal"
)

// SimConfig contains configuration for a ricochet simulation
type SimConfig struct {
	SceneDir   string        `json:"sceneDir" yaml:"sceneDir"`
	StartScene string        `json:"startScene" yaml:"startScene"`
	FrameRate  int           `json:"frameRate" yaml:"frameRate"`
	Frames     int           `json:"frames" yaml:"frames"`
	Physics    PhysicsConfig `json:"physics" yaml:"physics"`
	View       ViewConfig    `json:"view" yaml:"view"`
}

// PhysicsConfig contains collision-related configuration
type PhysicsConfig struct {
	MaxSegments     int     `json:"maxSegments" yaml:"maxSegments"`
	ParallelEpsilon float64 `json:"parallelEpsilon" yaml:"parallelEpsilon"`
	ScanPolicy      string  `json:"scanPolicy" yaml:"scanPolicy"`
}

// ViewConfig contains output configuration
type ViewConfig struct {
	Mode   string  `json:"mode" yaml:"mode"`
	Width  int     `json:"width" yaml:"width"`
	Height int     `json:"height" yaml:"height"`
	Scale  float64 `json:"scale" yaml:"scale"`
}

// FrameDelta returns the simulated time step for one frame, in seconds
func (c *SimConfig) FrameDelta() float64 {
	if c.FrameRate <= 0 {
		return 0
	}
	return 1 / float64(c.FrameRate)
}

// Detector builds a collision detector from the physics section
func (c *SimConfig) Detector() (physics.Detector, error) {
	policy, err := physics.ParseScanPolicy(c.Physics.ScanPolicy)
	if err != nil {
		return physics.Detector{}, err
	}
	d := physics.NewDetector()
	d.Policy = policy
	if c.Physics.ParallelEpsilon > 0 {
		d.Epsilon = c.Physics.ParallelEpsilon
	}
	return d, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// LoadConfig loads a configuration from a JSON or YAML file.
// Fields missing from the file keep their default values.
func LoadConfig(path string) (*SimConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if isYAML(path) {
		err = yaml.Unmarshal(data, config)
	} else {
		err = json.Unmarshal(data, config)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file, choosing the format by extension
func SaveConfig(config *SimConfig, path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(config)
	} else {
		data, err = json.MarshalIndent(config, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns a default simulation configuration
func DefaultConfig() *SimConfig {
	return &SimConfig{
		SceneDir:   "scenes",
		StartScene: "arena",
		FrameRate:  60,
		Frames:     600,
		Physics: PhysicsConfig{
			MaxSegments:     physics.DefaultSegmentCapacity,
			ParallelEpsilon: physics.DefaultEpsilon,
			ScanPolicy:      physics.ScanFirstHit.String(),
		},
		View: ViewConfig{
			Mode:   ViewNone,
			Width:  80,
			Height: 24,
			Scale:  1,
		},
	}
}

// ApplyEnvironmentOverrides replaces fields with RICOCHET_* environment
// variables when they are set.
func ApplyEnvironmentOverrides(config *SimConfig) error {
	config.SceneDir = getEnvString("RICOCHET_SCENE_DIR", config.SceneDir)
	config.StartScene = getEnvString("RICOCHET_START_SCENE", config.StartScene)
	config.Physics.ScanPolicy = getEnvString("RICOCHET_SCAN_POLICY", config.Physics.ScanPolicy)
	config.View.Mode = getEnvString("RICOCHET_VIEW", config.View.Mode)

	var err error
	if config.FrameRate, err = getEnvInt("RICOCHET_FRAME_RATE", config.FrameRate); err != nil {
		return err
	}
	if config.Frames, err = getEnvInt("RICOCHET_FRAMES", config.Frames); err != nil {
		return err
	}
	if config.Physics.MaxSegments, err = getEnvInt("RICOCHET_MAX_SEGMENTS", config.Physics.MaxSegments); err != nil {
		return err
	}
	if config.Physics.ParallelEpsilon, err = getEnvFloat("RICOCHET_PARALLEL_EPSILON", config.Physics.ParallelEpsilon); err != nil {
		return err
	}

	return nil
}

// Validate checks the configuration for values the simulation cannot run with
func (c *SimConfig) Validate() error {
	var errs []error

	if c.FrameRate <= 0 {
		errs = append(errs, fmt.Errorf("frameRate must be positive, got %d", c.FrameRate))
	}
	if c.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", c.Frames))
	}
	if c.Physics.MaxSegments <= 0 || c.Physics.MaxSegments > physics.MaxSegmentCapacity {
		errs = append(errs, fmt.Errorf("physics.maxSegments must be in 1..%d, got %d",
			physics.MaxSegmentCapacity, c.Physics.MaxSegments))
	}
	if c.Physics.ParallelEpsilon < 0 {
		errs = append(errs, fmt.Errorf("physics.parallelEpsilon must not be negative"))
	}
	if _, err := physics.ParseScanPolicy(c.Physics.ScanPolicy); err != nil {
		errs = append(errs, err)
	}
	switch c.View.Mode {
	case ViewNone, ViewTerminal:
	default:
		errs = append(errs, fmt.Errorf("view.mode %q is not one of %q, %q", c.View.Mode, ViewNone, ViewTerminal))
	}
	if c.View.Scale <= 0 {
		errs = append(errs, fmt.Errorf("view.scale must be positive"))
	}

	return errors.Join(errs...)
}

func getEnvString(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, defaultValue float64) (float64, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}
