// Package config provides configuration loading and access for the demo.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/pthm-cable/embers/systems"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all demo configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Camera     CameraConfig     `yaml:"camera"`
	Effects    EffectsConfig    `yaml:"effects"`
	Simulation SimulationConfig `yaml:"simulation"`
	Scene      SceneConfig      `yaml:"scene"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	TargetFPS  int    `yaml:"target_fps"`
	Title      string `yaml:"title"`
	Background [3]int `yaml:"background"` // RGB clear color
}

// CameraConfig holds orbit camera parameters.
type CameraConfig struct {
	Zoom              float64 `yaml:"zoom"`
	ZoomSensitivity   int     `yaml:"zoom_sensitivity"`   // Percent, 0-100
	RotateSensitivity float64 `yaml:"rotate_sensitivity"` // Degrees per pixel
	MinPitch          float64 `yaml:"min_pitch"`
	MaxPitch          float64 `yaml:"max_pitch"`
	FovY              float64 `yaml:"fovy"`
	Distance          float64 `yaml:"distance"` // Eye distance from the origin
}

// EffectConfig holds the tunables of one particle effect.
type EffectConfig struct {
	LifeCoef float64 `yaml:"life_coef"` // Scales spawn life
	Size     float64 `yaml:"size"`      // Billboard half-size before zoom
	Texture  string  `yaml:"texture"`   // Sprite path; a generated sprite is used if missing
}

// EffectsConfig holds per-species effect settings.
type EffectsConfig struct {
	Fire  EffectConfig `yaml:"fire"`
	Smoke EffectConfig `yaml:"smoke"`
}

// For returns the settings of a species.
func (e *EffectsConfig) For(s systems.Species) *EffectConfig {
	switch s {
	case systems.SpeciesFire:
		return &e.Fire
	case systems.SpeciesSmoke:
		return &e.Smoke
	default:
		panic(fmt.Sprintf("config: no effect settings for %v", s))
	}
}

// SimulationConfig holds pool construction parameters.
type SimulationConfig struct {
	InitialLifeCoef float64 `yaml:"initial_life_coef"` // Life coefficient for the first fill of every pool
}

// SceneConfig holds the static scene around the emitters.
type SceneConfig struct {
	PlaneTexture       string  `yaml:"plane_texture"`
	EnvironmentTexture string  `yaml:"environment_texture"`
	PlaneSize          float64 `yaml:"plane_size"`
	EnvironmentSize    float64 `yaml:"environment_size"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         float64 `yaml:"stats_window"`          // Seconds per stats window
	PerfCollectorWindow int     `yaml:"perf_collector_window"` // Frames in the rolling perf average
	LogInterval         int     `yaml:"log_interval"`          // Frames between pool-state logs, 0 disables
	BookmarkHistorySize int     `yaml:"bookmark_history_size"` // Windows kept by the bookmark detectors
	SnapshotOnBookmark  bool    `yaml:"snapshot_on_bookmark"`  // Save pool snapshots when a bookmark fires
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32       float32       // Screen.Width as float32
	ScreenH32       float32       // Screen.Height as float32
	InitialLifeCoef float32       // Simulation.InitialLifeCoef as float32
	ReferenceStep   time.Duration // Headless clock advance per frame
	StatsWindowDur  time.Duration // Telemetry.StatsWindow as a duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// validate rejects values the demo cannot run with.
func (c *Config) validate() error {
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		return fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height)
	}
	if c.Camera.ZoomSensitivity < 0 || c.Camera.ZoomSensitivity > 100 {
		return fmt.Errorf("camera.zoom_sensitivity must be in [0, 100], got %d", c.Camera.ZoomSensitivity)
	}
	if c.Camera.MinPitch > c.Camera.MaxPitch {
		return fmt.Errorf("camera.min_pitch %.2f above max_pitch %.2f", c.Camera.MinPitch, c.Camera.MaxPitch)
	}
	if c.Telemetry.StatsWindow <= 0 {
		return fmt.Errorf("telemetry.stats_window must be positive, got %v", c.Telemetry.StatsWindow)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)
	c.Derived.InitialLifeCoef = float32(c.Simulation.InitialLifeCoef)
	c.Derived.ReferenceStep = systems.ReferenceFrameInterval
	c.Derived.StatsWindowDur = time.Duration(c.Telemetry.StatsWindow * float64(time.Second))

	if c.Telemetry.PerfCollectorWindow <= 0 {
		c.Telemetry.PerfCollectorWindow = 120
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
