// Package game wires the particle pools, camera, renderer and UI into the
// demo's frame loop.
package game

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/embers/camera"
	"github.com/pthm-cable/embers/components"
	"github.com/pthm-cable/embers/config"
	"github.com/pthm-cable/embers/renderer"
	"github.com/pthm-cable/embers/systems"
	"github.com/pthm-cable/embers/telemetry"
	"github.com/pthm-cable/embers/ui"
)

// Options configures game creation.
type Options struct {
	Seed           int64   // RNG seed (0 = time-based)
	LogStats       bool    // Emit window stats through slog
	StatsWindowSec float64 // Telemetry window length (0 = use config)
	OutputDir      string  // CSV and config snapshot directory ("" = disabled)
	Headless       bool    // Drive pools from a step clock without raylib
}

// effectOrder is the order effects are updated and drawn in. Smoke is drawn
// after fire so it veils the flames.
var effectOrder = []systems.Species{systems.SpeciesFire, systems.SpeciesSmoke}

// Game holds the complete demo state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	seed  int64

	// One entity per effect
	effectMapper *ecs.Map3[components.Effect, components.Tuning, components.EffectStats]
	effectFilter *ecs.Filter3[components.Effect, components.Tuning, components.EffectStats]
	effectMap    *ecs.Map1[components.Effect]
	tuningMap    *ecs.Map1[components.Tuning]
	statsMap     *ecs.Map1[components.EffectStats]
	effects      map[systems.Species]ecs.Entity
	pools        []*systems.ParticlePool

	clock     systems.Clock
	stepClock *systems.StepClock     // non-nil in headless mode
	pauser    *systems.PausableClock // non-nil in windowed mode
	lastFrame time.Time

	orbit *camera.Orbit

	// Graphics (nil in headless mode)
	textures  *renderer.TextureSet
	scene     *renderer.SceneRenderer
	particles *renderer.ParticleSurface
	settings  *ui.SettingsPanel
	hud       *ui.HUD
	perfPanel *ui.PerfPanel
	inspector *ui.InspectorPanel
	controls  *ui.ControlsPanel
	overlays  *ui.OverlayRegistry

	// Effect shown in the inspector
	inspected  systems.Species
	inspecting bool

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	bookmarks     map[systems.Species]*telemetry.BookmarkDetector
	logStats      bool

	frame        int64
	paused       bool
	headless     bool
	screenWidth  int32
	screenHeight int32
}

// config returns the global configuration.
func (g *Game) config() *config.Config {
	return config.Cfg()
}

// NewGameWithOptions creates a game. Unless opts.Headless is set the raylib
// window must already exist.
func NewGameWithOptions(opts Options) *Game {
	cfg := config.Cfg()

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	window := cfg.Derived.StatsWindowDur
	if opts.StatsWindowSec > 0 {
		window = time.Duration(opts.StatsWindowSec * float64(time.Second))
	}

	world := ecs.NewWorld()
	g := &Game{
		world:         world,
		rng:           rand.New(rand.NewSource(seed)),
		seed:          seed,
		effectMapper:  ecs.NewMap3[components.Effect, components.Tuning, components.EffectStats](world),
		effectFilter:  ecs.NewFilter3[components.Effect, components.Tuning, components.EffectStats](world),
		effectMap:     ecs.NewMap1[components.Effect](world),
		tuningMap:     ecs.NewMap1[components.Tuning](world),
		statsMap:      ecs.NewMap1[components.EffectStats](world),
		effects:       make(map[systems.Species]ecs.Entity),
		orbit:         newOrbit(cfg),
		collector:     telemetry.NewCollector(window),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:     make(map[systems.Species]*telemetry.BookmarkDetector),
		logStats:      opts.LogStats,
		headless:      opts.Headless,
		screenWidth:   int32(cfg.Screen.Width),
		screenHeight:  int32(cfg.Screen.Height),
	}

	if opts.Headless {
		g.stepClock = systems.NewStepClock(time.Unix(0, 0))
		g.clock = g.stepClock
	} else {
		g.pauser = systems.NewPausableClock(systems.SystemClock{})
		g.clock = g.pauser
		g.initGraphics()
	}
	g.lastFrame = g.clock.Now()

	g.spawnEffects()

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	if !opts.Headless {
		g.buildSettingsPanel()
	}

	slog.Info("game created",
		"seed", seed,
		"headless", opts.Headless,
		"stats_window", window.String(),
		"fire_capacity", systems.PolicyFor(systems.SpeciesFire).Capacity(),
		"smoke_capacity", systems.PolicyFor(systems.SpeciesSmoke).Capacity(),
	)
	return g
}

// newOrbit creates the orbit camera from config.
func newOrbit(cfg *config.Config) *camera.Orbit {
	o := camera.New(float32(cfg.Camera.Zoom), int32(cfg.Camera.ZoomSensitivity))
	o.RotateSensitivity = float32(cfg.Camera.RotateSensitivity)
	o.MinPitch = float32(cfg.Camera.MinPitch)
	o.MaxPitch = float32(cfg.Camera.MaxPitch)
	return o
}

// initGraphics loads textures and shaders. Requires a raylib window.
func (g *Game) initGraphics() {
	cfg := g.config()

	g.textures = renderer.LoadTextures(cfg)

	g.scene = renderer.NewSceneRenderer(float32(cfg.Scene.PlaneSize), float32(cfg.Scene.EnvironmentSize))
	g.scene.Init(g.textures)

	g.particles = renderer.NewParticleSurface()
	g.particles.Init()
	for _, s := range effectOrder {
		g.particles.RegisterTexture(g.textures.Sprite(s))
	}

	g.hud = ui.NewHUD()
	g.perfPanel = ui.NewPerfPanel(10, g.screenHeight-190)
	g.inspector = ui.NewInspectorPanel(10, 150, inspectorWidth)
	g.controls = ui.NewControlsPanel(330, 10, 220)
	g.overlays = ui.NewOverlayRegistry()
}

// spawnEffects creates one pool and one entity per species.
func (g *Game) spawnEffects() {
	cfg := g.config()

	for _, s := range effectOrder {
		var textures []uint32
		if g.textures != nil {
			textures = []uint32{g.textures.Sprite(s).ID}
		}

		pool := systems.NewParticlePool(
			systems.PolicyFor(s),
			textures,
			cfg.Derived.InitialLifeCoef,
			systems.WithClock(g.clock),
			systems.WithRand(rand.New(rand.NewSource(g.rng.Int63()))),
		)
		g.pools = append(g.pools, pool)
		g.bookmarks[s] = telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize)

		ec := cfg.Effects.For(s)
		effect := components.Effect{Species: s, Pool: pool}
		tuning := components.Tuning{LifeCoef: float32(ec.LifeCoef), Size: float32(ec.Size)}
		stats := components.EffectStats{}
		g.effects[s] = g.effectMapper.NewEntity(&effect, &tuning, &stats)
	}
}

// tuning returns the live tuning of a species' effect.
func (g *Game) tuning(s systems.Species) *components.Tuning {
	return g.tuningMap.Get(g.effects[s])
}

// Frame returns the number of frames updated so far.
func (g *Game) Frame() int64 {
	return g.frame
}

// Pools returns the particle pools in update order.
func (g *Game) Pools() []*systems.ParticlePool {
	return g.pools
}

// Camera returns the orbit camera.
func (g *Game) Camera() *camera.Orbit {
	return g.orbit
}

// Unload releases GPU resources and closes telemetry output.
func (g *Game) Unload() {
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
	if g.particles != nil {
		g.particles.Unload()
	}
	if g.scene != nil {
		g.scene.Unload()
	}
	if g.textures != nil {
		g.textures.Unload()
	}
}
