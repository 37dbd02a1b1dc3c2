// Frame grab tool - simulates the pools for a number of frames on a step
// clock, renders one frame off screen and writes it to a PNG file.
//
// Usage: go run ./cmd/framegrab -frames 240 -angle-y -30 -out frame.png
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/embers/camera"
	"github.com/pthm-cable/embers/config"
	"github.com/pthm-cable/embers/renderer"
	"github.com/pthm-cable/embers/renderer/surface"
	"github.com/pthm-cable/embers/systems"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "frame.png", "Output PNG path")
	frames := flag.Int("frames", 240, "Frames simulated before the grab")
	seed := flag.Int64("seed", 1, "RNG seed")
	angleX := flag.Float64("angle-x", 0, "Camera yaw in degrees")
	angleY := flag.Float64("angle-y", -20, "Camera pitch in degrees")
	width := flag.Int("width", 0, "Render width (0 = config)")
	height := flag.Int("height", 0, "Render height (0 = config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	w, h := int32(cfg.Screen.Width), int32(cfg.Screen.Height)
	if *width > 0 {
		w = int32(*width)
	}
	if *height > 0 {
		h = int32(*height)
	}

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(w, h, "Frame Grab")
	defer rl.CloseWindow()

	textures := renderer.LoadTextures(cfg)
	defer textures.Unload()

	scene := renderer.NewSceneRenderer(float32(cfg.Scene.PlaneSize), float32(cfg.Scene.EnvironmentSize))
	scene.Init(textures)
	defer scene.Unload()

	particles := renderer.NewParticleSurface()
	particles.Init()
	defer particles.Unload()

	clock := systems.NewStepClock(time.Unix(0, 0))
	rng := rand.New(rand.NewSource(*seed))
	species := []systems.Species{systems.SpeciesFire, systems.SpeciesSmoke}
	pools := make([]*systems.ParticlePool, len(species))
	for i, s := range species {
		tex := textures.Sprite(s)
		particles.RegisterTexture(tex)
		pools[i] = systems.NewParticlePool(systems.PolicyFor(s), []uint32{tex.ID}, cfg.Derived.InitialLifeCoef,
			systems.WithClock(clock),
			systems.WithRand(rand.New(rand.NewSource(rng.Int63()))),
		)
	}

	for f := 0; f < *frames; f++ {
		clock.Advance(cfg.Derived.ReferenceStep)
		for i, pool := range pools {
			pool.Update(float32(cfg.Effects.For(species[i]).LifeCoef))
		}
	}

	orbit := camera.New(float32(cfg.Camera.Zoom), int32(cfg.Camera.ZoomSensitivity))
	orbit.MinPitch = float32(cfg.Camera.MinPitch)
	orbit.MaxPitch = float32(cfg.Camera.MaxPitch)
	orbit.AngleX = float32(*angleX)
	orbit.AngleY = float32(*angleY)
	cam := renderer.Camera3D(orbit, float32(cfg.Camera.Distance), float32(cfg.Camera.FovY))

	target := rl.LoadRenderTexture(w, h)
	defer rl.UnloadRenderTexture(target)

	bg := cfg.Screen.Background
	drawn := 0
	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Color{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255})
	rl.BeginMode3D(cam)
	scene.Draw(orbit.Zoom)
	particles.SetCamera(cam)
	for i, pool := range pools {
		drawn += surface.DrawParticles(particles, pool, surface.Pass{
			Model: orbit.Model(),
			Scale: orbit.Zoom,
			Size:  float32(cfg.Effects.For(species[i]).Size),
		})
	}
	rl.EndMode3D()
	rl.EndTextureMode()

	// Get image from texture and flip it (OpenGL convention)
	img := rl.LoadImageFromTexture(target.Texture)
	rl.ImageFlipVertical(img)

	success := rl.ExportImage(*img, *outPath)
	rl.UnloadImage(img)

	if success {
		fmt.Printf("Frame %d rendered to: %s (%dx%d, %d particles)\n", *frames, *outPath, w, h, drawn)
	} else {
		fmt.Fprintf(os.Stderr, "Failed to export image\n")
		os.Exit(1)
	}
}
