package renderer

import (
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/embers/config"
	"github.com/pthm-cable/embers/systems"
)

// TextureSet holds every texture the demo draws with.
type TextureSet struct {
	Fire        rl.Texture2D
	Smoke       rl.Texture2D
	Plane       rl.Texture2D
	Environment rl.Texture2D
}

// LoadTextures loads the configured textures. Missing files are replaced by
// generated images so the demo runs without assets.
// Must be called after the raylib window is created.
func LoadTextures(cfg *config.Config) *TextureSet {
	return &TextureSet{
		Fire:        loadOrGenerate("fire", cfg.Effects.Fire.Texture, spriteImage),
		Smoke:       loadOrGenerate("smoke", cfg.Effects.Smoke.Texture, spriteImage),
		Plane:       loadOrGenerate("plane", cfg.Scene.PlaneTexture, planeImage),
		Environment: loadOrGenerate("environment", cfg.Scene.EnvironmentTexture, environmentImage),
	}
}

func loadOrGenerate(name, path string, generate func() *rl.Image) rl.Texture2D {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			tex := rl.LoadTexture(path)
			if tex.ID != 0 {
				rl.SetTextureFilter(tex, rl.FilterBilinear)
				return tex
			}
			slog.Warn("texture failed to load, using generated image", "texture", name, "path", path)
		} else {
			slog.Warn("texture not found, using generated image", "texture", name, "path", path, "error", err)
		}
	}

	img := generate()
	tex := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

// spriteImage is a soft white disc; particle color comes from the shader.
func spriteImage() *rl.Image {
	return rl.GenImageGradientRadial(64, 64, 0, rl.White, rl.Blank)
}

func planeImage() *rl.Image {
	return rl.GenImageChecked(256, 256, 32, 32,
		rl.Color{R: 70, G: 64, B: 58, A: 255},
		rl.Color{R: 52, G: 48, B: 44, A: 255},
	)
}

func environmentImage() *rl.Image {
	return rl.GenImageColor(16, 16, rl.Color{R: 24, G: 26, B: 34, A: 255})
}

// Sprite returns the particle texture of a species.
func (t *TextureSet) Sprite(s systems.Species) rl.Texture2D {
	if s == systems.SpeciesFire {
		return t.Fire
	}
	return t.Smoke
}

// Unload frees all textures.
func (t *TextureSet) Unload() {
	for _, tex := range []rl.Texture2D{t.Fire, t.Smoke, t.Plane, t.Environment} {
		if tex.ID != 0 {
			rl.UnloadTexture(tex)
		}
	}
}
