package game

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/embers/systems"
	"github.com/pthm-cable/embers/ui"
)

const settingsWidth = 260

// buildSettingsPanel creates the settings panel bound to the camera and the
// effect tunings.
func (g *Game) buildSettingsPanel() {
	g.settings = ui.NewSettingsPanel("Settings", g.screenWidth-settingsWidth-10, 10, settingsWidth)

	g.settings.AddSection(ui.SectionSpec{
		Title: "Camera",
		Sliders: []ui.SliderSpec{{
			ID:     "zoom_sensitivity",
			Label:  "Zoom sensitivity",
			Min:    0,
			Max:    100,
			Format: "%.0f%%",
			Step:   1,
			Get:    func() float32 { return float32(g.orbit.ZoomSensitivity) },
			Set:    func(v float32) { g.orbit.ZoomSensitivity = int32(v) },
			Hint:   func() string { return fmt.Sprintf("(%.2fx)", g.orbit.Zoom) },
		}},
	})

	for _, s := range effectOrder {
		g.settings.AddSection(g.effectSection(s))
	}

	g.settings.AddButton(ui.ButtonSpec{Label: "Reset", OnClick: g.resetSettings})
	g.settings.AddButton(ui.ButtonSpec{Label: "Copy YAML", OnClick: g.copySettings})
}

// effectSection returns the sliders for one effect.
func (g *Game) effectSection(s systems.Species) ui.SectionSpec {
	name := s.String()
	maxLife := float32(2)
	if s == systems.SpeciesSmoke {
		maxLife = 20
	}
	return ui.SectionSpec{
		Title: name,
		Sliders: []ui.SliderSpec{
			{
				ID:     name + "_life_coef",
				Label:  "Life coefficient",
				Min:    0,
				Max:    maxLife,
				Format: "%.2f",
				Get:    func() float32 { return g.tuning(s).LifeCoef },
				Set:    func(v float32) { g.tuning(s).LifeCoef = v },
			},
			{
				ID:     name + "_size",
				Label:  "Particle size",
				Min:    0.01,
				Max:    4,
				Format: "%.2f",
				Get:    func() float32 { return g.tuning(s).Size },
				Set:    func(v float32) { g.tuning(s).Size = v },
			},
		},
	}
}

// resetSettings restores the configured tunings and camera.
func (g *Game) resetSettings() {
	cfg := g.config()
	for _, s := range effectOrder {
		ec := cfg.Effects.For(s)
		t := g.tuning(s)
		t.LifeCoef = float32(ec.LifeCoef)
		t.Size = float32(ec.Size)
	}
	g.orbit.Reset()
	g.orbit.Zoom = float32(cfg.Camera.Zoom)
	g.orbit.ZoomSensitivity = int32(cfg.Camera.ZoomSensitivity)
	slog.Info("settings reset")
}

// copySettings puts the live settings on the clipboard as a config overlay.
func (g *Game) copySettings() {
	data, err := yaml.Marshal(g.liveOverlay())
	if err != nil {
		slog.Error("failed to marshal settings", "error", err)
		return
	}
	rl.SetClipboardText(string(data))
	slog.Info("settings copied to clipboard", "bytes", len(data))
}

// overlayEffect is the tunable subset of an effect config.
type overlayEffect struct {
	LifeCoef float64 `yaml:"life_coef"`
	Size     float64 `yaml:"size"`
}

// liveOverlay builds a config overlay holding the live tunings and camera.
func (g *Game) liveOverlay() map[string]any {
	effects := make(map[string]overlayEffect, len(effectOrder))
	for _, s := range effectOrder {
		t := g.tuning(s)
		effects[s.String()] = overlayEffect{LifeCoef: float64(t.LifeCoef), Size: float64(t.Size)}
	}
	return map[string]any{
		"camera": map[string]any{
			"zoom":             g.orbit.Zoom,
			"zoom_sensitivity": g.orbit.ZoomSensitivity,
		},
		"effects": effects,
	}
}
