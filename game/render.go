package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/embers/inspector"
	"github.com/pthm-cable/embers/renderer"
	"github.com/pthm-cable/embers/renderer/surface"
	"github.com/pthm-cable/embers/telemetry"
	"github.com/pthm-cable/embers/ui"
)

// Draw renders the scene, the particle passes and the UI.
func (g *Game) Draw() {
	cfg := g.config()
	bg := cfg.Screen.Background

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: uint8(bg[0]), G: uint8(bg[1]), B: uint8(bg[2]), A: 255})

	cam := renderer.Camera3D(g.orbit, float32(cfg.Camera.Distance), float32(cfg.Camera.FovY))
	rl.BeginMode3D(cam)

	g.perfCollector.StartPhase(telemetry.PhaseRenderScene)
	g.scene.ShowPlane = g.overlays.IsEnabled(ui.OverlayPlane)
	g.scene.ShowEnvironment = g.overlays.IsEnabled(ui.OverlayEnvironment)
	g.scene.Draw(g.orbit.Zoom)

	g.perfCollector.StartPhase(telemetry.PhaseRenderParticles)
	g.particles.SetCamera(cam)
	g.drawParticles()

	rl.EndMode3D()

	g.perfCollector.StartPhase(telemetry.PhaseUI)
	g.drawUI()

	rl.EndDrawing()
	g.perfCollector.EndFrame()
}

// drawParticles runs one particle pass per effect in update order.
func (g *Game) drawParticles() {
	model := g.orbit.Model()

	query := g.effectFilter.Query()
	for query.Next() {
		effect, tuning, _ := query.Get()
		if !g.overlays.IsEnabled(ui.OverlayID(effect.Species.String())) {
			continue
		}
		surface.DrawParticles(g.particles, effect.Pool, surface.Pass{
			Model: model,
			Scale: g.orbit.Zoom,
			Size:  tuning.Size,
		})
	}
}

// drawUI draws the enabled panels.
func (g *Game) drawUI() {
	if g.overlays.IsEnabled(ui.OverlayHUD) {
		g.drawHUD()
	}
	if g.inspecting {
		g.drawInspector()
	}
	if g.overlays.IsEnabled(ui.OverlayTiming) {
		g.perfPanel.Draw(g.perfCollector.Stats(), telemetry.Phases())
	}
	if g.overlays.IsEnabled(ui.OverlayControls) {
		g.controls.Draw(g.overlays)
	}
	g.settings.Draw()
}

// drawHUD draws the title, frame counter and pool bars.
func (g *Game) drawHUD() {
	data := ui.HUDData{
		Title:  g.config().Screen.Title,
		Frame:  g.frame,
		FPS:    rl.GetFPS(),
		Paused: g.paused,
	}

	query := g.effectFilter.Query()
	for query.Next() {
		effect, _, stats := query.Get()
		data.Pools = append(data.Pools, ui.PoolLine{
			Species:     effect.Species.String(),
			Alive:       effect.Pool.AliveCount(),
			Capacity:    effect.Pool.Len(),
			RespawnRate: stats.RespawnRate,
		})
	}

	g.hud.Draw(data)
	g.hud.DrawControls(g.screenHeight, controlsLegend)
}

// inspectorWidth is the inspector panel width in pixels.
const inspectorWidth = 300

// drawInspector shows the components of the inspected effect entity.
func (g *Game) drawInspector() {
	e := g.effects[g.inspected]
	g.inspector.Draw("Inspect: "+g.inspected.String(), []inspector.Section{
		inspector.Inspect("Effect", g.effectMap.Get(e)),
		inspector.Inspect("Tuning", g.tuningMap.Get(e)),
		inspector.Inspect("Stats", g.statsMap.Get(e)),
	})
}
