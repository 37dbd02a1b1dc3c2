package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/embers/systems"
	"github.com/pthm-cable/embers/ui"
)

// controlsLegend is shown at the bottom of the screen.
const controlsLegend = "Drag: orbit | Wheel: zoom | Space: pause | 1/2: inspect | F1: overlays | P: snapshot | Home: reset view | F11: fullscreen"

// inspectKeys select an effect for the inspector, in effect order.
var inspectKeys = []int32{rl.KeyOne, rl.KeyTwo}

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		g.setPaused(!g.paused)
	}
	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		if id, on, ok := g.overlays.HandleKeyPress(key); ok {
			slog.Info("overlay toggled", "overlay", string(id), "enabled", on, "active", g.overlays.EnabledOverlays())
		}
	}
	g.settings.SetVisible(g.overlays.IsEnabled(ui.OverlaySettings))
	if rl.IsKeyPressed(rl.KeyP) {
		g.saveSnapshot()
	}
	for i, key := range inspectKeys {
		if i < len(effectOrder) && rl.IsKeyPressed(key) {
			g.toggleInspect(effectOrder[i])
		}
	}

	g.handleCameraInput()
}

// handleResize checks for window resize and re-anchors the panels.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.layoutPanels()
}

// layoutPanels anchors the settings panel top right and the timing panel
// bottom left.
func (g *Game) layoutPanels() {
	g.settings.SetPosition(g.screenWidth-settingsWidth-10, 10)
	g.perfPanel.SetPosition(10, g.screenHeight-190)
}

// toggleInspect shows the inspector for s, or hides it if s is already shown.
func (g *Game) toggleInspect(s systems.Species) {
	if g.inspecting && g.inspected == s {
		g.inspecting = false
		return
	}
	g.inspected = s
	g.inspecting = true
}

// handleCameraInput orbits on left drag and zooms on wheel. A drag that
// starts over the settings panel belongs to the panel.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	overPanel := g.settings.Hovered(mouse)

	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if g.orbit.Dragging() || (rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overPanel) {
			g.orbit.Drag(mouse.X, mouse.Y)
		}
	} else {
		g.orbit.Release()
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		g.orbit.Scroll(wheel)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		g.orbit.Reset()
	}
}
