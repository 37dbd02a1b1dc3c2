package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/embers/telemetry"
)

// PoolLine holds the HUD readout of one particle pool.
type PoolLine struct {
	Species     string
	Alive       int
	Capacity    int
	RespawnRate float64 // respawns per second over the last window
}

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title  string
	Frame  int64
	FPS    int32
	Paused bool
	Pools  []PoolLine
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Frame: %d | FPS: %d", data.Frame, data.FPS), 10, 35, 16, rl.LightGray)

	y := int32(58)
	for _, p := range data.Pools {
		frac := float32(0)
		if p.Capacity > 0 {
			frac = float32(p.Alive) / float32(p.Capacity)
		}
		readout := fmt.Sprintf("%d/%d %4.0f/s", p.Alive, p.Capacity, p.RespawnRate)
		y = h.renderer.DrawBar(10, y, p.Species, frac, readout, 300)
	}

	if data.Paused {
		rl.DrawText("PAUSED", 10, y+4, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-phase frame timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel for the given phases in order.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, phases []string) {
	const width = 230
	height := int32(46 + 16*len(phases))
	p.renderer.DrawPanel(p.x, p.y, width, height)

	x := p.x + 8
	y := p.y + 6
	rl.DrawText("Frame Timing", x, y, 16, rl.White)
	y += 20
	rl.DrawText(fmt.Sprintf("Avg: %s  Max: %s",
		stats.AvgFrame.Round(time.Microsecond), stats.MaxFrame.Round(time.Microsecond)), x, y, 12, rl.Yellow)
	y += 16

	for _, name := range phases {
		pct := stats.PhasePct[name]
		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}
		rl.DrawText(fmt.Sprintf("%-16s %8s %5.1f%%", name, stats.PhaseAvg[name].Round(time.Microsecond), pct), x, y, 12, color)
		y += 16
	}
}
