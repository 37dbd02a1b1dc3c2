package game

import (
	"github.com/pthm-cable/embers/telemetry"
)

// Update handles input and advances every pool by one frame.
// Pools are always updated before the frame is drawn.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.handleInput()

	if g.paused {
		return
	}
	g.step()
}

// UpdateHeadless advances the step clock by the reference frame interval and
// runs one frame without input or drawing.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()
	g.stepClock.Advance(g.config().Derived.ReferenceStep)
	g.step()
	g.perfCollector.EndFrame()
}

// step updates every effect's pool with its live life coefficient.
func (g *Game) step() {
	now := g.clock.Now()
	dt := now.Sub(g.lastFrame)
	g.lastFrame = now

	query := g.effectFilter.Query()
	for query.Next() {
		effect, tuning, stats := query.Get()

		g.perfCollector.StartPhase(telemetry.UpdatePhase(effect.Species.String()))
		stats.Last = effect.Pool.Update(tuning.LifeCoef)
		g.collector.Record(effect.Species, stats.Last)
	}

	g.collector.Advance(dt)
	g.frame++

	g.flushTelemetry()
	if interval := g.config().Telemetry.LogInterval; g.logStats && interval > 0 && g.frame%int64(interval) == 0 {
		g.logPoolState()
	}
}

// setPaused pauses or resumes the simulation and its clock.
func (g *Game) setPaused(paused bool) {
	g.paused = paused
	if g.pauser != nil {
		g.pauser.SetPaused(paused)
	}
	g.lastFrame = g.clock.Now()
}
