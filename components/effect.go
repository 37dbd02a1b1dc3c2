// Package components defines ECS components for the demo.
package components

import "github.com/pthm-cable/embers/systems"

// Effect binds an entity to a particle pool.
type Effect struct {
	Species systems.Species       `inspect:"label"`
	Pool    *systems.ParticlePool `inspect:"skip"`
}

// Tuning holds the live-editable parameters of an effect.
type Tuning struct {
	LifeCoef float32 `inspect:"label,fmt:%.2f"` // Spawn life scale passed to every Update
	Size     float32 `inspect:"label,fmt:%.2f"` // Billboard half-size before zoom
}

// EffectStats holds the most recent results of an effect's updates.
type EffectStats struct {
	Last systems.UpdateStats

	// Refreshed when a telemetry window closes
	RespawnRate float64 `inspect:"label,fmt:%.0f/s"` // respawns per second
	AliveFrac   float64 `inspect:"bar,max:1"`
	LifeP50     float64 `inspect:"label,fmt:%.3f"`
}
