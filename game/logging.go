package game

import (
	"log/slog"
)

// logPoolState logs the occupancy and lifetime counters of every pool.
func (g *Game) logPoolState() {
	attrs := []any{"frame", g.frame, "paused", g.paused}

	query := g.effectFilter.Query()
	for query.Next() {
		effect, tuning, stats := query.Get()
		totals := effect.Pool.Totals()
		attrs = append(attrs, slog.Group(effect.Species.String(),
			"alive", effect.Pool.AliveCount(),
			"capacity", effect.Pool.Len(),
			"life_coef", tuning.LifeCoef,
			"natural", totals.Natural,
			"forced", totals.Forced,
			"replenish_ticks", totals.ReplenishTicks,
			"respawn_rate", stats.RespawnRate,
		))
	}

	attrs = append(attrs,
		"zoom", g.orbit.Zoom,
		"angle_x", g.orbit.AngleX,
		"angle_y", g.orbit.AngleY,
	)
	slog.Info("pools", attrs...)
}
