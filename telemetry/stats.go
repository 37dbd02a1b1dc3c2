package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics of one pool over a time window.
type WindowStats struct {
	WindowStart int64   `csv:"-"`
	WindowEnd   int64   `csv:"window_end"`
	SimTimeSec  float64 `csv:"sim_time"`
	Species     string  `csv:"species"`

	// Occupancy at window end
	Capacity  int     `csv:"capacity"`
	Alive     int     `csv:"alive"`
	AliveFrac float64 `csv:"alive_frac"`

	// Recycling during window
	Natural        int     `csv:"natural"`
	Forced         int     `csv:"forced"`
	ReplenishTicks int     `csv:"replenish_ticks"`
	RespawnRate    float64 `csv:"respawn_rate"` // respawns per second of sim time
	ForcedShare    float64 `csv:"forced_share"` // forced / (natural + forced)

	// Life distribution (sampled at window end, dead slots included)
	LifeMean float64 `csv:"life_mean"`
	LifeStd  float64 `csv:"life_std"`
	LifeP10  float64 `csv:"life_p10"`
	LifeP50  float64 `csv:"life_p50"`
	LifeP90  float64 `csv:"life_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}
	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LifeStats summarizes a set of particle life values.
type LifeStats struct {
	Mean, Std     float64
	P10, P50, P90 float64
}

// ComputeLifeStats calculates mean, standard deviation and percentiles.
// values is sorted in place.
func ComputeLifeStats(values []float64) LifeStats {
	if len(values) == 0 {
		return LifeStats{}
	}

	var s LifeStats
	if len(values) == 1 {
		s.Mean = values[0]
	} else {
		s.Mean, s.Std = stat.MeanStdDev(values, nil)
	}

	sort.Float64s(values)
	s.P10 = Percentile(values, 0.10)
	s.P50 = Percentile(values, 0.50)
	s.P90 = Percentile(values, 0.90)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("species", s.Species),
		slog.Int64("window_start", s.WindowStart),
		slog.Int64("window_end", s.WindowEnd),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("alive", s.Alive),
		slog.Float64("alive_frac", s.AliveFrac),
		slog.Int("natural", s.Natural),
		slog.Int("forced", s.Forced),
		slog.Int("replenish_ticks", s.ReplenishTicks),
		slog.Float64("respawn_rate", s.RespawnRate),
		slog.Float64("life_mean", s.LifeMean),
		slog.Float64("life_p50", s.LifeP50),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"species", s.Species,
		"window_end", s.WindowEnd,
		"sim_time", s.SimTimeSec,
		"capacity", s.Capacity,
		"alive", s.Alive,
		"alive_frac", s.AliveFrac,
		"natural", s.Natural,
		"forced", s.Forced,
		"replenish_ticks", s.ReplenishTicks,
		"respawn_rate", s.RespawnRate,
		"forced_share", s.ForcedShare,
		"life_mean", s.LifeMean,
		"life_std", s.LifeStd,
		"life_p10", s.LifeP10,
		"life_p50", s.LifeP50,
		"life_p90", s.LifeP90,
	)
}
