// Package telemetry provides pool statistics, frame timing and CSV output.
package telemetry

import (
	"time"

	"github.com/pthm-cable/embers/systems"
)

// speciesCounters accumulates one pool's update results within a window.
type speciesCounters struct {
	natural        int
	forced         int
	replenishTicks int
}

// Collector accumulates pool update results within time windows and
// produces one WindowStats per species when a window is flushed.
// Windows are measured in simulation time, the sum of frame deltas.
type Collector struct {
	window time.Duration

	windowStart   int64
	windowElapsed time.Duration
	simTime       time.Duration

	counters map[systems.Species]*speciesCounters

	// Scratch buffer for life values
	lifeBuf []float64
}

// NewCollector creates a collector with the given window length.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = time.Second
	}
	return &Collector{
		window:   window,
		counters: make(map[systems.Species]*speciesCounters),
	}
}

// Record adds the result of one pool update.
func (c *Collector) Record(species systems.Species, stats systems.UpdateStats) {
	sc := c.counters[species]
	if sc == nil {
		sc = &speciesCounters{}
		c.counters[species] = sc
	}
	sc.natural += stats.Natural
	sc.forced += stats.Forced
	if stats.Replenished {
		sc.replenishTicks++
	}
}

// Advance adds a frame's elapsed simulation time.
func (c *Collector) Advance(dt time.Duration) {
	c.windowElapsed += dt
	c.simTime += dt
}

// ShouldFlush returns true once the window has elapsed.
func (c *Collector) ShouldFlush() bool {
	return c.windowElapsed >= c.window
}

// Flush produces stats for every pool and resets counters for the next window.
func (c *Collector) Flush(frame int64, pools []*systems.ParticlePool) []WindowStats {
	secs := c.windowElapsed.Seconds()
	out := make([]WindowStats, 0, len(pools))

	for _, pool := range pools {
		species := pool.Species()
		var sc speciesCounters
		if p := c.counters[species]; p != nil {
			sc = *p
		}

		c.lifeBuf = pool.LifeValues(c.lifeBuf[:0])
		life := ComputeLifeStats(c.lifeBuf)
		alive := pool.AliveCount()

		ws := WindowStats{
			WindowStart:    c.windowStart,
			WindowEnd:      frame,
			SimTimeSec:     c.simTime.Seconds(),
			Species:        species.String(),
			Capacity:       pool.Len(),
			Alive:          alive,
			AliveFrac:      float64(alive) / float64(pool.Len()),
			Natural:        sc.natural,
			Forced:         sc.forced,
			ReplenishTicks: sc.replenishTicks,
			LifeMean:       life.Mean,
			LifeStd:        life.Std,
			LifeP10:        life.P10,
			LifeP50:        life.P50,
			LifeP90:        life.P90,
		}
		if respawned := sc.natural + sc.forced; respawned > 0 {
			ws.ForcedShare = float64(sc.forced) / float64(respawned)
			if secs > 0 {
				ws.RespawnRate = float64(respawned) / secs
			}
		}
		out = append(out, ws)
	}

	c.windowStart = frame
	c.windowElapsed = 0
	for _, sc := range c.counters {
		*sc = speciesCounters{}
	}
	return out
}

// Window returns the window length.
func (c *Collector) Window() time.Duration {
	return c.window
}

// SimTime returns the total simulation time seen by the collector.
func (c *Collector) SimTime() time.Duration {
	return c.simTime
}
