package game

import (
	"log/slog"

	"github.com/pthm-cable/embers/telemetry"
)

// flushTelemetry closes the stats window once it has elapsed, publishes the
// window results to the effect entities and writes CSV rows.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush() {
		return
	}
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)

	stats := g.collector.Flush(g.frame, g.pools)
	for i, s := range effectOrder {
		es := g.statsMap.Get(g.effects[s])
		es.RespawnRate = stats[i].RespawnRate
		es.AliveFrac = stats[i].AliveFrac
		es.LifeP50 = stats[i].LifeP50
	}
	perfStats := g.perfCollector.Stats()
	g.checkBookmarks(stats)

	if g.logStats {
		for _, ws := range stats {
			ws.LogStats()
		}
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if err := g.outputManager.WritePerf(perfStats, g.frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// checkBookmarks runs each window through its species' detector, records the
// bookmarks and optionally snapshots the pools at that frame.
func (g *Game) checkBookmarks(stats []telemetry.WindowStats) {
	var all []telemetry.Bookmark
	for i, s := range effectOrder {
		for _, bm := range g.bookmarks[s].Check(stats[i]) {
			bm.LogBookmark()
			all = append(all, bm)
		}
	}
	if len(all) == 0 || g.outputManager == nil {
		return
	}

	if err := g.outputManager.WriteBookmarks(all); err != nil {
		slog.Error("failed to write bookmarks", "error", err)
	}
	if !g.config().Telemetry.SnapshotOnBookmark {
		return
	}
	for i := range all {
		path, err := g.outputManager.SaveSnapshot(g.snapshot(&all[i]))
		if err != nil {
			slog.Error("failed to save snapshot", "error", err)
			continue
		}
		slog.Info("snapshot saved", "path", path)
	}
}

// snapshot captures every pool with its live tuning.
func (g *Game) snapshot(bm *telemetry.Bookmark) *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		RNGSeed:  g.seed,
		Frame:    g.frame,
		Bookmark: bm,
	}
	for _, s := range effectOrder {
		pool := g.effectMap.Get(g.effects[s]).Pool
		snap.Pools = append(snap.Pools, telemetry.CapturePool(pool, g.tuning(s).LifeCoef))
	}
	return snap
}

// saveSnapshot writes an unbookmarked snapshot of the current frame.
func (g *Game) saveSnapshot() {
	if g.outputManager == nil {
		slog.Warn("snapshot needs -output-dir")
		return
	}
	path, err := g.outputManager.SaveSnapshot(g.snapshot(nil))
	if err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path, "frame", g.frame)
}
