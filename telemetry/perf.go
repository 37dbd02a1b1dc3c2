package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one frame.
const (
	PhaseUpdateFire      = "update_fire"
	PhaseUpdateSmoke     = "update_smoke"
	PhaseRenderScene     = "render_scene"
	PhaseRenderParticles = "render_particles"
	PhaseUI              = "ui"
	PhaseTelemetry       = "telemetry"
)

// phaseOrder fixes the order phases appear in logs and CSV rows.
var phaseOrder = []string{
	PhaseUpdateFire, PhaseUpdateSmoke,
	PhaseRenderScene, PhaseRenderParticles,
	PhaseUI, PhaseTelemetry,
}

// Phases returns the phase names in display order.
func Phases() []string {
	return append([]string(nil), phaseOrder...)
}

// UpdatePhase returns the update phase name for a species name.
func UpdatePhase(species string) string {
	return "update_" + species
}

// frameSample holds timing data for a single frame.
type frameSample struct {
	total  time.Duration
	phases map[string]time.Duration
}

// PerfCollector tracks per-phase frame timings over a rolling window.
type PerfCollector struct {
	windowSize  int
	samples     []frameSample
	writeIndex  int
	sampleCount int

	current    map[string]time.Duration
	frameStart time.Time
	phaseStart time.Time
	lastPhase  string

	// Wall time between consecutive EndFrame calls
	lastEnd  time.Time
	interval time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize frames.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 60
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]frameSample, windowSize),
		current:    make(map[string]time.Duration),
	}
}

// StartFrame begins timing a new frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = make(map[string]time.Duration, len(phaseOrder))
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing the next.
func (p *PerfCollector) StartPhase(phase string) {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndFrame closes the running phase and records the sample.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
		p.lastPhase = ""
	}

	p.samples[p.writeIndex] = frameSample{
		total:  now.Sub(p.frameStart),
		phases: p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}

	if !p.lastEnd.IsZero() {
		p.interval = now.Sub(p.lastEnd)
	}
	p.lastEnd = now
}

// PerfStats holds aggregated performance statistics.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration

	// Average duration and share of the average frame per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Rate implied by the time spent inside frames
	FramesPerSecond float64

	// Rate implied by the spacing between frames
	FrameInterval time.Duration
	FPS           float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		PhaseAvg:      make(map[string]time.Duration),
		PhasePct:      make(map[string]float64),
		FrameInterval: p.interval,
	}
	if p.interval > 0 {
		stats.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.total
		if i == 0 || s.total < stats.MinFrame {
			stats.MinFrame = s.total
		}
		if s.total > stats.MaxFrame {
			stats.MaxFrame = s.total
		}
		for phase, d := range s.phases {
			phaseSum[phase] += d
		}
	}

	stats.AvgFrame = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgFrame > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgFrame) * 100
		}
	}
	if stats.AvgFrame > 0 {
		stats.FramesPerSecond = float64(time.Second) / float64(stats.AvgFrame)
	}
	return stats
}

// LogStats logs performance statistics.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgFrame.Microseconds(),
		"min_frame_us", s.MinFrame.Microseconds(),
		"max_frame_us", s.MaxFrame.Microseconds(),
		"frames_per_sec", int(s.FramesPerSecond),
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", float64(int(pct*10))/10)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfStatsCSV is a flat struct for CSV export of performance stats.
type PerfStatsCSV struct {
	Frame              int64   `csv:"frame"`
	AvgFrameUS         int64   `csv:"avg_frame_us"`
	MinFrameUS         int64   `csv:"min_frame_us"`
	MaxFrameUS         int64   `csv:"max_frame_us"`
	FPS                float64 `csv:"fps"`
	UpdateFirePct      float64 `csv:"update_fire_pct"`
	UpdateSmokePct     float64 `csv:"update_smoke_pct"`
	RenderScenePct     float64 `csv:"render_scene_pct"`
	RenderParticlesPct float64 `csv:"render_particles_pct"`
	UIPct              float64 `csv:"ui_pct"`
	TelemetryPct       float64 `csv:"telemetry_pct"`
}

// ToCSV converts PerfStats to a CSV row stamped with the frame number.
func (s PerfStats) ToCSV(frame int64) PerfStatsCSV {
	return PerfStatsCSV{
		Frame:              frame,
		AvgFrameUS:         s.AvgFrame.Microseconds(),
		MinFrameUS:         s.MinFrame.Microseconds(),
		MaxFrameUS:         s.MaxFrame.Microseconds(),
		FPS:                s.FPS,
		UpdateFirePct:      s.PhasePct[PhaseUpdateFire],
		UpdateSmokePct:     s.PhasePct[PhaseUpdateSmoke],
		RenderScenePct:     s.PhasePct[PhaseRenderScene],
		RenderParticlesPct: s.PhasePct[PhaseRenderParticles],
		UIPct:              s.PhasePct[PhaseUI],
		TelemetryPct:       s.PhasePct[PhaseTelemetry],
	}
}
