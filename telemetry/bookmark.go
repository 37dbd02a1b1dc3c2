package telemetry

import (
	"fmt"
	"log/slog"
	"math"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkQuotaBound  BookmarkType = "quota_bound"
	BookmarkMassDeath   BookmarkType = "mass_death"
	BookmarkRecovery    BookmarkType = "recovery"
	BookmarkSteadyState BookmarkType = "steady_state"
)

// Bookmark marks a window in which a pool did something worth a closer look.
type Bookmark struct {
	Type        BookmarkType `csv:"type" json:"type"`
	Species     string       `csv:"species" json:"species"`
	Frame       int64        `csv:"frame" json:"frame"`
	Description string       `csv:"description" json:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"species", b.Species,
		"frame", b.Frame,
		"description", b.Description,
	)
}

const (
	quotaBoundShare   = 0.5  // forced share above which the quota drives recycling
	massDeathDrop     = 0.3  // alive fraction drop from the recent peak
	recoveryLow       = 0.5  // alive fraction counted as depleted
	recoveryHigh      = 0.9  // alive fraction counted as recovered
	steadyWindows     = 5    // windows needed for steady state
	steadyMaxVariance = 0.05 // max coefficient of variation of alive fraction
)

// BookmarkDetector watches the window stats of one pool.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	recentAlivePeak float64
	depleted        bool
	quotaBound      bool
	steady          bool
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < steadyWindows {
		historySize = steadyWindows
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if b := bd.checkQuotaBound(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}
	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkMassDeath(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkRecovery(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)

	if b := bd.checkSteadyState(stats); b != nil {
		bookmarks = append(bookmarks, *b)
	}

	if stats.AliveFrac > bd.recentAlivePeak {
		bd.recentAlivePeak = stats.AliveFrac
	}
	if stats.AliveFrac < recoveryLow {
		bd.depleted = true
	}

	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkQuotaBound fires when forced respawns start to outnumber natural
// ones, and again only after the share has dropped back below the bound.
func (bd *BookmarkDetector) checkQuotaBound(stats WindowStats) *Bookmark {
	bound := stats.ForcedShare > quotaBoundShare
	defer func() { bd.quotaBound = bound }()
	if !bound || bd.quotaBound {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkQuotaBound,
		Species:     stats.Species,
		Frame:       stats.WindowEnd,
		Description: fmt.Sprintf("%.0f%% of respawns forced by the replenish quota", stats.ForcedShare*100),
	}
}

func (bd *BookmarkDetector) checkMassDeath(stats WindowStats) *Bookmark {
	if bd.recentAlivePeak <= 0 {
		return nil
	}
	drop := (bd.recentAlivePeak - stats.AliveFrac) / bd.recentAlivePeak
	if drop <= massDeathDrop {
		return nil
	}
	b := &Bookmark{
		Type:        BookmarkMassDeath,
		Species:     stats.Species,
		Frame:       stats.WindowEnd,
		Description: fmt.Sprintf("alive fraction fell %.0f%% from %.2f to %.2f", drop*100, bd.recentAlivePeak, stats.AliveFrac),
	}
	// Reset so the same drop is reported once
	bd.recentAlivePeak = stats.AliveFrac
	return b
}

func (bd *BookmarkDetector) checkRecovery(stats WindowStats) *Bookmark {
	if !bd.depleted || stats.AliveFrac < recoveryHigh {
		return nil
	}
	bd.depleted = false
	return &Bookmark{
		Type:        BookmarkRecovery,
		Species:     stats.Species,
		Frame:       stats.WindowEnd,
		Description: fmt.Sprintf("alive fraction back to %.2f", stats.AliveFrac),
	}
}

// checkSteadyState fires once when the last steadyWindows windows have a
// low spread of alive fraction, and rearms when the spread grows again.
func (bd *BookmarkDetector) checkSteadyState(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < steadyWindows {
		return nil
	}
	recent := make([]float64, 0, steadyWindows)
	for i := 1; i <= steadyWindows; i++ {
		idx := (bd.historyIdx - i + bd.historySize) % bd.historySize
		recent = append(recent, history[idx].AliveFrac)
	}
	cv := coefficientOfVariation(recent)

	steady := cv < steadyMaxVariance
	defer func() { bd.steady = steady }()
	if !steady || bd.steady {
		return nil
	}
	return &Bookmark{
		Type:        BookmarkSteadyState,
		Species:     stats.Species,
		Frame:       stats.WindowEnd,
		Description: fmt.Sprintf("alive fraction steady over %d windows (cv=%.3f)", steadyWindows, cv),
	}
}

func coefficientOfVariation(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return math.Inf(1)
	}
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return math.Sqrt(variance) / mean
}
