package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/pthm-cable/embers/config"
)

// csvFile is an output CSV that writes its header with the first batch.
type csvFile struct {
	f             *os.File
	headerWritten bool
}

// write appends records, which must be a slice of csv-tagged structs.
func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// OutputManager handles structured run output with CSV logging.
type OutputManager struct {
	dir       string
	telemetry *csvFile
	perf      *csvFile
	bookmarks *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	telemetryFile, err := os.Create(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		return nil, fmt.Errorf("creating telemetry.csv: %w", err)
	}
	perfFile, err := os.Create(filepath.Join(dir, "perf.csv"))
	if err != nil {
		telemetryFile.Close()
		return nil, fmt.Errorf("creating perf.csv: %w", err)
	}
	bookmarkFile, err := os.Create(filepath.Join(dir, "bookmarks.csv"))
	if err != nil {
		telemetryFile.Close()
		perfFile.Close()
		return nil, fmt.Errorf("creating bookmarks.csv: %w", err)
	}

	return &OutputManager{
		dir:       dir,
		telemetry: &csvFile{f: telemetryFile},
		perf:      &csvFile{f: perfFile},
		bookmarks: &csvFile{f: bookmarkFile},
	}, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry writes one row per species to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats []WindowStats) error {
	if om == nil || len(stats) == 0 {
		return nil
	}
	if err := om.telemetry.write(stats); err != nil {
		return fmt.Errorf("writing telemetry: %w", err)
	}
	return nil
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, frame int64) error {
	if om == nil {
		return nil
	}
	records := []PerfStatsCSV{stats.ToCSV(frame)}
	if err := om.perf.write(records); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteBookmarks appends bookmarks to bookmarks.csv.
func (om *OutputManager) WriteBookmarks(bookmarks []Bookmark) error {
	if om == nil || len(bookmarks) == 0 {
		return nil
	}
	if err := om.bookmarks.write(bookmarks); err != nil {
		return fmt.Errorf("writing bookmarks: %w", err)
	}
	return nil
}

// SaveSnapshot writes a snapshot under the snapshots subdirectory.
func (om *OutputManager) SaveSnapshot(snapshot *Snapshot) (string, error) {
	if om == nil {
		return "", nil
	}
	return SaveSnapshot(snapshot, filepath.Join(om.dir, "snapshots"))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.telemetry, om.perf, om.bookmarks} {
		if c == nil || c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
