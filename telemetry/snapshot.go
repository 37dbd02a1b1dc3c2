package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pthm-cable/embers/systems"
)

// SnapshotVersion is incremented when the format changes.
const SnapshotVersion = 1

// Snapshot holds the state of every pool at one frame.
type Snapshot struct {
	Version int   `json:"version"`
	RNGSeed int64 `json:"rng_seed"`
	Frame   int64 `json:"frame"`

	Pools []PoolState `json:"pools"`

	Bookmark *Bookmark `json:"bookmark,omitempty"`
}

// PoolState holds one pool's counters and particles.
type PoolState struct {
	Species   string          `json:"species"`
	LifeCoef  float32         `json:"life_coef"`
	Totals    PoolTotalsJSON  `json:"totals"`
	Particles []ParticleState `json:"particles"`
}

// PoolTotalsJSON mirrors systems.PoolTotals with JSON tags.
type PoolTotalsJSON struct {
	Updates        int64 `json:"updates"`
	Natural        int64 `json:"natural"`
	Forced         int64 `json:"forced"`
	ReplenishTicks int64 `json:"replenish_ticks"`
}

// ParticleState holds one particle slot.
type ParticleState struct {
	Position [3]float32 `json:"pos"`
	Velocity [3]float32 `json:"vel"`
	Color    [3]float32 `json:"color"`
	Life     float32    `json:"life"`
	Alpha    float32    `json:"alpha"`
}

// CapturePool copies the state of a pool. lifeCoef is the coefficient the
// pool is currently updated with.
func CapturePool(pool *systems.ParticlePool, lifeCoef float32) PoolState {
	totals := pool.Totals()
	state := PoolState{
		Species:  pool.Species().String(),
		LifeCoef: lifeCoef,
		Totals: PoolTotalsJSON{
			Updates:        totals.Updates,
			Natural:        totals.Natural,
			Forced:         totals.Forced,
			ReplenishTicks: totals.ReplenishTicks,
		},
	}

	particles := pool.Particles()
	state.Particles = make([]ParticleState, len(particles))
	for i, p := range particles {
		state.Particles[i] = ParticleState{
			Position: p.Position,
			Velocity: p.Velocity,
			Color:    p.Color,
			Life:     p.Life,
			Alpha:    p.Alpha,
		}
	}
	return state
}

// AliveCount returns the number of live particles in the snapshot.
func (s PoolState) AliveCount() int {
	n := 0
	for _, p := range s.Particles {
		if p.Life > 0 {
			n++
		}
	}
	return n
}

// SaveSnapshot writes a snapshot to disk.
// Returns the filepath where it was saved.
func SaveSnapshot(snapshot *Snapshot, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	name := fmt.Sprintf("snapshot_%d", snapshot.Frame)
	if snapshot.Bookmark != nil {
		sanitized := strings.ReplaceAll(string(snapshot.Bookmark.Type), " ", "_")
		name = fmt.Sprintf("snapshot_%d_%s_%s", snapshot.Frame, snapshot.Bookmark.Species, sanitized)
	}
	name += ".json"

	path := filepath.Join(dir, name)

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	return path, nil
}

// LoadSnapshot reads a snapshot from disk.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	if snapshot.Version != SnapshotVersion {
		return nil, fmt.Errorf("snapshot version %d, want %d", snapshot.Version, SnapshotVersion)
	}

	return &snapshot, nil
}
