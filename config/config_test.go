package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pthm-cable/embers/systems"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Effects.Fire.LifeCoef != 0.7 || cfg.Effects.Smoke.LifeCoef != 10 {
		t.Errorf("life coefficients = %v/%v, want 0.7/10", cfg.Effects.Fire.LifeCoef, cfg.Effects.Smoke.LifeCoef)
	}
	if cfg.Effects.Fire.Size != 0.25 || cfg.Effects.Smoke.Size != 2 {
		t.Errorf("sizes = %v/%v, want 0.25/2", cfg.Effects.Fire.Size, cfg.Effects.Smoke.Size)
	}
	if cfg.Camera.ZoomSensitivity != 50 {
		t.Errorf("zoom sensitivity = %d, want 50", cfg.Camera.ZoomSensitivity)
	}
	if cfg.Derived.InitialLifeCoef != 0.7 {
		t.Errorf("derived initial life = %v, want 0.7", cfg.Derived.InitialLifeCoef)
	}
	if cfg.Derived.ReferenceStep != systems.ReferenceFrameInterval {
		t.Errorf("reference step = %v, want %v", cfg.Derived.ReferenceStep, systems.ReferenceFrameInterval)
	}
	if cfg.Derived.StatsWindowDur != time.Second {
		t.Errorf("stats window = %v, want 1s", cfg.Derived.StatsWindowDur)
	}
	if cfg.Telemetry.BookmarkHistorySize != 10 || !cfg.Telemetry.SnapshotOnBookmark {
		t.Errorf("bookmarks = %d/%v, want 10/true", cfg.Telemetry.BookmarkHistorySize, cfg.Telemetry.SnapshotOnBookmark)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "override.yaml")
	overlay := []byte("effects:\n  smoke:\n    life_coef: 4.5\ncamera:\n  zoom_sensitivity: 80\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Effects.Smoke.LifeCoef != 4.5 {
		t.Errorf("smoke life = %v, want 4.5", cfg.Effects.Smoke.LifeCoef)
	}
	if cfg.Camera.ZoomSensitivity != 80 {
		t.Errorf("zoom sensitivity = %d, want 80", cfg.Camera.ZoomSensitivity)
	}
	// Untouched fields keep their defaults
	if cfg.Effects.Smoke.Size != 2 || cfg.Effects.Fire.LifeCoef != 0.7 {
		t.Errorf("defaults lost: smoke size %v, fire life %v", cfg.Effects.Smoke.Size, cfg.Effects.Fire.LifeCoef)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		overlay string
	}{
		{"sensitivity above range", "camera:\n  zoom_sensitivity: 150\n"},
		{"inverted pitch limits", "camera:\n  min_pitch: 10\n  max_pitch: -10\n"},
		{"zero stats window", "telemetry:\n  stats_window: 0\n"},
		{"zero width", "screen:\n  width: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.yaml")
			if err := os.WriteFile(path, []byte(tt.overlay), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestEffectsFor(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	cfg.Effects.For(systems.SpeciesSmoke).LifeCoef = 3
	if cfg.Effects.Smoke.LifeCoef != 3 {
		t.Error("For should return a pointer into the config")
	}
	if cfg.Effects.For(systems.SpeciesFire) != &cfg.Effects.Fire {
		t.Error("For(fire) returned the wrong section")
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	cfg.Effects.Fire.LifeCoef = 1.25

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if back.Effects.Fire.LifeCoef != 1.25 {
		t.Errorf("fire life = %v, want 1.25", back.Effects.Fire.LifeCoef)
	}
}

func TestCfgPanicsBeforeInit(t *testing.T) {
	saved := global
	global = nil
	defer func() {
		global = saved
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	Cfg()
}
