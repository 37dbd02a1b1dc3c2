package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayFire        OverlayID = "fire"
	OverlaySmoke       OverlayID = "smoke"
	OverlayPlane       OverlayID = "plane"
	OverlayEnvironment OverlayID = "environment"
	OverlayHUD         OverlayID = "hud"
	OverlaySettings    OverlayID = "settings"
	OverlayTiming      OverlayID = "timing"
	OverlayControls    OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID          OverlayID // Unique identifier
	Name        string    // Display name
	Description string    // What this overlay shows
	Key         int32     // Keyboard key to toggle (0 = no key)
	KeyLabel    string    // Key label for display (e.g., "S", "F3")
	Category    string    // Grouping ("effects", "scene", "panels")
	Default     bool      // Enabled at startup
}

// OverlayRegistry manages overlay state and metadata.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	byID        map[OverlayID]OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with default overlays.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{
		byID:    make(map[OverlayID]OverlayDescriptor),
		enabled: make(map[OverlayID]bool),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds standard overlays.
func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID: OverlayFire, Name: "Fire", Description: "Fire particle pass",
		Key: rl.KeyF, KeyLabel: "F", Category: "effects", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlaySmoke, Name: "Smoke", Description: "Smoke particle pass",
		Key: rl.KeyS, KeyLabel: "S", Category: "effects", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayPlane, Name: "Ground plane", Description: "Textured plane under the emitter",
		Key: rl.KeyG, KeyLabel: "G", Category: "scene", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayEnvironment, Name: "Environment", Description: "Environment cube",
		Key: rl.KeyE, KeyLabel: "E", Category: "scene", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayHUD, Name: "HUD", Description: "Frame counter and pool bars",
		Key: rl.KeyH, KeyLabel: "H", Category: "panels", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlaySettings, Name: "Settings", Description: "Camera and effect sliders",
		Key: rl.KeyTab, KeyLabel: "Tab", Category: "panels", Default: true,
	})
	r.Register(OverlayDescriptor{
		ID: OverlayTiming, Name: "Frame timing", Description: "Per-phase frame timings",
		Key: rl.KeyF3, KeyLabel: "F3", Category: "panels",
	})
	r.Register(OverlayDescriptor{
		ID: OverlayControls, Name: "Overlays", Description: "This list",
		Key: rl.KeyF1, KeyLabel: "F1", Category: "panels",
	})
}

// Register adds an overlay to the registry in its default state.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
	r.byID[desc.ID] = desc
	r.enabled[desc.ID] = desc.Default
}

// Toggle switches an overlay on/off and returns the new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	if _, ok := r.byID[id]; !ok {
		return false
	}
	r.enabled[id] = !r.enabled[id]
	return r.enabled[id]
}

// IsEnabled returns whether an overlay is active.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// ByCategory returns overlays filtered by category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var result []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			result = append(result, desc)
		}
	}
	return result
}

// Categories returns all unique categories in order.
func (r *OverlayRegistry) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, desc := range r.descriptors {
		if !seen[desc.Category] {
			seen[desc.Category] = true
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress checks if a key corresponds to an overlay toggle.
// Returns the overlay ID and new state if a toggle occurred.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	for _, desc := range r.descriptors {
		if desc.Key == key {
			newState := r.Toggle(desc.ID)
			return desc.ID, newState, true
		}
	}
	return "", false, false
}

// EnabledOverlays returns the currently enabled overlay IDs in registration
// order.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var result []OverlayID
	for _, desc := range r.descriptors {
		if r.enabled[desc.ID] {
			result = append(result, desc.ID)
		}
	}
	return result
}
