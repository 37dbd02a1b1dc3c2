package main

import (
	"github.com/pthm-cable/embers/config"
	"github.com/pthm-cable/embers/systems"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string          // Human-readable name
	Path    string          // Config path for logging
	Species systems.Species // Effect the parameter belongs to
	Min     float64         // Lower bound
	Max     float64         // Upper bound
}

// ParamVector holds the set of tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the life coefficient parameters of both effects.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "fire_life_coef", Path: "effects.fire.life_coef", Species: systems.SpeciesFire, Min: 0.05, Max: 5},
			{Name: "smoke_life_coef", Path: "effects.smoke.life_coef", Species: systems.SpeciesSmoke, Min: 0.5, Max: 40},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// FromConfig reads the current parameter values from a config.
func (pv *ParamVector) FromConfig(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = cfg.Effects.For(spec.Species).LifeCoef
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig writes clamped parameter values into cfg.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	clamped := pv.Clamp(values)
	for i, spec := range pv.Specs {
		cfg.Effects.For(spec.Species).LifeCoef = clamped[i]
	}
}
