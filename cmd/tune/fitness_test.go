package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/embers/config"
	"github.com/pthm-cable/embers/systems"
)

func TestParamVectorNormalize(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{0.7, 10}

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("param %d: roundtrip = %v, want %v", i, back[i], raw[i])
		}
	}

	clamped := pv.Clamp([]float64{-1, 1000})
	if clamped[0] != pv.Specs[0].Min || clamped[1] != pv.Specs[1].Max {
		t.Errorf("Clamp = %v, want [%v %v]", clamped, pv.Specs[0].Min, pv.Specs[1].Max)
	}
}

func TestApplyToConfig(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	pv := NewParamVector()
	pv.ApplyToConfig(cfg, []float64{1.5, 12})

	if cfg.Effects.Fire.LifeCoef != 1.5 {
		t.Errorf("fire life_coef = %v, want 1.5", cfg.Effects.Fire.LifeCoef)
	}
	if cfg.Effects.Smoke.LifeCoef != 12 {
		t.Errorf("smoke life_coef = %v, want 12", cfg.Effects.Smoke.LifeCoef)
	}
	got := pv.FromConfig(cfg)
	if got[0] != 1.5 || got[1] != 12 {
		t.Errorf("FromConfig = %v, want [1.5 12]", got)
	}
}

func TestLogError(t *testing.T) {
	if e := logError(2, 2); e != 0 {
		t.Errorf("logError(2, 2) = %v, want 0", e)
	}
	if a, b := logError(4, 2), logError(1, 2); math.Abs(a-b) > 1e-12 {
		t.Errorf("logError not symmetric in ratio: %v vs %v", a, b)
	}
	if e := logError(0, 2); math.IsInf(e, 0) || math.IsNaN(e) {
		t.Errorf("logError(0, 2) = %v, want finite", e)
	}
}

func TestEvaluateLongerLifeRaisesMean(t *testing.T) {
	targets := map[systems.Species]float64{systems.SpeciesFire: 0.25, systems.SpeciesSmoke: 3}
	fe := NewFitnessEvaluator(NewParamVector(), 180, []int64{1}, targets)

	fe.Evaluate([]float64{0.3, 4})
	short := fe.Last()
	fe.Evaluate([]float64{1.2, 16})
	long := fe.Last()

	for _, s := range []systems.Species{systems.SpeciesFire, systems.SpeciesSmoke} {
		if long[s].LifeMean <= short[s].LifeMean {
			t.Errorf("%v: life mean %v with long coef, want above %v", s, long[s].LifeMean, short[s].LifeMean)
		}
		if short[s].RespawnRate <= 0 {
			t.Errorf("%v: respawn rate %v, want positive", s, short[s].RespawnRate)
		}
	}
}
