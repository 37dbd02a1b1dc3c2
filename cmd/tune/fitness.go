package main

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/pthm-cable/embers/systems"
	"github.com/pthm-cable/embers/telemetry"
)

// warmupWindows are discarded so the initial fill does not skew the averages.
const warmupWindows = 1

// Measurement holds the window averages of one species.
type Measurement struct {
	LifeMean    float64 // mean particle life, dead slots included
	RespawnRate float64 // respawns per second
}

// FitnessEvaluator runs headless pools and scores how close their mean
// particle life comes to the targets. Respawn rates are measured too but
// are dominated by the replenishment quota at long lifetimes, so they are
// reported and not optimized.
type FitnessEvaluator struct {
	params  *ParamVector
	frames  int
	seeds   []int64
	targets map[systems.Species]float64 // mean life
	window  time.Duration

	mu   sync.Mutex
	last map[systems.Species]Measurement
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, frames int, seeds []int64, targets map[systems.Species]float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:  params,
		frames:  frames,
		seeds:   seeds,
		targets: targets,
		window:  time.Second,
		last:    make(map[systems.Species]Measurement),
	}
}

// Last returns the measurements of the most recent evaluation.
func (fe *FitnessEvaluator) Last() map[systems.Species]Measurement {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	out := make(map[systems.Species]Measurement, len(fe.last))
	for k, v := range fe.last {
		out[k] = v
	}
	return out
}

// Evaluate returns the squared log error between measured and target mean
// life, averaged over seeds (lower = better). x holds raw values.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	values := fe.params.Clamp(x)

	runs := make([]map[systems.Species]Measurement, len(fe.seeds))
	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			runs[idx] = fe.run(values, s)
		}(i, seed)
	}
	wg.Wait()

	n := float64(len(runs))
	mean := make(map[systems.Species]Measurement)
	for _, r := range runs {
		for s, m := range r {
			acc := mean[s]
			acc.LifeMean += m.LifeMean / n
			acc.RespawnRate += m.RespawnRate / n
			mean[s] = acc
		}
	}

	var fitness float64
	for s, target := range fe.targets {
		fitness += logError(mean[s].LifeMean, target)
	}

	fe.mu.Lock()
	fe.last = mean
	fe.mu.Unlock()
	return fitness
}

// logError is the squared log ratio of got to want. A non-positive value
// scores as a ratio of 1e-6.
func logError(got, want float64) float64 {
	if got <= 0 {
		got = want * 1e-6
	}
	d := math.Log(got / want)
	return d * d
}

// run drives one pool per parameter for the configured number of frames at
// the reference frame interval and returns the window averages per species.
func (fe *FitnessEvaluator) run(values []float64, seed int64) map[systems.Species]Measurement {
	clock := systems.NewStepClock(time.Unix(0, 0))
	rng := rand.New(rand.NewSource(seed))

	pools := make([]*systems.ParticlePool, len(fe.params.Specs))
	for i, spec := range fe.params.Specs {
		pools[i] = systems.NewParticlePool(
			systems.PolicyFor(spec.Species),
			nil,
			float32(values[i]),
			systems.WithClock(clock),
			systems.WithRand(rand.New(rand.NewSource(rng.Int63()))),
		)
	}

	collector := telemetry.NewCollector(fe.window)
	sums := make(map[systems.Species]Measurement)
	windows := 0

	for frame := int64(1); frame <= int64(fe.frames); frame++ {
		clock.Advance(systems.ReferenceFrameInterval)
		for i, pool := range pools {
			collector.Record(pool.Species(), pool.Update(float32(values[i])))
		}
		collector.Advance(systems.ReferenceFrameInterval)

		if !collector.ShouldFlush() {
			continue
		}
		stats := collector.Flush(frame, pools)
		windows++
		if windows <= warmupWindows {
			continue
		}
		for i, ws := range stats {
			acc := sums[pools[i].Species()]
			acc.LifeMean += ws.LifeMean
			acc.RespawnRate += ws.RespawnRate
			sums[pools[i].Species()] = acc
		}
	}

	counted := float64(windows - warmupWindows)
	out := make(map[systems.Species]Measurement, len(sums))
	if counted <= 0 {
		return out
	}
	for s, m := range sums {
		out[s] = Measurement{LifeMean: m.LifeMean / counted, RespawnRate: m.RespawnRate / counted}
	}
	return out
}
