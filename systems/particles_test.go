package systems

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

var testEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func newTestPool(policy GenerationPolicy, seed int64) (*ParticlePool, *StepClock) {
	clock := NewStepClock(testEpoch)
	pool := NewParticlePool(policy, []uint32{7}, 0.7,
		WithClock(clock),
		WithRand(rand.New(rand.NewSource(seed))),
	)
	return pool, clock
}

// setAll overwrites every particle with a slow riser of the given life.
// Particles that survive an update end up above the emitter plane, fresh
// spawns sit on it.
func setAll(pool *ParticlePool, life float32) {
	for i := range pool.particles {
		pool.particles[i] = Particle{
			Position: mgl32.Vec3{0.5, 0, 0},
			Velocity: mgl32.Vec3{0, 0, 1},
			Life:     life,
		}
	}
}

type zeroCapacityPolicy struct {
	GenerationPolicy
}

func (zeroCapacityPolicy) Capacity() int { return 0 }

func TestNewParticlePoolFillsCapacity(t *testing.T) {
	for _, policy := range []GenerationPolicy{Fire, Smoke} {
		pool, _ := newTestPool(policy, 1)
		if pool.Len() != policy.Capacity() {
			t.Errorf("%v pool size = %d, want %d", policy.Species(), pool.Len(), policy.Capacity())
		}
		if pool.Species() != policy.Species() {
			t.Errorf("pool species = %v, want %v", pool.Species(), policy.Species())
		}
		if len(pool.Textures()) != 1 || pool.Textures()[0] != 7 {
			t.Errorf("textures = %v, want [7]", pool.Textures())
		}
		if !pool.lastFrameTime.Equal(testEpoch) || !pool.lastReplenishTime.Equal(testEpoch) {
			t.Error("timestamps not taken from the clock at construction")
		}
	}
}

func TestNewParticlePoolPanicsOnZeroCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for zero capacity")
		}
	}()
	NewParticlePool(zeroCapacityPolicy{Fire}, nil, 0.7)
}

func TestPoolSizeInvariant(t *testing.T) {
	pool, clock := newTestPool(Smoke, 2)
	for frame := 0; frame < 500; frame++ {
		clock.Advance(time.Duration(frame%7+1) * 5 * time.Millisecond)
		pool.Update(10)
		if pool.Len() != Smoke.Capacity() || cap(pool.particles) != Smoke.Capacity() {
			t.Fatalf("frame %d: len=%d cap=%d, want %d", frame, pool.Len(), cap(pool.particles), Smoke.Capacity())
		}
	}
}

func TestUpdateRespawnsDeadParticles(t *testing.T) {
	pool, clock := newTestPool(Fire, 3)
	setAll(pool, 1)
	dead := []int{0, 10, 4999}
	pool.particles[0].Life = 0
	pool.particles[10].Life = -0.2
	pool.particles[4999].Life = -5

	clock.Advance(time.Millisecond)
	stats := pool.Update(0.7)

	if stats.Natural != len(dead) {
		t.Errorf("natural respawns = %d, want %d", stats.Natural, len(dead))
	}
	for _, i := range dead {
		p := pool.particles[i]
		// Freshly spawned particles sit on the emitter disc.
		if p.Position.Z() != 0 || p.Position.Len() > spawnRadius+1e-5 {
			t.Errorf("slot %d not respawned: %+v", i, p)
		}
		if p.Alpha != 1.0 {
			t.Errorf("slot %d alpha = %v, want spawn alpha 1.0", i, p.Alpha)
		}
	}
}

func TestUpdateAgesAndMoves(t *testing.T) {
	// All deltas stay under MinReplenishInterval so no slot is recycled.
	tests := []struct {
		name string
		dt   time.Duration
		life float32
		z    float32
	}{
		{"reference frame", ReferenceFrameInterval, 0.99, 1},
		{"half frame", ReferenceFrameInterval / 2, 0.995, 0.5},
		{"zero delta", 0, 1, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, clock := newTestPool(Fire, 4)
			setAll(pool, 1)
			pool.particles[0].Velocity = mgl32.Vec3{0, 0, 100}

			clock.Advance(tt.dt)
			stats := pool.Update(0.7)

			if stats.FrameDelta != tt.dt {
				t.Errorf("frame delta = %v, want %v", stats.FrameDelta, tt.dt)
			}
			if stats.Replenished {
				t.Fatal("replenish fired below the interval")
			}
			p := pool.particles[0]
			if !approxEqual(p.Life, tt.life, 1e-5) {
				t.Errorf("life = %v, want %v", p.Life, tt.life)
			}
			if !approxEqual(p.Position.Z(), tt.z, 1e-4) {
				t.Errorf("z = %v, want %v", p.Position.Z(), tt.z)
			}
		})
	}
}

func TestUpdateColorsFromPreStepDistance(t *testing.T) {
	pool, clock := newTestPool(Fire, 5)
	setAll(pool, 10)
	pool.particles[0].Position = mgl32.Vec3{3, 0, 0}
	pool.particles[0].Velocity = mgl32.Vec3{0, 0, 100}

	clock.Advance(ReferenceFrameInterval)
	pool.Update(0.7)

	p := pool.particles[0]
	if p.Position.Len() <= 3.1 {
		t.Fatalf("particle did not move: %v", p.Position)
	}
	if want := Fire.AlphaAt(3); !approxEqual(p.Alpha, want, 1e-6) {
		t.Errorf("alpha = %v, want %v (pre-step distance)", p.Alpha, want)
	}
	if post := Fire.AlphaAt(p.Position.Len()); approxEqual(p.Alpha, post, 1e-4) {
		t.Errorf("alpha %v matches post-step distance", p.Alpha)
	}
}

func TestReplenishmentThrottled(t *testing.T) {
	pool, clock := newTestPool(Smoke, 6)
	setAll(pool, 100)

	for i := 0; i < 4; i++ {
		clock.Advance(5 * time.Millisecond)
		stats := pool.Update(10)
		if stats.Forced != 0 || stats.Replenished {
			t.Fatalf("update %d: forced=%d replenished=%v before interval elapsed", i, stats.Forced, stats.Replenished)
		}
	}

	// 20ms exactly is not past the interval.
	if pool.Totals().ReplenishTicks != 0 {
		t.Fatalf("replenish ticks = %d, want 0", pool.Totals().ReplenishTicks)
	}

	clock.Advance(time.Millisecond)
	stats := pool.Update(10)
	if !stats.Replenished {
		t.Fatal("expected replenishment after 21ms")
	}
	if stats.Forced != Smoke.QuotaPerTick() {
		t.Errorf("forced = %d, want %d", stats.Forced, Smoke.QuotaPerTick())
	}
	if !pool.lastReplenishTime.Equal(clock.Now()) {
		t.Error("lastReplenishTime not reset")
	}
}

func TestReplenishmentTopsUpShortfall(t *testing.T) {
	pool, clock := newTestPool(Fire, 7)
	setAll(pool, 100)
	for i := 0; i < 30; i++ {
		pool.particles[i].Life = 0
	}

	clock.Advance(25 * time.Millisecond)
	stats := pool.Update(0.7)

	if stats.Natural != 30 {
		t.Errorf("natural = %d, want 30", stats.Natural)
	}
	if stats.Forced != Fire.QuotaPerTick()-30 {
		t.Errorf("forced = %d, want %d", stats.Forced, Fire.QuotaPerTick()-30)
	}
	if stats.Respawned() != Fire.QuotaPerTick() {
		t.Errorf("respawned = %d, want %d", stats.Respawned(), Fire.QuotaPerTick())
	}
}

func TestReplenishmentSkippedWhenQuotaMet(t *testing.T) {
	pool, clock := newTestPool(Smoke, 8)
	setAll(pool, 0)

	clock.Advance(25 * time.Millisecond)
	stats := pool.Update(10)

	if stats.Natural != Smoke.Capacity() {
		t.Errorf("natural = %d, want %d", stats.Natural, Smoke.Capacity())
	}
	if stats.Forced != 0 {
		t.Errorf("forced = %d, want 0", stats.Forced)
	}
	if !stats.Replenished {
		t.Error("replenish tick should still fire and reset its timer")
	}
}

func TestSmokeForcedRespawnEvictsOldest(t *testing.T) {
	pool, clock := newTestPool(Smoke, 9)
	setAll(pool, 50)
	pool.particles[57].Life = 0.5

	clock.Advance(25 * time.Millisecond)
	stats := pool.Update(10)
	if stats.Forced != Smoke.QuotaPerTick() {
		t.Fatalf("forced = %d, want %d", stats.Forced, Smoke.QuotaPerTick())
	}
	if pool.particles[57].Position.Z() != 0 {
		t.Errorf("oldest slot was not recycled: %+v", pool.particles[57])
	}
}

func TestAliveCountAndLifeValues(t *testing.T) {
	pool, _ := newTestPool(Smoke, 10)
	setAll(pool, 1)
	pool.particles[0].Life = 0
	pool.particles[1].Life = -1

	if got := pool.AliveCount(); got != Smoke.Capacity()-2 {
		t.Errorf("AliveCount = %d, want %d", got, Smoke.Capacity()-2)
	}
	values := pool.LifeValues(nil)
	if len(values) != Smoke.Capacity() || values[1] != -1 {
		t.Errorf("LifeValues len=%d first=%v", len(values), values[:2])
	}
}

func TestFireEndToEnd(t *testing.T) {
	const frames = 1000
	pool, clock := newTestPool(Fire, 12)

	var total int
	var ticks int
	for frame := 0; frame < frames; frame++ {
		clock.Advance(ReferenceFrameInterval)
		stats := pool.Update(0.7)
		total += stats.Respawned()
		if stats.Replenished {
			ticks++
		}
		if pool.Len() != Fire.Capacity() {
			t.Fatalf("frame %d: pool size %d", frame, pool.Len())
		}
	}

	for i, p := range pool.Particles() {
		if math.IsNaN(float64(p.Life)) || math.IsInf(float64(p.Life), 0) {
			t.Fatalf("particle %d has non-finite life %v", i, p.Life)
		}
	}

	// The replenish gate opens every second frame at the reference rate.
	if ticks < frames/2-1 {
		t.Errorf("replenish ticks = %d, want about %d", ticks, frames/2)
	}
	if minTotal := ticks * Fire.QuotaPerTick(); total < minTotal {
		t.Errorf("total respawns = %d, want >= %d", total, minTotal)
	}
	totals := pool.Totals()
	if totals.Updates != frames || int(totals.Natural+totals.Forced) != total {
		t.Errorf("totals = %+v, want %d updates and %d respawns", totals, frames, total)
	}
}

func TestSmokeMassDeath(t *testing.T) {
	pool, clock := newTestPool(Smoke, 13)
	setAll(pool, 0.001)

	// 10ms ages every particle by ~0.006, past zero, without opening the
	// replenish gate.
	clock.Advance(10 * time.Millisecond)
	first := pool.Update(10)
	if first.Natural != 0 || first.Forced != 0 {
		t.Fatalf("first update respawned %+v, want none", first)
	}
	if alive := pool.AliveCount(); alive != 0 {
		t.Fatalf("alive after kill = %d, want 0", alive)
	}

	clock.Advance(10 * time.Millisecond)
	second := pool.Update(10)
	if second.Natural != Smoke.Capacity() {
		t.Errorf("natural respawns = %d, want %d", second.Natural, Smoke.Capacity())
	}
	if second.Forced != 0 || second.Replenished {
		t.Errorf("unexpected top-up: %+v", second)
	}
}
