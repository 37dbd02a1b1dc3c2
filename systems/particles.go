package systems

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Simulation timing constants. Life and velocity are tuned in units of
// BaseStep per ReferenceFrameInterval of wall-clock time.
const (
	BaseStep               = 0.01
	ReferenceFrameInterval = 16_680_576 * time.Nanosecond
	MinReplenishInterval   = 20_000_000 * time.Nanosecond
)

// Particle is a single fire or smoke sprite. It has no identity beyond its
// slot in the pool.
type Particle struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
	Color    mgl32.Vec3
	Life     float32
	Alpha    float32
}

// Alive reports whether the particle should be drawn.
func (p *Particle) Alive() bool {
	return p.Life > 0
}

// UpdateStats describes what a single Update did.
type UpdateStats struct {
	Natural     int           // dead particles respawned in the pass
	Forced      int           // victims respawned to meet the quota
	Replenished bool          // the replenishment tick fired
	FrameDelta  time.Duration // wall time since the previous update
}

// Respawned returns the total number of particles respawned.
func (s UpdateStats) Respawned() int {
	return s.Natural + s.Forced
}

// PoolTotals holds cumulative counters since construction.
type PoolTotals struct {
	Updates        int64
	Natural        int64
	Forced         int64
	ReplenishTicks int64
}

// ParticlePool owns a fixed number of particles of one species and advances
// them each frame. The particle slice is allocated once from the policy's
// capacity and never grows or shrinks.
type ParticlePool struct {
	particles []Particle
	policy    GenerationPolicy
	textures  []uint32

	clock Clock
	rng   *rand.Rand

	lastFrameTime     time.Time
	lastReplenishTime time.Time

	totals PoolTotals
}

// PoolOption configures a ParticlePool.
type PoolOption func(*ParticlePool)

// WithClock sets the timing source (default SystemClock).
func WithClock(c Clock) PoolOption {
	return func(p *ParticlePool) {
		p.clock = c
	}
}

// WithRand sets the random source (default seeded from the wall clock).
func WithRand(rng *rand.Rand) PoolOption {
	return func(p *ParticlePool) {
		p.rng = rng
	}
}

// NewParticlePool creates a pool filled with freshly spawned particles.
// Panics if the policy reports a non-positive capacity.
func NewParticlePool(policy GenerationPolicy, textures []uint32, initialLifeCoef float32, opts ...PoolOption) *ParticlePool {
	capacity := policy.Capacity()
	if capacity <= 0 {
		panic(fmt.Sprintf("systems: %v pool capacity must be positive, got %d", policy.Species(), capacity))
	}

	p := &ParticlePool{
		policy:   policy,
		textures: append([]uint32(nil), textures...),
		clock:    SystemClock{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	p.particles = make([]Particle, capacity)
	for i := range p.particles {
		p.particles[i] = policy.Spawn(p.rng, initialLifeCoef)
	}

	now := p.clock.Now()
	p.lastFrameTime = now
	p.lastReplenishTime = now
	return p
}

// Update ages, moves and recolors every particle, respawns the dead ones and,
// at most once per MinReplenishInterval, forces extra respawns so that at
// least QuotaPerTick particles are renewed per replenishment tick.
func (p *ParticlePool) Update(lifeCoef float32) UpdateStats {
	now := p.clock.Now()
	dtFrame := now.Sub(p.lastFrameTime)
	dtReplenish := now.Sub(p.lastReplenishTime)

	step := BaseStep / float32(ReferenceFrameInterval) * float32(dtFrame)

	stats := UpdateStats{FrameDelta: dtFrame}
	for i := range p.particles {
		pt := &p.particles[i]
		// Color and alpha use the distance before this frame's move.
		d := pt.Position.Len()
		if pt.Life <= 0 {
			*pt = p.policy.Spawn(p.rng, lifeCoef)
			stats.Natural++
			continue
		}
		pt.Life -= step
		pt.Position = pt.Position.Add(pt.Velocity.Mul(step))
		pt.Color = p.policy.ColorAt(d)
		pt.Alpha = p.policy.AlphaAt(d)
	}

	if dtReplenish > MinReplenishInterval {
		if quota := p.policy.QuotaPerTick(); stats.Natural < quota {
			for n := quota - stats.Natural; n > 0; n-- {
				idx := p.policy.SelectVictim(p.rng, p.particles)
				p.particles[idx] = p.policy.Spawn(p.rng, lifeCoef)
				stats.Forced++
			}
		}
		stats.Replenished = true
		p.lastReplenishTime = now
	}

	p.lastFrameTime = now

	p.totals.Updates++
	p.totals.Natural += int64(stats.Natural)
	p.totals.Forced += int64(stats.Forced)
	if stats.Replenished {
		p.totals.ReplenishTicks++
	}
	return stats
}

// Particles returns the pool's particles for rendering. Callers must not
// modify the returned slice.
func (p *ParticlePool) Particles() []Particle {
	return p.particles
}

// Len returns the pool size, always equal to the policy capacity.
func (p *ParticlePool) Len() int {
	return len(p.particles)
}

// Policy returns the pool's generation policy.
func (p *ParticlePool) Policy() GenerationPolicy {
	return p.policy
}

// Species returns the species of the pool's policy.
func (p *ParticlePool) Species() Species {
	return p.policy.Species()
}

// Textures returns the texture handles supplied at construction.
func (p *ParticlePool) Textures() []uint32 {
	return p.textures
}

// Totals returns cumulative counters since construction.
func (p *ParticlePool) Totals() PoolTotals {
	return p.totals
}

// AliveCount returns the number of particles with positive life.
func (p *ParticlePool) AliveCount() int {
	n := 0
	for i := range p.particles {
		if p.particles[i].Alive() {
			n++
		}
	}
	return n
}

// LifeValues appends the life of every particle to dst and returns it.
// Reuse dst across calls to avoid allocations.
func (p *ParticlePool) LifeValues(dst []float64) []float64 {
	for i := range p.particles {
		dst = append(dst, float64(p.particles[i].Life))
	}
	return dst
}
