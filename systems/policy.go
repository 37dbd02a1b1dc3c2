package systems

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// Species identifies a particle effect kind.
type Species uint8

const (
	SpeciesFire Species = iota
	SpeciesSmoke
)

// String returns the lowercase species name used in logs and CSV output.
func (s Species) String() string {
	switch s {
	case SpeciesFire:
		return "fire"
	case SpeciesSmoke:
		return "smoke"
	default:
		return fmt.Sprintf("species(%d)", uint8(s))
	}
}

// GenerationPolicy holds the species-specific rules of a particle pool:
// how particles are spawned, how they are colored by distance from the
// emitter origin, how many slots exist and which slot is recycled when the
// replenishment quota is not met by natural deaths.
//
// Implementations carry no state. All randomness comes from the rng passed
// in by the owning pool, so one policy value can back any number of pools.
type GenerationPolicy interface {
	Species() Species
	Capacity() int
	QuotaPerTick() int
	Spawn(rng *rand.Rand, lifeCoef float32) Particle
	ColorAt(d float32) mgl32.Vec3
	AlphaAt(d float32) float32
	SelectVictim(rng *rand.Rand, particles []Particle) int
}

// Shared policy instances.
var (
	Fire  GenerationPolicy = firePolicy{}
	Smoke GenerationPolicy = smokePolicy{}
)

// PolicyFor returns the policy for a species.
func PolicyFor(s Species) GenerationPolicy {
	switch s {
	case SpeciesFire:
		return Fire
	case SpeciesSmoke:
		return Smoke
	default:
		panic(fmt.Sprintf("systems: no generation policy for %v", s))
	}
}

// Spawn disc geometry shared by both species.
const (
	spawnRadius   = 2.0
	spawnMaxSpeed = 5.0
	lifeJitter    = 0.5
)

// spawnDisc draws a particle on the emitter disc in the XY plane moving
// along +Z. The draw order (jitter, sign, radius, angle, speed) is fixed so
// seeded runs are reproducible.
//
// Life can come out negative when the jitter is subtracted from a particle
// spawned near the rim. Such a particle is already dead and is respawned on
// the next update.
func spawnDisc(rng *rand.Rand, lifeCoef float32) (pos, vel mgl32.Vec3, life float32) {
	jitter := rng.Float32()
	sign := rng.Float32()
	r := rng.Float32()
	phi := rng.Float32() * 2 * math.Pi
	speed := rng.Float32() * spawnMaxSpeed

	realR := spawnRadius * r
	pos = mgl32.Vec3{
		realR * float32(math.Cos(float64(phi))),
		realR * float32(math.Sin(float64(phi))),
		0,
	}
	vel = mgl32.Vec3{0, 0, speed}

	if sign > 0.5 {
		life = lifeCoef*(1-r) + lifeJitter*lifeCoef*jitter
	} else {
		life = lifeCoef*(1-r) - lifeJitter*lifeCoef*jitter
	}
	return pos, vel, life
}

// firePolicy: large pool, white-hot core fading to red, random eviction.
type firePolicy struct{}

func (firePolicy) Species() Species  { return SpeciesFire }
func (firePolicy) Capacity() int     { return 5000 }
func (firePolicy) QuotaPerTick() int { return 100 }

func (f firePolicy) Spawn(rng *rand.Rand, lifeCoef float32) Particle {
	pos, vel, life := spawnDisc(rng, lifeCoef)
	return Particle{
		Position: pos,
		Velocity: vel,
		Color:    f.ColorAt(pos.Len()),
		Life:     life,
		Alpha:    1.0,
	}
}

// ColorAt maps distance to white -> yellow inside the unit radius and
// orange -> red beyond it. Channels are clamped to [0, 1].
func (firePolicy) ColorAt(d float32) mgl32.Vec3 {
	if d < 1 {
		return mgl32.Vec3{1, 1, clampUnit(1 - d)}
	}
	return mgl32.Vec3{1, clampUnit(2 - d), 0}
}

// AlphaAt fades linearly with distance. A value outside [0, 1] collapses to
// fully opaque rather than being clamped to the nearest bound.
func (firePolicy) AlphaAt(d float32) float32 {
	a := 1.0 - d/4 + 0.5
	if a >= 0 && a <= 1 {
		return a
	}
	return 1.0
}

// SelectVictim picks a uniformly random slot regardless of its age.
func (f firePolicy) SelectVictim(rng *rand.Rand, _ []Particle) int {
	n := f.Capacity()
	if n <= 0 {
		panic(fmt.Sprintf("systems: fire policy capacity %d", n))
	}
	return rng.Intn(n)
}

// smokePolicy: small pool of faint gray puffs, oldest-first eviction.
type smokePolicy struct{}

func (smokePolicy) Species() Species  { return SpeciesSmoke }
func (smokePolicy) Capacity() int     { return 100 }
func (smokePolicy) QuotaPerTick() int { return 10 }

func (s smokePolicy) Spawn(rng *rand.Rand, lifeCoef float32) Particle {
	pos, vel, life := spawnDisc(rng, lifeCoef)
	return Particle{
		Position: pos,
		Velocity: vel,
		Color:    s.ColorAt(pos.Len()),
		Life:     life,
		Alpha:    0.02,
	}
}

func (smokePolicy) ColorAt(float32) mgl32.Vec3 {
	return mgl32.Vec3{0.3, 0.3, 0.3}
}

// AlphaAt rises slowly up to three units out, then thins. Only the lower
// bound is clamped.
func (smokePolicy) AlphaAt(d float32) float32 {
	var a float32
	if d/3 >= 1 {
		a = 0.11 - d/3*0.04
	} else {
		a = d / 3 / 30
	}
	if a < 0 {
		return 0
	}
	return a
}

// SelectVictim returns the slot with the lowest life, preferring the first
// on ties.
func (smokePolicy) SelectVictim(_ *rand.Rand, particles []Particle) int {
	if len(particles) == 0 {
		panic("systems: smoke policy victim selection on empty pool")
	}
	index := 0
	minLife := particles[0].Life
	for i := 1; i < len(particles); i++ {
		if particles[i].Life < minLife {
			minLife = particles[i].Life
			index = i
		}
	}
	return index
}

func clampUnit(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
