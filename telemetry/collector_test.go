package telemetry

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/pthm-cable/embers/systems"
)

func newPools(clock systems.Clock) []*systems.ParticlePool {
	rng := rand.New(rand.NewSource(1))
	return []*systems.ParticlePool{
		systems.NewParticlePool(systems.Fire, nil, 0.7, systems.WithClock(clock), systems.WithRand(rng)),
		systems.NewParticlePool(systems.Smoke, nil, 10, systems.WithClock(clock), systems.WithRand(rng)),
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(100 * time.Millisecond)

	for i := 0; i < 5; i++ {
		c.Advance(19 * time.Millisecond)
		if c.ShouldFlush() {
			t.Fatalf("flushed early after %d frames", i+1)
		}
	}
	c.Advance(5 * time.Millisecond)
	if !c.ShouldFlush() {
		t.Fatal("expected flush once the window elapsed")
	}
}

func TestCollectorFlush(t *testing.T) {
	clock := systems.NewStepClock(time.Unix(0, 0))
	pools := newPools(clock)
	c := NewCollector(time.Second)

	c.Record(systems.SpeciesFire, systems.UpdateStats{Natural: 30, Forced: 70, Replenished: true})
	c.Record(systems.SpeciesFire, systems.UpdateStats{Natural: 10})
	c.Record(systems.SpeciesSmoke, systems.UpdateStats{Natural: 2, Forced: 8, Replenished: true})
	c.Advance(500 * time.Millisecond)

	stats := c.Flush(30, pools)
	if len(stats) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stats))
	}

	fire := stats[0]
	if fire.Species != "fire" || fire.Capacity != 5000 {
		t.Errorf("unexpected fire row identity: %+v", fire)
	}
	if fire.Natural != 40 || fire.Forced != 70 || fire.ReplenishTicks != 1 {
		t.Errorf("fire counters = %d/%d/%d, want 40/70/1", fire.Natural, fire.Forced, fire.ReplenishTicks)
	}
	if math.Abs(fire.RespawnRate-220) > 1e-9 {
		t.Errorf("fire respawn rate = %v, want 220", fire.RespawnRate)
	}
	if math.Abs(fire.ForcedShare-70.0/110.0) > 1e-9 {
		t.Errorf("fire forced share = %v", fire.ForcedShare)
	}
	if fire.WindowStart != 0 || fire.WindowEnd != 30 {
		t.Errorf("window = [%d, %d], want [0, 30]", fire.WindowStart, fire.WindowEnd)
	}
	if fire.Alive != pools[0].AliveCount() {
		t.Errorf("alive = %d, want %d", fire.Alive, pools[0].AliveCount())
	}

	smoke := stats[1]
	if smoke.Species != "smoke" || smoke.Natural != 2 || smoke.Forced != 8 {
		t.Errorf("unexpected smoke row: %+v", smoke)
	}
	if smoke.LifeP10 > smoke.LifeP50 || smoke.LifeP50 > smoke.LifeP90 {
		t.Errorf("life percentiles out of order: %v %v %v", smoke.LifeP10, smoke.LifeP50, smoke.LifeP90)
	}

	// Counters reset, sim time keeps accumulating
	c.Advance(500 * time.Millisecond)
	next := c.Flush(60, pools)
	if next[0].Natural != 0 || next[0].Forced != 0 || next[0].RespawnRate != 0 {
		t.Errorf("counters not reset: %+v", next[0])
	}
	if next[0].WindowStart != 30 {
		t.Errorf("window start = %d, want 30", next[0].WindowStart)
	}
	if next[0].SimTimeSec != 1 {
		t.Errorf("sim time = %v, want 1", next[0].SimTimeSec)
	}
}

func TestCollectorWithLivePools(t *testing.T) {
	clock := systems.NewStepClock(time.Unix(0, 0))
	pools := newPools(clock)
	c := NewCollector(time.Second)

	var respawned int
	for frame := 0; frame < 120; frame++ {
		clock.Advance(systems.ReferenceFrameInterval)
		for _, pool := range pools {
			s := pool.Update(0.7)
			c.Record(pool.Species(), s)
			if pool.Species() == systems.SpeciesFire {
				respawned += s.Respawned()
			}
		}
		c.Advance(systems.ReferenceFrameInterval)
	}

	if !c.ShouldFlush() {
		t.Fatal("two seconds of frames should fill a one-second window")
	}
	stats := c.Flush(120, pools)
	if got := stats[0].Natural + stats[0].Forced; got != respawned {
		t.Errorf("collector saw %d fire respawns, pools reported %d", got, respawned)
	}
	if stats[0].ReplenishTicks == 0 {
		t.Error("expected replenish ticks in the window")
	}
}
