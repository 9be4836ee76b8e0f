package vfx

import (
	"math/rand"
	"testing"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

func newSwarmFixture(t *testing.T) (*SwarmSystem, *scene.Scene, *testWorld) {
	t.Helper()
	cfg := testConfig(t)
	sc := scene.New()
	return NewSwarmSystem(cfg, sc, rand.New(rand.NewSource(9))), sc, newTestWorld()
}

func TestSwarmActorPartsBuilt(t *testing.T) {
	ss, sc, tw := newSwarmFixture(t)
	_, id := tw.addSwarm(geom.V3(0, 0, 0), 30, 100)

	ss.Sync(tw.view, 0)

	a, ok := ss.actor(id)
	if !ok {
		t.Fatal("actor not built")
	}
	if a.shell == nil || a.storm == nil || a.orbiters == nil {
		t.Error("core parts should exist from creation")
	}
	if a.auraRing != nil || a.auraPoints != nil {
		t.Error("aura parts must not exist at base energy")
	}
	// shell + storm + orbiters
	if sc.Len() != 3 {
		t.Errorf("expected 3 scene nodes, got %d", sc.Len())
	}
}

func TestSwarmAuraAppearsWithAbsorbedEnergy(t *testing.T) {
	ss, _, tw := newSwarmFixture(t)
	e, id := tw.addSwarm(geom.V3(0, 0, 0), 30, 100)

	ss.Sync(tw.view, 0)
	a, _ := ss.actor(id)
	if a.auraRing != nil {
		t.Fatal("no aura expected at base energy")
	}

	// 50 absorbed: raw count 50/50 = 1 clamps up to the minimum of 3.
	tw.energyMap.Get(e).Value = 150
	ss.Sync(tw.view, 0)
	if a.auraRing == nil || a.auraPool == nil {
		t.Fatal("aura should exist once energy exceeds the base")
	}
	if a.auraPool.Active != 3 {
		t.Errorf("expected minimum aura count 3, got %d", a.auraPool.Active)
	}

	// Far past saturation: count clamps at the maximum.
	tw.energyMap.Get(e).Value = 100 + 50*100
	ss.Sync(tw.view, 0)
	if a.auraPool.Active != 24 {
		t.Errorf("expected aura cap 24, got %d", a.auraPool.Active)
	}
}

func TestSwarmAuraRemovedWhenEnergyReturnsToBase(t *testing.T) {
	ss, sc, tw := newSwarmFixture(t)
	e, id := tw.addSwarm(geom.V3(0, 0, 0), 30, 250)

	ss.Sync(tw.view, 0)
	a, _ := ss.actor(id)
	if a.auraRing == nil {
		t.Fatal("expected aura at 150 absorbed")
	}
	before := sc.Disposals

	tw.energyMap.Get(e).Value = 100
	ss.Sync(tw.view, 0)

	if a.auraRing != nil || a.auraPoints != nil || a.auraPool != nil {
		t.Error("aura parts should be disposed when absorbed drops to zero")
	}
	if sc.Disposals != before+2 {
		t.Errorf("expected 2 disposals (ring + points), got %d", sc.Disposals-before)
	}
}

func TestSwarmStormHysteresis(t *testing.T) {
	ss, _, tw := newSwarmFixture(t)
	e, id := tw.addSwarm(geom.V3(0, 0, 0), 30, 100)

	ss.Sync(tw.view, 0)
	a, _ := ss.actor(id)
	if a.stormCount != 40 || a.stormPool.Active != 40 {
		t.Fatalf("expected base storm count 40, got %d/%d", a.stormCount, a.stormPool.Active)
	}

	// 10 absorbed wants 42; a delta of 2 is below the threshold of 4.
	tw.energyMap.Get(e).Value = 110
	ss.Sync(tw.view, 0)
	if a.stormCount != 40 {
		t.Errorf("small delta must not resize, got %d", a.stormCount)
	}

	// 40 absorbed wants 48; delta 8 clears the threshold.
	tw.energyMap.Get(e).Value = 140
	ss.Sync(tw.view, 0)
	if a.stormCount != 48 || a.stormPool.Active != 48 {
		t.Errorf("expected resize to 48, got %d/%d", a.stormCount, a.stormPool.Active)
	}

	// Shrinking back follows the same rule.
	tw.energyMap.Get(e).Value = 100
	ss.Sync(tw.view, 0)
	if a.stormCount != 40 {
		t.Errorf("expected shrink back to 40, got %d", a.stormCount)
	}
}

func TestSwarmStormCountClampsAtMax(t *testing.T) {
	ss, _, tw := newSwarmFixture(t)
	e, id := tw.addSwarm(geom.V3(0, 0, 0), 30, 100)

	ss.Sync(tw.view, 0)
	tw.energyMap.Get(e).Value = 100 + 5*10000
	ss.Sync(tw.view, 0)

	a, _ := ss.actor(id)
	if a.stormCount != 400 || a.stormPool.Active != 400 {
		t.Errorf("storm count should clamp at 400, got %d/%d", a.stormCount, a.stormPool.Active)
	}
}

func TestSwarmDisabledFreezesParticles(t *testing.T) {
	ss, _, tw := newSwarmFixture(t)
	e, id := tw.addSwarm(geom.V3(0, 0, 0), 30, 100)

	tw.swMap.Get(e).DisabledUntil = 10
	ss.Sync(tw.view, 5) // now < disabled-until
	ss.Interpolate(1.0 / 60.0)

	a, _ := ss.actor(id)
	snapshot := make([]geom.Vec3, a.stormPool.Active)
	copy(snapshot, a.stormPool.Pos[:a.stormPool.Active])

	for i := 0; i < 30; i++ {
		ss.UpdateAnimations(1.0 / 60.0)
	}
	for i, p := range snapshot {
		if a.stormPool.Pos[i] != p {
			t.Fatalf("particle %d moved while disabled", i)
		}
	}

	// Past the timestamp the freeze lifts.
	ss.Sync(tw.view, 11)
	ss.UpdateAnimations(1.0 / 60.0)
	moved := false
	for i, p := range snapshot {
		if a.stormPool.Pos[i] != p {
			moved = true
			break
		}
	}
	if !moved {
		t.Error("particles should resume once the disable expires")
	}
}

func TestSwarmInterpolateMovesAllParts(t *testing.T) {
	ss, _, tw := newSwarmFixture(t)
	_, id := tw.addSwarm(geom.V3(60, -40, 0), 30, 250)

	ss.Sync(tw.view, 0)
	ss.Interpolate(1.0 / 60.0)

	a, _ := ss.actor(id)
	want := geom.V3(60, -40, 0)
	if a.pos != want {
		t.Fatalf("first interpolate should snap, got %v", a.pos)
	}
	for _, n := range []*scene.Node{a.shell, a.storm, a.orbiters, a.auraRing, a.auraPoints} {
		if n.Position != want {
			t.Errorf("part not moved with actor: %v", n.Position)
		}
	}
}

func TestSwarmSweepOnEntityRemoval(t *testing.T) {
	ss, sc, tw := newSwarmFixture(t)
	e, _ := tw.addSwarm(geom.V3(0, 0, 0), 30, 100)
	tw.addSwarm(geom.V3(100, 0, 0), 30, 100)

	ss.Sync(tw.view, 0)
	if ss.ActorCount() != 2 {
		t.Fatalf("expected 2 actors, got %d", ss.ActorCount())
	}

	tw.swarmMap.Remove(e)
	ss.Sync(tw.view, 0)

	if ss.ActorCount() != 1 {
		t.Errorf("dead swarm should be swept, got %d actors", ss.ActorCount())
	}
	// shell + storm + orbiters of the dead actor
	if sc.Disposals != 3 {
		t.Errorf("expected 3 disposals, got %d", sc.Disposals)
	}
}
