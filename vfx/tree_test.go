package vfx

import (
	"math/rand"
	"testing"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

func newTreeFixture(t *testing.T) (*TreeSystem, *scene.Scene, *testWorld) {
	t.Helper()
	cfg := testConfig(t)
	sc := scene.New()
	return NewTreeSystem(cfg, sc, rand.New(rand.NewSource(5))), sc, newTestWorld()
}

func TestTreeSoupScaleClears(t *testing.T) {
	ts, sc, tw := newTreeFixture(t)
	tw.addTree(geom.V3(0, 0, 0), 1)
	tw.addTree(geom.V3(100, 0, 0), 2)

	ts.Sync(tw.view, jungleMode())
	if ts.ActorCount() != 2 {
		t.Fatalf("expected 2 actors at jungle scale, got %d", ts.ActorCount())
	}
	if sc.Len() == 0 {
		t.Fatal("expected tree nodes in the scene")
	}

	ts.Sync(tw.view, soupMode())
	if ts.ActorCount() != 0 {
		t.Errorf("soup scale should clear trees, got %d", ts.ActorCount())
	}
	if sc.Len() != 0 {
		t.Errorf("scene should be empty, has %d nodes", sc.Len())
	}
	if ts.roots != nil {
		t.Error("root network should be cleared with the actors")
	}
}

func TestTreeRootsRebuildOnlyOnCountChange(t *testing.T) {
	ts, _, tw := newTreeFixture(t)
	for i := 0; i < 4; i++ {
		tw.addTree(geom.V3(float32(i)*80, 0, 0), uint32(i))
	}

	ts.Sync(tw.view, jungleMode())
	first := ts.roots
	if first == nil {
		t.Fatal("expected a root network for 4 trees")
	}

	// Same population: the node must not be rebuilt.
	ts.Sync(tw.view, jungleMode())
	ts.Sync(tw.view, jungleMode())
	if ts.roots != first {
		t.Error("roots rebuilt without a count change")
	}

	tw.addTree(geom.V3(0, 80, 0), 9)
	ts.Sync(tw.view, jungleMode())
	if ts.roots == first {
		t.Error("adding a tree should rebuild the root network")
	}
}

func TestTreeRootsRebuildOnRemoval(t *testing.T) {
	ts, sc, tw := newTreeFixture(t)
	e, _ := tw.addTree(geom.V3(0, 0, 0), 1)
	tw.addTree(geom.V3(90, 0, 0), 2)
	tw.addTree(geom.V3(0, 90, 0), 3)

	ts.Sync(tw.view, jungleMode())
	first := ts.roots

	tw.treeMap.Remove(e)
	ts.Sync(tw.view, jungleMode())

	if ts.ActorCount() != 2 {
		t.Fatalf("expected 2 actors after removal, got %d", ts.ActorCount())
	}
	if ts.roots == first {
		t.Error("removal should rebuild the root network")
	}
	// trunk + canopy of the removed tree, plus the old roots node.
	if sc.Disposals != 3 {
		t.Errorf("expected 3 disposals, got %d", sc.Disposals)
	}
}

func TestTreeSingleTreeGetsTendrils(t *testing.T) {
	ts, _, tw := newTreeFixture(t)
	tw.addTree(geom.V3(0, 0, 0), 7)

	ts.Sync(tw.view, jungleMode())

	// No neighbor in range, but an isolated tree still grows short free
	// tendrils, so the roots node exists with live geometry.
	if ts.roots == nil {
		t.Fatal("isolated tree should still have root tendrils")
	}
	if ts.roots.Mesh.Active == 0 {
		t.Error("tendril mesh should have live geometry")
	}
}

func TestTreeAnimationsDesynchronized(t *testing.T) {
	ts, _, tw := newTreeFixture(t)
	_, idA := tw.addTree(geom.V3(0, 0, 0), 1)
	_, idB := tw.addTree(geom.V3(100, 0, 0), 2)

	ts.Sync(tw.view, jungleMode())
	ts.UpdateAnimations(0.4)

	a, _ := ts.reg.Get(idA)
	b, _ := ts.reg.Get(idB)
	if a.trunk.Rotation == b.trunk.Rotation && a.canopy.Scale == b.canopy.Scale {
		t.Error("trees should sway and pulse on independent phases")
	}
}
