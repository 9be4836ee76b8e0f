package world

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/lumamoss/cellscape/components"
	"github.com/lumamoss/cellscape/geom"
)

func TestForEachPlayerSkipsEntitiesWithoutID(t *testing.T) {
	w := ecs.NewWorld()
	v := NewView(w)
	m := ecs.NewMap3[components.TagPlayer, components.Position, components.Energy](w)
	idMap := ecs.NewMap1[components.NetID](w)

	ready := m.NewEntity(&components.TagPlayer{}, &components.Position{X: 1}, &components.Energy{Value: 50, Max: 100})
	idMap.Add(ready, &components.NetID{ID: "p-1"})
	m.NewEntity(&components.TagPlayer{}, &components.Position{X: 2}, &components.Energy{}) // no NetID yet

	var seen []string
	v.ForEachPlayer(func(p Player) { seen = append(seen, p.ID) })

	if len(seen) != 1 || seen[0] != "p-1" {
		t.Errorf("only the synced player should be visited, got %v", seen)
	}
}

func TestForEachPlayerPrefersInterpTarget(t *testing.T) {
	w := ecs.NewWorld()
	v := NewView(w)
	m := ecs.NewMap3[components.TagPlayer, components.Position, components.Energy](w)
	idMap := ecs.NewMap1[components.NetID](w)
	interpMap := ecs.NewMap1[components.InterpTarget](w)

	plain := m.NewEntity(&components.TagPlayer{}, &components.Position{X: 10, Y: 20}, &components.Energy{})
	idMap.Add(plain, &components.NetID{ID: "plain"})

	interp := m.NewEntity(&components.TagPlayer{}, &components.Position{X: 10, Y: 20}, &components.Energy{})
	idMap.Add(interp, &components.NetID{ID: "interp"})
	interpMap.Add(interp, &components.InterpTarget{X: 99, Y: 20})

	targets := map[string]geom.Vec3{}
	v.ForEachPlayer(func(p Player) { targets[p.ID] = p.Target })

	if targets["plain"] != geom.V3(10, 20, 0) {
		t.Errorf("without InterpTarget the position is the target, got %v", targets["plain"])
	}
	if targets["interp"] != geom.V3(99, 20, 0) {
		t.Errorf("InterpTarget should win over position, got %v", targets["interp"])
	}
}

func TestForEachPlayerMultiFlag(t *testing.T) {
	w := ecs.NewWorld()
	v := NewView(w)
	m := ecs.NewMap3[components.TagPlayer, components.Position, components.Energy](w)
	idMap := ecs.NewMap1[components.NetID](w)
	multiMap := ecs.NewMap1[components.MultiForm](w)

	single := m.NewEntity(&components.TagPlayer{}, &components.Position{}, &components.Energy{})
	idMap.Add(single, &components.NetID{ID: "single"})
	multi := m.NewEntity(&components.TagPlayer{}, &components.Position{}, &components.Energy{})
	idMap.Add(multi, &components.NetID{ID: "multi"})
	multiMap.Add(multi, &components.MultiForm{})

	flags := map[string]bool{}
	v.ForEachPlayer(func(p Player) { flags[p.ID] = p.Multi })

	if flags["single"] || !flags["multi"] {
		t.Errorf("multi flags wrong: %v", flags)
	}
}

func TestForEachSwarmDefaultsMissingEnergy(t *testing.T) {
	w := ecs.NewWorld()
	v := NewView(w)
	m := ecs.NewMap3[components.TagSwarm, components.Position, components.Swarm](w)
	idMap := ecs.NewMap1[components.NetID](w)

	e := m.NewEntity(&components.TagSwarm{}, &components.Position{X: 5}, &components.Swarm{Radius: 30})
	idMap.Add(e, &components.NetID{ID: "s-1"})

	visited := 0
	v.ForEachSwarm(func(s Swarm) {
		visited++
		if s.Energy.Value != 0 || s.Energy.Max != 0 {
			t.Errorf("missing energy should read as zero, got %+v", s.Energy)
		}
		if s.Swarm.Radius != 30 {
			t.Errorf("swarm component should pass through, got %+v", s.Swarm)
		}
	})
	if visited != 1 {
		t.Fatalf("expected 1 visit, got %d", visited)
	}
}

func TestForEachTree(t *testing.T) {
	w := ecs.NewWorld()
	v := NewView(w)
	m := ecs.NewMap3[components.TagTree, components.Position, components.Tree](w)
	idMap := ecs.NewMap1[components.NetID](w)

	e := m.NewEntity(&components.TagTree{}, &components.Position{X: 7, Y: 8}, &components.Tree{Radius: 3, Height: 40, Variant: 2})
	idMap.Add(e, &components.NetID{ID: "t-1"})

	var got Tree
	count := 0
	v.ForEachTree(func(tr Tree) { got = tr; count++ })

	if count != 1 {
		t.Fatalf("expected 1 tree, got %d", count)
	}
	if got.ID != "t-1" || got.Pos != geom.V3(7, 8, 0) || got.Tree.Variant != 2 {
		t.Errorf("tree fields wrong: %+v", got)
	}
}

func TestAliveTracksRemoval(t *testing.T) {
	w := ecs.NewWorld()
	v := NewView(w)
	m := ecs.NewMap1[components.Position](w)

	e := m.NewEntity(&components.Position{})
	if !v.Alive(e) {
		t.Fatal("fresh entity should be alive")
	}
	w.RemoveEntity(e)
	if v.Alive(e) {
		t.Error("removed entity should be dead")
	}
}
