package vfx

import (
	"fmt"
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/lumamoss/cellscape/components"
	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/world"
)

// testWorld spawns entities for render-system tests.
type testWorld struct {
	w    *ecs.World
	view *world.View

	playerMap *ecs.Map5[
		components.TagPlayer,
		components.Position,
		components.Energy,
		components.NetID,
		components.InterpTarget,
	]
	swarmMap *ecs.Map5[
		components.TagSwarm,
		components.Position,
		components.Swarm,
		components.Energy,
		components.NetID,
	]
	treeMap *ecs.Map4[
		components.TagTree,
		components.Position,
		components.Tree,
		components.NetID,
	]
	multiMap  *ecs.Map1[components.MultiForm]
	energyMap *ecs.Map1[components.Energy]
	swMap     *ecs.Map1[components.Swarm]
	posMap    *ecs.Map1[components.Position]
	interpMap *ecs.Map1[components.InterpTarget]

	nextID int
}

func newTestWorld() *testWorld {
	w := ecs.NewWorld()
	return &testWorld{
		w:    w,
		view: world.NewView(w),
		playerMap: ecs.NewMap5[
			components.TagPlayer,
			components.Position,
			components.Energy,
			components.NetID,
			components.InterpTarget,
		](w),
		swarmMap: ecs.NewMap5[
			components.TagSwarm,
			components.Position,
			components.Swarm,
			components.Energy,
			components.NetID,
		](w),
		treeMap: ecs.NewMap4[
			components.TagTree,
			components.Position,
			components.Tree,
			components.NetID,
		](w),
		multiMap:  ecs.NewMap1[components.MultiForm](w),
		energyMap: ecs.NewMap1[components.Energy](w),
		swMap:     ecs.NewMap1[components.Swarm](w),
		posMap:    ecs.NewMap1[components.Position](w),
		interpMap: ecs.NewMap1[components.InterpTarget](w),
	}
}

func (tw *testWorld) addPlayer(at geom.Vec3, energy, max float32) (ecs.Entity, string) {
	tw.nextID++
	id := fmt.Sprintf("p-%d", tw.nextID)
	e := tw.playerMap.NewEntity(
		&components.TagPlayer{},
		&components.Position{X: at.X, Y: at.Y, Z: at.Z},
		&components.Energy{Value: energy, Max: max},
		&components.NetID{ID: id},
		&components.InterpTarget{X: at.X, Y: at.Y, Z: at.Z},
	)
	return e, id
}

func (tw *testWorld) addSwarm(at geom.Vec3, radius, energy float32) (ecs.Entity, string) {
	tw.nextID++
	id := fmt.Sprintf("s-%d", tw.nextID)
	e := tw.swarmMap.NewEntity(
		&components.TagSwarm{},
		&components.Position{X: at.X, Y: at.Y, Z: at.Z},
		&components.Swarm{Radius: radius, State: components.SwarmIdle},
		&components.Energy{Value: energy, Max: energy * 4},
		&components.NetID{ID: id},
	)
	return e, id
}

func (tw *testWorld) addTree(at geom.Vec3, variant uint32) (ecs.Entity, string) {
	tw.nextID++
	id := fmt.Sprintf("t-%d", tw.nextID)
	e := tw.treeMap.NewEntity(
		&components.TagTree{},
		&components.Position{X: at.X, Y: at.Y, Z: at.Z},
		&components.Tree{Radius: 3, Height: 40, Variant: variant},
		&components.NetID{ID: id},
	)
	return e, id
}

// setPlayerPos moves a player and its interpolation target together, as
// a server update would.
func (tw *testWorld) setPlayerPos(e ecs.Entity, at geom.Vec3) {
	p := tw.posMap.Get(e)
	p.X, p.Y, p.Z = at.X, at.Y, at.Z
	it := tw.interpMap.Get(e)
	it.X, it.Y, it.Z = at.X, at.Y, at.Z
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func soupMode() Mode {
	return Mode{Curvature: geom.CurvatureFlat, Scale: ScaleSoup}
}

func jungleMode() Mode {
	return Mode{Curvature: geom.CurvatureFlat, Scale: ScaleJungle}
}
