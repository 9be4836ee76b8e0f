// Package world wraps the game's ark ECS world behind a read-only view.
// The effects layer never creates, mutates, or removes entities; it only
// iterates category-tagged entities and reads their components. An
// entity missing an expected component is treated as not-yet-synced and
// skipped for the current frame.
package world

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/lumamoss/cellscape/components"
	"github.com/lumamoss/cellscape/geom"
)

// Player is one player organism as seen by the render systems.
type Player struct {
	Entity ecs.Entity
	ID     string
	Pos    geom.Vec3
	Target geom.Vec3 // interp target when present, else Pos
	Energy components.Energy
	Multi  bool
}

// Swarm is one enemy swarm as seen by the render systems.
type Swarm struct {
	Entity ecs.Entity
	ID     string
	Pos    geom.Vec3
	Target geom.Vec3
	Swarm  components.Swarm
	Energy components.Energy
}

// Tree is one jungle tree as seen by the render systems.
type Tree struct {
	Entity ecs.Entity
	ID     string
	Pos    geom.Vec3
	Tree   components.Tree
}

// View is the read-only facade. One instance is shared by every render
// system; all access happens on the frame goroutine.
type View struct {
	world *ecs.World

	playerFilter *ecs.Filter3[components.TagPlayer, components.Position, components.Energy]
	swarmFilter  *ecs.Filter3[components.TagSwarm, components.Position, components.Swarm]
	treeFilter   *ecs.Filter3[components.TagTree, components.Position, components.Tree]

	netIDMap  *ecs.Map[components.NetID]
	interpMap *ecs.Map[components.InterpTarget]
	energyMap *ecs.Map[components.Energy]
	multiMap  *ecs.Map[components.MultiForm]
}

// NewView creates a view over w.
func NewView(w *ecs.World) *View {
	return &View{
		world:        w,
		playerFilter: ecs.NewFilter3[components.TagPlayer, components.Position, components.Energy](w),
		swarmFilter:  ecs.NewFilter3[components.TagSwarm, components.Position, components.Swarm](w),
		treeFilter:   ecs.NewFilter3[components.TagTree, components.Position, components.Tree](w),
		netIDMap:     ecs.NewMap[components.NetID](w),
		interpMap:    ecs.NewMap[components.InterpTarget](w),
		energyMap:    ecs.NewMap[components.Energy](w),
		multiMap:     ecs.NewMap[components.MultiForm](w),
	}
}

// StringID resolves the stable string id of an entity. ok is false when
// the entity has no NetID yet.
func (v *View) StringID(e ecs.Entity) (string, bool) {
	if !v.netIDMap.Has(e) {
		return "", false
	}
	return v.netIDMap.Get(e).ID, true
}

// target returns the interpolation target for an entity, preferring an
// explicit InterpTarget component over the raw position.
func (v *View) target(e ecs.Entity, pos geom.Vec3) geom.Vec3 {
	if v.interpMap.Has(e) {
		t := v.interpMap.Get(e)
		return geom.V3(t.X, t.Y, t.Z)
	}
	return pos
}

// ForEachPlayer visits every live player entity that is ready to render.
func (v *View) ForEachPlayer(fn func(Player)) {
	q := v.playerFilter.Query()
	for q.Next() {
		e := q.Entity()
		_, pos, energy := q.Get()
		id, ok := v.StringID(e)
		if !ok {
			continue
		}
		p := geom.V3(pos.X, pos.Y, pos.Z)
		fn(Player{
			Entity: e,
			ID:     id,
			Pos:    p,
			Target: v.target(e, p),
			Energy: *energy,
			Multi:  v.multiMap.Has(e),
		})
	}
}

// ForEachSwarm visits every live swarm entity that is ready to render.
func (v *View) ForEachSwarm(fn func(Swarm)) {
	q := v.swarmFilter.Query()
	for q.Next() {
		e := q.Entity()
		_, pos, sw := q.Get()
		id, ok := v.StringID(e)
		if !ok {
			continue
		}
		var energy components.Energy
		if v.energyMap.Has(e) {
			energy = *v.energyMap.Get(e)
		}
		p := geom.V3(pos.X, pos.Y, pos.Z)
		fn(Swarm{
			Entity: e,
			ID:     id,
			Pos:    p,
			Target: v.target(e, p),
			Swarm:  *sw,
			Energy: energy,
		})
	}
}

// ForEachTree visits every live tree entity that is ready to render.
func (v *View) ForEachTree(fn func(Tree)) {
	q := v.treeFilter.Query()
	for q.Next() {
		e := q.Entity()
		_, pos, tree := q.Get()
		id, ok := v.StringID(e)
		if !ok {
			continue
		}
		fn(Tree{
			Entity: e,
			ID:     id,
			Pos:    geom.V3(pos.X, pos.Y, pos.Z),
			Tree:   *tree,
		})
	}
}

// Alive reports whether an entity handle is still live.
func (v *View) Alive(e ecs.Entity) bool {
	return v.world.Alive(e)
}
