package vfx

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/geometry"
	"github.com/lumamoss/cellscape/scene"
	"github.com/lumamoss/cellscape/world"
)

// treeActor is one jungle tree: trunk and canopy nodes plus the sway
// and pulse phases assigned at creation.
type treeActor struct {
	id      string
	trunk   *scene.Node
	canopy  *scene.Node
	pos     geom.Vec3
	variant uint32

	swayPhase  float32
	pulsePhase float32
}

// TreeSystem owns jungle tree actors and the shared root network
// connecting them. The network is recomputed only when the tracked tree
// count changes, never per frame.
type TreeSystem struct {
	cfg *config.Config
	sc  *scene.Scene
	rng *rand.Rand

	reg   *Registry[*treeActor]
	roots *scene.Node // nil until first rebuild
	time  float64

	lastCount int
}

// NewTreeSystem creates the tree system drawing into sc.
func NewTreeSystem(cfg *config.Config, sc *scene.Scene, rng *rand.Rand) *TreeSystem {
	s := &TreeSystem{cfg: cfg, sc: sc, rng: rng, lastCount: -1}
	s.reg = NewRegistry(func(a *treeActor) {
		sc.Remove(a.trunk)
		sc.Remove(a.canopy)
	})
	return s
}

// ActorCount returns the number of live tree actors.
func (s *TreeSystem) ActorCount() int {
	return s.reg.Len()
}

// Sync reconciles tree actors against the live entity set. Trees are a
// jungle-scale category: at soup scale sync short-circuits and disposes
// everything on the transition edge.
func (s *TreeSystem) Sync(v *world.View, mode Mode) {
	if mode.Scale != ScaleJungle {
		s.Clear()
		return
	}

	v.ForEachTree(func(t world.Tree) {
		a, _ := s.reg.Ensure(t.ID, func() *treeActor {
			return s.buildActor(t)
		})
		a.pos = t.Pos
	})
	s.reg.Sweep()

	if n := s.reg.Len(); n != s.lastCount {
		s.rebuildRoots()
		s.lastCount = n
	}
}

func (s *TreeSystem) buildActor(t world.Tree) *treeActor {
	bark := scene.Color{R: 96, G: 66, B: 42, A: 255}
	leaf := scene.Color{R: 46, G: 140, B: 70, A: 235}

	trunkMesh := geometry.TrunkMesh()
	geometry.BuildTrunk(trunkMesh, t.Tree.Radius, t.Tree.Height, t.Tree.Variant, bark)
	trunk := scene.NewNode(scene.KindTriangles, trunkMesh)
	trunk.Position = t.Pos
	s.sc.Add(trunk)

	canopyMesh := geometry.CanopyMesh()
	geometry.BuildCanopy(canopyMesh, t.Tree.Radius, t.Tree.Height, t.Tree.Variant, leaf)
	canopy := scene.NewNode(scene.KindPoints, canopyMesh)
	canopy.Position = t.Pos
	s.sc.Add(canopy)

	return &treeActor{
		id:         t.ID,
		trunk:      trunk,
		canopy:     canopy,
		pos:        t.Pos,
		variant:    t.Tree.Variant,
		swayPhase:  s.rng.Float32() * 2 * math.Pi,
		pulsePhase: s.rng.Float32() * 2 * math.Pi,
	}
}

// rebuildRoots recomputes the root network from the current actor set.
// Offsets are deterministic per tree pair, so an unchanged pair keeps
// its curve across rebuilds.
func (s *TreeSystem) rebuildRoots() {
	if s.roots != nil {
		s.sc.Remove(s.roots)
		s.roots = nil
	}
	n := s.reg.Len()
	if n < 1 {
		return
	}

	positions := make([]geom.Vec3, 0, n)
	seeds := make([]uint32, 0, n)
	s.reg.Visit(func(_ string, a *treeActor) {
		positions = append(positions, a.pos)
		seeds = append(seeds, a.variant)
	})

	cfg := s.cfg.Tree
	links, tendrils := geometry.ComputeRootLinks(
		positions, seeds,
		cfg.RootNeighbors,
		float32(cfg.RootMaxDist),
		float32(cfg.RootOffsetScale),
		float32(cfg.TendrilLength),
	)
	if len(links) == 0 && len(tendrils) == 0 {
		return
	}

	mesh := geometry.RootMeshFor(len(links), len(tendrils), cfg.RootTubeSides, cfg.RootTubeSteps)
	geometry.BuildRootTubes(mesh, positions, links, tendrils,
		cfg.RootTubeSides, cfg.RootTubeSteps, 2.2,
		scene.Color{R: 120, G: 90, B: 60, A: 200})
	s.roots = scene.NewNode(scene.KindTriangles, mesh)
	s.sc.Add(s.roots)
}

// UpdateAnimations applies trunk sway and canopy breathing. Each actor
// pulses on its own phase so the forest never moves in lockstep.
func (s *TreeSystem) UpdateAnimations(dt float64) {
	s.time += dt
	cfg := s.cfg.Tree
	t := float32(s.time)

	s.reg.Visit(func(_ string, a *treeActor) {
		a.trunk.Rotation = Pulse(0, float32(cfg.SwayAmp), float32(cfg.SwayFreq), t, a.swayPhase)
		a.canopy.Scale = Pulse(1, float32(cfg.PulseAmp), float32(cfg.PulseFreq), t, a.pulsePhase)
	})
}

// Clear disposes all tree actors and the root network. Idempotent.
func (s *TreeSystem) Clear() {
	s.reg.DisposeAll()
	if s.roots != nil {
		s.sc.Remove(s.roots)
		s.roots = nil
	}
	s.lastCount = -1
}

// Dispose releases everything. Safe during teardown.
func (s *TreeSystem) Dispose() {
	s.Clear()
}
