package vfx

import (
	"math"
	"math/rand"
	"strconv"

	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/geometry"
	"github.com/lumamoss/cellscape/scene"
	"github.com/lumamoss/cellscape/world"
)

// NucleusCount is the number of ring nuclei in the multi-cell form.
// A multi-form player owns NucleusCount+1 trails: center plus ring.
const NucleusCount = 6

// trailActor is one ribbon trail: a history window, the smoothed head
// position, and the mesh rebuilt from the history every frame.
type trailActor struct {
	key     string
	node    *scene.Node
	history *History

	pos     geom.Vec3
	target  geom.Vec3
	snapped bool // first sync snaps instead of lerping

	phase      float32 // turbulence phase offset, assigned at creation
	width      float32
	taperFloor float32

	// Cached gameplay state, refreshed on sync so animation ticks never
	// re-query the ECS.
	energyRatio float32

	captureAcc float64
}

// TrailSystem owns the ribbon trails of all players. Inapplicable at
// jungle scale: sync short-circuits there and disposes everything on
// the transition edge.
type TrailSystem struct {
	cfg *config.Config
	sc  *scene.Scene
	rng *rand.Rand

	reg  *Registry[*trailActor]
	time float64

	// scratch is the reused point buffer for ribbon rebuilds. Owned by
	// this system only; not safe to share or use re-entrantly.
	scratch []geom.Vec3
}

// NewTrailSystem creates the trail system drawing into sc.
func NewTrailSystem(cfg *config.Config, sc *scene.Scene, rng *rand.Rand) *TrailSystem {
	s := &TrailSystem{cfg: cfg, sc: sc, rng: rng}
	s.reg = NewRegistry(func(a *trailActor) {
		sc.Remove(a.node)
	})
	return s
}

// ActorCount returns the number of live trail actors.
func (s *TrailSystem) ActorCount() int {
	return s.reg.Len()
}

// NucleusKey returns the trail key of ring nucleus i for a player id.
func NucleusKey(id string, i int) string {
	return id + "_nucleus_" + strconv.Itoa(i)
}

// Sync reconciles trail actors against the live player set. Single-form
// players own one key; multi-form players own seven (center + six ring
// nuclei). Targets and cached energy are refreshed unconditionally.
func (s *TrailSystem) Sync(v *world.View, mode Mode) {
	if mode.Scale == ScaleJungle {
		// Trails are a soup-scale category. Disposal on the edge,
		// no-op afterward.
		s.Clear()
		return
	}

	v.ForEachPlayer(func(p world.Player) {
		s.syncKey(p.ID, p.Target, s.cfg.Trail.HistoryCap, float32(s.cfg.Trail.BaseWidth), 0, p)
		if !p.Multi {
			return
		}
		floor := float32(s.cfg.Trail.TaperFloor)
		dist := float32(s.cfg.Trail.NucleusRingDist)
		u, w := geom.TangentBasis(mode.Curvature, p.Target)
		for i := 0; i < NucleusCount; i++ {
			// Ring nuclei orbit the center slowly; the offset lives in
			// the tangent plane so sphere worlds keep nuclei on the
			// surface.
			a := float64(i)/NucleusCount*2*math.Pi + s.time*0.8
			sin, cos := math.Sincos(a)
			target := p.Target.Add(u.Scale(float32(cos) * dist)).Add(w.Scale(float32(sin) * dist))
			s.syncNucleus(NucleusKey(p.ID, i), target, floor, p)
		}
	})

	s.reg.Sweep()
}

func (s *TrailSystem) syncKey(key string, target geom.Vec3, histCap int, width, taperFloor float32, p world.Player) {
	a, _ := s.reg.Ensure(key, func() *trailActor {
		return s.buildActor(key, histCap, width, taperFloor)
	})
	a.target = target
	a.energyRatio = p.Energy.Ratio()
}

func (s *TrailSystem) syncNucleus(key string, target geom.Vec3, taperFloor float32, p world.Player) {
	a, _ := s.reg.Ensure(key, func() *trailActor {
		return s.buildActor(key, s.cfg.Trail.MultiHistoryCap, float32(s.cfg.Trail.NucleusWidth), taperFloor)
	})
	a.target = target
	a.energyRatio = p.Energy.Ratio()
}

func (s *TrailSystem) buildActor(key string, histCap int, width, taperFloor float32) *trailActor {
	mesh := geometry.RibbonMeshFor(histCap)
	node := scene.NewNode(scene.KindRibbon, mesh)
	s.sc.Add(node)
	return &trailActor{
		key:        key,
		node:       node,
		history:    NewHistory(histCap),
		phase:      s.rng.Float32() * 2 * math.Pi,
		width:      width,
		taperFloor: taperFloor,
	}
}

// Interpolate smooths every actor toward its latest target. The factor
// is re-expressed for the actual dt so convergence speed is frame-rate
// independent.
func (s *TrailSystem) Interpolate(dt float64) {
	f := LerpFactor(float32(s.cfg.Trail.LerpBase), float32(dt), s.cfg.Derived.DT32)
	s.reg.Visit(func(_ string, a *trailActor) {
		if !a.snapped {
			a.pos = a.target
			a.snapped = true
			return
		}
		a.pos = a.pos.Lerp(a.target, f)
	})
}

// UpdateAnimations captures history points and rebuilds every ribbon.
func (s *TrailSystem) UpdateAnimations(dt float64, mode Mode) {
	s.time += dt
	interval := s.cfg.Trail.CaptureInterval

	s.reg.Visit(func(_ string, a *trailActor) {
		if !a.snapped {
			return
		}
		a.captureAcc += dt
		if a.captureAcc >= interval {
			a.captureAcc -= interval
			a.history.Push(a.pos)
		}
		if a.history.Len() < 2 {
			return
		}

		s.scratch = a.history.CopyTo(s.scratch[:0])
		geometry.BuildRibbon(a.node.Mesh, s.scratch, geometry.RibbonParams{
			Curvature:      mode.Curvature,
			BaseWidth:      a.width,
			TaperFloor:     a.taperFloor,
			TurbulenceAmp:  float32(s.cfg.Trail.TurbulenceAmp),
			TurbulenceFreq: float32(s.cfg.Trail.TurbulenceFreq),
			Time:           float32(s.time*s.cfg.Trail.TurbulenceSpeed) + a.phase,
			Color:          trailColor(a.energyRatio),
		})
	})
}

// trailColor maps energy ratio onto the wake tint: dim blue when
// drained, bright cyan when full.
func trailColor(ratio float32) scene.Color {
	r := geom.Clamp01(ratio)
	return scene.Color{
		R: uint8(40 + 60*r),
		G: uint8(120 + 110*r),
		B: uint8(180 + 75*r),
		A: uint8(120 + 135*r),
	}
}

// Clear disposes all trail actors. Idempotent.
func (s *TrailSystem) Clear() {
	s.reg.DisposeAll()
}

// Dispose releases everything. Safe during teardown.
func (s *TrailSystem) Dispose() {
	s.Clear()
}
