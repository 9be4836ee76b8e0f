package vfx

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/geometry"
	"github.com/lumamoss/cellscape/scene"
)

// EffectsSystem is the facade gameplay-event handlers call to spawn
// transient effects. It owns every live transient, advances them each
// frame, and garbage-collects finished ones in the same pass. Spawns
// are fire-and-forget; nothing here reads the ECS.
type EffectsSystem struct {
	cfg *config.Config
	sc  *scene.Scene
	rng *rand.Rand

	// clock accumulates Update dts; transient start stamps and
	// durations compare against it.
	clock float64

	transients []*transient

	// materializing indexes in-flight materialize transients by entity
	// id, making SpawnMaterialize idempotent per id.
	materializing map[string]*transient
}

// NewEffectsSystem creates the dispatcher drawing into sc.
func NewEffectsSystem(cfg *config.Config, sc *scene.Scene, rng *rand.Rand) *EffectsSystem {
	return &EffectsSystem{
		cfg:           cfg,
		sc:            sc,
		rng:           rng,
		materializing: make(map[string]*transient),
	}
}

// Count returns the number of live transients.
func (s *EffectsSystem) Count() int {
	return len(s.transients)
}

// add registers a transient and its node.
func (s *EffectsSystem) add(tr *transient) {
	tr.start = s.clock
	s.sc.Add(tr.node)
	s.transients = append(s.transients, tr)
}

// newBurstPool fills a pool with count particles spread over a spawn
// shell with outward velocities.
func (s *EffectsSystem) newBurstPool(count int, spawnRadius, speed float32) *Pool {
	p := NewPool(count)
	p.SetActive(count, VolumeFill(s.rng, spawnRadius, speed, 1.5, 3.5))
	return p
}

// newPointNode builds the point-cloud node for a burst pool, seeding
// mesh colors and sizes once; per-frame steps only rewrite positions.
func newPointNode(p *Pool, at geom.Vec3, color scene.Color) *scene.Node {
	m := scene.NewPointMesh(p.Max)
	for i := 0; i < p.Active; i++ {
		m.SetColor(i, color)
		m.Sizes[i] = p.Size[i]
	}
	m.SetActive(p.Active)
	n := scene.NewNode(scene.KindPoints, m)
	n.Position = at
	n.Tint = color
	return n
}

// SpawnDeathBurst fires the radial death burst at pos.
func (s *EffectsSystem) SpawnDeathBurst(pos geom.Vec3, color scene.Color) {
	p := s.newBurstPool(s.cfg.Effects.DeathParticles, 4, 90)
	s.add(&transient{
		kind:     EffectDeathBurst,
		duration: s.cfg.Effects.DeathDuration,
		node:     newPointNode(p, pos, color),
		pool:     p,
		origin:   pos,
		soupOnly: true,
	})
}

// SpawnHitSparks fires a short directional spray at pos, biased along
// dir.
func (s *EffectsSystem) SpawnHitSparks(pos, dir geom.Vec3, color scene.Color) {
	p := s.newBurstPool(s.cfg.Effects.HitParticles, 2, 140)
	d := dir.Normalize()
	for i := 0; i < p.Active; i++ {
		p.Vel[i] = p.Vel[i].Add(d.Scale(120))
	}
	s.add(&transient{
		kind:     EffectHitSparks,
		duration: s.cfg.Effects.HitDuration,
		node:     newPointNode(p, pos, color),
		pool:     p,
		origin:   pos,
		dir:      d,
		soupOnly: true,
	})
}

// SpawnEvolutionBurst fires the orbit-then-contract evolution burst.
func (s *EffectsSystem) SpawnEvolutionBurst(pos geom.Vec3, radius float32, color scene.Color) {
	count := s.cfg.Effects.EvolveParticles
	p := NewPool(count)
	p.SetActive(count, func(i int, p *Pool) {
		p.Seed[i] = s.rng.Float32() * 2 * math.Pi
		p.Size[i] = 1.5 + s.rng.Float32()*2
		// Pos.X is the radius jitter, Pos.Z the vertical spread.
		p.Pos[i] = geom.V3(s.rng.Float32(), 0, (s.rng.Float32()-0.5)*radius)
	})
	s.add(&transient{
		kind:     EffectEvolveBurst,
		duration: s.cfg.Effects.EvolveDuration,
		node:     newPointNode(p, pos, color),
		pool:     p,
		origin:   pos,
		radius:   radius,
		soupOnly: true,
	})
}

// SpawnEMPPulse fires the expanding disable ring covering aoeRadius.
func (s *EffectsSystem) SpawnEMPPulse(pos geom.Vec3, aoeRadius float32) {
	n := scene.NewNode(scene.KindRing, nil)
	n.Position = pos
	n.Tint = scene.Color{R: 120, G: 200, B: 255, A: 255}
	s.add(&transient{
		kind:     EffectEMPPulse,
		duration: s.cfg.Effects.EMPDuration,
		node:     n,
		radius:   aoeRadius,
	})
}

// SpawnSwarmDeath fires the outward explosion for a dying swarm.
func (s *EffectsSystem) SpawnSwarmDeath(pos geom.Vec3, radius float32, color scene.Color) {
	p := s.newBurstPool(s.cfg.Effects.SwarmDeathParticles, radius, 160)
	s.add(&transient{
		kind:     EffectSwarmDeath,
		duration: s.cfg.Effects.SwarmDeathDuration,
		node:     newPointNode(p, pos, color),
		pool:     p,
		origin:   pos,
		radius:   radius,
	})
}

// SpawnMaterialize starts the intro animation for entity id: particles
// converge inward while the real mesh scales up in lockstep via the
// progress map returned from Update. A second call for an id already
// materializing is a no-op.
func (s *EffectsSystem) SpawnMaterialize(id string, pos geom.Vec3, color scene.Color) {
	if _, ok := s.materializing[id]; ok {
		return
	}
	count := s.cfg.Effects.MaterializeParts
	p := NewPool(count)
	p.SetActive(count, func(i int, p *Pool) {
		// Spawn on a shell; convergence pulls toward the center.
		dir := geometry.RandomInSphere(s.rng, 1).Normalize()
		p.Pos[i] = dir.Scale(30 + s.rng.Float32()*25)
		p.Size[i] = 1.5 + s.rng.Float32()*2
	})
	tr := &transient{
		kind:     EffectMaterialize,
		duration: s.cfg.Effects.MaterializeDuration,
		node:     newPointNode(p, pos, color),
		pool:     p,
		origin:   pos,
		entityID: id,
	}
	s.materializing[id] = tr
	s.add(tr)
}

// SpawnEnergyTransfer fires a particle stream from source to the
// receiving entity. While it is in flight the receiver's id appears in
// the set returned by Update, so other systems can cue the
// receiving-energy visual. drained scales the stream density.
func (s *EffectsSystem) SpawnEnergyTransfer(from, to geom.Vec3, receiverID string, drained float32) {
	count := s.cfg.Effects.TransferParticles
	if drained > 50 {
		count += count / 2
	}
	p := NewPool(count)
	p.SetActive(count, func(i int, p *Pool) {
		p.Pos[i] = geometry.RandomInSphere(s.rng, 6)
		p.Seed[i] = s.rng.Float32()
		p.Size[i] = 1.5 + s.rng.Float32()*1.5
	})
	node := newPointNode(p, from, scene.Color{R: 255, G: 230, B: 90, A: 255})
	s.add(&transient{
		kind:     EffectEnergyTransfer,
		duration: s.cfg.Effects.TransferDuration,
		node:     node,
		pool:     p,
		origin:   geom.Vec3{}, // stream runs in node-local space
		target:   to.Sub(from),
		entityID: receiverID,
		soupOnly: true,
	})
}

// SpawnMeleeArc fires a swept melee arc at pos facing dir. attack picks
// one of the two variants.
func (s *EffectsSystem) SpawnMeleeArc(pos, dir geom.Vec3, reach float32, attack AttackType, color scene.Color) {
	segs := s.cfg.Effects.MeleeSegments
	m := scene.NewMesh(segs+2, segs*3)
	for i := 0; i < segs+2; i++ {
		m.SetColor(i, color)
	}
	n := scene.NewNode(scene.KindTriangles, m)
	n.Position = pos
	n.Tint = color
	s.add(&transient{
		kind:     EffectMeleeArc,
		duration: s.cfg.Effects.MeleeDuration,
		node:     n,
		dir:      dir,
		radius:   reach,
		attack:   attack,
		soupOnly: true,
	})
}

// Update advances every transient by dt seconds and removes finished
// ones, releasing their nodes exactly once. It returns the in-flight
// materialize progress per entity id and the set of entity ids
// currently receiving an energy transfer.
func (s *EffectsSystem) Update(dt float64) (map[string]float32, map[string]struct{}) {
	s.clock += dt

	progress := make(map[string]float32, len(s.materializing))
	receivers := make(map[string]struct{})

	// Reverse index order: removal swaps with the tail, which must not
	// shift a not-yet-visited index.
	for i := len(s.transients) - 1; i >= 0; i-- {
		tr := s.transients[i]
		t := float32((s.clock - tr.start) / tr.duration)

		if t >= 1 {
			s.remove(i)
			continue
		}

		tr.step(t)

		switch tr.kind {
		case EffectMaterialize:
			progress[tr.entityID] = t
		case EffectEnergyTransfer:
			receivers[tr.entityID] = struct{}{}
		}
	}

	return progress, receivers
}

// remove drops transient i, releasing its scene node.
func (s *EffectsSystem) remove(i int) {
	tr := s.transients[i]
	s.sc.Remove(tr.node)
	if tr.kind == EffectMaterialize {
		delete(s.materializing, tr.entityID)
	}
	last := len(s.transients) - 1
	s.transients[i] = s.transients[last]
	s.transients[last] = nil
	s.transients = s.transients[:last]
}

// ClearSoupEffects disposes the transients that only make sense at soup
// scale. Called on the transition edge to jungle scale; world-scale
// agnostic effects (swarm deaths, EMP pulses) survive. Idempotent when
// nothing qualifies.
func (s *EffectsSystem) ClearSoupEffects() {
	for i := len(s.transients) - 1; i >= 0; i-- {
		if s.transients[i].soupOnly {
			s.remove(i)
		}
	}
}

// Dispose releases every transient. Safe during teardown in any state.
func (s *EffectsSystem) Dispose() {
	for i := len(s.transients) - 1; i >= 0; i-- {
		s.remove(i)
	}
}
