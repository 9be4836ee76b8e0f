package vfx

import (
	"math"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

// EffectKind identifies a transient effect.
type EffectKind uint8

const (
	EffectDeathBurst EffectKind = iota
	EffectHitSparks
	EffectEvolveBurst
	EffectEMPPulse
	EffectSwarmDeath
	EffectMaterialize
	EffectEnergyTransfer
	EffectMeleeArc
)

// AttackType selects the melee arc variant. Exactly two exist.
type AttackType uint8

const (
	AttackWhip AttackType = iota
	AttackSlash
)

// transient is one self-expiring animation: spawned, active while
// progress runs 0 to 1 over its fixed duration, then removed and its
// node released. All kinds share this shape; only the progress mapping
// differs.
type transient struct {
	kind     EffectKind
	start    float64 // dispatcher clock seconds at spawn
	duration float64

	node *scene.Node
	pool *Pool

	origin geom.Vec3
	target geom.Vec3 // energy transfer destination
	dir    geom.Vec3 // sparks / melee facing

	entityID string // materialize subject / transfer receiver
	radius   float32
	attack   AttackType

	// soupOnly transients are bulk-disposed on the transition to
	// jungle scale; world-scale-agnostic ones survive it.
	soupOnly bool
}

// step applies the kind's position/opacity mapping for normalized
// progress t in [0,1].
func (tr *transient) step(t float32) {
	switch tr.kind {
	case EffectDeathBurst, EffectHitSparks:
		// Linear outward drift, linear fade.
		tr.driftParticles(t)
		tr.node.Opacity = 1 - t

	case EffectEvolveBurst:
		// Orbit-then-contract: sinusoidal radius envelope peaking
		// mid-animation, so particles swing out and fall back in.
		envelope := float32(math.Sin(float64(t) * math.Pi))
		tr.orbitParticles(t, envelope)
		tr.node.Opacity = 1 - t*t

	case EffectEMPPulse:
		// Linear ring growth; fade onset delayed to 40% progress.
		tr.node.Params[1] = tr.radius * t
		tr.node.Params[0] = tr.radius * t * 0.82
		if t < 0.4 {
			tr.node.Opacity = 1
		} else {
			tr.node.Opacity = 1 - (t-0.4)/0.6
		}

	case EffectSwarmDeath:
		// Ballistic drift, linear fade.
		tr.ballisticParticles(t)
		tr.node.Opacity = 1 - t

	case EffectMaterialize:
		// Particles converge inward as the entity appears.
		tr.convergeParticles(t)
		tr.node.Opacity = 1 - t*0.6

	case EffectEnergyTransfer:
		// Particle stream from source toward target, staggered by
		// per-particle seed, fading over the last third.
		tr.streamParticles(t)
		if t < 0.66 {
			tr.node.Opacity = 1
		} else {
			tr.node.Opacity = 1 - (t-0.66)/0.34
		}

	case EffectMeleeArc:
		tr.sweepArc(t)
	}
}

// driftParticles writes pos = spawnOffset + vel*t*duration.
func (tr *transient) driftParticles(t float32) {
	m := tr.node.Mesh
	scale := t * float32(tr.duration)
	for i := 0; i < tr.pool.Active; i++ {
		p := tr.pool.Pos[i].Add(tr.pool.Vel[i].Scale(scale))
		m.SetPosition(i, p.X, p.Y, p.Z)
	}
	m.SetActive(tr.pool.Active)
}

// ballisticParticles is drift plus a downward pull growing with t^2.
func (tr *transient) ballisticParticles(t float32) {
	m := tr.node.Mesh
	scale := t * float32(tr.duration)
	drop := 60 * t * t
	for i := 0; i < tr.pool.Active; i++ {
		p := tr.pool.Pos[i].Add(tr.pool.Vel[i].Scale(scale))
		p.Z -= drop
		m.SetPosition(i, p.X, p.Y, p.Z)
	}
	m.SetActive(tr.pool.Active)
}

// orbitParticles swings each particle around the origin at its seeded
// angular offset, radius scaled by the envelope. Pos.X carries the
// per-particle radius jitter assigned at spawn.
func (tr *transient) orbitParticles(t, envelope float32) {
	m := tr.node.Mesh
	for i := 0; i < tr.pool.Active; i++ {
		a := float64(tr.pool.Seed[i] + t*4)
		sin, cos := math.Sincos(a)
		r := tr.radius * envelope * (0.6 + tr.pool.Pos[i].X*0.4)
		m.SetPosition(i, float32(cos)*r, float32(sin)*r, tr.pool.Pos[i].Z*envelope)
	}
	m.SetActive(tr.pool.Active)
}

// convergeParticles lerps each particle from its spawn shell toward the
// origin as t runs 0 to 1.
func (tr *transient) convergeParticles(t float32) {
	m := tr.node.Mesh
	for i := 0; i < tr.pool.Active; i++ {
		p := tr.pool.Pos[i].Scale(1 - t)
		m.SetPosition(i, p.X, p.Y, p.Z)
	}
	m.SetActive(tr.pool.Active)
}

// streamParticles moves each particle along origin->target with a
// per-particle stagger so the stream reads as a flow, not a clump.
func (tr *transient) streamParticles(t float32) {
	m := tr.node.Mesh
	span := tr.target.Sub(tr.origin)
	for i := 0; i < tr.pool.Active; i++ {
		stagger := tr.pool.Seed[i] * 0.15
		ft := geom.Clamp01((t - stagger) / (1 - 0.15))
		p := span.Scale(ft).Add(tr.pool.Pos[i].Scale(1 - ft))
		m.SetPosition(i, p.X, p.Y, p.Z)
	}
	m.SetActive(tr.pool.Active)
}

// sweepArc rebuilds the melee arc fan up to the swept angle for t.
// Whip: long narrow reach; slash: wide short reach.
func (tr *transient) sweepArc(t float32) {
	var arcSpan, reach float32
	switch tr.attack {
	case AttackWhip:
		arcSpan = float32(math.Pi) * 0.45
		reach = tr.radius * 1.6
	case AttackSlash:
		arcSpan = float32(math.Pi) * 0.95
		reach = tr.radius
	}

	m := tr.node.Mesh
	segs := m.Capacity - 2 // fan: center + segs+1 rim vertices
	heading := float32(math.Atan2(float64(tr.dir.Y), float64(tr.dir.X)))
	swept := arcSpan * geom.Clamp01(t/0.7) // sweep completes at 70%, then fades

	m.SetPosition(0, 0, 0, 0)
	for i := 0; i <= segs; i++ {
		a := float64(heading - arcSpan/2 + swept*float32(i)/float32(segs))
		sin, cos := math.Sincos(a)
		m.SetPosition(1+i, float32(cos)*reach, float32(sin)*reach, 2)
	}
	idx := m.Indices[:0]
	for i := 0; i < segs; i++ {
		idx = append(idx, 0, uint16(1+i), uint16(2+i))
	}
	m.Indices = idx
	m.SetActive(segs + 2)

	if t < 0.7 {
		tr.node.Opacity = 1
	} else {
		tr.node.Opacity = 1 - (t-0.7)/0.3
	}
}
