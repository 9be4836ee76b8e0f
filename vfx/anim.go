package vfx

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/geom"
)

// LerpFactor converts a smoothing factor defined per reference tick
// into one for the actual tick length, so exponential smoothing
// converges at the same speed regardless of frame rate:
//
//	factor = 1 - (1-base)^(dt/refDt)
func LerpFactor(base, dt, refDt float32) float32 {
	if dt <= 0 {
		return 0
	}
	return 1 - float32(math.Pow(float64(1-base), float64(dt/refDt)))
}

// DampingFactor converts "fraction of velocity retained after exactly
// one second" into the per-tick multiplier retain^dt, which is
// frame-rate independent by construction.
func DampingFactor(retainPerSecond, dt float32) float32 {
	return float32(math.Pow(float64(retainPerSecond), float64(dt)))
}

// Pulse evaluates the shared periodic envelope
// base + sin(t*freq*2pi + phase) * amp. Every pulsing or swaying value
// in the layer goes through this; phase is assigned once per actor so
// instances never animate in lockstep.
func Pulse(base, amp, freq, t, phase float32) float32 {
	return base + float32(math.Sin(float64(t*freq*2*math.Pi+phase)))*amp
}

// TurbulenceParams configures one StepTurbulence call.
type TurbulenceParams struct {
	DT     float32
	Radius float32 // containing radius (shell radius * boundary fraction)
	Accel  float32 // random acceleration magnitude per second
	Retain float32 // velocity fraction retained after 1s
	Rand   *rand.Rand
}

// StepTurbulence advances the bounded turbulent motion of the first
// pool.Active particles around the actor-local origin: integrate
// velocity, reflect elastically off the containing sphere, clamp back
// onto the boundary, add bounded random acceleration, and apply
// frame-rate-independent damping.
func StepTurbulence(p *Pool, params TurbulenceParams) {
	damp := DampingFactor(params.Retain, params.DT)
	for i := 0; i < p.Active; i++ {
		pos := p.Pos[i].Add(p.Vel[i].Scale(params.DT))

		if d := pos.Length(); d > params.Radius && d > 0 {
			// Elastic bounce: reflect velocity about the outward
			// normal, then clamp position onto the boundary.
			n := pos.Scale(1 / d)
			v := p.Vel[i]
			p.Vel[i] = v.Sub(n.Scale(2 * v.Dot(n)))
			pos = n.Scale(params.Radius)
		}
		p.Pos[i] = pos

		p.Vel[i] = p.Vel[i].Add(geom.V3(
			(params.Rand.Float32()*2-1)*params.Accel*params.DT,
			(params.Rand.Float32()*2-1)*params.Accel*params.DT,
			(params.Rand.Float32()*2-1)*params.Accel*params.DT,
		))
		p.Vel[i] = p.Vel[i].Scale(damp)
	}
}

// StepOrbit advances per-particle orbit angles and recomputes positions
// on a ring of the given radius in the plane spanned by u and v. Each
// particle's Seed is its signed base angular speed; the angle state is
// owned by the caller. No velocity integration: position follows
// directly from angle and radius.
func StepOrbit(angles []float32, p *Pool, radius float32, u, v geom.Vec3, speedMult, dt float32) {
	n := p.Active
	if n > len(angles) {
		n = len(angles)
	}
	for i := 0; i < n; i++ {
		angles[i] += p.Seed[i] * speedMult * dt
		s, c := math.Sincos(float64(angles[i]))
		p.Pos[i] = u.Scale(float32(c) * radius).Add(v.Scale(float32(s) * radius))
	}
}
