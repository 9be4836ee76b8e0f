// Package camera provides the orbiting viewing rig that follows the
// tracked position and blends between the soup and jungle viewing
// scales.
package camera

import (
	"math"

	"github.com/lumamoss/cellscape/geom"
)

// Rig is the 3D viewing rig. Distance and pitch glide toward the
// preset of the active scale with frame-rate-independent exponential
// smoothing, so scale switches read as one continuous zoom.
type Rig struct {
	// Target is the world position the rig looks at.
	Target geom.Vec3

	// Distance and Pitch are the current (smoothed) values.
	Distance float32
	Pitch    float32 // radians below horizontal
	Yaw      float32

	// presets
	wantDistance float32
	wantPitch    float32

	// rate is the convergence rate per second.
	rate float32
}

// New creates a rig starting at the given preset.
func New(distance, pitch, rate float32) *Rig {
	return &Rig{
		Distance:     distance,
		Pitch:        pitch,
		wantDistance: distance,
		wantPitch:    pitch,
		rate:         rate,
	}
}

// SetPreset changes the preset the rig glides toward.
func (r *Rig) SetPreset(distance, pitch float32) {
	r.wantDistance = distance
	r.wantPitch = pitch
}

// Snap jumps to the preset immediately.
func (r *Rig) Snap() {
	r.Distance = r.wantDistance
	r.Pitch = r.wantPitch
}

// Update advances the glide. The per-tick factor 1-exp(-rate*dt) makes
// convergence independent of frame rate.
func (r *Rig) Update(dt float32) {
	f := 1 - float32(math.Exp(float64(-r.rate*dt)))
	r.Distance += (r.wantDistance - r.Distance) * f
	r.Pitch += (r.wantPitch - r.Pitch) * f
}

// Eye returns the rig's eye position in world space.
func (r *Rig) Eye() geom.Vec3 {
	sp, cp := math.Sincos(float64(r.Pitch))
	sy, cy := math.Sincos(float64(r.Yaw))
	horiz := r.Distance * float32(cp)
	return geom.V3(
		r.Target.X-horiz*float32(cy),
		r.Target.Y-horiz*float32(sy),
		r.Target.Z+r.Distance*float32(sp),
	)
}

// Settled reports whether the rig is within eps of its preset.
func (r *Rig) Settled(eps float32) bool {
	dd := r.wantDistance - r.Distance
	dp := r.wantPitch - r.Pitch
	if dd < 0 {
		dd = -dd
	}
	if dp < 0 {
		dp = -dp
	}
	return dd < eps && dp < eps
}
