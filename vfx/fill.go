package vfx

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/geometry"
)

// VolumeFill initializes pool slot i with the radial-volume-fill rule:
// position uniform inside the sphere, a random speed/direction velocity
// for later turbulence, and a random size in [sizeMin, sizeMax].
func VolumeFill(rng *rand.Rand, radius, speed, sizeMin, sizeMax float32) InitFunc {
	return func(i int, p *Pool) {
		p.Pos[i] = geometry.RandomInSphere(rng, radius)
		p.Vel[i] = geometry.RandomDirection(rng).Scale(speed * (0.4 + rng.Float32()*0.6))
		p.Size[i] = sizeMin + rng.Float32()*(sizeMax-sizeMin)
		p.Seed[i] = rng.Float32() * 2 * math.Pi
	}
}

// OrbitFill initializes pool slot i as an orbiter: a signed angular
// speed in Seed and a size; position is recomputed from the angle each
// tick so it is left zeroed here.
func OrbitFill(rng *rand.Rand, baseSpeed, sizeMin, sizeMax float32) InitFunc {
	return func(i int, p *Pool) {
		speed := baseSpeed * (0.5 + rng.Float32())
		if rng.Intn(2) == 0 {
			speed = -speed
		}
		p.Seed[i] = speed
		p.Size[i] = sizeMin + rng.Float32()*(sizeMax-sizeMin)
		p.Pos[i] = geom.Vec3{}
		p.Vel[i] = geom.Vec3{}
	}
}
