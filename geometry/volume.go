// Package geometry holds the pure procedural builders: given entity
// parameters they synthesize vertex data into scene meshes or particle
// pools. Builders take the render mode explicitly and keep no state.
package geometry

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/geom"
)

// RandomInSphere returns a point uniformly distributed inside a sphere
// of the given radius. The radial coordinate is r = R * cbrt(u): the
// cube root compensates for volume growing with r^3, so a linear draw
// would cluster points near the center.
func RandomInSphere(rng *rand.Rand, radius float32) geom.Vec3 {
	r := radius * float32(math.Cbrt(float64(rng.Float32())))
	return RandomDirection(rng).Scale(r)
}

// RandomDirection returns a uniformly distributed unit vector.
func RandomDirection(rng *rand.Rand) geom.Vec3 {
	// Uniform on the sphere: z uniform in [-1,1], azimuth uniform.
	z := rng.Float32()*2 - 1
	theta := rng.Float64() * 2 * math.Pi
	rxy := float32(math.Sqrt(float64(1 - z*z)))
	s, c := math.Sincos(theta)
	return geom.V3(rxy*float32(c), rxy*float32(s), z)
}
