// Package geom provides float32 vector math and world-curvature helpers
// shared by the procedural builders and the visual systems.
package geom

import "math"

// Vec3 is a 3-component float32 vector in world space.
type Vec3 struct {
	X, Y, Z float32
}

// V3 constructs a Vec3.
func V3(x, y, z float32) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z}
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z}
}

// Scale returns v * s.
func (v Vec3) Scale(s float32) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

// Dot returns the dot product of v and o.
func (v Vec3) Dot(o Vec3) float32 {
	return v.X*o.X + v.Y*o.Y + v.Z*o.Z
}

// Cross returns the cross product of v and o.
func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v.Y*o.Z - v.Z*o.Y,
		v.Z*o.X - v.X*o.Z,
		v.X*o.Y - v.Y*o.X,
	}
}

// LengthSq returns the squared length of v.
func (v Vec3) LengthSq() float32 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

// Length returns the Euclidean length of v.
func (v Vec3) Length() float32 {
	return float32(math.Sqrt(float64(v.LengthSq())))
}

// Normalize returns v scaled to unit length. A zero vector normalizes to
// the +X axis so callers never receive NaN components.
func (v Vec3) Normalize() Vec3 {
	l := v.Length()
	if l < 1e-6 {
		return Vec3{X: 1}
	}
	return v.Scale(1 / l)
}

// Lerp returns v + (o-v)*t.
func (v Vec3) Lerp(o Vec3, t float32) Vec3 {
	return Vec3{
		v.X + (o.X-v.X)*t,
		v.Y + (o.Y-v.Y)*t,
		v.Z + (o.Z-v.Z)*t,
	}
}

// Distance returns the Euclidean distance between v and o.
func (v Vec3) Distance(o Vec3) float32 {
	return v.Sub(o).Length()
}

// Perp returns a unit vector perpendicular to v within the plane whose
// normal is up. Degenerate inputs (v near zero, or v parallel to up)
// fall back to a fixed axis instead of dividing by zero; an unguarded
// division here would push NaN into vertex buffers and corrupt the
// ribbon permanently.
func Perp(v, up Vec3) Vec3 {
	p := up.Cross(v)
	if p.LengthSq() < 1e-10 {
		return Vec3{X: 1}
	}
	return p.Normalize()
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	return Clamp(v, 0, 1)
}
