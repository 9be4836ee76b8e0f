package geom

// Curvature selects how world positions map onto a surface. The flat
// soup world lies in the XY plane; the sphere world wraps positions
// onto a ball of fixed radius centered at the origin.
type Curvature uint8

const (
	CurvatureFlat Curvature = iota
	CurvatureSphere
)

// SurfaceNormal returns the outward surface normal at p for the given
// curvature. Flat worlds always face +Z; sphere worlds use the radial
// direction, falling back to +Z at the degenerate center point.
func SurfaceNormal(c Curvature, p Vec3) Vec3 {
	if c == CurvatureFlat {
		return Vec3{Z: 1}
	}
	if p.LengthSq() < 1e-10 {
		return Vec3{Z: 1}
	}
	return p.Normalize()
}

// TangentBasis returns two orthonormal vectors spanning the tangent
// plane of the surface at p. Ribbons built in sphere mode lay their
// cross-sections in this plane instead of the flat XY plane.
func TangentBasis(c Curvature, p Vec3) (u, v Vec3) {
	n := SurfaceNormal(c, p)
	u = Perp(n, Vec3{Z: 1})
	if c == CurvatureFlat {
		u = Vec3{X: 1}
	}
	v = n.Cross(u).Normalize()
	return u, v
}
