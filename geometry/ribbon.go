package geometry

import (
	"math"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

// RibbonParams configures one tapered-ribbon rebuild.
type RibbonParams struct {
	Curvature geom.Curvature
	BaseWidth float32
	// TaperFloor is the minimum width ratio the tail shrinks to. Zero
	// for single-form trails; multi-form trails use a nonzero floor so
	// the tail never fully vanishes.
	TaperFloor float32
	// Turbulence superimposes a traveling sine on the width for the
	// liquid-wake look. Phase advances with both point index and
	// wall-clock time, so the modulation appears to flow along the
	// ribbon.
	TurbulenceAmp  float32
	TurbulenceFreq float32 // radians per point index
	Time           float32 // seconds * turbulence speed
	Color          scene.Color
}

// RibbonMeshFor allocates a mesh big enough for a ribbon over maxPoints
// history points: 2 vertices per point, 6 indices per segment.
func RibbonMeshFor(maxPoints int) *scene.Mesh {
	return scene.NewMesh(maxPoints*2, (maxPoints-1)*6)
}

// BuildRibbon rebuilds mesh from an ordered point history (oldest
// first). For each point it emits a left/right vertex pair
// perpendicular to the local travel direction: toward the next point,
// or from the previous point for the last one. Width tapers by the
// per-point age fraction i/(N-1) (0 = oldest) through the taper floor,
// modulated by the traveling turbulence sine. Per-point opacity fades
// with age^1.5. Fewer than 2 points leaves the mesh empty.
func BuildRibbon(mesh *scene.Mesh, points []geom.Vec3, p RibbonParams) {
	n := len(points)
	if n < 2 || mesh.Capacity < n*2 {
		mesh.SetActive(0)
		mesh.Indices = mesh.Indices[:0]
		return
	}

	for i := 0; i < n; i++ {
		var dir geom.Vec3
		if i < n-1 {
			dir = points[i+1].Sub(points[i])
		} else {
			dir = points[i].Sub(points[i-1])
		}
		normal := geom.SurfaceNormal(p.Curvature, points[i])
		// In curved mode the cross-section lies in the tangent plane
		// of the surface at this point; flat mode degenerates to the
		// XY plane.
		side := geom.Perp(dir, normal)

		age := float32(i) / float32(n-1)
		taper := p.TaperFloor + (1-p.TaperFloor)*age
		wave := 1 + float32(math.Sin(float64(float32(i)*p.TurbulenceFreq+p.Time)))*p.TurbulenceAmp
		halfWidth := p.BaseWidth * 0.5 * taper * wave

		alpha := float32(math.Pow(float64(age), 1.5))
		c := p.Color
		c.A = uint8(float32(c.A) * alpha)

		l := points[i].Add(side.Scale(halfWidth))
		r := points[i].Sub(side.Scale(halfWidth))
		mesh.SetPosition(i*2, l.X, l.Y, l.Z)
		mesh.SetPosition(i*2+1, r.X, r.Y, r.Z)
		mesh.SetColor(i*2, c)
		mesh.SetColor(i*2+1, c)
	}

	// Strip winding: two triangles per consecutive point pair.
	idx := mesh.Indices[:0]
	for i := 0; i < n-1; i++ {
		a := uint16(i * 2)
		b := uint16(i*2 + 1)
		c := uint16(i*2 + 2)
		d := uint16(i*2 + 3)
		idx = append(idx, a, b, c, b, d, c)
	}
	mesh.Indices = idx
	mesh.SetActive(n * 2)
}
