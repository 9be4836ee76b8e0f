package geometry

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

const trunkSides = 7
const trunkRings = 4

// TrunkMesh allocates a mesh sized for BuildTrunk.
func TrunkMesh() *scene.Mesh {
	verts := trunkSides * (trunkRings + 1)
	return scene.NewMesh(verts, trunkSides*trunkRings*6)
}

// BuildTrunk synthesizes a tapered, variant-seeded trunk in actor-local
// space: +Z is up, the base sits at the origin. The variant seed bends
// the trunk axis and jitters ring radii so no two trees are identical,
// while the same variant always rebuilds the same shape.
func BuildTrunk(mesh *scene.Mesh, radius, height float32, variant uint32, bark scene.Color) {
	rng := rand.New(rand.NewSource(int64(variant)))
	lean := geom.V3((rng.Float32()-0.5)*0.25, (rng.Float32()-0.5)*0.25, 0)

	vi := 0
	for ring := 0; ring <= trunkRings; ring++ {
		t := float32(ring) / trunkRings
		// Taper to 35% radius at the top, with per-ring jitter.
		r := radius * (1 - 0.65*t) * (0.92 + rng.Float32()*0.16)
		center := geom.V3(0, 0, height*t).Add(lean.Scale(height * t * t))
		for s := 0; s < trunkSides; s++ {
			a := float64(s) / trunkSides * 2 * math.Pi
			sin, cos := math.Sincos(a)
			p := center.Add(geom.V3(float32(cos)*r, float32(sin)*r, 0))
			mesh.SetPosition(vi, p.X, p.Y, p.Z)
			mesh.SetColor(vi, bark)
			vi++
		}
	}

	idx := mesh.Indices[:0]
	for ring := 0; ring < trunkRings; ring++ {
		base := uint16(ring * trunkSides)
		next := base + trunkSides
		for s := 0; s < trunkSides; s++ {
			s1 := uint16((s + 1) % trunkSides)
			a := base + uint16(s)
			b := base + s1
			c := next + uint16(s)
			d := next + s1
			idx = append(idx, a, b, c, b, d, c)
		}
	}
	mesh.Indices = idx
	mesh.SetActive(vi)
}

// CanopyBlobs is the number of overlapping blobs forming one canopy.
const CanopyBlobs = 9

// CanopyMesh allocates a point mesh sized for BuildCanopy.
func CanopyMesh() *scene.Mesh {
	return scene.NewPointMesh(CanopyBlobs)
}

// BuildCanopy scatters variant-seeded blob centers around the trunk
// top. The blobs are drawn as soft spheres; the tree system pulses
// their node scale for the breathing look.
func BuildCanopy(mesh *scene.Mesh, radius, height float32, variant uint32, leaf scene.Color) {
	rng := rand.New(rand.NewSource(int64(variant) ^ 0x9e3779b9))
	spread := radius * 3.5
	for i := 0; i < CanopyBlobs; i++ {
		off := RandomInSphere(rng, spread)
		off.Z = off.Z*0.5 + height // flatten vertically, sit on top
		mesh.SetPosition(i, off.X, off.Y, off.Z)
		mesh.SetColor(i, leaf)
		mesh.Sizes[i] = spread * (0.5 + rng.Float32()*0.4)
	}
	mesh.SetActive(CanopyBlobs)
}
