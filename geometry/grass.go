package geometry

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

// GrassField is a wind-swayed blade field. The builder fixes each
// blade's base, height, and phase; the per-frame update only rewrites
// the tip vertices from the sampled wind, so the mesh never grows.
type GrassField struct {
	Base   []geom.Vec3
	Height []float32
	Phase  []float32
	Width  float32
	Mesh   *scene.Mesh
}

// BuildGrassField scatters count blades across the rectangle
// [0,w]x[0,h] and writes their rest-pose quads.
func BuildGrassField(rng *rand.Rand, count int, w, h float32, color scene.Color) *GrassField {
	f := &GrassField{
		Base:   make([]geom.Vec3, count),
		Height: make([]float32, count),
		Phase:  make([]float32, count),
		Width:  1.6,
		Mesh:   scene.NewMesh(count*4, count*6),
	}

	idx := f.Mesh.Indices[:0]
	for i := 0; i < count; i++ {
		f.Base[i] = geom.V3(rng.Float32()*w, rng.Float32()*h, 0)
		f.Height[i] = 8 + rng.Float32()*14
		f.Phase[i] = rng.Float32() * 2 * math.Pi

		// Darker blades in the back rows read as depth.
		c := color
		shade := 0.75 + rng.Float32()*0.25
		c.R = uint8(float32(c.R) * shade)
		c.G = uint8(float32(c.G) * shade)
		c.B = uint8(float32(c.B) * shade)
		for v := 0; v < 4; v++ {
			f.Mesh.SetColor(i*4+v, c)
		}

		a := uint16(i * 4)
		idx = append(idx, a, a+1, a+2, a+1, a+3, a+2)
	}
	f.Mesh.Indices = idx
	f.Mesh.SetActive(count * 4)

	f.WriteBlades(func(geom.Vec3) float32 { return 0 })
	return f
}

// WriteBlades rewrites every blade quad with the tip displaced by the
// sampled wind lean (world units of horizontal tip offset).
func (f *GrassField) WriteBlades(lean func(base geom.Vec3) float32) {
	half := f.Width * 0.5
	for i := range f.Base {
		b := f.Base[i]
		tip := geom.V3(b.X+lean(b), b.Y, b.Z+f.Height[i])
		f.Mesh.SetPosition(i*4, b.X-half, b.Y, b.Z)
		f.Mesh.SetPosition(i*4+1, b.X+half, b.Y, b.Z)
		f.Mesh.SetPosition(i*4+2, tip.X-half*0.3, tip.Y, tip.Z)
		f.Mesh.SetPosition(i*4+3, tip.X+half*0.3, tip.Y, tip.Z)
	}
}
