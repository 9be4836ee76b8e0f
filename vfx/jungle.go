package vfx

import (
	"math"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/geometry"
	"github.com/lumamoss/cellscape/scene"
)

// Background owns the scale-specific environment decoration: the hex
// circuit floor at soup scale; grass, fireflies, and undergrowth at
// jungle scale. It is not ECS-backed; content is built on the
// transition edge into a scale and disposed on the edge out.
type Background struct {
	cfg *config.Config
	sc  *scene.Scene
	rng *rand.Rand

	noise opensimplex.Noise
	time  float64

	// current tracks which scale's decoration is built. Sync is
	// edge-triggered on it.
	current Scale
	built   bool

	// Soup-scale parts.
	floor *scene.Node

	// Jungle-scale parts.
	grass       *geometry.GrassField
	grassNode   *scene.Node
	fireflies   *scene.Node
	fireflyPool *Pool
	undergrowth *scene.Node
	underPhases []float32
}

// NewBackground creates the background system drawing into sc.
func NewBackground(cfg *config.Config, sc *scene.Scene, rng *rand.Rand) *Background {
	return &Background{
		cfg:   cfg,
		sc:    sc,
		rng:   rng,
		noise: opensimplex.New(rng.Int63()),
	}
}

// Sync rebuilds decoration when the viewing scale changes. Calling it
// again with the same scale is a no-op.
func (b *Background) Sync(mode Mode) {
	if b.built && mode.Scale == b.current {
		return
	}
	b.disposeAll()
	b.current = mode.Scale
	b.built = true

	switch mode.Scale {
	case ScaleSoup:
		b.buildSoup()
	case ScaleJungle:
		b.buildJungle()
	}
}

func (b *Background) buildSoup() {
	w, h := b.cfg.Derived.WorldW32, b.cfg.Derived.WorldH32
	mesh := geometry.BuildHexFloor(w, h, float32(b.cfg.Jungle.FloorHexSize),
		scene.Color{R: 30, G: 70, B: 90, A: 90})
	b.floor = scene.NewNode(scene.KindLines, mesh)
	b.sc.Add(b.floor)
}

func (b *Background) buildJungle() {
	cfg := b.cfg.Jungle
	w, h := b.cfg.Derived.WorldW32, b.cfg.Derived.WorldH32

	b.grass = geometry.BuildGrassField(b.rng, cfg.GrassBlades, w, h,
		scene.Color{R: 70, G: 150, B: 60, A: 255})
	b.grassNode = scene.NewNode(scene.KindTriangles, b.grass.Mesh)
	b.sc.Add(b.grassNode)

	b.fireflyPool = NewPool(cfg.FireflyCount)
	b.fireflyPool.SetActive(cfg.FireflyCount, func(i int, p *Pool) {
		p.Pos[i] = geom.V3(b.rng.Float32()*w, b.rng.Float32()*h, 15+b.rng.Float32()*40)
		p.Seed[i] = b.rng.Float32() * 2 * math.Pi
		p.Size[i] = 1 + b.rng.Float32()*1.5
	})
	mesh := scene.NewPointMesh(cfg.FireflyCount)
	for i := 0; i < cfg.FireflyCount; i++ {
		mesh.SetColor(i, scene.Color{R: 220, G: 255, B: 130, A: 255})
	}
	b.fireflies = scene.NewNode(scene.KindPoints, mesh)
	b.sc.Add(b.fireflies)

	// Undergrowth clumps: static soft blobs that breathe in opacity.
	const clumps = 40
	under := scene.NewPointMesh(clumps)
	b.underPhases = make([]float32, clumps)
	for i := 0; i < clumps; i++ {
		under.SetPosition(i, b.rng.Float32()*w, b.rng.Float32()*h, 2)
		under.SetColor(i, scene.Color{R: 30, G: 90, B: 45, A: 140})
		under.Sizes[i] = 20 + b.rng.Float32()*30
		b.underPhases[i] = b.rng.Float32() * 2 * math.Pi
	}
	under.SetActive(clumps)
	b.undergrowth = scene.NewNode(scene.KindPoints, under)
	b.sc.Add(b.undergrowth)
}

// UpdateAnimations advances grass wind, firefly drift, and undergrowth
// breathing. Soup scale has no animated decoration.
func (b *Background) UpdateAnimations(dt float64) {
	b.time += dt
	if !b.built || b.current != ScaleJungle {
		return
	}
	cfg := b.cfg.Jungle
	t := b.time * cfg.GrassWindSpeed

	// Grass: lean each blade by the noise field sampled at its base,
	// plus its own phase so neighboring blades stay slightly apart.
	b.grass.WriteBlades(func(base geom.Vec3) float32 {
		n := b.noise.Eval3(float64(base.X)*cfg.GrassWindScale, float64(base.Y)*cfg.GrassWindScale, t)
		return float32(n) * float32(cfg.GrassSwayAmp) * 20
	})

	// Fireflies: noise-steered drift with a gentle altitude bob and a
	// per-firefly blink.
	w, h := b.cfg.Derived.WorldW32, b.cfg.Derived.WorldH32
	speed := float32(cfg.FireflySpeed)
	mesh := b.fireflies.Mesh
	for i := 0; i < b.fireflyPool.Active; i++ {
		p := &b.fireflyPool.Pos[i]
		a := b.noise.Eval3(float64(p.X)*0.004, float64(p.Y)*0.004, b.time*0.3+float64(b.fireflyPool.Seed[i]))
		angle := a * 2 * math.Pi
		sin, cos := math.Sincos(angle)
		p.X += float32(cos) * speed * float32(dt)
		p.Y += float32(sin) * speed * float32(dt)
		if p.X < 0 {
			p.X += w
		} else if p.X > w {
			p.X -= w
		}
		if p.Y < 0 {
			p.Y += h
		} else if p.Y > h {
			p.Y -= h
		}
		z := p.Z + Pulse(0, 4, 0.3, float32(b.time), b.fireflyPool.Seed[i])
		mesh.SetPosition(i, p.X, p.Y, z)

		blink := Pulse(0.7, 0.3, 0.8, float32(b.time), b.fireflyPool.Seed[i]*3)
		mesh.Colors[i*4+3] = uint8(255 * geom.Clamp01(blink))
	}
	mesh.SetActive(b.fireflyPool.Active)

	// Undergrowth breathing.
	um := b.undergrowth.Mesh
	for i := range b.underPhases {
		breath := Pulse(0.55, 0.45, float32(cfg.UndergrowthFreq), float32(b.time), b.underPhases[i])
		um.Colors[i*4+3] = uint8(140 * geom.Clamp01(breath))
	}
}

func (b *Background) disposeAll() {
	b.sc.Remove(b.floor)
	b.floor = nil
	b.sc.Remove(b.grassNode)
	b.grassNode = nil
	b.grass = nil
	b.sc.Remove(b.fireflies)
	b.fireflies = nil
	b.fireflyPool = nil
	b.sc.Remove(b.undergrowth)
	b.undergrowth = nil
	b.underPhases = nil
}

// Dispose releases everything. Safe during teardown.
func (b *Background) Dispose() {
	b.disposeAll()
	b.built = false
}
