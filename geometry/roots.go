package geometry

import (
	"math"
	"math/rand"
	"sort"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

// RootLink is one root connection between two trees, with the two
// control points the tube curves through.
type RootLink struct {
	A, B   int
	C1, C2 geom.Vec3
}

// Tendril is a short decorative dead-end root grown by trees with
// fewer than two links.
type Tendril struct {
	From geom.Vec3
	Tip  geom.Vec3
}

// pairKey builds an unordered key so A-B and B-A dedupe to one link.
func pairKey(a, b int) uint64 {
	if a > b {
		a, b = b, a
	}
	return uint64(a)<<32 | uint64(uint32(b))
}

// ComputeRootLinks connects each tree to its k nearest neighbors within
// maxDist. Neighbors at near-zero distance are skipped: the
// perpendicular used for control-point offsets would be degenerate.
// Connections are deduplicated by unordered pair key. Control-point
// offsets are deterministic from the pair of tree seeds, so a rebuild
// with the same trees reproduces the same curves instead of
// re-randomizing.
func ComputeRootLinks(positions []geom.Vec3, seeds []uint32, k int, maxDist, offsetScale, tendrilLength float32) ([]RootLink, []Tendril) {
	type neighbor struct {
		idx  int
		dist float32
	}

	links := make([]RootLink, 0, len(positions)*k/2)
	linkCount := make([]int, len(positions))
	taken := make(map[uint64]struct{})
	scratch := make([]neighbor, 0, len(positions))

	for i := range positions {
		scratch = scratch[:0]
		for j := range positions {
			if j == i {
				continue
			}
			d := positions[i].Distance(positions[j])
			if d < 1e-3 || d > maxDist {
				continue
			}
			scratch = append(scratch, neighbor{idx: j, dist: d})
		}
		sort.Slice(scratch, func(a, b int) bool { return scratch[a].dist < scratch[b].dist })
		if len(scratch) > k {
			scratch = scratch[:k]
		}

		for _, nb := range scratch {
			key := pairKey(i, nb.idx)
			if _, ok := taken[key]; ok {
				continue
			}
			taken[key] = struct{}{}

			a, b := positions[i], positions[nb.idx]
			dir := b.Sub(a)
			side := geom.Perp(dir, geom.V3(0, 0, 1))

			// Per-pair deterministic offsets.
			rng := rand.New(rand.NewSource(int64(seeds[i]) ^ int64(seeds[nb.idx])<<17))
			off := nb.dist * offsetScale
			c1 := a.Add(dir.Scale(0.33)).Add(side.Scale((rng.Float32()*2 - 1) * off))
			c2 := a.Add(dir.Scale(0.66)).Add(side.Scale((rng.Float32()*2 - 1) * off))

			links = append(links, RootLink{A: i, B: nb.idx, C1: c1, C2: c2})
			linkCount[i]++
			linkCount[nb.idx]++
		}
	}

	var tendrils []Tendril
	for i := range positions {
		if linkCount[i] >= 2 {
			continue
		}
		rng := rand.New(rand.NewSource(int64(seeds[i]) * 31))
		n := 2 + rng.Intn(2)
		for t := 0; t < n; t++ {
			a := rng.Float64() * 2 * math.Pi
			sin, cos := math.Sincos(a)
			tip := positions[i].Add(geom.V3(
				float32(cos)*tendrilLength*(0.5+rng.Float32()*0.5),
				float32(sin)*tendrilLength*(0.5+rng.Float32()*0.5),
				0,
			))
			tendrils = append(tendrils, Tendril{From: positions[i], Tip: tip})
		}
	}

	return links, tendrils
}

// bezier evaluates the cubic through a, c1, c2, b at t.
func bezier(a, c1, c2, b geom.Vec3, t float32) geom.Vec3 {
	u := 1 - t
	p := a.Scale(u * u * u)
	p = p.Add(c1.Scale(3 * u * u * t))
	p = p.Add(c2.Scale(3 * u * t * t))
	p = p.Add(b.Scale(t * t * t))
	return p
}

// RootMeshFor allocates a triangle mesh sized for BuildRootTubes.
func RootMeshFor(links, tendrils, sides, steps int) *scene.Mesh {
	segVerts := (steps + 1) * sides
	verts := links*segVerts + tendrils*2*sides
	idx := links*steps*sides*6 + tendrils*sides*6
	return scene.NewMesh(verts, idx)
}

// BuildRootTubes emits every link as a smooth tube along its bezier
// curve, tapering slightly toward the middle, plus thin two-ring stubs
// for the tendrils.
func BuildRootTubes(mesh *scene.Mesh, positions []geom.Vec3, links []RootLink, tendrils []Tendril, sides, steps int, radius float32, color scene.Color) {
	vi := 0
	idx := mesh.Indices[:0]

	ring := func(center, dir geom.Vec3, r float32) {
		u := geom.Perp(dir, geom.V3(0, 0, 1))
		w := dir.Normalize().Cross(u).Normalize()
		for s := 0; s < sides; s++ {
			a := float64(s) / float64(sides) * 2 * math.Pi
			sin, cos := math.Sincos(a)
			p := center.Add(u.Scale(float32(cos) * r)).Add(w.Scale(float32(sin) * r))
			mesh.SetPosition(vi, p.X, p.Y, p.Z)
			mesh.SetColor(vi, color)
			vi++
		}
	}

	connectRings := func(base int, count int) {
		for r := 0; r < count; r++ {
			r0 := uint16(base + r*sides)
			r1 := uint16(base + (r+1)*sides)
			for s := 0; s < sides; s++ {
				s1 := uint16((s + 1) % sides)
				a := r0 + uint16(s)
				b := r0 + s1
				c := r1 + uint16(s)
				d := r1 + s1
				idx = append(idx, a, b, c, b, d, c)
			}
		}
	}

	for _, l := range links {
		a, b := positions[l.A], positions[l.B]
		base := vi
		for step := 0; step <= steps; step++ {
			t := float32(step) / float32(steps)
			p := bezier(a, l.C1, l.C2, b, t)
			next := bezier(a, l.C1, l.C2, b, geom.Clamp01(t+0.01))
			dir := next.Sub(p)
			if dir.LengthSq() < 1e-10 {
				dir = b.Sub(a)
			}
			// Slight sag toward the middle, thinner mid-span.
			r := radius * (0.7 + 0.3*float32(math.Abs(float64(t-0.5))*2))
			ring(p, dir, r)
		}
		connectRings(base, steps)
	}

	for _, t := range tendrils {
		base := vi
		dir := t.Tip.Sub(t.From)
		ring(t.From, dir, radius*0.5)
		ring(t.Tip, dir, radius*0.15)
		connectRings(base, 1)
	}

	mesh.Indices = idx
	mesh.SetActive(vi)
}
