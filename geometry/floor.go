package geometry

import (
	"math"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
)

// BuildHexFloor emits the soup floor's hex/circuit line pattern across
// [0,w]x[0,h] as a line-list mesh. Each hex contributes only its east,
// southeast, and southwest edges so shared edges are not emitted twice.
func BuildHexFloor(w, h, cellSize float32, color scene.Color) *scene.Mesh {
	// Pointy-top hex lattice spacing.
	dx := cellSize * float32(math.Sqrt(3))
	dy := cellSize * 1.5

	cols := int(w/dx) + 2
	rows := int(h/dy) + 2

	// 3 edges per hex, 2 vertices per edge.
	mesh := scene.NewMesh(cols*rows*6, 0)

	corner := func(cx, cy float32, i int) geom.Vec3 {
		a := math.Pi/6 + float64(i)*math.Pi/3
		sin, cos := math.Sincos(a)
		return geom.V3(cx+cellSize*float32(cos), cy+cellSize*float32(sin), 0)
	}

	vi := 0
	emit := func(a, b geom.Vec3) {
		mesh.SetPosition(vi, a.X, a.Y, a.Z)
		mesh.SetColor(vi, color)
		vi++
		mesh.SetPosition(vi, b.X, b.Y, b.Z)
		mesh.SetColor(vi, color)
		vi++
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			cx := float32(col) * dx
			if row%2 == 1 {
				cx += dx / 2
			}
			cy := float32(row) * dy
			// Corners 0..5 counterclockwise from the lower-right.
			// East edge (corners 5-0), southeast (4-5), southwest (3-4).
			emit(corner(cx, cy, 5), corner(cx, cy, 0))
			emit(corner(cx, cy, 4), corner(cx, cy, 5))
			emit(corner(cx, cy, 3), corner(cx, cy, 4))
		}
	}
	mesh.SetActive(vi)
	return mesh
}
