// Package renderer draws the scene graph with raylib. It holds no
// per-frame state of its own: everything it needs lives on the scene
// nodes, so systems stay free of GPU concerns and renderers stay free
// of game logic.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumamoss/cellscape/camera"
	"github.com/lumamoss/cellscape/scene"
)

// SceneRenderer draws a scene from a camera rig.
type SceneRenderer struct{}

// NewSceneRenderer creates a new scene renderer.
func NewSceneRenderer() *SceneRenderer {
	return &SceneRenderer{}
}

// Draw renders every visible node. Must run between BeginDrawing and
// EndDrawing.
func (r *SceneRenderer) Draw(sc *scene.Scene, rig *camera.Rig) {
	eye := rig.Eye()
	cam := rl.Camera3D{
		Position:   rl.Vector3{X: eye.X, Y: eye.Z, Z: eye.Y},
		Target:     rl.Vector3{X: rig.Target.X, Y: rig.Target.Z, Z: rig.Target.Y},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       45,
		Projection: rl.CameraPerspective,
	}

	rl.BeginMode3D(cam)
	sc.Visit(func(n *scene.Node) {
		if !n.Visible || n.Opacity <= 0 {
			return
		}
		switch n.Kind {
		case scene.KindTriangles, scene.KindRibbon:
			drawTriangles(n)
		case scene.KindPoints:
			drawPoints(n)
		case scene.KindLines:
			drawLines(n)
		case scene.KindRing:
			drawRing(n)
		case scene.KindSphere:
			drawSphere(n)
		}
	})
	rl.EndMode3D()
}

// world positions use Z-up; raylib uses Y-up. toRL swaps the axes once
// at the draw boundary so everything upstream stays Z-up.
func toRL(x, y, z float32) rl.Vector3 {
	return rl.Vector3{X: x, Y: z, Z: y}
}

func nodeColor(n *scene.Node, c scene.Color) rl.Color {
	a := float32(c.A) * n.Opacity
	if a > 255 {
		a = 255
	}
	return rl.Color{R: c.R, G: c.G, B: c.B, A: uint8(a)}
}

func meshColor(n *scene.Node, m *scene.Mesh, i int) rl.Color {
	return nodeColor(n, scene.Color{
		R: m.Colors[i*4],
		G: m.Colors[i*4+1],
		B: m.Colors[i*4+2],
		A: m.Colors[i*4+3],
	})
}

func drawTriangles(n *scene.Node) {
	m := n.Mesh
	if m == nil {
		return
	}

	rl.PushMatrix()
	rl.Translatef(n.Position.X, n.Position.Z, n.Position.Y)
	// Rotation is about the world up axis, which is raylib's Y after the
	// axis swap.
	if n.Rotation != 0 {
		rl.Rotatef(n.Rotation*180/3.14159265, 0, 1, 0)
	}
	if n.Scale != 1 {
		rl.Scalef(n.Scale, n.Scale, n.Scale)
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := int(m.Indices[t]), int(m.Indices[t+1]), int(m.Indices[t+2])
		if a >= m.Active || b >= m.Active || c >= m.Active {
			continue
		}
		col := meshColor(n, m, a)
		rl.DrawTriangle3D(
			toRL(m.Positions[a*3], m.Positions[a*3+1], m.Positions[a*3+2]),
			toRL(m.Positions[b*3], m.Positions[b*3+1], m.Positions[b*3+2]),
			toRL(m.Positions[c*3], m.Positions[c*3+1], m.Positions[c*3+2]),
			col,
		)
	}
	rl.PopMatrix()
}

func drawPoints(n *scene.Node) {
	m := n.Mesh
	if m == nil {
		return
	}
	for i := 0; i < m.Active; i++ {
		pos := toRL(
			n.Position.X+m.Positions[i*3],
			n.Position.Y+m.Positions[i*3+1],
			n.Position.Z+m.Positions[i*3+2],
		)
		size := m.Sizes[i] * n.Scale
		if size <= 0 {
			continue
		}
		rl.DrawSphereEx(pos, size, 4, 6, meshColor(n, m, i))
	}
}

func drawLines(n *scene.Node) {
	m := n.Mesh
	if m == nil {
		return
	}
	for i := 0; i+1 < m.Active; i += 2 {
		rl.DrawLine3D(
			toRL(n.Position.X+m.Positions[i*3], n.Position.Y+m.Positions[i*3+1], n.Position.Z+m.Positions[i*3+2]),
			toRL(n.Position.X+m.Positions[(i+1)*3], n.Position.Y+m.Positions[(i+1)*3+1], n.Position.Z+m.Positions[(i+1)*3+2]),
			meshColor(n, m, i),
		)
	}
}

// drawRing draws a flat annulus as two wire circles at the inner and
// outer radii held in Params.
func drawRing(n *scene.Node) {
	inner, outer := n.Params[0], n.Params[1]
	center := toRL(n.Position.X, n.Position.Y, n.Position.Z)
	axis := rl.Vector3{X: 1, Y: 0, Z: 0}
	col := nodeColor(n, n.Tint)
	rl.DrawCircle3D(center, inner*n.Scale, axis, 90, col)
	rl.DrawCircle3D(center, outer*n.Scale, axis, 90, col)
}

func drawSphere(n *scene.Node) {
	radius := n.Params[0] * n.Scale
	if radius <= 0 {
		return
	}
	center := toRL(n.Position.X, n.Position.Y, n.Position.Z)
	rl.DrawSphereEx(center, radius, 8, 12, nodeColor(n, n.Tint))
}
