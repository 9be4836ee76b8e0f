package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/telemetry"
	"github.com/lumamoss/cellscape/vfx"
)

// Update runs one graphical frame: input, simulation step, camera.
func (g *Game) Update() {
	g.handleInput()

	dt := float64(rl.GetFrameTime())
	if dt > 0.1 {
		dt = 0.1 // clamp hitches so animations never teleport
	}
	g.Step(dt)
	g.rig.Update(float32(dt))
}

// Draw renders the scene and HUD, then closes the frame's perf sample.
func (g *Game) Draw() {
	if g.frameOpen {
		g.perf.StartPhase(telemetry.PhaseDraw)
	}

	rl.BeginDrawing()
	rl.ClearBackground(rl.Color{R: 8, G: 12, B: 20, A: 255})

	g.draw.Draw(g.sc, g.rig)

	g.drawHUD()
	rl.EndDrawing()

	g.EndFrame()
}

func (g *Game) drawHUD() {
	rl.DrawText(fmt.Sprintf("mode: %s", g.mode.String()), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("trails: %d  swarms: %d  trees: %d",
		g.trails.ActorCount(), g.swarms.ActorCount(), g.trees.ActorCount()), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("transients: %d  particles: %d  nodes: %d",
		g.effects.Count(), g.sc.ParticleCount(), g.sc.Len()), 10, 60, 20, rl.White)
	if len(g.materializing) > 0 {
		rl.DrawText(fmt.Sprintf("materializing: %d", len(g.materializing)), 10, 85, 20, rl.SkyBlue)
	}
	if len(g.receivers) > 0 {
		rl.DrawText(fmt.Sprintf("receiving energy: %d", len(g.receivers)), 10, 110, 20, rl.Gold)
	}
	if g.paused {
		rl.DrawText("PAUSED", 10, 135, 20, rl.Yellow)
	}
	rl.DrawText("[tab] scale  [c] curvature  [e] event  [space] pause", 10,
		int32(g.cfg.Screen.Height)-30, 18, rl.Gray)
}

// handleInput processes keyboard input.
func (g *Game) handleInput() {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		if g.mode.Scale == vfx.ScaleSoup {
			g.SetScale(vfx.ScaleJungle)
		} else {
			g.SetScale(vfx.ScaleSoup)
		}
	}
	if rl.IsKeyPressed(rl.KeyC) {
		if g.mode.Curvature == geom.CurvatureFlat {
			g.SetCurvature(geom.CurvatureSphere)
		} else {
			g.SetCurvature(geom.CurvatureFlat)
		}
	}
	if rl.IsKeyPressed(rl.KeyE) {
		g.demo.fireRandomEvent()
	}
}
