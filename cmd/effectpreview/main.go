// Effect preview tool - fires individual transient effects on demand
// with live-tunable parameters.
//
// Usage: go run ./cmd/effectpreview
package main

import (
	"fmt"
	"math/rand"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/lumamoss/cellscape/camera"
	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/renderer"
	"github.com/lumamoss/cellscape/scene"
	"github.com/lumamoss/cellscape/vfx"
)

const (
	windowWidth  = 1100
	windowHeight = 720
	panelWidth   = 300
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Effect Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(60)

	config.MustInit("")
	cfg := config.Cfg()

	sc := scene.New()
	rng := rand.New(rand.NewSource(1))
	fx := vfx.NewEffectsSystem(cfg, sc, rng)
	draw := renderer.NewSceneRenderer()

	center := geom.V3(cfg.Derived.WorldW32/2, cfg.Derived.WorldH32/2, 0)
	rig := camera.New(220, 0.9, 3)
	rig.Target = center

	nextMaterializeID := 0

	for !rl.WindowShouldClose() {
		dt := float64(rl.GetFrameTime())
		fx.Update(dt)
		rig.Update(float32(dt))

		rl.BeginDrawing()
		rl.ClearBackground(rl.Color{R: 8, G: 12, B: 20, A: 255})

		draw.Draw(sc, rig)

		panelX := float32(windowWidth - panelWidth - 10)
		panelY := float32(10)

		rl.DrawText("Effects", int32(panelX), int32(panelY), 20, rl.RayWhite)
		panelY += 35

		button := func(label string, fire func()) {
			if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 20, Height: 28}, label) {
				fire()
			}
			panelY += 36
		}

		button("Death Burst", func() {
			fx.SpawnDeathBurst(center, scene.Color{R: 255, G: 80, B: 80, A: 255})
		})
		button("Hit Sparks", func() {
			fx.SpawnHitSparks(center, geom.V3(1, 0.3, 0), scene.Color{R: 255, G: 220, B: 120, A: 255})
		})
		button("Evolution Burst", func() {
			fx.SpawnEvolutionBurst(center, 18, scene.Color{R: 150, G: 255, B: 180, A: 255})
		})
		button("EMP Pulse", func() {
			fx.SpawnEMPPulse(center, 120)
		})
		button("Swarm Death", func() {
			fx.SpawnSwarmDeath(center, 30, scene.Color{R: 230, G: 120, B: 255, A: 255})
		})
		button("Materialize", func() {
			nextMaterializeID++
			id := fmt.Sprintf("preview-%d", nextMaterializeID)
			fx.SpawnMaterialize(id, center, scene.Color{R: 120, G: 220, B: 255, A: 255})
		})
		button("Energy Transfer", func() {
			from := center.Add(geom.V3(-60, -30, 0))
			fx.SpawnEnergyTransfer(from, center, "preview-recv", 60)
		})
		button("Melee Whip", func() {
			fx.SpawnMeleeArc(center, geom.V3(1, 0, 0), 26, vfx.AttackWhip,
				scene.Color{R: 200, G: 240, B: 255, A: 255})
		})
		button("Melee Slash", func() {
			fx.SpawnMeleeArc(center, geom.V3(1, 0, 0), 26, vfx.AttackSlash,
				scene.Color{R: 255, G: 200, B: 200, A: 255})
		})

		panelY += 10
		rl.DrawLine(int32(panelX), int32(panelY), int32(panelX+panelWidth-20), int32(panelY), rl.Gray)
		panelY += 15

		slider := func(label string, val *float64, lo, hi float32) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.LightGray)
			panelY += 18
			nv := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: panelWidth - 80, Height: 18},
				"", "", float32(*val), lo, hi,
			)
			rl.DrawText(fmt.Sprintf("%.2f", *val), int32(panelX+panelWidth-60), int32(panelY), 16, rl.RayWhite)
			*val = float64(nv)
			panelY += 28
		}

		slider("Death duration (s)", &cfg.Effects.DeathDuration, 0.1, 3)
		slider("EMP duration (s)", &cfg.Effects.EMPDuration, 0.1, 3)
		slider("Melee duration (s)", &cfg.Effects.MeleeDuration, 0.1, 2)
		slider("Transfer duration (s)", &cfg.Effects.TransferDuration, 0.2, 4)

		rl.DrawText(fmt.Sprintf("transients: %d  particles: %d", fx.Count(), sc.ParticleCount()),
			10, windowHeight-30, 18, rl.Gray)

		rl.EndDrawing()
	}

	fx.Dispose()
}
