// Package game hosts the effects layer: it owns the ECS world, the
// scene graph, every render system, and the fixed per-frame update
// order. A built-in demo driver stands in for the real simulation,
// spawning entities and firing gameplay events so the full effect
// surface can be exercised locally.
package game

import (
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/lumamoss/cellscape/camera"
	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/renderer"
	"github.com/lumamoss/cellscape/scene"
	"github.com/lumamoss/cellscape/telemetry"
	"github.com/lumamoss/cellscape/vfx"
	"github.com/lumamoss/cellscape/world"
)

// Options configures a game instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64
	OutputDir      string
}

// Game holds the complete effects-layer state.
type Game struct {
	cfg  *config.Config
	opts Options

	world *ecs.World
	view  *world.View
	rng   *rand.Rand

	sc  *scene.Scene
	rig *camera.Rig

	trails     *vfx.TrailSystem
	swarms     *vfx.SwarmSystem
	trees      *vfx.TreeSystem
	background *vfx.Background
	effects    *vfx.EffectsSystem

	draw *renderer.SceneRenderer
	demo *demoDriver

	mode vfx.Mode

	// Dispatcher outputs from the last frame. The demo driver and HUD
	// read these; real gameplay code would forward them to the entity
	// meshes.
	materializing map[string]float32
	receivers     map[string]struct{}

	perf   *telemetry.PerfCollector
	frames *telemetry.Collector
	output *telemetry.OutputManager

	tick      int64
	clock     float64
	paused    bool
	frameOpen bool
}

// NewGame creates a game instance with the demo world populated.
func NewGame(opts Options) (*Game, error) {
	cfg := config.Cfg()

	w := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))
	sc := scene.New()

	windowFrames := int(opts.StatsWindowSec * float64(cfg.Screen.TargetFPS))
	if windowFrames < 1 {
		windowFrames = cfg.Screen.TargetFPS
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	g := &Game{
		cfg:   cfg,
		opts:  opts,
		world: w,
		view:  world.NewView(w),
		rng:   rng,
		sc:    sc,

		trails:     vfx.NewTrailSystem(cfg, sc, rng),
		swarms:     vfx.NewSwarmSystem(cfg, sc, rng),
		trees:      vfx.NewTreeSystem(cfg, sc, rng),
		background: vfx.NewBackground(cfg, sc, rng),
		effects:    vfx.NewEffectsSystem(cfg, sc, rng),

		draw: renderer.NewSceneRenderer(),
		mode: vfx.Mode{Curvature: geom.CurvatureFlat, Scale: vfx.ScaleSoup},

		perf:   telemetry.NewPerfCollector(windowFrames),
		frames: telemetry.NewCollector(windowFrames),
		output: output,
	}

	g.rig = camera.New(
		float32(cfg.Camera.SoupDistance),
		float32(cfg.Camera.SoupPitch),
		float32(cfg.Camera.TransitionRate),
	)
	g.rig.Target = worldCenter(cfg)

	g.demo = newDemoDriver(g)
	g.demo.populate()

	slog.Info("game initialized",
		"seed", opts.Seed,
		"scale", g.mode.Scale.String(),
		"stats_window_frames", windowFrames,
	)
	return g, nil
}

// Scene exposes the scene graph for the renderer and tests.
func (g *Game) Scene() *scene.Scene { return g.sc }

// Mode returns the current render mode.
func (g *Game) Mode() vfx.Mode { return g.mode }

// Tick returns the current frame counter.
func (g *Game) Tick() int64 { return g.tick }

// SetScale switches the viewing scale. The transition edge clears
// scale-bound content and retargets the camera; calling with the
// current scale is a no-op.
func (g *Game) SetScale(s vfx.Scale) {
	if s == g.mode.Scale {
		return
	}
	g.mode.Scale = s

	switch s {
	case vfx.ScaleJungle:
		// Soup-only content goes away; trail and background rebuild via
		// their own edge detection in Sync.
		g.effects.ClearSoupEffects()
		g.rig.SetPreset(float32(g.cfg.Camera.JungleDistance), float32(g.cfg.Camera.JunglePitch))
	case vfx.ScaleSoup:
		g.rig.SetPreset(float32(g.cfg.Camera.SoupDistance), float32(g.cfg.Camera.SoupPitch))
	}

	slog.Info("scale switched", "scale", s.String())
}

// SetCurvature switches between the flat and spherical world shapes.
func (g *Game) SetCurvature(c geom.Curvature) {
	g.mode.Curvature = c
}

// Step advances the effects layer by dt seconds in the fixed order:
// demo drive, sync, interpolate, animate, effect transients, telemetry.
// Drawing is separate so headless runs skip it entirely.
func (g *Game) Step(dt float64) {
	if g.paused {
		return
	}
	g.clock += dt
	g.tick++

	g.perf.StartFrame()
	g.frameOpen = true

	g.demo.drive(dt)

	g.perf.StartPhase(telemetry.PhaseSync)
	g.trails.Sync(g.view, g.mode)
	g.swarms.Sync(g.view, g.clock)
	g.trees.Sync(g.view, g.mode)
	g.background.Sync(g.mode)

	g.perf.StartPhase(telemetry.PhaseInterpolate)
	g.trails.Interpolate(dt)
	g.swarms.Interpolate(dt)

	g.perf.StartPhase(telemetry.PhaseAnimate)
	g.trails.UpdateAnimations(dt, g.mode)
	g.swarms.UpdateAnimations(dt)
	g.trees.UpdateAnimations(dt)

	g.perf.StartPhase(telemetry.PhaseBackground)
	g.background.UpdateAnimations(dt)

	g.perf.StartPhase(telemetry.PhaseEffects)
	g.materializing, g.receivers = g.effects.Update(dt)

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.recordFrame(dt)
}

// EndFrame closes the perf sample opened by Step. Graphical runs call
// it after Draw so the draw phase is included; headless runs call it
// right after Step.
func (g *Game) EndFrame() {
	if !g.frameOpen {
		return
	}
	g.perf.EndFrame()
	g.frameOpen = false
}

// recordFrame feeds the frame collector and flushes full windows to the
// output files.
func (g *Game) recordFrame(dt float64) {
	ws, full := g.frames.Record(telemetry.FrameSample{
		Tick:        g.tick,
		TrailActors: g.trails.ActorCount(),
		SwarmActors: g.swarms.ActorCount(),
		TreeActors:  g.trees.ActorCount(),
		Transients:  g.effects.Count(),
		Particles:   g.sc.ParticleCount(),
		SceneNodes:  g.sc.Len(),
		FrameMS:     dt * 1000,
	})
	if !full {
		return
	}

	if err := g.output.WriteFrames(ws); err != nil {
		slog.Error("writing frame stats", "error", err)
	}
	perfStats := g.perf.Stats()
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		slog.Error("writing perf stats", "error", err)
	}
	if g.opts.LogStats {
		perfStats.LogStats()
		slog.Info("frames",
			"window_end", ws.WindowEnd,
			"trail_actors", ws.TrailActors,
			"swarm_actors", ws.SwarmActors,
			"tree_actors", ws.TreeActors,
			"particles_mean", int(ws.ParticlesMean),
			"frame_ms_p95", ws.FrameMSP95,
		)
	}
}

// Unload tears everything down: systems first, then a leak check on the
// scene graph.
func (g *Game) Unload() {
	g.trails.Dispose()
	g.swarms.Dispose()
	g.trees.Dispose()
	g.background.Dispose()
	g.effects.Dispose()

	if n := g.sc.Len(); n != 0 {
		slog.Warn("scene not empty after dispose", "nodes", n)
	}

	if ws, ok := g.frames.Flush(); ok {
		if err := g.output.WriteFrames(ws); err != nil {
			slog.Error("writing final frame stats", "error", err)
		}
	}
	if err := g.output.Close(); err != nil {
		slog.Error("closing output", "error", err)
	}
}
