package vfx

import (
	"math"
	"math/rand"

	"github.com/lumamoss/cellscape/components"
	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
	"github.com/lumamoss/cellscape/world"
)

// swarmActor bundles the named part handles of one swarm: addressing
// parts by field instead of child index removes any ordering dependency
// between creation and update code.
type swarmActor struct {
	id string

	shell    *scene.Node // translucent containing sphere
	storm    *scene.Node // internal turbulent point cloud
	orbiters *scene.Node // ring of orbiting points

	// Aura parts exist only while absorbed energy is positive.
	auraRing   *scene.Node
	auraPoints *scene.Node

	stormPool *Pool
	orbitPool *Pool
	auraPool  *Pool

	orbitAngles []float32
	auraAngles  []float32

	pos     geom.Vec3
	target  geom.Vec3
	snapped bool
	phase   float32

	// Cached gameplay state, refreshed each sync. Animation ticks read
	// only these fields, never the ECS.
	radius     float32
	state      components.SwarmState
	intensity  float32
	disabled   bool
	absorbed   float32
	stormCount int // active count after hysteresis
}

// SwarmSystem owns the visual actors for enemy swarms.
type SwarmSystem struct {
	cfg *config.Config
	sc  *scene.Scene
	rng *rand.Rand

	reg  *Registry[*swarmActor]
	time float64
}

// NewSwarmSystem creates the swarm system drawing into sc.
func NewSwarmSystem(cfg *config.Config, sc *scene.Scene, rng *rand.Rand) *SwarmSystem {
	s := &SwarmSystem{cfg: cfg, sc: sc, rng: rng}
	s.reg = NewRegistry(func(a *swarmActor) {
		sc.Remove(a.shell)
		sc.Remove(a.storm)
		sc.Remove(a.orbiters)
		sc.Remove(a.auraRing)
		sc.Remove(a.auraPoints)
	})
	return s
}

// ActorCount returns the number of live swarm actors.
func (s *SwarmSystem) ActorCount() int {
	return s.reg.Len()
}

// actor looks up a live actor by id, for tests.
func (s *SwarmSystem) actor(id string) (*swarmActor, bool) {
	return s.reg.Get(id)
}

// Sync reconciles swarm actors against the live entity set and
// refreshes each actor's interpolation target and cached gameplay
// state. now is the wall clock the disabled-until timestamp compares
// against.
func (s *SwarmSystem) Sync(v *world.View, now float64) {
	cfg := s.cfg.Swarm

	v.ForEachSwarm(func(sw world.Swarm) {
		a, _ := s.reg.Ensure(sw.ID, func() *swarmActor {
			return s.buildActor(sw)
		})

		a.target = sw.Target
		a.radius = sw.Swarm.Radius
		a.state = sw.Swarm.State
		a.intensity = geom.Clamp01(sw.Swarm.Intensity)
		a.disabled = now < sw.Swarm.DisabledUntil
		a.absorbed = sw.Energy.Value - float32(cfg.BaseEnergy)
		if a.absorbed < 0 {
			a.absorbed = 0
		}

		s.updateStormCount(a)
		s.updateAura(a)
	})

	s.reg.Sweep()
}

// buildActor assembles the shell, storm, and orbiter parts for a newly
// seen swarm.
func (s *SwarmSystem) buildActor(sw world.Swarm) *swarmActor {
	cfg := s.cfg.Swarm
	radius := sw.Swarm.Radius

	a := &swarmActor{
		id:     sw.ID,
		phase:  s.rng.Float32() * 2 * math.Pi,
		radius: radius,
	}

	a.shell = scene.NewNode(scene.KindSphere, nil)
	a.shell.Params[0] = radius
	a.shell.Tint = scene.Color{R: 180, G: 60, B: 200, A: 70}
	s.sc.Add(a.shell)

	a.stormPool = NewPool(cfg.StormMax)
	a.stormCount = cfg.StormBase
	boundary := radius * float32(cfg.BoundaryFraction)
	a.stormPool.SetActive(cfg.StormBase, VolumeFill(s.rng, boundary, 30, 1, 2.5))
	stormMesh := scene.NewPointMesh(cfg.StormMax)
	for i := 0; i < cfg.StormMax; i++ {
		stormMesh.SetColor(i, scene.Color{R: 230, G: 120, B: 255, A: 220})
	}
	a.storm = scene.NewNode(scene.KindPoints, stormMesh)
	s.sc.Add(a.storm)

	a.orbitPool = NewPool(cfg.OrbiterCount)
	a.orbitPool.SetActive(cfg.OrbiterCount, OrbitFill(s.rng, float32(cfg.OrbiterSpeed), 1.5, 3))
	a.orbitAngles = make([]float32, cfg.OrbiterCount)
	for i := range a.orbitAngles {
		a.orbitAngles[i] = s.rng.Float32() * 2 * math.Pi
	}
	orbitMesh := scene.NewPointMesh(cfg.OrbiterCount)
	for i := 0; i < cfg.OrbiterCount; i++ {
		orbitMesh.SetColor(i, scene.Color{R: 255, G: 180, B: 255, A: 255})
	}
	a.orbiters = scene.NewNode(scene.KindPoints, orbitMesh)
	s.sc.Add(a.orbiters)

	return a
}

// updateStormCount applies the monotonic growth rule
// count = base + floor(absorbed/k), resizing only when the delta beats
// the hysteresis threshold so tiny energy fluctuations do not churn the
// buffer. Growth beyond the pool maximum clamps.
func (s *SwarmSystem) updateStormCount(a *swarmActor) {
	cfg := s.cfg.Swarm
	desired := cfg.StormBase + int(float64(a.absorbed)/cfg.StormPerEnergy)
	if desired > cfg.StormMax {
		desired = cfg.StormMax
	}
	delta := desired - a.stormCount
	if delta < 0 {
		delta = -delta
	}
	if delta < cfg.StormHysteresis {
		return
	}
	boundary := a.radius * float32(cfg.BoundaryFraction)
	a.stormPool.SetActive(desired, VolumeFill(s.rng, boundary, 30, 1, 2.5))
	a.stormCount = desired
}

// updateAura creates, scales, or removes the aura parts. The aura
// exists only while absorbed energy is positive; opacity and particle
// count grow monotonically with absorbed energy up to the saturating
// cap, and everything is disposed the moment absorbed returns to zero.
func (s *SwarmSystem) updateAura(a *swarmActor) {
	cfg := s.cfg.Swarm

	if a.absorbed <= 0 {
		if a.auraRing != nil {
			s.sc.Remove(a.auraRing)
			s.sc.Remove(a.auraPoints)
			a.auraRing = nil
			a.auraPoints = nil
			a.auraPool = nil
			a.auraAngles = nil
		}
		return
	}

	if a.auraRing == nil {
		a.auraRing = scene.NewNode(scene.KindRing, nil)
		a.auraRing.Tint = scene.Color{R: 255, G: 120, B: 40, A: 160}
		s.sc.Add(a.auraRing)

		a.auraPool = NewPool(cfg.AuraMaxCount)
		a.auraAngles = make([]float32, cfg.AuraMaxCount)
		for i := range a.auraAngles {
			a.auraAngles[i] = s.rng.Float32() * 2 * math.Pi
		}
		auraMesh := scene.NewPointMesh(cfg.AuraMaxCount)
		for i := 0; i < cfg.AuraMaxCount; i++ {
			auraMesh.SetColor(i, scene.Color{R: 255, G: 160, B: 60, A: 230})
		}
		a.auraPoints = scene.NewNode(scene.KindPoints, auraMesh)
		s.sc.Add(a.auraPoints)
	}

	count := int(float64(a.absorbed) / cfg.AuraPerEnergy)
	if count < cfg.AuraMinCount {
		count = cfg.AuraMinCount
	}
	if count > cfg.AuraMaxCount {
		count = cfg.AuraMaxCount
	}
	a.auraPool.SetActive(count, OrbitFill(s.rng, float32(cfg.OrbiterSpeed)*0.6, 1, 2))

	opacity := geom.Clamp01(a.absorbed / float32(cfg.AuraSaturation))
	a.auraRing.Opacity = 0.3 + 0.7*opacity
	a.auraPoints.Opacity = 0.4 + 0.6*opacity
	a.auraRing.Params[0] = a.radius * 1.25
	a.auraRing.Params[1] = a.radius * 1.4
}

// Interpolate smooths every actor toward its target and moves all its
// part nodes together.
func (s *SwarmSystem) Interpolate(dt float64) {
	f := LerpFactor(float32(s.cfg.Swarm.LerpBase), float32(dt), s.cfg.Derived.DT32)
	s.reg.Visit(func(_ string, a *swarmActor) {
		if !a.snapped {
			a.pos = a.target
			a.snapped = true
		} else {
			a.pos = a.pos.Lerp(a.target, f)
		}
		a.shell.Position = a.pos
		a.storm.Position = a.pos
		a.orbiters.Position = a.pos
		if a.auraRing != nil {
			a.auraRing.Position = a.pos
			a.auraPoints.Position = a.pos
		}
	})
}

// UpdateAnimations advances storm turbulence, orbiters, aura motion,
// and the shell pulse. Disabled actors are skipped entirely: their
// particles freeze in place until the flag clears.
func (s *SwarmSystem) UpdateAnimations(dt float64) {
	s.time += dt
	cfg := s.cfg.Swarm
	t := float32(s.time)

	s.reg.Visit(func(_ string, a *swarmActor) {
		if a.disabled {
			return
		}

		accel := float32(cfg.Accel)
		speedMult := float32(1)
		if a.state != components.SwarmIdle {
			accel *= float32(cfg.AlertAccelMult)
			speedMult = 1.6
		}
		accel *= 1 + a.intensity
		speedMult *= 1 + a.intensity*0.8

		StepTurbulence(a.stormPool, TurbulenceParams{
			DT:     float32(dt),
			Radius: a.radius * float32(cfg.BoundaryFraction),
			Accel:  accel,
			Retain: float32(cfg.DampingRetain),
			Rand:   s.rng,
		})
		writePool(a.storm.Mesh, a.stormPool)

		u, v := geom.V3(1, 0, 0), geom.V3(0, 1, 0)
		StepOrbit(a.orbitAngles, a.orbitPool, a.radius*1.1, u, v, speedMult, float32(dt))
		writePool(a.orbiters.Mesh, a.orbitPool)

		if a.auraPool != nil {
			StepOrbit(a.auraAngles, a.auraPool, a.radius*1.35, u, v, speedMult*0.5, float32(dt))
			writePool(a.auraPoints.Mesh, a.auraPool)
		}

		a.shell.Scale = Pulse(1, 0.05, 0.6, t, a.phase)
	})
}

// writePool copies the active particle positions and sizes into a point
// mesh.
func writePool(m *scene.Mesh, p *Pool) {
	for i := 0; i < p.Active; i++ {
		m.SetPosition(i, p.Pos[i].X, p.Pos[i].Y, p.Pos[i].Z)
		m.Sizes[i] = p.Size[i]
	}
	m.SetActive(p.Active)
}

// Dispose releases every actor. Safe during teardown.
func (s *SwarmSystem) Dispose() {
	s.reg.DisposeAll()
}
