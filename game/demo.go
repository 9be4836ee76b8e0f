package game

import (
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/lumamoss/cellscape/components"
	"github.com/lumamoss/cellscape/config"
	"github.com/lumamoss/cellscape/geom"
	"github.com/lumamoss/cellscape/scene"
	"github.com/lumamoss/cellscape/vfx"
)

// Demo population sizes.
const (
	demoPlayers = 4
	demoSwarms  = 3
	demoTrees   = 14
)

// demoDriver populates the ECS with stand-in entities and drives their
// movement and gameplay events, playing the role of the networked
// simulation the effects layer normally mirrors.
type demoDriver struct {
	g *Game

	playerMap *ecs.Map5[
		components.TagPlayer,
		components.Position,
		components.Energy,
		components.NetID,
		components.InterpTarget,
	]
	swarmMap *ecs.Map5[
		components.TagSwarm,
		components.Position,
		components.Swarm,
		components.Energy,
		components.NetID,
	]
	treeMap *ecs.Map4[
		components.TagTree,
		components.Position,
		components.Tree,
		components.NetID,
	]
	multiMap  *ecs.Map1[components.MultiForm]
	posMap    *ecs.Map1[components.Position]
	interpMap *ecs.Map1[components.InterpTarget]
	energyMap *ecs.Map1[components.Energy]
	swMap     *ecs.Map1[components.Swarm]

	players []demoMover
	swarms  []ecs.Entity

	eventClock float64
	nextID     int
}

// demoMover is the wander state of one demo player.
type demoMover struct {
	entity  ecs.Entity
	heading float32
	speed   float32
}

func newDemoDriver(g *Game) *demoDriver {
	w := g.world
	return &demoDriver{
		g: g,
		playerMap: ecs.NewMap5[
			components.TagPlayer,
			components.Position,
			components.Energy,
			components.NetID,
			components.InterpTarget,
		](w),
		swarmMap: ecs.NewMap5[
			components.TagSwarm,
			components.Position,
			components.Swarm,
			components.Energy,
			components.NetID,
		](w),
		treeMap: ecs.NewMap4[
			components.TagTree,
			components.Position,
			components.Tree,
			components.NetID,
		](w),
		multiMap:  ecs.NewMap1[components.MultiForm](w),
		posMap:    ecs.NewMap1[components.Position](w),
		interpMap: ecs.NewMap1[components.InterpTarget](w),
		energyMap: ecs.NewMap1[components.Energy](w),
		swMap:     ecs.NewMap1[components.Swarm](w),
	}
}

// populate spawns the demo world: a few players (one in multi-form),
// enemy swarms, and a jungle tree stand.
func (d *demoDriver) populate() {
	cfg := d.g.cfg
	w, h := cfg.Derived.WorldW32, cfg.Derived.WorldH32
	rng := d.g.rng

	for i := 0; i < demoPlayers; i++ {
		e := d.spawnPlayer(geom.V3(rng.Float32()*w, rng.Float32()*h, 0))
		if i == 0 {
			d.multiMap.Add(e, &components.MultiForm{})
		}
	}

	for i := 0; i < demoSwarms; i++ {
		d.spawnSwarm(geom.V3(rng.Float32()*w, rng.Float32()*h, 0))
	}

	for i := 0; i < demoTrees; i++ {
		d.spawnTree(geom.V3(rng.Float32()*w, rng.Float32()*h, 0))
	}
}

func (d *demoDriver) spawnPlayer(at geom.Vec3) ecs.Entity {
	id := d.id("player")
	e := d.playerMap.NewEntity(
		&components.TagPlayer{},
		&components.Position{X: at.X, Y: at.Y, Z: at.Z},
		&components.Energy{Value: 70, Max: 100},
		&components.NetID{ID: id},
		&components.InterpTarget{X: at.X, Y: at.Y, Z: at.Z},
	)
	d.players = append(d.players, demoMover{
		entity:  e,
		heading: d.g.rng.Float32() * 2 * math.Pi,
		speed:   40 + d.g.rng.Float32()*40,
	})
	d.g.effects.SpawnMaterialize(id, at, scene.Color{R: 120, G: 220, B: 255, A: 255})
	return e
}

func (d *demoDriver) spawnSwarm(at geom.Vec3) ecs.Entity {
	cfg := d.g.cfg.Swarm
	e := d.swarmMap.NewEntity(
		&components.TagSwarm{},
		&components.Position{X: at.X, Y: at.Y, Z: at.Z},
		&components.Swarm{Radius: 24 + d.g.rng.Float32()*16, State: components.SwarmIdle},
		&components.Energy{Value: float32(cfg.BaseEnergy), Max: float32(cfg.BaseEnergy) * 4},
		&components.NetID{ID: d.id("swarm")},
	)
	d.swarms = append(d.swarms, e)
	return e
}

func (d *demoDriver) spawnTree(at geom.Vec3) {
	rng := d.g.rng
	d.treeMap.NewEntity(
		&components.TagTree{},
		&components.Position{X: at.X, Y: at.Y, Z: at.Z},
		&components.Tree{
			Radius:  2.5 + rng.Float32()*2,
			Height:  30 + rng.Float32()*25,
			Variant: rng.Uint32(),
		},
		&components.NetID{ID: d.id("tree")},
	)
}

func (d *demoDriver) id(kind string) string {
	d.nextID++
	return fmt.Sprintf("%s-%d", kind, d.nextID)
}

// drive advances the demo simulation: players wander, swarms drift
// through their behavior states, and a scripted event fires every
// couple of seconds.
func (d *demoDriver) drive(dt float64) {
	d.movePlayers(dt)
	d.moveSwarms(dt)

	d.eventClock += dt
	if d.eventClock >= 2.0 {
		d.eventClock = 0
		d.fireRandomEvent()
	}
}

func (d *demoDriver) movePlayers(dt float64) {
	cfg := d.g.cfg
	w, h := cfg.Derived.WorldW32, cfg.Derived.WorldH32
	rng := d.g.rng

	for i := range d.players {
		m := &d.players[i]
		m.heading += (rng.Float32() - 0.5) * 2 * float32(dt)

		tgt := d.interpMap.Get(m.entity)
		sin, cos := math.Sincos(float64(m.heading))
		tgt.X += float32(cos) * m.speed * float32(dt)
		tgt.Y += float32(sin) * m.speed * float32(dt)
		tgt.X = wrap(tgt.X, w)
		tgt.Y = wrap(tgt.Y, h)

		// Position trails the target; the effects layer smooths the
		// rest.
		pos := d.posMap.Get(m.entity)
		pos.X, pos.Y, pos.Z = tgt.X, tgt.Y, tgt.Z
	}
}

func (d *demoDriver) moveSwarms(dt float64) {
	rng := d.g.rng
	for _, e := range d.swarms {
		if !d.g.view.Alive(e) {
			continue
		}
		sw := d.swMap.Get(e)

		// Occasional state flips with matching intensity drift.
		if rng.Float64() < 0.2*dt {
			sw.State = components.SwarmState(rng.Intn(3))
		}
		switch sw.State {
		case components.SwarmIdle:
			sw.Intensity -= float32(dt) * 0.3
		default:
			sw.Intensity += float32(dt) * 0.5
		}
		sw.Intensity = geom.Clamp01(sw.Intensity)

		pos := d.posMap.Get(e)
		pos.X += (rng.Float32() - 0.5) * 20 * float32(dt)
		pos.Y += (rng.Float32() - 0.5) * 20 * float32(dt)

		// Swarms slowly digest absorbed energy back to baseline.
		en := d.energyMap.Get(e)
		base := float32(d.g.cfg.Swarm.BaseEnergy)
		if en.Value > base {
			en.Value -= float32(dt) * 2
		}
	}
}

// fireRandomEvent exercises one dispatcher entry point.
func (d *demoDriver) fireRandomEvent() {
	rng := d.g.rng
	fx := d.g.effects

	pp, ok := d.randomPlayerPos()
	if !ok {
		return
	}

	switch rng.Intn(8) {
	case 0:
		fx.SpawnDeathBurst(pp, scene.Color{R: 255, G: 80, B: 80, A: 255})
	case 1:
		dir := geom.V3(rng.Float32()-0.5, rng.Float32()-0.5, 0)
		fx.SpawnHitSparks(pp, dir, scene.Color{R: 255, G: 220, B: 120, A: 255})
	case 2:
		fx.SpawnEvolutionBurst(pp, 18, scene.Color{R: 150, G: 255, B: 180, A: 255})
	case 3:
		d.fireEMP(pp)
	case 4:
		d.fireEnergyTransfer(pp)
	case 5:
		dir := geom.V3(rng.Float32()-0.5, rng.Float32()-0.5, 0)
		attack := vfx.AttackWhip
		if rng.Intn(2) == 1 {
			attack = vfx.AttackSlash
		}
		fx.SpawnMeleeArc(pp, dir, 26, attack, scene.Color{R: 200, G: 240, B: 255, A: 255})
	case 6:
		d.killAndRespawnSwarm()
	case 7:
		// Feeding: a swarm absorbs energy, growing its storm and aura.
		if e, ok := d.randomSwarm(); ok {
			en := d.energyMap.Get(e)
			if en.Value < en.Max {
				en.Value += 40
			}
		}
	}
}

// fireEMP pulses at pos and disables every swarm in range.
func (d *demoDriver) fireEMP(pos geom.Vec3) {
	const aoe = 160
	d.g.effects.SpawnEMPPulse(pos, aoe)

	for _, e := range d.swarms {
		if !d.g.view.Alive(e) {
			continue
		}
		sp := d.posMap.Get(e)
		if geom.V3(sp.X, sp.Y, sp.Z).Distance(pos) <= aoe {
			d.swMap.Get(e).DisabledUntil = d.g.clock + 3
		}
	}
}

func (d *demoDriver) fireEnergyTransfer(from geom.Vec3) {
	e, ok := d.randomSwarm()
	if !ok {
		return
	}
	sp := d.posMap.Get(e)
	var id string
	if d.g.view.Alive(e) {
		id, _ = d.g.view.StringID(e)
	}
	drained := 20 + d.g.rng.Float32()*60
	d.g.effects.SpawnEnergyTransfer(from, geom.V3(sp.X, sp.Y, sp.Z), id, drained)

	en := d.energyMap.Get(e)
	if en.Value+drained <= en.Max {
		en.Value += drained
	}
}

// killAndRespawnSwarm removes one swarm entity, fires its death
// explosion, and schedules a replacement elsewhere. The next Sync sweep
// disposes the dead swarm's actor.
func (d *demoDriver) killAndRespawnSwarm() {
	for i, e := range d.swarms {
		if !d.g.view.Alive(e) {
			continue
		}
		pos := d.posMap.Get(e)
		radius := d.swMap.Get(e).Radius
		at := geom.V3(pos.X, pos.Y, pos.Z)

		d.g.world.RemoveEntity(e)
		d.swarms = append(d.swarms[:i], d.swarms[i+1:]...)

		d.g.effects.SpawnSwarmDeath(at, radius, scene.Color{R: 230, G: 120, B: 255, A: 255})

		cfg := d.g.cfg
		d.spawnSwarm(geom.V3(
			d.g.rng.Float32()*cfg.Derived.WorldW32,
			d.g.rng.Float32()*cfg.Derived.WorldH32,
			0,
		))
		return
	}
}

func (d *demoDriver) randomPlayerPos() (geom.Vec3, bool) {
	if len(d.players) == 0 {
		return geom.Vec3{}, false
	}
	m := d.players[d.g.rng.Intn(len(d.players))]
	p := d.posMap.Get(m.entity)
	return geom.V3(p.X, p.Y, p.Z), true
}

func (d *demoDriver) randomSwarm() (ecs.Entity, bool) {
	for range d.swarms {
		e := d.swarms[d.g.rng.Intn(len(d.swarms))]
		if d.g.view.Alive(e) {
			return e, true
		}
	}
	return ecs.Entity{}, false
}

// wrap keeps a coordinate inside [0, limit).
func wrap(v, limit float32) float32 {
	if v < 0 {
		return v + limit
	}
	if v >= limit {
		return v - limit
	}
	return v
}

// worldCenter returns the midpoint of the flat world.
func worldCenter(cfg *config.Config) geom.Vec3 {
	return geom.V3(cfg.Derived.WorldW32/2, cfg.Derived.WorldH32/2, 0)
}
