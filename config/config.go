// Package config provides configuration loading and access for the
// visual-effects layer.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all tunable parameters of the effects layer.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	World     WorldConfig     `yaml:"world"`
	Trail     TrailConfig     `yaml:"trail"`
	Swarm     SwarmConfig     `yaml:"swarm"`
	Effects   EffectsConfig   `yaml:"effects"`
	Tree      TreeConfig      `yaml:"tree"`
	Jungle    JungleConfig    `yaml:"jungle"`
	Camera    CameraConfig    `yaml:"camera"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds world geometry parameters.
type WorldConfig struct {
	Width        float64 `yaml:"width"`         // flat-world extent, world units
	Height       float64 `yaml:"height"`        // flat-world extent, world units
	SphereRadius float64 `yaml:"sphere_radius"` // curved-world radius
}

// TrailConfig holds ribbon-trail parameters.
type TrailConfig struct {
	HistoryCap      int     `yaml:"history_cap"`       // points per single-form trail
	MultiHistoryCap int     `yaml:"multi_history_cap"` // points per multi-form nucleus trail
	BaseWidth       float64 `yaml:"base_width"`
	NucleusWidth    float64 `yaml:"nucleus_width"`     // ribbon width for ring nuclei
	TaperFloor      float64 `yaml:"taper_floor"`       // multi-form tail width ratio floor
	TurbulenceAmp   float64 `yaml:"turbulence_amp"`    // sinusoidal width modulation amplitude
	TurbulenceFreq  float64 `yaml:"turbulence_freq"`   // phase advance per point index
	TurbulenceSpeed float64 `yaml:"turbulence_speed"`  // phase advance per second
	CaptureInterval float64 `yaml:"capture_interval"`  // seconds between history captures
	LerpBase        float64 `yaml:"lerp_base"`         // smoothing factor per reference tick
	NucleusRingDist float64 `yaml:"nucleus_ring_dist"` // ring nucleus offset from center
}

// SwarmConfig holds swarm visual parameters.
type SwarmConfig struct {
	StormBase        int     `yaml:"storm_base"`        // storm particles at base energy
	StormPerEnergy   float64 `yaml:"storm_per_energy"`  // absorbed energy per extra particle
	StormMax         int     `yaml:"storm_max"`         // pool capacity
	StormHysteresis  int     `yaml:"storm_hysteresis"`  // min count delta before resize
	BoundaryFraction float64 `yaml:"boundary_fraction"` // storm bounce radius / shell radius
	DampingRetain    float64 `yaml:"damping_retain"`    // velocity fraction kept after 1s
	Accel            float64 `yaml:"accel"`             // random acceleration magnitude
	AlertAccelMult   float64 `yaml:"alert_accel_mult"`  // acceleration boost while alert
	OrbiterCount     int     `yaml:"orbiter_count"`
	OrbiterSpeed     float64 `yaml:"orbiter_speed"` // base radians/sec
	AuraPerEnergy    float64 `yaml:"aura_per_energy"`
	AuraMinCount     int     `yaml:"aura_min_count"`
	AuraMaxCount     int     `yaml:"aura_max_count"`
	AuraSaturation   float64 `yaml:"aura_saturation"` // absorbed energy at full opacity
	BaseEnergy       float64 `yaml:"base_energy"`     // energy floor; above it counts as absorbed
	LerpBase         float64 `yaml:"lerp_base"`
}

// EffectsConfig holds transient-effect durations (seconds) and particle
// budgets.
type EffectsConfig struct {
	DeathDuration       float64 `yaml:"death_duration"`
	DeathParticles      int     `yaml:"death_particles"`
	HitDuration         float64 `yaml:"hit_duration"`
	HitParticles        int     `yaml:"hit_particles"`
	EvolveDuration      float64 `yaml:"evolve_duration"`
	EvolveParticles     int     `yaml:"evolve_particles"`
	EMPDuration         float64 `yaml:"emp_duration"`
	SwarmDeathDuration  float64 `yaml:"swarm_death_duration"`
	SwarmDeathParticles int     `yaml:"swarm_death_particles"`
	MaterializeDuration float64 `yaml:"materialize_duration"`
	MaterializeParts    int     `yaml:"materialize_particles"`
	TransferDuration    float64 `yaml:"transfer_duration"`
	TransferParticles   int     `yaml:"transfer_particles"`
	MeleeDuration       float64 `yaml:"melee_duration"`
	MeleeSegments       int     `yaml:"melee_segments"`
}

// TreeConfig holds tree and root-network parameters.
type TreeConfig struct {
	SwayFreq        float64 `yaml:"sway_freq"`  // Hz
	SwayAmp         float64 `yaml:"sway_amp"`   // radians
	PulseFreq       float64 `yaml:"pulse_freq"` // Hz
	PulseAmp        float64 `yaml:"pulse_amp"`  // canopy scale modulation
	RootNeighbors   int     `yaml:"root_neighbors"`
	RootMaxDist     float64 `yaml:"root_max_dist"`
	RootTubeSides   int     `yaml:"root_tube_sides"`
	RootTubeSteps   int     `yaml:"root_tube_steps"`
	RootOffsetScale float64 `yaml:"root_offset_scale"` // control-point offset / link length
	TendrilLength   float64 `yaml:"tendril_length"`
}

// JungleConfig holds large-scale background decoration parameters.
type JungleConfig struct {
	GrassBlades     int     `yaml:"grass_blades"`
	GrassWindScale  float64 `yaml:"grass_wind_scale"` // noise spatial frequency
	GrassWindSpeed  float64 `yaml:"grass_wind_speed"` // noise time advance
	GrassSwayAmp    float64 `yaml:"grass_sway_amp"`
	FireflyCount    int     `yaml:"firefly_count"`
	FireflySpeed    float64 `yaml:"firefly_speed"`
	UndergrowthFreq float64 `yaml:"undergrowth_freq"` // breathing pulse Hz
	FloorHexSize    float64 `yaml:"floor_hex_size"`   // soup floor pattern cell size
}

// CameraConfig holds per-scale viewing rig presets.
type CameraConfig struct {
	SoupDistance   float64 `yaml:"soup_distance"`
	JungleDistance float64 `yaml:"jungle_distance"`
	SoupPitch      float64 `yaml:"soup_pitch"`   // radians below horizontal
	JunglePitch    float64 `yaml:"jungle_pitch"` // radians below horizontal
	TransitionRate float64 `yaml:"transition_rate"`
}

// TelemetryConfig holds frame-stats collection settings.
type TelemetryConfig struct {
	StatsWindow  float64 `yaml:"stats_window"` // seconds per aggregation window
	LogEveryTick int     `yaml:"log_every_tick"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	WorldW32, WorldH32 float32
	SphereRadius32     float32
	DT32               float32 // reference tick for frame-rate-independent smoothing
}

var global *Config

// Init loads configuration and installs it globally.
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	c.Derived.SphereRadius32 = float32(c.World.SphereRadius)
	c.Derived.DT32 = 1.0 / 60.0
}

// WriteYAML saves the current configuration to a file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
