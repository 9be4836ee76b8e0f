package components

// SwarmState is the behavioral state reported by the simulation for an
// enemy swarm. The effects layer only uses it to scale turbulence.
type SwarmState uint8

const (
	SwarmIdle SwarmState = iota
	SwarmAlert
	SwarmChase
)

// String returns the display name for a SwarmState.
func (s SwarmState) String() string {
	switch s {
	case SwarmIdle:
		return "Idle"
	case SwarmAlert:
		return "Alert"
	case SwarmChase:
		return "Chase"
	}
	return "Unknown"
}

// Swarm holds swarm gameplay state mirrored into visuals.
type Swarm struct {
	Radius        float32
	State         SwarmState
	Intensity     float32 // 0-1 aggression ratio from the simulation
	DisabledUntil float64 // wall-clock seconds; animations freeze until then
}

// Energy tracks an entity's energy pool. The ratio Value/Max drives
// trail brightness; for swarms, Value above the configured baseline is
// the absorbed energy that grows the internal storm and aura.
type Energy struct {
	Value float32
	Max   float32
}

// Ratio returns Value/Max clamped to [0,1], or 0 when Max is zero.
func (e Energy) Ratio() float32 {
	if e.Max <= 0 {
		return 0
	}
	r := e.Value / e.Max
	if r < 0 {
		return 0
	}
	if r > 1 {
		return 1
	}
	return r
}
