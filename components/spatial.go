// Package components defines the ECS components the effects layer reads.
// The layer never writes these; the simulation (or the network session
// layer) owns them.
package components

// Position is an entity's world position.
type Position struct {
	X, Y, Z float32
}

// InterpTarget is the network-interpolation target for an entity. When
// present it takes priority over the raw Position as the smoothing
// target, so remote entities glide instead of snapping.
type InterpTarget struct {
	X, Y, Z float32
}
