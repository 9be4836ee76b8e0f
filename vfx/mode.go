// Package vfx implements the visual-effects layer: pooled particle
// state, per-entity render systems, and the transient-effect
// dispatcher. Everything here runs on the single frame goroutine.
package vfx

import "github.com/lumamoss/cellscape/geom"

// Scale selects the viewing scale. Soup is the close-up cell view;
// Jungle is the zoomed-out overworld. Categories gate on it: trails
// exist only at soup scale, jungle decoration only at jungle scale.
type Scale uint8

const (
	ScaleSoup Scale = iota
	ScaleJungle
)

// String returns the scale name.
func (s Scale) String() string {
	if s == ScaleJungle {
		return "jungle"
	}
	return "soup"
}

// Mode is the full render mode: curvature plus viewing scale. It is
// passed explicitly into sync calls rather than read from a global, so
// builders stay pure and testable in both modes.
type Mode struct {
	Curvature geom.Curvature
	Scale     Scale
}

// String returns a short display name, e.g. "flat/soup".
func (m Mode) String() string {
	c := "flat"
	if m.Curvature == geom.CurvatureSphere {
		c = "sphere"
	}
	return c + "/" + m.Scale.String()
}
