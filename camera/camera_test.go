package camera

import (
	"math"
	"testing"
)

func TestNewStartsAtPreset(t *testing.T) {
	rig := New(350, 0.9, 3)

	if rig.Distance != 350 || rig.Pitch != 0.9 {
		t.Errorf("expected rig at preset (350, 0.9), got (%f, %f)", rig.Distance, rig.Pitch)
	}
	if !rig.Settled(0.001) {
		t.Error("fresh rig should be settled")
	}
}

func TestUpdateConvergesToPreset(t *testing.T) {
	rig := New(350, 0.9, 3)
	rig.SetPreset(1600, 1.1)

	for i := 0; i < 600; i++ {
		rig.Update(1.0 / 60.0)
	}

	if math.Abs(float64(rig.Distance-1600)) > 1 {
		t.Errorf("expected distance ~1600, got %f", rig.Distance)
	}
	if math.Abs(float64(rig.Pitch-1.1)) > 0.01 {
		t.Errorf("expected pitch ~1.1, got %f", rig.Pitch)
	}
}

func TestUpdateFrameRateIndependence(t *testing.T) {
	a := New(350, 0.9, 3)
	b := New(350, 0.9, 3)
	a.SetPreset(1600, 1.1)
	b.SetPreset(1600, 1.1)

	// One second as 60 small ticks vs 10 large ticks
	for i := 0; i < 60; i++ {
		a.Update(1.0 / 60.0)
	}
	for i := 0; i < 10; i++ {
		b.Update(1.0 / 10.0)
	}

	if math.Abs(float64(a.Distance-b.Distance)) > 2 {
		t.Errorf("tick size changed convergence: %f vs %f", a.Distance, b.Distance)
	}
}

func TestSnap(t *testing.T) {
	rig := New(350, 0.9, 3)
	rig.SetPreset(1600, 1.1)
	rig.Snap()

	if rig.Distance != 1600 || rig.Pitch != 1.1 {
		t.Errorf("snap should jump to preset, got (%f, %f)", rig.Distance, rig.Pitch)
	}
}

func TestEyeGeometry(t *testing.T) {
	rig := New(100, math.Pi/2, 3) // looking straight down
	rig.Target.Z = 0

	eye := rig.Eye()
	if math.Abs(float64(eye.Z-100)) > 0.01 {
		t.Errorf("straight-down eye should sit 100 above target, got z=%f", eye.Z)
	}
}
