package vfx

import (
	"math/rand"
	"testing"
)

func TestVolumeFillInitializesSlot(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	p := NewPool(16)
	p.SetActive(16, VolumeFill(rng, 20, 30, 1, 2.5))

	for i := 0; i < p.Active; i++ {
		if d := p.Pos[i].Length(); d > 20 {
			t.Errorf("slot %d position outside fill radius: %v", i, d)
		}
		if p.Vel[i].Length() == 0 {
			t.Errorf("slot %d has zero velocity", i)
		}
		if p.Size[i] < 1 || p.Size[i] > 2.5 {
			t.Errorf("slot %d size out of range: %v", i, p.Size[i])
		}
	}
}

func TestOrbitFillSignedSpeeds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := NewPool(64)
	p.SetActive(64, OrbitFill(rng, 1.6, 1.5, 3))

	pos, neg := 0, 0
	for i := 0; i < p.Active; i++ {
		switch {
		case p.Seed[i] > 0:
			pos++
		case p.Seed[i] < 0:
			neg++
		default:
			t.Errorf("slot %d has zero angular speed", i)
		}
	}
	if pos == 0 || neg == 0 {
		t.Errorf("expected both orbit directions, got %d/%d", pos, neg)
	}
}
