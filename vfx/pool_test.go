package vfx

import (
	"testing"

	"github.com/lumamoss/cellscape/geom"
)

func TestPoolSetActiveClamps(t *testing.T) {
	p := NewPool(10)

	p.SetActive(25, nil)
	if p.Active != 10 {
		t.Errorf("active should clamp to max, got %d", p.Active)
	}
	p.SetActive(-5, nil)
	if p.Active != 0 {
		t.Errorf("active should clamp to zero, got %d", p.Active)
	}
}

func TestPoolGrowthInitializesOnlyNewSlots(t *testing.T) {
	p := NewPool(10)

	calls := make(map[int]int)
	fill := func(i int, p *Pool) {
		calls[i]++
		p.Pos[i] = geom.V3(float32(i), 0, 0)
	}

	p.SetActive(4, fill)
	p.SetActive(8, fill)

	for i := 0; i < 8; i++ {
		if calls[i] != 1 {
			t.Errorf("slot %d initialized %d times, want 1", i, calls[i])
		}
	}

	// Shrinking then regrowing re-initializes the regrown slots but
	// never touches the still-active prefix.
	p.SetActive(2, fill)
	p.SetActive(6, fill)
	if calls[0] != 1 || calls[1] != 1 {
		t.Error("shrink+grow must not reinitialize surviving slots")
	}
	if calls[3] != 2 {
		t.Errorf("regrown slot should be reinitialized, got %d calls", calls[3])
	}
}

func TestPoolNeverReallocates(t *testing.T) {
	p := NewPool(64)
	pos := &p.Pos[0]
	vel := &p.Vel[0]

	p.SetActive(64, func(i int, p *Pool) {})
	p.SetActive(1, nil)
	p.SetActive(64, func(i int, p *Pool) {})

	if &p.Pos[0] != pos || &p.Vel[0] != vel {
		t.Error("pool buffers must stay stable across active-count changes")
	}
}

func TestPoolMinCapacity(t *testing.T) {
	p := NewPool(0)
	if p.Max != 1 {
		t.Errorf("zero capacity should round up to 1, got %d", p.Max)
	}
}
