package vfx

import (
	"testing"

	"github.com/lumamoss/cellscape/geom"
)

func TestHistoryFIFOEviction(t *testing.T) {
	h := NewHistory(3)

	for i := 1; i <= 5; i++ {
		h.Push(geom.V3(float32(i), 0, 0))
	}

	if h.Len() != 3 {
		t.Fatalf("expected len 3, got %d", h.Len())
	}

	// Oldest two (1, 2) evicted; remaining order oldest-to-newest.
	want := []float32{3, 4, 5}
	for i, w := range want {
		if got := h.At(i).X; got != w {
			t.Errorf("At(%d).X = %v, want %v", i, got, w)
		}
	}
	if h.Newest().X != 5 {
		t.Errorf("newest = %v, want 5", h.Newest().X)
	}
}

func TestHistoryCopyToPreservesOrder(t *testing.T) {
	h := NewHistory(4)
	for i := 1; i <= 6; i++ {
		h.Push(geom.V3(float32(i), 0, 0))
	}

	scratch := make([]geom.Vec3, 0, 4)
	out := h.CopyTo(scratch)

	if len(out) != 4 {
		t.Fatalf("expected 4 points, got %d", len(out))
	}
	for i, w := range []float32{3, 4, 5, 6} {
		if out[i].X != w {
			t.Errorf("out[%d].X = %v, want %v", i, out[i].X, w)
		}
	}
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(3)
	h.Push(geom.V3(1, 0, 0))
	h.Push(geom.V3(2, 0, 0))
	h.Clear()

	if h.Len() != 0 {
		t.Errorf("expected empty history, got len %d", h.Len())
	}

	h.Push(geom.V3(7, 0, 0))
	if h.At(0).X != 7 {
		t.Errorf("push after clear should start fresh, got %v", h.At(0).X)
	}
}

func TestHistoryMinCap(t *testing.T) {
	h := NewHistory(0)
	if h.Cap() != 2 {
		t.Errorf("cap should round up to 2, got %d", h.Cap())
	}
}
