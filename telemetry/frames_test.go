package telemetry

import (
	"math"
	"testing"
)

func TestCollector_WindowFlush(t *testing.T) {
	c := NewCollector(3)

	if _, full := c.Record(FrameSample{Tick: 1, FrameMS: 10}); full {
		t.Error("window should not flush after 1 of 3 samples")
	}
	if _, full := c.Record(FrameSample{Tick: 2, FrameMS: 20}); full {
		t.Error("window should not flush after 2 of 3 samples")
	}

	ws, full := c.Record(FrameSample{Tick: 3, FrameMS: 30})
	if !full {
		t.Fatal("window should flush on the 3rd sample")
	}

	if ws.WindowEnd != 3 {
		t.Errorf("expected window_end 3, got %d", ws.WindowEnd)
	}
	if ws.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", ws.Frames)
	}
	if math.Abs(ws.FrameMSMean-20) > 1e-9 {
		t.Errorf("expected mean frame ms 20, got %f", ws.FrameMSMean)
	}
	if ws.FrameMSMax != 30 {
		t.Errorf("expected max frame ms 30, got %f", ws.FrameMSMax)
	}

	if c.Pending() != 0 {
		t.Errorf("window should reset after flush, %d pending", c.Pending())
	}
}

func TestCollector_CountAggregation(t *testing.T) {
	c := NewCollector(4)

	samples := []FrameSample{
		{Tick: 1, TrailActors: 2, Transients: 0, Particles: 100},
		{Tick: 2, TrailActors: 2, Transients: 3, Particles: 180},
		{Tick: 3, TrailActors: 3, Transients: 1, Particles: 150},
		{Tick: 4, TrailActors: 3, Transients: 2, Particles: 120},
	}

	var ws WindowStats
	var full bool
	for _, s := range samples {
		ws, full = c.Record(s)
	}
	if !full {
		t.Fatal("expected window to flush")
	}

	// Actor counts report the latest frame, not an average.
	if ws.TrailActors != 3 {
		t.Errorf("expected trail actor count from last frame (3), got %d", ws.TrailActors)
	}
	if ws.TransientsMax != 3 {
		t.Errorf("expected transients max 3, got %d", ws.TransientsMax)
	}
	if math.Abs(ws.TransientsMean-1.5) > 1e-9 {
		t.Errorf("expected transients mean 1.5, got %f", ws.TransientsMean)
	}
	if ws.ParticlesMax != 180 {
		t.Errorf("expected particles max 180, got %d", ws.ParticlesMax)
	}
	if math.Abs(ws.ParticlesMean-137.5) > 1e-9 {
		t.Errorf("expected particles mean 137.5, got %f", ws.ParticlesMean)
	}
}

func TestCollector_PartialFlush(t *testing.T) {
	c := NewCollector(60)

	if _, ok := c.Flush(); ok {
		t.Error("empty collector should have nothing to flush")
	}

	c.Record(FrameSample{Tick: 1, FrameMS: 16})
	c.Record(FrameSample{Tick: 2, FrameMS: 18})

	ws, ok := c.Flush()
	if !ok {
		t.Fatal("expected partial flush to produce stats")
	}
	if ws.Frames != 2 {
		t.Errorf("expected 2 frames in partial window, got %d", ws.Frames)
	}
	if ws.WindowEnd != 2 {
		t.Errorf("expected window_end 2, got %d", ws.WindowEnd)
	}
}

func TestCollector_Quantiles(t *testing.T) {
	c := NewCollector(100)
	var ws WindowStats
	var full bool
	for i := 1; i <= 100; i++ {
		ws, full = c.Record(FrameSample{Tick: int64(i), FrameMS: float64(i)})
	}
	if !full {
		t.Fatal("expected the 100th sample to flush the window")
	}

	// Exact quantile values depend on the estimator; sanity-bound them.
	if ws.FrameMSP50 < 45 || ws.FrameMSP50 > 55 {
		t.Errorf("p50 out of range: %f", ws.FrameMSP50)
	}
	if ws.FrameMSP95 < 90 || ws.FrameMSP95 > 100 {
		t.Errorf("p95 out of range: %f", ws.FrameMSP95)
	}
	if ws.FrameMSP95 <= ws.FrameMSP50 {
		t.Error("p95 should exceed p50 for increasing samples")
	}
}
