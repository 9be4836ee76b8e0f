// Package telemetry collects per-frame statistics about the effect
// layer: actor counts, live particle totals, and frame timing. Samples
// are aggregated over fixed windows and written as CSV rows.
package telemetry

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// FrameSample holds the counts observed on a single rendered frame.
// The game host fills one in at the end of each frame and hands it to
// the collector.
type FrameSample struct {
	Tick int64

	TrailActors int
	SwarmActors int
	TreeActors  int
	Transients  int

	// Particles is the total number of live pool particles across all
	// systems this frame.
	Particles int

	// SceneNodes is the scene graph size after the frame's sweep.
	SceneNodes int

	FrameMS float64
}

// WindowStats is one aggregated window, flattened for CSV export.
type WindowStats struct {
	WindowEnd int64 `csv:"window_end"`
	Frames    int   `csv:"frames"`

	TrailActors int `csv:"trail_actors"`
	SwarmActors int `csv:"swarm_actors"`
	TreeActors  int `csv:"tree_actors"`

	TransientsMean float64 `csv:"transients_mean"`
	TransientsMax  int     `csv:"transients_max"`

	ParticlesMean float64 `csv:"particles_mean"`
	ParticlesMax  int     `csv:"particles_max"`

	SceneNodes int `csv:"scene_nodes"`

	FrameMSMean float64 `csv:"frame_ms_mean"`
	FrameMSP50  float64 `csv:"frame_ms_p50"`
	FrameMSP95  float64 `csv:"frame_ms_p95"`
	FrameMSMax  float64 `csv:"frame_ms_max"`
}

// Collector accumulates frame samples and flushes an aggregated window
// once enough frames have been recorded.
type Collector struct {
	windowFrames int
	samples      []FrameSample

	// scratch buffers reused across Flush calls
	frameMS    []float64
	transients []float64
	particles  []float64
}

// NewCollector creates a collector that aggregates over windowFrames
// frames per window.
func NewCollector(windowFrames int) *Collector {
	if windowFrames < 1 {
		windowFrames = 60
	}
	return &Collector{
		windowFrames: windowFrames,
		samples:      make([]FrameSample, 0, windowFrames),
	}
}

// Record adds one frame's sample. It returns aggregated stats and true
// when the window is full; the window resets afterward.
func (c *Collector) Record(s FrameSample) (WindowStats, bool) {
	c.samples = append(c.samples, s)
	if len(c.samples) < c.windowFrames {
		return WindowStats{}, false
	}
	stats := c.flush()
	return stats, true
}

// Flush aggregates whatever samples are pending, regardless of window
// fill. Returns false if nothing was recorded.
func (c *Collector) Flush() (WindowStats, bool) {
	if len(c.samples) == 0 {
		return WindowStats{}, false
	}
	return c.flush(), true
}

func (c *Collector) flush() WindowStats {
	n := len(c.samples)
	last := c.samples[n-1]

	c.frameMS = c.frameMS[:0]
	c.transients = c.transients[:0]
	c.particles = c.particles[:0]

	transMax, partMax := 0, 0
	frameMax := 0.0
	for _, s := range c.samples {
		c.frameMS = append(c.frameMS, s.FrameMS)
		c.transients = append(c.transients, float64(s.Transients))
		c.particles = append(c.particles, float64(s.Particles))
		if s.Transients > transMax {
			transMax = s.Transients
		}
		if s.Particles > partMax {
			partMax = s.Particles
		}
		if s.FrameMS > frameMax {
			frameMax = s.FrameMS
		}
	}

	// Quantile wants sorted input.
	sort.Float64s(c.frameMS)

	ws := WindowStats{
		WindowEnd: last.Tick,
		Frames:    n,

		TrailActors: last.TrailActors,
		SwarmActors: last.SwarmActors,
		TreeActors:  last.TreeActors,

		TransientsMean: stat.Mean(c.transients, nil),
		TransientsMax:  transMax,

		ParticlesMean: stat.Mean(c.particles, nil),
		ParticlesMax:  partMax,

		SceneNodes: last.SceneNodes,

		FrameMSMean: stat.Mean(c.frameMS, nil),
		FrameMSP50:  stat.Quantile(0.5, stat.Empirical, c.frameMS, nil),
		FrameMSP95:  stat.Quantile(0.95, stat.Empirical, c.frameMS, nil),
		FrameMSMax:  frameMax,
	}

	c.samples = c.samples[:0]
	return ws
}

// Pending returns the number of samples waiting in the current window.
func (c *Collector) Pending() int {
	return len(c.samples)
}
