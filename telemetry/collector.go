package telemetry

import (
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/trail/chain"
)

// Collector accumulates frame times within windows of simulated time and
// produces WindowStats.
type Collector struct {
	windowDurationMs float64
	runID            string

	// Current window tracking
	frame            int
	simTimeMs        float64
	windowStartFrame int
	windowStartMs    float64
	frameTimes       []float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulated seconds.
func NewCollector(windowDurationSec float64, runID string) *Collector {
	if windowDurationSec <= 0 {
		windowDurationSec = 5
	}
	return &Collector{
		windowDurationMs: windowDurationSec * 1000,
		runID:            runID,
	}
}

// RecordFrame records one tick's elapsed milliseconds.
func (c *Collector) RecordFrame(elapsedMs float64) {
	c.frame++
	c.simTimeMs += elapsedMs
	c.frameTimes = append(c.frameTimes, elapsedMs)
}

// Frame returns the number of frames recorded so far.
func (c *Collector) Frame() int {
	return c.frame
}

// ShouldFlush returns true if the current window has covered its duration.
func (c *Collector) ShouldFlush() bool {
	return c.simTimeMs-c.windowStartMs >= c.windowDurationMs
}

// Pending reports whether frames were recorded since the last flush.
func (c *Collector) Pending() bool {
	return len(c.frameTimes) > 0
}

// Flush produces a WindowStats sampled from m and resets counters for the
// next window.
func (c *Collector) Flush(m chain.Model) WindowStats {
	mean, p50, p90, max := ComputeFrameStats(c.frameTimes)

	var fps float64
	if window := c.simTimeMs - c.windowStartMs; window > 0 {
		fps = float64(len(c.frameTimes)) / (window / 1000)
	}

	stats := WindowStats{
		RunID:            c.runID,
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   c.frame,
		SimTimeSec:       c.simTimeMs / 1000,

		Frames:      len(c.frameTimes),
		FrameMeanMs: mean,
		FrameP50Ms:  p50,
		FrameP90Ms:  p90,
		FrameMaxMs:  max,
		FPS:         fps,

		Particles:     len(m.Particles),
		FollowSpeed:   m.Settings.FollowSpeed,
		IdleWandering: m.Settings.IdleWander && m.MousePosition.IsEmpty(),
		LeadToPointer: LeadToPointer(m),
		ChainSpan:     ChainSpan(m.Particles),
	}

	// Reset for next window
	c.windowStartFrame = c.frame
	c.windowStartMs = c.simTimeMs
	c.frameTimes = c.frameTimes[:0]

	return stats
}

// LeadToPointer is the distance from the lead particle to the pointer,
// or 0 before any pointer event.
func LeadToPointer(m chain.Model) float64 {
	if len(m.Particles) == 0 || m.MousePosition.IsEmpty() {
		return 0
	}
	return m.Lead().Position().Distance(m.MousePosition)
}

// ChainSpan sums the link lengths between consecutive particles.
func ChainSpan(ps []chain.Particle) float64 {
	var span float64
	for i := 1; i < len(ps); i++ {
		a := r2.Vec{X: ps[i-1].X, Y: ps[i-1].Y}
		b := r2.Vec{X: ps[i].X, Y: ps[i].Y}
		span += r2.Norm(r2.Sub(a, b))
	}
	return span
}
