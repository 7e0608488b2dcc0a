package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	RunID            string  `csv:"run_id"`
	WindowStartFrame int     `csv:"-"`
	WindowEndFrame   int     `csv:"window_end"`
	SimTimeSec       float64 `csv:"sim_time"`

	// Frame timing over the window, from the elapsed milliseconds each
	// tick carried
	Frames      int     `csv:"frames"`
	FrameMeanMs float64 `csv:"frame_mean_ms"`
	FrameP50Ms  float64 `csv:"frame_p50_ms"`
	FrameP90Ms  float64 `csv:"frame_p90_ms"`
	FrameMaxMs  float64 `csv:"frame_max_ms"`
	FPS         float64 `csv:"fps"`

	// Chain state at window end
	Particles     int     `csv:"particles"`
	FollowSpeed   float64 `csv:"follow_speed"`
	IdleWandering bool    `csv:"idle_wandering"`
	LeadToPointer float64 `csv:"lead_to_pointer"` // 0 while no pointer event has arrived
	ChainSpan     float64 `csv:"chain_span"`      // summed link lengths, lead to tail
}

// Percentile returns the p-th empirical quantile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// ComputeFrameStats calculates mean, median, p90 and max from frame times.
func ComputeFrameStats(values []float64) (mean, p50, p90, max float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	// Sort for percentiles
	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)
	max = sorted[n-1]

	return mean, p50, p90, max
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("window_start", s.WindowStartFrame),
		slog.Int("window_end", s.WindowEndFrame),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("frame_mean_ms", s.FrameMeanMs),
		slog.Float64("frame_p50_ms", s.FrameP50Ms),
		slog.Float64("frame_p90_ms", s.FrameP90Ms),
		slog.Float64("frame_max_ms", s.FrameMaxMs),
		slog.Float64("fps", s.FPS),
		slog.Int("particles", s.Particles),
		slog.Float64("follow_speed", s.FollowSpeed),
		slog.Bool("idle_wandering", s.IdleWandering),
		slog.Float64("lead_to_pointer", s.LeadToPointer),
		slog.Float64("chain_span", s.ChainSpan),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndFrame,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"frame_mean_ms", s.FrameMeanMs,
		"frame_p50_ms", s.FrameP50Ms,
		"frame_p90_ms", s.FrameP90Ms,
		"frame_max_ms", s.FrameMaxMs,
		"fps", s.FPS,
		"particles", s.Particles,
		"follow_speed", s.FollowSpeed,
		"idle_wandering", s.IdleWandering,
		"lead_to_pointer", s.LeadToPointer,
		"chain_span", s.ChainSpan,
	)
}
