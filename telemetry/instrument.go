package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/trail/chain"
	"github.com/pthm-cable/trail/render"
	"github.com/pthm-cable/trail/runtime"
)

// Program is the chain program as the runtime sees it.
type Program = runtime.Program[render.Surface, chain.Model, chain.Msg]

// Monitor observes a running chain program: it times each frame's update
// and view, windows the frame times, and flushes stats to the log and the
// output files.
type Monitor struct {
	Collector *Collector
	Perf      *PerfCollector
	Output    *OutputManager // nil disables CSV output
	LogStats  bool

	// OnFlush, if set, receives every flushed window.
	OnFlush func(WindowStats)

	last chain.Model
}

// NewMonitor creates a monitor with a stats window of windowSec simulated
// seconds and a perf window of perfFrames frames.
func NewMonitor(windowSec float64, perfFrames int, runID string, out *OutputManager) *Monitor {
	return &Monitor{
		Collector: NewCollector(windowSec, runID),
		Perf:      NewPerfCollector(perfFrames),
		Output:    out,
	}
}

// Wrap returns prog with its tick update and view instrumented. Messages
// other than ticks pass through untimed.
func (mon *Monitor) Wrap(prog Program) Program {
	update := prog.Update
	view := prog.View

	prog.Update = func(m chain.Model, msg chain.Msg) chain.Model {
		tick, ok := msg.(chain.Tick)
		if !ok {
			return update(m, msg)
		}
		mon.Perf.BeginFrame()
		mon.Perf.StartPhase(PhaseUpdate)
		m = update(m, msg)
		mon.Collector.RecordFrame(tick.ElapsedMs)
		return m
	}

	prog.View = func(s render.Surface, dispatch runtime.Dispatch[chain.Msg], m chain.Model) {
		mon.Perf.StartPhase(PhaseView)
		view(s, dispatch, m)

		mon.Perf.StartPhase(PhaseTelemetry)
		mon.last = m
		if mon.Collector.ShouldFlush() {
			mon.flush(m)
		}
		mon.Perf.EndFrame()
		mon.Perf.RecordFrame()
	}

	return prog
}

// Finish flushes any partial window and closes the output.
func (mon *Monitor) Finish() error {
	if mon.Collector.Pending() {
		mon.flush(mon.last)
	}
	return mon.Output.Close()
}

func (mon *Monitor) flush(m chain.Model) {
	stats := mon.Collector.Flush(m)
	perfStats := mon.Perf.Stats()

	if mon.OnFlush != nil {
		mon.OnFlush(stats)
	}

	// Log stats if enabled (console output)
	if mon.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := mon.Output.WriteStats(stats); err != nil {
		slog.Error("failed to write stats", "error", err)
	}
	if err := mon.Output.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
		slog.Error("failed to write perf", "error", err)
	}
}
