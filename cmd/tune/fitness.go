package main

import (
	"math"
	"sync"
	"time"

	"github.com/pthm-cable/trail/chain"
	"github.com/pthm-cable/trail/config"
	"github.com/pthm-cable/trail/render"
	"github.com/pthm-cable/trail/runtime"
	"github.com/pthm-cable/trail/telemetry"
)

// Orbit is the scripted pointer path: a circle around the canvas centre.
type Orbit struct {
	Radius float64 // pixels
	Speed  float64 // radians per second
}

// At returns the pointer position t into the run, starting at phase.
func (o Orbit) At(center chain.Position, phase float64, t time.Duration) chain.Position {
	a := phase + o.Speed*t.Seconds()
	return chain.Position{
		X: center.X + math.Cos(a)*o.Radius,
		Y: center.Y + math.Sin(a)*o.Radius,
	}
}

// Goal is what a tuned chain should look like while chasing the orbit.
type Goal struct {
	Span      float64 // desired summed link length in pixels
	LagWeight float64 // weight of lead-to-pointer distance relative to span error
}

// FitnessEvaluator runs headless chases and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	baseConfig *config.Config
	seeds      []int64
	duration   time.Duration
	orbit      Orbit
	goal       Goal

	mu       sync.Mutex
	lastSpan float64 // mean span from most recent Evaluate call
	lastLag  float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, baseCfg *config.Config, seeds []int64, duration time.Duration, orbit Orbit, goal Goal) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		baseConfig: baseCfg,
		seeds:      seeds,
		duration:   duration,
		orbit:      orbit,
		goal:       goal,
	}
}

// LastMetrics returns the mean span and lag from the most recent evaluation.
func (fe *FitnessEvaluator) LastMetrics() (span, lag float64) {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastSpan, fe.lastLag
}

// Windows skipped while the chain unfolds from the centre.
const warmupWindows = 2

// runResult holds the results from a single chase.
type runResult struct {
	span float64 // mean chain span over valid windows
	lag  float64 // mean lead-to-pointer distance over valid windows
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]runResult, len(fe.seeds))
	var wg sync.WaitGroup

	// Runs share nothing mutable, so every seed gets its own goroutine
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runChase(x, s)
		}(i, seed)
	}
	wg.Wait()

	var span, lag float64
	for _, r := range results {
		span += r.span
		lag += r.lag
	}
	n := float64(len(results))
	span /= n
	lag /= n

	fe.mu.Lock()
	fe.lastSpan = span
	fe.lastLag = lag
	fe.mu.Unlock()

	return fe.computeFitness(span, lag)
}

// runChase runs one headless chase of the orbit and summarises its windows.
func (fe *FitnessEvaluator) runChase(x []float64, seed int64) runResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)
	settings := cfg.ChainSettings()

	var windows []telemetry.WindowStats
	mon := telemetry.NewMonitor(1, cfg.Screen.TargetFPS, "", nil)
	mon.OnFlush = func(s telemetry.WindowStats) {
		windows = append(windows, s)
	}

	var dispatch runtime.Dispatch[chain.Msg]
	prog := mon.Wrap(chain.NewProgram(chain.NewModel(settings, seed)))
	prog.Subscribe = func(d runtime.Dispatch[chain.Msg]) { dispatch = d }

	sched := runtime.NewHeadless(cfg.Screen.TargetFPS)
	surface := render.NewRecorder()
	h := runtime.Start[render.Surface](sched, surface, prog)

	center := settings.Center()
	phase := float64(seed%360) * math.Pi / 180
	sched.BeforeFrame = func(now time.Duration) {
		surface.Reset()
		dispatch(chain.MouseMove{Position: fe.orbit.At(center, phase, now)})
	}

	frames := int(fe.duration / sched.Interval)
	sched.Run(frames + 1)
	h.Dispose()

	return summarise(windows)
}

// summarise averages span and lag over windows past warmup.
func summarise(windows []telemetry.WindowStats) runResult {
	if len(windows) <= warmupWindows {
		return runResult{}
	}
	valid := windows[warmupWindows:]
	var r runResult
	for _, w := range valid {
		r.span += w.ChainSpan
		r.lag += w.LeadToPointer
	}
	n := float64(len(valid))
	r.span /= n
	r.lag /= n
	return r
}

// copyConfig creates a copy of the base config.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg := *fe.baseConfig
	return &cfg
}

// computeFitness scores relative span error plus weighted lag, both
// normalised so a perfect chase scores 0.
func (fe *FitnessEvaluator) computeFitness(span, lag float64) float64 {
	if fe.goal.Span <= 0 {
		return math.Inf(1)
	}
	spanErr := math.Abs(span-fe.goal.Span) / fe.goal.Span
	lagErr := 0.0
	if fe.orbit.Radius > 0 {
		lagErr = lag / fe.orbit.Radius
	}
	return spanErr + fe.goal.LagWeight*lagErr
}
