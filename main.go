package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pthm-cable/trail/chain"
	"github.com/pthm-cable/trail/config"
	"github.com/pthm-cable/trail/host"
	"github.com/pthm-cable/trail/render"
	"github.com/pthm-cable/trail/runtime"
	"github.com/pthm-cable/trail/telemetry"
	"github.com/pthm-cable/trail/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml or config.toml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without a window on a synthetic clock")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")
	pointer := flag.String("pointer", "", "Headless pointer position as x,y (empty = stay idle)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	runID := telemetry.NewRunID()
	out, err := telemetry.NewOutputManager(*outputDir, runID)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	if err := out.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
	}

	mon := telemetry.NewMonitor(cfg.Telemetry.StatsWindow, cfg.Screen.TargetFPS, runID, out)
	mon.LogStats = *logStats

	model := chain.NewModel(cfg.ChainSettings(), rngSeed)
	prog := mon.Wrap(chain.NewProgram(model))

	slog.Info("starting",
		"run_id", runID,
		"seed", rngSeed,
		"headless", *headless,
		"particles", len(model.Particles),
		"max_frames", *maxFrames,
		"output_dir", out.Dir(),
	)

	if *headless {
		err = runHeadless(cfg, prog, *maxFrames, *pointer)
	} else {
		err = runWindow(cfg, prog, *maxFrames)
	}

	if ferr := mon.Finish(); ferr != nil {
		slog.Error("failed to close output", "error", ferr)
	}
	if err != nil {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}
}

// runWindow drives prog in a raylib window with the tuning panel on top.
func runWindow(cfg *config.Config, prog telemetry.Program, maxFrames int) error {
	win := host.Open(host.Options{
		Width:      cfg.Screen.Width,
		Height:     cfg.Screen.Height,
		Title:      cfg.Screen.Title,
		TargetFPS:  cfg.Screen.TargetFPS,
		Resizable:  cfg.Screen.Resizable,
		Background: cfg.Derived.Background,
	})
	defer win.Close()

	prog.Subscribe = func(dispatch runtime.Dispatch[chain.Msg]) {
		win.OnPointerMove(func(x, y float64) {
			dispatch(chain.MouseMove{Position: chain.Position{X: x, Y: y}})
		})
		win.OnResize(func(w, h float64) {
			dispatch(chain.UpdateCanvasSize{Width: w, Height: h})
		})
	}

	h := runtime.Start[render.Surface](win, win.Canvas(), prog)
	defer h.Dispose()

	panel := ui.NewPanel(10, 10, int32(cfg.Panel.Width), cfg.Panel.Visible, prog.Init.Settings)
	win.OnOverlay(func() {
		m := h.Model()
		panel.Draw(m.Settings, len(m.Particles), h.Dispatch)
		if maxFrames > 0 && h.Frames() >= maxFrames && !h.Disposed() {
			slog.Info("max frames reached", "frames", h.Frames())
			h.Dispose()
		}
	})

	if err := win.Run(); err != nil {
		if errors.Is(err, host.ErrFrameAborted) {
			return fmt.Errorf("animation stopped after %d frames: %w", h.Frames(), err)
		}
		return err
	}
	return nil
}

// runHeadless drives prog on a synthetic clock against a recording surface.
func runHeadless(cfg *config.Config, prog telemetry.Program, maxFrames int, pointer string) error {
	var target chain.Position
	if pointer != "" {
		p, err := parsePoint(pointer)
		if err != nil {
			return fmt.Errorf("parsing -pointer: %w", err)
		}
		target = p
	}

	var dispatch runtime.Dispatch[chain.Msg]
	prog.Subscribe = func(d runtime.Dispatch[chain.Msg]) {
		dispatch = d
	}

	sched := runtime.NewHeadless(cfg.Screen.TargetFPS)
	surface := render.NewRecorder()
	h := runtime.Start[render.Surface](sched, surface, prog)

	moved := false
	sched.BeforeFrame = func(time.Duration) {
		surface.Reset()
		if pointer != "" && !moved {
			moved = true
			dispatch(chain.MouseMove{Position: target})
		}
	}

	// one extra callback for the priming frame
	limit := 0
	if maxFrames > 0 {
		limit = maxFrames + 1
	}
	fired := sched.Run(limit)
	h.Dispose()

	lead := h.Model().Lead()
	slog.Info("headless run finished",
		"callbacks", fired,
		"frames", h.Frames(),
		"sim_time", sched.Now().Seconds(),
		"lead_x", lead.X,
		"lead_y", lead.Y,
	)
	return nil
}

// parsePoint parses "x,y".
func parsePoint(s string) (chain.Position, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return chain.Position{}, fmt.Errorf("expected x,y, got %q", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return chain.Position{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return chain.Position{}, fmt.Errorf("y: %w", err)
	}
	return chain.Position{X: x, Y: y}, nil
}
