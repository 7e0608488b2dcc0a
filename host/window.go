// Package host runs the animation inside a raylib window. The window is
// the frame scheduler and the pointer/resize event source; its Canvas is
// the drawing surface handed to the view.
package host

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trail/runtime"
	"github.com/pthm-cable/trail/viewport"
)

// ErrFrameAborted is returned by Run when a frame callback panicked.
// The loop is dead; a fresh runtime.Start is needed to continue.
var ErrFrameAborted = errors.New("frame aborted")

// Options configures the window.
type Options struct {
	Width, Height int
	Title         string
	TargetFPS     int
	Resizable     bool
	Background    color.Color // canvas clear colour
	Letterbox     color.Color // window area outside the canvas
}

// Window owns the raylib window, the canvas and the frame loop.
type Window struct {
	canvas    *Canvas
	viewport  *viewport.Viewport
	letterbox rl.Color

	pending   runtime.FrameFunc
	lastMouse rl.Vector2

	pointerFns []func(x, y float64)
	resizeFns  []func(w, h float64)
	overlayFns []func()
}

// Open creates the window and its canvas.
func Open(opts Options) *Window {
	if opts.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(opts.Width), int32(opts.Height), opts.Title)
	if opts.TargetFPS > 0 {
		rl.SetTargetFPS(int32(opts.TargetFPS))
	}

	letterbox := opts.Letterbox
	if letterbox == nil {
		letterbox = color.Black
	}

	w := &Window{
		canvas:    NewCanvas(int32(opts.Width), int32(opts.Height), opts.Background),
		letterbox: toRL(letterbox),
		lastMouse: rl.GetMousePosition(),
	}
	w.viewport = viewport.New(
		float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()),
		float32(opts.Width), float32(opts.Height),
	)
	return w
}

// Canvas returns the drawing surface.
func (w *Window) Canvas() *Canvas {
	return w.canvas
}

// RequestFrame implements runtime.Scheduler.
func (w *Window) RequestFrame(fn runtime.FrameFunc) {
	w.pending = fn
}

// OnPointerMove registers fn for pointer movement in canvas coordinates.
// Callbacks run before the frame in which the movement was observed.
func (w *Window) OnPointerMove(fn func(x, y float64)) {
	w.pointerFns = append(w.pointerFns, fn)
}

// OnResize registers fn for canvas size changes.
func (w *Window) OnResize(fn func(width, height float64)) {
	w.resizeFns = append(w.resizeFns, fn)
}

// OnOverlay registers fn to draw in window space after the canvas.
func (w *Window) OnOverlay(fn func()) {
	w.overlayFns = append(w.overlayFns, fn)
}

// Run drives frames until the window closes or nothing is scheduled.
func (w *Window) Run() error {
	for !rl.WindowShouldClose() {
		if w.pending == nil {
			slog.Info("frame loop stopped")
			return nil
		}

		w.poll()

		fn := w.pending
		w.pending = nil
		now := time.Duration(rl.GetTime() * float64(time.Second))

		rl.BeginDrawing()
		rl.ClearBackground(w.letterbox)
		err := w.runFrame(fn, now)

		b := w.viewport.Bounds()
		w.canvas.Present(rl.Rectangle{X: b.X, Y: b.Y, Width: b.W, Height: b.H})
		for _, draw := range w.overlayFns {
			draw()
		}
		rl.EndDrawing()

		if err != nil {
			return err
		}
	}
	slog.Info("window closed")
	return nil
}

// runFrame invokes one frame callback inside the canvas. A panic ends
// the loop but not the process.
func (w *Window) runFrame(fn runtime.FrameFunc, now time.Duration) (err error) {
	w.canvas.Begin()
	defer w.canvas.End()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("frame callback panicked", "panic", r)
			err = fmt.Errorf("%w: %v", ErrFrameAborted, r)
		}
	}()
	fn(now)
	return nil
}

// poll delivers window events ahead of the frame callback.
func (w *Window) poll() {
	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsWindowResized() {
		sw := float32(rl.GetScreenWidth())
		sh := float32(rl.GetScreenHeight())
		if w.viewport.Resize(sw, sh) {
			w.canvas.Resize(int32(sw), int32(sh))
			w.viewport.SetCanvas(sw, sh)
			slog.Debug("canvas resized", "width", sw, "height", sh)
			for _, fn := range w.resizeFns {
				fn(float64(sw), float64(sh))
			}
		}
	}

	mouse := rl.GetMousePosition()
	if mouse != w.lastMouse {
		w.lastMouse = mouse
		cx, cy, _ := w.viewport.ClientToCanvas(mouse.X, mouse.Y)
		for _, fn := range w.pointerFns {
			fn(float64(cx), float64(cy))
		}
	}
}

// Close releases the canvas and closes the window.
func (w *Window) Close() {
	w.canvas.Unload()
	rl.CloseWindow()
}
