package viewport

import (
	"math"
	"testing"
)

func near(a, b float32) bool {
	return math.Abs(float64(a-b)) < 0.01
}

func TestNewIdentity(t *testing.T) {
	v := New(800, 600, 800, 600)

	if v.Scale() != 1 {
		t.Errorf("expected scale 1, got %f", v.Scale())
	}
	b := v.Bounds()
	if b != (Rect{X: 0, Y: 0, W: 800, H: 600}) {
		t.Errorf("expected full-window bounds, got %+v", b)
	}
}

func TestLetterbox(t *testing.T) {
	// wide window: pillarbox left and right
	v := New(1600, 600, 800, 600)
	b := v.Bounds()
	if !near(b.X, 400) || !near(b.Y, 0) || !near(b.W, 800) || !near(b.H, 600) {
		t.Errorf("unexpected pillarbox bounds %+v", b)
	}

	// tall window: letterbox top and bottom, scaled up
	v = New(1600, 2400, 800, 600)
	b = v.Bounds()
	if !near(v.Scale(), 2) {
		t.Errorf("expected scale 2, got %f", v.Scale())
	}
	if !near(b.X, 0) || !near(b.Y, 600) || !near(b.W, 1600) || !near(b.H, 1200) {
		t.Errorf("unexpected letterbox bounds %+v", b)
	}
}

func TestClientToCanvasRoundtrip(t *testing.T) {
	v := New(1280, 720, 800, 600)

	testCases := []struct{ cx, cy float32 }{
		{400, 300}, // center
		{10, 10},   // top-left
		{790, 590}, // near bottom-right
	}

	for _, tc := range testCases {
		wx, wy := v.CanvasToClient(tc.cx, tc.cy)
		cx, cy, inside := v.ClientToCanvas(wx, wy)
		if !inside {
			t.Errorf("expected (%f,%f) inside canvas", tc.cx, tc.cy)
		}
		if !near(cx, tc.cx) || !near(cy, tc.cy) {
			t.Errorf("roundtrip failed: (%f,%f) -> (%f,%f) -> (%f,%f)",
				tc.cx, tc.cy, wx, wy, cx, cy)
		}
	}
}

func TestClientToCanvasClamps(t *testing.T) {
	v := New(1600, 600, 800, 600)

	// left pillarbox area
	cx, cy, inside := v.ClientToCanvas(100, 300)
	if inside {
		t.Error("expected point in pillarbox to be outside canvas")
	}
	if cx != 0 || !near(cy, 300) {
		t.Errorf("expected clamp to left edge, got (%f, %f)", cx, cy)
	}

	cx, _, _ = v.ClientToCanvas(1590, 300)
	if cx != 800 {
		t.Errorf("expected clamp to right edge, got %f", cx)
	}
}

func TestResizeAndSetCanvas(t *testing.T) {
	v := New(800, 600, 800, 600)

	if v.Resize(800, 600) {
		t.Error("expected no-op resize to report false")
	}
	if !v.Resize(400, 300) {
		t.Error("expected resize to report true")
	}
	if !near(v.Scale(), 0.5) {
		t.Errorf("expected scale 0.5, got %f", v.Scale())
	}
	if !v.SetCanvas(400, 300) {
		t.Error("expected canvas change to report true")
	}
	if !near(v.Scale(), 1) {
		t.Errorf("expected scale 1 after matching canvas, got %f", v.Scale())
	}
}

func TestDegenerateCanvas(t *testing.T) {
	v := New(800, 600, 0, 0)
	if v.Scale() != 1 {
		t.Errorf("expected fallback scale 1, got %f", v.Scale())
	}
}
