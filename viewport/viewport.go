// Package viewport maps between window pixels and the letterboxed canvas.
package viewport

// Rect is an axis-aligned rectangle in window pixels.
type Rect struct {
	X, Y, W, H float32
}

// Viewport places the canvas inside the window and maps pointer
// coordinates between the two. The canvas keeps its aspect ratio and is
// centred, letterboxed when the window shape differs.
type Viewport struct {
	// Window dimensions (client area)
	WindowW, WindowH float32

	// Canvas dimensions (drawing surface)
	CanvasW, CanvasH float32
}

// New creates a viewport for a window and canvas of the given sizes.
func New(windowW, windowH, canvasW, canvasH float32) *Viewport {
	return &Viewport{
		WindowW: windowW,
		WindowH: windowH,
		CanvasW: canvasW,
		CanvasH: canvasH,
	}
}

// Scale returns the canvas-to-window magnification.
func (v *Viewport) Scale() float32 {
	if v.CanvasW <= 0 || v.CanvasH <= 0 {
		return 1
	}
	sx := v.WindowW / v.CanvasW
	sy := v.WindowH / v.CanvasH
	if sy < sx {
		return sy
	}
	return sx
}

// Bounds returns the canvas's bounding rectangle in window coordinates.
func (v *Viewport) Bounds() Rect {
	s := v.Scale()
	w := v.CanvasW * s
	h := v.CanvasH * s
	return Rect{
		X: (v.WindowW - w) / 2,
		Y: (v.WindowH - h) / 2,
		W: w,
		H: h,
	}
}

// ClientToCanvas converts window coordinates to canvas coordinates,
// clamped to the canvas edges. inside reports whether the point was
// within the canvas before clamping.
func (v *Viewport) ClientToCanvas(wx, wy float32) (cx, cy float32, inside bool) {
	b := v.Bounds()
	s := v.Scale()
	cx = (wx - b.X) / s
	cy = (wy - b.Y) / s
	inside = cx >= 0 && cy >= 0 && cx <= v.CanvasW && cy <= v.CanvasH
	return clamp(cx, 0, v.CanvasW), clamp(cy, 0, v.CanvasH), inside
}

// CanvasToClient converts canvas coordinates to window coordinates.
func (v *Viewport) CanvasToClient(cx, cy float32) (wx, wy float32) {
	b := v.Bounds()
	s := v.Scale()
	return b.X + cx*s, b.Y + cy*s
}

// Resize updates window dimensions. Returns false if nothing changed.
func (v *Viewport) Resize(windowW, windowH float32) bool {
	if windowW == v.WindowW && windowH == v.WindowH {
		return false
	}
	v.WindowW = windowW
	v.WindowH = windowH
	return true
}

// SetCanvas updates canvas dimensions. Returns false if nothing changed.
func (v *Viewport) SetCanvas(canvasW, canvasH float32) bool {
	if canvasW == v.CanvasW && canvasH == v.CanvasH {
		return false
	}
	v.CanvasW = canvasW
	v.CanvasH = canvasH
	return true
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
