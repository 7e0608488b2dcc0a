package host

import (
	"image/color"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trail/render"
)

// Canvas is a render.Surface backed by a raylib render texture.
// Transforms go through the rlgl matrix stack, so Save/Restore map to
// PushMatrix/PopMatrix.
type Canvas struct {
	target        rl.RenderTexture2D
	width, height int32
	background    rl.Color

	fill  rl.Color
	path  []rl.Vector2
	depth int
}

// NewCanvas creates a canvas of the given size. Requires an open window.
func NewCanvas(width, height int32, background color.Color) *Canvas {
	return &Canvas{
		target:     rl.LoadRenderTexture(width, height),
		width:      width,
		height:     height,
		background: toRL(background),
		fill:       rl.White,
	}
}

// Resize replaces the render texture. Call outside Begin/End.
func (c *Canvas) Resize(width, height int32) {
	if width == c.width && height == c.height {
		return
	}
	rl.UnloadRenderTexture(c.target)
	c.target = rl.LoadRenderTexture(width, height)
	c.width = width
	c.height = height
}

// Begin redirects drawing into the canvas texture.
func (c *Canvas) Begin() {
	rl.BeginTextureMode(c.target)
}

// End unwinds any transforms left open by an aborted frame and restores
// drawing to the window.
func (c *Canvas) End() {
	for c.depth > 0 {
		rl.PopMatrix()
		c.depth--
	}
	rl.EndTextureMode()
}

// Present draws the canvas into dst in window coordinates.
func (c *Canvas) Present(dst rl.Rectangle) {
	// Render textures are stored upside down
	src := rl.Rectangle{
		X:      0,
		Y:      float32(c.height),
		Width:  float32(c.width),
		Height: -float32(c.height), // Negative to flip
	}
	rl.DrawTexturePro(c.target.Texture, src, dst, rl.Vector2{}, 0, rl.White)
}

// Unload releases the render texture.
func (c *Canvas) Unload() {
	rl.UnloadRenderTexture(c.target)
}

func (c *Canvas) ClearRect(x, y, w, h float64) {
	rl.DrawRectangleRec(rl.Rectangle{
		X:      float32(x),
		Y:      float32(y),
		Width:  float32(w),
		Height: float32(h),
	}, c.background)
}

func (c *Canvas) Save() {
	rl.PushMatrix()
	c.depth++
}

func (c *Canvas) Restore() {
	if c.depth == 0 {
		return
	}
	rl.PopMatrix()
	c.depth--
}

func (c *Canvas) Translate(x, y float64) {
	rl.Translatef(float32(x), float32(y), 0)
}

// Rotate takes radians; rlgl wants degrees about the Z axis.
func (c *Canvas) Rotate(radians float64) {
	rl.Rotatef(float32(radians*180/math.Pi), 0, 0, 1)
}

func (c *Canvas) Scale(sx, sy float64) {
	rl.Scalef(float32(sx), float32(sy), 1)
}

func (c *Canvas) BeginPath() {
	c.path = c.path[:0]
}

func (c *Canvas) MoveTo(x, y float64) {
	c.path = append(c.path[:0], rl.Vector2{X: float32(x), Y: float32(y)})
}

func (c *Canvas) LineTo(x, y float64) {
	c.path = append(c.path, rl.Vector2{X: float32(x), Y: float32(y)})
}

// Fill draws the current path as a triangle fan from its first vertex.
// The polygon must be star-shaped about that vertex.
func (c *Canvas) Fill() {
	if len(c.path) < 3 {
		return
	}
	p0 := c.path[0]
	for i := 1; i+1 < len(c.path); i++ {
		drawTriangle(p0, c.path[i], c.path[i+1], c.fill)
	}
}

func (c *Canvas) SetFillStyle(col color.Color) {
	c.fill = toRL(col)
}

// drawTriangle emits a triangle in the winding raylib expects, whatever
// order the path was given in.
func drawTriangle(a, b, cc rl.Vector2, col rl.Color) {
	cross := (b.X-a.X)*(cc.Y-a.Y) - (b.Y-a.Y)*(cc.X-a.X)
	if cross > 0 {
		b, cc = cc, b
	}
	rl.DrawTriangle(a, b, cc, col)
}

func toRL(c color.Color) rl.Color {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return rl.Color{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}
}

var _ render.Surface = (*Canvas)(nil)
