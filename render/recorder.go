package render

import (
	"fmt"
	"image/color"
	"math"
)

// OpKind identifies a recorded surface call.
type OpKind int

const (
	OpClear OpKind = iota
	OpSave
	OpRestore
	OpTranslate
	OpRotate
	OpScale
	OpBeginPath
	OpMoveTo
	OpLineTo
	OpFill
	OpFillStyle
)

var opNames = [...]string{
	OpClear:     "clear",
	OpSave:      "save",
	OpRestore:   "restore",
	OpTranslate: "translate",
	OpRotate:    "rotate",
	OpScale:     "scale",
	OpBeginPath: "beginPath",
	OpMoveTo:    "moveTo",
	OpLineTo:    "lineTo",
	OpFill:      "fill",
	OpFillStyle: "fillStyle",
}

func (k OpKind) String() string {
	if int(k) < len(opNames) {
		return opNames[k]
	}
	return fmt.Sprintf("op(%d)", int(k))
}

// Op is one recorded call. Args holds the numeric arguments in call order.
type Op struct {
	Kind  OpKind
	Args  []float64
	Color color.Color
}

// Matrix is a 2D affine transform [a c e; b d f; 0 0 1].
type Matrix struct {
	A, B, C, D, E, F float64
}

// IdentityMatrix returns the identity transform.
func IdentityMatrix() Matrix {
	return Matrix{A: 1, D: 1}
}

// Mul returns m·n (n applied first).
func (m Matrix) Mul(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Point maps p through m.
func (m Matrix) Point(p Point) Point {
	return Point{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// Polygon is a filled path in surface coordinates.
type Polygon struct {
	Points []Point
	Color  color.Color
}

// Recorder is a Surface that logs every call and tracks the current
// transform so filled paths can be inspected in surface coordinates.
type Recorder struct {
	Ops      []Op
	Polygons []Polygon

	// MaxDepth is the deepest Save nesting observed.
	MaxDepth int

	ctm   Matrix
	stack []Matrix
	fill  color.Color
	path  []Point
}

// NewRecorder creates an empty recorder with the identity transform.
func NewRecorder() *Recorder {
	return &Recorder{ctm: IdentityMatrix(), fill: color.Black}
}

// Reset drops recorded ops and polygons, keeping nothing from prior frames.
func (r *Recorder) Reset() {
	*r = *NewRecorder()
}

// Depth returns the current Save nesting depth.
func (r *Recorder) Depth() int {
	return len(r.stack)
}

// Current returns the current transform.
func (r *Recorder) Current() Matrix {
	return r.ctm
}

// Count returns how many ops of kind k were recorded.
func (r *Recorder) Count(k OpKind) int {
	n := 0
	for _, op := range r.Ops {
		if op.Kind == k {
			n++
		}
	}
	return n
}

func (r *Recorder) record(k OpKind, args ...float64) {
	r.Ops = append(r.Ops, Op{Kind: k, Args: args})
}

func (r *Recorder) ClearRect(x, y, w, h float64) {
	r.record(OpClear, x, y, w, h)
}

func (r *Recorder) Save() {
	r.record(OpSave)
	r.stack = append(r.stack, r.ctm)
	if len(r.stack) > r.MaxDepth {
		r.MaxDepth = len(r.stack)
	}
}

// Restore pops the transform stack. An unbalanced Restore is ignored,
// matching canvas semantics.
func (r *Recorder) Restore() {
	r.record(OpRestore)
	if len(r.stack) == 0 {
		return
	}
	r.ctm = r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
}

func (r *Recorder) Translate(x, y float64) {
	r.record(OpTranslate, x, y)
	r.ctm = r.ctm.Mul(Matrix{A: 1, D: 1, E: x, F: y})
}

func (r *Recorder) Rotate(radians float64) {
	r.record(OpRotate, radians)
	sin, cos := math.Sincos(radians)
	r.ctm = r.ctm.Mul(Matrix{A: cos, B: sin, C: -sin, D: cos})
}

func (r *Recorder) Scale(sx, sy float64) {
	r.record(OpScale, sx, sy)
	r.ctm = r.ctm.Mul(Matrix{A: sx, D: sy})
}

func (r *Recorder) BeginPath() {
	r.record(OpBeginPath)
	r.path = r.path[:0]
}

func (r *Recorder) MoveTo(x, y float64) {
	r.record(OpMoveTo, x, y)
	r.path = append(r.path[:0], r.ctm.Point(Point{X: x, Y: y}))
}

func (r *Recorder) LineTo(x, y float64) {
	r.record(OpLineTo, x, y)
	r.path = append(r.path, r.ctm.Point(Point{X: x, Y: y}))
}

func (r *Recorder) Fill() {
	r.Ops = append(r.Ops, Op{Kind: OpFill, Color: r.fill})
	pts := make([]Point, len(r.path))
	copy(pts, r.path)
	r.Polygons = append(r.Polygons, Polygon{Points: pts, Color: r.fill})
}

func (r *Recorder) SetFillStyle(c color.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillStyle, Color: c})
	r.fill = c
}

var _ Surface = (*Recorder)(nil)
