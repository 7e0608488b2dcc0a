// Package render defines the drawing-surface contract used by the view
// functions, plus small helpers for scoped transforms and path fills.
package render

import "image/color"

// Point is a surface-space coordinate.
type Point struct {
	X, Y float64
}

// Surface is a 2D drawing surface with a transform stack and path fill.
// Rotation is in radians. Save pushes the current transform, Restore pops it.
type Surface interface {
	ClearRect(x, y, w, h float64)
	Save()
	Restore()
	Translate(x, y float64)
	Rotate(radians float64)
	Scale(sx, sy float64)
	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Fill()
	SetFillStyle(c color.Color)
}

// Transform is an optional translate/rotate/scale triple.
// Nil fields are skipped; an empty Transform is the identity.
// When present they are applied in the order translate, rotate, scale.
type Transform struct {
	Translate *Point
	Rotate    *float64
	Scale     *float64
}

// Identity reports whether t leaves the coordinate frame unchanged.
func (t Transform) Identity() bool {
	return t.Translate == nil && t.Rotate == nil && t.Scale == nil
}

// Apply issues t's operations against s without saving state first.
func (t Transform) Apply(s Surface) {
	if t.Translate != nil {
		s.Translate(t.Translate.X, t.Translate.Y)
	}
	if t.Rotate != nil {
		s.Rotate(*t.Rotate)
	}
	if t.Scale != nil {
		s.Scale(*t.Scale, *t.Scale)
	}
}

// WithTransform runs fn inside a Save/Restore pair with t applied.
// Restore runs on every exit path, including a panic in fn.
func WithTransform(s Surface, t Transform, fn func()) {
	s.Save()
	defer s.Restore()
	t.Apply(s)
	fn()
}

// FillPath fills the closed polygon through pts with c.
// Fewer than three points draws nothing.
func FillPath(s Surface, pts []Point, c color.Color) {
	if len(pts) < 3 {
		return
	}
	s.SetFillStyle(c)
	s.BeginPath()
	s.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		s.LineTo(p.X, p.Y)
	}
	s.Fill()
}

// Translate returns a translate-only transform.
func Translate(x, y float64) Transform {
	return Transform{Translate: &Point{X: x, Y: y}}
}

// Rotate returns a rotate-only transform.
func Rotate(radians float64) Transform {
	return Transform{Rotate: &radians}
}

// Scale returns a uniform scale-only transform.
func Scale(s float64) Transform {
	return Transform{Scale: &s}
}

// Then merges o into t; fields set in o win.
func (t Transform) Then(o Transform) Transform {
	if o.Translate != nil {
		t.Translate = o.Translate
	}
	if o.Rotate != nil {
		t.Rotate = o.Rotate
	}
	if o.Scale != nil {
		t.Scale = o.Scale
	}
	return t
}
