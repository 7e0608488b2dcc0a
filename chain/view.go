package chain

import (
	"image/color"
	"math"

	"github.com/pthm-cable/trail/render"
)

// Heading returns the direction a particle faces, toward its last target.
func Heading(p Particle) float64 {
	return math.Atan2(p.DY, p.DX)
}

// ScaleFor tapers the chain: near 1 at the lead, 0 at the last link.
// total is at least 1 because the lead always exists.
func ScaleFor(id, total int) float64 {
	if total < 1 {
		total = 1
	}
	return math.Cos(math.Pi / 2 * float64(id) / float64(total))
}

// Silhouette returns the arrow outline for baseWidth, pointing along +X
// with its tip at the origin. The path starts at the rear notch so a
// triangle fan from the first vertex covers the concave shape.
func Silhouette(baseWidth float64) []render.Point {
	w := baseWidth / 2
	return []render.Point{
		{X: -w * 1.2, Y: 0},
		{X: -w * 1.732, Y: -w},
		{X: 0, Y: 0},
		{X: -w * 1.732, Y: w},
	}
}

// Draw renders one particle in its own scoped transform.
func Draw(s render.Surface, p Particle, total int, baseWidth float64, fill color.Color) {
	t := render.Translate(p.X, p.Y).
		Then(render.Rotate(Heading(p))).
		Then(render.Scale(ScaleFor(p.ID, total)))

	render.WithTransform(s, t, func() {
		render.FillPath(s, Silhouette(baseWidth), fill)
	})
}

// View clears the canvas and draws every particle in ID order.
func View(s render.Surface, m Model) {
	s.ClearRect(0, 0, m.Settings.CanvasWidth, m.Settings.CanvasHeight)
	total := len(m.Particles)
	for _, p := range m.Particles {
		Draw(s, p, total, m.Settings.ParticleSize, m.Settings.FillColor)
	}
}
