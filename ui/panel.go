package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/trail/chain"
	"github.com/pthm-cable/trail/ui/form"
)

// Slider ranges.
const (
	maxSegments     = 64
	maxFollowSpeed  = 1.0
	minParticleSize = 4.0
	maxParticleSize = 80.0
)

// Panel is an immediate-mode tuning panel. Every control change is sent
// as a chain message; the panel keeps no copy of the settings.
type Panel struct {
	theme    Theme
	x, y     int32
	width    int32
	visible  bool
	defaults chain.Settings
}

// NewPanel creates a panel at (x, y). Reset restores defaults.
func NewPanel(x, y, width int32, visible bool, defaults chain.Settings) *Panel {
	return &Panel{
		theme:    DefaultTheme(),
		x:        x,
		y:        y,
		width:    width,
		visible:  visible,
		defaults: defaults,
	}
}

// Toggle switches panel visibility.
func (p *Panel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Draw renders the panel for s and dispatches any changes.
func (p *Panel) Draw(s chain.Settings, particles int, dispatch func(chain.Msg)) {
	if rl.IsKeyPressed(rl.KeyTab) {
		p.Toggle()
	}
	if !p.visible {
		rl.DrawText("[Tab] tuning", 10, 10, p.theme.FontSize, p.theme.HintColor)
		return
	}

	t := p.theme
	pad := t.Padding
	inner := float32(p.width - pad*2 - 40)
	height := t.LineHeight*11 + pad*3
	t.drawPanel(p.x, p.y, p.width, height)

	x := p.x + pad
	y := p.y + pad
	rl.DrawText("Trail", x, y, t.TitleFontSize, t.SectionHeader)
	rl.DrawText(fmt.Sprintf("%d fps", rl.GetFPS()), p.x+p.width-pad-50, y+2, t.FontSize, t.HintColor)
	y += t.LineHeight + 6

	slider := func(label, value string, v, lo, hi float32) float32 {
		lo, hi = form.Range(v, lo, hi)
		rl.DrawText(label, x, y, t.FontSize, t.LabelColor)
		rl.DrawText(value, x+int32(inner)+8, y+t.LineHeight, t.FontSize, t.ValueColor)
		y += t.LineHeight
		out := gui.SliderBar(
			rl.Rectangle{X: float32(x), Y: float32(y), Width: inner, Height: float32(t.SliderHeight)},
			"", "",
			v, lo, hi,
		)
		y += t.LineHeight + 4
		return out
	}

	r := form.Unchanged(s)
	r.FollowSpeed = slider("Follow speed", fmt.Sprintf("%.2f", s.FollowSpeed), float32(s.FollowSpeed), 0, maxFollowSpeed)
	r.ParticleSize = slider("Particle size", fmt.Sprintf("%.0f", s.ParticleSize), float32(s.ParticleSize), minParticleSize, maxParticleSize)
	r.Segments = slider("Segments", fmt.Sprintf("%d", s.SegmentCount), float32(s.SegmentCount), 0, maxSegments)
	r.IdleWander = gui.CheckBox(
		rl.Rectangle{X: float32(x), Y: float32(y), Width: 14, Height: 14},
		"Idle wander", s.IdleWander,
	)
	y += t.LineHeight + 6

	for _, msg := range form.Changes(s, r) {
		dispatch(msg)
	}

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 80, Height: 22}, "Reset") {
		d := p.defaults
		dispatch(chain.UpdateFollowSpeed{Value: d.FollowSpeed})
		dispatch(chain.UpdateParticleSize{Value: d.ParticleSize})
		dispatch(chain.UpdateIdleWander{Enabled: d.IdleWander})
		dispatch(chain.UpdateSegmentCount{N: d.SegmentCount})
	}
	rl.DrawText(fmt.Sprintf("%d particles", particles), x+90, y+5, t.FontSize, t.HintColor)
}
