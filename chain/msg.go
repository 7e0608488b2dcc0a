package chain

// Msg is the closed set of messages the chain understands.
// Only types in this package implement it.
type Msg interface {
	visit(h Handler, m Model) Model
}

// Handler has one method per Msg variant. Adding a variant adds a method
// here, so every Handler stops compiling until it covers the new case.
type Handler interface {
	Tick(m Model, msg Tick) Model
	MouseMove(m Model, msg MouseMove) Model
	UpdateCanvasSize(m Model, msg UpdateCanvasSize) Model
	UpdateSegmentCount(m Model, msg UpdateSegmentCount) Model
	UpdateFollowSpeed(m Model, msg UpdateFollowSpeed) Model
	UpdateParticleSize(m Model, msg UpdateParticleSize) Model
	UpdateIdleWander(m Model, msg UpdateIdleWander) Model
}

// Tick advances the simulation by ElapsedMs of wall time.
type Tick struct{ ElapsedMs float64 }

// MouseMove reports the pointer in canvas coordinates.
type MouseMove struct{ Position Position }

// UpdateCanvasSize resizes the canvas.
type UpdateCanvasSize struct{ Width, Height float64 }

// UpdateSegmentCount rebuilds the chain with N trailing particles.
type UpdateSegmentCount struct{ N int }

// UpdateFollowSpeed sets the interpolation factor.
type UpdateFollowSpeed struct{ Value float64 }

// UpdateParticleSize sets the silhouette base width.
type UpdateParticleSize struct{ Value float64 }

// UpdateIdleWander enables or disables orbiting while the pointer is idle.
type UpdateIdleWander struct{ Enabled bool }

func (x Tick) visit(h Handler, m Model) Model               { return h.Tick(m, x) }
func (x MouseMove) visit(h Handler, m Model) Model          { return h.MouseMove(m, x) }
func (x UpdateCanvasSize) visit(h Handler, m Model) Model   { return h.UpdateCanvasSize(m, x) }
func (x UpdateSegmentCount) visit(h Handler, m Model) Model { return h.UpdateSegmentCount(m, x) }
func (x UpdateFollowSpeed) visit(h Handler, m Model) Model  { return h.UpdateFollowSpeed(m, x) }
func (x UpdateParticleSize) visit(h Handler, m Model) Model { return h.UpdateParticleSize(m, x) }
func (x UpdateIdleWander) visit(h Handler, m Model) Model   { return h.UpdateIdleWander(m, x) }

// TickMsg wraps elapsed milliseconds in a Tick.
func TickMsg(elapsedMs float64) Msg {
	return Tick{ElapsedMs: elapsedMs}
}
