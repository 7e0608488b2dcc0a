package chain

// Update folds one message into the model.
func Update(m Model, msg Msg) Model {
	return msg.visit(updater{}, m)
}

// updater is the Handler backing Update.
type updater struct{}

var _ Handler = updater{}

func (updater) Tick(m Model, msg Tick) Model {
	return Step(m, msg.ElapsedMs)
}

func (updater) MouseMove(m Model, msg MouseMove) Model {
	return FoldMouseMove(m, []Msg{msg})
}

func (updater) UpdateCanvasSize(m Model, msg UpdateCanvasSize) Model {
	m.Settings.CanvasWidth = msg.Width
	m.Settings.CanvasHeight = msg.Height
	return m
}

// UpdateSegmentCount always rebuilds the slice; IDs encode following
// order, so the chain cannot be resized in place.
func (updater) UpdateSegmentCount(m Model, msg UpdateSegmentCount) Model {
	n := msg.N
	if n < 0 {
		n = 0
	}
	m.Settings.SegmentCount = n
	return m.rebuild()
}

func (updater) UpdateFollowSpeed(m Model, msg UpdateFollowSpeed) Model {
	m.Settings.FollowSpeed = msg.Value
	return m
}

func (updater) UpdateParticleSize(m Model, msg UpdateParticleSize) Model {
	m.Settings.ParticleSize = msg.Value
	return m
}

func (updater) UpdateIdleWander(m Model, msg UpdateIdleWander) Model {
	m.Settings.IdleWander = msg.Enabled
	return m
}

// FoldMouseMove applies a batch of messages left to right, keeping the
// last MouseMove. Other message kinds are skipped.
func FoldMouseMove(m Model, msgs []Msg) Model {
	for _, msg := range msgs {
		if mv, ok := msg.(MouseMove); ok {
			m.MousePosition = mv.Position
		}
	}
	return m
}
