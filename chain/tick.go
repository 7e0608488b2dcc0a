package chain

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

const defaultTickDivisor = 10

// Step advances every particle by elapsedMs of wall time.
//
// Each particle moves toward its target by FollowSpeed of the remaining
// distance per scaled step. Targets are read from the particles as they
// were before this step, so a follower lags its leader by one frame.
func Step(m Model, elapsedMs float64) Model {
	div := m.Settings.TickDivisor
	if div <= 0 {
		div = defaultTickDivisor
	}
	dt := elapsedMs / div

	prev := m.Particles
	next := make([]Particle, len(prev))
	for i, p := range prev {
		switch {
		case i > 0:
			next[i] = follow(p, prev[i-1].Position(), m.Settings.FollowSpeed, dt)
		case m.Settings.IdleWander && m.MousePosition.IsEmpty():
			next[i] = wander(p, m.Settings.Center())
		default:
			next[i] = follow(p, m.MousePosition, m.Settings.FollowSpeed, dt)
		}
	}
	m.Particles = next
	return m
}

// follow interpolates p toward target. Speeds above 1 overshoot.
func follow(p Particle, target Position, speed, dt float64) Particle {
	pos := p.Position().vec()
	delta := r2.Sub(target.vec(), pos)
	moved := fromVec(r2.Add(pos, r2.Scale(speed*dt, delta)))

	p.X, p.Y = moved.X, moved.Y
	p.DX, p.DY = delta.X, delta.Y
	return p
}

// wander places p on its orbit around center and advances the phase.
// Angles accumulate without wrapping; only their sine and cosine are read.
func wander(p Particle, center Position) Particle {
	target := Position{
		X: center.X + math.Cos(p.AngleX)*p.Radius,
		Y: center.Y + math.Sin(p.AngleY)*p.Radius,
	}
	p.DX, p.DY = target.X-p.X, target.Y-p.Y
	p.X, p.Y = target.X, target.Y
	p.AngleX += p.SpeedX
	p.AngleY += p.SpeedY
	return p
}
