package chain

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/spatial/r2"
)

// Position is a point on the canvas.
type Position struct {
	X, Y float64
}

// Empty is the pointer position before the first pointer event.
var Empty = Position{}

// IsEmpty reports whether p is exactly the Empty sentinel.
func (p Position) IsEmpty() bool {
	return p == Empty
}

func (p Position) vec() r2.Vec {
	return r2.Vec{X: p.X, Y: p.Y}
}

func fromVec(v r2.Vec) Position {
	return Position{X: v.X, Y: v.Y}
}

// Distance returns the Euclidean distance between p and q.
func (p Position) Distance(q Position) float64 {
	return r2.Norm(r2.Sub(p.vec(), q.vec()))
}

// Particle is one link of the chain. ID 1 is the lead; ID n follows n-1.
type Particle struct {
	ID   int
	X, Y float64

	// DX, DY is the last computed displacement toward the target.
	// Rendering reads it for heading; motion does not integrate it.
	DX, DY float64

	// Idle wander phase and per-frame angular speed.
	AngleX, AngleY float64
	SpeedX, SpeedY float64
	Radius         float64
}

// Position returns the particle's location.
func (p Particle) Position() Position {
	return Position{X: p.X, Y: p.Y}
}

// Model is the complete animation state.
type Model struct {
	Particles     []Particle
	Settings      Settings
	MousePosition Position

	// seed and generation derive the random source for each rebuild of
	// the particle slice, so rebuilding inside Update stays deterministic.
	seed       int64
	generation int64
}

// NewModel builds the starting model. The same seed always yields the
// same particles.
func NewModel(s Settings, seed int64) Model {
	m := Model{Settings: s, seed: seed}
	m.Particles = NewParticles(s, m.source())
	return m
}

func (m Model) source() *rand.Rand {
	return rand.New(rand.NewSource(m.seed + m.generation))
}

// rebuild returns m with a freshly created particle slice.
func (m Model) rebuild() Model {
	m.generation++
	m.Particles = NewParticles(m.Settings, m.source())
	return m
}

// Lead returns the lead particle.
func (m Model) Lead() Particle {
	return m.Particles[0]
}

// NewParticles creates Count() particles with IDs 1..N at the canvas
// centre, each with a random wander phase and speed drawn from rng.
func NewParticles(s Settings, rng *rand.Rand) []Particle {
	n := s.Count()
	c := s.Center()
	out := make([]Particle, n)
	for i := range out {
		ax := rng.Float64() * 2 * math.Pi
		sx := wanderSpeed(s.Wander, rng)
		ay, sy := ax, sx
		if s.Wander.IndependentAxes {
			ay = rng.Float64() * 2 * math.Pi
			sy = wanderSpeed(s.Wander, rng)
		}
		out[i] = Particle{
			ID:     i + 1,
			X:      c.X,
			Y:      c.Y,
			AngleX: ax,
			AngleY: ay,
			SpeedX: sx,
			SpeedY: sy,
			Radius: s.Wander.Radius,
		}
	}
	return out
}

func wanderSpeed(w WanderSettings, rng *rand.Rand) float64 {
	return w.SpeedMin + rng.Float64()*(w.SpeedMax-w.SpeedMin)
}
