package chain

import (
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func testSettings() Settings {
	s := DefaultSettings()
	s.IdleWander = false
	return s
}

func TestNewModelLength(t *testing.T) {
	testCases := []int{0, 1, 16, 40}
	for _, n := range testCases {
		s := testSettings()
		s.SegmentCount = n
		m := NewModel(s, 1)
		if len(m.Particles) != n+1 {
			t.Errorf("segments=%d: expected %d particles, got %d", n, n+1, len(m.Particles))
		}
		for i, p := range m.Particles {
			if p.ID != i+1 {
				t.Errorf("segments=%d: particle %d has id %d", n, i, p.ID)
			}
		}
	}
}

func TestNewModelDeterministic(t *testing.T) {
	a := NewModel(DefaultSettings(), 7)
	b := NewModel(DefaultSettings(), 7)
	if diff := cmp.Diff(a.Particles, b.Particles); diff != "" {
		t.Errorf("same seed produced different particles (-a +b):\n%s", diff)
	}

	c := NewModel(DefaultSettings(), 8)
	if cmp.Equal(a.Particles, c.Particles) {
		t.Error("expected different seeds to produce different phases")
	}
}

func TestWanderSpeedRange(t *testing.T) {
	s := DefaultSettings()
	s.Wander.IndependentAxes = true
	ps := NewParticles(s, rand.New(rand.NewSource(3)))
	for _, p := range ps {
		for _, v := range []float64{p.SpeedX, p.SpeedY} {
			if v < s.Wander.SpeedMin || v > s.Wander.SpeedMax {
				t.Errorf("particle %d speed %f outside [%f, %f]", p.ID, v, s.Wander.SpeedMin, s.Wander.SpeedMax)
			}
		}
		if p.Radius != s.Wander.Radius {
			t.Errorf("particle %d radius %f, expected %f", p.ID, p.Radius, s.Wander.Radius)
		}
	}
}

func TestTrackingConvergesMonotonically(t *testing.T) {
	testCases := []float64{0.05, 0.1, 0.5, 1.0}
	for _, speed := range testCases {
		s := testSettings()
		s.SegmentCount = 0
		s.FollowSpeed = speed
		m := NewModel(s, 1)
		m = Update(m, MouseMove{Position: Position{X: 10, Y: 700}})

		target := m.MousePosition
		dist := m.Lead().Position().Distance(target)
		for i := 0; i < 1000 && dist > 0; i++ {
			m = Update(m, Tick{ElapsedMs: 10})
			next := m.Lead().Position().Distance(target)
			if next >= dist && dist > 1e-9 {
				t.Fatalf("speed=%.2f step %d: distance did not decrease (%f -> %f)", speed, i, dist, next)
			}
			dist = next
		}
		if dist > 1e-3 {
			t.Errorf("speed=%.2f: expected convergence, still %f away", speed, dist)
		}
	}
}

func TestZeroFollowSpeedFreezes(t *testing.T) {
	s := testSettings()
	s.FollowSpeed = 0
	m := NewModel(s, 1)
	m = Update(m, MouseMove{Position: Position{X: 5, Y: 5}})

	before := m.Particles
	after := Step(m, 16).Particles
	for i := range before {
		if before[i].X != after[i].X || before[i].Y != after[i].Y {
			t.Errorf("particle %d moved with follow speed 0", before[i].ID)
		}
	}
	if after[0].DX != 5-before[0].X || after[0].DY != 5-before[0].Y {
		t.Errorf("expected lead delta toward pointer, got (%f, %f)", after[0].DX, after[0].DY)
	}
}

func TestOvershootNotClamped(t *testing.T) {
	s := testSettings()
	s.SegmentCount = 0
	s.FollowSpeed = 1.5
	m := NewModel(s, 1)
	m.MousePosition = Position{X: m.Lead().X + 10, Y: m.Lead().Y}

	start := m.Lead().X
	m = Step(m, 10)
	if got := m.Lead().X - start; math.Abs(got-15) > 1e-9 {
		t.Errorf("expected overshoot to +15, got %f", got)
	}
}

func TestFollowersUsePreviousSnapshot(t *testing.T) {
	s := testSettings()
	s.SegmentCount = 1
	s.FollowSpeed = 1
	m := NewModel(s, 1)
	m.Particles[0].X, m.Particles[0].Y = 0, 0
	m.Particles[1].X, m.Particles[1].Y = 0, 0
	m.MousePosition = Position{X: 100, Y: 0}

	m = Step(m, 10)
	if m.Particles[0].X != 100 {
		t.Fatalf("expected lead to reach 100, got %f", m.Particles[0].X)
	}
	if m.Particles[1].X != 0 {
		t.Errorf("follower saw same-step lead position: x=%f", m.Particles[1].X)
	}

	m = Step(m, 10)
	if m.Particles[1].X != 100 {
		t.Errorf("expected follower to catch up one frame later, got %f", m.Particles[1].X)
	}
}

func TestStepDoesNotMutateInput(t *testing.T) {
	m := NewModel(testSettings(), 1)
	m.MousePosition = Position{X: 1, Y: 2}
	snapshot := append([]Particle(nil), m.Particles...)

	_ = Step(m, 16)
	if diff := cmp.Diff(snapshot, m.Particles); diff != "" {
		t.Errorf("Step mutated its input (-before +after):\n%s", diff)
	}
}

func TestChainCollapsesOntoPointer(t *testing.T) {
	s := testSettings()
	s.SegmentCount = 16
	s.FollowSpeed = 0.1
	m := NewModel(s, 1)
	m = Update(m, MouseMove{Position: Position{X: 300, Y: 300}})

	for i := 0; i < 3000; i++ {
		m = Update(m, Tick{ElapsedMs: 16})
	}

	if len(m.Particles) != 17 {
		t.Fatalf("expected 17 particles, got %d", len(m.Particles))
	}
	for _, p := range m.Particles {
		if d := p.Position().Distance(Position{X: 300, Y: 300}); d > 1e-3 {
			t.Errorf("particle %d still %f from (300,300)", p.ID, d)
		}
	}
}

func TestIdleWanderStaysOnCircle(t *testing.T) {
	s := DefaultSettings()
	s.IdleWander = true
	m := NewModel(s, 11)
	center := s.Center()

	for i := 0; i < 500; i++ {
		m = Update(m, Tick{ElapsedMs: 16})
		lead := m.Lead()
		r := lead.Position().Distance(center)
		if math.Abs(r-150) > 1e-9 {
			t.Fatalf("frame %d: lead %f from centre, expected 150", i, r)
		}
		if lead.Position().Distance(Empty) < 1 {
			t.Fatalf("frame %d: lead snapped to the origin", i)
		}
	}
}

func TestIdleWanderAdvancesPhase(t *testing.T) {
	s := DefaultSettings()
	m := NewModel(s, 2)
	before := m.Lead()

	m = Step(m, 16)
	after := m.Lead()
	if after.AngleX != before.AngleX+before.SpeedX || after.AngleY != before.AngleY+before.SpeedY {
		t.Errorf("expected phase advance by speed, got (%f, %f)", after.AngleX-before.AngleX, after.AngleY-before.AngleY)
	}
	if after.DX != after.X-before.X || after.DY != after.Y-before.Y {
		t.Errorf("expected delta to equal displacement")
	}
}

func TestIdleWanderEndsOnPointerMove(t *testing.T) {
	s := DefaultSettings()
	s.SegmentCount = 0
	m := NewModel(s, 2)
	m = Step(m, 16)

	m = Update(m, MouseMove{Position: Position{X: 10, Y: 10}})
	before := m.Lead()
	m = Step(m, 10)
	after := m.Lead()

	if after.AngleX != before.AngleX {
		t.Error("expected wander phase to freeze once the pointer moved")
	}
	if after.Position().Distance(Position{X: 10, Y: 10}) >= before.Position().Distance(Position{X: 10, Y: 10}) {
		t.Error("expected lead to move toward the pointer")
	}
}

func TestFoldMouseMoveLastWins(t *testing.T) {
	m := NewModel(testSettings(), 1)
	m.MousePosition = Position{X: 1, Y: 1}

	batch := []Msg{
		MouseMove{Position: Position{X: 5, Y: 5}},
		UpdateFollowSpeed{Value: 0.9},
		MouseMove{Position: Position{X: 9, Y: 9}},
		Tick{ElapsedMs: 16},
	}
	got := FoldMouseMove(m, batch)

	if got.MousePosition != (Position{X: 9, Y: 9}) {
		t.Errorf("expected (9,9), got %+v", got.MousePosition)
	}
	if got.Settings.FollowSpeed != m.Settings.FollowSpeed {
		t.Error("fold should ignore non-MouseMove messages")
	}
	if diff := cmp.Diff(m.Particles, got.Particles); diff != "" {
		t.Errorf("fold should not tick (-want +got):\n%s", diff)
	}
}

func TestUpdateSegmentCountRebuilds(t *testing.T) {
	m := NewModel(testSettings(), 1)
	m = Update(m, MouseMove{Position: Position{X: 50, Y: 60}})
	for i := 0; i < 10; i++ {
		m = Update(m, Tick{ElapsedMs: 16})
	}

	testCases := []struct {
		n, want int
	}{
		{4, 5},
		{0, 1},
		{30, 31},
		{-3, 1},
	}
	for _, tc := range testCases {
		got := Update(m, UpdateSegmentCount{N: tc.n})
		if len(got.Particles) != tc.want {
			t.Errorf("n=%d: expected %d particles, got %d", tc.n, tc.want, len(got.Particles))
		}
		if len(got.Particles) != got.Settings.Count() {
			t.Errorf("n=%d: particles out of sync with settings", tc.n)
		}
		c := got.Settings.Center()
		for i, p := range got.Particles {
			if p.ID != i+1 {
				t.Errorf("n=%d: index %d has id %d", tc.n, i, p.ID)
			}
			if p.X != c.X || p.Y != c.Y || p.DX != 0 || p.DY != 0 {
				t.Errorf("n=%d: particle %d not freshly initialised: %+v", tc.n, p.ID, p)
			}
		}
	}
	if len(m.Particles) != 17 {
		t.Errorf("original model changed length to %d", len(m.Particles))
	}
}

func TestUpdateSettingsMessages(t *testing.T) {
	m := NewModel(testSettings(), 1)

	m = Update(m, UpdateFollowSpeed{Value: 0.3})
	m = Update(m, UpdateParticleSize{Value: 40})
	m = Update(m, UpdateCanvasSize{Width: 1024, Height: 768})
	m = Update(m, UpdateIdleWander{Enabled: true})

	s := m.Settings
	if s.FollowSpeed != 0.3 || s.ParticleSize != 40 || s.CanvasWidth != 1024 || s.CanvasHeight != 768 || !s.IdleWander {
		t.Errorf("settings not applied: %+v", s)
	}
	if len(m.Particles) != 17 {
		t.Errorf("settings change should not rebuild the chain, got %d particles", len(m.Particles))
	}
}

func TestFollowSpeedReadEachStep(t *testing.T) {
	s := testSettings()
	s.SegmentCount = 0
	m := NewModel(s, 1)
	m.MousePosition = Position{X: m.Lead().X + 100, Y: m.Lead().Y}

	m = Update(m, UpdateFollowSpeed{Value: 0})
	x0 := m.Lead().X
	m = Step(m, 10)
	if m.Lead().X != x0 {
		t.Fatal("expected no motion at speed 0")
	}

	m = Update(m, UpdateFollowSpeed{Value: 0.5})
	m = Step(m, 10)
	if math.Abs(m.Lead().X-(x0+50)) > 1e-9 {
		t.Errorf("expected live speed change to take effect, got x=%f", m.Lead().X)
	}
}
