package runtime

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// manualScheduler holds the pending callback until the test fires it.
type manualScheduler struct {
	pending  FrameFunc
	requests int
}

func (s *manualScheduler) RequestFrame(fn FrameFunc) {
	s.pending = fn
	s.requests++
}

// fire runs the pending callback at the given millisecond timestamp.
// It reports false if nothing was scheduled.
func (s *manualScheduler) fire(ms int) bool {
	fn := s.pending
	if fn == nil {
		return false
	}
	s.pending = nil
	fn(time.Duration(ms) * time.Millisecond)
	return true
}

type msg struct {
	tick  float64
	event string
}

type model struct {
	ticks  []float64
	events []string
}

func (m model) with(x msg) model {
	// copy so earlier snapshots are never aliased
	out := model{
		ticks:  append([]float64(nil), m.ticks...),
		events: append([]string(nil), m.events...),
	}
	if x.event != "" {
		out.events = append(out.events, x.event)
	} else {
		out.ticks = append(out.ticks, x.tick)
	}
	return out
}

type surface struct {
	views []model
}

func newProgram(subscribe func(Dispatch[msg])) Program[*surface, model, msg] {
	return Program[*surface, model, msg]{
		TickMsg: func(elapsedMs float64) msg { return msg{tick: elapsedMs} },
		Update:  func(m model, x msg) model { return m.with(x) },
		View: func(s *surface, _ Dispatch[msg], m model) {
			s.views = append(s.views, m)
		},
		Subscribe: subscribe,
	}
}

func TestFirstFrameIsPriming(t *testing.T) {
	sched := &manualScheduler{}
	surf := &surface{}
	h := Start(sched, surf, newProgram(nil))

	sched.fire(1000)
	if len(surf.views) != 0 {
		t.Errorf("expected no view on priming frame, got %d", len(surf.views))
	}
	if len(h.Model().ticks) != 0 {
		t.Errorf("expected no tick on priming frame, got %v", h.Model().ticks)
	}

	sched.fire(1016)
	sched.fire(1050)

	if diff := cmp.Diff([]float64{16, 34}, h.Model().ticks); diff != "" {
		t.Errorf("elapsed mismatch (-want +got):\n%s", diff)
	}
	if len(surf.views) != 2 {
		t.Errorf("expected 2 views, got %d", len(surf.views))
	}
	if h.Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", h.Frames())
	}
}

func TestDispatchAppliesImmediately(t *testing.T) {
	sched := &manualScheduler{}
	surf := &surface{}
	var dispatch Dispatch[msg]
	h := Start(sched, surf, newProgram(func(d Dispatch[msg]) { dispatch = d }))

	if dispatch == nil {
		t.Fatal("expected subscribe to receive dispatch")
	}

	sched.fire(0)
	dispatch(msg{event: "a"})
	dispatch(msg{event: "b"})

	// visible before any frame runs
	if diff := cmp.Diff([]string{"a", "b"}, h.Model().events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}

	sched.fire(16)
	last := surf.views[len(surf.views)-1]
	if diff := cmp.Diff([]string{"a", "b"}, last.events); diff != "" {
		t.Errorf("next frame view missing events (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]float64{16}, last.ticks); diff != "" {
		t.Errorf("ticks mismatch (-want +got):\n%s", diff)
	}
}

func TestDisposeRunsOneNoopFrame(t *testing.T) {
	sched := &manualScheduler{}
	surf := &surface{}
	h := Start(sched, surf, newProgram(nil))

	sched.fire(0)
	sched.fire(16)
	h.Dispose()

	if !h.Disposed() {
		t.Fatal("expected handle to report disposed")
	}

	requests := sched.requests
	if !sched.fire(32) {
		t.Fatal("expected the already-scheduled frame to still fire")
	}
	if sched.requests != requests {
		t.Errorf("expected no new frame request after dispose")
	}
	if sched.fire(48) {
		t.Error("expected loop to be stopped")
	}
	if len(surf.views) != 1 {
		t.Errorf("expected 1 view, got %d", len(surf.views))
	}

	h.Dispatch(msg{event: "late"})
	if len(h.Model().events) != 0 {
		t.Errorf("expected dispatch after dispose to be dropped, got %v", h.Model().events)
	}
}

func TestViewPanicStopsLoop(t *testing.T) {
	sched := &manualScheduler{}
	prog := newProgram(nil)
	prog.View = func(*surface, Dispatch[msg], model) { panic("view failed") }
	Start(sched, &surface{}, prog)

	sched.fire(0)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected view panic to propagate")
			}
		}()
		sched.fire(16)
	}()

	if sched.pending != nil {
		t.Error("expected no frame scheduled after panic")
	}
}

func TestUpdatePanicStopsLoop(t *testing.T) {
	sched := &manualScheduler{}
	surf := &surface{}
	prog := newProgram(nil)
	prog.Update = func(m model, x msg) model {
		if x.event == "" {
			panic("update failed")
		}
		return m.with(x)
	}
	h := Start(sched, surf, prog)

	sched.fire(0)
	func() {
		defer func() {
			if recover() == nil {
				t.Error("expected update panic to propagate")
			}
		}()
		sched.fire(16)
	}()

	if sched.pending != nil {
		t.Error("expected no frame scheduled after panic")
	}
	if len(surf.views) != 0 {
		t.Errorf("expected view skipped after update panic, got %d views", len(surf.views))
	}
	if h.Frames() != 0 {
		t.Errorf("expected no completed frames, got %d", h.Frames())
	}
}

func TestViewCanDispatch(t *testing.T) {
	sched := &manualScheduler{}
	prog := newProgram(nil)
	sent := false
	prog.View = func(_ *surface, d Dispatch[msg], _ model) {
		if !sent {
			sent = true
			d(msg{event: "from-view"})
		}
	}
	h := Start(sched, &surface{}, prog)
	sched.fire(0)
	sched.fire(10)

	if diff := cmp.Diff([]string{"from-view"}, h.Model().events); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
}
