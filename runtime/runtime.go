// Package runtime drives a model through time with caller-supplied update
// and view functions. It knows nothing about what the model represents.
//
// Everything runs on the scheduler's goroutine: frame callbacks and
// dispatches never interleave, so the model slot needs no locking.
package runtime

import "time"

// FrameFunc is a one-shot frame callback. now is the host's frame
// timestamp measured from an arbitrary fixed origin.
type FrameFunc func(now time.Duration)

// Scheduler invokes a callback on the next animation frame.
// Each RequestFrame schedules exactly one invocation.
type Scheduler interface {
	RequestFrame(fn FrameFunc)
}

// Dispatch delivers a message to the running program.
type Dispatch[Msg any] func(msg Msg)

// Program bundles the pure functions that define an animation.
type Program[S, M, Msg any] struct {
	// Init is the starting model.
	Init M

	// TickMsg wraps elapsed milliseconds into a domain message.
	TickMsg func(elapsedMs float64) Msg

	// Update folds one message into the model.
	Update func(model M, msg Msg) M

	// View renders the model onto the surface. It must not retain the model.
	View func(surface S, dispatch Dispatch[Msg], model M)

	// Subscribe registers external event sources. Optional.
	Subscribe func(dispatch Dispatch[Msg])
}

// Handle is the owned state cell of a started program.
// Only the frame callback and Dispatch write to the model.
type Handle[S, M, Msg any] struct {
	sched   Scheduler
	surface S
	prog    Program[S, M, Msg]

	model    M
	last     time.Duration
	primed   bool
	disposed bool
	frames   int
}

// Start installs prog on the scheduler and requests the first frame.
// The first frame only records its timestamp; updates and redraws begin
// on the second.
func Start[S, M, Msg any](sched Scheduler, surface S, prog Program[S, M, Msg]) *Handle[S, M, Msg] {
	h := &Handle[S, M, Msg]{
		sched:   sched,
		surface: surface,
		prog:    prog,
		model:   prog.Init,
	}
	if prog.Subscribe != nil {
		prog.Subscribe(h.Dispatch)
	}
	sched.RequestFrame(h.frame)
	return h
}

// frame is the per-frame callback. Panics from Update or View are not
// recovered here; they end the loop because no further frame is requested.
func (h *Handle[S, M, Msg]) frame(now time.Duration) {
	if h.disposed {
		return
	}
	if !h.primed {
		h.primed = true
		h.last = now
		h.sched.RequestFrame(h.frame)
		return
	}

	elapsed := float64(now-h.last) / float64(time.Millisecond)
	h.last = now

	h.model = h.prog.Update(h.model, h.prog.TickMsg(elapsed))
	h.prog.View(h.surface, h.Dispatch, h.model)
	h.frames++

	h.sched.RequestFrame(h.frame)
}

// Dispatch applies msg to the model immediately. Messages sent after
// Dispose are dropped.
func (h *Handle[S, M, Msg]) Dispatch(msg Msg) {
	if h.disposed {
		return
	}
	h.model = h.prog.Update(h.model, msg)
}

// Dispose stops the loop. A frame already scheduled still fires once
// as a no-op and schedules nothing further.
func (h *Handle[S, M, Msg]) Dispose() {
	h.disposed = true
}

// Disposed reports whether Dispose has been called.
func (h *Handle[S, M, Msg]) Disposed() bool {
	return h.disposed
}

// Model returns the current model.
func (h *Handle[S, M, Msg]) Model() M {
	return h.model
}

// Frames returns how many frames ran update and view.
func (h *Handle[S, M, Msg]) Frames() int {
	return h.frames
}
