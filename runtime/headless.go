package runtime

import "time"

// Headless is a Scheduler that runs frames back to back on a synthetic
// clock advancing by Interval per frame. It drives runs without a window.
type Headless struct {
	Interval time.Duration

	// BeforeFrame, if set, runs ahead of each callback with the frame
	// timestamp. It is where scripted input dispatches.
	BeforeFrame func(now time.Duration)

	pending FrameFunc
	now     time.Duration
	fired   int
}

// NewHeadless creates a headless scheduler at the given frame rate.
func NewHeadless(fps int) *Headless {
	if fps <= 0 {
		fps = 60
	}
	return &Headless{Interval: time.Second / time.Duration(fps)}
}

// RequestFrame implements Scheduler.
func (h *Headless) RequestFrame(fn FrameFunc) {
	h.pending = fn
}

// Run fires up to maxFrames callbacks (0 = until nothing is scheduled)
// and returns how many fired.
func (h *Headless) Run(maxFrames int) int {
	n := 0
	for h.pending != nil && (maxFrames <= 0 || n < maxFrames) {
		fn := h.pending
		h.pending = nil
		if h.BeforeFrame != nil {
			h.BeforeFrame(h.now)
		}
		fn(h.now)
		h.now += h.Interval
		h.fired++
		n++
	}
	return n
}

// Now returns the timestamp the next frame will receive.
func (h *Headless) Now() time.Duration {
	return h.now
}

// Fired returns the total number of callbacks run.
func (h *Headless) Fired() int {
	return h.fired
}

// Pending reports whether a frame is scheduled.
func (h *Headless) Pending() bool {
	return h.pending != nil
}
