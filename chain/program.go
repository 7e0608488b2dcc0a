package chain

import (
	"github.com/pthm-cable/trail/render"
	"github.com/pthm-cable/trail/runtime"
)

// NewProgram binds the chain's update and view to the runtime contract.
// Callers add Subscribe and may wrap View to draw overlays.
func NewProgram(init Model) runtime.Program[render.Surface, Model, Msg] {
	return runtime.Program[render.Surface, Model, Msg]{
		Init:    init,
		TickMsg: TickMsg,
		Update:  Update,
		View: func(s render.Surface, _ runtime.Dispatch[Msg], m Model) {
			View(s, m)
		},
	}
}
