package tui

import (
	"github.com/vovakirdan/glyphball/internal/core"
	"github.com/vovakirdan/glyphball/internal/registry"
)

// Mount is one mounted widget instance together with the resources it
// holds: the frame loop and the pointer listener.
type Mount struct {
	Widget  registry.Widget
	Loop    *FrameLoop
	Pointer *PointerListener
	Seed    int64

	disposed bool
}

// NewMount resets w with cfg and creates its frame loop and pointer
// listener. The first frame is scheduled by Loop.Next.
func NewMount(w registry.Widget, cfg core.RuntimeConfig) *Mount {
	w.Reset(cfg)
	return &Mount{
		Widget:  w,
		Loop:    NewFrameLoop(cfg.TickRate),
		Pointer: NewPointerListener(),
		Seed:    cfg.Seed,
	}
}

// Dispose releases the frame loop and the pointer listener. It is
// idempotent; only the first call returns true.
func (m *Mount) Dispose() bool {
	if m == nil || m.disposed {
		return false
	}
	m.disposed = true
	m.Loop.Release()
	m.Pointer.Release()
	return true
}

// Disposed reports whether Dispose has been called.
func (m *Mount) Disposed() bool {
	return m == nil || m.disposed
}
