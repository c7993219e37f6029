package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/glyphball/internal/core"
)

// PointerListener owns the mount's pointer registration. Mouse events are
// collected between frames and dropped once the listener is released.
type PointerListener struct {
	x        int
	moved    bool
	clicked  bool
	released bool
}

// NewPointerListener creates an active listener.
func NewPointerListener() *PointerListener {
	return &PointerListener{}
}

// Handle records a mouse event. It returns false if the event was dropped.
func (p *PointerListener) Handle(msg tea.MouseMsg) bool {
	if p.released {
		return false
	}
	p.x = msg.X
	p.moved = true
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		p.clicked = true
	}
	return true
}

// Flush writes the events collected since the last frame into frame.
func (p *PointerListener) Flush(frame *core.InputFrame) {
	if p.released {
		return
	}
	if p.moved {
		frame.MovePointer(p.x)
	}
	if p.clicked {
		frame.Set(core.ActionStart)
	}
	p.moved = false
	p.clicked = false
}

// Release unregisters the listener. Safe to call more than once.
func (p *PointerListener) Release() {
	p.released = true
	p.moved = false
	p.clicked = false
}

// Released reports whether Release has been called.
func (p *PointerListener) Released() bool {
	return p.released
}
