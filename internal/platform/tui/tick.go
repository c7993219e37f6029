// Package tui provides the Bubble Tea integration for glyphball.
// It handles the terminal UI loop, input mapping, and widget lifecycle.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a widget frame. Gen identifies the frame loop
// that scheduled it.
type TickMsg struct {
	Gen  uint64
	Time time.Time
}

// generations is shared by every loop in the process so SSH sessions never
// reuse an ID.
var generations atomic.Uint64

// FrameLoop owns the pending frame request of one mount. Bubble Tea cannot
// cancel a scheduled tea.Tick, so a released loop instead ignores the ticks
// it already scheduled and schedules no more.
type FrameLoop struct {
	interval time.Duration
	gen      uint64
	released bool
}

// NewFrameLoop creates a loop firing tickRate times per second.
func NewFrameLoop(tickRate int) *FrameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &FrameLoop{
		interval: time.Second / time.Duration(tickRate),
		gen:      generations.Add(1),
	}
}

// Next schedules the next frame. It returns nil once released.
func (l *FrameLoop) Next() tea.Cmd {
	if l.released {
		return nil
	}
	gen := l.gen
	return tea.Tick(l.interval, func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}

// Accept reports whether msg belongs to this loop and the loop is live.
func (l *FrameLoop) Accept(msg TickMsg) bool {
	return !l.released && msg.Gen == l.gen
}

// Release stops the loop. Safe to call more than once.
func (l *FrameLoop) Release() {
	l.released = true
}

// Released reports whether Release has been called.
func (l *FrameLoop) Released() bool {
	return l.released
}

// Interval returns the time between frames.
func (l *FrameLoop) Interval() time.Duration {
	return l.interval
}
