// Package tui provides the Bubble Tea integration for the orbit renderer.
// Bubble Tea's tick is the display refresh notifier: each frame re-arms the
// next one, and window size messages are the surface resize events.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent when the display is ready for the next frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that delivers one tick after a frame interval.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// teaHost adapts the tick command to the scheduler's refresh notifier.
// RequestFrame only records the request; the model turns it into a tick
// command when it returns from Update.
type teaHost struct {
	armed bool
}

// RequestFrame asks for the next frame.
func (h *teaHost) RequestFrame() {
	h.armed = true
}

// take returns the pending tick command, if a frame was requested.
func (h *teaHost) take(tickRate int) tea.Cmd {
	if !h.armed {
		return nil
	}
	h.armed = false
	return tickCmd(tickRate)
}
