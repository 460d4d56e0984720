package scheduler

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/control"
)

// Event is something the host delivers to the loop.
type Event interface {
	isEvent()
}

// FrameEvent signals that the display is ready for the next frame.
type FrameEvent struct{}

// ResizeEvent signals that the display surface changed size.
type ResizeEvent struct {
	Width, Height int
}

func (FrameEvent) isEvent()  {}
func (ResizeEvent) isEvent() {}

// Resizer applies a surface resize.
type Resizer interface {
	Resize(width, height int) error
}

// Loop dispatches host events one at a time. Because a resize is handled
// as a whole between two ticks, it can never be observed half applied by a
// frame.
type Loop struct {
	sched    *Scheduler
	resizer  Resizer
	provider control.Provider
	logger   *log.Logger
}

// NewLoop creates an event loop. A nil logger discards output.
func NewLoop(s *Scheduler, r Resizer, p control.Provider, logger *log.Logger) *Loop {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Loop{sched: s, resizer: r, provider: p, logger: logger}
}

// Handle processes a single event. A frame reads the control state once,
// at its start.
func (l *Loop) Handle(ev Event) error {
	switch e := ev.(type) {
	case FrameEvent:
		l.sched.Tick(l.provider.Snapshot())
	case ResizeEvent:
		return l.resizer.Resize(e.Width, e.Height)
	}
	return nil
}

// Run handles events until the channel is closed (host teardown) or ctx is
// cancelled. Rejected resizes are logged and skipped.
func (l *Loop) Run(ctx context.Context, events <-chan Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				l.logger.Debug("host stopped delivering events", "frames", l.sched.Frames())
				return nil
			}
			if err := l.Handle(ev); err != nil {
				l.logger.Warn("event rejected", "error", err)
			}
		}
	}
}

// ChannelHost is a headless host. Each RequestFrame enqueues one
// FrameEvent; after limit frames the channel is closed, which ends Run.
// A limit of 0 never closes.
type ChannelHost struct {
	mu        sync.Mutex
	events    chan Event
	limit     int
	delivered int
	closed    bool
}

// hostBuffer bounds the number of pending events.
const hostBuffer = 16

// NewChannelHost creates a host that delivers at most limit frames.
func NewChannelHost(limit int) *ChannelHost {
	return &ChannelHost{events: make(chan Event, hostBuffer), limit: limit}
}

// Events returns the channel the loop reads from.
func (h *ChannelHost) Events() <-chan Event {
	return h.events
}

// RequestFrame schedules the next frame.
func (h *ChannelHost) RequestFrame() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	if h.limit > 0 && h.delivered >= h.limit {
		h.closed = true
		close(h.events)
		return
	}
	select {
	case h.events <- FrameEvent{}:
		h.delivered++
	default:
		// A frame is already pending
	}
}

// Resize enqueues a resize event. Returns false if the host is closed or
// the queue is full.
func (h *ChannelHost) Resize(width, height int) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	select {
	case h.events <- ResizeEvent{Width: width, Height: height}:
		return true
	default:
		return false
	}
}

// Delivered returns the number of frame events enqueued so far.
func (h *ChannelHost) Delivered() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.delivered
}

var _ Refresher = (*ChannelHost)(nil)
