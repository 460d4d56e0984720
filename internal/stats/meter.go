// Package stats measures frame timing, the terminal counterpart of a
// browser FPS overlay.
package stats

import "time"

// windowSize is the number of recent frames FPS is averaged over.
const windowSize = 60

// Meter records the duration of each frame between Begin and End.
type Meter struct {
	now func() time.Time

	started bool
	begin   time.Time
	last    time.Duration
	total   time.Duration
	frames  int
	ends    [windowSize]time.Time
	head    int
	filled  int
}

// NewMeter creates a meter using the wall clock.
func NewMeter() *Meter {
	return NewMeterWithClock(time.Now)
}

// NewMeterWithClock creates a meter reading time from now. Used by tests.
func NewMeterWithClock(now func() time.Time) *Meter {
	return &Meter{now: now}
}

// Begin marks the start of a frame.
func (m *Meter) Begin() {
	m.begin = m.now()
	m.started = true
}

// End marks the end of the frame started by Begin.
// An End without a Begin is ignored.
func (m *Meter) End() {
	if !m.started {
		return
	}
	end := m.now()
	d := end.Sub(m.begin)
	m.started = false

	m.last = d
	m.total += d
	m.frames++

	m.ends[m.head] = end
	m.head = (m.head + 1) % windowSize
	if m.filled < windowSize {
		m.filled++
	}
}

// Frames returns the number of completed frames.
func (m *Meter) Frames() int {
	return m.frames
}

// Last returns the duration of the most recent frame.
func (m *Meter) Last() time.Duration {
	return m.last
}

// Average returns the mean frame duration over all frames.
func (m *Meter) Average() time.Duration {
	if m.frames == 0 {
		return 0
	}
	return m.total / time.Duration(m.frames)
}

// FPS returns the frame rate measured over the recent window, from the end
// of the oldest frame to the end of the newest.
func (m *Meter) FPS() float64 {
	if m.filled < 2 {
		return 0
	}
	newest := m.ends[(m.head-1+windowSize)%windowSize]
	oldest := m.ends[(m.head-m.filled+windowSize)%windowSize]
	span := newest.Sub(oldest)
	if span <= 0 {
		return 0
	}
	return float64(m.filled-1) / span.Seconds()
}

// Snapshot is a point-in-time copy of the meter readings.
type Snapshot struct {
	Frames  int
	Last    time.Duration
	Average time.Duration
	FPS     float64
}

// Snapshot returns the current readings.
func (m *Meter) Snapshot() Snapshot {
	return Snapshot{
		Frames:  m.frames,
		Last:    m.last,
		Average: m.Average(),
		FPS:     m.FPS(),
	}
}
