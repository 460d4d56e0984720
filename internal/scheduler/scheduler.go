// Package scheduler runs the per-frame orchestration: it advances the
// simulation clock, updates the camera, refreshes shader parameters and
// issues the draw call, then re-arms itself for the next display refresh.
package scheduler

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/control"
	"github.com/vovakirdan/tui-orbit/internal/render"
	"github.com/vovakirdan/tui-orbit/internal/shader"
)

// Errors returned by the scheduler.
var (
	ErrNotReady       = errors.New("scheduler: surface not sized")
	ErrAlreadyStarted = errors.New("scheduler: already started")
)

// Camera is updated once per frame and then handed to the renderer.
type Camera interface {
	render.View
	Update(t float64, mode control.CameraMode)
}

// Renderer issues the framebuffer operations of a frame.
type Renderer interface {
	Viewport(width, height int)
	Clear()
	Render(cam render.View, prog render.Program, drawables []render.Drawable, t float64)
}

// Surface reports the current display surface size.
type Surface interface {
	Size() (int, int)
	Ready() bool
}

// Scene supplies the renderable set drawn each frame.
type Scene interface {
	Renderables() []render.Drawable
}

// FrameTimer measures frame duration.
type FrameTimer interface {
	Begin()
	End()
}

// Refresher schedules the next frame with the host.
type Refresher interface {
	RequestFrame()
}

// KeyHook receives the discrete key events buffered since the last frame.
type KeyHook func(keys []string)

// Deps are the collaborators a scheduler drives. Timer, KeyHook and Logger
// are optional.
type Deps struct {
	Camera    Camera
	Renderer  Renderer
	Program   render.Program
	Scene     Scene
	Surface   Surface
	Refresher Refresher
	Timer     FrameTimer
	KeyHook   KeyHook
	Logger    *log.Logger
}

// Scheduler owns the simulation time.
type Scheduler struct {
	deps    Deps
	keys    []string
	time    float64
	frames  int
	started bool
}

type noopTimer struct{}

func (noopTimer) Begin() {}
func (noopTimer) End()   {}

// New creates a scheduler. Missing required collaborators are a startup
// misconfiguration and return an error.
func New(d Deps) (*Scheduler, error) {
	switch {
	case d.Camera == nil:
		return nil, fmt.Errorf("scheduler: missing camera")
	case d.Renderer == nil:
		return nil, fmt.Errorf("scheduler: missing rendering context")
	case d.Program == nil:
		return nil, fmt.Errorf("scheduler: missing shader program")
	case d.Scene == nil:
		return nil, fmt.Errorf("scheduler: missing scene")
	case d.Surface == nil:
		return nil, fmt.Errorf("scheduler: missing surface")
	case d.Refresher == nil:
		return nil, fmt.Errorf("scheduler: missing refresh notifier")
	}
	if d.Timer == nil {
		d.Timer = noopTimer{}
	}
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	return &Scheduler{deps: d}, nil
}

// Start arms the first frame. It must be called exactly once, after the
// surface has been sized.
func (s *Scheduler) Start() error {
	if s.started {
		return ErrAlreadyStarted
	}
	if !s.deps.Surface.Ready() {
		return ErrNotReady
	}
	s.started = true
	w, h := s.deps.Surface.Size()
	s.deps.Logger.Info("render loop started", "width", w, "height", h)
	s.deps.Refresher.RequestFrame()
	return nil
}

// QueueKey buffers a discrete key event for the next frame.
func (s *Scheduler) QueueKey(k string) {
	s.keys = append(s.keys, k)
}

// Tick runs one frame with the control snapshot cs. cs is read here and
// nowhere else, so the thrust pushed to the shader is the thrust the clock
// advances by.
func (s *Scheduler) Tick(cs control.State) {
	cs = cs.Normalize()
	d := s.deps

	d.Camera.Update(s.time, cs.Mode)
	d.Timer.Begin()

	w, h := d.Surface.Size()
	d.Renderer.Viewport(w, h)
	d.Renderer.Clear()

	s.processKeys()

	d.Program.Push(shader.Thrust(cs.Thrust), shader.Fins(cs.Fins))
	d.Renderer.Render(d.Camera, d.Program, d.Scene.Renderables(), s.time)

	s.time += cs.Thrust
	s.frames++
	d.Timer.End()

	d.Refresher.RequestFrame()
}

// processKeys drains the key buffer into the hook.
func (s *Scheduler) processKeys() {
	if len(s.keys) == 0 {
		return
	}
	keys := s.keys
	s.keys = nil
	if s.deps.KeyHook != nil {
		s.deps.KeyHook(keys)
	}
}

// Time returns the simulation time the next frame will render at.
func (s *Scheduler) Time() float64 {
	return s.time
}

// Frames returns the number of completed ticks.
func (s *Scheduler) Frames() int {
	return s.frames
}

// Started reports whether Start has armed the loop.
func (s *Scheduler) Started() bool {
	return s.started
}
