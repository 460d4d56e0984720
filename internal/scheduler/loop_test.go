package scheduler

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/camera"
	"github.com/vovakirdan/tui-orbit/internal/control"
	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/orbit"
	"github.com/vovakirdan/tui-orbit/internal/render"
	"github.com/vovakirdan/tui-orbit/internal/scene"
	"github.com/vovakirdan/tui-orbit/internal/shader"
	"github.com/vovakirdan/tui-orbit/internal/viewport"
)

// stack wires the real collaborators behind a headless host.
type stack struct {
	cam    *camera.Camera
	rend   *render.Renderer
	prog   *shader.Program
	coord  *viewport.Coordinator
	panel  *control.Panel
	host   *ChannelHost
	sched  *Scheduler
	loop   *Loop
	frames int
}

func newStack(t *testing.T, limit int) *stack {
	t.Helper()
	o := orbit.Default()
	cam, err := camera.New(mgl64.Vec3{0, 0, 3000}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}, camera.DefaultLens(), o)
	if err != nil {
		t.Fatal(err)
	}
	rend, err := render.New(40, 20)
	if err != nil {
		t.Fatal(err)
	}
	prog, err := shader.Compile("test", shader.Source{Vertex: "v", Fragment: "f"}, func(shader.Fragment) core.Cell {
		return core.Cell{Rune: '#'}
	})
	if err != nil {
		t.Fatal(err)
	}
	mgr := scene.NewManager()
	if err := mgr.Load(5); err != nil {
		t.Fatal(err)
	}

	s := &stack{
		cam:   cam,
		rend:  rend,
		prog:  prog,
		coord: viewport.New(rend, cam, prog, nil),
		panel: control.NewPanel(control.DefaultState(), 0),
		host:  NewChannelHost(limit),
	}
	s.sched, err = New(Deps{
		Camera:    cam,
		Renderer:  rend,
		Program:   prog,
		Scene:     mgr,
		Surface:   s.coord,
		Refresher: s.host,
	})
	if err != nil {
		t.Fatal(err)
	}
	s.loop = NewLoop(s.sched, s.coord, s.panel, nil)
	return s
}

func TestThousandTicksHalfOrbit(t *testing.T) {
	s := newStack(t, 1000)
	if err := s.coord.Resize(40, 20); err != nil {
		t.Fatal(err)
	}
	if err := s.sched.Start(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.loop.Run(ctx, s.host.Events()); err != nil {
		t.Fatalf("Run() = %v", err)
	}

	if s.sched.Frames() != 1000 {
		t.Fatalf("Frames() = %d, expected 1000", s.sched.Frames())
	}
	if s.sched.Time() != 1000 {
		t.Errorf("Time() = %v, expected 1000", s.sched.Time())
	}
	// Last frame rendered at t=999; the next would put the rocket at angle pi
	o := orbit.Default()
	if a := o.Angle(s.sched.Time()) - o.Angle(0); math.Abs(a-math.Pi) > 1e-9 {
		t.Errorf("rocket advanced %v rad after 1000 ticks, expected pi", a)
	}
	want := o.RocketPosition(999)
	if !s.cam.Center().ApproxEqualThreshold(want, 1e-6) {
		t.Errorf("camera center = %v, expected rocket at %v", s.cam.Center(), want)
	}
}

func TestResizeBetweenTicks(t *testing.T) {
	s := newStack(t, 0)
	if err := s.loop.Handle(ResizeEvent{Width: 40, Height: 20}); err != nil {
		t.Fatal(err)
	}
	if err := s.sched.Start(); err != nil {
		t.Fatal(err)
	}
	if err := s.loop.Handle(FrameEvent{}); err != nil {
		t.Fatal(err)
	}
	if err := s.loop.Handle(ResizeEvent{Width: 100, Height: 25}); err != nil {
		t.Fatal(err)
	}
	if err := s.loop.Handle(FrameEvent{}); err != nil {
		t.Fatal(err)
	}

	u := s.prog.Uniforms()
	if u.Width != 100 || u.Height != 25 {
		t.Errorf("shader dimensions = %dx%d, expected 100x25", u.Width, u.Height)
	}
	if s.cam.AspectRatio() != 4 {
		t.Errorf("camera aspect = %v, expected 4", s.cam.AspectRatio())
	}
	if vp := s.rend.ViewportRect(); vp.W != 100 || vp.H != 25 {
		t.Errorf("viewport = %+v, expected 100x25", vp)
	}
	if fb := s.rend.Framebuffer(); fb.Width() != 100 || fb.Height() != 25 {
		t.Errorf("framebuffer = %dx%d, expected 100x25", fb.Width(), fb.Height())
	}
}

func TestRejectedResizeKeepsLoopRunning(t *testing.T) {
	s := newStack(t, 3)
	if err := s.coord.Resize(40, 20); err != nil {
		t.Fatal(err)
	}
	if !s.host.Resize(0, 10) {
		t.Fatal("host refused resize")
	}
	if err := s.sched.Start(); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.loop.Run(ctx, s.host.Events()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if s.sched.Frames() != 3 {
		t.Errorf("Frames() = %d, expected 3", s.sched.Frames())
	}
	if w, h := s.coord.Size(); w != 40 || h != 20 {
		t.Errorf("size after rejected resize = %dx%d, expected 40x20", w, h)
	}
}

func TestLoopReadsControlsEachFrame(t *testing.T) {
	s := newStack(t, 0)
	if err := s.coord.Resize(40, 20); err != nil {
		t.Fatal(err)
	}
	s.panel.AdjustThrust(4) // 1.0 -> 2.0 with the default step

	if err := s.loop.Handle(FrameEvent{}); err != nil {
		t.Fatal(err)
	}
	if s.sched.Time() != 2 {
		t.Errorf("Time() = %v, expected 2", s.sched.Time())
	}
	if u := s.prog.Uniforms(); u.Thrust != 2 {
		t.Errorf("u_Thrust = %v, expected 2", u.Thrust)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := newStack(t, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.loop.Run(ctx, s.host.Events()); err != context.Canceled {
		t.Errorf("Run() = %v, expected context.Canceled", err)
	}
}

func TestChannelHostCoalescesFrames(t *testing.T) {
	h := NewChannelHost(0)
	h.RequestFrame()
	for i := 0; i < hostBuffer*2; i++ {
		h.RequestFrame()
	}
	if h.Delivered() > hostBuffer {
		t.Errorf("Delivered() = %d, exceeds buffer %d", h.Delivered(), hostBuffer)
	}
}
