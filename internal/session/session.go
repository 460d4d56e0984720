// Package session assembles one complete render stack: shader program,
// renderer, camera, control panel, scene, frame scheduler and event loop.
// Each local or SSH terminal, and each headless simulation, owns one.
package session

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/camera"
	"github.com/vovakirdan/tui-orbit/internal/config"
	"github.com/vovakirdan/tui-orbit/internal/control"
	"github.com/vovakirdan/tui-orbit/internal/registry"
	"github.com/vovakirdan/tui-orbit/internal/render"
	"github.com/vovakirdan/tui-orbit/internal/scene"
	"github.com/vovakirdan/tui-orbit/internal/scheduler"
	"github.com/vovakirdan/tui-orbit/internal/shader"
	"github.com/vovakirdan/tui-orbit/internal/stats"
	"github.com/vovakirdan/tui-orbit/internal/storage"
	"github.com/vovakirdan/tui-orbit/internal/viewport"
)

// KeyScreenshot is the discrete key event that captures the framebuffer.
const KeyScreenshot = "ctrl+s"

// Options configure a new session.
type Options struct {
	Config config.Config
	Shader string // Overrides Config.Render.Shader when set
	Mode   string // Overrides Config.Controls.Mode when set

	// Initial surface size in cells
	Width, Height int

	// Refresher is the host refresh notifier the scheduler re-arms
	Refresher scheduler.Refresher
	User      string
	Logger    *log.Logger
	Clock     func() time.Time
}

// Session is one running render stack.
type Session struct {
	ID     string
	User   string
	Shader string

	Camera    *camera.Camera
	Control   *camera.OrbitControl
	Renderer  *render.Renderer
	Program   *shader.Program
	Viewport  *viewport.Coordinator
	Panel     *control.Panel
	Scene     *scene.Manager
	Meter     *stats.Meter
	Scheduler *scheduler.Scheduler
	Loop      *scheduler.Loop

	cfg       config.Config
	logger    *log.Logger
	frameKeys []string
}

// New builds and sizes a session. The loop is not started; call Start.
func New(opts Options) (*Session, error) {
	cfg := opts.Config
	if opts.Shader != "" {
		cfg.Render.Shader = opts.Shader
	}
	if opts.Mode != "" {
		cfg.Controls.Mode = opts.Mode
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if opts.Refresher == nil {
		return nil, fmt.Errorf("session: missing refresh notifier")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	user := opts.User
	if user == "" {
		user = "local"
	}

	s := &Session{
		ID:     fmt.Sprintf("%s-%d", user, clock().UnixNano()),
		User:   user,
		Shader: cfg.Render.Shader,
		cfg:    cfg,
		logger: logger,
	}

	var err error
	if s.Program, err = registry.Create(cfg.Render.Shader, cfg.Orbit); err != nil {
		return nil, err
	}
	if s.Renderer, err = render.New(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	cc := cfg.Render.ClearColor
	s.Renderer.SetClearColor(cc[0], cc[1], cc[2], cc[3])

	s.Camera, err = camera.New(cfg.Camera.EyeVec(), cfg.Camera.CenterVec(), cfg.Camera.UpVec(), cfg.Camera.Lens(), cfg.Orbit)
	if err != nil {
		return nil, err
	}
	s.Control = camera.NewOrbitControl(s.Camera,
		camera.WithSensitivity(cfg.Controls.DragSensitivity),
		camera.WithZoomLimits(cfg.Controls.ZoomMin, cfg.Controls.ZoomMax),
	)

	initial, err := cfg.Controls.InitialState()
	if err != nil {
		return nil, err
	}
	s.Panel = control.NewPanel(initial, cfg.Controls.ThrustStep)
	s.Scene = scene.NewManager()
	if err := s.Scene.Load(initial.Tessellations); err != nil {
		return nil, err
	}

	s.Meter = stats.NewMeterWithClock(clock)
	s.Viewport = viewport.New(s.Renderer, s.Camera, s.Program, logger)

	s.Scheduler, err = scheduler.New(scheduler.Deps{
		Camera:    s.Camera,
		Renderer:  s.Renderer,
		Program:   s.Program,
		Scene:     s.Scene,
		Surface:   s.Viewport,
		Refresher: opts.Refresher,
		Timer:     s.Meter,
		KeyHook:   s.handleKeys,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	s.Loop = scheduler.NewLoop(s.Scheduler, s.Viewport, s.Panel, logger)

	// The initial resize runs before the first frame is armed
	if err := s.Resize(opts.Width, opts.Height); err != nil {
		return nil, err
	}
	return s, nil
}

// Start arms the first frame.
func (s *Session) Start() error {
	return s.Scheduler.Start()
}

// Resize applies a surface size change between frames.
func (s *Session) Resize(width, height int) error {
	return s.Loop.Handle(scheduler.ResizeEvent{Width: width, Height: height})
}

// Frame runs one tick and returns the discrete keys it processed.
func (s *Session) Frame() []string {
	s.frameKeys = nil
	//nolint:errcheck // Frame events never fail
	s.Loop.Handle(scheduler.FrameEvent{})
	return s.frameKeys
}

// QueueKey buffers a key for the next frame.
func (s *Session) QueueKey(k string) {
	s.Scheduler.QueueKey(k)
}

func (s *Session) handleKeys(keys []string) {
	s.frameKeys = append(s.frameKeys, keys...)
}

// AdjustTessellations changes the tessellation level and reloads the scene
// when it changed.
func (s *Session) AdjustTessellations(delta int) error {
	if !s.Panel.AdjustTessellations(delta) {
		return nil
	}
	level := s.Panel.Snapshot().Tessellations
	if err := s.Scene.Load(level); err != nil {
		return err
	}
	s.logger.Debug("scene reloaded", "tessellations", level)
	return nil
}

// ToggleMode switches between follow and user-controlled camera. Drags that
// are in progress end with the switch.
func (s *Session) ToggleMode() control.CameraMode {
	s.Control.EndDrag()
	mode := s.Panel.ToggleMode()
	s.logger.Debug("camera mode", "mode", mode)
	return mode
}

// RocketAngle returns the orbital angle in degrees the next frame renders at.
func (s *Session) RocketAngle() float64 {
	a := math.Mod(s.cfg.Orbit.Angle(s.Scheduler.Time()), 2*math.Pi)
	return a * 180 / math.Pi
}

// Screenshot writes the framebuffer as plain text into dir and returns the
// file path.
func (s *Session) Screenshot(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("session: cannot create %s: %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("orbit_%s_%s.txt", s.Shader, timestamp))
	if err := os.WriteFile(path, []byte(s.Renderer.Framebuffer().String()), 0o600); err != nil {
		return "", fmt.Errorf("session: cannot write screenshot: %w", err)
	}
	return path, nil
}

// Flight summarizes the session for the flight log.
func (s *Session) Flight() storage.Flight {
	cs := s.Panel.Snapshot()
	return storage.Flight{
		SessionID:   s.ID,
		User:        s.User,
		Shader:      s.Shader,
		Frames:      s.Scheduler.Frames(),
		SimTime:     s.Scheduler.Time(),
		AvgFrameMS:  float64(s.Meter.Average()) / float64(time.Millisecond),
		Fins:        cs.Fins,
		FinalThrust: cs.Thrust,
		Mode:        cs.Mode.String(),
	}
}

// Config returns the effective configuration.
func (s *Session) Config() config.Config {
	return s.cfg
}
