package tui

import (
	"io"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/config"
	"github.com/vovakirdan/tui-orbit/internal/control"
	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/session"
	"github.com/vovakirdan/tui-orbit/internal/storage"
)

// messageTTL is how long a status bar message stays visible.
const messageTTL = 3 * time.Second

// FlightSaver records finished sessions.
type FlightSaver interface {
	SaveFlight(f storage.Flight) (int64, error)
}

// Options configure a render view.
type Options struct {
	Config  config.Config
	Shader  string // Overrides the configured shader when set
	Mode    string // Overrides the configured camera mode when set
	Runtime core.RuntimeConfig
	Store   FlightSaver // May be nil
	User    string
	// ScreenshotDir receives ctrl+s captures; empty disables them
	ScreenshotDir string
	Logger        *log.Logger
}

// Model is the Bubble Tea model for the orbit render view.
type Model struct {
	sess     *session.Session
	host     *teaHost
	opts     Options
	config   core.RuntimeConfig
	keys     KeyMap
	help     help.Model
	bg       lipgloss.Color
	logger   *log.Logger
	showHelp bool
	message  string
	msgUntil time.Time
	quitting bool
	saved    bool // Whether the flight has been saved
}

// NewModel builds a session sized to the terminal minus the status bar.
func NewModel(opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	host := &teaHost{}
	w, h := opts.Runtime.SurfaceSize()

	sess, err := session.New(session.Options{
		Config:    opts.Config,
		Shader:    opts.Shader,
		Mode:      opts.Mode,
		Width:     w,
		Height:    h,
		Refresher: host,
		User:      opts.User,
		Logger:    logger,
	})
	if err != nil {
		return Model{}, err
	}

	cc := sess.Config().Render.ClearColor
	hp := help.New()
	hp.Width = opts.Runtime.ScreenW

	return Model{
		sess:   sess,
		host:   host,
		opts:   opts,
		config: opts.Runtime,
		keys:   DefaultKeyMap(),
		help:   hp,
		bg:     HexColor(cc[0], cc[1], cc[2]),
		logger: logger,
	}, nil
}

// Init arms the first frame.
func (m Model) Init() tea.Cmd {
	if err := m.sess.Start(); err != nil {
		m.logger.Error("cannot start render loop", "error", err)
		return tea.Quit
	}
	return m.host.take(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))
	}

	return m, nil
}

// handleKey processes keyboard input. Control changes land in the panel and
// are picked up by the next frame's snapshot.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	panel := m.sess.Panel

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.saveFlight()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ThrustUp):
		panel.AdjustThrust(1)
	case key.Matches(msg, m.keys.ThrustDown):
		panel.AdjustThrust(-1)
	case key.Matches(msg, m.keys.FinsUp):
		panel.AdjustFins(1)
	case key.Matches(msg, m.keys.FinsDown):
		panel.AdjustFins(-1)

	case key.Matches(msg, m.keys.TessUp), key.Matches(msg, m.keys.TessDown):
		delta := 1
		if key.Matches(msg, m.keys.TessDown) {
			delta = -1
		}
		if err := m.sess.AdjustTessellations(delta); err != nil {
			m.logger.Warn("cannot reload scene", "error", err)
		}

	case key.Matches(msg, m.keys.Camera):
		mode := m.sess.ToggleMode()
		m.flash(mode.String())

	case key.Matches(msg, m.keys.ZoomIn):
		m.zoom(1)
	case key.Matches(msg, m.keys.ZoomOut):
		m.zoom(-1)

	case key.Matches(msg, m.keys.Screenshot):
		// Captured by the frame's key hook, after the frame is drawn
		m.sess.QueueKey(session.KeyScreenshot)

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// handleMouse drives the orbit control while the camera is user controlled.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.sess.Panel.Snapshot().Mode != control.ModeUserControlled {
		return m, nil
	}
	ctl := m.sess.Control

	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.zoom(1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.zoom(-1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		ctl.BeginDrag(msg.X, msg.Y)
	case msg.Action == tea.MouseActionMotion && ctl.Dragging():
		if err := ctl.Drag(msg.X, msg.Y); err != nil {
			m.logger.Debug("drag rejected", "error", err)
		}
	case msg.Action == tea.MouseActionRelease:
		ctl.EndDrag()
	}
	return m, nil
}

func (m *Model) zoom(steps int) {
	if m.sess.Panel.Snapshot().Mode != control.ModeUserControlled {
		return
	}
	if err := m.sess.Control.Zoom(steps); err != nil {
		m.logger.Debug("zoom rejected", "error", err)
	}
}

// handleResize processes window resize events. Bubble Tea delivers them
// between ticks, so a frame never sees a partial resize.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width

	w, h := m.config.SurfaceSize()
	if err := m.sess.Resize(w, h); err != nil {
		m.logger.Warn("resize rejected", "error", err)
	}
	return m, nil
}

// handleTick runs one frame, then handles the keys it processed.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	for _, k := range m.sess.Frame() {
		if k == session.KeyScreenshot {
			m.screenshot()
		}
	}
	if !m.msgUntil.IsZero() && now.After(m.msgUntil) {
		m.message = ""
		m.msgUntil = time.Time{}
	}
	return m, m.host.take(m.config.TickRate)
}

func (m *Model) screenshot() {
	if m.opts.ScreenshotDir == "" {
		return
	}
	path, err := m.sess.Screenshot(m.opts.ScreenshotDir)
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		m.flash("screenshot failed")
		return
	}
	m.logger.Info("screenshot saved", "path", path)
	m.flash("saved " + filepath.Base(path))
}

func (m *Model) flash(text string) {
	m.message = text
	m.msgUntil = time.Now().Add(messageTTL)
}

// saveFlight records the session once, if it rendered anything.
func (m *Model) saveFlight() {
	if m.saved || m.opts.Store == nil || m.sess.Scheduler.Frames() == 0 {
		return
	}
	m.saved = true
	f := m.sess.Flight()
	if _, err := m.opts.Store.SaveFlight(f); err != nil {
		m.logger.Warn("cannot save flight", "error", err)
		return
	}
	m.logger.Info("flight saved", "session", f.SessionID, "frames", f.Frames)
}

// Session returns the render session behind the view.
func (m Model) Session() *session.Session {
	return m.sess
}

// View renders the framebuffer and the status bar.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	fb := m.sess.Renderer.Framebuffer()
	screen := RenderScreen(fb, fb.ClearCell(), m.bg)
	return screen + "\n" + m.statusLine()
}

func (m Model) statusLine() string {
	if m.showHelp {
		return m.help.View(m.keys)
	}
	cs := m.sess.Panel.Snapshot()
	snap := m.sess.Meter.Snapshot()
	return RenderStatus(StatusInfo{
		Mode:          cs.Mode.String(),
		Thrust:        cs.Thrust,
		Fins:          cs.Fins,
		Tessellations: cs.Tessellations,
		Time:          m.sess.Scheduler.Time(),
		Angle:         m.sess.RocketAngle(),
		FPS:           snap.FPS,
		FrameMS:       float64(snap.Last) / float64(time.Millisecond),
		Shader:        m.sess.Shader,
		Message:       m.message,
	}, m.config.ScreenW)
}

// Run starts the Bubble Tea program for a local terminal.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer
		tea.WithMouseCellMotion(), // Drag and wheel drive the user camera
	)

	final, err := p.Run()
	if m, ok := final.(Model); ok {
		// Interrupted programs skip the quit key path
		m.saveFlight()
	}
	return err
}
