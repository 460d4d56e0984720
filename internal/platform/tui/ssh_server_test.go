package tui

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/config"
)

func TestDefaultSSHServerConfig(t *testing.T) {
	cfg := DefaultSSHServerConfig()
	if cfg.Address != ":23235" {
		t.Errorf("Address = %q", cfg.Address)
	}
	if cfg.TickRate != 30 {
		t.Errorf("TickRate = %d, expected 30", cfg.TickRate)
	}
	if err := cfg.Config.Validate(); err != nil {
		t.Errorf("default render config invalid: %v", err)
	}
}

func TestSessionOptionsPerUser(t *testing.T) {
	srv := &SSHServer{
		config: SSHServerConfig{
			Config:   config.DefaultConfig(),
			Shader:   "flat",
			Mode:     "user",
			TickRate: 20,
		},
		logger: log.New(io.Discard),
	}

	opts := srv.sessionOptions("ada", 100, 31)
	if opts.User != "ada" || opts.Shader != "flat" || opts.Mode != "user" {
		t.Errorf("options = %+v", opts)
	}
	if opts.Runtime.ScreenW != 100 || opts.Runtime.ScreenH != 31 || opts.Runtime.TickRate != 20 {
		t.Errorf("runtime = %+v", opts.Runtime)
	}
	if opts.ScreenshotDir != "" {
		t.Error("remote sessions should not write screenshots")
	}
	if opts.Store != nil {
		t.Error("a server without a database should not pass a store")
	}

	// Two connections never share a session
	a, err := NewModel(opts)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	b, err := NewModel(srv.sessionOptions("bob", 60, 21))
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	if a.Session() == b.Session() || a.Session().Panel == b.Session().Panel {
		t.Error("sessions share state")
	}
	if got := a.Session().Panel.Snapshot().Mode.String(); got != "User Controlled" {
		t.Errorf("mode = %q", got)
	}
}
