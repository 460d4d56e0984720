package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-orbit/internal/control"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	def := DefaultConfig()
	if cfg.Camera != def.Camera {
		t.Errorf("camera = %+v, expected %+v", cfg.Camera, def.Camera)
	}
	if cfg.Orbit != def.Orbit {
		t.Errorf("orbit = %+v, expected %+v", cfg.Orbit, def.Orbit)
	}
	if cfg.Controls != def.Controls {
		t.Errorf("controls = %+v, expected %+v", cfg.Controls, def.Controls)
	}
	if cfg.Render.TickRate != def.Render.TickRate || cfg.Render.Shader != def.Render.Shader {
		t.Errorf("render = %+v, expected %+v", cfg.Render, def.Render)
	}
}

func TestInitialState(t *testing.T) {
	s, err := DefaultConfig().Controls.InitialState()
	if err != nil {
		t.Fatal(err)
	}
	if s != control.DefaultState() {
		t.Errorf("InitialState() = %+v, expected %+v", s, control.DefaultState())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero angular rate", func(c *Config) { c.Orbit.AngularRate = 0 }},
		{"eye equals center", func(c *Config) { c.Camera.Eye = c.Camera.Center }},
		{"zero up", func(c *Config) { c.Camera.Up = [3]float64{} }},
		{"far before near", func(c *Config) { c.Camera.Far = 0.01 }},
		{"fov too wide", func(c *Config) { c.Camera.FovDeg = 180 }},
		{"thrust out of range", func(c *Config) { c.Controls.Thrust = 9 }},
		{"thrust NaN", func(c *Config) { c.Controls.Thrust = math.NaN() }},
		{"thrust step NaN", func(c *Config) { c.Controls.ThrustStep = math.NaN() }},
		{"angular rate NaN", func(c *Config) { c.Orbit.AngularRate = math.NaN() }},
		{"too few fins", func(c *Config) { c.Controls.Fins = 1 }},
		{"unknown mode", func(c *Config) { c.Controls.Mode = "orbit" }},
		{"zero thrust step", func(c *Config) { c.Controls.ThrustStep = 0 }},
		{"inverted zoom", func(c *Config) { c.Controls.ZoomMax = 0.5 }},
		{"clear color above one", func(c *Config) { c.Render.ClearColor[1] = 2 }},
		{"zero tick rate", func(c *Config) { c.Render.TickRate = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("controls:\n  thrust: 2.5\n  mode: user\nrender:\n  shader: depth\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, src, err := Load(path)
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if src != path {
		t.Errorf("source = %q, expected %q", src, path)
	}
	if cfg.Controls.Thrust != 2.5 || cfg.Controls.Mode != "user" || cfg.Render.Shader != "depth" {
		t.Errorf("overrides not applied: %+v %+v", cfg.Controls, cfg.Render)
	}
	// Unset keys keep their defaults
	if cfg.Controls.Fins != 3 || cfg.Orbit.PlanetRadius != 1000 {
		t.Errorf("defaults lost: fins=%d radius=%v", cfg.Controls.Fins, cfg.Orbit.PlanetRadius)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()
	if _, _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("Load() of a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("controls:\n  fins: 20\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := Load(bad); !errors.Is(err, ErrInvalid) {
		t.Errorf("Load() of an invalid file = %v, expected ErrInvalid", err)
	}
}

func TestLoadSearchOrder(t *testing.T) {
	home := t.TempDir()
	work := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(work)

	cfg, src, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if src != "embedded" {
		t.Errorf("source = %q, expected embedded", src)
	}
	if cfg.Render.Shader != "flat" {
		t.Errorf("shader = %q, expected flat", cfg.Render.Shader)
	}

	// A local file beats the embedded default
	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(work, "configs", FileName), []byte("controls:\n  fins: 4\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, _, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Controls.Fins != 4 {
		t.Errorf("fins = %d, expected 4 from ./configs", cfg.Controls.Fins)
	}

	// The user file beats the local one
	userDir := filepath.Join(home, ".orbit", "configs")
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(userDir, FileName), []byte("controls:\n  fins: 6\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, src, err = Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Controls.Fins != 6 || src != filepath.Join(userDir, FileName) {
		t.Errorf("fins = %d from %q, expected 6 from the user directory", cfg.Controls.Fins, src)
	}
}
