// Package config provides YAML-based configuration loading for the orbit
// renderer: initial camera pose and lens, orbit geometry, control panel
// defaults and render settings.
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/camera"
	"github.com/vovakirdan/tui-orbit/internal/control"
	"github.com/vovakirdan/tui-orbit/internal/orbit"
)

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid")

// Config contains all configuration for a render session.
type Config struct {
	Camera   CameraConfig   `yaml:"camera"`
	Orbit    orbit.Params   `yaml:"orbit"`
	Controls ControlsConfig `yaml:"controls"`
	Render   RenderConfig   `yaml:"render"`
}

// CameraConfig defines the initial camera pose and lens.
type CameraConfig struct {
	Eye    [3]float64 `yaml:"eye"`
	Center [3]float64 `yaml:"center"`
	Up     [3]float64 `yaml:"up"`
	FovDeg float64    `yaml:"fov_deg"`
	Near   float64    `yaml:"near"`
	Far    float64    `yaml:"far"`
}

// ControlsConfig defines the initial control panel values and input steps.
type ControlsConfig struct {
	Tessellations   int     `yaml:"tessellations"`
	Thrust          float64 `yaml:"thrust"`
	Fins            int     `yaml:"fins"`
	Mode            string  `yaml:"mode"`             // "follow" or "user"
	ThrustStep      float64 `yaml:"thrust_step"`      // Thrust change per key press
	DragSensitivity float64 `yaml:"drag_sensitivity"` // Radians per dragged cell
	ZoomMin         float64 `yaml:"zoom_min"`
	ZoomMax         float64 `yaml:"zoom_max"`
}

// RenderConfig defines framebuffer and refresh settings.
type RenderConfig struct {
	ClearColor [4]float64 `yaml:"clear_color"` // RGBA in [0,1]
	TickRate   int        `yaml:"tick_rate"`   // Refresh notifications per second
	Shader     string     `yaml:"shader"`      // Registered shader program ID
}

// EyeVec returns the initial eye position.
func (c CameraConfig) EyeVec() mgl64.Vec3 { return mgl64.Vec3(c.Eye) }

// CenterVec returns the initial look-at target.
func (c CameraConfig) CenterVec() mgl64.Vec3 { return mgl64.Vec3(c.Center) }

// UpVec returns the initial up vector.
func (c CameraConfig) UpVec() mgl64.Vec3 { return mgl64.Vec3(c.Up) }

// Lens converts the configured field of view to a camera lens.
func (c CameraConfig) Lens() camera.Lens {
	return camera.Lens{
		FovY: mgl64.DegToRad(c.FovDeg),
		Near: c.Near,
		Far:  c.Far,
	}
}

// InitialState returns the configured starting control state.
func (c ControlsConfig) InitialState() (control.State, error) {
	mode, err := control.ParseMode(c.Mode)
	if err != nil {
		return control.State{}, err
	}
	s := control.State{
		Tessellations: c.Tessellations,
		Thrust:        c.Thrust,
		Fins:          c.Fins,
		Mode:          mode,
	}
	if err := s.Validate(); err != nil {
		return control.State{}, err
	}
	return s, nil
}

// Validate checks every section and reports the first problem found.
func (c Config) Validate() error {
	if err := c.Orbit.Validate(); err != nil {
		return fmt.Errorf("%w: orbit: %v", ErrInvalid, err)
	}
	if err := c.Camera.Lens().Validate(); err != nil {
		return fmt.Errorf("%w: camera: %v", ErrInvalid, err)
	}
	if c.Camera.EyeVec().ApproxEqual(c.Camera.CenterVec()) {
		return fmt.Errorf("%w: camera eye equals center", ErrInvalid)
	}
	if c.Camera.UpVec().Len() == 0 {
		return fmt.Errorf("%w: camera up is zero", ErrInvalid)
	}
	if _, err := c.Controls.InitialState(); err != nil {
		return fmt.Errorf("%w: controls: %v", ErrInvalid, err)
	}
	if !(c.Controls.ThrustStep > 0) || math.IsInf(c.Controls.ThrustStep, 0) {
		return fmt.Errorf("%w: controls: thrust_step must be positive", ErrInvalid)
	}
	if c.Controls.ZoomMin <= 0 || c.Controls.ZoomMax < c.Controls.ZoomMin {
		return fmt.Errorf("%w: controls: zoom range [%v, %v]", ErrInvalid, c.Controls.ZoomMin, c.Controls.ZoomMax)
	}
	for i, v := range c.Render.ClearColor {
		if v < 0 || v > 1 || math.IsNaN(v) {
			return fmt.Errorf("%w: render: clear_color[%d] = %v not in [0, 1]", ErrInvalid, i, v)
		}
	}
	if c.Render.TickRate <= 0 {
		return fmt.Errorf("%w: render: tick_rate must be positive", ErrInvalid)
	}
	return nil
}
