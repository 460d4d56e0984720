// Package camera implements the render camera: an eye/center/up triple with
// derived view and projection matrices and two mutually exclusive update
// strategies (follow the rocket, or leave it to interactive control).
package camera

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/control"
	"github.com/vovakirdan/tui-orbit/internal/orbit"
)

// Errors returned by camera operations.
var (
	ErrInvalidAspect  = errors.New("camera: aspect ratio must be positive")
	ErrDegenerateView = errors.New("camera: degenerate view")
	ErrInvalidLens    = errors.New("camera: invalid lens")
)

// degenerateEps is the distance below which two points are considered equal.
const degenerateEps = 1e-9

// Lens holds the perspective projection parameters.
type Lens struct {
	FovY float64 // Vertical field of view in radians
	Near float64
	Far  float64
}

// DefaultLens returns a 45 degree lens suitable for the default orbit.
func DefaultLens() Lens {
	return Lens{
		FovY: mgl64.DegToRad(45),
		Near: 0.1,
		Far:  5000,
	}
}

// Validate checks the lens can produce a projection matrix.
func (l Lens) Validate() error {
	if l.FovY <= 0 || l.FovY >= math.Pi {
		return fmt.Errorf("%w: fov %v", ErrInvalidLens, l.FovY)
	}
	if l.Near <= 0 || l.Far <= l.Near {
		return fmt.Errorf("%w: near %v far %v", ErrInvalidLens, l.Near, l.Far)
	}
	return nil
}

// Camera owns the view and projection matrices.
// eye never equals center; view and proj always reflect the last applied
// eye/center/up and aspect ratio.
type Camera struct {
	eye    mgl64.Vec3
	center mgl64.Vec3
	up     mgl64.Vec3
	view   mgl64.Mat4
	proj   mgl64.Mat4
	aspect float64
	lens   Lens
	orbit  orbit.Params
}

// New creates a camera looking from eye at center. The aspect ratio starts
// at 1 with a matching projection; the viewport coordinator replaces it once
// the surface size is known.
func New(eye, center, up mgl64.Vec3, lens Lens, o orbit.Params) (*Camera, error) {
	if err := lens.Validate(); err != nil {
		return nil, err
	}
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("camera: %w", err)
	}

	c := &Camera{lens: lens, orbit: o, aspect: 1}
	if err := c.LookAt(eye, center, up); err != nil {
		return nil, err
	}
	if err := c.UpdateProjectionMatrix(); err != nil {
		return nil, err
	}
	return c, nil
}

// Update advances the camera for one frame.
// In follow mode eye and center are placed on the orbit for time t; in
// user-controlled mode they are left as the interactive control set them.
// The view matrix is re-derived in both cases.
func (c *Camera) Update(t float64, mode control.CameraMode) {
	switch mode {
	case control.ModeFollow:
		c.center = c.orbit.RocketPosition(t)
		c.eye = c.orbit.CameraPosition(t)
		c.up = c.orbit.PlaneNormal()
	case control.ModeUserControlled:
		// eye/center belong to the interactive control
	}
	c.view = mgl64.LookAtV(c.eye, c.center, c.up)
}

// LookAt sets eye, center and up and recomputes the view matrix.
// The up vector must not be parallel to the viewing direction.
func (c *Camera) LookAt(eye, center, up mgl64.Vec3) error {
	forward := center.Sub(eye)
	if forward.Len() < degenerateEps {
		return fmt.Errorf("%w: eye equals center %v", ErrDegenerateView, eye)
	}
	if up.Len() < degenerateEps || forward.Cross(up).Len() < degenerateEps*forward.Len()*up.Len() {
		return fmt.Errorf("%w: up %v parallel to view direction", ErrDegenerateView, up)
	}
	c.eye, c.center, c.up = eye, center, up.Normalize()
	c.view = mgl64.LookAtV(c.eye, c.center, c.up)
	return nil
}

// SetAspectRatio stores the viewport aspect ratio. It does not recompute the
// projection; call UpdateProjectionMatrix afterwards.
func (c *Camera) SetAspectRatio(ratio float64) error {
	if !(ratio > 0) || math.IsInf(ratio, 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidAspect, ratio)
	}
	c.aspect = ratio
	return nil
}

// UpdateProjectionMatrix recomputes the projection from the lens and the
// current aspect ratio.
func (c *Camera) UpdateProjectionMatrix() error {
	if !(c.aspect > 0) {
		return fmt.Errorf("%w: got %v", ErrInvalidAspect, c.aspect)
	}
	c.proj = mgl64.Perspective(c.lens.FovY, c.aspect, c.lens.Near, c.lens.Far)
	return nil
}

// Eye returns the camera position.
func (c *Camera) Eye() mgl64.Vec3 { return c.eye }

// Center returns the point the camera looks at.
func (c *Camera) Center() mgl64.Vec3 { return c.center }

// Up returns the normalized up vector.
func (c *Camera) Up() mgl64.Vec3 { return c.up }

// View returns the view matrix.
func (c *Camera) View() mgl64.Mat4 { return c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() mgl64.Mat4 { return c.proj }

// AspectRatio returns the stored aspect ratio.
func (c *Camera) AspectRatio() float64 { return c.aspect }

// Lens returns the projection parameters.
func (c *Camera) Lens() Lens { return c.lens }

// Orbit returns the orbit the follow strategy tracks.
func (c *Camera) Orbit() orbit.Params { return c.orbit }
