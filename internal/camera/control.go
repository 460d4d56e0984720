package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// OrbitControl drives the camera while it is user controlled. Dragging
// rotates the eye around the center on a sphere whose pole is the camera's
// current up vector; zooming changes the sphere radius.
//
// The spherical frame is re-derived from the camera at the start of every
// drag, so handing control over from follow mode causes no jump.
type OrbitControl struct {
	cam *Camera

	// Spherical coordinates of eye relative to center
	radius    float64
	azimuth   float64
	elevation float64

	// Frame captured at grab time
	pole mgl64.Vec3
	ref  mgl64.Vec3
	side mgl64.Vec3

	grabbed      bool
	dragging     bool
	lastX, lastY int

	sensitivity  float64 // Radians per cell of drag
	zoomStep     float64 // Fractional radius change per wheel step
	minRadius    float64
	maxRadius    float64
	maxElevation float64
}

// OrbitOption configures an OrbitControl.
type OrbitOption func(*OrbitControl)

// WithSensitivity sets the drag rotation in radians per terminal cell.
func WithSensitivity(rad float64) OrbitOption {
	return func(o *OrbitControl) { o.sensitivity = rad }
}

// WithZoomLimits bounds the eye-to-center distance.
func WithZoomLimits(min, max float64) OrbitOption {
	return func(o *OrbitControl) {
		o.minRadius = min
		o.maxRadius = max
	}
}

// NewOrbitControl attaches an interactive control to cam.
func NewOrbitControl(cam *Camera, opts ...OrbitOption) *OrbitControl {
	o := &OrbitControl{
		cam:          cam,
		sensitivity:  0.05,
		zoomStep:     0.1,
		minRadius:    1,
		maxRadius:    4000,
		maxElevation: math.Pi/2 - 0.05,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// BeginDrag starts a drag at terminal cell (x, y).
func (o *OrbitControl) BeginDrag(x, y int) {
	o.grab()
	o.dragging = true
	o.lastX, o.lastY = x, y
}

// Drag moves the eye according to the pointer movement since the last call.
// Calls without a preceding BeginDrag are ignored.
func (o *OrbitControl) Drag(x, y int) error {
	if !o.dragging {
		return nil
	}
	dx, dy := x-o.lastX, y-o.lastY
	o.lastX, o.lastY = x, y

	o.azimuth -= float64(dx) * o.sensitivity
	o.elevation += float64(dy) * o.sensitivity
	o.elevation = math.Max(-o.maxElevation, math.Min(o.maxElevation, o.elevation))
	return o.apply()
}

// EndDrag finishes the current drag.
func (o *OrbitControl) EndDrag() {
	o.dragging = false
	o.grabbed = false
}

// Dragging reports whether a drag is in progress.
func (o *OrbitControl) Dragging() bool {
	return o.dragging
}

// Zoom moves the eye towards (positive steps) or away from the center.
func (o *OrbitControl) Zoom(steps int) error {
	if !o.dragging {
		o.grab()
	}
	o.radius *= math.Pow(1-o.zoomStep, float64(steps))
	o.radius = math.Max(o.minRadius, math.Min(o.maxRadius, o.radius))
	err := o.apply()
	if !o.dragging {
		o.grabbed = false
	}
	return err
}

// grab captures the spherical frame from the camera's current eye/center.
func (o *OrbitControl) grab() {
	if o.grabbed {
		return
	}
	offset := o.cam.Eye().Sub(o.cam.Center())
	o.radius = offset.Len()
	o.pole = o.cam.Up()

	// Reference direction: offset projected onto the plane normal to the pole
	flat := offset.Sub(o.pole.Mul(offset.Dot(o.pole)))
	if flat.Len() < degenerateEps {
		flat = anyPerpendicular(o.pole)
	}
	o.ref = flat.Normalize()
	o.side = o.pole.Cross(o.ref)

	o.azimuth = 0
	o.elevation = math.Asin(math.Max(-1, math.Min(1, offset.Dot(o.pole)/o.radius)))
	o.elevation = math.Max(-o.maxElevation, math.Min(o.maxElevation, o.elevation))
	o.grabbed = true
}

// apply writes the spherical coordinates back into the camera.
func (o *OrbitControl) apply() error {
	cosE := math.Cos(o.elevation)
	dir := o.ref.Mul(cosE * math.Cos(o.azimuth)).
		Add(o.side.Mul(cosE * math.Sin(o.azimuth))).
		Add(o.pole.Mul(math.Sin(o.elevation)))
	center := o.cam.Center()
	return o.cam.LookAt(center.Add(dir.Mul(o.radius)), center, o.pole)
}

// anyPerpendicular returns a unit vector perpendicular to v.
func anyPerpendicular(v mgl64.Vec3) mgl64.Vec3 {
	axis := mgl64.Vec3{1, 0, 0}
	if math.Abs(v.X()) > 0.9 {
		axis = mgl64.Vec3{0, 1, 0}
	}
	return v.Cross(axis).Normalize()
}
