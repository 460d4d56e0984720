package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/control"
)

func TestOrbitControlGrabKeepsPose(t *testing.T) {
	cam := newTestCamera(t)
	cam.Update(420, control.ModeFollow)
	eye, center := cam.Eye(), cam.Center()

	ctl := NewOrbitControl(cam)
	ctl.BeginDrag(10, 10)
	if err := ctl.Drag(10, 10); err != nil {
		t.Fatalf("Drag() failed: %v", err)
	}

	if !cam.Eye().ApproxEqualThreshold(eye, 1e-9) {
		t.Errorf("zero-length drag moved eye: %v -> %v", eye, cam.Eye())
	}
	if cam.Center() != center {
		t.Errorf("drag moved center: %v -> %v", center, cam.Center())
	}
}

func TestOrbitControlDragRotatesAroundCenter(t *testing.T) {
	cam := newTestCamera(t)
	if err := cam.LookAt(mgl64.Vec3{0, 0, 20}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}); err != nil {
		t.Fatal(err)
	}

	ctl := NewOrbitControl(cam, WithSensitivity(0.1))
	ctl.BeginDrag(0, 0)
	if err := ctl.Drag(5, 3); err != nil {
		t.Fatalf("Drag() failed: %v", err)
	}
	ctl.EndDrag()

	if d := cam.Eye().Len(); math.Abs(d-20) > 1e-9 {
		t.Errorf("eye distance = %v, expected 20", d)
	}
	if cam.Eye().ApproxEqual(mgl64.Vec3{0, 0, 20}) {
		t.Error("drag did not move the eye")
	}
	if cam.Center() != (mgl64.Vec3{}) {
		t.Errorf("center moved to %v", cam.Center())
	}
	if ctl.Dragging() {
		t.Error("Dragging() should be false after EndDrag")
	}
}

func TestOrbitControlElevationClamped(t *testing.T) {
	cam := newTestCamera(t)
	if err := cam.LookAt(mgl64.Vec3{0, 0, 20}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}); err != nil {
		t.Fatal(err)
	}

	ctl := NewOrbitControl(cam, WithSensitivity(1))
	ctl.BeginDrag(0, 0)
	// Far past the pole; must never produce eye == center or a degenerate up
	if err := ctl.Drag(0, 100); err != nil {
		t.Fatalf("Drag() past the pole failed: %v", err)
	}
	if cam.Eye().Sub(cam.Center()).Len() < 1 {
		t.Error("eye collapsed onto center")
	}
}

func TestOrbitControlZoomLimits(t *testing.T) {
	cam := newTestCamera(t)
	if err := cam.LookAt(mgl64.Vec3{0, 0, 20}, mgl64.Vec3{}, mgl64.Vec3{0, 1, 0}); err != nil {
		t.Fatal(err)
	}

	ctl := NewOrbitControl(cam, WithZoomLimits(5, 40))
	if err := ctl.Zoom(100); err != nil {
		t.Fatalf("Zoom(100) failed: %v", err)
	}
	if d := cam.Eye().Len(); math.Abs(d-5) > 1e-9 {
		t.Errorf("zoom in distance = %v, expected min 5", d)
	}

	if err := ctl.Zoom(-100); err != nil {
		t.Fatalf("Zoom(-100) failed: %v", err)
	}
	if d := cam.Eye().Len(); math.Abs(d-40) > 1e-9 {
		t.Errorf("zoom out distance = %v, expected max 40", d)
	}
}

func TestDragWithoutBeginIgnored(t *testing.T) {
	cam := newTestCamera(t)
	eye := cam.Eye()

	ctl := NewOrbitControl(cam)
	if err := ctl.Drag(50, 50); err != nil {
		t.Fatal(err)
	}
	if cam.Eye() != eye {
		t.Error("Drag without BeginDrag moved the camera")
	}
}
