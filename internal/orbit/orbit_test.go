package orbit

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-6

func TestRocketPositionPeriodic(t *testing.T) {
	p := Default()
	period := p.Period()
	if period != 2000 {
		t.Fatalf("Period() = %v, expected 2000", period)
	}

	for _, ts := range []float64{0, 1, 137.5, 999, 1500, 4321} {
		a := p.RocketPosition(ts)
		b := p.RocketPosition(ts + period)
		if d := a.Sub(b).Len(); d > 1e-6 {
			t.Errorf("RocketPosition(%v) = %v, RocketPosition(+period) = %v", ts, a, b)
		}
	}
}

func TestHalfOrbit(t *testing.T) {
	p := Default()
	if a := p.Angle(1000); math.Abs(a-math.Pi) > eps {
		t.Errorf("Angle(1000) = %v, expected pi", a)
	}

	pos := p.RocketPosition(1000)
	r := p.RocketRadius()
	if math.Abs(pos.Y()+r) > 1e-6 || math.Abs(pos.Z()) > 1e-6 {
		t.Errorf("RocketPosition(1000) = %v, expected (0, -%v, 0)", pos, r)
	}
}

func TestCameraTrailsRocket(t *testing.T) {
	p := Default()
	ts := 400.0

	cam := p.CameraPosition(ts)
	rocket := p.RocketPosition(ts)

	if math.Abs(cam.Len()-p.CameraRadius()) > eps {
		t.Errorf("camera radius = %v, expected %v", cam.Len(), p.CameraRadius())
	}
	if cam.ApproxEqual(rocket) {
		t.Fatal("camera and rocket coincide")
	}

	// The rocket lies ahead of the camera along the direction of travel
	ahead := rocket.Sub(cam).Dot(p.Heading(ts))
	if ahead <= 0 {
		t.Errorf("rocket should be ahead of the camera, dot = %v", ahead)
	}
}

func TestHeadingIsTangent(t *testing.T) {
	p := Default()
	for _, ts := range []float64{0, 250, 500, 1234} {
		h := p.Heading(ts)
		if math.Abs(h.Len()-1) > eps {
			t.Errorf("Heading(%v) not unit: %v", ts, h.Len())
		}
		if d := h.Dot(p.Radial(ts)); math.Abs(d) > eps {
			t.Errorf("Heading(%v) not perpendicular to radial: %v", ts, d)
		}
	}
}

func TestPlaneNormalPerpendicular(t *testing.T) {
	p := Default()
	n := p.PlaneNormal()
	for _, ts := range []float64{0, 250, 1000, 1999} {
		if d := n.Dot(p.RocketPosition(ts).Sub(p.CameraPosition(ts))); math.Abs(d) > eps {
			t.Errorf("t=%v: normal not perpendicular to camera-rocket line: %v", ts, d)
		}
		if d := n.Dot(p.Heading(ts)); math.Abs(d) > eps {
			t.Errorf("t=%v: normal not perpendicular to heading: %v", ts, d)
		}
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() should validate: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Params)
	}{
		{"zero radius", func(p *Params) { p.PlanetRadius = 0 }},
		{"zero rate", func(p *Params) { p.AngularRate = 0 }},
		{"equal altitudes", func(p *Params) { p.CameraAltitude = p.RocketAltitude }},
		{"below center", func(p *Params) { p.RocketAltitude = -2000 }},
		{"NaN rate", func(p *Params) { p.AngularRate = math.NaN() }},
		{"infinite phase", func(p *Params) { p.Phase = math.Inf(1) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Default()
			tc.mutate(&p)
			if err := p.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Validate() = %v, expected ErrInvalid", err)
			}
		})
	}
}
