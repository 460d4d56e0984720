// Package orbit describes the circular orbit shared by the rocket, the
// follow camera and the shaders that draw the rocket.
package orbit

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Default orbit tuning. A full revolution takes 2/DefaultAngularRate units of
// simulation time, i.e. 2000 ticks at thrust 1.
const (
	DefaultPlanetRadius   = 1000.0
	DefaultRocketAltitude = 10.0
	DefaultCameraAltitude = 20.0
	DefaultAngularRate    = 0.001
	DefaultPhase          = 0.25
)

// ErrInvalid is returned by Validate for unusable orbit parameters.
var ErrInvalid = errors.New("orbit: invalid parameters")

// Params are the fixed orbit constants. The orbit lies in the x=0 plane.
type Params struct {
	PlanetRadius   float64 `yaml:"planet_radius"`
	RocketAltitude float64 `yaml:"rocket_altitude"`
	CameraAltitude float64 `yaml:"camera_altitude"`
	AngularRate    float64 `yaml:"angular_rate"` // k: angle = t*pi*k
	Phase          float64 `yaml:"phase"`        // Time the camera trails the rocket by
}

// Default returns the standard orbit.
func Default() Params {
	return Params{
		PlanetRadius:   DefaultPlanetRadius,
		RocketAltitude: DefaultRocketAltitude,
		CameraAltitude: DefaultCameraAltitude,
		AngularRate:    DefaultAngularRate,
		Phase:          DefaultPhase,
	}
}

// Validate checks the parameters describe a usable orbit.
// Rocket and camera altitudes must differ so the camera never sits on the
// point it looks at.
func (p Params) Validate() error {
	for _, v := range []float64{p.PlanetRadius, p.RocketAltitude, p.CameraAltitude, p.AngularRate, p.Phase} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value %v", ErrInvalid, v)
		}
	}
	if p.PlanetRadius <= 0 {
		return fmt.Errorf("%w: planet radius %v", ErrInvalid, p.PlanetRadius)
	}
	if p.AngularRate <= 0 {
		return fmt.Errorf("%w: angular rate %v", ErrInvalid, p.AngularRate)
	}
	if p.RocketAltitude == p.CameraAltitude {
		return fmt.Errorf("%w: rocket and camera altitude are both %v", ErrInvalid, p.RocketAltitude)
	}
	if p.PlanetRadius+p.RocketAltitude <= 0 || p.PlanetRadius+p.CameraAltitude <= 0 {
		return fmt.Errorf("%w: altitude below planet center", ErrInvalid)
	}
	return nil
}

// Angle returns the orbital angle in radians at simulation time t.
func (p Params) Angle(t float64) float64 {
	return t * math.Pi * p.AngularRate
}

// Period returns the simulation time of one full revolution.
func (p Params) Period() float64 {
	return 2 / p.AngularRate
}

// RocketRadius is the distance of the rocket from the planet center.
func (p Params) RocketRadius() float64 {
	return p.PlanetRadius + p.RocketAltitude
}

// CameraRadius is the distance of the follow camera from the planet center.
func (p Params) CameraRadius() float64 {
	return p.PlanetRadius + p.CameraAltitude
}

// RocketPosition returns the rocket position at time t.
func (p Params) RocketPosition(t float64) mgl64.Vec3 {
	return onCircle(p.RocketRadius(), p.Angle(t))
}

// CameraPosition returns the follow camera eye position at time t.
func (p Params) CameraPosition(t float64) mgl64.Vec3 {
	return onCircle(p.CameraRadius(), p.Angle(t-p.Phase))
}

// Heading returns the unit direction of travel of the rocket at time t.
func (p Params) Heading(t float64) mgl64.Vec3 {
	a := p.Angle(t)
	return mgl64.Vec3{0, -math.Sin(a), math.Cos(a)}
}

// Radial returns the outward unit normal of the orbit at time t.
func (p Params) Radial(t float64) mgl64.Vec3 {
	return onCircle(1, p.Angle(t))
}

// PlaneNormal returns the unit normal of the orbit plane. It is
// perpendicular to every direction between two points on the orbit.
func (p Params) PlaneNormal() mgl64.Vec3 {
	return mgl64.Vec3{1, 0, 0}
}

func onCircle(r, a float64) mgl64.Vec3 {
	return mgl64.Vec3{0, r * math.Cos(a), r * math.Sin(a)}
}
