// Package trace intersects primary rays with the orbit scene: the planet and
// the rocket with its fins and exhaust plume. Shader packages build their
// fragment functions on top of it.
package trace

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/orbit"
	"github.com/vovakirdan/tui-orbit/internal/shader"
)

// Rocket dimensions in world units.
const (
	BodyHalfLength = 1.5
	BodyRadius     = 0.5
	PlumeRadius    = 0.3
	PlumeScale     = 1.5 // Plume length per unit of thrust
	FinWidth       = 0.2 // Fraction of each fin sector covered by the fin
)

// Kind is the surface a ray hit.
type Kind int

const (
	KindNone Kind = iota
	KindPlanet
	KindBody
	KindFin
	KindPlume
)

// Hit describes the nearest intersection along a ray.
type Hit struct {
	Kind   Kind
	T      float64 // Distance from the ray origin
	Point  mgl64.Vec3
	Normal mgl64.Vec3
	// Position along the rocket axis in [0, 1], nose at 1. Zero for the planet.
	Along float64
}

// World is the scene geometry for one frame.
type World struct {
	planet  float64
	nose    mgl64.Vec3
	tail    mgl64.Vec3
	plume   mgl64.Vec3
	radial  mgl64.Vec3
	lateral mgl64.Vec3
	fins    int
	thrust  float64
}

// NewWorld places the rocket for the time and controls in u.
func NewWorld(o orbit.Params, u shader.Uniforms) World {
	pos := o.RocketPosition(u.Time)
	heading := o.Heading(u.Time)
	radial := o.Radial(u.Time)
	tail := pos.Sub(heading.Mul(BodyHalfLength))
	return World{
		planet:  o.PlanetRadius,
		nose:    pos.Add(heading.Mul(BodyHalfLength)),
		tail:    tail,
		plume:   tail.Sub(heading.Mul(math.Max(u.Thrust, 0) * PlumeScale)),
		radial:  radial,
		lateral: heading.Cross(radial),
		fins:    u.Fins,
		thrust:  u.Thrust,
	}
}

// Trace returns the nearest hit of the ray origin + t*dir, t > 0.
// dir must be normalized.
func (w World) Trace(origin, dir mgl64.Vec3) Hit {
	best := Hit{T: math.Inf(1)}

	if t, ok := sphere(origin, dir, mgl64.Vec3{}, w.planet); ok && t < best.T {
		p := origin.Add(dir.Mul(t))
		best = Hit{Kind: KindPlanet, T: t, Point: p, Normal: p.Normalize()}
	}
	if t, ok := capsule(origin, dir, w.tail, w.nose, BodyRadius); ok && t < best.T {
		p := origin.Add(dir.Mul(t))
		n, along := capsuleNormal(p, w.tail, w.nose)
		kind := KindBody
		if along < 0.5 && w.onFin(n) {
			kind = KindFin
		}
		best = Hit{Kind: kind, T: t, Point: p, Normal: n, Along: along}
	}
	if w.thrust > 0 {
		if t, ok := capsule(origin, dir, w.plume, w.tail, PlumeRadius); ok && t < best.T {
			p := origin.Add(dir.Mul(t))
			n, along := capsuleNormal(p, w.plume, w.tail)
			best = Hit{Kind: KindPlume, T: t, Point: p, Normal: n, Along: along}
		}
	}
	return best
}

// onFin reports whether the body normal n falls inside one of the fin
// sectors spaced evenly around the rocket axis.
func (w World) onFin(n mgl64.Vec3) bool {
	if w.fins <= 0 {
		return false
	}
	a := math.Atan2(n.Dot(w.lateral), n.Dot(w.radial))
	sector := a / (2 * math.Pi) * float64(w.fins)
	frac := sector - math.Floor(sector)
	return frac < FinWidth
}

// sphere returns the first positive hit of a ray with a sphere.
func sphere(ro, rd, center mgl64.Vec3, r float64) (float64, bool) {
	oc := ro.Sub(center)
	b := oc.Dot(rd)
	c := oc.Dot(oc) - r*r
	h := b*b - c
	if h < 0 {
		return 0, false
	}
	h = math.Sqrt(h)
	t := -b - h
	if t <= 0 {
		t = -b + h
	}
	if t <= 0 {
		return 0, false
	}
	return t, true
}

// capsule returns the first positive hit with the capsule around segment
// a-b: the union of the open cylinder and the two end spheres.
func capsule(ro, rd, a, b mgl64.Vec3, r float64) (float64, bool) {
	best, found := math.Inf(1), false

	ba := b.Sub(a)
	oa := ro.Sub(a)
	baba := ba.Dot(ba)
	bard := ba.Dot(rd)
	baoa := ba.Dot(oa)
	qa := baba - bard*bard
	if qa > 1e-12 && baba > 0 {
		qb := baba*rd.Dot(oa) - baoa*bard
		qc := baba*oa.Dot(oa) - baoa*baoa - r*r*baba
		if h := qb*qb - qa*qc; h >= 0 {
			t := (-qb - math.Sqrt(h)) / qa
			y := baoa + t*bard
			if t > 0 && y > 0 && y < baba {
				best, found = t, true
			}
		}
	}
	for _, end := range [2]mgl64.Vec3{a, b} {
		if t, ok := sphere(ro, rd, end, r); ok && t < best {
			best, found = t, true
		}
	}
	return best, found
}

// capsuleNormal returns the outward normal at p and its position along a-b.
func capsuleNormal(p, a, b mgl64.Vec3) (mgl64.Vec3, float64) {
	ba := b.Sub(a)
	along := 0.0
	if l := ba.Dot(ba); l > 0 {
		along = math.Min(math.Max(p.Sub(a).Dot(ba)/l, 0), 1)
	}
	n := p.Sub(a.Add(ba.Mul(along)))
	if n.Len() == 0 {
		return ba.Normalize(), along
	}
	return n.Normalize(), along
}
