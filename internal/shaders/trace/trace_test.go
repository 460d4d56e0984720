package trace

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/orbit"
	"github.com/vovakirdan/tui-orbit/internal/shader"
)

func TestTraceKinds(t *testing.T) {
	// With the default orbit at t=0 the rocket sits at (0, 1010, 0) pointing +z
	down := mgl64.Vec3{0, -1, 0}
	tests := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		thrust float64
		fins   int
		want   Kind
	}{
		{"nose from above", mgl64.Vec3{0, 1020, 1}, down, 1, 3, KindBody},
		{"rear on a fin", mgl64.Vec3{0, 1020, -1}, down, 1, 3, KindFin},
		{"rear between fins", mgl64.Vec3{10, 1010, -1}, mgl64.Vec3{-1, 0, 0}, 1, 3, KindBody},
		{"rear on a fourth fin", mgl64.Vec3{10, 1010, -1}, mgl64.Vec3{-1, 0, 0}, 1, 4, KindFin},
		{"plume behind tail", mgl64.Vec3{0, 1020, -2.5}, down, 1, 3, KindPlume},
		{"no plume without thrust", mgl64.Vec3{0, 1020, -2.5}, down, 0, 3, KindPlanet},
		{"planet", mgl64.Vec3{0, 0, 3000}, mgl64.Vec3{0, 0, -1}, 1, 3, KindPlanet},
		{"empty sky", mgl64.Vec3{0, 3000, 0}, mgl64.Vec3{0, 1, 0}, 1, 3, KindNone},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(orbit.Default(), shader.Uniforms{Thrust: tc.thrust, Fins: tc.fins})
			hit := w.Trace(tc.origin, tc.dir)
			if hit.Kind != tc.want {
				t.Errorf("Trace() kind = %v, expected %v (hit %+v)", hit.Kind, tc.want, hit)
			}
		})
	}
}

func TestTraceDistances(t *testing.T) {
	w := NewWorld(orbit.Default(), shader.Uniforms{Thrust: 1, Fins: 3})

	hit := w.Trace(mgl64.Vec3{0, 0, 3000}, mgl64.Vec3{0, 0, -1})
	if math.Abs(hit.T-2000) > 1e-9 {
		t.Errorf("planet hit at %v, expected 2000", hit.T)
	}
	if !hit.Normal.ApproxEqual(mgl64.Vec3{0, 0, 1}) {
		t.Errorf("planet normal = %v, expected +z", hit.Normal)
	}

	hit = w.Trace(mgl64.Vec3{0, 1020, 1}, mgl64.Vec3{0, -1, 0})
	if math.Abs(hit.T-(10-BodyRadius)) > 1e-9 {
		t.Errorf("body hit at %v, expected %v", hit.T, 10-BodyRadius)
	}
	if hit.Along < 0.5 || hit.Along > 1 {
		t.Errorf("nose hit Along = %v, expected in the front half", hit.Along)
	}
}

func TestFollowCameraSeesRocket(t *testing.T) {
	o := orbit.Default()
	for _, tm := range []float64{0, 250, 999, 1500} {
		w := NewWorld(o, shader.Uniforms{Time: tm, Thrust: 1, Fins: 3})
		eye := o.CameraPosition(tm)
		dir := o.RocketPosition(tm).Sub(eye).Normalize()
		if hit := w.Trace(eye, dir); hit.Kind != KindBody && hit.Kind != KindFin {
			t.Errorf("t=%v: follow camera ray hit %v, expected the rocket", tm, hit.Kind)
		}
	}
}

func TestCapsuleParallelRay(t *testing.T) {
	// A ray along the capsule axis only meets the end cap
	a, b := mgl64.Vec3{0, 0, 0}, mgl64.Vec3{0, 0, 4}
	tm, ok := capsule(mgl64.Vec3{0, 0, -10}, mgl64.Vec3{0, 0, 1}, a, b, 1)
	if !ok || math.Abs(tm-9) > 1e-9 {
		t.Errorf("capsule() = %v, %v; expected 9, true", tm, ok)
	}
}
