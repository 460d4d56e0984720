package flat

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/orbit"
	"github.com/vovakirdan/tui-orbit/internal/registry"
	"github.com/vovakirdan/tui-orbit/internal/shader"
)

func TestRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("%q not registered", ID)
	}
	p, err := registry.Create(ID, orbit.Default())
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if p.ID() != ID {
		t.Errorf("ID() = %q, expected %q", p.ID(), ID)
	}
}

func TestFragment(t *testing.T) {
	frag := Fragment(orbit.Default())
	u := shader.Uniforms{Thrust: 1, Fins: 3}
	down := mgl64.Vec3{0, -1, 0}

	tests := []struct {
		name   string
		origin mgl64.Vec3
		dir    mgl64.Vec3
		rune   rune
		color  core.Color
	}{
		{"sky is discarded", mgl64.Vec3{0, 3000, 0}, mgl64.Vec3{0, 1, 0}, 0, core.ColorDefault},
		{"fin", mgl64.Vec3{0, 1020, -1}, down, '^', core.ColorBrightRed},
		{"plume", mgl64.Vec3{0, 1020, -2.5}, down, '~', core.ColorOrange},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := frag(shader.Fragment{Origin: tc.origin, Dir: tc.dir, U: u})
			if c.Rune != tc.rune || c.Color != tc.color {
				t.Errorf("fragment = %q/%v, expected %q/%v", c.Rune, c.Color, tc.rune, tc.color)
			}
		})
	}
}

func TestLambertRamp(t *testing.T) {
	lit := glyph(lambert(sun))
	dark := glyph(lambert(sun.Mul(-1)))
	if lit != '@' {
		t.Errorf("fully lit glyph = %q, expected '@'", lit)
	}
	if dark != ':' {
		t.Errorf("unlit glyph = %q, expected ':' (ambient only)", dark)
	}
}
