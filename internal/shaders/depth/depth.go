// Package depth implements a diagnostic shader program that shades every hit
// by its distance from the eye.
package depth

import (
	"math"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/orbit"
	"github.com/vovakirdan/tui-orbit/internal/registry"
	"github.com/vovakirdan/tui-orbit/internal/shader"
	"github.com/vovakirdan/tui-orbit/internal/shaders/trace"
)

// ID is the registry identifier of this program.
const ID = "depth"

// MaxDistance is the distance mapped to the faintest glyph.
const MaxDistance = 5000.0

func init() {
	registry.Register(ID, "Depth Ramp", New)
}

var source = shader.Source{
	Vertex:   "depth-vert: full-screen quad, pass-through position",
	Fragment: "depth-frag: trace scene, log distance ramp",
}

// ramp runs from nearest to farthest.
const ramp = "@%#*+=-:."

// New compiles a depth program for the orbit o.
func New(o orbit.Params) (*shader.Program, error) {
	return shader.Compile(ID, source, Fragment(o))
}

// Fragment returns the depth fragment function.
func Fragment(o orbit.Params) shader.FragmentFunc {
	return func(f shader.Fragment) core.Cell {
		hit := trace.NewWorld(o, f.U).Trace(f.Origin, f.Dir)
		if hit.Kind == trace.KindNone {
			return core.Cell{}
		}
		d := Normalized(hit.T)
		i := core.Clamp(int(d*float64(len(ramp))), 0, len(ramp)-1)
		return core.Cell{Rune: rune(ramp[i]), Color: tone(d)}
	}
}

// Normalized maps a hit distance to [0, 1] on a log scale.
func Normalized(t float64) float64 {
	if t <= 1 {
		return 0
	}
	return math.Min(math.Log(t)/math.Log(MaxDistance), 1)
}

func tone(d float64) core.Color {
	switch {
	case d < 0.33:
		return core.ColorBrightWhite
	case d < 0.66:
		return core.ColorWhite
	default:
		return core.ColorGray
	}
}
