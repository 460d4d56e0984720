// Package flat implements the default shader program: a lambert-lit planet
// with the rocket, its fins and a thrust-length exhaust plume.
package flat

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/orbit"
	"github.com/vovakirdan/tui-orbit/internal/registry"
	"github.com/vovakirdan/tui-orbit/internal/shader"
	"github.com/vovakirdan/tui-orbit/internal/shaders/trace"
)

// ID is the registry identifier of this program.
const ID = "flat"

func init() {
	registry.Register(ID, "Flat Lambert", New)
}

// Source is the stage pair the program is compiled from.
var Source = shader.Source{
	Vertex:   "flat-vert: full-screen quad, pass-through position",
	Fragment: "flat-frag: trace planet and rocket, lambert bands",
}

// ramp maps brightness to glyph density, darkest first.
const ramp = ".:-=+*#%@"

// sun is the fixed light direction.
var sun = mgl64.Vec3{1, 0.6, 0.3}.Normalize()

// New compiles a flat program for the orbit o.
func New(o orbit.Params) (*shader.Program, error) {
	return shader.Compile(ID, Source, Fragment(o))
}

// Fragment returns the flat fragment function. Sky fragments are discarded
// so the clear color shows through.
func Fragment(o orbit.Params) shader.FragmentFunc {
	return func(f shader.Fragment) core.Cell {
		hit := trace.NewWorld(o, f.U).Trace(f.Origin, f.Dir)
		switch hit.Kind {
		case trace.KindPlanet:
			return core.Cell{Rune: glyph(lambert(hit.Normal)), Color: surface(hit.Normal)}
		case trace.KindBody:
			return core.Cell{Rune: glyph(lambert(hit.Normal)), Color: core.ColorBrightWhite}
		case trace.KindFin:
			return core.Cell{Rune: '^', Color: core.ColorBrightRed}
		case trace.KindPlume:
			// Hotter near the nozzle
			if hit.Along > 0.6 {
				return core.Cell{Rune: '*', Color: core.ColorBrightYellow}
			}
			return core.Cell{Rune: '~', Color: core.ColorOrange}
		case trace.KindNone:
		}
		return core.Cell{}
	}
}

// lambert returns diffuse brightness in [0, 1] with an ambient floor.
func lambert(n mgl64.Vec3) float64 {
	return 0.15 + 0.85*math.Max(n.Dot(sun), 0)
}

func glyph(b float64) rune {
	i := int(b * float64(len(ramp)))
	return rune(ramp[core.Clamp(i, 0, len(ramp)-1)])
}

// surface picks ocean, land or ice from the planet normal.
func surface(n mgl64.Vec3) core.Color {
	if math.Abs(n.X()) > 0.9 {
		return core.ColorBrightWhite
	}
	if math.Sin(n.X()*7)*math.Sin(n.Y()*5+1)*math.Sin(n.Z()*6) > 0.05 {
		return core.ColorGreen
	}
	return core.ColorBlue
}
