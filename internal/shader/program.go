package shader

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

// ErrEmptySource is returned by Compile when a stage has no source text.
var ErrEmptySource = errors.New("shader: empty source")

// Source is a vertex/fragment source pair a program is built from.
type Source struct {
	Vertex   string
	Fragment string
}

// Fragment is the per-cell input to a fragment function.
type Fragment struct {
	// Pixel coordinate of the cell, origin bottom-left like gl_FragCoord
	Coord mgl64.Vec2
	// Eye position and normalized world-space direction of the primary ray
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
	// Uniform values bound at the draw call
	U Uniforms
}

// NDC returns the fragment position in normalized device coordinates,
// derived from the viewport uniforms.
func (f Fragment) NDC() mgl64.Vec2 {
	w, h := float64(f.U.Width), float64(f.U.Height)
	if w <= 0 || h <= 0 {
		return mgl64.Vec2{}
	}
	return mgl64.Vec2{2*f.Coord.X()/w - 1, 2*f.Coord.Y()/h - 1}
}

// FragmentFunc shades one cell.
type FragmentFunc func(f Fragment) core.Cell

// Program is a compiled shader program with its own uniform store.
type Program struct {
	id       string
	source   Source
	frag     FragmentFunc
	uniforms Uniforms
}

// Compile builds a program from a source pair and the fragment function that
// implements it.
func Compile(id string, src Source, frag FragmentFunc) (*Program, error) {
	if strings.TrimSpace(src.Vertex) == "" {
		return nil, fmt.Errorf("%w: %s vertex stage", ErrEmptySource, id)
	}
	if strings.TrimSpace(src.Fragment) == "" {
		return nil, fmt.Errorf("%w: %s fragment stage", ErrEmptySource, id)
	}
	if frag == nil {
		return nil, fmt.Errorf("shader: %s has no fragment function", id)
	}
	return &Program{id: id, source: src, frag: frag}, nil
}

// ID returns the program identifier.
func (p *Program) ID() string {
	return p.id
}

// Source returns the source pair the program was compiled from.
func (p *Program) Source() Source {
	return p.source
}

// Push merges params into the uniform store.
func (p *Program) Push(params ...Param) {
	p.uniforms = p.uniforms.merge(params)
}

// SetThrust sets the thrust uniform.
func (p *Program) SetThrust(v float64) {
	p.Push(Thrust(v))
}

// SetFins sets the fin count uniform.
func (p *Program) SetFins(n int) {
	p.Push(Fins(n))
}

// SetDimensions sets the viewport size uniforms.
func (p *Program) SetDimensions(w, h int) {
	p.Push(Dimensions(w, h)...)
}

// Uniforms returns the currently bound values.
func (p *Program) Uniforms() Uniforms {
	return p.uniforms
}

// Shade runs the fragment function.
func (p *Program) Shade(f Fragment) core.Cell {
	return p.frag(f)
}

var _ Sink = (*Program)(nil)
