// Package render rasterizes drawables into a terminal framebuffer by running
// a shader program's fragment function for every covered cell.
package render

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/core"
	"github.com/vovakirdan/tui-orbit/internal/shader"
)

// ErrNoContext is returned when there is no surface to render into.
var ErrNoContext = errors.New("render: no rendering context")

// Quad is an axis-aligned rectangle in normalized device coordinates.
type Quad struct {
	Min, Max mgl64.Vec2
}

// Drawable is anything the renderer can rasterize.
type Drawable interface {
	Quads() []Quad
}

// View supplies the matrices and eye position for a draw.
type View interface {
	View() mgl64.Mat4
	Projection() mgl64.Mat4
	Eye() mgl64.Vec3
}

// Program is the shader program a draw runs.
type Program interface {
	shader.Sink
	Uniforms() shader.Uniforms
	Shade(f shader.Fragment) core.Cell
}

// Renderer owns the framebuffer and the current viewport.
type Renderer struct {
	fb         *core.Screen
	viewport   core.Rect
	clearColor [4]float64
	drawCalls  int
}

// New creates a renderer with a w x h framebuffer.
func New(width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: surface %dx%d", ErrNoContext, width, height)
	}
	return &Renderer{
		fb:       core.NewScreen(width, height),
		viewport: core.NewRect(0, 0, width, height),
	}, nil
}

// SetClearColor sets the color Clear fills with. Alpha is kept but terminals
// have no blending, so only RGB picks the palette entry.
func (r *Renderer) SetClearColor(red, green, blue, alpha float64) {
	r.clearColor = [4]float64{red, green, blue, alpha}
	r.fb.SetClearCell(core.Cell{Rune: ' ', Color: core.NearestColor(red, green, blue)})
}

// ClearColor returns the clear color.
func (r *Renderer) ClearColor() [4]float64 {
	return r.clearColor
}

// Clear fills the framebuffer with the clear color.
func (r *Renderer) Clear() {
	r.fb.Clear()
}

// SetSize resizes the framebuffer. The viewport is clipped to the new size.
func (r *Renderer) SetSize(width, height int) {
	r.fb.Resize(width, height)
	r.viewport = r.viewport.Intersect(r.fb.Bounds())
}

// Viewport sets the drawing area to (0, 0, w, h), clipped to the framebuffer.
// Calling it again with the same size changes nothing.
func (r *Renderer) Viewport(width, height int) {
	r.viewport = core.NewRect(0, 0, width, height).Intersect(r.fb.Bounds())
}

// ViewportRect returns the current drawing area.
func (r *Renderer) ViewportRect() core.Rect {
	return r.viewport
}

// Framebuffer returns the screen the renderer draws into.
func (r *Renderer) Framebuffer() *core.Screen {
	return r.fb
}

// DrawCalls returns the number of Render calls issued so far.
func (r *Renderer) DrawCalls() int {
	return r.drawCalls
}

// Render draws every drawable with prog. The elapsed time is pushed to the
// program first so the fragments see this frame's value.
func (r *Renderer) Render(cam View, prog Program, drawables []Drawable, t float64) {
	r.drawCalls++
	prog.Push(shader.Time(t))

	vp := r.viewport
	if vp.Empty() {
		return
	}

	u := prog.Uniforms()
	inv := cam.Projection().Mul4(cam.View()).Inv()
	eye := cam.Eye()

	for _, d := range drawables {
		for _, q := range d.Quads() {
			area := r.quadRect(q).Intersect(vp)
			if area.Empty() {
				continue
			}
			for y := area.Y; y < area.Bottom(); y++ {
				for x := area.X; x < area.Right(); x++ {
					// Cell center, origin at the bottom-left of the viewport
					fx := float64(x-vp.X) + 0.5
					fy := float64(vp.Bottom()-1-y) + 0.5
					ndc := mgl64.Vec2{2*fx/float64(vp.W) - 1, 2*fy/float64(vp.H) - 1}

					cell := prog.Shade(shader.Fragment{
						Coord:  mgl64.Vec2{fx, fy},
						Origin: eye,
						Dir:    unproject(inv, ndc),
						U:      u,
					})
					// A zero rune discards the fragment
					if cell.Rune == 0 {
						continue
					}
					r.fb.SetCell(x, y, cell)
				}
			}
		}
	}
}

// quadRect maps an NDC quad to the cells it covers in the viewport.
// Edges are rounded so neighbouring quads share a boundary without gaps.
func (r *Renderer) quadRect(q Quad) core.Rect {
	vp := r.viewport
	x0 := vp.X + int(math.Round((q.Min.X()+1)/2*float64(vp.W)))
	x1 := vp.X + int(math.Round((q.Max.X()+1)/2*float64(vp.W)))
	// NDC y points up, rows point down
	y0 := vp.Y + int(math.Round((1-q.Max.Y())/2*float64(vp.H)))
	y1 := vp.Y + int(math.Round((1-q.Min.Y())/2*float64(vp.H)))
	return core.NewRect(x0, y0, x1-x0, y1-y0)
}

// unproject returns the normalized world-space direction through ndc.
func unproject(inv mgl64.Mat4, ndc mgl64.Vec2) mgl64.Vec3 {
	near := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), -1, 1})
	far := inv.Mul4x1(mgl64.Vec4{ndc.X(), ndc.Y(), 1, 1})
	n := near.Vec3().Mul(1 / near.W())
	f := far.Vec3().Mul(1 / far.W())
	return f.Sub(n).Normalize()
}
