// Package scene builds the renderable set the frame loop draws.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/tui-orbit/internal/control"
	"github.com/vovakirdan/tui-orbit/internal/render"
)

// Square is a full-screen quad split into Tessellations x Tessellations tiles.
type Square struct {
	center mgl64.Vec2
	quads  []render.Quad
}

// NewSquare creates a full-screen quad centered at center (NDC offset).
// Call Create before drawing it.
func NewSquare(center mgl64.Vec2) *Square {
	return &Square{center: center}
}

// Create builds the tiles.
func (s *Square) Create(tessellations int) error {
	if tessellations < control.MinTessellations {
		return fmt.Errorf("scene: tessellation level %d below %d", tessellations, control.MinTessellations)
	}
	step := 2 / float64(tessellations)
	quads := make([]render.Quad, 0, tessellations*tessellations)
	for j := 0; j < tessellations; j++ {
		for i := 0; i < tessellations; i++ {
			lo := mgl64.Vec2{-1 + float64(i)*step, -1 + float64(j)*step}.Add(s.center)
			hi := mgl64.Vec2{-1 + float64(i+1)*step, -1 + float64(j+1)*step}.Add(s.center)
			quads = append(quads, render.Quad{Min: lo, Max: hi})
		}
	}
	s.quads = quads
	return nil
}

// Quads returns the tiles built by Create.
func (s *Square) Quads() []render.Quad {
	return s.quads
}

// Manager owns the current renderable set. Load replaces it wholesale, so a
// slice returned by Renderables is never mutated afterwards.
type Manager struct {
	renderables []render.Drawable
	level       int
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{}
}

// Load builds a fresh scene at the given tessellation level.
func (m *Manager) Load(tessellations int) error {
	square := NewSquare(mgl64.Vec2{0, 0})
	if err := square.Create(tessellations); err != nil {
		return err
	}
	m.renderables = []render.Drawable{square}
	m.level = tessellations
	return nil
}

// Renderables returns the current renderable set.
func (m *Manager) Renderables() []render.Drawable {
	return m.renderables
}

// Level returns the tessellation level of the loaded scene, 0 if none.
func (m *Manager) Level() int {
	return m.level
}
