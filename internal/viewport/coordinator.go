// Package viewport keeps the camera aspect ratio, the renderer surface size
// and the shader's reported dimensions in agreement.
package viewport

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-orbit/internal/shader"
)

// ErrInvalidSize is returned for a resize to a non-positive dimension.
var ErrInvalidSize = errors.New("viewport: invalid size")

// Renderer is resized to the new surface.
type Renderer interface {
	SetSize(width, height int)
}

// Camera receives the new aspect ratio.
type Camera interface {
	SetAspectRatio(ratio float64) error
	UpdateProjectionMatrix() error
}

// Coordinator applies resize events. It also reports the current surface
// size to the frame scheduler.
type Coordinator struct {
	renderer Renderer
	camera   Camera
	sink     shader.Sink
	logger   *log.Logger

	width, height int
	resizes       int
}

// New creates a coordinator. A nil logger discards output.
func New(r Renderer, cam Camera, sink shader.Sink, logger *log.Logger) *Coordinator {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Coordinator{renderer: r, camera: cam, sink: sink, logger: logger}
}

// Resize applies a surface size change: renderer size, camera aspect ratio,
// projection matrix, then shader dimensions. Invalid sizes change nothing.
func (c *Coordinator) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}

	c.renderer.SetSize(width, height)
	if err := c.camera.SetAspectRatio(float64(width) / float64(height)); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	if err := c.camera.UpdateProjectionMatrix(); err != nil {
		return fmt.Errorf("viewport: %w", err)
	}
	c.sink.Push(shader.Dimensions(width, height)...)

	c.width, c.height = width, height
	c.resizes++
	c.logger.Debug("viewport resized", "width", width, "height", height)
	return nil
}

// Size returns the last applied surface size.
func (c *Coordinator) Size() (int, int) {
	return c.width, c.height
}

// Ready reports whether a first resize has been applied.
func (c *Coordinator) Ready() bool {
	return c.resizes > 0
}
