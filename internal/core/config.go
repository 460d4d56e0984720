package core

// RuntimeConfig contains the terminal parameters a render session starts with.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Display refresh notifications per second (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// SurfaceSize returns the drawable area once the status bar row is reserved.
// Both dimensions are at least 1.
func (c RuntimeConfig) SurfaceSize() (int, int) {
	return Max(c.ScreenW, 1), Max(c.ScreenH-StatusBarRows, 1)
}

// StatusBarRows is the number of terminal rows reserved below the framebuffer.
const StatusBarRows = 1
