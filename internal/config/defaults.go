package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-orbit/internal/orbit"
)

//go:embed defaults/orbit.yaml
var defaultOrbitYAML []byte

// DefaultConfig returns the hardcoded configuration used when no YAML source
// can be read.
func DefaultConfig() Config {
	return Config{
		Camera: CameraConfig{
			Eye:    [3]float64{10, 1010, 0},
			Center: [3]float64{0, 1010, 0},
			Up:     [3]float64{0, 1, 0},
			FovDeg: 45,
			Near:   0.1,
			Far:    5000,
		},
		Orbit: orbit.Default(),
		Controls: ControlsConfig{
			Tessellations:   5,
			Thrust:          1.0,
			Fins:            3,
			Mode:            "follow",
			ThrustStep:      0.25,
			DragSensitivity: 0.05,
			ZoomMin:         1,
			ZoomMax:         4000,
		},
		Render: RenderConfig{
			ClearColor: [4]float64{164.0 / 255.0, 233.0 / 255.0, 1.0, 1.0},
			TickRate:   60,
			Shader:     "flat",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultOrbitYAML
}
