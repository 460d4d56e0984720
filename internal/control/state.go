// Package control holds the user-tunable parameters the render loop reads
// once per frame.
package control

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

// Parameter ranges.
const (
	MinTessellations = 1
	MaxTessellations = 64
	MinThrust        = 1.0
	MaxThrust        = 5.0
	MinFins          = 2
	MaxFins          = 8
)

// ErrOutOfRange is returned by Validate when a field is outside its range.
var ErrOutOfRange = errors.New("control: value out of range")

// CameraMode selects the camera update strategy.
type CameraMode int

const (
	ModeFollow         CameraMode = iota // Camera trails the rocket
	ModeUserControlled                   // Camera is dragged by the user
)

// String returns a human-readable name for the mode.
func (m CameraMode) String() string {
	switch m {
	case ModeFollow:
		return "Follow Rocket"
	case ModeUserControlled:
		return "User Controlled"
	default:
		return "Unknown"
	}
}

// ParseMode converts a mode name to a CameraMode. Matching is case-insensitive.
func ParseMode(s string) (CameraMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "follow", "follow rocket", "follow-rocket":
		return ModeFollow, nil
	case "user", "user controlled", "user-controlled", "free":
		return ModeUserControlled, nil
	}
	return ModeFollow, fmt.Errorf("control: unknown camera mode %q", s)
}

// State is the snapshot of control parameters for one frame.
// It is passed by value; the render loop never writes to it.
type State struct {
	Tessellations int
	Thrust        float64
	Fins          int
	Mode          CameraMode
}

// DefaultState returns the initial control values.
func DefaultState() State {
	return State{
		Tessellations: 5,
		Thrust:        1.0,
		Fins:          3,
		Mode:          ModeFollow,
	}
}

// Validate checks that every field is inside its range.
func (s State) Validate() error {
	if s.Tessellations < MinTessellations || s.Tessellations > MaxTessellations {
		return fmt.Errorf("%w: tessellations %d not in [%d, %d]", ErrOutOfRange, s.Tessellations, MinTessellations, MaxTessellations)
	}
	if math.IsNaN(s.Thrust) || s.Thrust < MinThrust || s.Thrust > MaxThrust {
		return fmt.Errorf("%w: thrust %.2f not in [%.1f, %.1f]", ErrOutOfRange, s.Thrust, MinThrust, MaxThrust)
	}
	if s.Fins < MinFins || s.Fins > MaxFins {
		return fmt.Errorf("%w: fins %d not in [%d, %d]", ErrOutOfRange, s.Fins, MinFins, MaxFins)
	}
	switch s.Mode {
	case ModeFollow, ModeUserControlled:
	default:
		return fmt.Errorf("%w: camera mode %d", ErrOutOfRange, s.Mode)
	}
	return nil
}

// Normalize returns a copy with every numeric field clamped into range.
// A NaN thrust becomes MinThrust and an unknown mode falls back to ModeFollow.
func (s State) Normalize() State {
	s.Tessellations = core.Clamp(s.Tessellations, MinTessellations, MaxTessellations)
	if math.IsNaN(s.Thrust) {
		s.Thrust = MinThrust
	}
	s.Thrust = core.ClampF(s.Thrust, MinThrust, MaxThrust)
	s.Fins = core.Clamp(s.Fins, MinFins, MaxFins)
	switch s.Mode {
	case ModeFollow, ModeUserControlled:
	default:
		s.Mode = ModeFollow
	}
	return s
}
