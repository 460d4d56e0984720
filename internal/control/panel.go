package control

// Provider produces the live control state read at the start of each frame.
type Provider interface {
	Snapshot() State
}

// Panel is the input-side owner of the control state. Key handlers mutate
// it between frames; the render loop only ever calls Snapshot.
type Panel struct {
	state      State
	thrustStep float64
}

// NewPanel creates a panel holding the given initial state.
// thrustStep is the amount AdjustThrust moves per step.
func NewPanel(initial State, thrustStep float64) *Panel {
	if thrustStep <= 0 {
		thrustStep = 0.25
	}
	return &Panel{state: initial.Normalize(), thrustStep: thrustStep}
}

// Snapshot returns a copy of the current state.
func (p *Panel) Snapshot() State {
	return p.state
}

// AdjustThrust moves thrust by steps increments, clamped to range.
func (p *Panel) AdjustThrust(steps int) {
	p.state.Thrust += float64(steps) * p.thrustStep
	p.state = p.state.Normalize()
}

// AdjustFins changes the fin count by delta, clamped to range.
func (p *Panel) AdjustFins(delta int) {
	p.state.Fins += delta
	p.state = p.state.Normalize()
}

// AdjustTessellations changes the tessellation level by delta, clamped to range.
// Returns true if the level actually changed.
func (p *Panel) AdjustTessellations(delta int) bool {
	before := p.state.Tessellations
	p.state.Tessellations += delta
	p.state = p.state.Normalize()
	return p.state.Tessellations != before
}

// ToggleMode switches between follow and user-controlled camera.
func (p *Panel) ToggleMode() CameraMode {
	switch p.state.Mode {
	case ModeFollow:
		p.state.Mode = ModeUserControlled
	case ModeUserControlled:
		p.state.Mode = ModeFollow
	}
	return p.state.Mode
}

// SetMode selects the camera mode.
func (p *Panel) SetMode(m CameraMode) {
	p.state.Mode = m
	p.state = p.state.Normalize()
}

var _ Provider = (*Panel)(nil)
