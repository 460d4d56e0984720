// Package shader defines the uniform parameter contract between the render
// loop and the active shader program, and the software program type the
// renderer executes per cell.
package shader

// Uniform names a shader-visible parameter.
type Uniform int

const (
	UniformThrust Uniform = iota
	UniformFins
	UniformViewportWidth
	UniformViewportHeight
	UniformTime
)

// String returns the uniform name as the shaders refer to it.
func (u Uniform) String() string {
	switch u {
	case UniformThrust:
		return "u_Thrust"
	case UniformFins:
		return "u_Fins"
	case UniformViewportWidth:
		return "u_Width"
	case UniformViewportHeight:
		return "u_Height"
	case UniformTime:
		return "u_Time"
	default:
		return "u_Unknown"
	}
}

// Param is one named value in a push.
type Param struct {
	Uniform Uniform
	Value   float64
}

// Thrust returns a thrust parameter.
func Thrust(v float64) Param { return Param{Uniform: UniformThrust, Value: v} }

// Fins returns a fin count parameter.
func Fins(n int) Param { return Param{Uniform: UniformFins, Value: float64(n)} }

// Time returns an elapsed time parameter.
func Time(t float64) Param { return Param{Uniform: UniformTime, Value: t} }

// Dimensions returns the viewport width and height parameters.
func Dimensions(w, h int) []Param {
	return []Param{
		{Uniform: UniformViewportWidth, Value: float64(w)},
		{Uniform: UniformViewportHeight, Value: float64(h)},
	}
}

// Sink accepts parameter pushes. A push is a merge: only the given uniforms
// change, and the new values are visible to the next draw call.
type Sink interface {
	Push(params ...Param)
}

// Uniforms is a snapshot of every uniform value.
type Uniforms struct {
	Thrust float64
	Fins   int
	Width  int
	Height int
	Time   float64
}

// merge applies params on top of u.
func (u Uniforms) merge(params []Param) Uniforms {
	for _, p := range params {
		switch p.Uniform {
		case UniformThrust:
			u.Thrust = p.Value
		case UniformFins:
			u.Fins = int(p.Value)
		case UniformViewportWidth:
			u.Width = int(p.Value)
		case UniformViewportHeight:
			u.Height = int(p.Value)
		case UniformTime:
			u.Time = p.Value
		}
	}
	return u
}
