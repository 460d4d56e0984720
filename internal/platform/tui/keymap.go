package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the key bindings of the render view.
type KeyMap struct {
	ThrustUp   key.Binding
	ThrustDown key.Binding
	FinsUp     key.Binding
	FinsDown   key.Binding
	TessUp     key.Binding
	TessDown   key.Binding
	Camera     key.Binding
	ZoomIn     key.Binding
	ZoomOut    key.Binding
	Screenshot key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ThrustUp, k.FinsUp, k.Camera, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.ThrustUp, k.ThrustDown, k.FinsUp, k.FinsDown},
		{k.TessUp, k.TessDown, k.Camera, k.ZoomIn, k.ZoomOut},
		{k.Screenshot, k.Help, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		ThrustUp: key.NewBinding(
			key.WithKeys("up", "k", "+"),
			key.WithHelp("up/k", "thrust +"),
		),
		ThrustDown: key.NewBinding(
			key.WithKeys("down", "j", "-"),
			key.WithHelp("down/j", "thrust -"),
		),
		FinsUp: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "fins +"),
		),
		FinsDown: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "fins -"),
		),
		TessUp: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "tessellate +"),
		),
		TessDown: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "tessellate -"),
		),
		Camera: key.NewBinding(
			key.WithKeys("c", "tab"),
			key.WithHelp("c", "camera mode"),
		),
		ZoomIn: key.NewBinding(
			key.WithKeys("pgup", "z"),
			key.WithHelp("z/wheel", "zoom in"),
		),
		ZoomOut: key.NewBinding(
			key.WithKeys("pgdown", "x"),
			key.WithHelp("x/wheel", "zoom out"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
