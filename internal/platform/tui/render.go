package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:       lipgloss.NewStyle(),
	core.ColorRed:           lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:         lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:        lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:          lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:       lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:          lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:         lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorBrightGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorBrightYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorBrightMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorBrightCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorBrightWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:        lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:          lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// HexColor formats an RGB triple in [0,1] as a lipgloss hex color.
func HexColor(r, g, b float64) lipgloss.Color {
	to8 := func(v float64) int { return core.Clamp(int(v*255+0.5), 0, 255) }
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", to8(r), to8(g), to8(b)))
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
// Cells equal to sky get the background color bg, so the clear color
// shows as a solid sky; an empty bg leaves them unstyled.
func RenderScreen(s *core.Screen, sky core.Cell, bg lipgloss.Color) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			cell := s.GetCell(x, y)
			startColor := cell.Color
			startSky := bg != "" && cell == sky

			// Collect consecutive cells with the same style
			var run strings.Builder
			for x < s.Width() {
				cell = s.GetCell(x, y)
				if cell.Color != startColor || (bg != "" && cell == sky) != startSky {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			if startSky {
				style = style.Background(bg)
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// StatusInfo is what the status bar shows.
type StatusInfo struct {
	Mode          string
	Thrust        float64
	Fins          int
	Tessellations int
	Time          float64
	Angle         float64 // Degrees
	FPS           float64
	FrameMS       float64
	Shader        string
	Message       string
}

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))
	statusKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)
	statusMsgStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("57")).
			Italic(true)
)

// RenderStatus renders the one-row status bar, clipped to width.
func RenderStatus(info StatusInfo, width int) string {
	left := statusKeyStyle.Render(info.Mode)
	body := fmt.Sprintf(" thrust %.2f  fins %d  tess %d  t %.0f  %5.1f°  %4.0f fps %5.2fms  %s ",
		info.Thrust, info.Fins, info.Tessellations, info.Time, info.Angle, info.FPS, info.FrameMS, info.Shader)

	line := left + statusStyle.Render(body)
	if info.Message != "" {
		line += statusMsgStyle.Render(" " + info.Message + " ")
	}

	// Pad to the full width so the bar background spans the row
	if pad := width - lipgloss.Width(line); pad > 0 {
		line += statusStyle.Render(strings.Repeat(" ", pad))
	}
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}
