package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-orbit/internal/core"
)

func TestHexColor(t *testing.T) {
	tests := []struct {
		r, g, b float64
		want    lipgloss.Color
	}{
		{164.0 / 255.0, 233.0 / 255.0, 1, "#a4e9ff"},
		{0, 0, 0, "#000000"},
		{2, -1, 1, "#ff00ff"}, // clamped
	}

	for _, tc := range tests {
		if got := HexColor(tc.r, tc.g, tc.b); got != tc.want {
			t.Errorf("HexColor(%v, %v, %v) = %q, expected %q", tc.r, tc.g, tc.b, got, tc.want)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	sky := core.Cell{Rune: ' ', Color: core.ColorDefault}
	s.SetClearCell(sky)
	s.Clear()
	s.SetCell(1, 0, core.Cell{Rune: '@', Color: core.ColorBrightWhite})
	s.SetCell(2, 0, core.Cell{Rune: '^', Color: core.ColorBrightRed})
	for i, r := range "orbit" {
		s.SetCell(i, 1, core.Cell{Rune: r, Color: core.ColorGreen})
	}

	out := RenderScreen(s, sky, "#a4e9ff")
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d width = %d, expected 6", i, w)
		}
	}
	if !strings.Contains(lines[0], "@") || !strings.Contains(lines[0], "^") {
		t.Errorf("line 0 lost glyphs: %q", lines[0])
	}
	if !strings.Contains(lines[1], "orbit") {
		t.Errorf("line 1 lost text: %q", lines[1])
	}
}

func TestRenderStatusFitsWidth(t *testing.T) {
	info := StatusInfo{
		Mode:          "Follow Rocket",
		Thrust:        1.5,
		Fins:          4,
		Tessellations: 5,
		Time:          123,
		Angle:         22.1,
		FPS:           60,
		FrameMS:       1.25,
		Shader:        "flat",
		Message:       "saved orbit_flat.txt",
	}

	for _, width := range []int{20, 80, 200} {
		line := RenderStatus(info, width)
		if got := lipgloss.Width(line); got > width {
			t.Errorf("RenderStatus(width=%d) is %d wide", width, got)
		}
	}

	wide := RenderStatus(info, 200)
	for _, want := range []string{"Follow Rocket", "thrust 1.50", "fins 4", "flat", "saved orbit_flat.txt"} {
		if !strings.Contains(wide, want) {
			t.Errorf("status bar missing %q: %q", want, wide)
		}
	}
	if got := lipgloss.Width(wide); got != 200 {
		t.Errorf("status bar should pad to 200, got %d", got)
	}
}

func TestKeyMapHelp(t *testing.T) {
	km := DefaultKeyMap()
	if len(km.ShortHelp()) == 0 {
		t.Error("ShortHelp() is empty")
	}
	total := 0
	for _, col := range km.FullHelp() {
		total += len(col)
	}
	if total < len(km.ShortHelp()) {
		t.Errorf("FullHelp() has %d bindings, fewer than ShortHelp()", total)
	}
}

func TestTeaHostTake(t *testing.T) {
	h := &teaHost{}
	if h.take(60) != nil {
		t.Error("take() without a request should return nil")
	}
	h.RequestFrame()
	h.RequestFrame()
	if h.take(60) == nil {
		t.Error("take() after RequestFrame should return a tick")
	}
	if h.take(60) != nil {
		t.Error("requests should coalesce into one tick")
	}
}
