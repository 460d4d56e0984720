package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-orbit/internal/registry"
	"github.com/vovakirdan/tui-orbit/internal/storage"
)

// Flight log layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the shader sidebar
	sidebarWidth       = 20  // Width of the shader sidebar
	maxFlights         = 200 // Max flights to load
)

// allShaders is the sidebar entry that disables filtering.
const allShaders = "all"

// FlightSource is the read side of the flight log.
type FlightSource interface {
	RecentFlights(limit int) ([]storage.Flight, error)
	AllShaderStats() (map[string]*storage.ShaderStats, error)
}

// FlightsKeyMap defines the key bindings for the flight log.
type FlightsKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	NextShader key.Binding
	PrevShader key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k FlightsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextShader, k.PrevShader, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k FlightsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextShader, k.PrevShader},
		{k.Quit},
	}
}

// DefaultFlightsKeyMap returns default key bindings.
func DefaultFlightsKeyMap() FlightsKeyMap {
	return FlightsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		NextShader: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next shader"),
		),
		PrevShader: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev shader"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// FlightsModel is the Bubble Tea model for the flight log table.
type FlightsModel struct {
	shaders     []string // Sidebar entries, allShaders first
	cursor      int
	all         []storage.Flight
	flights     []storage.Flight // all, filtered by the selected shader
	stats       map[string]*storage.ShaderStats
	loadErr     error
	table       table.Model
	help        help.Model
	keys        FlightsKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewFlightsModel loads the flight log from src.
func NewFlightsModel(src FlightSource, width, height int) FlightsModel {
	shaders := []string{allShaders}
	for _, p := range registry.List() {
		shaders = append(shaders, p.ID)
	}

	h := help.New()
	h.ShowAll = false

	m := FlightsModel{
		shaders:     shaders,
		keys:        DefaultFlightsKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if src != nil {
		m.all, m.loadErr = src.RecentFlights(maxFlights)
		if m.loadErr == nil {
			m.stats, m.loadErr = src.AllShaderStats()
		}
	}

	m.table = m.createTable()
	m.filter()
	return m
}

// createTable creates a new table sized to the window.
func (m *FlightsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "User", Width: 10},
		{Title: "Shader", Width: 8},
		{Title: "Frames", Width: 8},
		{Title: "Sim t", Width: 9},
		{Title: "ms/frame", Width: 9},
		{Title: "Date", Width: 13},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}
	// Narrow terminals drop the user column first
	if tableWidth < 72 {
		columns[1].Width = 0
	}

	height := m.height - 8 // Leave room for header, help, and margins
	if height < 3 {
		height = 3
	}
	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// filter selects the flights of the current shader and refreshes the rows.
func (m *FlightsModel) filter() {
	selected := m.shaders[m.cursor]
	m.flights = m.flights[:0]
	for _, f := range m.all {
		if selected == allShaders || f.Shader == selected {
			m.flights = append(m.flights, f)
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with the current flights.
func (m *FlightsModel) updateTableRows() {
	rows := make([]table.Row, len(m.flights))
	for i, f := range m.flights {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			f.User,
			f.Shader,
			fmt.Sprintf("%d", f.Frames),
			fmt.Sprintf("%.0f", f.SimTime),
			fmt.Sprintf("%.2f", f.AvgFrameMS),
			f.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the flight log model.
func (m FlightsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the flight log.
func (m FlightsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextShader):
			m.cursor = (m.cursor + 1) % len(m.shaders)
			m.filter()
			return m, nil

		case key.Matches(msg, m.keys.PrevShader):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(m.shaders) - 1
			}
			m.filter()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the flight log.
func (m FlightsModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("FLIGHT LOG - %s", m.shaders[m.cursor])
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	content := tableStyle.Render(m.renderTableContent())

	if m.showSidebar {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", content))
	} else {
		b.WriteString(centerText(fmt.Sprintf("< %s >", m.shaders[m.cursor]), m.width))
		b.WriteString("\n\n")
		b.WriteString(content)
	}

	b.WriteString("\n")
	if summary := m.summary(); summary != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render(summary))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderSidebar renders the shader list.
func (m FlightsModel) renderSidebar() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Shaders\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, id := range m.shaders {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + id))
		sidebar.WriteString("\n")
	}

	return sidebarStyle.Render(sidebar.String())
}

// renderTableContent renders the table or an empty message.
func (m FlightsModel) renderTableContent() string {
	emptyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		Italic(true).
		Padding(2, 4)

	if m.loadErr != nil {
		return emptyStyle.Render(fmt.Sprintf("Cannot read the flight log:\n%v", m.loadErr))
	}
	if len(m.flights) == 0 {
		return emptyStyle.Render("No flights recorded yet.\nRun 'orbit run' and press q to log one!")
	}
	return m.table.View()
}

// summary describes the aggregate stats of the selected shader.
func (m FlightsModel) summary() string {
	selected := m.shaders[m.cursor]
	if selected == allShaders {
		return fmt.Sprintf("%d flights", len(m.all))
	}
	st, ok := m.stats[selected]
	if !ok {
		return ""
	}
	return fmt.Sprintf("%d flights, %d frames, furthest t %.0f, avg %.2f ms/frame",
		st.Flights, st.TotalFrames, st.MaxSimTime, st.AvgFrameMS)
}

// centerText centers text horizontally within the given width.
func centerText(text string, width int) string {
	textWidth := lipgloss.Width(text)
	if textWidth >= width {
		return text
	}
	padding := (width - textWidth) / 2
	return strings.Repeat(" ", padding) + text
}

// RunFlights runs the flight log table.
func RunFlights(src FlightSource, width, height int) error {
	p := tea.NewProgram(
		NewFlightsModel(src, width, height),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}
