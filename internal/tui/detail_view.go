package tui

import (
	"github.com/brizzai/mcp-agent/internal/tui/models"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// headerHeight and footerHeight are the rows taken around the viewport
const (
	headerHeight = 2
	footerHeight = 2
)

// DetailView shows the full body of one bundle item in a scrollable viewport
type DetailView struct {
	item     models.BundleItem
	viewport viewport.Model
}

// NewDetailView creates a detail view sized to the terminal
func NewDetailView(item models.BundleItem, width, height int) DetailView {
	vp := viewport.New(width, max(height-headerHeight-footerHeight, 1))
	vp.SetContent(item.Body)
	return DetailView{item: item, viewport: vp}
}

// Init initializes the detail view
func (m DetailView) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view
func (m DetailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "backspace", "q":
			return m, func() tea.Msg { return BackToListMsg{} }
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-headerHeight-footerHeight, 1)
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view
func (m DetailView) View() string {
	header := detailHeaderStyle.Render(m.item.Title()) + "\n"
	footer := helpStyle.Render("(esc) Back to list | ↑/↓ Scroll")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View(), footer)
}
