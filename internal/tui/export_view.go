package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/brizzai/mcp-agent/internal/export"
	"github.com/brizzai/mcp-agent/internal/models"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ExportView handles prompting for a filename and exporting the bundle
type ExportView struct {
	bundle       *models.Bundle
	textInput    textinput.Model
	err          error
	width        int
	height       int
	exportStatus string
	// ExportedPath is the file written by the last successful export
	ExportedPath string
	Success      bool
}

// NewExportView creates a new export view
func NewExportView(bundle *models.Bundle) ExportView {
	ti := textinput.New()
	ti.Placeholder = "bundle.yaml"
	ti.Focus()
	ti.Width = 40

	return ExportView{
		bundle:    bundle,
		textInput: ti,
	}
}

// Init initializes the export view
func (m ExportView) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the export view
func (m ExportView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return BackToListMsg{} }
		case "enter":
			if strings.TrimSpace(m.textInput.Value()) == "" {
				m.exportStatus = "Please enter a filename"
				return m, nil
			}

			path, err := export.ExportBundleToYamlFile(m.bundle, strings.TrimSpace(m.textInput.Value()))
			if err != nil {
				m.err = err
				m.exportStatus = fmt.Sprintf("Error exporting: %v", err)
				return m, nil
			}

			m.Success = true
			m.ExportedPath = path
			m.exportStatus = completeMessageStyle(fmt.Sprintf("Successfully exported to %s", path))
			// Return to the list after a second
			return m, tea.Tick(time.Second, func(time.Time) tea.Msg {
				return BackToListMsg{}
			})
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// View renders the export view
func (m ExportView) View() string {
	var sb strings.Builder

	verticalPadding := (m.height - 6) / 2
	for i := 0; i < verticalPadding; i++ {
		sb.WriteString("\n")
	}

	title := titleStyle.Render("Export Bundle")
	sb.WriteString(centerText(title, m.width))
	sb.WriteString("\n\n")

	sb.WriteString(centerText("Enter filename to export the bundle:", m.width))
	sb.WriteString("\n")

	sb.WriteString(centerText(m.textInput.View(), m.width))
	sb.WriteString("\n\n")

	if m.exportStatus != "" {
		sb.WriteString(centerText(m.exportStatus, m.width))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(centerText("(esc) Back to list | (enter) Export", m.width))

	return sb.String()
}

// BackToListMsg signals to go back to the item list
type BackToListMsg struct{}

// Helper function to center text horizontally
func centerText(text string, width int) string {
	if width <= len(text) {
		return text
	}

	padding := (width - len(text)) / 2
	return strings.Repeat(" ", padding) + text
}
