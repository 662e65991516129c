// Package tui provides an interactive browser for an aggregated bundle.
package tui

import (
	"github.com/brizzai/mcp-agent/internal/models"
	itemmodels "github.com/brizzai/mcp-agent/internal/tui/models"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// Pages of the application
const (
	pageList   = "list"
	pageDetail = "detail"
	pageExport = "export"
)

// AppModel is the main application model that manages page switching
type AppModel struct {
	bundle     *models.Bundle
	list       list.Model
	detail     DetailView
	exportView ExportView
	page       string
	width      int
	height     int
}

// NewAppModel creates a new AppModel listing the items of bundle
func NewAppModel(bundle *models.Bundle) AppModel {
	bundleItems := itemmodels.ItemsFromBundle(bundle)
	items := make([]list.Item, 0, len(bundleItems))
	for _, item := range bundleItems {
		items = append(items, item)
	}

	l := list.New(items, newItemDelegate(newDelegateKeyMap()), 0, 0)
	l.Title = "MCP Agent Bundle"
	l.Styles.Title = titleStyle

	return AppModel{
		bundle:     bundle,
		list:       l,
		exportView: NewExportView(bundle),
		page:       pageList,
	}
}

// Init initializes the AppModel
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update handles app-level messages and delegates to the active page
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case OpenItemMsg:
		m.page = pageDetail
		m.detail = NewDetailView(msg.Item, m.width, m.height)
		return m, nil

	case OpenExportMsg:
		m.page = pageExport
		m.exportView = NewExportView(m.bundle)
		m.exportView.width, m.exportView.height = m.width, m.height
		return m, m.exportView.Init()

	case BackToListMsg:
		m.page = pageList
		return m, nil

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		var cmd tea.Cmd
		var tempModel tea.Model
		tempModel, _ = m.detail.Update(msg)
		m.detail = tempModel.(DetailView)
		tempModel, cmd = m.exportView.Update(msg)
		m.exportView = tempModel.(ExportView)
		return m, cmd
	}

	var cmd tea.Cmd
	var tempModel tea.Model
	switch m.page {
	case pageDetail:
		tempModel, cmd = m.detail.Update(msg)
		m.detail = tempModel.(DetailView)
	case pageExport:
		tempModel, cmd = m.exportView.Update(msg)
		m.exportView = tempModel.(ExportView)
	default:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// View renders the active page
func (m AppModel) View() string {
	switch m.page {
	case pageDetail:
		return m.detail.View()
	case pageExport:
		return m.exportView.View()
	default:
		return docStyle.Render(m.list.View())
	}
}

// Page returns the name of the active page
func (m AppModel) Page() string {
	return m.page
}

// Exported reports whether the bundle was exported during the session
func (m AppModel) Exported() bool {
	return m.exportView.Success
}

// ExportedPath returns the file written by the last successful export
func (m AppModel) ExportedPath() string {
	if !m.exportView.Success {
		return ""
	}
	return m.exportView.ExportedPath
}
