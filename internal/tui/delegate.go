package tui

import (
	"github.com/brizzai/mcp-agent/internal/tui/models"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// newItemDelegate returns a list.DefaultDelegate that opens the selected item on enter.
func newItemDelegate(keys *delegateKeyMap) list.DefaultDelegate {
	d := list.NewDefaultDelegate()

	d.UpdateFunc = func(msg tea.Msg, m *list.Model) tea.Cmd {
		item, ok := m.SelectedItem().(models.BundleItem)
		if !ok {
			return nil
		}

		switch msg := msg.(type) {
		case tea.KeyMsg:
			if m.FilterState() == list.Filtering {
				return nil
			}
			switch {
			case key.Matches(msg, keys.open):
				return func() tea.Msg { return OpenItemMsg{Item: item} }
			case key.Matches(msg, keys.export):
				return func() tea.Msg { return OpenExportMsg{} }
			}
		}
		return nil
	}

	help := []key.Binding{keys.open, keys.export}

	d.ShortHelpFunc = func() []key.Binding {
		return help
	}

	d.FullHelpFunc = func() [][]key.Binding {
		return [][]key.Binding{help}
	}

	return d
}

// delegateKeyMap holds key bindings for list item actions.
type delegateKeyMap struct {
	open   key.Binding
	export key.Binding
}

// newDelegateKeyMap creates a new delegateKeyMap with default bindings.
func newDelegateKeyMap() *delegateKeyMap {
	return &delegateKeyMap{
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Open item"),
		),
		export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "Export bundle"),
		),
	}
}

// OpenItemMsg is sent when the user opens a list item
type OpenItemMsg struct {
	Item models.BundleItem
}

// OpenExportMsg is sent when the user asks for the export page
type OpenExportMsg struct{}
