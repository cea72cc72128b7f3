package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// CommonKeys defines the shared keybindings used across SpeedyTavern
// screens.
type CommonKeys struct {
	Quit       key.Binding
	Help       key.Binding
	Search     key.Binding
	Back       key.Binding
	NavUp      key.Binding
	NavDown    key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	Top        key.Binding
	Bottom     key.Binding
	Select     key.Binding
	PrevBranch key.Binding
	NextBranch key.Binding
}

// NewCommonKeys returns the canonical SpeedyTavern keybindings.
func NewCommonKeys() CommonKeys {
	return CommonKeys{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "help"),
		),
		Search: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "search"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		NavUp: key.NewBinding(
			key.WithKeys("alt+up"),
			key.WithHelp("alt+↑", "select older"),
		),
		NavDown: key.NewBinding(
			key.WithKeys("alt+down"),
			key.WithHelp("alt+↓", "select newer"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "bottom"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		PrevBranch: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "previous alternative"),
		),
		NextBranch: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "next alternative"),
		),
	}
}

// ToggleHelpMsg is sent when the user presses the help key.
type ToggleHelpMsg struct{}

// HandleCommon processes a key message against the common bindings.
// Returns tea.Quit for quit, a ToggleHelpMsg command for help, or nil
// when the key is not a common one.
func HandleCommon(msg tea.KeyMsg, keys CommonKeys) tea.Cmd {
	switch {
	case key.Matches(msg, keys.Quit):
		return tea.Quit
	case key.Matches(msg, keys.Help):
		return func() tea.Msg { return ToggleHelpMsg{} }
	}
	return nil
}
