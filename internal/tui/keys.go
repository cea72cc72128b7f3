package tui

import (
	"github.com/charmbracelet/bubbles/key"

	pkgtui "github.com/Void-n-Null/speedytavern-sub003/pkg/tui"
)

// chatKeys are the chat-screen bindings on top of the common set. They
// all carry a modifier so plain typing always reaches the composer.
type chatKeys struct {
	Send       key.Binding
	Undo       key.Binding
	Redo       key.Binding
	Edit       key.Binding
	Delete     key.Binding
	Regenerate key.Binding
	Older      key.Binding
}

func newChatKeys() chatKeys {
	return chatKeys{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo draft"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo draft"),
		),
		Edit: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("ctrl+e", "edit selected"),
		),
		Delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete selected (twice)"),
		),
		Regenerate: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "new alternative reply"),
		),
		Older: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "show older messages"),
		),
	}
}

func (k chatKeys) helpBindings() []pkgtui.HelpBinding {
	return []pkgtui.HelpBinding{
		pkgtui.HelpBindingFromKey(k.Send),
		{Key: "ctrl+j", Description: "newline"},
		pkgtui.HelpBindingFromKey(k.Undo),
		pkgtui.HelpBindingFromKey(k.Redo),
		pkgtui.HelpBindingFromKey(k.Edit),
		pkgtui.HelpBindingFromKey(k.Delete),
		pkgtui.HelpBindingFromKey(k.Regenerate),
		pkgtui.HelpBindingFromKey(k.Older),
	}
}
