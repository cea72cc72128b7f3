package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Void-n-Null/speedytavern-sub003/internal/storage"
	pkgtui "github.com/Void-n-Null/speedytavern-sub003/pkg/tui"
)

// pickConversationMsg asks the model to open a conversation.
type pickConversationMsg struct{ id string }

// newConversationMsg asks the model to create and open a fresh one.
type newConversationMsg struct{}

type convItem struct {
	conv storage.Conversation
}

func (i convItem) Title() string { return i.conv.Title }

func (i convItem) Description() string {
	return fmt.Sprintf("created %s", i.conv.CreatedAt.Format("2006-01-02 15:04"))
}

func (i convItem) FilterValue() string { return i.conv.Title }

func newPicker(convs []storage.Conversation) list.Model {
	items := make([]list.Item, len(convs))
	for i, c := range convs {
		items[i] = convItem{conv: c}
	}
	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(pkgtui.ColorPrimary).
		BorderLeftForeground(pkgtui.ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(pkgtui.ColorFgDim).
		BorderLeftForeground(pkgtui.ColorPrimary)

	l := list.New(items, delegate, 0, 0)
	l.Title = "Conversations"
	l.Styles.Title = lipgloss.NewStyle().
		Background(pkgtui.ColorPrimary).
		Foreground(pkgtui.ColorBg).
		Padding(0, 1).
		Bold(true)
	l.SetShowStatusBar(false)
	return l
}

// updatePicker routes messages to the list and turns selections into
// model-level messages.
func updatePicker(l list.Model, msg tea.Msg) (list.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "enter":
			if item, ok := l.SelectedItem().(convItem); ok {
				id := item.conv.ID
				return l, func() tea.Msg { return pickConversationMsg{id: id} }
			}
		case "n":
			if !l.SettingFilter() {
				return l, func() tea.Msg { return newConversationMsg{} }
			}
		}
	}
	var cmd tea.Cmd
	l, cmd = l.Update(msg)
	return l, cmd
}
