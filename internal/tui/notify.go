package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Non-fatal failures (a rejected durable write, a failed export) surface
// as a transient notice in the footer and never revert local state.

type noticeMsg struct {
	text  string
	isErr bool
}

type clearNoticeMsg struct{ id int }

const noticeDuration = 4 * time.Second

// notifyCmd publishes a transient notice.
func notifyCmd(text string, isErr bool) tea.Cmd {
	return func() tea.Msg { return noticeMsg{text: text, isErr: isErr} }
}

// notice tracks the currently displayed transient message.
type notice struct {
	text  string
	isErr bool
	id    int
}

func (n *notice) set(text string, isErr bool) tea.Cmd {
	n.id++
	n.text = text
	n.isErr = isErr
	id := n.id
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}

func (n *notice) clear(msg clearNoticeMsg) {
	// A newer notice may have superseded the one this expiry belongs to.
	if msg.id == n.id {
		n.text = ""
	}
}
