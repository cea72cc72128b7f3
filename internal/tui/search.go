package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
	pkgtui "github.com/Void-n-Null/speedytavern-sub003/pkg/tui"
)

// searchHit is one match in the search overlay.
type searchHit struct {
	NodeID  string
	Preview string
}

// searchJumpMsg asks the chat screen to reveal a node found by search.
type searchJumpMsg struct{ nodeID string }

// SearchOverlay fuzzy-searches every message in the tree, including ones
// on inactive branches; selecting a hit reveals its branch.
type SearchOverlay struct {
	input   textinput.Model
	items   []searchHit
	results []searchHit
	cursor  int
	visible bool
}

func NewSearchOverlay() *SearchOverlay {
	ti := textinput.New()
	ti.Placeholder = "Search messages..."
	ti.CharLimit = 100
	ti.Width = 50
	return &SearchOverlay{input: ti}
}

// SetItems rebuilds the searchable index from the store. Every node is
// indexed, not just the active path.
func (s *SearchOverlay) SetItems(store *chat.Store) {
	s.items = s.items[:0]
	for _, rootID := range store.Roots() {
		s.indexSubtree(store, rootID)
	}
	s.updateResults()
}

func (s *SearchOverlay) indexSubtree(store *chat.Store, id string) {
	n := store.Node(id)
	if n == nil {
		return
	}
	s.items = append(s.items, searchHit{NodeID: n.ID, Preview: previewText(n.Text)})
	for _, child := range n.ChildIDs {
		s.indexSubtree(store, child)
	}
}

func (s *SearchOverlay) Show() {
	s.visible = true
	s.input.Focus()
}

func (s *SearchOverlay) Hide() {
	s.visible = false
	s.input.Blur()
	s.input.SetValue("")
	s.updateResults()
}

func (s *SearchOverlay) Visible() bool { return s.visible }

func (s *SearchOverlay) Update(msg tea.Msg) (*SearchOverlay, tea.Cmd) {
	if !s.visible {
		return s, nil
	}
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			s.Hide()
			return s, nil
		case "enter":
			if len(s.results) > 0 {
				id := s.results[s.cursor].NodeID
				s.Hide()
				return s, func() tea.Msg { return searchJumpMsg{nodeID: id} }
			}
			s.Hide()
			return s, nil
		case "up", "ctrl+k":
			if s.cursor > 0 {
				s.cursor--
			}
			return s, nil
		case "down", "ctrl+j":
			if s.cursor < len(s.results)-1 {
				s.cursor++
			}
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.updateResults()
	return s, cmd
}

func (s *SearchOverlay) View(width int) string {
	if !s.visible {
		return ""
	}
	var b strings.Builder
	b.WriteString(pkgtui.TitleStyle.Render("Search"))
	b.WriteString("\n")
	b.WriteString(s.input.View())
	max := 8
	for i, hit := range s.results {
		if i >= max {
			b.WriteString("\n")
			b.WriteString(pkgtui.LabelStyle.Render("…"))
			break
		}
		b.WriteString("\n")
		line := hit.Preview
		if i == s.cursor {
			line = pkgtui.SelectedStyle.Render("▸ " + line)
		} else {
			line = pkgtui.UnselectedStyle.Render("  " + line)
		}
		b.WriteString(line)
	}
	box := pkgtui.PanelStyle.BorderForeground(pkgtui.ColorPrimary).Padding(1, 2)
	if width > 0 {
		box = box.Width(min(width-4, 60))
	}
	return box.Render(b.String())
}

func (s *SearchOverlay) updateResults() {
	query := strings.TrimSpace(s.input.Value())
	s.cursor = 0
	if query == "" {
		s.results = nil
		return
	}
	previews := make([]string, len(s.items))
	for i, item := range s.items {
		previews[i] = item.Preview
	}
	matches := fuzzy.Find(query, previews)
	s.results = make([]searchHit, 0, len(matches))
	for _, m := range matches {
		s.results = append(s.results, s.items[m.Index])
	}
}

func previewText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	const maxPreview = 60
	runes := []rune(text)
	if len(runes) > maxPreview {
		return string(runes[:maxPreview-1]) + "…"
	}
	return text
}
