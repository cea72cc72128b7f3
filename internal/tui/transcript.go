package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
	pkgtui "github.com/Void-n-Null/speedytavern-sub003/pkg/tui"
)

// transcript is the rendered line buffer for the visible slice of the
// active path. It doubles as the scroll container the anchor reconciler
// measures against: nodeTop records each message's first line index so a
// node's on-screen position can be captured and re-found across a path
// change.
type transcript struct {
	lines   []string
	nodeTop map[string]int
}

func (tr transcript) height() int { return len(tr.lines) }

// top returns the first line index of a node's block, or -1 when the
// node is not materialized.
func (tr transcript) top(nodeID string) int {
	if at, ok := tr.nodeTop[nodeID]; ok {
		return at
	}
	return -1
}

var (
	hiddenStyle = lipgloss.NewStyle().
			Foreground(pkgtui.ColorMuted).
			Italic(true)

	selectedMarkerStyle = lipgloss.NewStyle().
				Foreground(pkgtui.ColorWarning).
				Bold(true)

	siblingStyle = lipgloss.NewStyle().
			Foreground(pkgtui.ColorMuted)

	contentStyle = lipgloss.NewStyle().
			Foreground(pkgtui.ColorFg).
			PaddingLeft(2)
)

// buildTranscript renders the visible path suffix into a line buffer.
// hidden is the count of leading path entries the lazy window elided;
// selected gets a marker on its header line.
func buildTranscript(s *chat.Store, visible []string, hidden int, width int, md *MarkdownCache, selected string) transcript {
	tr := transcript{nodeTop: map[string]int{}}
	if width < 20 {
		width = 20
	}

	if hidden > 0 {
		plural := "s"
		if hidden == 1 {
			plural = ""
		}
		tr.lines = append(tr.lines,
			hiddenStyle.Render(fmt.Sprintf("… %d earlier message%s (ctrl+o to show more)", hidden, plural)))
		tr.lines = append(tr.lines, "")
	}

	for _, id := range visible {
		n := s.Node(id)
		if n == nil {
			continue
		}
		tr.nodeTop[id] = len(tr.lines)
		tr.lines = append(tr.lines, headerLine(s, n, id == selected))
		body := md.Render(n, width-4)
		for _, line := range strings.Split(body, "\n") {
			tr.lines = append(tr.lines, contentStyle.Render(line))
		}
		tr.lines = append(tr.lines, "")
	}
	return tr
}

func headerLine(s *chat.Store, n *chat.Node, selected bool) string {
	sp := s.SpeakerOrPlaceholder(n.SpeakerID)
	color := pkgtui.ColorUser
	if n.IsBot {
		color = pkgtui.ColorBot
	}
	if sp.Color != "" {
		color = lipgloss.Color(sp.Color)
	}
	nameStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	header := nameStyle.Render(sp.Name)
	if count := s.SiblingCount(n.ID); count > 1 {
		header += " " + siblingStyle.Render(fmt.Sprintf("‹%d/%d›", s.SiblingIndex(n.ID)+1, count))
	}
	if selected {
		header = selectedMarkerStyle.Render("▸ ") + header
	}
	return header
}

// visibleSlice returns height lines starting at scrollTop, padding with
// blanks where the index runs past either end. The reconciler's visual
// offset deliberately pushes the slice out of range while an overshoot
// settles, so out-of-range rows are normal, not an error.
func visibleSlice(lines []string, scrollTop, height int) []string {
	out := make([]string, 0, height)
	for i := scrollTop; i < scrollTop+height; i++ {
		if i < 0 || i >= len(lines) {
			out = append(out, "")
			continue
		}
		out = append(out, lines[i])
	}
	return out
}

// wrapText wraps plain text to the given printable width, preserving
// existing newlines. Styled (ANSI) content is measured, not sliced,
// mid-sequence.
func wrapText(text string, width int) string {
	if width <= 0 {
		return text
	}
	var result []string
	for _, line := range strings.Split(text, "\n") {
		if ansi.PrintableRuneWidth(line) <= width {
			result = append(result, line)
			continue
		}
		words := strings.Fields(line)
		if len(words) == 0 {
			result = append(result, "")
			continue
		}
		var current string
		for _, word := range words {
			switch {
			case current == "":
				current = word
			case ansi.PrintableRuneWidth(current)+1+ansi.PrintableRuneWidth(word) <= width:
				current += " " + word
			default:
				result = append(result, current)
				current = word
			}
		}
		if current != "" {
			result = append(result, current)
		}
	}
	return strings.Join(result, "\n")
}
