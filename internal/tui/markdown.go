package tui

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
)

// MarkdownCache renders message bodies, optionally through glamour, and
// caches the result keyed by (node, content hash, width). Edits re-render
// because the key tracks the content; a conversation switch just drops
// the whole cache.
type MarkdownCache struct {
	enabled bool
	cache   map[string]string
}

func NewMarkdownCache(enabled bool) *MarkdownCache {
	return &MarkdownCache{enabled: enabled, cache: map[string]string{}}
}

// Render returns the display form of a node's text wrapped to width.
func (m *MarkdownCache) Render(n *chat.Node, width int) string {
	if width <= 0 {
		width = 80
	}
	if !m.enabled {
		return wrapText(n.Text, width)
	}
	key := renderKey(n, width)
	if out, ok := m.cache[key]; ok {
		return out
	}
	out, err := renderMarkdown(n.Text, width)
	if err != nil || out == "" {
		out = wrapText(n.Text, width)
	}
	m.cache[key] = out
	return out
}

func renderKey(n *chat.Node, width int) string {
	h := fnv.New32a()
	h.Write([]byte(n.Text))
	return fmt.Sprintf("%s:%x:%d", n.ID, h.Sum32(), width)
}

// Invalidate drops every cached render.
func (m *MarkdownCache) Invalidate() {
	m.cache = map[string]string{}
}

func renderMarkdown(input string, width int) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle("dark"),
	)
	if err != nil {
		return "", err
	}
	out, err := renderer.Render(input)
	if err != nil {
		return "", err
	}
	return strings.Trim(out, "\n"), nil
}
