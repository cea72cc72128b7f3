package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Composer is the multi-line message input at the bottom of the chat
// screen. It wraps bubbles/textarea with consistent theming and exposes
// the (text, cursor) state the draft history snapshots.
type Composer struct {
	textarea textarea.Model
	title    string
	hint     string
	width    int
	height   int
	focused  bool
}

// NewComposer creates a Composer with the specified content height in
// lines; borders and the hint line come on top of that.
func NewComposer(contentHeight int) *Composer {
	if contentHeight < 1 {
		contentHeight = 4
	}

	ta := textarea.New()
	ta.Placeholder = "Type a message..."
	ta.CharLimit = 0
	ta.SetHeight(contentHeight)
	ta.ShowLineNumbers = false
	// Enter is reserved for send; newline moves to ctrl+j.
	ta.KeyMap.InsertNewline = key.NewBinding(key.WithKeys("ctrl+j"))

	ta.FocusedStyle.Base = lipgloss.NewStyle().
		Foreground(ColorFg).
		Background(ColorBg)
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle().
		Background(ColorBgLight)
	ta.FocusedStyle.Placeholder = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ta.FocusedStyle.Text = lipgloss.NewStyle().
		Foreground(ColorFg)
	ta.BlurredStyle = ta.FocusedStyle

	ta.Cursor.Style = lipgloss.NewStyle().
		Foreground(ColorBg).
		Background(ColorPrimary)

	return &Composer{
		textarea: ta,
		hint:     "enter: send  ctrl+j: newline  ctrl+z: undo",
		height:   contentHeight + 3,
	}
}

// SetTitle sets the title displayed above the input area.
func (c *Composer) SetTitle(title string) { c.title = title }

// SetHint sets the keyboard hint displayed below the input.
func (c *Composer) SetHint(hint string) { c.hint = hint }

// SetPlaceholder sets the placeholder text shown when empty.
func (c *Composer) SetPlaceholder(placeholder string) {
	c.textarea.Placeholder = placeholder
}

// SetSize sets the width and total height of the composer, borders and
// decorations included.
func (c *Composer) SetSize(width, height int) {
	c.width = width
	c.height = height

	textareaWidth := width - 4
	if textareaWidth < 10 {
		textareaWidth = 10
	}
	decorations := 2 // border
	if c.title != "" {
		decorations++
	}
	if c.hint != "" {
		decorations++
	}
	textareaHeight := height - decorations
	if textareaHeight < 1 {
		textareaHeight = 1
	}
	c.textarea.SetWidth(textareaWidth)
	c.textarea.SetHeight(textareaHeight)
}

// Update handles tea.Msg for the composer.
func (c *Composer) Update(msg tea.Msg) (*Composer, tea.Cmd) {
	var cmd tea.Cmd
	c.textarea, cmd = c.textarea.Update(msg)
	return c, cmd
}

// View renders the composer with border, title, and hint.
func (c *Composer) View() string {
	width := c.width
	if width < 10 {
		width = 40
	}
	innerWidth := width - 4
	if innerWidth < 10 {
		innerWidth = 10
	}
	c.textarea.SetWidth(innerWidth)

	var content string
	if c.title != "" {
		content = TitleStyle.Render(c.title) + "\n"
	}
	content += c.textarea.View()

	borderColor := ColorMuted
	if c.focused {
		borderColor = ColorPrimary
	}
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Width(width - 2).
		MaxWidth(width - 2)

	boxed := boxStyle.Render(content)
	if c.hint != "" {
		hintStyle := lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)
		return boxed + "\n" + hintStyle.Render(c.hint)
	}
	return boxed
}

// Value returns the current text content.
func (c *Composer) Value() string { return c.textarea.Value() }

// SetValue sets the text content, leaving the cursor at the end.
func (c *Composer) SetValue(s string) { c.textarea.SetValue(s) }

// Reset clears the text content.
func (c *Composer) Reset() { c.textarea.Reset() }

// Focus focuses the composer and returns the blink command.
func (c *Composer) Focus() tea.Cmd {
	c.focused = true
	return c.textarea.Focus()
}

// Blur removes focus from the composer.
func (c *Composer) Blur() {
	c.focused = false
	c.textarea.Blur()
}

// Focused returns whether the composer is focused.
func (c *Composer) Focused() bool { return c.focused }

// CursorOffset returns the cursor position as a rune offset into Value().
func (c *Composer) CursorOffset() int {
	row := c.textarea.Line()
	col := c.textarea.LineInfo().ColumnOffset
	lines := strings.Split(c.textarea.Value(), "\n")
	offset := 0
	for i := 0; i < row && i < len(lines); i++ {
		offset += len([]rune(lines[i])) + 1 // +1 for the newline
	}
	return offset + col
}

// Restore replaces the content and moves the cursor to the given rune
// offset, used when applying a draft history entry.
func (c *Composer) Restore(text string, offset int) {
	c.textarea.SetValue(text) // leaves the cursor on the last row
	row, col := rowColForOffset(text, offset)
	for c.textarea.Line() > row {
		c.textarea.CursorUp()
	}
	c.textarea.SetCursor(col)
}

func rowColForOffset(text string, offset int) (row, col int) {
	runes := []rune(text)
	if offset < 0 {
		offset = 0
	}
	if offset > len(runes) {
		offset = len(runes)
	}
	for _, r := range runes[:offset] {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		col++
	}
	return row, col
}
