// Package draft implements the composer's undo/redo history: an append-only
// stack of (text, selection) snapshots with input coalescing, so rapid
// keystrokes collapse into coarse undo units while cursor and selection
// are restored exactly.
package draft

import "time"

// Kind classifies a commit so the history can decide between coalescing,
// in-place selection updates, and hard appends.
type Kind int

const (
	// KindInput is free-text typing; consecutive fast inputs coalesce.
	KindInput Kind = iota
	// KindInsert is a programmatic or shortcut insertion; never coalesces.
	KindInsert
	// KindSelect is cursor/selection movement with unchanged text.
	KindSelect
	// KindSend marks a send or clear event.
	KindSend

	// kindNone is the internal "no recent commit" state after undo/redo.
	kindNone Kind = -1
)

// DefaultCoalesceWindow is how long after an input commit another input
// still merges into the same undo unit.
const DefaultCoalesceWindow = 750 * time.Millisecond

// DefaultCap bounds the history length; the oldest entries are evicted
// past it.
const DefaultCap = 100

// Entry is one (text, selection) snapshot. SelStart and SelEnd are rune
// offsets clamped to [0, len(text)] with SelStart <= SelEnd.
type Entry struct {
	Text     string
	SelStart int
	SelEnd   int
	At       time.Time
}

// History is a linear undo stack with branch-on-write semantics: any
// commit while the index is behind the tip truncates the redo range first.
type History struct {
	entries []Entry
	index   int
	max     int
	window  time.Duration

	lastKind Kind
	lastAt   time.Time

	now func() time.Time
}

// New returns a history seeded with a single empty entry.
func New(max int, window time.Duration) *History {
	if max < 2 {
		max = 2
	}
	if window <= 0 {
		window = DefaultCoalesceWindow
	}
	h := &History{
		entries:  []Entry{{}},
		max:      max,
		window:   window,
		lastKind: kindNone,
		now:      time.Now,
	}
	return h
}

// SetClock overrides the time source, for tests.
func (h *History) SetClock(now func() time.Time) { h.now = now }

// Current returns the entry at the history index.
func (h *History) Current() Entry { return h.entries[h.index] }

// Len returns the number of stored entries.
func (h *History) Len() int { return len(h.entries) }

// Index returns the current position, for diagnostics.
func (h *History) Index() int { return h.index }

// Commit records a draft state. Identical (text, selection) is a no-op.
// Unchanged text with a moved selection mutates the current entry in
// place, so cursor movement never consumes undo steps. Changed text
// replaces the tip when it extends a fast run of KindInput commits, and
// appends otherwise.
func (h *History) Commit(text string, selStart, selEnd int, kind Kind) {
	selStart, selEnd = clampSelection(text, selStart, selEnd)
	cur := h.entries[h.index]
	if text == cur.Text && selStart == cur.SelStart && selEnd == cur.SelEnd {
		return
	}

	now := h.now()

	if text == cur.Text {
		h.entries[h.index].SelStart = selStart
		h.entries[h.index].SelEnd = selEnd
		h.lastKind = KindSelect
		h.lastAt = now
		return
	}

	atTip := h.index == len(h.entries)-1
	if !atTip {
		h.entries = h.entries[:h.index+1]
	}

	entry := Entry{Text: text, SelStart: selStart, SelEnd: selEnd, At: now}
	coalesce := atTip &&
		kind == KindInput &&
		h.lastKind == KindInput &&
		now.Sub(h.lastAt) <= h.window
	if coalesce {
		h.entries[h.index] = entry
	} else {
		h.entries = append(h.entries, entry)
		h.index++
	}

	if over := len(h.entries) - h.max; over > 0 {
		h.entries = h.entries[over:]
		h.index -= over
		if h.index < 0 {
			h.index = 0
		}
	}

	h.lastKind = kind
	h.lastAt = now
}

// Undo steps back one entry and returns it. At the oldest entry it
// returns (Entry{}, false) and changes nothing.
func (h *History) Undo() (Entry, bool) {
	if h.index == 0 {
		return Entry{}, false
	}
	h.index--
	h.lastKind = kindNone
	return h.entries[h.index], true
}

// Redo steps forward one entry and returns it, or (Entry{}, false) at the
// tip.
func (h *History) Redo() (Entry, bool) {
	if h.index >= len(h.entries)-1 {
		return Entry{}, false
	}
	h.index++
	h.lastKind = kindNone
	return h.entries[h.index], true
}

// Clear commits an empty draft as a send event. Clearing an already-empty
// draft is a no-op.
func (h *History) Clear() {
	if h.entries[h.index].Text == "" {
		return
	}
	h.Commit("", 0, 0, KindSend)
}

func clampSelection(text string, start, end int) (int, int) {
	n := len([]rune(text))
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	return start, end
}
