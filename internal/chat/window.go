package chat

// Window restricts rendering to a trailing slice of the active path and
// expands on demand. Expanding is a pure state change: every node is
// already resident in the store, nothing is fetched.
type Window struct {
	limit    int
	base     int
	batch    int
	prevHead string
	prevLen  int
}

// NewWindow returns a window showing at most limit path entries, growing
// by batch each time Expand is called.
func NewWindow(limit, batch int) *Window {
	if limit < 1 {
		limit = 1
	}
	if batch < 1 {
		batch = 1
	}
	return &Window{limit: limit, base: limit, batch: batch}
}

// Apply slices the path down to the visible suffix and reports how many
// leading entries are hidden. The window resets to its default limit when
// the path's first element changes or its length jumps by more than one in
// a single update, the heuristic for "this is a different branch", so a
// branch switch never shows a stale hidden-count.
func (w *Window) Apply(path []string) (visible []string, hidden int) {
	head := ""
	if len(path) > 0 {
		head = path[0]
	}
	jump := w.prevLen - len(path)
	if jump < 0 {
		jump = -jump
	}
	if head != w.prevHead || jump > 1 {
		w.limit = w.base
	}
	w.prevHead = head
	w.prevLen = len(path)

	if len(path) <= w.limit {
		return path, 0
	}
	hidden = len(path) - w.limit
	return path[hidden:], hidden
}

// Expand grows the window by one batch.
func (w *Window) Expand() {
	w.limit += w.batch
}

// Limit returns the current window size.
func (w *Window) Limit() int { return w.limit }
