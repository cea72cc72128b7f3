package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
)

// The transcript behaves like a scroll container: scrollTop is the index
// of the first visible wrapped line, the line buffer's length is the
// scroll height, and the screen area is the client height. Reconciler
// keeps the message the user acted on at the same place on screen across
// a branch switch, even though the path below the branch point is
// replaced wholesale.
//
// Three states: idle, anchored (a capture is waiting for the next
// layout), reconciling (a settle animation is running). At most one
// anchor is ever pending; a new capture supersedes the previous one.

type anchorState int

const (
	anchorIdle anchorState = iota
	anchorArmed
	anchorReconciling
)

// anchor is the ephemeral capture taken before a branch-changing action.
type anchor struct {
	parentID string         // branch point: parent of the switched node
	dir      chat.Direction // which sibling the user moved toward
	offset   int            // acted node's offset from the container top, in lines
	viewTop  int            // acted node's absolute line index at capture time
}

const settleTickInterval = 30 * time.Millisecond

// settleTickMsg advances the settle animation one frame.
type settleTickMsg struct{ gen int }

// settleTimeoutMsg force-finishes the settle animation if frames stop
// arriving; scheduled slightly past the animation duration.
type settleTimeoutMsg struct{ gen int }

// Reconciler is the scroll-anchor state machine.
type Reconciler struct {
	state  anchorState
	anchor anchor
	settle time.Duration
	gen    int // bumped per capture so stale animation msgs are ignored

	visualOffset int     // remaining overshoot, in lines
	perFrame     float64 // lines to remove per settle tick
	pending      float64 // fractional carry between frames

	suppressAutoScroll bool
}

// NewReconciler returns an idle reconciler whose settle animation runs
// for the given duration.
func NewReconciler(settle time.Duration) *Reconciler {
	if settle <= 0 {
		settle = 300 * time.Millisecond
	}
	return &Reconciler{settle: settle}
}

// Capture records the acted-upon node's position before the mutation is
// applied and arms the reconciler. nodeTop is the node's absolute line
// index in the transcript, scrollTop the current scroll position. Also
// sets the one-shot flag that keeps auto-scroll-to-bottom from fighting
// the upcoming correction.
func (r *Reconciler) Capture(parentID string, dir chat.Direction, nodeTop, scrollTop int) {
	r.gen++
	r.state = anchorArmed
	r.anchor = anchor{
		parentID: parentID,
		dir:      dir,
		offset:   nodeTop - scrollTop,
		viewTop:  nodeTop,
	}
	r.visualOffset = 0
	r.suppressAutoScroll = true
}

// Armed reports whether a capture is waiting for the next layout pass.
func (r *Reconciler) Armed() bool { return r.state == anchorArmed }

// Settling reports whether the settle animation is running.
func (r *Reconciler) Settling() bool { return r.state == anchorReconciling }

// VisualOffset is the temporary whole-line shift applied to the rendered
// slice while the overshoot settles back to zero.
func (r *Reconciler) VisualOffset() int { return r.visualOffset }

// ConsumeSuppression clears and returns the one-shot auto-scroll
// suppression flag. Called on the first path-change observation after a
// capture.
func (r *Reconciler) ConsumeSuppression() bool {
	s := r.suppressAutoScroll
	r.suppressAutoScroll = false
	return s
}

// AnchorTarget returns the path node the correction should re-anchor to:
// the node immediately following the branch-point parent in the freshly
// resolved path. Empty when the parent is no longer on the path.
func (r *Reconciler) AnchorTarget(path []string) string {
	for i, id := range path {
		if id == r.anchor.parentID && i+1 < len(path) {
			return path[i+1]
		}
	}
	return ""
}

// Reconcile runs the correction after the new layout is known. newTop is
// the anchor target's line index in the fresh transcript. It returns the
// corrected scrollTop and, when the exact position is unreachable, a
// command driving the settle animation. The direct case never animates.
func (r *Reconciler) Reconcile(newTop, scrollTop, totalLines, height int) (int, tea.Cmd) {
	if r.state != anchorArmed {
		return scrollTop, nil
	}

	currentOffset := newTop - scrollTop
	delta := currentOffset - r.anchor.offset
	target := scrollTop + delta

	maxScroll := totalLines - height
	if maxScroll < 0 {
		maxScroll = 0
	}
	clamped := target
	if clamped < 0 {
		clamped = 0
	}
	if clamped > maxScroll {
		clamped = maxScroll
	}

	overshoot := target - clamped
	if overshoot == 0 {
		// Common case: assign directly, instantly, no animation.
		r.state = anchorIdle
		return clamped, nil
	}

	// The scroll range cannot reach the target. Hold the anchored content
	// in place with a whole-line visual offset and animate it away.
	r.state = anchorReconciling
	r.visualOffset = overshoot
	frames := float64(r.settle / settleTickInterval)
	if frames < 1 {
		frames = 1
	}
	r.perFrame = float64(overshoot) / frames
	r.pending = 0
	gen := r.gen
	tick := tea.Tick(settleTickInterval, func(time.Time) tea.Msg { return settleTickMsg{gen: gen} })
	timeout := tea.Tick(r.settle+100*time.Millisecond, func(time.Time) tea.Msg { return settleTimeoutMsg{gen: gen} })
	return clamped, tea.Batch(tick, timeout)
}

// HandleSettle processes an animation frame or the fallback timeout.
// Returns the follow-up command, or nil once the offset reaches zero.
func (r *Reconciler) HandleSettle(msg tea.Msg) tea.Cmd {
	switch m := msg.(type) {
	case settleTickMsg:
		if m.gen != r.gen || r.state != anchorReconciling {
			return nil
		}
		r.pending += r.perFrame
		step := int(r.pending)
		r.pending -= float64(step)
		if step == 0 {
			if r.perFrame > 0 {
				step = 1
			} else if r.perFrame < 0 {
				step = -1
			}
		}
		r.visualOffset -= step
		if (r.perFrame > 0 && r.visualOffset <= 0) || (r.perFrame < 0 && r.visualOffset >= 0) {
			r.visualOffset = 0
			r.state = anchorIdle
			return nil
		}
		gen := r.gen
		return tea.Tick(settleTickInterval, func(time.Time) tea.Msg { return settleTickMsg{gen: gen} })
	case settleTimeoutMsg:
		// Deterministic teardown even if the frames never finished.
		if m.gen != r.gen || r.state != anchorReconciling {
			return nil
		}
		r.visualOffset = 0
		r.state = anchorIdle
		return nil
	}
	return nil
}

// Cancel drops any pending anchor without correcting, used when the
// layout it was captured against is gone (conversation switch, reload).
func (r *Reconciler) Cancel() {
	r.state = anchorIdle
	r.visualOffset = 0
	r.suppressAutoScroll = false
}
