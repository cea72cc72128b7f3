package tui

import (
	"testing"
	"time"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
)

func TestReconcileDirectAssignment(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	// Node was 4 lines below the viewport top at capture time.
	r.Capture("parent", chat.Next, 24, 20)
	if !r.Armed() {
		t.Fatal("capture must arm the reconciler")
	}

	// After the switch the sibling starts at line 30: delta +6.
	scrollTop, cmd := r.Reconcile(30, 20, 200, 40)
	if scrollTop != 26 {
		t.Fatalf("scrollTop = %d, want 26", scrollTop)
	}
	if cmd != nil {
		t.Fatal("the direct case must never animate")
	}
	if r.Armed() || r.Settling() {
		t.Fatal("reconciler must return to idle")
	}
}

func TestReconcileClampsAndAppliesOvershoot(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	// Scenario from the design: scroll range [0, 500], target 700.
	r.Capture("parent", chat.Next, 100, 100) // anchored offset 0
	scrollTop, cmd := r.Reconcile(700, 100, 540, 40)
	if scrollTop != 500 {
		t.Fatalf("scrollTop = %d, want clamp at 500", scrollTop)
	}
	if r.VisualOffset() != 200 {
		t.Fatalf("visual offset = %d, want 200", r.VisualOffset())
	}
	if cmd == nil {
		t.Fatal("the clamped case must animate the offset away")
	}
	if !r.Settling() {
		t.Fatal("expected reconciling state")
	}
}

func TestSettleAnimationReachesZero(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	r.Capture("parent", chat.Next, 0, 0)
	_, cmd := r.Reconcile(100, 0, 60, 40)
	if cmd == nil {
		t.Fatal("expected animation")
	}
	for i := 0; i < 100 && r.Settling(); i++ {
		r.HandleSettle(settleTickMsg{gen: r.gen})
	}
	if r.Settling() || r.VisualOffset() != 0 {
		t.Fatalf("animation never settled: offset %d", r.VisualOffset())
	}
}

func TestSettleNegativeOvershoot(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	// Not enough content above: target would be negative.
	r.Capture("parent", chat.Prev, 30, 10) // anchored offset 20
	scrollTop, cmd := r.Reconcile(5, 10, 200, 40)
	if scrollTop != 0 {
		t.Fatalf("scrollTop = %d, want clamp at 0", scrollTop)
	}
	if r.VisualOffset() != -15 {
		t.Fatalf("visual offset = %d, want -15", r.VisualOffset())
	}
	if cmd == nil {
		t.Fatal("expected animation")
	}
	for i := 0; i < 100 && r.Settling(); i++ {
		r.HandleSettle(settleTickMsg{gen: r.gen})
	}
	if r.VisualOffset() != 0 {
		t.Fatalf("offset must settle to zero, got %d", r.VisualOffset())
	}
}

func TestSettleTimeoutTearsDown(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	r.Capture("parent", chat.Next, 0, 0)
	r.Reconcile(100, 0, 60, 40)
	if !r.Settling() {
		t.Fatal("expected reconciling state")
	}
	r.HandleSettle(settleTimeoutMsg{gen: r.gen})
	if r.Settling() || r.VisualOffset() != 0 {
		t.Fatal("timeout must force the offset to zero")
	}
}

func TestStaleAnimationMessagesIgnored(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	r.Capture("p1", chat.Next, 0, 0)
	r.Reconcile(100, 0, 60, 40)
	stale := r.gen
	// A new capture supersedes the pending animation.
	r.Capture("p2", chat.Prev, 10, 0)
	if cmd := r.HandleSettle(settleTickMsg{gen: stale}); cmd != nil {
		t.Fatal("stale tick must be dropped")
	}
	if !r.Armed() {
		t.Fatal("superseding capture lost")
	}
}

func TestSuppressionIsOneShot(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	r.Capture("parent", chat.Next, 0, 0)
	if !r.ConsumeSuppression() {
		t.Fatal("capture must set suppression")
	}
	if r.ConsumeSuppression() {
		t.Fatal("suppression must clear after one observation")
	}
}

func TestAnchorTarget(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	r.Capture("b", chat.Next, 0, 0)
	path := []string{"a", "b", "c", "d"}
	if got := r.AnchorTarget(path); got != "c" {
		t.Fatalf("target = %s, want c", got)
	}
	if got := r.AnchorTarget([]string{"x", "y"}); got != "" {
		t.Fatalf("missing parent must yield empty target, got %s", got)
	}
	if got := r.AnchorTarget([]string{"a", "b"}); got != "" {
		t.Fatal("parent at the tail has no following node")
	}
}

func TestReconcileWithoutCaptureIsNoOp(t *testing.T) {
	r := NewReconciler(300 * time.Millisecond)
	scrollTop, cmd := r.Reconcile(50, 12, 200, 40)
	if scrollTop != 12 || cmd != nil {
		t.Fatal("reconcile without an armed anchor must change nothing")
	}
}
