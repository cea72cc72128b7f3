package chat

import "testing"

func idsN(n int, prefix string) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = prefix + string(rune('a'+i))
	}
	return out
}

func TestWindowTrailingSlice(t *testing.T) {
	w := NewWindow(3, 2)
	path := idsN(5, "n")
	visible, hidden := w.Apply(path)
	if hidden != 2 {
		t.Fatalf("hidden = %d, want 2", hidden)
	}
	if len(visible) != 3 || visible[0] != path[2] {
		t.Fatalf("unexpected window %v", visible)
	}
}

func TestWindowExpand(t *testing.T) {
	w := NewWindow(3, 2)
	path := idsN(8, "n")
	w.Apply(path)
	w.Expand()
	visible, hidden := w.Apply(path)
	if len(visible) != 5 || hidden != 3 {
		t.Fatalf("after expand: visible %d hidden %d", len(visible), hidden)
	}
}

func TestWindowSurvivesSingleAppend(t *testing.T) {
	w := NewWindow(3, 2)
	path := idsN(6, "n")
	w.Apply(path)
	w.Expand()
	// One message appended: still the same branch, window keeps its size.
	grown := append(append([]string{}, path...), "tail")
	visible, _ := w.Apply(grown)
	if len(visible) != 5 {
		t.Fatalf("append must not reset window, got %d", len(visible))
	}
}

func TestWindowResetsOnBranchChange(t *testing.T) {
	w := NewWindow(3, 2)
	path := idsN(8, "n")
	w.Apply(path)
	w.Expand()
	w.Expand()

	// Same head but the length jumps by more than one: different branch.
	short := path[:4]
	visible, hidden := w.Apply(short)
	if len(visible) != 3 || hidden != 1 {
		t.Fatalf("length jump must reset: visible %d hidden %d", len(visible), hidden)
	}

	// Different first element: also a reset.
	w.Expand()
	other := idsN(8, "m")
	visible, _ = w.Apply(other)
	if len(visible) != 3 {
		t.Fatalf("head change must reset, got %d", len(visible))
	}
}

func TestWindowShortPath(t *testing.T) {
	w := NewWindow(10, 5)
	visible, hidden := w.Apply(idsN(4, "n"))
	if hidden != 0 || len(visible) != 4 {
		t.Fatalf("short path: visible %d hidden %d", len(visible), hidden)
	}
}
