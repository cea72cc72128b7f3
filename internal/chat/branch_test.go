package chat

import "testing"

func TestSwitchBranchNextResolvesLeaf(t *testing.T) {
	// root -> a -> [b, c], b is tail, b has no preferred child set.
	s, ids := buildStore(t)
	tail, ok := s.SwitchBranch(ids["b"], Next)
	if !ok {
		t.Fatal("expected switch to succeed")
	}
	// c's subtree leaf is c2: c1 was created first, then c2 appended and
	// preferred.
	if tail != ids["c2"] {
		t.Fatalf("tail = %s, want c2 (%s)", tail, ids["c2"])
	}
	if s.Node(ids["a"]).ActiveChild != 1 {
		t.Fatalf("parent preferred child = %d, want 1", s.Node(ids["a"]).ActiveChild)
	}
}

func TestSwitchBranchBoundaryIsIdempotentNoOp(t *testing.T) {
	s, ids := buildStore(t)
	before := s.Version()
	for i := 0; i < 5; i++ {
		if tail, ok := s.SwitchBranch(ids["b"], Prev); ok {
			t.Fatalf("switch past boundary should no-op, got %s", tail)
		}
	}
	if s.Version() != before {
		t.Fatal("boundary no-op must not mutate the store")
	}
}

func TestSwitchBranchAtRootIsNoOp(t *testing.T) {
	s, ids := buildStore(t)
	if _, ok := s.SwitchBranch(ids["root"], Next); ok {
		t.Fatal("cannot switch at the root")
	}
	if _, ok := s.SwitchBranch("missing", Next); ok {
		t.Fatal("missing node must no-op")
	}
}

func TestSwitchBranchRoundTripRestoresLastVisitedLeaf(t *testing.T) {
	s, ids := buildStore(t)
	// Give b's subtree some depth and a remembered position.
	b1 := s.AddMessage(ids["b"], "deep one", "user", false)
	s.CreateBranch(b1.ID, "deep two", "user", false)
	s.Node(ids["b"]).ActiveChild = 0 // remember the first alternative

	tail, ok := s.SwitchBranch(ids["b"], Next)
	if !ok {
		t.Fatal("switch next failed")
	}
	back, ok := s.SwitchBranch(s.ResolvePath(tail)[2], Prev)
	if !ok {
		t.Fatal("switch prev failed")
	}
	// Round trip lands on b's last-visited leaf, not b itself.
	if back != b1.ID {
		t.Fatalf("round trip tail = %s, want b's remembered leaf %s", back, b1.ID)
	}
}

func TestSubtreeLeafFallsBackToFirstChild(t *testing.T) {
	s, ids := buildStore(t)
	s.Node(ids["c"]).ActiveChild = 99 // out of range is treated as 0
	if got := s.SubtreeLeaf(ids["c"]); got != ids["c1"] {
		t.Fatalf("leaf = %s, want c1 (%s)", got, ids["c1"])
	}
	s.Node(ids["c"]).ActiveChild = NoActiveChild
	if got := s.SubtreeLeaf(ids["c"]); got != ids["c1"] {
		t.Fatalf("unset preferred child should fall back to first, got %s", got)
	}
}

func TestCreateBranchAppendsSibling(t *testing.T) {
	s, ids := buildStore(t)
	n := s.CreateBranch(ids["c"], "reply three", "bot", true)
	if n == nil {
		t.Fatal("expected new sibling")
	}
	parent := s.Node(ids["a"])
	if len(parent.ChildIDs) != 3 {
		t.Fatalf("expected 3 siblings, got %d", len(parent.ChildIDs))
	}
	if parent.ChildIDs[2] != n.ID {
		t.Fatal("new sibling must be appended at the end")
	}
	if parent.ActiveChild != 2 {
		t.Fatalf("preferred child = %d, want 2", parent.ActiveChild)
	}
	if !n.IsLeaf() {
		t.Fatal("new sibling is its own leaf")
	}
	if s.CreateBranch(ids["root"], "x", "bot", true) != nil {
		t.Fatal("cannot branch at the root")
	}
}

func TestRevealNodeRetargetsAncestors(t *testing.T) {
	s, ids := buildStore(t)
	// Active path currently runs through c; reveal b.
	tail, ok := s.RevealNode(ids["b"])
	if !ok {
		t.Fatal("reveal failed")
	}
	if tail != ids["b"] {
		t.Fatalf("tail = %s, want b (%s)", tail, ids["b"])
	}
	if s.Node(ids["a"]).ActiveChild != 0 {
		t.Fatalf("ancestor not retargeted: %d", s.Node(ids["a"]).ActiveChild)
	}
	path := s.ResolvePath(tail)
	found := false
	for _, id := range path {
		if id == ids["b"] {
			found = true
		}
	}
	if !found {
		t.Fatal("revealed node must be on the active path")
	}
	if _, ok := s.RevealNode("missing"); ok {
		t.Fatal("missing node must no-op")
	}
}

func TestDeleteMessageClampsPreferredChild(t *testing.T) {
	s, ids := buildStore(t)
	parentID, ok := s.DeleteMessage(ids["c"])
	if !ok || parentID != ids["a"] {
		t.Fatalf("delete returned (%s, %v)", parentID, ok)
	}
	a := s.Node(ids["a"])
	if len(a.ChildIDs) != 1 || a.ChildIDs[0] != ids["b"] {
		t.Fatalf("unexpected children after delete: %v", a.ChildIDs)
	}
	if a.ActiveChild != 0 {
		t.Fatalf("preferred child not clamped: %d", a.ActiveChild)
	}
	if s.Node(ids["c1"]) != nil || s.Node(ids["c2"]) != nil {
		t.Fatal("subtree must be removed with its root")
	}
	if _, ok := s.DeleteMessage(ids["c"]); ok {
		t.Fatal("double delete must no-op")
	}
}

func TestAddMessageUnderMissingParent(t *testing.T) {
	s, _ := buildStore(t)
	if s.AddMessage("missing", "x", "user", false) != nil {
		t.Fatal("expected nil for missing parent")
	}
}
