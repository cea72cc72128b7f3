package chat

import "testing"

// buildStore makes root -> a -> [b, c], c -> [c1, c2].
func buildStore(t *testing.T) (*Store, map[string]string) {
	t.Helper()
	s := NewStore()
	s.PutSpeaker(Speaker{ID: "user", Name: "User", IsUser: true})
	s.PutSpeaker(Speaker{ID: "bot", Name: "Bot"})

	root := s.AddMessage("", "hello", "bot", true)
	a := s.AddMessage(root.ID, "hi there", "user", false)
	b := s.AddMessage(a.ID, "reply one", "bot", true)
	c := s.CreateBranch(b.ID, "reply two", "bot", true)
	c1 := s.AddMessage(c.ID, "follow-up", "user", false)
	c2 := s.CreateBranch(c1.ID, "other follow-up", "user", false)
	ids := map[string]string{
		"root": root.ID, "a": a.ID, "b": b.ID, "c": c.ID, "c1": c1.ID, "c2": c2.ID,
	}
	return s, ids
}

func TestResolvePathRootToTail(t *testing.T) {
	s, ids := buildStore(t)
	path := s.ResolvePath(ids["c2"])
	want := []string{ids["root"], ids["a"], ids["c"], ids["c2"]}
	if len(path) != len(want) {
		t.Fatalf("expected %d nodes, got %d", len(want), len(path))
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("path[%d] = %s, want %s", i, path[i], want[i])
		}
	}
}

func TestResolvePathEmptyTail(t *testing.T) {
	s, _ := buildStore(t)
	if got := s.ResolvePath(""); len(got) != 0 {
		t.Fatalf("expected empty path, got %v", got)
	}
}

func TestResolvePathNoRepeats(t *testing.T) {
	s, ids := buildStore(t)
	path := s.ResolvePath(ids["c1"])
	seen := map[string]bool{}
	for _, id := range path {
		if seen[id] {
			t.Fatalf("node %s appears twice", id)
		}
		seen[id] = true
	}
	for _, key := range []string{"root", "a", "c", "c1"} {
		if !seen[ids[key]] {
			t.Fatalf("path missing %s", key)
		}
	}
}

func TestResolvePathTruncatesOnMissingParent(t *testing.T) {
	s, ids := buildStore(t)
	// Corrupt the tree: a's parent vanishes.
	delete(s.nodes, ids["root"])
	s.bump()
	path := s.ResolvePath(ids["c1"])
	if len(path) == 0 {
		t.Fatal("expected degraded path, got empty")
	}
	if path[0] != ids["a"] {
		t.Fatalf("expected truncation at a, got head %s", path[0])
	}
	if path[len(path)-1] != ids["c1"] {
		t.Fatalf("tail should survive truncation, got %s", path[len(path)-1])
	}
}

func TestResolvePathBreaksCycles(t *testing.T) {
	s, ids := buildStore(t)
	s.nodes[ids["root"]].ParentID = ids["c1"]
	s.bump()
	path := s.ResolvePath(ids["c1"])
	seen := map[string]bool{}
	for _, id := range path {
		if seen[id] {
			t.Fatalf("cycle leaked into path at %s", id)
		}
		seen[id] = true
	}
}

func TestResolvePathMemoized(t *testing.T) {
	s, ids := buildStore(t)
	first := s.ResolvePath(ids["c2"])
	second := s.ResolvePath(ids["c2"])
	if &first[0] != &second[0] {
		t.Fatal("expected memoized slice for unchanged store")
	}
	s.EditMessage(ids["a"], "edited")
	third := s.ResolvePath(ids["c2"])
	if len(third) != len(first) {
		t.Fatalf("path length changed after edit: %d vs %d", len(third), len(first))
	}
}

func TestSiblingMetadata(t *testing.T) {
	s, ids := buildStore(t)
	if got := s.SiblingCount(ids["b"]); got != 2 {
		t.Fatalf("SiblingCount(b) = %d, want 2", got)
	}
	if got := s.SiblingIndex(ids["c"]); got != 1 {
		t.Fatalf("SiblingIndex(c) = %d, want 1", got)
	}
	if got := s.SiblingCount(ids["root"]); got != 1 {
		t.Fatalf("SiblingCount(root) = %d, want 1", got)
	}
	if got := s.SiblingCount("missing"); got != 0 {
		t.Fatalf("SiblingCount(missing) = %d, want 0", got)
	}
}
