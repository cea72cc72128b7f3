package chat

// ResolvePath walks parent pointers from tail up to the root and returns
// the node IDs ordered root first. An empty tail yields an empty path.
// A dangling parent reference truncates the path at that point instead of
// failing; callers treat a truncated path as a degraded-but-renderable
// state. A cycle in parent links (corrupt data) also truncates rather
// than looping forever.
//
// The result is memoized against (tail, store version): resolving the same
// tail twice without an intervening mutation returns the cached slice.
func (s *Store) ResolvePath(tail string) []string {
	if tail == "" {
		return nil
	}
	if s.memoTail == tail && s.memoVersion == s.version && s.memoPath != nil {
		return s.memoPath
	}

	var reversed []string
	seen := map[string]bool{}
	for id := tail; id != ""; {
		n := s.nodes[id]
		if n == nil || seen[id] {
			break
		}
		seen[id] = true
		reversed = append(reversed, id)
		id = n.ParentID
	}

	path := make([]string, len(reversed))
	for i, id := range reversed {
		path[len(reversed)-1-i] = id
	}

	s.memoTail = tail
	s.memoVersion = s.version
	s.memoPath = path
	return path
}

// SiblingCount returns how many alternatives exist at the node's position,
// including the node itself. A root or orphaned node counts as 1.
func (s *Store) SiblingCount(id string) int {
	n := s.nodes[id]
	if n == nil {
		return 0
	}
	parent := s.nodes[n.ParentID]
	if parent == nil {
		return 1
	}
	return len(parent.ChildIDs)
}

// SiblingIndex returns the node's 0-based position among its siblings.
// Roots and orphans are index 0.
func (s *Store) SiblingIndex(id string) int {
	n := s.nodes[id]
	if n == nil {
		return 0
	}
	parent := s.nodes[n.ParentID]
	if parent == nil {
		return 0
	}
	if idx := indexOf(id, parent.ChildIDs); idx >= 0 {
		return idx
	}
	return 0
}
