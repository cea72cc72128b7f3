package chat

// Direction selects which sibling a branch switch moves toward.
type Direction int

const (
	// Prev moves to the sibling before the current one in creation order.
	Prev Direction = iota
	// Next moves to the sibling after the current one.
	Next
)

// SwitchBranch moves the active path to the sibling subtree next to nodeID
// in the given direction and returns the new tail: the target subtree's
// current leaf, found by following each node's preferred child. Sibling
// subtrees keep their own last-visited leaf that way, so switching away
// and back restores exactly where the user left off.
//
// Every failure mode is a silent no-op, not an error: switching at the
// root, a missing node or parent, or no sibling in that direction all
// return ("", false) and leave the tree untouched. Switching past a
// boundary repeatedly never changes anything.
func (s *Store) SwitchBranch(nodeID string, dir Direction) (string, bool) {
	n := s.nodes[nodeID]
	if n == nil || n.ParentID == "" {
		return "", false
	}
	parent := s.nodes[n.ParentID]
	if parent == nil {
		return "", false
	}
	cur := indexOf(nodeID, parent.ChildIDs)
	if cur < 0 {
		return "", false
	}
	next := cur - 1
	if dir == Next {
		next = cur + 1
	}
	if next < 0 || next >= len(parent.ChildIDs) {
		return "", false
	}
	parent.ActiveChild = next
	s.bump()
	return s.SubtreeLeaf(parent.ChildIDs[next]), true
}

// CreateBranch appends a new sibling alternative next to nodeID with the
// given content and returns it. The new sibling has no children, so it is
// immediately its own subtree leaf and becomes the natural new tail.
// Returns nil when nodeID is the root or missing.
func (s *Store) CreateBranch(nodeID, text, speakerID string, isBot bool) *Node {
	n := s.nodes[nodeID]
	if n == nil || n.ParentID == "" {
		return nil
	}
	if s.nodes[n.ParentID] == nil {
		return nil
	}
	return s.AddMessage(n.ParentID, text, speakerID, isBot)
}

// SubtreeLeaf descends from id through each node's preferred child until a
// leaf is reached. An unset or out-of-range preferred child falls back to
// the first child. Missing nodes truncate the descent at the last node
// that existed.
func (s *Store) SubtreeLeaf(id string) string {
	cur := id
	for {
		n := s.nodes[cur]
		if n == nil {
			return cur
		}
		if n.IsLeaf() {
			return cur
		}
		idx := n.ActiveChild
		if idx < 0 || idx >= len(n.ChildIDs) {
			idx = 0
		}
		next := n.ChildIDs[idx]
		if s.nodes[next] == nil {
			return cur
		}
		cur = next
	}
}

// RevealNode retargets the preferred-child pointer of every ancestor of
// nodeID so the node joins the active path, then returns the node's
// subtree leaf as the new tail. Used by search to jump to a hit that lives
// on a currently inactive branch. Missing nodes are a no-op.
func (s *Store) RevealNode(nodeID string) (string, bool) {
	if s.nodes[nodeID] == nil {
		return "", false
	}
	changed := false
	for id := nodeID; ; {
		n := s.nodes[id]
		if n == nil || n.ParentID == "" {
			break
		}
		parent := s.nodes[n.ParentID]
		if parent == nil {
			break
		}
		if idx := indexOf(id, parent.ChildIDs); idx >= 0 && parent.ActiveChild != idx {
			parent.ActiveChild = idx
			changed = true
		}
		id = n.ParentID
	}
	if changed {
		s.bump()
	}
	return s.SubtreeLeaf(nodeID), true
}
