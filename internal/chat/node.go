// Package chat holds the branching-conversation engine: the node store,
// the active-path resolver, and branch switching. A conversation is a tree
// of messages where any node may have multiple alternative children; the
// visible conversation is always one root-to-leaf path through that tree.
package chat

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// NoActiveChild marks a node whose preferred child has never been set.
const NoActiveChild = -1

// Node is a single message in the conversation tree.
type Node struct {
	ID          string
	ParentID    string // empty for the root
	ChildIDs    []string
	ActiveChild int // index into ChildIDs, NoActiveChild when unset
	SpeakerID   string
	Text        string
	IsBot       bool
	CreatedAt   time.Time
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool { return len(n.ChildIDs) == 0 }

// Speaker is a participant in the conversation.
type Speaker struct {
	ID     string
	Name   string
	Color  string
	IsUser bool
}

// Snapshot is a read-only view of the loaded conversation handed to
// operations that need fresh state without subscribing to every mutation.
type Snapshot struct {
	Nodes    map[string]*Node
	Speakers map[string]*Speaker
	Version  uint64
}

// Store owns the node and speaker records for one loaded conversation.
// It is the unit of truth the other components read from. All mutations go
// through its API; the version counter bumps on every mutation so derived
// state (the memoized path, markdown caches) can invalidate cheaply.
type Store struct {
	nodes    map[string]*Node
	speakers map[string]*Speaker
	version  uint64

	// resolvePath memo, keyed by (tail, version).
	memoTail    string
	memoVersion uint64
	memoPath    []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		nodes:    map[string]*Node{},
		speakers: map[string]*Speaker{},
	}
}

// Load replaces the store contents wholesale, as after a snapshot reload.
func (s *Store) Load(nodes map[string]*Node, speakers map[string]*Speaker) {
	if nodes == nil {
		nodes = map[string]*Node{}
	}
	if speakers == nil {
		speakers = map[string]*Speaker{}
	}
	s.nodes = nodes
	s.speakers = speakers
	s.bump()
}

// Node returns the node for id, or nil when absent.
func (s *Store) Node(id string) *Node { return s.nodes[id] }

// Speaker returns the speaker for id, or nil when absent.
func (s *Store) Speaker(id string) *Speaker { return s.speakers[id] }

// SpeakerOrPlaceholder returns the speaker for id, degrading to a
// placeholder record when the reference is dangling so a single missing
// speaker never fails the whole render.
func (s *Store) SpeakerOrPlaceholder(id string) *Speaker {
	if sp := s.speakers[id]; sp != nil {
		return sp
	}
	return &Speaker{ID: id, Name: "Unknown"}
}

// Version returns the mutation counter.
func (s *Store) Version() uint64 { return s.version }

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.nodes) }

// Snapshot returns a shallow read-only view of the current state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Nodes: s.nodes, Speakers: s.speakers, Version: s.version}
}

// PutSpeaker inserts or replaces a speaker record.
func (s *Store) PutSpeaker(sp Speaker) {
	if sp.ID == "" {
		sp.ID = uuid.NewString()
	}
	cp := sp
	s.speakers[sp.ID] = &cp
	s.bump()
}

// Speakers returns all speakers in no particular order.
func (s *Store) Speakers() []*Speaker {
	out := make([]*Speaker, 0, len(s.speakers))
	for _, sp := range s.speakers {
		out = append(out, sp)
	}
	return out
}

// AddMessage appends a new message under parentID and marks it as the
// parent's preferred child, so the active path naturally extends through
// it. An empty parentID creates a root. New siblings are always appended
// to the end of the parent's child list, never inserted out of order.
// Returns nil when parentID references a missing node.
func (s *Store) AddMessage(parentID, text, speakerID string, isBot bool) *Node {
	var parent *Node
	if parentID != "" {
		parent = s.nodes[parentID]
		if parent == nil {
			return nil
		}
	}
	n := &Node{
		ID:          uuid.NewString(),
		ParentID:    parentID,
		ActiveChild: NoActiveChild,
		SpeakerID:   speakerID,
		Text:        text,
		IsBot:       isBot,
		CreatedAt:   time.Now(),
	}
	s.nodes[n.ID] = n
	if parent != nil {
		parent.ChildIDs = append(parent.ChildIDs, n.ID)
		parent.ActiveChild = len(parent.ChildIDs) - 1
	}
	s.bump()
	return n
}

// PutNode inserts a fully-formed node, used when loading persisted trees.
// Child links are taken as given; callers are responsible for consistency.
func (s *Store) PutNode(n Node) {
	cp := n
	s.nodes[n.ID] = &cp
	s.bump()
}

// EditMessage replaces the text of an existing message. Missing nodes are
// a silent no-op.
func (s *Store) EditMessage(id, text string) bool {
	n := s.nodes[id]
	if n == nil {
		return false
	}
	n.Text = text
	s.bump()
	return true
}

// DeleteMessage removes a node and its entire subtree. The parent's child
// list is compacted and its preferred-child index clamped so it stays
// valid. Returns the parent ID (empty when the root was deleted) so the
// caller can re-resolve a tail; deleting a missing node is a no-op.
func (s *Store) DeleteMessage(id string) (parentID string, ok bool) {
	n := s.nodes[id]
	if n == nil {
		return "", false
	}
	s.deleteSubtree(id)
	if parent := s.nodes[n.ParentID]; parent != nil {
		idx := indexOf(id, parent.ChildIDs)
		if idx >= 0 {
			parent.ChildIDs = append(parent.ChildIDs[:idx], parent.ChildIDs[idx+1:]...)
		}
		switch {
		case len(parent.ChildIDs) == 0:
			parent.ActiveChild = NoActiveChild
		case parent.ActiveChild >= len(parent.ChildIDs):
			parent.ActiveChild = len(parent.ChildIDs) - 1
		}
	}
	s.bump()
	return n.ParentID, true
}

func (s *Store) deleteSubtree(id string) {
	n := s.nodes[id]
	if n == nil {
		return
	}
	for _, child := range n.ChildIDs {
		s.deleteSubtree(child)
	}
	delete(s.nodes, id)
}

// Roots returns the IDs of all parentless nodes in creation order.
func (s *Store) Roots() []string {
	var roots []*Node
	for _, n := range s.nodes {
		if n.ParentID == "" {
			roots = append(roots, n)
		}
	}
	sortNodesByCreation(roots)
	ids := make([]string, len(roots))
	for i, n := range roots {
		ids[i] = n.ID
	}
	return ids
}

func (s *Store) bump() {
	s.version++
}

func indexOf(id string, ids []string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func sortNodesByCreation(nodes []*Node) {
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].CreatedAt.Before(nodes[j].CreatedAt)
	})
}
