// Package archive serializes a conversation tree to YAML and back, for
// export, backup, and moving chats between databases. The nested form
// mirrors the tree: each message carries its alternatives' subtrees
// inline, and preferred-child indexes survive the round trip so branch
// positions are not lost.
package archive

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
)

// Document is the on-disk archive form of one conversation.
type Document struct {
	Title    string    `yaml:"title"`
	Tail     string    `yaml:"tail,omitempty"`
	Speakers []Speaker `yaml:"speakers"`
	Messages []*Node   `yaml:"messages"`
}

type Speaker struct {
	ID     string `yaml:"id"`
	Name   string `yaml:"name"`
	Color  string `yaml:"color,omitempty"`
	IsUser bool   `yaml:"is_user,omitempty"`
}

type Node struct {
	ID       string    `yaml:"id"`
	Speaker  string    `yaml:"speaker,omitempty"`
	Text     string    `yaml:"text"`
	Bot      bool      `yaml:"bot,omitempty"`
	Active   int       `yaml:"active"`
	Created  time.Time `yaml:"created"`
	Children []*Node   `yaml:"children,omitempty"`
}

// Export renders the store's trees as a YAML document.
func Export(s *chat.Store, title, tail string) ([]byte, error) {
	doc := Document{Title: title, Tail: tail}
	for _, sp := range s.Speakers() {
		doc.Speakers = append(doc.Speakers, Speaker{
			ID: sp.ID, Name: sp.Name, Color: sp.Color, IsUser: sp.IsUser,
		})
	}
	for _, rootID := range s.Roots() {
		n, err := exportNode(s, rootID)
		if err != nil {
			return nil, err
		}
		doc.Messages = append(doc.Messages, n)
	}
	return yaml.Marshal(doc)
}

func exportNode(s *chat.Store, id string) (*Node, error) {
	n := s.Node(id)
	if n == nil {
		return nil, fmt.Errorf("archive: dangling child reference %s", id)
	}
	out := &Node{
		ID:      n.ID,
		Speaker: n.SpeakerID,
		Text:    n.Text,
		Bot:     n.IsBot,
		Active:  n.ActiveChild,
		Created: n.CreatedAt,
	}
	for _, child := range n.ChildIDs {
		cn, err := exportNode(s, child)
		if err != nil {
			return nil, err
		}
		out.Children = append(out.Children, cn)
	}
	return out, nil
}

// Import parses an archive document into a fresh store and returns it
// with the archived tail pointer. Missing IDs are regenerated; a tail
// that no longer resolves is returned empty so the caller falls back to
// a leaf of its choosing.
func Import(data []byte) (*chat.Store, Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, Document{}, fmt.Errorf("archive: parse: %w", err)
	}
	s := chat.NewStore()
	for _, sp := range doc.Speakers {
		if sp.ID == "" {
			sp.ID = uuid.NewString()
		}
		s.PutSpeaker(chat.Speaker{ID: sp.ID, Name: sp.Name, Color: sp.Color, IsUser: sp.IsUser})
	}
	for _, root := range doc.Messages {
		importNode(s, root, "")
	}
	if doc.Tail != "" && s.Node(doc.Tail) == nil {
		doc.Tail = ""
	}
	return s, doc, nil
}

func importNode(s *chat.Store, n *Node, parentID string) string {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	node := chat.Node{
		ID:          n.ID,
		ParentID:    parentID,
		ActiveChild: n.Active,
		SpeakerID:   n.Speaker,
		Text:        n.Text,
		IsBot:       n.Bot,
		CreatedAt:   n.Created,
	}
	for _, child := range n.Children {
		node.ChildIDs = append(node.ChildIDs, importNode(s, child, n.ID))
	}
	if node.ActiveChild >= len(node.ChildIDs) {
		node.ActiveChild = chat.NoActiveChild
	}
	s.PutNode(node)
	return n.ID
}
