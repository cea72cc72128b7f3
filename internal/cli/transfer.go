package cli

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Void-n-Null/speedytavern-sub003/internal/archive"
	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
	"github.com/Void-n-Null/speedytavern-sub003/internal/storage"
)

func ExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <id> [file]",
		Short: "Export a conversation tree to YAML",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			id := strings.TrimSpace(args[0])
			conv, err := storage.GetConversation(db, id)
			if err != nil {
				return fmt.Errorf("conversation %s: %w", id, err)
			}
			nodes, speakers, err := storage.LoadConversation(db, id)
			if err != nil {
				return err
			}
			s := chat.NewStore()
			s.Load(nodes, speakers)

			data, err := archive.Export(s, conv.Title, conv.TailID)
			if err != nil {
				return err
			}
			if len(args) == 2 {
				return os.WriteFile(args[1], data, 0o644)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

func ImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a YAML archive as a new conversation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			s, doc, err := archive.Import(data)
			if err != nil {
				return err
			}
			// Node and speaker IDs are globally unique in the database, so
			// importing next to the original needs fresh ones.
			s, tailMapped := remapIDs(s, doc.Tail)
			doc.Tail = tailMapped

			db, err := openDatabase()
			if err != nil {
				return err
			}
			defer db.Close()

			title := doc.Title
			if title == "" {
				title = fmt.Sprintf("Imported %s", time.Now().Format("Jan 2 15:04"))
			}
			tail := doc.Tail
			if tail == "" {
				if roots := s.Roots(); len(roots) > 0 {
					tail = s.SubtreeLeaf(roots[0])
				}
			}

			id := uuid.NewString()
			conv := storage.Conversation{ID: id, Title: title, TailID: tail, CreatedAt: time.Now()}
			if err := storage.InsertConversation(db, conv); err != nil {
				return err
			}
			for _, sp := range s.Speakers() {
				if err := storage.InsertSpeaker(db, id, *sp); err != nil {
					return err
				}
			}
			for _, rootID := range s.Roots() {
				if err := persistSubtree(db, id, s, rootID, 0); err != nil {
					return err
				}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

// remapIDs rebuilds the store with fresh UUIDs for every node and
// speaker, translating parent, child, speaker, and tail references.
func remapIDs(s *chat.Store, tail string) (*chat.Store, string) {
	idFor := map[string]string{}
	mapped := func(id string) string {
		if id == "" {
			return ""
		}
		if v, ok := idFor[id]; ok {
			return v
		}
		v := uuid.NewString()
		idFor[id] = v
		return v
	}

	out := chat.NewStore()
	for _, sp := range s.Speakers() {
		cp := *sp
		cp.ID = mapped(sp.ID)
		out.PutSpeaker(cp)
	}
	var walk func(id string)
	walk = func(id string) {
		n := s.Node(id)
		if n == nil {
			return
		}
		cp := *n
		cp.ID = mapped(n.ID)
		cp.ParentID = mapped(n.ParentID)
		cp.SpeakerID = mapped(n.SpeakerID)
		cp.ChildIDs = make([]string, len(n.ChildIDs))
		for i, child := range n.ChildIDs {
			cp.ChildIDs[i] = mapped(child)
		}
		out.PutNode(cp)
		for _, child := range n.ChildIDs {
			walk(child)
		}
	}
	for _, rootID := range s.Roots() {
		walk(rootID)
	}
	if v, ok := idFor[tail]; ok {
		return out, v
	}
	return out, ""
}

// persistSubtree writes a node and its descendants depth-first,
// recording each child's sibling position.
func persistSubtree(db *sql.DB, conversationID string, s *chat.Store, nodeID string, position int) error {
	n := s.Node(nodeID)
	if n == nil {
		return fmt.Errorf("dangling node %s", nodeID)
	}
	if err := storage.InsertNode(db, conversationID, *n, position); err != nil {
		return err
	}
	for i, child := range n.ChildIDs {
		if err := persistSubtree(db, conversationID, s, child, i); err != nil {
			return err
		}
	}
	return nil
}
