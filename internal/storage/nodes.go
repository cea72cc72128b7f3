package storage

import (
	"database/sql"
	"time"

	"github.com/Void-n-Null/speedytavern-sub003/internal/chat"
)

func InsertNode(db *sql.DB, conversationID string, n chat.Node, position int) error {
	_, err := db.Exec(
		`INSERT INTO nodes (id, conversation_id, parent_id, speaker_id, content, is_bot, active_child, position, created_ts)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.ID, conversationID, nullable(n.ParentID), nullable(n.SpeakerID),
		n.Text, boolInt(n.IsBot), n.ActiveChild, position,
		n.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func UpdateNodeContent(db *sql.DB, id, content string) error {
	_, err := db.Exec(`UPDATE nodes SET content = ? WHERE id = ?`, content, id)
	return err
}

// UpdateNodePosition rewrites a node's sibling position, used to close
// the gap after a sibling is deleted so later inserts cannot collide.
func UpdateNodePosition(db *sql.DB, id string, position int) error {
	_, err := db.Exec(`UPDATE nodes SET position = ? WHERE id = ?`, position, id)
	return err
}

// UpdateActiveChild persists a node's preferred-child index so branch
// positions survive restarts.
func UpdateActiveChild(db *sql.DB, id string, index int) error {
	_, err := db.Exec(`UPDATE nodes SET active_child = ? WHERE id = ?`, index, id)
	return err
}

// DeleteSubtree removes a node and every descendant in one statement.
func DeleteSubtree(db *sql.DB, id string) error {
	_, err := db.Exec(`
WITH RECURSIVE doomed(id) AS (
  SELECT id FROM nodes WHERE id = ?
  UNION ALL
  SELECT n.id FROM nodes n JOIN doomed d ON n.parent_id = d.id
)
DELETE FROM nodes WHERE id IN (SELECT id FROM doomed)`, id)
	return err
}

func InsertSpeaker(db *sql.DB, conversationID string, sp chat.Speaker) error {
	_, err := db.Exec(
		`INSERT INTO speakers (id, conversation_id, name, color, is_user) VALUES (?, ?, ?, ?, ?)`,
		sp.ID, conversationID, sp.Name, nullable(sp.Color), boolInt(sp.IsUser),
	)
	return err
}

// LoadConversation reads the full tree for a conversation back into store
// form: node and speaker maps with child lists rebuilt in position order.
func LoadConversation(db *sql.DB, conversationID string) (map[string]*chat.Node, map[string]*chat.Speaker, error) {
	speakers := map[string]*chat.Speaker{}
	rows, err := db.Query(
		`SELECT id, name, COALESCE(color, ''), is_user FROM speakers WHERE conversation_id = ?`,
		conversationID,
	)
	if err != nil {
		return nil, nil, err
	}
	for rows.Next() {
		var sp chat.Speaker
		var isUser int
		if err := rows.Scan(&sp.ID, &sp.Name, &sp.Color, &isUser); err != nil {
			rows.Close()
			return nil, nil, err
		}
		sp.IsUser = isUser != 0
		speakers[sp.ID] = &sp
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	nodes := map[string]*chat.Node{}
	rows, err = db.Query(
		`SELECT id, COALESCE(parent_id, ''), COALESCE(speaker_id, ''), content, is_bot, active_child, created_ts
		 FROM nodes WHERE conversation_id = ? ORDER BY parent_id, position, created_ts`,
		conversationID,
	)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()
	type link struct{ parent, child string }
	var links []link
	for rows.Next() {
		var n chat.Node
		var isBot int
		var ts string
		if err := rows.Scan(&n.ID, &n.ParentID, &n.SpeakerID, &n.Text, &isBot, &n.ActiveChild, &ts); err != nil {
			return nil, nil, err
		}
		n.IsBot = isBot != 0
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			n.CreatedAt = t
		}
		cp := n
		nodes[n.ID] = &cp
		if n.ParentID != "" {
			links = append(links, link{n.ParentID, n.ID})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}
	// Rows arrive ordered by (parent, position), so appending preserves
	// the stored sibling order.
	for _, l := range links {
		if parent := nodes[l.parent]; parent != nil {
			parent.ChildIDs = append(parent.ChildIDs, l.child)
		}
	}
	return nodes, speakers, nil
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
