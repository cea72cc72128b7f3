package storage

import (
	"database/sql"
	"time"
)

// Conversation is one stored chat tree plus its tail pointer.
type Conversation struct {
	ID        string
	Title     string
	TailID    string
	CreatedAt time.Time
}

func InsertConversation(db *sql.DB, c Conversation) error {
	_, err := db.Exec(
		`INSERT INTO conversations (id, title, tail_id, created_ts) VALUES (?, ?, ?, ?)`,
		c.ID, c.Title, nullable(c.TailID), c.CreatedAt.UTC().Format(time.RFC3339Nano),
	)
	return err
}

func GetConversation(db *sql.DB, id string) (Conversation, error) {
	row := db.QueryRow(`SELECT id, title, COALESCE(tail_id, ''), created_ts FROM conversations WHERE id = ?`, id)
	return scanConversation(row)
}

func ListConversations(db *sql.DB) ([]Conversation, error) {
	rows, err := db.Query(`SELECT id, title, COALESCE(tail_id, ''), created_ts FROM conversations ORDER BY created_ts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// UpdateTail persists the tail pointer; the only way the active path
// changes across restarts.
func UpdateTail(db *sql.DB, conversationID, tailID string) error {
	_, err := db.Exec(`UPDATE conversations SET tail_id = ? WHERE id = ?`, nullable(tailID), conversationID)
	return err
}

func UpdateTitle(db *sql.DB, conversationID, title string) error {
	_, err := db.Exec(`UPDATE conversations SET title = ? WHERE id = ?`, title, conversationID)
	return err
}

func DeleteConversation(db *sql.DB, id string) error {
	_, err := db.Exec(`DELETE FROM conversations WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanConversation(row rowScanner) (Conversation, error) {
	var c Conversation
	var ts string
	if err := row.Scan(&c.ID, &c.Title, &c.TailID, &ts); err != nil {
		return Conversation{}, err
	}
	if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
		c.CreatedAt = t
	}
	return c, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
