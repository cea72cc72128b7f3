// Package storage persists conversation trees to sqlite. The in-memory
// store is the unit of truth while the app runs; writes land here
// optimistically through the async Writer and are only best-effort
// durable.
package storage

import (
	"database/sql"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func OpenTemp() (*sql.DB, error) {
	dir, err := os.MkdirTemp("", "speedytavern-db-")
	if err != nil {
		return nil, err
	}
	return Open(filepath.Join(dir, "chats.db"))
}

func Migrate(db *sql.DB) error {
	_, err := db.Exec(`
CREATE TABLE IF NOT EXISTS conversations (
  id TEXT PRIMARY KEY,
  title TEXT NOT NULL,
  tail_id TEXT,
  created_ts TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS speakers (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
  name TEXT NOT NULL,
  color TEXT,
  is_user INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS nodes (
  id TEXT PRIMARY KEY,
  conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
  parent_id TEXT,
  speaker_id TEXT,
  content TEXT NOT NULL,
  is_bot INTEGER NOT NULL DEFAULT 0,
  active_child INTEGER NOT NULL DEFAULT -1,
  position INTEGER NOT NULL DEFAULT 0,
  created_ts TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_speakers_conversation ON speakers(conversation_id);
CREATE INDEX IF NOT EXISTS idx_nodes_conversation ON nodes(conversation_id);
CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id);
`)
	return err
}
