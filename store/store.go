// Package store persists completed chat sessions to a local SQLite
// database.
//
// Design decisions:
//   - All records belong to one fixed identity; the app serves a single
//     manager per process.
//   - A nil *Store is valid and degrades every operation to a no-op or
//     empty list. Store unavailability is never surfaced to the user.
//   - Sessions are written once, transactionally, when a chat ends.
//     There is no incremental persistence.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fleetops/fleetchat/chat"
	_ "modernc.org/sqlite"
)

// Identity is the fixed owner of all persisted sessions.
const Identity = "manager123"

// SessionRecord is one persisted session with its ordered turns.
type SessionRecord struct {
	ID        int64
	UserID    string
	Mode      string
	Title     string
	Timestamp time.Time
	Turns     []chat.Turn
}

// Store provides access to the session database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	userid     TEXT    NOT NULL,
	mode       TEXT    NOT NULL,
	title      TEXT    NOT NULL,
	created_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS turns (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id INTEGER NOT NULL REFERENCES sessions(id),
	seq        INTEGER NOT NULL,
	message    TEXT    NOT NULL,
	response   TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_sessions_userid ON sessions(userid, created_at);
`

// Open opens (or creates) the session database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("create store dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Save persists a completed session under the fixed identity. Empty
// sessions and a nil store are no-ops.
func (s *Store) Save(sess *chat.Session) error {
	if s == nil || sess == nil || sess.Empty() {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO sessions (userid, mode, title, created_at) VALUES (?, ?, ?, ?)`,
		Identity, sess.Mode.String(), sess.Title, sess.StartedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	sessionID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}

	for i, turn := range sess.Turns {
		if _, err := tx.Exec(
			`INSERT INTO turns (session_id, seq, message, response) VALUES (?, ?, ?, ?)`,
			sessionID, i, turn.Message, turn.Response,
		); err != nil {
			return fmt.Errorf("insert turn %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// ListAll returns all sessions for the fixed identity, newest first.
// A nil store returns an empty list.
func (s *Store) ListAll() ([]SessionRecord, error) {
	if s == nil {
		return nil, nil
	}

	rows, err := s.db.Query(
		`SELECT id, userid, mode, title, created_at
		 FROM sessions
		 WHERE userid = ?
		 ORDER BY created_at DESC, id DESC`,
		Identity,
	)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var records []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var createdAt int64
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Mode, &rec.Title, &createdAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		rec.Timestamp = time.Unix(createdAt, 0).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range records {
		turns, err := s.turnsForSession(records[i].ID)
		if err != nil {
			return nil, err
		}
		records[i].Turns = turns
	}

	return records, nil
}

func (s *Store) turnsForSession(sessionID int64) ([]chat.Turn, error) {
	rows, err := s.db.Query(
		`SELECT message, response FROM turns WHERE session_id = ? ORDER BY seq ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("query turns: %w", err)
	}
	defer rows.Close()

	var turns []chat.Turn
	for rows.Next() {
		var t chat.Turn
		if err := rows.Scan(&t.Message, &t.Response); err != nil {
			return nil, fmt.Errorf("scan turn: %w", err)
		}
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
