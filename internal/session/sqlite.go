package session

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// staleAfter is how long rows of an abandoned session are kept.
const staleAfter = 24 * time.Hour

// SQLiteStore keeps the session slots in a sqlite file, scoped to one
// session id. Rows survive a restart of the client but are removed by Clear.
type SQLiteStore struct {
	db        *sql.DB
	sessionID string
}

// NewSQLiteStore opens the database and starts a new session.
func NewSQLiteStore(filePath string) (*SQLiteStore, error) {
	return OpenSQLiteSession(filePath, uuid.NewString())
}

// OpenSQLiteSession opens the database and attaches to an existing session.
func OpenSQLiteSession(filePath, sessionID string) (*SQLiteStore, error) {
	if filePath == "" {
		return nil, errors.New("sqlite session store needs a path")
	}
	if err := uuid.Validate(sessionID); err != nil {
		return nil, fmt.Errorf("invalid session id: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	st := &SQLiteStore{db: db, sessionID: sessionID}
	if err := st.initSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return st, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS session_slots (
		session_id TEXT NOT NULL,
		key TEXT NOT NULL,
		value TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		PRIMARY KEY (session_id, key)
	);
	CREATE INDEX IF NOT EXISTS idx_session_slots_updated ON session_slots(updated_at);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	cutoff := time.Now().UTC().Add(-staleAfter)
	if _, err := s.db.Exec(`DELETE FROM session_slots WHERE updated_at < ?`, toTS(cutoff)); err != nil {
		return fmt.Errorf("failed to purge stale sessions: %w", err)
	}
	return nil
}

// SessionID identifies the session this store writes to.
func (s *SQLiteStore) SessionID() string {
	return s.sessionID
}

func (s *SQLiteStore) Set(key, value string) error {
	_, err := s.db.Exec(`
		INSERT OR REPLACE INTO session_slots (session_id, key, value, updated_at)
		VALUES (?, ?, ?, ?)`,
		s.sessionID, key, value, toTS(time.Now()),
	)
	return err
}

func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`
		SELECT value FROM session_slots
		WHERE session_id = ? AND key = ?`,
		s.sessionID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (s *SQLiteStore) Delete(key string) error {
	_, err := s.db.Exec(`DELETE FROM session_slots WHERE session_id = ? AND key = ?`, s.sessionID, key)
	return err
}

func (s *SQLiteStore) Clear() error {
	_, err := s.db.Exec(`DELETE FROM session_slots WHERE session_id = ?`, s.sessionID)
	return err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// tsLayout is fixed width so timestamps compare lexically.
const tsLayout = "2006-01-02T15:04:05.000000000Z"

func toTS(t time.Time) string {
	return t.UTC().Format(tsLayout)
}
