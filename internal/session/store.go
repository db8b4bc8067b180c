// Package session holds the key-value slot used to hand the latest medical
// report from the survey to the result screen. A store lives for one
// application session: it is created at startup and cleared at teardown.
package session

import (
	"errors"
	"strings"
)

// Store is a session-scoped key-value store.
type Store interface {
	Set(key, value string) error
	Get(key string) (string, bool, error)
	Delete(key string) error
	// Clear removes every key of the session.
	Clear() error
	Close() error
}

const (
	EngineMemory = "memory"
	EngineSQLite = "sqlite"
)

// NewByEngine creates a store for the given engine. path is only used by
// the sqlite engine. A non-empty sessionID attaches to that sqlite session
// instead of starting a new one.
func NewByEngine(engine, path, sessionID string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(engine)) {
	case "", EngineMemory:
		if sessionID != "" {
			return nil, errors.New("session id requires the sqlite engine")
		}
		return NewMemoryStore(), nil
	case EngineSQLite:
		if sessionID != "" {
			return OpenSQLiteSession(path, sessionID)
		}
		return NewSQLiteStore(path)
	default:
		return nil, errors.New("unsupported session engine: " + engine)
	}
}
