// Package tokenstore persists the single bearer-token slot the client
// owns. The value is cached in memory so reads never touch disk.
package tokenstore

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS auth_token (
	id    INTEGER PRIMARY KEY CHECK (id = 1),
	token TEXT NOT NULL
)`

type Store struct {
	db *sqlx.DB

	mu    sync.RWMutex
	token string
}

// Open connects to the sqlite file at path, creating it and the token
// table as needed, and loads any previously stored token.
func Open(path string) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open token store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create token table: %w", err)
	}

	var token string
	err = db.Get(&token, "SELECT token FROM auth_token WHERE id = 1")
	if err != nil && err != sql.ErrNoRows {
		db.Close()
		return nil, fmt.Errorf("load token: %w", err)
	}

	return &Store{db: db, token: token}, nil
}

// Token returns the stored token, or "" when none is set.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set stores the token. An empty value clears the slot.
func (s *Store) Set(token string) error {
	if token == "" {
		return s.Clear()
	}

	_, err := s.db.Exec(`
		INSERT INTO auth_token (id, token) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET token = EXCLUDED.token`,
		token,
	)
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Clear removes the stored token.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM auth_token WHERE id = 1"); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}

	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
