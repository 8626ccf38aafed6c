// Package library persists the template and contact lists, the only
// durable state in the application. Each list is stored wholesale as one
// JSON blob under a fixed key; there are no partial updates.
package library

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

const (
	keyTemplates = "templates"
	keyContacts  = "contacts"
)

// Template is a reusable document body.
type Template struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Contact is a saved recipient.
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Designation string    `json:"designation,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Store is a SQLite-backed key/value store for the persisted lists.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) the library database under dataDir.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".briefcase")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "library.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, path: dbPath}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS lists (
			key        TEXT PRIMARY KEY,
			value      BLOB NOT NULL,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Templates reads the whole template list.
func (s *Store) Templates() ([]Template, error) {
	var out []Template
	if err := s.readList(keyTemplates, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveTemplates replaces the whole template list.
func (s *Store) SaveTemplates(templates []Template) error {
	return s.writeList(keyTemplates, templates)
}

// Contacts reads the whole contact list.
func (s *Store) Contacts() ([]Contact, error) {
	var out []Contact
	if err := s.readList(keyContacts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SaveContacts replaces the whole contact list.
func (s *Store) SaveContacts(contacts []Contact) error {
	return s.writeList(keyContacts, contacts)
}

func (s *Store) readList(key string, dest any) error {
	var blob []byte
	err := s.db.QueryRow(`SELECT value FROM lists WHERE key = ?`, key).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading list %q: %w", key, err)
	}
	if err := json.Unmarshal(blob, dest); err != nil {
		return fmt.Errorf("decoding list %q: %w", key, err)
	}
	return nil
}

func (s *Store) writeList(key string, list any) error {
	blob, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("encoding list %q: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO lists (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, blob)
	if err != nil {
		return fmt.Errorf("writing list %q: %w", key, err)
	}
	return nil
}
