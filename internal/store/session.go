package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmuriithi/campuscafe/internal/model"
)

// SessionStore persists the single local admin session record.
type SessionStore struct {
	db *sql.DB
}

func NewSessionStore(db *sql.DB) *SessionStore {
	return &SessionStore{db: db}
}

// Save replaces the admin session record.
func (s *SessionStore) Save(sess model.AdminSession) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO admin_session (id, payload) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Load returns the current session record, or nil if absent. A record
// that fails to parse is treated as no session, never as an error.
func (s *SessionStore) Load() (*model.AdminSession, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM admin_session WHERE id = 1`).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}

	var sess model.AdminSession
	if err := json.Unmarshal([]byte(payload), &sess); err != nil {
		return nil, nil
	}
	return &sess, nil
}

// Clear removes the session record.
func (s *SessionStore) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM admin_session WHERE id = 1`); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}
