package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmuriithi/campuscafe/internal/model"
)

// MenuCacheStore mirrors the remote menu catalog for offline reads.
// The mirror is overwritten wholesale on every successful remote fetch.
type MenuCacheStore struct {
	db *sql.DB
}

func NewMenuCacheStore(db *sql.DB) *MenuCacheStore {
	return &MenuCacheStore{db: db}
}

// ReplaceAll overwrites the entire cached catalog.
func (s *MenuCacheStore) ReplaceAll(items []model.MenuItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM menu_cache`); err != nil {
		return fmt.Errorf("clear menu cache: %w", err)
	}

	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("marshal item %s: %w", item.ID, err)
		}
		if _, err := tx.Exec(
			`INSERT INTO menu_cache (id, payload) VALUES (?, ?)`,
			item.ID, string(payload),
		); err != nil {
			return fmt.Errorf("insert item %s: %w", item.ID, err)
		}
	}

	return tx.Commit()
}

// List returns the cached catalog. Items whose payload no longer parses
// are skipped.
func (s *MenuCacheStore) List() ([]model.MenuItem, error) {
	rows, err := s.db.Query(`SELECT payload FROM menu_cache ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list menu cache: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan menu cache: %w", err)
		}
		var item model.MenuItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
