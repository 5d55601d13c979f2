package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/dmuriithi/campuscafe/internal/model"
)

// Cart snapshot keys. DefaultCartKey is the canonical key; LegacyCartKey
// is an older duplicate kept readable so existing snapshots survive an
// upgrade.
const (
	DefaultCartKey = "campus_cafe_cart"
	LegacyCartKey  = "cart"
)

// CartStore persists whole-cart snapshots in the local cache.
type CartStore struct {
	db *sql.DB
}

func NewCartStore(db *sql.DB) *CartStore {
	return &CartStore{db: db}
}

// Save writes the full cart snapshot under key, replacing any previous one.
func (s *CartStore) Save(key string, cart model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart: %w", err)
	}
	_, err = s.db.Exec(
		`INSERT INTO cart_snapshots (key, payload, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, updated_at = CURRENT_TIMESTAMP`,
		key, string(payload),
	)
	if err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

// Load reads the snapshot under key. A missing, unparseable, or
// structurally invalid snapshot returns (nil, nil); callers reset to an
// empty cart rather than failing.
func (s *CartStore) Load(key string) (*model.Cart, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM cart_snapshots WHERE key = ?`, key).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}

	var cart model.Cart
	if err := json.Unmarshal([]byte(payload), &cart); err != nil {
		return nil, nil // corrupt snapshot, treat as absent
	}
	if cart.Items == nil {
		return nil, nil // items must be a list
	}
	return &cart, nil
}

// MigrateLegacy adopts a snapshot stored under LegacyCartKey as the
// canonical one, unless a canonical snapshot already exists.
func (s *CartStore) MigrateLegacy() error {
	canonical, err := s.Load(DefaultCartKey)
	if err != nil {
		return err
	}
	if canonical != nil {
		return nil
	}

	legacy, err := s.Load(LegacyCartKey)
	if err != nil || legacy == nil {
		return err
	}
	if err := s.Save(DefaultCartKey, *legacy); err != nil {
		return err
	}
	return s.Delete(LegacyCartKey)
}

// Delete removes the snapshot under key.
func (s *CartStore) Delete(key string) error {
	if _, err := s.db.Exec(`DELETE FROM cart_snapshots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete cart: %w", err)
	}
	return nil
}
