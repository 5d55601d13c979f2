package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmuriithi/campuscafe/internal/model"
)

// OrderArchiveStore keeps the local mirror of placed orders. Every order
// is appended here at checkout regardless of whether the remote write
// succeeded; rows whose remote write failed are flagged pending_sync and
// retried by the reconciliation pass.
type OrderArchiveStore struct {
	db *sql.DB
}

func NewOrderArchiveStore(db *sql.DB) *OrderArchiveStore {
	return &OrderArchiveStore{db: db}
}

// Append stores an order in the archive.
func (s *OrderArchiveStore) Append(order model.Order, pendingSync bool) error {
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	pending := 0
	if pendingSync {
		pending = 1
	}
	_, err = s.db.Exec(
		`INSERT INTO order_archive (id, payload, pending_sync) VALUES (?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET payload = excluded.payload, pending_sync = excluded.pending_sync`,
		order.ID, string(payload), pending,
	)
	if err != nil {
		return fmt.Errorf("append order: %w", err)
	}
	return nil
}

// Get returns the archived order with the given id, or nil if absent.
func (s *OrderArchiveStore) Get(id string) (*model.Order, error) {
	var payload string
	err := s.db.QueryRow(`SELECT payload FROM order_archive WHERE id = ?`, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	var order model.Order
	if err := json.Unmarshal([]byte(payload), &order); err != nil {
		return nil, nil
	}
	return &order, nil
}

// List returns all archived orders, newest first.
func (s *OrderArchiveStore) List() ([]model.Order, error) {
	rows, err := s.db.Query(`SELECT payload FROM order_archive`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		var order model.Order
		if err := json.Unmarshal([]byte(payload), &order); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].Timestamp > orders[j].Timestamp
	})
	return orders, nil
}

// UpdateStatus rewrites the archived copy's status, if the order exists.
func (s *OrderArchiveStore) UpdateStatus(id string, status model.OrderStatus) error {
	order, err := s.Get(id)
	if err != nil || order == nil {
		return err
	}
	order.Status = status
	payload, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order: %w", err)
	}
	if _, err := s.db.Exec(`UPDATE order_archive SET payload = ? WHERE id = ?`, string(payload), id); err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	return nil
}

// PendingSync returns orders whose remote write has not yet succeeded,
// oldest first so retries preserve placement order.
func (s *OrderArchiveStore) PendingSync() ([]model.Order, error) {
	rows, err := s.db.Query(`SELECT payload FROM order_archive WHERE pending_sync = 1 ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list pending orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan pending order: %w", err)
		}
		var order model.Order
		if err := json.Unmarshal([]byte(payload), &order); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

// MarkSynced clears the pending flag after a successful remote write.
func (s *OrderArchiveStore) MarkSynced(id string) error {
	if _, err := s.db.Exec(`UPDATE order_archive SET pending_sync = 0 WHERE id = ?`, id); err != nil {
		return fmt.Errorf("mark synced: %w", err)
	}
	return nil
}
