package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
)

// Orders lists all remote orders, newest first.
func (r *Repository) Orders(ctx context.Context) ([]model.Order, error) {
	raw, err := r.gw.List(ctx, gateway.OrdersRoot)
	if err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(raw))
	for id, data := range raw {
		var o model.Order
		if err := json.Unmarshal(data, &o); err != nil {
			r.logger.Warn("skipping malformed order record", "id", id, "error", err)
			continue
		}
		o.ID = id
		orders = append(orders, o)
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].Timestamp > orders[j].Timestamp })
	return orders, nil
}

// Order fetches a single order by id. Absent ids return (nil, nil).
func (r *Repository) Order(ctx context.Context, id string) (*model.Order, error) {
	data, err := r.gw.Get(ctx, gateway.OrderPath(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var o model.Order
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, fmt.Errorf("malformed order record %s: %w", id, err)
	}
	o.ID = id
	return &o, nil
}

// SaveOrder writes the full order record. Orders without items or a
// userId are rejected before any write.
func (r *Repository) SaveOrder(ctx context.Context, o model.Order) error {
	if o.ID == "" || len(o.Items) == 0 || o.UserID == "" {
		return ErrInvalidOrder
	}
	return r.gw.Set(ctx, gateway.OrderPath(o.ID), o)
}

// UpdateOrderStatus sets the status of an existing order and returns
// the updated record. An absent id returns (nil, nil) without writing.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, status model.OrderStatus) (*model.Order, error) {
	if !status.Known() {
		return nil, ErrInvalidOrder
	}

	existing, err := r.Order(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if err := r.gw.Update(ctx, gateway.OrderPath(id), map[string]any{"status": status}); err != nil {
		return nil, err
	}
	existing.Status = status
	return existing, nil
}
