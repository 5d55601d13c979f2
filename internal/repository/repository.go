// Package repository mediates between the remote gateway and the local
// cache: remote wins, local is the fallback. All remote payloads are
// decoded into typed records at this boundary.
package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/store"
)

// Validation errors, raised before any remote call is attempted.
var (
	ErrInvalidMenuItem = errors.New("invalid menu item data")
	ErrInvalidOrder    = errors.New("invalid order data")
	ErrInvalidMessage  = errors.New("invalid message data")
	ErrInvalidAdmin    = errors.New("invalid admin data")
)

// Repository is the single data-access surface for menu, orders,
// messages, admin accounts, and users.
type Repository struct {
	gw        gateway.Gateway
	menuCache *store.MenuCacheStore
	logger    *slog.Logger
}

func New(gw gateway.Gateway, menuCache *store.MenuCacheStore, logger *slog.Logger) *Repository {
	return &Repository{
		gw:        gw,
		menuCache: menuCache,
		logger:    logger,
	}
}

// InitStorage seeds the remote store with default data. It is idempotent
// and strictly additive: each collection is seeded only if entirely
// absent, and existing data is never overwritten.
func (r *Repository) InitStorage(ctx context.Context) error {
	existing, err := r.gw.List(ctx, gateway.MenuRoot)
	if err != nil {
		// Remote unreachable: make sure at least the local cache can
		// serve the default catalog.
		if cached, cacheErr := r.menuCache.List(); cacheErr == nil && len(cached) == 0 {
			if err := r.menuCache.ReplaceAll(DefaultMenuItems()); err != nil {
				r.logger.Warn("seed local menu cache", "error", err)
			}
		}
		return err
	}

	if len(existing) == 0 {
		for _, item := range DefaultMenuItems() {
			if err := r.gw.Set(ctx, gateway.MenuPath(item.ID), item); err != nil {
				return err
			}
		}
		r.logger.Info("seeded default menu items", "count", len(DefaultMenuItems()))
	}

	if err := r.seedDefaultAdmin(ctx); err != nil {
		return err
	}

	return nil
}
