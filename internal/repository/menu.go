package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"

	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
)

// MenuItems returns the menu catalog with a three-tier fallback: the
// remote store first (refreshing the local cache on success), then the
// local cache, then the built-in default catalog. It never returns an
// empty list.
func (r *Repository) MenuItems(ctx context.Context) []model.MenuItem {
	remote, err := r.gw.List(ctx, gateway.MenuRoot)
	if err == nil && len(remote) > 0 {
		items := make([]model.MenuItem, 0, len(remote))
		for id, raw := range remote {
			var item model.MenuItem
			if err := json.Unmarshal(raw, &item); err != nil {
				r.logger.Warn("skipping malformed menu record", "id", id, "error", err)
				continue
			}
			item.ID = id
			items = append(items, item)
		}
		if len(items) > 0 {
			sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
			if err := r.menuCache.ReplaceAll(items); err != nil {
				r.logger.Warn("refresh menu cache", "error", err)
			}
			return items
		}
	}
	if err != nil {
		r.logger.Warn("remote menu fetch failed, using fallback", "error", err)
	}

	if cached, err := r.menuCache.List(); err == nil && len(cached) > 0 {
		return cached
	}

	return DefaultMenuItems()
}

// MenuItem looks up a single item remotely. A missing id returns
// (nil, nil); a malformed record is an error.
func (r *Repository) MenuItem(ctx context.Context, id string) (*model.MenuItem, error) {
	data, err := r.gw.Get(ctx, gateway.MenuPath(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var item model.MenuItem
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("malformed menu record %s: %w", id, err)
	}
	item.ID = id
	return &item, nil
}

// SaveMenuItem validates and writes the full item record. A blank image
// URL is replaced with the placeholder before writing.
func (r *Repository) SaveMenuItem(ctx context.Context, item model.MenuItem) (model.MenuItem, error) {
	if item.ID == "" || item.Name == "" || !item.Category.Valid() {
		return model.MenuItem{}, ErrInvalidMenuItem
	}
	if item.Price < 0 || math.IsNaN(item.Price) || math.IsInf(item.Price, 0) {
		return model.MenuItem{}, ErrInvalidMenuItem
	}

	if item.ImageURL == "" {
		item.ImageURL = PlaceholderImageURL
	}
	if item.Availability == "" {
		item.Availability = model.Available
	}

	if err := r.gw.Set(ctx, gateway.MenuPath(item.ID), item); err != nil {
		return model.MenuItem{}, err
	}
	return item, nil
}

// DeleteMenuItem removes the item remotely. Deleting an absent id is
// not an error.
func (r *Repository) DeleteMenuItem(ctx context.Context, id string) error {
	return r.gw.Delete(ctx, gateway.MenuPath(id))
}
