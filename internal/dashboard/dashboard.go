// Package dashboard computes the admin overview statistics and keeps
// connected clients current via a standing subscription on the orders
// collection.
package dashboard

import (
	"context"
	"log/slog"

	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/repository"
	"github.com/dmuriithi/campuscafe/internal/websocket"
)

const recentOrderLimit = 10

// Stats is the snapshot rendered on the admin dashboard.
type Stats struct {
	TotalMenuItems int                    `json:"totalMenuItems"`
	TotalOrders    int                    `json:"totalOrders"`
	FeaturedItems  int                    `json:"featuredItems"`
	TotalUsers     int                    `json:"totalUsers"`
	CategoryCounts map[model.Category]int `json:"categoryCounts"`
	RecentOrders   []model.Order          `json:"recentOrders"`
}

// Service recomputes Stats from scratch on every request. Order volume
// is small enough that a full reload per change is acceptable.
type Service struct {
	repo   *repository.Repository
	gw     gateway.Gateway
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewService(repo *repository.Repository, gw gateway.Gateway, hub *websocket.Hub, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		gw:     gw,
		hub:    hub,
		logger: logger.With("component", "dashboard"),
	}
}

// Stats builds a fresh snapshot from the menu, order, and user
// collections.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	stats := Stats{CategoryCounts: make(map[model.Category]int)}

	items := s.repo.MenuItems(ctx)
	stats.TotalMenuItems = len(items)
	for _, item := range items {
		if item.Featured {
			stats.FeaturedItems++
		}
		stats.CategoryCounts[item.Category]++
	}

	orders, err := s.repo.Orders(ctx)
	if err != nil {
		return Stats{}, err
	}
	stats.TotalOrders = len(orders)
	if len(orders) > recentOrderLimit {
		stats.RecentOrders = orders[:recentOrderLimit]
	} else {
		stats.RecentOrders = orders
	}

	stats.TotalUsers = s.userCount(ctx, orders)
	return stats, nil
}

// userCount prefers the users collection; when it is unreachable or
// empty the distinct userIds across orders stand in.
func (s *Service) userCount(ctx context.Context, orders []model.Order) int {
	users, err := s.repo.Users(ctx)
	if err == nil && len(users) > 0 {
		return len(users)
	}
	if err != nil {
		s.logger.Warn("user count falling back to orders", "error", err)
	}

	seen := make(map[string]struct{})
	for _, o := range orders {
		if o.UserID != "" {
			seen[o.UserID] = struct{}{}
		}
	}
	return len(seen)
}

// Watch holds a standing subscription on the orders collection and
// broadcasts a recomputed snapshot to all websocket clients on every
// change. The returned cancel func stops the subscription.
func (s *Service) Watch(ctx context.Context) (func(), error) {
	return s.gw.Subscribe(ctx, gateway.OrdersRoot, func() {
		stats, err := s.Stats(ctx)
		if err != nil {
			s.logger.Warn("stats reload failed", "error", err)
			return
		}
		s.hub.Broadcast(websocket.NewMessage("dashboard", "updated", "", map[string]any{
			"stats": stats,
		}))
	})
}
