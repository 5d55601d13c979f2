package dashboard

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dmuriithi/campuscafe/internal/database"
	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/repository"
	"github.com/dmuriithi/campuscafe/internal/store"
	"github.com/dmuriithi/campuscafe/internal/websocket"
)

func setupTestDashboard(t *testing.T) (*Service, *repository.Repository, *gateway.Memory, *websocket.Hub) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.Default()
	gw := gateway.NewMemory()
	repo := repository.New(gw, store.NewMenuCacheStore(db), logger)
	hub := websocket.NewHub(logger)
	return NewService(repo, gw, hub, logger), repo, gw, hub
}

func seedOrder(t *testing.T, repo *repository.Repository, id, userID string, ts int64) {
	t.Helper()
	err := repo.SaveOrder(context.Background(), model.Order{
		ID:        id,
		Items:     []model.CartLine{{ID: "item_1", Quantity: 1, UnitPrice: 180, Subtotal: 180}},
		Total:     180,
		Status:    model.StatusPending,
		Timestamp: ts,
		UserID:    userID,
	})
	if err != nil {
		t.Fatalf("seed order %s: %v", id, err)
	}
}

func TestStats(t *testing.T) {
	svc, repo, _, _ := setupTestDashboard(t)
	ctx := context.Background()

	if err := repo.InitStorage(ctx); err != nil {
		t.Fatalf("InitStorage: %v", err)
	}
	seedOrder(t, repo, "ORD000001", "u1", 100)
	seedOrder(t, repo, "ORD000002", "u2", 200)
	seedOrder(t, repo, "ORD000003", "u1", 300)

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}

	if stats.TotalMenuItems != 8 {
		t.Errorf("TotalMenuItems = %d, want 8", stats.TotalMenuItems)
	}
	if stats.FeaturedItems != 3 {
		t.Errorf("FeaturedItems = %d, want 3", stats.FeaturedItems)
	}
	if stats.TotalOrders != 3 {
		t.Errorf("TotalOrders = %d, want 3", stats.TotalOrders)
	}
	if got := stats.CategoryCounts[model.CategoryMainCourses]; got != 3 {
		t.Errorf("main-courses count = %d, want 3", got)
	}
	if got := stats.CategoryCounts[model.CategoryDesserts]; got != 2 {
		t.Errorf("desserts count = %d, want 2", got)
	}

	// No users collection: distinct userIds from orders stand in.
	if stats.TotalUsers != 2 {
		t.Errorf("TotalUsers = %d, want 2", stats.TotalUsers)
	}

	if len(stats.RecentOrders) != 3 || stats.RecentOrders[0].ID != "ORD000003" {
		t.Errorf("RecentOrders = %+v, want newest first", stats.RecentOrders)
	}
}

func TestStatsRecentOrdersCapped(t *testing.T) {
	svc, repo, _, _ := setupTestDashboard(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		seedOrder(t, repo, "ORD"+string(rune('A'+i))+"00000", "u1", int64(i))
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if len(stats.RecentOrders) != recentOrderLimit {
		t.Errorf("RecentOrders len = %d, want %d", len(stats.RecentOrders), recentOrderLimit)
	}
	if stats.RecentOrders[0].Timestamp != 14 {
		t.Errorf("RecentOrders[0].Timestamp = %d, want 14", stats.RecentOrders[0].Timestamp)
	}
}

func TestStatsUsersCollectionWins(t *testing.T) {
	svc, repo, gw, _ := setupTestDashboard(t)
	ctx := context.Background()

	seedOrder(t, repo, "ORD000001", "u1", 100)
	for _, uid := range []string{"a", "b", "c"} {
		if err := gw.Set(ctx, gateway.UserPath(uid), model.User{UID: uid, Email: uid + "@x.com"}); err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	stats, err := svc.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalUsers != 3 {
		t.Errorf("TotalUsers = %d, want 3", stats.TotalUsers)
	}
}

func TestWatchBroadcastsOnOrderChange(t *testing.T) {
	svc, repo, _, hub := setupTestDashboard(t)
	ctx := context.Background()

	client := websocket.NewTestClient(hub)
	hub.Register(client)

	cancel, err := svc.Watch(ctx)
	if err != nil {
		t.Fatalf("Watch: %v", err)
	}
	defer cancel()

	seedOrder(t, repo, "ORD000001", "u1", 100)

	select {
	case data := <-client.Send():
		if len(data) == 0 {
			t.Error("empty broadcast payload")
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast after order change")
	}
}
