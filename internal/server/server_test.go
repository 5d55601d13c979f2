package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmuriithi/campuscafe/internal/auth"
	"github.com/dmuriithi/campuscafe/internal/database"
	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
	ws "github.com/dmuriithi/campuscafe/internal/websocket"
)

func setupTestServer(t *testing.T) *Server {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := slog.Default()
	gw := gateway.NewMemory()
	provider := auth.NewGatewayProvider(gw, logger)
	return New(db, gw, provider, logger)
}

func TestCartMutationBroadcasts(t *testing.T) {
	srv := setupTestServer(t)
	router := srv.Router()

	_, err := srv.Repository().SaveMenuItem(context.Background(), model.MenuItem{
		ID:       "item_2",
		Name:     "Classic Burger",
		Category: model.CategoryMainCourses,
		Price:    220,
	})
	if err != nil {
		t.Fatalf("seed menu item: %v", err)
	}

	client := ws.NewTestClient(srv.Hub())
	srv.Hub().Register(client)
	t.Cleanup(func() { srv.Hub().Unregister(client) })

	body := strings.NewReader(`{"itemId":"item_2","quantity":2}`)
	req := httptest.NewRequest("POST", "/api/cart/items", body)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusOK, rec.Body.String())
	}

	select {
	case raw := <-client.Send():
		var msg ws.Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("decode broadcast: %v", err)
		}
		if msg.Type != "cart_updated" {
			t.Errorf("type = %q, want cart_updated", msg.Type)
		}
		if got := msg.Extra["totalItems"]; got != float64(2) {
			t.Errorf("totalItems = %v, want 2", got)
		}
		if got := msg.Extra["totalAmount"]; got != float64(440) {
			t.Errorf("totalAmount = %v, want 440", got)
		}
	case <-time.After(time.Second):
		t.Fatal("no cart broadcast received")
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	srv := setupTestServer(t)
	router := srv.Router()

	req := httptest.NewRequest("GET", "/api/admin/orders", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}
