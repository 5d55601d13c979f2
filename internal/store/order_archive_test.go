package store

import (
	"testing"

	"github.com/dmuriithi/campuscafe/internal/database"
	"github.com/dmuriithi/campuscafe/internal/model"
)

func setupArchiveTestDB(t *testing.T) *OrderArchiveStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewOrderArchiveStore(db)
}

func TestArchiveAppendGet(t *testing.T) {
	os := setupArchiveTestDB(t)

	order := model.Order{
		ID:        "ORD123456",
		Total:     440,
		Status:    model.StatusPending,
		Timestamp: 1000,
	}
	if err := os.Append(order, false); err != nil {
		t.Fatalf("append: %v", err)
	}

	got, err := os.Get("ORD123456")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil {
		t.Fatal("expected order, got nil")
	}
	if got.Total != 440 {
		t.Errorf("total = %v, want 440", got.Total)
	}
	if got.Status != model.StatusPending {
		t.Errorf("status = %q, want pending", got.Status)
	}
}

func TestArchiveListNewestFirst(t *testing.T) {
	os := setupArchiveTestDB(t)

	os.Append(model.Order{ID: "ORD1", Timestamp: 100}, false)
	os.Append(model.Order{ID: "ORD3", Timestamp: 300}, false)
	os.Append(model.Order{ID: "ORD2", Timestamp: 200}, false)

	orders, err := os.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("len = %d, want 3", len(orders))
	}
	want := []string{"ORD3", "ORD2", "ORD1"}
	for i, id := range want {
		if orders[i].ID != id {
			t.Errorf("orders[%d].ID = %q, want %q", i, orders[i].ID, id)
		}
	}
}

func TestArchiveUpdateStatus(t *testing.T) {
	os := setupArchiveTestDB(t)

	os.Append(model.Order{ID: "ORD1", Status: model.StatusPending}, false)
	if err := os.UpdateStatus("ORD1", model.StatusReady); err != nil {
		t.Fatalf("update status: %v", err)
	}

	got, _ := os.Get("ORD1")
	if got.Status != model.StatusReady {
		t.Errorf("status = %q, want ready", got.Status)
	}

	// Absent id is a no-op.
	if err := os.UpdateStatus("nope", model.StatusReady); err != nil {
		t.Errorf("update absent: %v", err)
	}
}

func TestArchivePendingSync(t *testing.T) {
	os := setupArchiveTestDB(t)

	os.Append(model.Order{ID: "ORD1"}, true)
	os.Append(model.Order{ID: "ORD2"}, false)

	pending, err := os.PendingSync()
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 || pending[0].ID != "ORD1" {
		t.Fatalf("pending = %+v, want just ORD1", pending)
	}

	if err := os.MarkSynced("ORD1"); err != nil {
		t.Fatalf("mark synced: %v", err)
	}
	pending, _ = os.PendingSync()
	if len(pending) != 0 {
		t.Errorf("pending after sync = %d, want 0", len(pending))
	}
}
