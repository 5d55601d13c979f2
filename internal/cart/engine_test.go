package cart

import (
	"log/slog"
	"testing"

	"github.com/dmuriithi/campuscafe/internal/database"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/store"
)

func setupEngine(t *testing.T) (*Engine, *store.CartStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	cs := store.NewCartStore(db)
	return NewEngine(cs, store.DefaultCartKey, slog.Default()), cs
}

func checkInvariants(t *testing.T, cart model.Cart) {
	t.Helper()
	items, amount := 0, 0.0
	for _, line := range cart.Items {
		if line.Subtotal != float64(line.Quantity)*line.UnitPrice {
			t.Errorf("line %s subtotal = %v, want %v", line.ID, line.Subtotal, float64(line.Quantity)*line.UnitPrice)
		}
		items += line.Quantity
		amount += line.Subtotal
	}
	if cart.TotalItems != items {
		t.Errorf("totalItems = %d, want %d", cart.TotalItems, items)
	}
	if cart.TotalAmount != amount {
		t.Errorf("totalAmount = %v, want %v", cart.TotalAmount, amount)
	}
}

func TestAddItem(t *testing.T) {
	e, _ := setupEngine(t)

	e.AddItem(model.MenuItem{ID: "x", Name: "Chips", Price: 100}, 2, "")

	cart := e.Cart()
	if len(cart.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1", len(cart.Items))
	}
	line := cart.Items[0]
	if line.Quantity != 2 || line.UnitPrice != 100 || line.Subtotal != 200 {
		t.Errorf("line = %+v, want qty 2 unit 100 subtotal 200", line)
	}
	if cart.TotalItems != 2 || cart.TotalAmount != 200 {
		t.Errorf("totals = %d/%v, want 2/200", cart.TotalItems, cart.TotalAmount)
	}
	checkInvariants(t, cart)
}

func TestAddSameItemMerges(t *testing.T) {
	e, _ := setupEngine(t)

	e.AddItem(model.MenuItem{ID: "x", Price: 50}, 1, "")
	e.AddItem(model.MenuItem{ID: "x", Price: 50}, 3, "")

	cart := e.Cart()
	if len(cart.Items) != 1 {
		t.Fatalf("len(items) = %d, want 1 (same id must merge)", len(cart.Items))
	}
	if cart.Items[0].Quantity != 4 {
		t.Errorf("quantity = %d, want 4", cart.Items[0].Quantity)
	}
	checkInvariants(t, cart)
}

func TestAddItemWithoutIDIgnored(t *testing.T) {
	e, _ := setupEngine(t)

	e.AddItem(model.MenuItem{Name: "Mystery", Price: 10}, 1, "")

	if !e.IsEmpty() {
		t.Error("item without id must not be added")
	}
}

func TestUpdateQuantity(t *testing.T) {
	e, _ := setupEngine(t)

	e.AddItem(model.MenuItem{ID: "x", Price: 100}, 2, "")
	e.UpdateQuantity("x", 5)

	cart := e.Cart()
	if cart.Items[0].Subtotal != 500 {
		t.Errorf("subtotal = %v, want 500", cart.Items[0].Subtotal)
	}
	if cart.TotalAmount != 500 {
		t.Errorf("totalAmount = %v, want 500", cart.TotalAmount)
	}
	checkInvariants(t, cart)
}

func TestRemoveItem(t *testing.T) {
	e, _ := setupEngine(t)

	e.AddItem(model.MenuItem{ID: "x", Price: 100}, 1, "")
	e.AddItem(model.MenuItem{ID: "y", Price: 50}, 2, "")
	e.RemoveItem("x")

	cart := e.Cart()
	if len(cart.Items) != 1 || cart.Items[0].ID != "y" {
		t.Fatalf("items = %+v, want just y", cart.Items)
	}
	checkInvariants(t, cart)

	// Removing an absent id is a no-op.
	e.RemoveItem("nope")
	if len(e.Cart().Items) != 1 {
		t.Error("remove of absent id must not change the cart")
	}
}

func TestClear(t *testing.T) {
	e, _ := setupEngine(t)

	e.AddItem(model.MenuItem{ID: "x", Price: 100}, 2, "")
	e.Clear()

	cart := e.Cart()
	if len(cart.Items) != 0 || cart.TotalItems != 0 || cart.TotalAmount != 0 {
		t.Errorf("cart after clear = %+v, want empty", cart)
	}
	if !e.IsEmpty() {
		t.Error("IsEmpty = false after clear")
	}
}

func TestUpdateInstructions(t *testing.T) {
	e, _ := setupEngine(t)

	e.AddItem(model.MenuItem{ID: "x", Price: 100}, 1, "")
	e.UpdateInstructions("x", "no onions")

	if got := e.Cart().Items[0].SpecialInstructions; got != "no onions" {
		t.Errorf("instructions = %q, want %q", got, "no onions")
	}
}

func TestMutationsPersist(t *testing.T) {
	e, cs := setupEngine(t)

	e.AddItem(model.MenuItem{ID: "x", Price: 100}, 2, "")

	saved, err := cs.Load(store.DefaultCartKey)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if saved == nil || saved.TotalAmount != 200 {
		t.Fatalf("persisted cart = %+v, want totalAmount 200", saved)
	}
}

func TestReloadPicksUpExternalWrite(t *testing.T) {
	e, cs := setupEngine(t)

	cs.Save(store.DefaultCartKey, model.Cart{
		Items:       []model.CartLine{{ID: "z", Quantity: 1, UnitPrice: 90, Subtotal: 90}},
		TotalItems:  1,
		TotalAmount: 90,
	})
	e.Reload()

	cart := e.Cart()
	if len(cart.Items) != 1 || cart.Items[0].ID != "z" {
		t.Errorf("cart after reload = %+v, want line z", cart)
	}
}

func TestCorruptSnapshotResets(t *testing.T) {
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if _, err := db.Exec(
		`INSERT INTO cart_snapshots (key, payload) VALUES (?, 'not json')`,
		store.DefaultCartKey,
	); err != nil {
		t.Fatalf("insert garbage: %v", err)
	}

	e := NewEngine(store.NewCartStore(db), store.DefaultCartKey, slog.Default())
	if !e.IsEmpty() {
		t.Error("engine must start empty from a corrupt snapshot")
	}
}

func TestObserverNotified(t *testing.T) {
	e, _ := setupEngine(t)

	var last model.Cart
	calls := 0
	e.OnChange(func(c model.Cart) {
		last = c
		calls++
	})

	e.AddItem(model.MenuItem{ID: "x", Price: 100}, 1, "")
	e.UpdateQuantity("x", 3)

	if calls != 2 {
		t.Errorf("observer calls = %d, want 2", calls)
	}
	if last.TotalItems != 3 {
		t.Errorf("last broadcast totalItems = %d, want 3", last.TotalItems)
	}
}
