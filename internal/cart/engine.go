// Package cart implements the session cart: an in-memory line-item
// collection persisted to the local cache on every mutation.
package cart

import (
	"log/slog"
	"sync"

	"github.com/dmuriithi/campuscafe/internal/currency"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/store"
)

// Engine owns one cart. Every mutating operation recomputes the totals
// from the item list, persists the whole snapshot, and then notifies
// observers — so the persisted cart is always a pure function of its
// items.
type Engine struct {
	mu        sync.Mutex
	cart      model.Cart
	cartStore *store.CartStore
	key       string
	observers []func(model.Cart)
	logger    *slog.Logger
}

// NewEngine creates an Engine backed by the snapshot under key. A
// missing or corrupt snapshot starts as an empty cart.
func NewEngine(cs *store.CartStore, key string, logger *slog.Logger) *Engine {
	e := &Engine{
		cart:      model.EmptyCart(),
		cartStore: cs,
		key:       key,
		logger:    logger,
	}
	e.Reload()
	return e
}

// Reload re-reads the persisted snapshot, discarding in-memory state.
// This is how a concurrent writer's change is picked up.
func (e *Engine) Reload() {
	loaded, err := e.cartStore.Load(e.key)
	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.logger.Warn("reload cart", "error", err)
		return
	}
	if loaded == nil {
		e.cart = model.EmptyCart()
		return
	}
	e.cart = *loaded
}

// OnChange registers an observer invoked with a snapshot after every
// mutation, which is how the cart badge stays current.
func (e *Engine) OnChange(fn func(model.Cart)) {
	e.mu.Lock()
	e.observers = append(e.observers, fn)
	e.mu.Unlock()
}

// AddItem merges item into the cart: an existing line for the same id
// has its quantity incremented, otherwise a new line is appended. An
// item without an id is a logged no-op.
func (e *Engine) AddItem(item model.MenuItem, quantity int, instructions string) {
	if item.ID == "" {
		e.logger.Warn("add item without id ignored", "name", item.Name)
		return
	}

	e.mu.Lock()
	found := false
	for i := range e.cart.Items {
		if e.cart.Items[i].ID == item.ID {
			e.cart.Items[i].Quantity += quantity
			e.cart.Items[i].Subtotal = float64(e.cart.Items[i].Quantity) * e.cart.Items[i].UnitPrice
			found = true
			break
		}
	}
	if !found {
		e.cart.Items = append(e.cart.Items, model.CartLine{
			ID:                  item.ID,
			Name:                item.Name,
			Quantity:            quantity,
			UnitPrice:           item.Price,
			Subtotal:            item.Price * float64(quantity),
			SpecialInstructions: instructions,
		})
	}
	e.commit()
}

// RemoveItem drops the line with the given id; absent ids are a no-op.
func (e *Engine) RemoveItem(id string) {
	e.mu.Lock()
	kept := e.cart.Items[:0]
	for _, line := range e.cart.Items {
		if line.ID != id {
			kept = append(kept, line)
		}
	}
	e.cart.Items = kept
	e.commit()
}

// UpdateQuantity sets the quantity of the line with the given id and
// recomputes its subtotal. The quantity is not clamped here; the UI
// layer enforces its 1–10 range before calling.
func (e *Engine) UpdateQuantity(id string, quantity int) {
	e.mu.Lock()
	for i := range e.cart.Items {
		if e.cart.Items[i].ID == id {
			e.cart.Items[i].Quantity = quantity
			e.cart.Items[i].Subtotal = float64(quantity) * e.cart.Items[i].UnitPrice
			break
		}
	}
	e.commit()
}

// UpdateInstructions replaces the special instructions on a line.
func (e *Engine) UpdateInstructions(id, instructions string) {
	e.mu.Lock()
	for i := range e.cart.Items {
		if e.cart.Items[i].ID == id {
			e.cart.Items[i].SpecialInstructions = instructions
			break
		}
	}
	e.commit()
}

// Clear resets to the empty cart value.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.cart = model.EmptyCart()
	e.commit()
}

// Cart returns a snapshot of the current cart.
func (e *Engine) Cart() model.Cart {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// IsEmpty reports whether the cart has no lines.
func (e *Engine) IsEmpty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.cart.Items) == 0
}

// commit recomputes totals, persists, and broadcasts. Called with the
// mutex held; releases it.
func (e *Engine) commit() {
	totalItems := 0
	for _, line := range e.cart.Items {
		totalItems += line.Quantity
	}
	e.cart.TotalItems = totalItems
	e.cart.TotalAmount = currency.Subtotal(e.cart.Items)

	snapshot := e.snapshotLocked()
	observers := append([]func(model.Cart){}, e.observers...)
	e.mu.Unlock()

	if err := e.cartStore.Save(e.key, snapshot); err != nil {
		e.logger.Warn("persist cart", "error", err)
	}
	for _, fn := range observers {
		fn(snapshot)
	}
}

func (e *Engine) snapshotLocked() model.Cart {
	items := make([]model.CartLine, len(e.cart.Items))
	copy(items, e.cart.Items)
	return model.Cart{
		Items:       items,
		TotalItems:  e.cart.TotalItems,
		TotalAmount: e.cart.TotalAmount,
	}
}
