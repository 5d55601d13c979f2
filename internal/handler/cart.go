package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmuriithi/campuscafe/internal/cart"
	"github.com/dmuriithi/campuscafe/internal/currency"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/repository"
)

type CartHandler struct {
	engine *cart.Engine
	repo   *repository.Repository
	logger *slog.Logger
}

func NewCartHandler(engine *cart.Engine, repo *repository.Repository, logger *slog.Logger) *CartHandler {
	return &CartHandler{engine: engine, repo: repo, logger: logger}
}

type cartAddRequest struct {
	ItemID              string `json:"itemId"`
	Quantity            int    `json:"quantity"`
	SpecialInstructions string `json:"specialInstructions"`
}

type cartUpdateRequest struct {
	Quantity            *int    `json:"quantity"`
	SpecialInstructions *string `json:"specialInstructions"`
}

// cartResponse pairs the cart snapshot with its formatted total so
// clients render the amount without duplicating currency rules.
type cartResponse struct {
	Cart         model.Cart `json:"cart"`
	TotalDisplay string     `json:"totalDisplay"`
}

func (h *CartHandler) respond(w http.ResponseWriter) {
	c := h.engine.Cart()
	writeJSON(w, http.StatusOK, cartResponse{Cart: c, TotalDisplay: currency.Format(c.TotalAmount)})
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.respond(w)
}

// Add resolves the menu item and merges it into the cart. Quantity
// defaults to 1.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req cartAddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if req.ItemID == "" {
		writeError(w, http.StatusBadRequest, "itemId is required")
		return
	}
	if req.Quantity <= 0 {
		req.Quantity = 1
	}

	item, err := h.repo.MenuItem(r.Context(), req.ItemID)
	if err != nil {
		h.logger.Error("cart add lookup", "id", req.ItemID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load menu item")
		return
	}
	if item == nil {
		// Fall back to the catalog view so cached items stay orderable.
		for _, m := range h.repo.MenuItems(r.Context()) {
			if m.ID == req.ItemID {
				item = &m
				break
			}
		}
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	h.engine.AddItem(*item, req.Quantity, req.SpecialInstructions)
	h.respond(w)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req cartUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	if req.Quantity != nil {
		h.engine.UpdateQuantity(id, *req.Quantity)
	}
	if req.SpecialInstructions != nil {
		h.engine.UpdateInstructions(id, *req.SpecialInstructions)
	}
	h.respond(w)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	h.engine.RemoveItem(r.PathValue("id"))
	h.respond(w)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.engine.Clear()
	h.respond(w)
}
