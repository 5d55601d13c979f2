package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/order"
	"github.com/dmuriithi/campuscafe/internal/repository"
	ws "github.com/dmuriithi/campuscafe/internal/websocket"
)

type OrderHandler struct {
	orders *order.Service
	repo   *repository.Repository
	hub    *ws.Hub
	logger *slog.Logger
}

func NewOrderHandler(orders *order.Service, repo *repository.Repository, hub *ws.Hub, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, repo: repo, hub: hub, logger: logger}
}

func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req order.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	conf, err := h.orders.Checkout(r.Context(), req)
	if err != nil {
		h.respondPlacementError(w, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("orders", "created", conf.Order.ID, nil))
	writeJSON(w, http.StatusCreated, conf)
}

type orderNowRequest struct {
	ItemID   string `json:"itemId"`
	Quantity int    `json:"quantity"`
	order.CheckoutRequest
}

func (h *OrderHandler) OrderNow(w http.ResponseWriter, r *http.Request) {
	var req orderNowRequest
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
		h.logger.Error("order-now lookup", "id", req.ItemID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load menu item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}

	conf, err := h.orders.OrderNow(r.Context(), *item, req.Quantity, req.CheckoutRequest)
	if err != nil {
		h.respondPlacementError(w, err)
		return
	}

	h.hub.Broadcast(ws.NewMessage("orders", "created", conf.Order.ID, nil))
	writeJSON(w, http.StatusCreated, conf)
}

func (h *OrderHandler) respondPlacementError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, order.ErrEmptyCart),
		errors.Is(err, order.ErrInvalidCheckout),
		errors.Is(err, order.ErrInvalidQuantity):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("place order", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to place order")
	}
}

// List serves the caller's archived orders for the tracking page,
// filtered by ?user=.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.LocalOrders(r.URL.Query().Get("user"))
	if err != nil {
		h.logger.Error("list local orders", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	o, err := h.orders.Order(r.Context(), id)
	if err != nil {
		h.logger.Error("order lookup", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load order")
		return
	}
	if o == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// AdminList serves all remote orders, newest first.
func (h *OrderHandler) AdminList(w http.ResponseWriter, r *http.Request) {
	orders, err := h.repo.Orders(r.Context())
	if err != nil {
		h.logger.Error("list orders", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

type statusRequest struct {
	Status model.OrderStatus `json:"status"`
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req statusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if !req.Status.Known() {
		writeError(w, http.StatusBadRequest, "unknown status")
		return
	}

	updated, err := h.orders.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		h.logger.Error("update order status", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to update order")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}

	h.hub.Broadcast(ws.NewMessage("orders", "updated", id, map[string]any{
		"status": string(req.Status),
	}))
	writeJSON(w, http.StatusOK, updated)
}
