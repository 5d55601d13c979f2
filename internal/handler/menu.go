package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/repository"
	ws "github.com/dmuriithi/campuscafe/internal/websocket"
)

type MenuHandler struct {
	repo   *repository.Repository
	hub    *ws.Hub
	logger *slog.Logger
}

func NewMenuHandler(repo *repository.Repository, hub *ws.Hub, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{repo: repo, hub: hub, logger: logger}
}

// List serves the catalog, optionally filtered by ?category=, ?q=
// (name/description substring, case-insensitive), and ?featured=true.
func (h *MenuHandler) List(w http.ResponseWriter, r *http.Request) {
	items := h.repo.MenuItems(r.Context())

	category := r.URL.Query().Get("category")
	query := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("q")))
	featured := r.URL.Query().Get("featured") == "true"

	filtered := make([]model.MenuItem, 0, len(items))
	for _, item := range items {
		if category != "" && string(item.Category) != category {
			continue
		}
		if featured && !item.Featured {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(item.Name), query) &&
			!strings.Contains(strings.ToLower(item.Description), query) {
			continue
		}
		filtered = append(filtered, item)
	}

	writeJSON(w, http.StatusOK, filtered)
}

func (h *MenuHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	item, err := h.repo.MenuItem(r.Context(), id)
	if err != nil {
		h.logger.Error("menu item lookup", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load menu item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "menu item not found")
		return
	}
	writeJSON(w, http.StatusOK, item)
}

type menuSaveRequest struct {
	ID           string             `json:"id"`
	Name         string             `json:"name"`
	Category     model.Category     `json:"category"`
	Price        *float64           `json:"price"`
	Description  string             `json:"description"`
	Ingredients  []string           `json:"ingredients"`
	ImageURL     string             `json:"imageUrl"`
	Availability model.Availability `json:"availability"`
	Featured     bool               `json:"featured"`
}

func (h *MenuHandler) Save(w http.ResponseWriter, r *http.Request) {
	var req menuSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	// Price must be present, not merely zero.
	if req.Price == nil {
		writeError(w, http.StatusBadRequest, repository.ErrInvalidMenuItem.Error())
		return
	}

	item := model.MenuItem{
		ID:           req.ID,
		Name:         req.Name,
		Category:     req.Category,
		Price:        *req.Price,
		Description:  req.Description,
		Ingredients:  req.Ingredients,
		ImageURL:     req.ImageURL,
		Availability: req.Availability,
		Featured:     req.Featured,
	}

	saved, err := h.repo.SaveMenuItem(r.Context(), item)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidMenuItem) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("save menu item", "id", item.ID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save menu item")
		return
	}

	h.hub.Broadcast(ws.NewMessage("menu", "saved", saved.ID, nil))
	writeJSON(w, http.StatusOK, saved)
}

func (h *MenuHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	if err := h.repo.DeleteMenuItem(r.Context(), id); err != nil {
		h.logger.Error("delete menu item", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete menu item")
		return
	}

	h.hub.Broadcast(ws.NewMessage("menu", "deleted", id, nil))
	w.WriteHeader(http.StatusNoContent)
}
