package handler

import (
	"log/slog"
	"net/http"

	"github.com/dmuriithi/campuscafe/internal/dashboard"
)

type DashboardHandler struct {
	stats  *dashboard.Service
	logger *slog.Logger
}

func NewDashboardHandler(stats *dashboard.Service, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{stats: stats, logger: logger}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.stats.Stats(r.Context())
	if err != nil {
		h.logger.Error("dashboard stats", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load dashboard")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
