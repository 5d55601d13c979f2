package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/dmuriithi/campuscafe/internal/store"
)

// editableSettings are the preference keys the settings endpoints accept.
var editableSettings = map[string]bool{
	store.KeyDarkMode:          true,
	store.KeyPreferredCurrency: true,
}

type SettingsHandler struct {
	settings *store.SettingsStore
	logger   *slog.Logger
}

func NewSettingsHandler(settings *store.SettingsStore, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// Get serves all editable preferences. Unset keys are omitted.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	out := make(map[string]string)
	for key := range editableSettings {
		v, err := h.settings.Get(key)
		if err != nil {
			h.logger.Error("read setting", "key", key, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to load settings")
			return
		}
		if v != "" {
			out[key] = v
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *SettingsHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req map[string]string
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	for key, value := range req {
		if !editableSettings[key] {
			writeError(w, http.StatusBadRequest, "unknown setting: "+key)
			return
		}
		if err := h.settings.Set(key, value); err != nil {
			h.logger.Error("write setting", "key", key, "error", err)
			writeError(w, http.StatusInternalServerError, "failed to save settings")
			return
		}
	}
	h.Get(w, r)
}
