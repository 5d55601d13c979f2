package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/repository"
)

type MessageHandler struct {
	repo   *repository.Repository
	logger *slog.Logger
}

func NewMessageHandler(repo *repository.Repository, logger *slog.Logger) *MessageHandler {
	return &MessageHandler{repo: repo, logger: logger}
}

func (h *MessageHandler) Create(w http.ResponseWriter, r *http.Request) {
	var m model.Message
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	m.Name = strings.TrimSpace(m.Name)
	m.Email = strings.TrimSpace(m.Email)
	m.Body = strings.TrimSpace(m.Body)

	saved, err := h.repo.SaveMessage(r.Context(), m)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidMessage) {
			writeError(w, http.StatusBadRequest, "name, email, and message are required")
			return
		}
		h.logger.Error("save message", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to send message")
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	msgs, err := h.repo.Messages(r.Context())
	if err != nil {
		h.logger.Error("list messages", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if msgs == nil {
		msgs = []model.Message{}
	}
	writeJSON(w, http.StatusOK, msgs)
}
