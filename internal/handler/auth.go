package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/dmuriithi/campuscafe/internal/auth"
	"github.com/dmuriithi/campuscafe/internal/repository"
)

type AuthHandler struct {
	provider auth.Provider
	resolver *auth.Resolver
	repo     *repository.Repository
	logger   *slog.Logger
}

func NewAuthHandler(provider auth.Provider, resolver *auth.Resolver, repo *repository.Repository, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{provider: provider, resolver: resolver, repo: repo, logger: logger}
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) decodeCredentials(w http.ResponseWriter, r *http.Request) (credentialsRequest, bool) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return req, false
	}
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return req, false
	}
	return req, true
}

// SignIn authenticates a customer and returns the principal.
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	principal, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, principal)
}

// SignUp creates a customer account and signs it in.
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	principal, err := h.provider.CreateAccount(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, principal)
}

func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	if err := h.provider.SignOut(r.Context()); err != nil {
		h.logger.Warn("sign out", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdminLogin authenticates against the provider and establishes the
// local admin session on success.
func (h *AuthHandler) AdminLogin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeCredentials(w, r)
	if !ok {
		return
	}

	principal, err := h.provider.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		h.respondAuthError(w, err)
		return
	}

	// The credentials must belong to an admin account, not just any
	// signed-in identity.
	account, err := h.repo.AdminByEmail(r.Context(), principal.Email)
	if err != nil {
		h.logger.Error("admin account lookup", "email", principal.Email, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to verify admin account")
		return
	}
	if account == nil {
		h.logger.Warn("admin login rejected, no admin record", "email", principal.Email)
		if err := h.provider.SignOut(r.Context()); err != nil {
			h.logger.Warn("sign out after rejected admin login", "error", err)
		}
		writeError(w, http.StatusUnauthorized, "Admin account not found.")
		return
	}

	if err := h.resolver.EstablishSession(principal.Email); err != nil {
		h.logger.Error("establish admin session", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to start session")
		return
	}

	h.logger.Info("admin login", "email", principal.Email)
	writeJSON(w, http.StatusOK, principal)
}

func (h *AuthHandler) AdminLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.resolver.Logout(r.Context()); err != nil {
		h.logger.Error("admin logout", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to log out")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AuthHandler) respondAuthError(w http.ResponseWriter, err error) {
	status := http.StatusUnauthorized
	switch {
	case errors.Is(err, auth.ErrAccountExists):
		status = http.StatusConflict
	case errors.Is(err, auth.ErrUnavailable):
		status = http.StatusServiceUnavailable
	}
	writeError(w, status, auth.Message(err))
}
