package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/store"
)

// Session lifetimes. The default admin gets the extended window.
const (
	StandardSessionTTL     = 24 * time.Hour
	DefaultAdminSessionTTL = 7 * 24 * time.Hour
)

// SessionTTL returns the expiry window that applies to a session for the
// given email.
func SessionTTL(email string) time.Duration {
	if email == DefaultAdminEmail {
		return DefaultAdminSessionTTL
	}
	return StandardSessionTTL
}

// Decision is one strategy's verdict. Abstain means the strategy's
// signal is not present; Deny means the signal is present but rejects.
// Either way evaluation continues — access is granted if any strategy
// grants, denied only when none does.
type Decision int

const (
	Abstain Decision = iota
	Grant
	Deny
)

func (d Decision) String() string {
	switch d {
	case Grant:
		return "grant"
	case Deny:
		return "deny"
	default:
		return "abstain"
	}
}

// Strategy is one independent admin-authorization signal.
type Strategy interface {
	Name() string
	Evaluate(ctx context.Context) Decision
}

// Resolver decides whether the current session is an authenticated admin
// by evaluating a priority-ordered list of strategies.
type Resolver struct {
	strategies []Strategy
	provider   Provider
	sessions   *store.SessionStore
	settings   *store.SettingsStore
	logger     *slog.Logger
}

// NewResolver wires the standard strategy chain: forced override, then
// provider-backed session, then the local-only default-admin fallback.
func NewResolver(provider Provider, sessions *store.SessionStore, settings *store.SettingsStore, logger *slog.Logger) *Resolver {
	now := time.Now
	return &Resolver{
		strategies: []Strategy{
			&forcedOverride{settings: settings},
			&providerSession{provider: provider, sessions: sessions, logger: logger, now: now},
			&fallbackDefaultAdmin{provider: provider, sessions: sessions, settings: settings, logger: logger, now: now},
		},
		provider: provider,
		sessions: sessions,
		settings: settings,
		logger:   logger,
	}
}

// Authorize evaluates the chain in order and returns whether access is
// granted, plus the name of the granting strategy.
func (r *Resolver) Authorize(ctx context.Context) (bool, string) {
	for _, s := range r.strategies {
		d := s.Evaluate(ctx)
		r.logger.Debug("auth strategy", "strategy", s.Name(), "decision", d.String())
		if d == Grant {
			return true, s.Name()
		}
	}
	return false, ""
}

// EstablishSession records a fresh admin session for email, as done
// after a successful admin login.
func (r *Resolver) EstablishSession(email string) error {
	return r.sessions.Save(model.AdminSession{
		Email:     email,
		IsAdmin:   true,
		Timestamp: time.Now().UnixMilli(),
	})
}

// Logout clears the local session record and the forced-override flag,
// then signs out of the provider best-effort: a provider failure must
// never leave the local session behind.
func (r *Resolver) Logout(ctx context.Context) error {
	if err := r.sessions.Clear(); err != nil {
		return err
	}
	if err := r.settings.Delete(store.KeyForcedAdminAuth); err != nil {
		return err
	}
	if err := r.provider.SignOut(ctx); err != nil {
		r.logger.Warn("provider sign-out", "error", err)
	}
	return nil
}
