package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/store"
)

// forcedOverride grants unconditionally when the forced-auth flag is
// set — the escape hatch for identity-provider outages.
type forcedOverride struct {
	settings *store.SettingsStore
}

func (s *forcedOverride) Name() string { return "forced-override" }

func (s *forcedOverride) Evaluate(_ context.Context) Decision {
	v, err := s.settings.Get(store.KeyForcedAdminAuth)
	if err == nil && v == "true" {
		return Grant
	}
	return Abstain
}

// providerSession grants when the provider has a current principal AND
// the local session record matches it, carries the admin flag, and is
// unexpired. A grant refreshes the session timestamp (sliding
// expiration); an expired record is removed.
type providerSession struct {
	provider Provider
	sessions *store.SessionStore
	logger   *slog.Logger
	now      func() time.Time
}

func (s *providerSession) Name() string { return "provider-session" }

func (s *providerSession) Evaluate(_ context.Context) Decision {
	principal := s.provider.CurrentPrincipal()
	if principal == nil {
		return Abstain
	}

	sess, err := s.sessions.Load()
	if err != nil {
		s.logger.Warn("load admin session", "error", err)
		return Deny
	}
	if sess == nil {
		return Deny // authenticated, but not as admin
	}
	if sess.Email != principal.Email || !sess.IsAdmin {
		return Deny
	}
	if sess.Age(s.now()) > SessionTTL(sess.Email) {
		if err := s.sessions.Clear(); err != nil {
			s.logger.Warn("clear expired session", "error", err)
		}
		return Deny
	}

	sess.Timestamp = s.now().UnixMilli()
	if err := s.sessions.Save(*sess); err != nil {
		s.logger.Warn("refresh admin session", "error", err)
	}
	return Grant
}

// fallbackDefaultAdmin applies only when the provider reports no
// principal at all: a valid local session for the distinguished default
// admin is accepted, with its longer expiry window. A successful grant
// sets the forced-override flag so subsequent checks short-circuit.
type fallbackDefaultAdmin struct {
	provider Provider
	sessions *store.SessionStore
	settings *store.SettingsStore
	logger   *slog.Logger
	now      func() time.Time
}

func (s *fallbackDefaultAdmin) Name() string { return "fallback-default-admin" }

func (s *fallbackDefaultAdmin) Evaluate(_ context.Context) Decision {
	if s.provider.CurrentPrincipal() != nil {
		return Abstain
	}

	sess, err := s.sessions.Load()
	if err != nil || sess == nil {
		return Deny
	}
	if !validFallbackSession(sess) {
		return Deny
	}
	if sess.Age(s.now()) > DefaultAdminSessionTTL {
		if err := s.sessions.Clear(); err != nil {
			s.logger.Warn("clear expired session", "error", err)
		}
		return Deny
	}

	if err := s.settings.Set(store.KeyForcedAdminAuth, "true"); err != nil {
		s.logger.Warn("set forced auth flag", "error", err)
	}
	return Grant
}

func validFallbackSession(sess *model.AdminSession) bool {
	if sess.Email == "" || !sess.IsAdmin || sess.Timestamp == 0 {
		return false
	}
	return sess.Email == DefaultAdminEmail
}
