package auth

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/dmuriithi/campuscafe/internal/database"
	"github.com/dmuriithi/campuscafe/internal/model"
	"github.com/dmuriithi/campuscafe/internal/store"
)

// fakeProvider is a Provider with a settable current principal.
type fakeProvider struct {
	principal *Principal
	signedOut bool
}

func (f *fakeProvider) SignIn(context.Context, string, string) (*Principal, error) {
	return nil, ErrInvalidCredentials
}
func (f *fakeProvider) CreateAccount(context.Context, string, string) (*Principal, error) {
	return nil, ErrUnavailable
}
func (f *fakeProvider) SignOut(context.Context) error {
	f.principal = nil
	f.signedOut = true
	return nil
}
func (f *fakeProvider) CurrentPrincipal() *Principal             { return f.principal }
func (f *fakeProvider) OnPrincipalChanged(func(*Principal)) func() { return func() {} }

func setupResolver(t *testing.T, p Provider) (*Resolver, *store.SessionStore, *store.SettingsStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	sessions := store.NewSessionStore(db)
	settings := store.NewSettingsStore(db)
	return NewResolver(p, sessions, settings, slog.Default()), sessions, settings
}

func TestDeniedWithNoSignals(t *testing.T) {
	r, _, _ := setupResolver(t, &fakeProvider{})

	granted, by := r.Authorize(context.Background())
	if granted {
		t.Errorf("granted by %q, want denied", by)
	}
}

func TestForcedOverrideGrants(t *testing.T) {
	r, _, settings := setupResolver(t, &fakeProvider{})
	settings.Set(store.KeyForcedAdminAuth, "true")

	granted, by := r.Authorize(context.Background())
	if !granted {
		t.Fatal("expected grant")
	}
	if by != "forced-override" {
		t.Errorf("granted by %q, want forced-override", by)
	}
}

func TestForcedOverrideIgnoresOtherValues(t *testing.T) {
	r, _, settings := setupResolver(t, &fakeProvider{})
	settings.Set(store.KeyForcedAdminAuth, "yes")

	if granted, _ := r.Authorize(context.Background()); granted {
		t.Error("flag values other than \"true\" must not grant")
	}
}

func TestProviderSessionGrantsAndSlides(t *testing.T) {
	p := &fakeProvider{principal: &Principal{Email: "staff@example.com"}}
	r, sessions, _ := setupResolver(t, p)

	old := time.Now().Add(-2 * time.Hour).UnixMilli()
	sessions.Save(model.AdminSession{Email: "staff@example.com", IsAdmin: true, Timestamp: old})

	granted, by := r.Authorize(context.Background())
	if !granted {
		t.Fatal("expected grant")
	}
	if by != "provider-session" {
		t.Errorf("granted by %q, want provider-session", by)
	}

	// Sliding expiration: the timestamp must have been refreshed.
	sess, _ := sessions.Load()
	if sess.Timestamp <= old {
		t.Errorf("timestamp = %d, want refreshed past %d", sess.Timestamp, old)
	}
}

func TestProviderSessionEmailMismatchDenies(t *testing.T) {
	p := &fakeProvider{principal: &Principal{Email: "staff@example.com"}}
	r, sessions, _ := setupResolver(t, p)

	sessions.Save(model.AdminSession{Email: "other@example.com", IsAdmin: true, Timestamp: time.Now().UnixMilli()})

	if granted, _ := r.Authorize(context.Background()); granted {
		t.Error("session for a different email must not grant")
	}
}

func TestProviderSessionNotAdminDenies(t *testing.T) {
	p := &fakeProvider{principal: &Principal{Email: "staff@example.com"}}
	r, sessions, _ := setupResolver(t, p)

	sessions.Save(model.AdminSession{Email: "staff@example.com", IsAdmin: false, Timestamp: time.Now().UnixMilli()})

	if granted, _ := r.Authorize(context.Background()); granted {
		t.Error("session without the admin flag must not grant")
	}
}

func TestExpiredStandardSessionDenies(t *testing.T) {
	p := &fakeProvider{principal: &Principal{Email: "staff@example.com"}}
	r, sessions, _ := setupResolver(t, p)

	stale := time.Now().Add(-25 * time.Hour).UnixMilli()
	sessions.Save(model.AdminSession{Email: "staff@example.com", IsAdmin: true, Timestamp: stale})

	if granted, _ := r.Authorize(context.Background()); granted {
		t.Fatal("expired session must not grant even with isAdmin true")
	}

	// The expired record is removed.
	sess, _ := sessions.Load()
	if sess != nil {
		t.Error("expired session record should have been cleared")
	}
}

func TestDefaultAdminGetsExtendedWindow(t *testing.T) {
	p := &fakeProvider{principal: &Principal{Email: DefaultAdminEmail}}
	r, sessions, _ := setupResolver(t, p)

	// 3 days old: past the standard 24h window, inside the 7-day one.
	stamp := time.Now().Add(-72 * time.Hour).UnixMilli()
	sessions.Save(model.AdminSession{Email: DefaultAdminEmail, IsAdmin: true, Timestamp: stamp})

	if granted, _ := r.Authorize(context.Background()); !granted {
		t.Error("default admin session inside the 7-day window must grant")
	}
}

func TestFallbackDefaultAdmin(t *testing.T) {
	r, sessions, settings := setupResolver(t, &fakeProvider{}) // no principal

	sessions.Save(model.AdminSession{Email: DefaultAdminEmail, IsAdmin: true, Timestamp: time.Now().UnixMilli()})

	granted, by := r.Authorize(context.Background())
	if !granted {
		t.Fatal("expected fallback grant")
	}
	if by != "fallback-default-admin" {
		t.Errorf("granted by %q, want fallback-default-admin", by)
	}

	// A fallback grant sets the forced flag so the next load
	// short-circuits on rule one.
	v, _ := settings.Get(store.KeyForcedAdminAuth)
	if v != "true" {
		t.Errorf("forced flag = %q, want true", v)
	}
}

func TestFallbackRejectsOtherEmails(t *testing.T) {
	r, sessions, _ := setupResolver(t, &fakeProvider{})

	sessions.Save(model.AdminSession{Email: "staff@example.com", IsAdmin: true, Timestamp: time.Now().UnixMilli()})

	if granted, _ := r.Authorize(context.Background()); granted {
		t.Error("fallback must only accept the default admin email")
	}
}

func TestFallbackExpiredDenies(t *testing.T) {
	r, sessions, _ := setupResolver(t, &fakeProvider{})

	stale := time.Now().Add(-8 * 24 * time.Hour).UnixMilli()
	sessions.Save(model.AdminSession{Email: DefaultAdminEmail, IsAdmin: true, Timestamp: stale})

	if granted, _ := r.Authorize(context.Background()); granted {
		t.Error("fallback session older than 7 days must not grant")
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	p := &fakeProvider{principal: &Principal{Email: DefaultAdminEmail}}
	r, sessions, settings := setupResolver(t, p)

	sessions.Save(model.AdminSession{Email: DefaultAdminEmail, IsAdmin: true, Timestamp: time.Now().UnixMilli()})
	settings.Set(store.KeyForcedAdminAuth, "true")

	if err := r.Logout(context.Background()); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if sess, _ := sessions.Load(); sess != nil {
		t.Error("session record should be cleared on logout")
	}
	if v, _ := settings.Get(store.KeyForcedAdminAuth); v != "" {
		t.Error("forced flag should be cleared on logout")
	}
	if !p.signedOut {
		t.Error("provider sign-out should be attempted")
	}
	if granted, _ := r.Authorize(context.Background()); granted {
		t.Error("access must be denied after logout")
	}
}

func TestEstablishSession(t *testing.T) {
	r, sessions, _ := setupResolver(t, &fakeProvider{principal: &Principal{Email: "staff@example.com"}})

	if err := r.EstablishSession("staff@example.com"); err != nil {
		t.Fatalf("establish: %v", err)
	}
	sess, _ := sessions.Load()
	if sess == nil || !sess.IsAdmin || sess.Email != "staff@example.com" {
		t.Fatalf("session = %+v, want admin session for staff@example.com", sess)
	}

	if granted, _ := r.Authorize(context.Background()); !granted {
		t.Error("freshly established session must grant")
	}
}
