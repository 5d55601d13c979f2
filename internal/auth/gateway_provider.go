package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
)

// GatewayProvider implements Provider against the remote store: admin
// credentials live under admin/{sanitizedEmail}, customer accounts under
// users/{uid}, both with bcrypt password hashes. The current principal
// is per-instance state.
type GatewayProvider struct {
	gw     gateway.Gateway
	logger *slog.Logger

	mu        sync.Mutex
	current   *Principal
	listeners map[int]func(*Principal)
	nextID    int
}

func NewGatewayProvider(gw gateway.Gateway, logger *slog.Logger) *GatewayProvider {
	return &GatewayProvider{
		gw:        gw,
		logger:    logger,
		listeners: make(map[int]func(*Principal)),
	}
}

func (p *GatewayProvider) SignIn(ctx context.Context, email, password string) (*Principal, error) {
	// Admin accounts first; the admin collection is small.
	data, err := p.gw.Get(ctx, gateway.AdminPath(email))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if data != nil {
		var acct model.AdminAccount
		if err := json.Unmarshal(data, &acct); err != nil {
			return nil, fmt.Errorf("malformed admin record for %s: %w", email, err)
		}
		if bcrypt.CompareHashAndPassword([]byte(acct.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		principal := &Principal{UID: gateway.SanitizeEmail(email), Email: email, DisplayName: "Admin"}
		p.setCurrent(principal)
		return principal, nil
	}

	// Customer accounts are keyed by uid; match on email.
	users, err := p.gw.List(ctx, gateway.UsersRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for uid, raw := range users {
		var rec struct {
			model.User
			PasswordHash string `json:"passwordHash"`
			Disabled     bool   `json:"disabled,omitempty"`
		}
		if err := json.Unmarshal(raw, &rec); err != nil {
			p.logger.Warn("skipping malformed user record", "uid", uid)
			continue
		}
		if rec.Email != email {
			continue
		}
		if rec.Disabled {
			return nil, ErrUserDisabled
		}
		if bcrypt.CompareHashAndPassword([]byte(rec.PasswordHash), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		principal := &Principal{UID: uid, Email: email, DisplayName: rec.Name, PhotoURL: rec.PhotoURL}
		p.recordLogin(ctx, uid)
		p.setCurrent(principal)
		return principal, nil
	}

	return nil, ErrInvalidCredentials
}

func (p *GatewayProvider) CreateAccount(ctx context.Context, email, password string) (*Principal, error) {
	// Reject if the email is already taken, as admin or customer.
	if data, err := p.gw.Get(ctx, gateway.AdminPath(email)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	} else if data != nil {
		return nil, ErrAccountExists
	}

	users, err := p.gw.List(ctx, gateway.UsersRoot)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	for _, raw := range users {
		var rec model.User
		if json.Unmarshal(raw, &rec) == nil && rec.Email == email {
			return nil, ErrAccountExists
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	uid := uuid.NewString()
	record := map[string]any{
		"uid":          uid,
		"email":        email,
		"name":         "Campus Cafe User",
		"passwordHash": string(hash),
		"lastLogin":    time.Now().UTC().Format(time.RFC3339),
	}
	if err := p.gw.Set(ctx, gateway.UserPath(uid), record); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	principal := &Principal{UID: uid, Email: email, DisplayName: "Campus Cafe User"}
	p.setCurrent(principal)
	return principal, nil
}

func (p *GatewayProvider) SignOut(_ context.Context) error {
	p.setCurrent(nil)
	return nil
}

func (p *GatewayProvider) CurrentPrincipal() *Principal {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current == nil {
		return nil
	}
	c := *p.current
	return &c
}

func (p *GatewayProvider) OnPrincipalChanged(fn func(*Principal)) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	current := p.current
	p.mu.Unlock()

	fn(current)

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

func (p *GatewayProvider) setCurrent(principal *Principal) {
	p.mu.Lock()
	p.current = principal
	listeners := make([]func(*Principal), 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	for _, fn := range listeners {
		fn(principal)
	}
}

// recordLogin bumps the user's lastLogin stamp, best-effort.
func (p *GatewayProvider) recordLogin(ctx context.Context, uid string) {
	err := p.gw.Update(ctx, gateway.UserPath(uid), map[string]any{
		"lastLogin": time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		p.logger.Warn("record last login", "uid", uid, "error", err)
	}
}
