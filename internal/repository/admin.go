package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dmuriithi/campuscafe/internal/auth"
	"github.com/dmuriithi/campuscafe/internal/gateway"
	"github.com/dmuriithi/campuscafe/internal/model"
)

// Admin returns the first admin account on record, or (nil, nil) when
// the collection is empty.
func (r *Repository) Admin(ctx context.Context) (*model.AdminAccount, error) {
	raw, err := r.gw.List(ctx, gateway.AdminRoot)
	if err != nil {
		return nil, err
	}
	for key, data := range raw {
		var a model.AdminAccount
		if err := json.Unmarshal(data, &a); err != nil {
			r.logger.Warn("skipping malformed admin record", "key", key, "error", err)
			continue
		}
		if a.Email == "" {
			a.Email = gateway.UnsanitizeEmail(key)
		}
		return &a, nil
	}
	return nil, nil
}

// AdminByEmail fetches a single admin account. Absent emails return
// (nil, nil).
func (r *Repository) AdminByEmail(ctx context.Context, email string) (*model.AdminAccount, error) {
	data, err := r.gw.Get(ctx, gateway.AdminPath(email))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var a model.AdminAccount
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("malformed admin record %s: %w", email, err)
	}
	if a.Email == "" {
		a.Email = email
	}
	return &a, nil
}

// SaveAdmin validates and writes the account record under the
// sanitized-email key.
func (r *Repository) SaveAdmin(ctx context.Context, a model.AdminAccount) error {
	if a.Email == "" || a.PasswordHash == "" {
		return ErrInvalidAdmin
	}
	if a.Role == "" {
		a.Role = "admin"
	}
	if a.Created == 0 {
		a.Created = time.Now().UnixMilli()
	}
	return r.gw.Set(ctx, gateway.AdminPath(a.Email), a)
}

// Users lists all customer identities.
func (r *Repository) Users(ctx context.Context) ([]model.User, error) {
	raw, err := r.gw.List(ctx, gateway.UsersRoot)
	if err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(raw))
	for uid, data := range raw {
		var u model.User
		if err := json.Unmarshal(data, &u); err != nil {
			r.logger.Warn("skipping malformed user record", "uid", uid, "error", err)
			continue
		}
		if u.UID == "" {
			u.UID = uid
		}
		users = append(users, u)
	}
	return users, nil
}

// seedDefaultAdmin creates the built-in admin account if the admin
// collection is empty. Existing accounts are never touched.
func (r *Repository) seedDefaultAdmin(ctx context.Context) error {
	existing, err := r.gw.List(ctx, gateway.AdminRoot)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(auth.DefaultAdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	account := model.AdminAccount{
		Email:        auth.DefaultAdminEmail,
		PasswordHash: string(hash),
		Role:         "admin",
		Created:      time.Now().UnixMilli(),
	}
	if err := r.gw.Set(ctx, gateway.AdminPath(account.Email), account); err != nil {
		return err
	}
	r.logger.Info("seeded default admin account", "email", account.Email)
	return nil
}
