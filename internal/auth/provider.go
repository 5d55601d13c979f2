// Package auth holds the identity provider and the admin authorization
// resolver.
package auth

import "context"

// The distinguished default admin identity. It gets an extended session
// lifetime and is the only identity eligible for fallback login when the
// provider reports no principal.
const (
	DefaultAdminEmail    = "campuscafe@embuni.ac.ke"
	DefaultAdminPassword = "CcAdmin123."
)

// Principal is an authenticated identity.
type Principal struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName,omitempty"`
	PhotoURL    string `json:"photoURL,omitempty"`
}

// Provider is the identity-provider contract: email/password sign-in,
// account creation, and a nullable current principal with change
// notifications.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (*Principal, error)
	CreateAccount(ctx context.Context, email, password string) (*Principal, error)
	SignOut(ctx context.Context) error
	// CurrentPrincipal returns the signed-in identity, or nil.
	CurrentPrincipal() *Principal
	// OnPrincipalChanged registers a callback fired on every sign-in and
	// sign-out. The callback receives the new principal (nil on sign-out)
	// and is also invoked immediately with the current state. Returns an
	// unsubscribe func.
	OnPrincipalChanged(fn func(*Principal)) func()
}
