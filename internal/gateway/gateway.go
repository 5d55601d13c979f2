// Package gateway abstracts the remote key-path store that holds all
// shared business state (menu, orders, messages, admin accounts, users).
// Values are addressed by slash-separated paths and stored as JSON.
package gateway

import (
	"context"
	"strings"
)

// Gateway is the remote store contract. Reads return (nil, nil) when the
// path does not exist. Delete is idempotent.
type Gateway interface {
	// Get reads the raw JSON value at path.
	Get(ctx context.Context, path string) ([]byte, error)
	// Set writes value (JSON-marshaled) at path, replacing any existing value.
	Set(ctx context.Context, path string, value any) error
	// Update merges partial into the existing object at path.
	Update(ctx context.Context, path string, partial map[string]any) error
	// Delete removes the value at path.
	Delete(ctx context.Context, path string) error
	// Push reserves a generated child key under path. The caller writes
	// the value (typically containing its own key) with Set.
	Push(ctx context.Context, path string) (string, error)
	// List returns all direct children of a collection path, keyed by child key.
	List(ctx context.Context, path string) (map[string][]byte, error)
	// Subscribe invokes onChange whenever anything under path changes.
	// The returned cancel func stops the subscription.
	Subscribe(ctx context.Context, path string, onChange func()) (func(), error)
}

// SanitizeEmail makes an email usable as a path segment. Dots conflict
// with path handling, so they are stored as commas.
func SanitizeEmail(email string) string {
	return strings.ReplaceAll(email, ".", ",")
}

// UnsanitizeEmail reverses SanitizeEmail.
func UnsanitizeEmail(key string) string {
	return strings.ReplaceAll(key, ",", ".")
}

// Collection roots used by the repository layer.
const (
	MenuRoot     = "menu"
	OrdersRoot   = "orders"
	MessagesRoot = "messages"
	AdminRoot    = "admin"
	UsersRoot    = "users"
)

func MenuPath(id string) string      { return MenuRoot + "/" + id }
func OrderPath(id string) string     { return OrdersRoot + "/" + id }
func MessagePath(id string) string   { return MessagesRoot + "/" + id }
func UserPath(uid string) string     { return UsersRoot + "/" + uid }
func AdminPath(email string) string  { return AdminRoot + "/" + SanitizeEmail(email) }

// root returns the top-level collection of a path, used to scope change
// notifications.
func root(path string) string {
	if i := strings.IndexByte(path, '/'); i > 0 {
		return path[:i]
	}
	return path
}
