package auth

import "context"

type contextKey struct{}

// AuthContext records how the current request was authorized.
type AuthContext struct {
	Email    string // principal email, if the provider knew one
	Strategy string // name of the granting strategy
}

func WithAuth(ctx context.Context, ac AuthContext) context.Context {
	return context.WithValue(ctx, contextKey{}, ac)
}

func FromContext(ctx context.Context) (AuthContext, bool) {
	ac, ok := ctx.Value(contextKey{}).(AuthContext)
	return ac, ok
}

// IsAdmin reports whether the request passed the admin resolver.
func IsAdmin(ctx context.Context) bool {
	_, ok := FromContext(ctx)
	return ok
}
