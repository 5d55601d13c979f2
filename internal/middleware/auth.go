package middleware

import (
	"net/http"

	"github.com/dmuriithi/campuscafe/internal/auth"
)

// RequireAdmin runs the auth resolver against every request and admits
// only granted ones, populating AuthContext with the granting strategy.
// Denied requests get a 401; the middleware only ever fronts the
// /api/admin/ mux, so there is no page surface to redirect to.
func RequireAdmin(resolver *auth.Resolver, provider auth.Provider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			granted, strategy := resolver.Authorize(r.Context())
			if !granted {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ac := auth.AuthContext{Strategy: strategy}
			if p := provider.CurrentPrincipal(); p != nil {
				ac.Email = p.Email
			}

			ctx := auth.WithAuth(r.Context(), ac)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
