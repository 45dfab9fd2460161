package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vfg2006/campaign-manager-api/internal/usecases/authenticating"
)

type contextKey string

const (
	// ContextKeyTenant guarda as claims do tenant autenticado no contexto
	ContextKeyTenant contextKey = "tenant"
)

// Rotas servidas sem token
var publicPaths = map[string]struct{}{
	"/v1/login":      {},
	"/v1/businesses": {},
	"/healthcheck":   {},
}

func AuthMiddleware(authService authenticating.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := publicPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header is required", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			if tokenString == authHeader {
				http.Error(w, "Bearer token is required", http.StatusUnauthorized)
				return
			}

			claims, err := authService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyTenant, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
