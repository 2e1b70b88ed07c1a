package rest

import (
	"context"
	"net/http"
	"strings"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

// TokenParser - проверка bearer-токена платформы.
type TokenParser interface {
	Parse(ctx context.Context, token string) (domain.Identity, error)
}

// IdentityMiddleware определяет текущего пользователя.
// Портал публичный: без токена или с плохим токеном запрос идет от гостя.
func IdentityMiddleware(parser TokenParser) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			identity := domain.AnonymousIdentity()

			if raw := bearerToken(r); raw != "" {
				parsed, err := parser.Parse(ctx, raw)
				if err != nil {
					contextkeys.LoggerFromContext(ctx).Warn("Bearer token rejected, continuing as guest", port.Fields{"error": err.Error()})
				} else {
					identity = parsed
				}
			}

			if identity.IsAuthenticated() {
				logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"user_id": identity.ID})
				ctx = contextkeys.ContextWithLogger(ctx, logger)
			}
			ctx = contextkeys.ContextWithIdentity(ctx, identity)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken читает Authorization, для EventSource - параметр token.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if scheme, token, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("token")
}
