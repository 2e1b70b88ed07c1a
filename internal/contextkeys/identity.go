package contextkeys

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

type identityKeyType struct{}

var identityKey = identityKeyType{}

// ContextWithIdentity помещает текущего пользователя в контекст
func ContextWithIdentity(ctx context.Context, identity domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFromContext извлекает пользователя. Без него пользователь считается гостем.
func IdentityFromContext(ctx context.Context) domain.Identity {
	if identity, ok := ctx.Value(identityKey).(domain.Identity); ok {
		return identity
	}
	return domain.AnonymousIdentity()
}
