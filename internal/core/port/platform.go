package port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

// Удаленные сервисы управляемой платформы. Сервис их только вызывает.
// Личность пользователя берется из контекста запроса (contextkeys.IdentityFromContext).

// PropertyCatalogPort - каталог объектов недвижимости.
type PropertyCatalogPort interface {
	GetFilteredProperties(ctx context.Context, criteria domain.FilterCriteria) ([]domain.PropertyListing, error)
	GetFeaturedListings(ctx context.Context) ([]domain.PropertyListing, error)
	SearchProperties(ctx context.Context, addressQuery string) ([]domain.PropertyListing, error)
	// GetPropertyByID возвращает domain.ErrPropertyNotFound, если объекта нет.
	GetPropertyByID(ctx context.Context, propertyID string) (domain.PropertyListing, error)
	GetPropertyImages(ctx context.Context, propertyID string) ([]domain.ImageRef, error)
}

// MapServicePort - геокодирование адреса в маркеры карты.
type MapServicePort interface {
	GetMapMarkers(ctx context.Context, address, label string) ([]domain.MapMarker, error)
}

// FavoritesServicePort - избранное текущего пользователя.
type FavoritesServicePort interface {
	IsPropertyFavorite(ctx context.Context, propertyID string) (bool, error)
	// ToggleFavoriteProperty возвращает новое, авторитетное состояние.
	ToggleFavoriteProperty(ctx context.Context, propertyID string) (bool, error)
	GetSavedProperties(ctx context.Context) ([]domain.PropertyListing, error)
}

// ContactServicePort - доставка заявок агенту.
type ContactServicePort interface {
	SubmitContactRequest(ctx context.Context, form domain.ContactForm) (bool, error)
}

// IdentityServicePort - профиль текущего пользователя.
type IdentityServicePort interface {
	GetCurrentUserIdentity(ctx context.Context) (domain.Identity, error)
}
