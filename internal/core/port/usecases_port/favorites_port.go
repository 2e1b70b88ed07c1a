package usecases_port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

type ToggleFavoriteUseCasePort interface {
	Execute(ctx context.Context, propertyID string, origin domain.FavoriteOrigin) (domain.FavoriteToggleResult, error)
}

type GetFavoriteStatusUseCasePort interface {
	Execute(ctx context.Context, propertyID string) (bool, error)
}

// ApplyFavoriteChangeUseCasePort обрабатывает событие смены избранного от любого наблюдателя.
type ApplyFavoriteChangeUseCasePort interface {
	Execute(ctx context.Context, change domain.FavoriteChange) error
}
