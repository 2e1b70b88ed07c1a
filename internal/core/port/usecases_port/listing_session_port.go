package usecases_port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

type ListingSessionUseCasePort interface {
	// Open создает сессию с фильтрами по умолчанию и сразу загружает каталог.
	Open(ctx context.Context) (domain.ListingView, error)
	Get(ctx context.Context, sessionID string) (domain.ListingView, error)
	UpdateFilter(ctx context.Context, sessionID string, change domain.FilterChange) (domain.ListingView, error)
	ChangePage(ctx context.Context, sessionID string, page int) (domain.ListingView, error)
	Close(ctx context.Context, sessionID string) error
}
