package usecases_port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

type GetFeaturedListingsUseCasePort interface {
	Execute(ctx context.Context) (domain.FeaturedView, error)
}

type SearchPropertiesUseCasePort interface {
	Execute(ctx context.Context, address string) (domain.SearchView, error)
}
