package usecases_port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

type GetAccountUseCasePort interface {
	Execute(ctx context.Context) (domain.AccountView, error)
}

// UnsavePropertyUseCasePort убирает объект из избранного со страницы кабинета.
type UnsavePropertyUseCasePort interface {
	Execute(ctx context.Context, propertyID string) (domain.AccountView, domain.Toast, error)
}
