package usecases_port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

type GetPropertyDetailUseCasePort interface {
	Execute(ctx context.Context, sessionID, propertyID string) (domain.PropertyDetailView, error)
}

type CarouselUseCasePort interface {
	Navigate(ctx context.Context, sessionID, propertyID string, direction domain.CarouselDirection) (domain.Carousel, error)
	ReportImageError(ctx context.Context, sessionID, propertyID string) (domain.Carousel, error)
}

// GetPropertyImagesUseCasePort - галерея карточки: при ошибке платформы отдается заглушка.
type GetPropertyImagesUseCasePort interface {
	Execute(ctx context.Context, propertyID string) ([]domain.ImageRef, error)
}

type SubmitContactUseCasePort interface {
	Execute(ctx context.Context, propertyID string, form domain.ContactForm) (domain.Toast, error)
}
