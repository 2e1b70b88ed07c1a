package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/display"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

type GetPropertyDetailUseCase struct {
	catalog   port.PropertyCatalogPort
	maps      port.MapServicePort
	status    port.FavoriteStatusSourcePort
	carousels port.CarouselStorePort
}

func NewGetPropertyDetailUseCase(
	catalog port.PropertyCatalogPort,
	maps port.MapServicePort,
	status port.FavoriteStatusSourcePort,
	carousels port.CarouselStorePort,
) *GetPropertyDetailUseCase {
	return &GetPropertyDetailUseCase{
		catalog:   catalog,
		maps:      maps,
		status:    status,
		carousels: carousels,
	}
}

// Execute собирает страницу объекта: сам объект, галерею, карту и статус избранного.
// Ошибки карты и статуса избранного не фатальны.
func (uc *GetPropertyDetailUseCase) Execute(ctx context.Context, sessionID, propertyID string) (domain.PropertyDetailView, error) {
	identity := contextkeys.IdentityFromContext(ctx)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetPropertyDetail",
		"property_id": propertyID,
		"session_id":  sessionID,
	})
	ucLogger.Info("Use case started", nil)

	if propertyID == "" {
		return domain.PropertyDetailView{}, &domain.ValidationError{Field: "propertyId", Message: "property id is required"}
	}

	listing, err := uc.catalog.GetPropertyByID(ctx, propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			ucLogger.Warn("Property not found", nil)
			return domain.PropertyDetailView{}, err
		}
		ucLogger.Error("Failed to load property", err, nil)
		return domain.PropertyDetailView{}, fmt.Errorf("failed to load property %s: %w", propertyID, err)
	}

	images, err := uc.catalog.GetPropertyImages(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Failed to load property images", err, nil)
		return domain.PropertyDetailView{}, fmt.Errorf("failed to load images for property %s: %w", propertyID, err)
	}
	carousel := domain.NewCarousel(images)
	if sessionID != "" {
		// Положение галереи сохраняется, пока набор изображений тот же.
		if saved, ok := uc.carousels.Get(sessionID, propertyID); ok && slices.Equal(saved.Images, carousel.Images) {
			carousel = saved
		}
		uc.carousels.Save(sessionID, propertyID, carousel)
	}

	view := domain.PropertyDetailView{
		Property:   display.Card(listing),
		IsLoggedIn: identity.IsAuthenticated(),
		MapMarkers: []domain.MapMarker{},
	}

	if listing.LocationAddress != "" {
		markers, err := uc.maps.GetMapMarkers(ctx, listing.LocationAddress, listing.Name)
		switch {
		case err != nil:
			ucLogger.Warn("Failed to load map markers", port.Fields{"error": err.Error()})
			view.MapError = true
		case len(markers) == 0:
			ucLogger.Debug("No map markers for address", nil)
			view.MapError = true
		default:
			view.MapMarkers = markers
		}
	}

	if identity.IsAuthenticated() {
		isFavorite, err := uc.status.Refresh(ctx, identity.ID, propertyID)
		if err != nil {
			ucLogger.Warn("Failed to refresh favorite status", port.Fields{"error": err.Error()})
		}
		view.IsFavorite = isFavorite
	}
	view.FavoriteButtonTitle = domain.FavoriteButtonTitle(view.IsFavorite)

	applyCarousel(&view, carousel)

	ucLogger.Info("Use case finished successfully", port.Fields{
		"images_count": len(carousel.Images),
		"map_error":    view.MapError,
	})
	return view, nil
}

func applyCarousel(view *domain.PropertyDetailView, carousel domain.Carousel) {
	view.Carousel = carousel
	view.CurrentImage = carousel.Current()
	view.DisplayImageIndex = carousel.DisplayIndex()
	view.HasMultipleImages = len(carousel.Images) > 1
}

type CarouselUseCase struct {
	catalog   port.PropertyCatalogPort
	carousels port.CarouselStorePort
}

func NewCarouselUseCase(catalog port.PropertyCatalogPort, carousels port.CarouselStorePort) *CarouselUseCase {
	return &CarouselUseCase{catalog: catalog, carousels: carousels}
}

// Navigate листает галерею по кругу.
func (uc *CarouselUseCase) Navigate(ctx context.Context, sessionID, propertyID string, direction domain.CarouselDirection) (domain.Carousel, error) {
	carousel, err := uc.load(ctx, sessionID, propertyID)
	if err != nil {
		return domain.Carousel{}, err
	}

	switch direction {
	case domain.CarouselNext:
		carousel = carousel.Next()
	case domain.CarouselPrevious:
		carousel = carousel.Previous()
	default:
		return domain.Carousel{}, &domain.ValidationError{Field: "direction", Message: fmt.Sprintf("unknown direction %q", direction)}
	}

	uc.carousels.Save(sessionID, propertyID, carousel)
	return carousel, nil
}

// ReportImageError заменяет галерею заглушкой, если изображение не загрузилось.
func (uc *CarouselUseCase) ReportImageError(ctx context.Context, sessionID, propertyID string) (domain.Carousel, error) {
	carousel, err := uc.load(ctx, sessionID, propertyID)
	if err != nil {
		return domain.Carousel{}, err
	}

	contextkeys.LoggerFromContext(ctx).Info("Image failed to load, switching to fallback", port.Fields{
		"property_id": propertyID,
		"image":       string(carousel.Current()),
	})

	carousel = carousel.WithFallback()
	uc.carousels.Save(sessionID, propertyID, carousel)
	return carousel, nil
}

// load берет галерею из хранилища, а если ее нет (истекла) - заново у платформы.
func (uc *CarouselUseCase) load(ctx context.Context, sessionID, propertyID string) (domain.Carousel, error) {
	if sessionID == "" {
		return domain.Carousel{}, &domain.ValidationError{Field: "X-Session-ID", Message: "session id is required"}
	}
	if carousel, ok := uc.carousels.Get(sessionID, propertyID); ok {
		return carousel, nil
	}

	images, err := uc.catalog.GetPropertyImages(ctx, propertyID)
	if err != nil {
		return domain.Carousel{}, fmt.Errorf("failed to load images for property %s: %w", propertyID, err)
	}
	return domain.NewCarousel(images), nil
}

// GetPropertyImagesUseCase - галерея карточки объекта.
type GetPropertyImagesUseCase struct {
	catalog port.PropertyCatalogPort
}

func NewGetPropertyImagesUseCase(catalog port.PropertyCatalogPort) *GetPropertyImagesUseCase {
	return &GetPropertyImagesUseCase{catalog: catalog}
}

// Execute: при ошибке платформы возвращается заглушка, а не ошибка.
func (uc *GetPropertyImagesUseCase) Execute(ctx context.Context, propertyID string) ([]domain.ImageRef, error) {
	images, err := uc.catalog.GetPropertyImages(ctx, propertyID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Warn("Failed to load images, using placeholder", port.Fields{
			"property_id": propertyID,
			"error":       err.Error(),
		})
		return []domain.ImageRef{domain.PlaceholderImage}, nil
	}
	if images == nil {
		images = []domain.ImageRef{}
	}
	return images, nil
}
