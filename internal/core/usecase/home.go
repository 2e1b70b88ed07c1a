package usecase

import (
	"context"
	"fmt"
	"strings"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/display"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"

	"golang.org/x/sync/errgroup"
)

// maxImageFetches ограничивает число одновременных запросов изображений.
const maxImageFetches = 4

type GetFeaturedListingsUseCase struct {
	catalog port.PropertyCatalogPort
}

func NewGetFeaturedListingsUseCase(catalog port.PropertyCatalogPort) *GetFeaturedListingsUseCase {
	return &GetFeaturedListingsUseCase{catalog: catalog}
}

// Execute загружает избранные объекты главной страницы и для каждого первое изображение.
// Ошибка загрузки изображения не фатальна: объект получает заглушку.
func (uc *GetFeaturedListingsUseCase) Execute(ctx context.Context) (domain.FeaturedView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetFeaturedListings"})
	ucLogger.Info("Use case started", nil)

	listings, err := uc.catalog.GetFeaturedListings(ctx)
	if err != nil {
		ucLogger.Error("Failed to fetch featured listings", err, nil)
		toast := domain.ErrorToast(domain.MsgErrorFeatured)
		return domain.FeaturedView{Listings: []domain.ListingCard{}, Toast: &toast}, fmt.Errorf("failed to fetch featured listings: %w", err)
	}

	cards := make([]domain.ListingCard, len(listings))

	// Ошибка изображения заменяется заглушкой и не отменяет соседние загрузки.
	var g errgroup.Group
	g.SetLimit(maxImageFetches)
	for i, listing := range listings {
		g.Go(func() error {
			card := display.Card(listing)
			card.DaysRentedText = display.DaysRentedText(listing.DaysRented)

			images, err := uc.catalog.GetPropertyImages(ctx, listing.ID)
			switch {
			case err != nil:
				ucLogger.Warn("Failed to fetch images for featured listing", port.Fields{
					"property_id": listing.ID,
					"error":       err.Error(),
				})
				card.PrimaryImage = domain.DefaultPropertyImage
			case len(images) > 0:
				card.PrimaryImage = string(images[0])
			default:
				card.PrimaryImage = domain.DefaultPropertyImage
			}

			cards[i] = card
			return nil
		})
	}
	// Замыкания всегда возвращают nil.
	_ = g.Wait()

	ucLogger.Info("Use case finished successfully", port.Fields{"listings_count": len(cards)})
	return domain.FeaturedView{Listings: cards}, nil
}

type SearchPropertiesUseCase struct {
	catalog port.PropertyCatalogPort
}

func NewSearchPropertiesUseCase(catalog port.PropertyCatalogPort) *SearchPropertiesUseCase {
	return &SearchPropertiesUseCase{catalog: catalog}
}

// Execute ищет объекты по адресу. Пустой запрос ничего не делает.
func (uc *SearchPropertiesUseCase) Execute(ctx context.Context, address string) (domain.SearchView, error) {
	view := domain.SearchView{Query: address, Results: []domain.ListingCard{}}
	if strings.TrimSpace(address) == "" {
		return view, nil
	}

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "SearchProperties",
		"query":    address,
	})
	ucLogger.Info("Use case started", nil)

	listings, err := uc.catalog.SearchProperties(ctx, address)
	if err != nil {
		ucLogger.Error("Search failed", err, nil)
		toast := domain.ErrorToast(domain.MsgErrorSearching)
		view.Toast = &toast
		return view, fmt.Errorf("failed to search properties: %w", err)
	}

	view.Results = display.Cards(listings)
	if len(view.Results) == 0 {
		toast := domain.InfoToast(domain.MsgNoSearchResults)
		view.Toast = &toast
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"results_count": len(view.Results)})
	return view, nil
}
