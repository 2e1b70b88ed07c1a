package usecase

import (
	"context"
	"errors"
	"testing"

	"rentwise-portal-service/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeaturedListings_ImageFallback(t *testing.T) {
	featured := listings(3)
	featured[0].DaysRented = ptr(12)
	catalog := &fakeCatalog{
		featured: featured,
		images: map[string][]domain.ImageRef{
			"p00": {"/img/p00-1.jpg", "/img/p00-2.jpg"},
			"p02": {},
		},
		imagesErr: map[string]error{
			"p01": errors.New("image service unavailable"),
		},
	}
	uc := NewGetFeaturedListingsUseCase(catalog)

	view, err := uc.Execute(context.Background())

	require.NoError(t, err)
	assert.Nil(t, view.Toast)
	require.Len(t, view.Listings, 3)

	assert.Equal(t, "p00", view.Listings[0].Listing.ID)
	assert.Equal(t, "/img/p00-1.jpg", view.Listings[0].PrimaryImage)
	assert.Equal(t, "Rented for 12 days last year", view.Listings[0].DaysRentedText)

	assert.Equal(t, domain.DefaultPropertyImage, view.Listings[1].PrimaryImage)
	assert.Equal(t, domain.DefaultPropertyImage, view.Listings[2].PrimaryImage)
	assert.Empty(t, view.Listings[2].DaysRentedText)
}

func TestGetFeaturedListings_ImageErrorDoesNotCancelOthers(t *testing.T) {
	featured := listings(6)
	images := map[string][]domain.ImageRef{}
	for _, l := range featured[1:] {
		images[l.ID] = []domain.ImageRef{domain.ImageRef("/img/" + l.ID + ".jpg")}
	}
	catalog := &fakeCatalog{
		featured:  featured,
		images:    images,
		imagesErr: map[string]error{"p00": errors.New("image service unavailable")},
	}
	uc := NewGetFeaturedListingsUseCase(catalog)

	view, err := uc.Execute(context.Background())

	require.NoError(t, err)
	require.Len(t, view.Listings, 6)
	assert.Equal(t, domain.DefaultPropertyImage, view.Listings[0].PrimaryImage)
	for _, card := range view.Listings[1:] {
		assert.Equal(t, "/img/"+card.Listing.ID+".jpg", card.PrimaryImage)
	}
}

func TestGetFeaturedListings_Failure(t *testing.T) {
	catalog := &fakeCatalog{featuredErr: errors.New("connection reset")}
	uc := NewGetFeaturedListingsUseCase(catalog)

	view, err := uc.Execute(context.Background())

	require.Error(t, err)
	assert.Empty(t, view.Listings)
	require.NotNil(t, view.Toast)
	assert.Equal(t, domain.MsgErrorFeatured, view.Toast.Message)
	assert.Equal(t, domain.ToastError, view.Toast.Variant)
}

func TestSearchProperties(t *testing.T) {
	t.Run("blank query does nothing", func(t *testing.T) {
		catalog := &fakeCatalog{search: listings(2)}
		uc := NewSearchPropertiesUseCase(catalog)

		view, err := uc.Execute(context.Background(), "   ")

		require.NoError(t, err)
		assert.Empty(t, view.Results)
		assert.Nil(t, view.Toast)
		assert.Zero(t, catalog.searchCalls)
	})

	t.Run("results found", func(t *testing.T) {
		catalog := &fakeCatalog{search: listings(2)}
		uc := NewSearchPropertiesUseCase(catalog)

		view, err := uc.Execute(context.Background(), "Main St")

		require.NoError(t, err)
		assert.Equal(t, "Main St", view.Query)
		assert.Len(t, view.Results, 2)
		assert.Nil(t, view.Toast)
		assert.Equal(t, "$1,000", view.Results[0].FormattedPrice)
	})

	t.Run("no results", func(t *testing.T) {
		catalog := &fakeCatalog{}
		uc := NewSearchPropertiesUseCase(catalog)

		view, err := uc.Execute(context.Background(), "Nowhere")

		require.NoError(t, err)
		assert.Empty(t, view.Results)
		require.NotNil(t, view.Toast)
		assert.Equal(t, domain.MsgNoSearchResults, view.Toast.Message)
		assert.Equal(t, domain.ToastInfo, view.Toast.Variant)
	})

	t.Run("platform error", func(t *testing.T) {
		catalog := &fakeCatalog{searchErr: errors.New("timeout")}
		uc := NewSearchPropertiesUseCase(catalog)

		view, err := uc.Execute(context.Background(), "Main St")

		require.Error(t, err)
		require.NotNil(t, view.Toast)
		assert.Equal(t, domain.MsgErrorSearching, view.Toast.Message)
	})
}
