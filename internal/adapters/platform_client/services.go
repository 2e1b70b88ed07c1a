package platform_client

import (
	"context"
	"net/http"
	"net/url"

	"rentwise-portal-service/internal/core/domain"

	"github.com/mmcloughlin/geohash"
)

// markerCellPrecision - длина geohash ячейки маркера (~150 м).
const markerCellPrecision = 7

func (c *Client) GetMapMarkers(ctx context.Context, address, label string) ([]domain.MapMarker, error) {
	var markers []mapMarkerResponse
	query := url.Values{"address": {address}, "propertyName": {label}}
	if err := c.call(ctx, "GetMapMarkers", http.MethodGet, "/api/v1/maps/markers", query, nil, &markers); err != nil {
		return nil, err
	}

	result := make([]domain.MapMarker, len(markers))
	for i, m := range markers {
		result[i] = domain.MapMarker{
			Location: domain.Location{
				Street:     m.Location.Street,
				City:       m.Location.City,
				State:      m.Location.State,
				PostalCode: m.Location.PostalCode,
				Country:    m.Location.Country,
				Latitude:   m.Location.Latitude,
				Longitude:  m.Location.Longitude,
			},
			Title:       m.Title,
			Description: m.Description,
			Cell:        markerCell(m.Location.Latitude, m.Location.Longitude),
		}
	}
	return result, nil
}

// markerCell: маркер без координат (геокодирование только по адресу) ячейки не имеет.
func markerCell(lat, lon float64) string {
	if lat == 0 && lon == 0 {
		return ""
	}
	return geohash.Encode(lat, lon)[:markerCellPrecision]
}

func (c *Client) IsPropertyFavorite(ctx context.Context, propertyID string) (bool, error) {
	var resp favoriteStatusResponse
	path := "/api/v1/favorites/" + url.PathEscape(propertyID)
	if err := c.call(ctx, "IsPropertyFavorite", http.MethodGet, path, nil, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsFavorite, nil
}

func (c *Client) ToggleFavoriteProperty(ctx context.Context, propertyID string) (bool, error) {
	var resp favoriteStatusResponse
	path := "/api/v1/favorites/" + url.PathEscape(propertyID) + "/toggle"
	if err := c.call(ctx, "ToggleFavoriteProperty", http.MethodPost, path, nil, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsFavorite, nil
}

func (c *Client) GetSavedProperties(ctx context.Context) ([]domain.PropertyListing, error) {
	var records []propertyRecord
	if err := c.call(ctx, "GetSavedProperties", http.MethodGet, "/api/v1/favorites", nil, nil, &records); err != nil {
		return nil, err
	}
	return toListings(records), nil
}

func (c *Client) SubmitContactRequest(ctx context.Context, form domain.ContactForm) (bool, error) {
	req := contactRequest{
		PropertyID: form.PropertyID,
		FirstName:  form.FirstName,
		LastName:   form.LastName,
		Email:      form.Email,
		Message:    form.Message,
	}
	var resp contactResponse
	if err := c.call(ctx, "SubmitContactRequest", http.MethodPost, "/api/v1/contact-requests", nil, req, &resp); err != nil {
		return false, err
	}
	return resp.Success, nil
}

func (c *Client) GetCurrentUserIdentity(ctx context.Context) (domain.Identity, error) {
	var resp identityResponse
	if err := c.call(ctx, "GetCurrentUserIdentity", http.MethodGet, "/api/v1/me", nil, nil, &resp); err != nil {
		return domain.Identity{}, err
	}
	return domain.Identity{ID: resp.ID, Name: resp.Name, Email: resp.Email}, nil
}
