package platform_client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"rentwise-portal-service/internal/core/domain"
)

func (c *Client) GetFilteredProperties(ctx context.Context, criteria domain.FilterCriteria) ([]domain.PropertyListing, error) {
	var records []propertyRecord
	err := c.call(ctx, "GetFilteredProperties", http.MethodPost, "/api/v1/properties/filter", nil, newFilterRequest(criteria), &records)
	if err != nil {
		return nil, err
	}
	return toListings(records), nil
}

func (c *Client) GetFeaturedListings(ctx context.Context) ([]domain.PropertyListing, error) {
	var records []propertyRecord
	if err := c.call(ctx, "GetFeaturedListings", http.MethodGet, "/api/v1/properties/featured", nil, nil, &records); err != nil {
		return nil, err
	}
	return toListings(records), nil
}

func (c *Client) SearchProperties(ctx context.Context, addressQuery string) ([]domain.PropertyListing, error) {
	var records []propertyRecord
	query := url.Values{"address": {addressQuery}}
	if err := c.call(ctx, "SearchProperties", http.MethodGet, "/api/v1/properties/search", query, nil, &records); err != nil {
		return nil, err
	}
	return toListings(records), nil
}

func (c *Client) GetPropertyByID(ctx context.Context, propertyID string) (domain.PropertyListing, error) {
	var record propertyRecord
	path := "/api/v1/properties/" + url.PathEscape(propertyID)
	if err := c.call(ctx, "GetPropertyByID", http.MethodGet, path, nil, nil, &record); err != nil {
		if isNotFound(err) {
			return domain.PropertyListing{}, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, propertyID)
		}
		return domain.PropertyListing{}, err
	}
	if record.ID == "" {
		return domain.PropertyListing{}, fmt.Errorf("%w: %s", domain.ErrPropertyNotFound, propertyID)
	}
	return record.toDomain(), nil
}

func (c *Client) GetPropertyImages(ctx context.Context, propertyID string) ([]domain.ImageRef, error) {
	var urls []string
	path := "/api/v1/properties/" + url.PathEscape(propertyID) + "/images"
	if err := c.call(ctx, "GetPropertyImages", http.MethodGet, path, nil, nil, &urls); err != nil {
		return nil, err
	}
	images := make([]domain.ImageRef, 0, len(urls))
	for _, u := range urls {
		if u != "" {
			images = append(images, domain.ImageRef(u))
		}
	}
	return images, nil
}
