package platform_client

import (
	"time"

	"rentwise-portal-service/internal/core/domain"
)

// Имена полей совпадают с объектами платформы.
type propertyRecord struct {
	ID              string     `json:"Id"`
	Name            string     `json:"Name"`
	Price           *float64   `json:"Price__c"`
	Bedrooms        *int       `json:"Bedrooms__c"`
	PropertyType    string     `json:"Property_Type__c"`
	OtherFeatures   string     `json:"Other_Features__c"`
	PrimaryImage    string     `json:"Primary_Image__c"`
	DaysRented      *int       `json:"Days_Rented__c"`
	LocationAddress string     `json:"Location_Address__c"`
	CreatedDate     *time.Time `json:"CreatedDate"`
}

func (r propertyRecord) toDomain() domain.PropertyListing {
	listing := domain.PropertyListing{
		ID:              r.ID,
		Name:            r.Name,
		Price:           r.Price,
		Bedrooms:        r.Bedrooms,
		PropertyType:    r.PropertyType,
		OtherFeatures:   r.OtherFeatures,
		PrimaryImage:    r.PrimaryImage,
		DaysRented:      r.DaysRented,
		LocationAddress: r.LocationAddress,
	}
	if r.CreatedDate != nil {
		listing.CreatedDate = *r.CreatedDate
	}
	return listing
}

func toListings(records []propertyRecord) []domain.PropertyListing {
	result := make([]domain.PropertyListing, len(records))
	for i, r := range records {
		result[i] = r.toDomain()
	}
	return result
}

// filterRequest - тело запроса getFilteredProperties.
type filterRequest struct {
	PropertyType  string   `json:"propertyType"`
	MinPrice      int      `json:"minPrice"`
	MaxPrice      int      `json:"maxPrice"`
	Bedrooms      string   `json:"bedrooms"`
	OtherFeatures []string `json:"otherFeatures"`
	SortBy        string   `json:"sortBy"`
}

func newFilterRequest(c domain.FilterCriteria) filterRequest {
	features := c.OtherFeatures
	if features == nil {
		features = []string{}
	}
	return filterRequest{
		PropertyType:  c.PropertyType,
		MinPrice:      c.MinPrice,
		MaxPrice:      c.MaxPrice,
		Bedrooms:      c.Bedrooms,
		OtherFeatures: features,
		SortBy:        c.SortBy,
	}
}

type markerLocation struct {
	Street     string  `json:"Street"`
	City       string  `json:"City"`
	State      string  `json:"State"`
	PostalCode string  `json:"PostalCode"`
	Country    string  `json:"Country"`
	Latitude   float64 `json:"Latitude"`
	Longitude  float64 `json:"Longitude"`
}

type mapMarkerResponse struct {
	Location    markerLocation `json:"location"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
}

type favoriteStatusResponse struct {
	IsFavorite bool `json:"isFavorite"`
}

type contactRequest struct {
	PropertyID string `json:"propertyId"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Message    string `json:"message"`
}

type contactResponse struct {
	Success bool `json:"success"`
}

type identityResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type errorResponse struct {
	Message string `json:"message"`
}
