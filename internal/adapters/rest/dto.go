package rest

import (
	"time"

	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

// --- Запросы ---

// FilterChangeRequest - изменение одного поля фильтра.
type FilterChangeRequest struct {
	Field    string   `json:"field"`
	Value    string   `json:"value,omitempty"`
	Values   []string `json:"values,omitempty"`
	IntValue *int     `json:"intValue,omitempty"`
}

func (r FilterChangeRequest) toDomain() domain.FilterChange {
	return domain.FilterChange{Field: r.Field, Value: r.Value, Values: r.Values, IntValue: r.IntValue}
}

type PageChangeRequest struct {
	Page int `json:"page"`
}

// ContactRequest - форма заявки агенту.
type ContactRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

func (r ContactRequest) toDomain() domain.ContactForm {
	return domain.ContactForm{FirstName: r.FirstName, LastName: r.LastName, Email: r.Email, Message: r.Message}
}

// --- Ответы ---

type ListingCardResponse struct {
	ID                string     `json:"id"`
	Name              string     `json:"name"`
	Price             *float64   `json:"price"`
	FormattedPrice    string     `json:"formattedPrice"`
	Bedrooms          *int       `json:"bedrooms"`
	PropertyType      string     `json:"propertyType"`
	OtherFeatures     string     `json:"otherFeatures"`
	FormattedFeatures string     `json:"formattedFeatures"`
	PrimaryImage      string     `json:"primaryImage"`
	DaysRented        *int       `json:"daysRented"`
	DaysRentedText    string     `json:"daysRentedText,omitempty"`
	LocationAddress   string     `json:"locationAddress,omitempty"`
	CreatedDate       *time.Time `json:"createdDate,omitempty"`
}

func toListingCardResponse(c domain.ListingCard) ListingCardResponse {
	resp := ListingCardResponse{
		ID:                c.Listing.ID,
		Name:              c.Listing.Name,
		Price:             c.Listing.Price,
		FormattedPrice:    c.FormattedPrice,
		Bedrooms:          c.Listing.Bedrooms,
		PropertyType:      c.Listing.PropertyType,
		OtherFeatures:     c.Listing.OtherFeatures,
		FormattedFeatures: c.FormattedFeatures,
		PrimaryImage:      c.PrimaryImage,
		DaysRented:        c.Listing.DaysRented,
		DaysRentedText:    c.DaysRentedText,
		LocationAddress:   c.Listing.LocationAddress,
	}
	if !c.Listing.CreatedDate.IsZero() {
		created := c.Listing.CreatedDate
		resp.CreatedDate = &created
	}
	return resp
}

func toListingCardResponses(cards []domain.ListingCard) []ListingCardResponse {
	out := make([]ListingCardResponse, len(cards))
	for i, c := range cards {
		out[i] = toListingCardResponse(c)
	}
	return out
}

type FilterResponse struct {
	PropertyType  string   `json:"propertyType"`
	MinPrice      int      `json:"minPrice"`
	MaxPrice      int      `json:"maxPrice"`
	Bedrooms      string   `json:"bedrooms"`
	OtherFeatures []string `json:"otherFeatures"`
	SortBy        string   `json:"sortBy"`
}

func toFilterResponse(f domain.FilterCriteria) FilterResponse {
	f = f.Clone()
	return FilterResponse{
		PropertyType:  f.PropertyType,
		MinPrice:      f.MinPrice,
		MaxPrice:      f.MaxPrice,
		Bedrooms:      f.Bedrooms,
		OtherFeatures: f.OtherFeatures,
		SortBy:        f.SortBy,
	}
}

type PageButtonResponse struct {
	Label    string `json:"label"`
	Value    int    `json:"value"`
	Active   bool   `json:"active"`
	Disabled bool   `json:"disabled"`
	IsPrev   bool   `json:"isPrev,omitempty"`
	IsNext   bool   `json:"isNext,omitempty"`
	IsNumber bool   `json:"isNumber,omitempty"`
}

type ListingViewResponse struct {
	SessionID         string                `json:"sessionId"`
	Filters           FilterResponse        `json:"filters"`
	FormattedMinPrice string                `json:"formattedMinPrice"`
	FormattedMaxPrice string                `json:"formattedMaxPrice"`
	Properties        []ListingCardResponse `json:"properties"`
	TotalProperties   int                   `json:"totalProperties"`
	CurrentPage       int                   `json:"currentPage"`
	TotalPages        int                   `json:"totalPages"`
	Buttons           []PageButtonResponse  `json:"paginationButtons"`
	PropertyCountText string                `json:"propertyCountText"`
	HasProperties     bool                  `json:"hasProperties"`
	ErrorMessage      string                `json:"errorMessage,omitempty"`
	Toast             *port.ToastPayload    `json:"toast,omitempty"`
}

func toListingViewResponse(v domain.ListingView) ListingViewResponse {
	buttons := make([]PageButtonResponse, len(v.Buttons))
	for i, b := range v.Buttons {
		buttons[i] = PageButtonResponse{
			Label: b.Label, Value: b.Value, Active: b.Active, Disabled: b.Disabled,
			IsPrev: b.IsPrev, IsNext: b.IsNext, IsNumber: b.IsNumber,
		}
	}
	return ListingViewResponse{
		SessionID:         v.SessionID,
		Filters:           toFilterResponse(v.Filters),
		FormattedMinPrice: v.FormattedMinPrice,
		FormattedMaxPrice: v.FormattedMaxPrice,
		Properties:        toListingCardResponses(v.Properties),
		TotalProperties:   v.TotalProperties,
		CurrentPage:       v.CurrentPage,
		TotalPages:        v.TotalPages,
		Buttons:           buttons,
		PropertyCountText: v.PropertyCountText,
		HasProperties:     v.HasProperties,
		ErrorMessage:      v.ErrorMessage,
		Toast:             toastOrNil(v.Toast),
	}
}

// FilterOptionsResponse - списки для выпадающих меню и значения по умолчанию.
type FilterOptionsResponse struct {
	PropertyTypes []domain.Option `json:"propertyTypes"`
	Bedrooms      []domain.Option `json:"bedrooms"`
	SortOptions   []domain.Option `json:"sortOptions"`
	OtherFeatures []domain.Option `json:"otherFeatures"`
	PriceStep     int             `json:"priceStep"`
	Defaults      FilterResponse  `json:"defaults"`
}

type FeaturedResponse struct {
	Listings []ListingCardResponse `json:"listings"`
	Toast    *port.ToastPayload    `json:"toast,omitempty"`
}

type SearchResponse struct {
	Query   string                `json:"query"`
	Results []ListingCardResponse `json:"results"`
	Toast   *port.ToastPayload    `json:"toast,omitempty"`
}

type LocationResponse struct {
	Street     string  `json:"street,omitempty"`
	City       string  `json:"city,omitempty"`
	State      string  `json:"state,omitempty"`
	PostalCode string  `json:"postalCode,omitempty"`
	Country    string  `json:"country,omitempty"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

type MapMarkerResponse struct {
	Location    LocationResponse `json:"location"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Cell        string           `json:"cell,omitempty"`
}

func toMapMarkerResponses(markers []domain.MapMarker) []MapMarkerResponse {
	out := make([]MapMarkerResponse, len(markers))
	for i, m := range markers {
		out[i] = MapMarkerResponse{
			Location: LocationResponse{
				Street: m.Location.Street, City: m.Location.City, State: m.Location.State,
				PostalCode: m.Location.PostalCode, Country: m.Location.Country,
				Latitude: m.Location.Latitude, Longitude: m.Location.Longitude,
			},
			Title:       m.Title,
			Description: m.Description,
			Cell:        m.Cell,
		}
	}
	return out
}

type CarouselResponse struct {
	Images            []domain.ImageRef `json:"images"`
	Index             int               `json:"index"`
	DisplayIndex      int               `json:"displayIndex"`
	Total             int               `json:"total"`
	CurrentImage      domain.ImageRef   `json:"currentImage"`
	HasMultipleImages bool              `json:"hasMultipleImages"`
}

func toCarouselResponse(c domain.Carousel) CarouselResponse {
	return CarouselResponse{
		Images:            c.Images,
		Index:             c.Index,
		DisplayIndex:      c.DisplayIndex(),
		Total:             len(c.Images),
		CurrentImage:      c.Current(),
		HasMultipleImages: len(c.Images) > 1,
	}
}

type PropertyDetailResponse struct {
	Property            ListingCardResponse `json:"property"`
	Carousel            CarouselResponse    `json:"carousel"`
	MapMarkers          []MapMarkerResponse `json:"mapMarkers"`
	MapError            bool                `json:"mapError"`
	IsFavorite          bool                `json:"isFavorite"`
	FavoriteButtonTitle string              `json:"favoriteButtonTitle"`
	IsLoggedIn          bool                `json:"isLoggedIn"`
}

func toPropertyDetailResponse(v domain.PropertyDetailView) PropertyDetailResponse {
	return PropertyDetailResponse{
		Property:            toListingCardResponse(v.Property),
		Carousel:            toCarouselResponse(v.Carousel),
		MapMarkers:          toMapMarkerResponses(v.MapMarkers),
		MapError:            v.MapError,
		IsFavorite:          v.IsFavorite,
		FavoriteButtonTitle: v.FavoriteButtonTitle,
		IsLoggedIn:          v.IsLoggedIn,
	}
}

type ImagesResponse struct {
	PropertyID string            `json:"propertyId"`
	Images     []domain.ImageRef `json:"images"`
}

type FavoriteStatusResponse struct {
	PropertyID string `json:"propertyId"`
	IsFavorite bool   `json:"isFavorite"`
}

type FavoriteToggleResponse struct {
	PropertyID string             `json:"propertyId"`
	IsFavorite bool               `json:"isFavorite"`
	Toast      *port.ToastPayload `json:"toast,omitempty"`
}

type ToastResponse struct {
	Toast port.ToastPayload `json:"toast"`
}

type AccountResponse struct {
	UserName        string                `json:"userName"`
	UserEmail       string                `json:"userEmail"`
	SavedProperties []ListingCardResponse `json:"savedProperties"`
	Toast           *port.ToastPayload    `json:"toast,omitempty"`
}

func toAccountResponse(v domain.AccountView) AccountResponse {
	return AccountResponse{
		UserName:        v.UserName,
		UserEmail:       v.UserEmail,
		SavedProperties: toListingCardResponses(v.SavedProperties),
	}
}

// MeResponse - состояние шапки сайта.
type MeResponse struct {
	IsLoggedIn bool   `json:"isLoggedIn"`
	UserID     string `json:"userId,omitempty"`
	Name       string `json:"name,omitempty"`
}
