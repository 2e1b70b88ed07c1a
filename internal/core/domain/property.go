package domain

import "time"

// PropertyListing - снимок объекта недвижимости, полученный от платформы.
// Не изменяется после получения, производные поля живут в ListingCard.
type PropertyListing struct {
	ID              string
	Name            string
	Price           *float64
	Bedrooms        *int
	PropertyType    string
	OtherFeatures   string // значения через ';'
	PrimaryImage    string
	DaysRented      *int
	LocationAddress string
	CreatedDate     time.Time
}

// ListingCard - объект, подготовленный для отображения в списке или на главной.
type ListingCard struct {
	Listing PropertyListing

	FormattedPrice    string
	FormattedFeatures string
	PrimaryImage      string
	DaysRentedText    string
}

// ImageRef - ссылка на изображение объекта (URL или путь ресурса платформы).
type ImageRef string

// Location - адрес и координаты маркера на карте.
type Location struct {
	Street     string
	City       string
	State      string
	PostalCode string
	Country    string
	Latitude   float64
	Longitude  float64
}

// MapMarker - маркер карты, который возвращает сервис геокодирования платформы.
type MapMarker struct {
	Location    Location
	Title       string
	Description string
	Cell        string // geohash ячейки, заполняется при получении
}
