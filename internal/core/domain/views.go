package domain

// PageButton - кнопка пагинации.
type PageButton struct {
	Label    string
	Value    int
	Active   bool
	Disabled bool
	IsPrev   bool
	IsNext   bool
	IsNumber bool
}

// ListingView - то, что видит пользователь на странице со списком объектов.
type ListingView struct {
	SessionID         string
	Filters           FilterCriteria
	FormattedMinPrice string
	FormattedMaxPrice string
	Properties        []ListingCard // объекты текущей страницы
	TotalProperties   int
	CurrentPage       int
	TotalPages        int
	Buttons           []PageButton
	PropertyCountText string
	HasProperties     bool
	ErrorMessage      string
	Toast             *Toast
}

// FeaturedView - главная страница.
type FeaturedView struct {
	Listings []ListingCard
	Toast    *Toast
}

// SearchView - результат поиска по адресу.
type SearchView struct {
	Query   string
	Results []ListingCard
	Toast   *Toast
}

// PropertyDetailView - страница объекта.
type PropertyDetailView struct {
	Property            ListingCard
	Carousel            Carousel
	CurrentImage        ImageRef
	DisplayImageIndex   int
	HasMultipleImages   bool
	MapMarkers          []MapMarker
	MapError            bool
	IsFavorite          bool
	FavoriteButtonTitle string
	IsLoggedIn          bool
}

// AccountView - личный кабинет.
type AccountView struct {
	UserName        string
	UserEmail       string
	SavedProperties []ListingCard
}
