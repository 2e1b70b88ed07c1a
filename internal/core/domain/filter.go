package domain

import (
	"fmt"
	"slices"
)

const (
	AnyPropertyType = "none"
	AnyBedrooms     = "none"

	SortDateDesc  = "date_desc"
	SortPriceAsc  = "price_asc"
	SortPriceDesc = "price_desc"

	DefaultMinPrice = 500
	DefaultMaxPrice = 10000000
	PriceStep       = 1000
)

// Поля фильтра, которые можно менять по одному.
const (
	FilterFieldPropertyType  = "propertyType"
	FilterFieldMinPrice      = "minPrice"
	FilterFieldMaxPrice      = "maxPrice"
	FilterFieldBedrooms      = "bedrooms"
	FilterFieldOtherFeatures = "otherFeatures"
	FilterFieldSortBy        = "sortBy"
)

// Option - пара "подпись/значение" для выпадающих списков фильтра.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

var (
	PropertyTypeOptions = []Option{
		{Label: "Any", Value: AnyPropertyType},
		{Label: "House", Value: "House"},
		{Label: "Apartment", Value: "Apartment"},
		{Label: "Condo", Value: "Condo"},
	}

	BedroomOptions = []Option{
		{Label: "Any", Value: AnyBedrooms},
		{Label: "1", Value: "1"},
		{Label: "2", Value: "2"},
		{Label: "3+", Value: "3+"},
	}

	SortOptions = []Option{
		{Label: "Newest First", Value: SortDateDesc},
		{Label: "Price: Low to High", Value: SortPriceAsc},
		{Label: "Price: High to Low", Value: SortPriceDesc},
	}

	OtherFeatureOptions = []Option{
		{Label: "Pet-Friendly", Value: "Pet-Friendly"},
		{Label: "Pool", Value: "Pool"},
		{Label: "Garage", Value: "Garage"},
	}
)

// FilterCriteria - текущее состояние фильтров страницы со списком объектов.
// Инвариант: MinPrice <= MaxPrice.
type FilterCriteria struct {
	PropertyType  string
	MinPrice      int
	MaxPrice      int
	Bedrooms      string
	OtherFeatures []string
	SortBy        string
}

// DefaultFilterCriteria возвращает фильтры в состоянии "при открытии страницы".
func DefaultFilterCriteria() FilterCriteria {
	return FilterCriteria{
		PropertyType:  AnyPropertyType,
		MinPrice:      DefaultMinPrice,
		MaxPrice:      DefaultMaxPrice,
		Bedrooms:      AnyBedrooms,
		OtherFeatures: []string{},
		SortBy:        SortDateDesc,
	}
}

// WithMinPrice возвращает копию с новой нижней границей.
// Значение выше текущей верхней границы прижимается к ней.
func (f FilterCriteria) WithMinPrice(minPrice int) FilterCriteria {
	if minPrice > f.MaxPrice {
		minPrice = f.MaxPrice
	}
	f.MinPrice = minPrice
	return f
}

// WithMaxPrice - симметрично WithMinPrice.
func (f FilterCriteria) WithMaxPrice(maxPrice int) FilterCriteria {
	if maxPrice < f.MinPrice {
		maxPrice = f.MinPrice
	}
	f.MaxPrice = maxPrice
	return f
}

// Clone копирует срез признаков, чтобы снимок не делил память с сессией.
func (f FilterCriteria) Clone() FilterCriteria {
	f.OtherFeatures = slices.Clone(f.OtherFeatures)
	if f.OtherFeatures == nil {
		f.OtherFeatures = []string{}
	}
	return f
}

// FilterChange - изменение одного поля фильтра.
type FilterChange struct {
	Field    string
	Value    string
	Values   []string // для otherFeatures
	IntValue *int     // для minPrice/maxPrice
}

// Apply применяет изменение и возвращает новое состояние фильтров.
func (f FilterCriteria) Apply(change FilterChange) (FilterCriteria, error) {
	next := f.Clone()

	switch change.Field {
	case FilterFieldPropertyType:
		if !hasOption(PropertyTypeOptions, change.Value) {
			return f, fmt.Errorf("%w: unknown property type %q", ErrInvalidFilter, change.Value)
		}
		next.PropertyType = change.Value
	case FilterFieldBedrooms:
		if !hasOption(BedroomOptions, change.Value) {
			return f, fmt.Errorf("%w: unknown bedrooms value %q", ErrInvalidFilter, change.Value)
		}
		next.Bedrooms = change.Value
	case FilterFieldSortBy:
		if !hasOption(SortOptions, change.Value) {
			return f, fmt.Errorf("%w: unknown sort order %q", ErrInvalidFilter, change.Value)
		}
		next.SortBy = change.Value
	case FilterFieldOtherFeatures:
		values := change.Values
		if values == nil && change.Value != "" {
			values = []string{change.Value}
		}
		for _, v := range values {
			if !hasOption(OtherFeatureOptions, v) {
				return f, fmt.Errorf("%w: unknown feature %q", ErrInvalidFilter, v)
			}
		}
		next.OtherFeatures = slices.Clone(values)
		if next.OtherFeatures == nil {
			next.OtherFeatures = []string{}
		}
	case FilterFieldMinPrice:
		if change.IntValue == nil {
			return f, fmt.Errorf("%w: minPrice requires a numeric value", ErrInvalidFilter)
		}
		next = next.WithMinPrice(*change.IntValue)
	case FilterFieldMaxPrice:
		if change.IntValue == nil {
			return f, fmt.Errorf("%w: maxPrice requires a numeric value", ErrInvalidFilter)
		}
		next = next.WithMaxPrice(*change.IntValue)
	default:
		return f, fmt.Errorf("%w: unknown field %q", ErrInvalidFilter, change.Field)
	}

	return next, nil
}

func hasOption(options []Option, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return true
		}
	}
	return false
}
