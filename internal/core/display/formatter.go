// Package display превращает снимки объектов от платформы в карточки для интерфейса.
package display

import (
	"fmt"
	"math"
	"strings"

	"rentwise-portal-service/internal/core/domain"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	zeroPrice        = "$0"
	featureSeparator = ";"
	featureJoiner    = ", "
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice форматирует цену как en-US USD без дробной части: $1,234,567.
// Отсутствующая цена дает "$0".
func FormatPrice(price *float64) string {
	if price == nil || math.IsNaN(*price) || math.IsInf(*price, 0) {
		return zeroPrice
	}
	rounded := int64(math.Round(*price))
	if rounded < 0 {
		return printer.Sprintf("-$%d", -rounded)
	}
	return printer.Sprintf("$%d", rounded)
}

// FormatNumber - группировка разрядов для подписей ползунка цены.
func FormatNumber(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatFeatures: "Pool;Garage" -> "Pool, Garage".
func FormatFeatures(features string) string {
	if features == "" {
		return ""
	}
	parts := strings.Split(features, featureSeparator)
	return strings.Join(parts, featureJoiner)
}

// PrimaryImage возвращает изображение или заглушку.
func PrimaryImage(image string) string {
	if image == "" {
		return domain.DefaultPropertyImage
	}
	return image
}

// DaysRentedText - подпись на главной странице. Без данных подписи нет.
func DaysRentedText(days *int) string {
	if days == nil {
		return ""
	}
	return fmt.Sprintf("Rented for %d days last year", *days)
}

// PropertyCountText - "N Properties Found".
func PropertyCountText(total int) string {
	return fmt.Sprintf("%d Properties Found", total)
}

// Card строит карточку из снимка. Снимок не изменяется.
func Card(listing domain.PropertyListing) domain.ListingCard {
	return domain.ListingCard{
		Listing:           listing,
		FormattedPrice:    FormatPrice(listing.Price),
		FormattedFeatures: FormatFeatures(listing.OtherFeatures),
		PrimaryImage:      PrimaryImage(listing.PrimaryImage),
	}
}

// Cards форматирует всю коллекцию за один проход.
func Cards(listings []domain.PropertyListing) []domain.ListingCard {
	cards := make([]domain.ListingCard, len(listings))
	for i, l := range listings {
		cards[i] = Card(l)
	}
	return cards
}
