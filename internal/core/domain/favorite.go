package domain

import "time"

// FavoriteChange - событие смены статуса "в избранном".
// Рассылается всем наблюдателям, чтобы карточки, страница объекта и кабинет сошлись.
type FavoriteChange struct {
	EventID    string
	UserID     string
	PropertyID string
	IsFavorite bool
	OccurredAt time.Time
}

// FavoriteToggleResult - итог переключения избранного.
type FavoriteToggleResult struct {
	PropertyID string
	IsFavorite bool
	Toast      Toast
}

// FavoriteButtonTitle - подпись кнопки избранного на странице объекта.
func FavoriteButtonTitle(isFavorite bool) string {
	if isFavorite {
		return "Remove from Favorites"
	}
	return "Add to Favorites"
}

// FavoriteOrigin - откуда пришло переключение: от этого зависит текст подсказки для гостя.
type FavoriteOrigin string

const (
	FavoriteOriginCard   FavoriteOrigin = "card"
	FavoriteOriginDetail FavoriteOrigin = "detail"
)

// LoginPrompt - текст подсказки для гостя.
func (o FavoriteOrigin) LoginPrompt() string {
	if o == FavoriteOriginCard {
		return MsgLoginToSaveFavorites
	}
	return MsgLoginToSave
}

// CarouselDirection - направление листания галереи.
type CarouselDirection string

const (
	CarouselNext     CarouselDirection = "next"
	CarouselPrevious CarouselDirection = "previous"
)
