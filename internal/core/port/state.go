package port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
	"sync"
)

// FavoriteStatusSourcePort - "проводной" источник статуса избранного.
// Хранит последнее известное значение и умеет перечитать его у платформы.
type FavoriteStatusSourcePort interface {
	// Get возвращает кешированное значение или читает его у платформы.
	Get(ctx context.Context, userID, propertyID string) (bool, error)
	// Set записывает известное значение без обращения к платформе.
	Set(userID, propertyID string, isFavorite bool)
	// Refresh перечитывает значение у платформы и обновляет кеш.
	Refresh(ctx context.Context, userID, propertyID string) (bool, error)
}

// ListingSession - состояние одной открытой страницы со списком объектов.
// Mu защищает все поля. Удаленные вызовы делаются без удержания Mu.
type ListingSession struct {
	Mu sync.Mutex

	ID          string
	UserID      string
	Filters     domain.FilterCriteria
	Cards       []domain.ListingCard
	CurrentPage int
	LastError   string

	// RequestToken растет с каждым запросом к каталогу. Ответ применяется,
	// только если его токен все еще последний.
	RequestToken uint64
}

// ListingSessionStorePort - хранилище сессий страницы со списком.
type ListingSessionStorePort interface {
	Save(session *ListingSession)
	Get(sessionID string) (*ListingSession, bool)
	Delete(sessionID string) bool
}

// CarouselStorePort - положение галереи на странице объекта для вкладки.
type CarouselStorePort interface {
	Get(sessionID, propertyID string) (domain.Carousel, bool)
	Save(sessionID, propertyID string, carousel domain.Carousel)
}
