package port

import (
	"context"
	"rentwise-portal-service/internal/core/domain"
)

// FavoriteEventPublisherPort - рассылка события смены избранного другим наблюдателям.
type FavoriteEventPublisherPort interface {
	PublishFavoriteChange(ctx context.Context, change domain.FavoriteChange) error
}

// PortalEvent - событие, которое мы отправляем подписчикам SSE.
type PortalEvent struct {
	Type   string      `json:"type"`
	UserID string      `json:"-"`
	Data   interface{} `json:"data"`
}

// Типы SSE-событий.
const (
	EventFavoriteChange = "favoritechange"
	EventToast          = "toast"
)

// NotifierPort - контракт для отправки уведомлений в реальном времени.
type NotifierPort interface {
	Notify(ctx context.Context, event PortalEvent)
}

// FavoriteChangePayload - данные события favoritechange.
type FavoriteChangePayload struct {
	PropertyID string `json:"propertyId"`
	IsFavorite bool   `json:"isFavorite"`
}

// ToastPayload - уведомление, отправляемое через SSE.
type ToastPayload struct {
	ID        string `json:"id"`
	Message   string `json:"message"`
	Variant   string `json:"variant"`
	AutoClose bool   `json:"autoClose"`
	DismissMs int64  `json:"dismissAfterMs,omitempty"`
}

// NewToastPayload переводит доменное уведомление в формат события.
func NewToastPayload(t domain.Toast) ToastPayload {
	return ToastPayload{
		ID:        t.ID,
		Message:   t.Message,
		Variant:   string(t.Variant),
		AutoClose: t.AutoClose,
		DismissMs: t.DismissAfter.Milliseconds(),
	}
}
