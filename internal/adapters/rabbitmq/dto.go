package rabbitmq_adapter

import (
	"time"

	"rentwise-portal-service/internal/core/domain"
)

// favoriteChangedMessage - тело события favorite.changed (схема events/favorite-changed/v1.json).
type favoriteChangedMessage struct {
	EventID        string    `json:"eventId"`
	UserID         string    `json:"userId"`
	PropertyID     string    `json:"propertyId"`
	IsFavorite     bool      `json:"isFavorite"`
	OccurredAt     time.Time `json:"occurredAt"`
	SourceInstance string    `json:"sourceInstance,omitempty"`
}

func newFavoriteChangedMessage(change domain.FavoriteChange, instanceID string) favoriteChangedMessage {
	return favoriteChangedMessage{
		EventID:        change.EventID,
		UserID:         change.UserID,
		PropertyID:     change.PropertyID,
		IsFavorite:     change.IsFavorite,
		OccurredAt:     change.OccurredAt.UTC(),
		SourceInstance: instanceID,
	}
}

func (m favoriteChangedMessage) toDomain() domain.FavoriteChange {
	return domain.FavoriteChange{
		EventID:    m.EventID,
		UserID:     m.UserID,
		PropertyID: m.PropertyID,
		IsFavorite: m.IsFavorite,
		OccurredAt: m.OccurredAt,
	}
}
