package usecase

import (
	"context"
	"fmt"
	"time"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"

	"github.com/google/uuid"
)

type ToggleFavoriteUseCase struct {
	favorites port.FavoritesServicePort
	status    port.FavoriteStatusSourcePort
	publisher port.FavoriteEventPublisherPort
}

func NewToggleFavoriteUseCase(
	favorites port.FavoritesServicePort,
	status port.FavoriteStatusSourcePort,
	publisher port.FavoriteEventPublisherPort,
) *ToggleFavoriteUseCase {
	return &ToggleFavoriteUseCase{
		favorites: favorites,
		status:    status,
		publisher: publisher,
	}
}

// Execute переключает избранное. Гость получает ErrLoginRequired, платформа при этом не вызывается.
// При ошибке платформы локальное состояние не меняется.
func (uc *ToggleFavoriteUseCase) Execute(ctx context.Context, propertyID string, origin domain.FavoriteOrigin) (domain.FavoriteToggleResult, error) {
	identity := contextkeys.IdentityFromContext(ctx)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ToggleFavorite",
		"property_id": propertyID,
		"user_id":     identity.ID,
		"origin":      string(origin),
	})
	ucLogger.Info("Use case started", nil)

	result := domain.FavoriteToggleResult{PropertyID: propertyID}

	if !identity.IsAuthenticated() {
		ucLogger.Info("Anonymous user tried to toggle favorite", nil)
		result.Toast = domain.InfoToast(origin.LoginPrompt())
		return result, domain.ErrLoginRequired
	}
	if propertyID == "" {
		return result, &domain.ValidationError{Field: "propertyId", Message: "property id is required"}
	}

	isFavorite, err := uc.favorites.ToggleFavoriteProperty(ctx, propertyID)
	if err != nil {
		ucLogger.Error("Platform failed to toggle favorite", err, nil)
		result.Toast = domain.ErrorToast(domain.UserMessage(err, domain.MsgErrorUpdatingFavorite))
		return result, fmt.Errorf("failed to toggle favorite: %w", err)
	}

	uc.status.Set(identity.ID, propertyID, isFavorite)
	if refreshed, err := uc.status.Refresh(ctx, identity.ID, propertyID); err != nil {
		ucLogger.Warn("Failed to refresh favorite status after toggle", port.Fields{"error": err.Error()})
	} else if refreshed != isFavorite {
		ucLogger.Warn("Refreshed favorite status differs from toggle result", port.Fields{
			"toggle_result": isFavorite,
			"refreshed":     refreshed,
		})
	}

	change := domain.FavoriteChange{
		EventID:    uuid.New().String(),
		UserID:     identity.ID,
		PropertyID: propertyID,
		IsFavorite: isFavorite,
		OccurredAt: time.Now().UTC(),
	}
	if err := uc.publisher.PublishFavoriteChange(ctx, change); err != nil {
		// Переключение уже выполнено, остальные наблюдатели догонят при следующем чтении.
		ucLogger.Error("Failed to publish favorite change", err, nil)
	}

	result.IsFavorite = isFavorite
	if isFavorite {
		result.Toast = domain.SuccessToast(domain.MsgAddedToFavorites)
	} else {
		result.Toast = domain.SuccessToast(domain.MsgRemovedFromFavorites)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"is_favorite": isFavorite})
	return result, nil
}

type GetFavoriteStatusUseCase struct {
	status port.FavoriteStatusSourcePort
}

func NewGetFavoriteStatusUseCase(status port.FavoriteStatusSourcePort) *GetFavoriteStatusUseCase {
	return &GetFavoriteStatusUseCase{status: status}
}

// Execute: для гостя всегда false без обращения к платформе.
func (uc *GetFavoriteStatusUseCase) Execute(ctx context.Context, propertyID string) (bool, error) {
	identity := contextkeys.IdentityFromContext(ctx)
	if !identity.IsAuthenticated() {
		return false, nil
	}

	isFavorite, err := uc.status.Get(ctx, identity.ID, propertyID)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to get favorite status", err, port.Fields{"property_id": propertyID})
		return false, fmt.Errorf("failed to get favorite status: %w", err)
	}
	return isFavorite, nil
}

// ApplyFavoriteChangeUseCase сводит локальное состояние к событию и оповещает открытые вкладки.
type ApplyFavoriteChangeUseCase struct {
	status   port.FavoriteStatusSourcePort
	notifier port.NotifierPort
}

func NewApplyFavoriteChangeUseCase(status port.FavoriteStatusSourcePort, notifier port.NotifierPort) *ApplyFavoriteChangeUseCase {
	return &ApplyFavoriteChangeUseCase{status: status, notifier: notifier}
}

func (uc *ApplyFavoriteChangeUseCase) Execute(ctx context.Context, change domain.FavoriteChange) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "ApplyFavoriteChange",
		"event_id":    change.EventID,
		"user_id":     change.UserID,
		"property_id": change.PropertyID,
	})

	if change.UserID == "" || change.PropertyID == "" {
		return &domain.ValidationError{Field: "favorite_change", Message: "user id and property id are required"}
	}

	uc.status.Set(change.UserID, change.PropertyID, change.IsFavorite)

	uc.notifier.Notify(ctx, port.PortalEvent{
		Type:   port.EventFavoriteChange,
		UserID: change.UserID,
		Data: port.FavoriteChangePayload{
			PropertyID: change.PropertyID,
			IsFavorite: change.IsFavorite,
		},
	})

	message := domain.MsgUnsavedFromFavorites
	if change.IsFavorite {
		message = domain.MsgSavedToFavorites
	}
	uc.notifier.Notify(ctx, port.PortalEvent{
		Type:   port.EventToast,
		UserID: change.UserID,
		Data:   port.NewToastPayload(domain.SuccessToast(message)),
	})

	ucLogger.Info("Favorite change applied", port.Fields{"is_favorite": change.IsFavorite})
	return nil
}
