package usecase

import (
	"context"
	"fmt"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/display"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
	"rentwise-portal-service/internal/core/port/usecases_port"
)

// StructValidator - проверка формы перед отправкой.
type StructValidator interface {
	Struct(s interface{}) error
}

type SubmitContactUseCase struct {
	contacts  port.ContactServicePort
	validator StructValidator
}

func NewSubmitContactUseCase(contacts port.ContactServicePort, validator StructValidator) *SubmitContactUseCase {
	return &SubmitContactUseCase{contacts: contacts, validator: validator}
}

// Execute проверяет форму и отправляет заявку. Невалидная форма до платформы не доходит.
func (uc *SubmitContactUseCase) Execute(ctx context.Context, propertyID string, form domain.ContactForm) (domain.Toast, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "SubmitContact",
		"property_id": propertyID,
	})
	ucLogger.Info("Use case started", nil)

	form.PropertyID = propertyID
	if err := uc.validator.Struct(form); err != nil {
		ucLogger.Warn("Contact form rejected", port.Fields{"error": err.Error()})
		return domain.ErrorToast(domain.UserMessage(err, domain.MsgErrorSendingMessage)), err
	}

	sent, err := uc.contacts.SubmitContactRequest(ctx, form)
	if err != nil {
		ucLogger.Error("Platform failed to submit contact request", err, nil)
		return domain.ErrorToast(domain.UserMessage(err, domain.MsgErrorSendingMessage)), fmt.Errorf("failed to submit contact request: %w", err)
	}
	if !sent {
		ucLogger.Warn("Platform did not accept contact request", nil)
		err := &domain.RemoteError{Operation: "SubmitContactRequest", Message: domain.MsgErrorSendingMessage}
		return domain.ErrorToast(domain.MsgErrorSendingMessage), err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return domain.SuccessToast(domain.MsgContactSent), nil
}

type GetAccountUseCase struct {
	identities port.IdentityServicePort
	favorites  port.FavoritesServicePort
}

func NewGetAccountUseCase(identities port.IdentityServicePort, favorites port.FavoritesServicePort) *GetAccountUseCase {
	return &GetAccountUseCase{identities: identities, favorites: favorites}
}

func (uc *GetAccountUseCase) Execute(ctx context.Context) (domain.AccountView, error) {
	identity := contextkeys.IdentityFromContext(ctx)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GetAccount",
		"user_id":  identity.ID,
	})
	ucLogger.Info("Use case started", nil)

	if !identity.IsAuthenticated() {
		return domain.AccountView{}, domain.ErrLoginRequired
	}

	profile, err := uc.identities.GetCurrentUserIdentity(ctx)
	if err != nil {
		ucLogger.Error("Failed to load user identity", err, nil)
		return domain.AccountView{}, fmt.Errorf("failed to load user identity: %w", err)
	}

	saved, err := uc.favorites.GetSavedProperties(ctx)
	if err != nil {
		ucLogger.Error("Failed to load saved properties", err, nil)
		return domain.AccountView{}, fmt.Errorf("failed to load saved properties: %w", err)
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"saved_count": len(saved)})
	return domain.AccountView{
		UserName:        profile.Name,
		UserEmail:       profile.Email,
		SavedProperties: display.Cards(saved),
	}, nil
}

// UnsavePropertyUseCase - снятие отметки со страницы кабинета.
// Повторный вызов для уже снятого объекта ничего не переключает.
// Объект сразу убирается из ответа, затем список перечитывается у платформы.
type UnsavePropertyUseCase struct {
	status  port.FavoriteStatusSourcePort
	toggle  usecases_port.ToggleFavoriteUseCasePort
	account usecases_port.GetAccountUseCasePort
}

func NewUnsavePropertyUseCase(
	status port.FavoriteStatusSourcePort,
	toggle usecases_port.ToggleFavoriteUseCasePort,
	account usecases_port.GetAccountUseCasePort,
) *UnsavePropertyUseCase {
	return &UnsavePropertyUseCase{status: status, toggle: toggle, account: account}
}

func (uc *UnsavePropertyUseCase) Execute(ctx context.Context, propertyID string) (domain.AccountView, domain.Toast, error) {
	identity := contextkeys.IdentityFromContext(ctx)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UnsaveProperty",
		"property_id": propertyID,
		"user_id":     identity.ID,
	})
	ucLogger.Info("Use case started", nil)

	if !identity.IsAuthenticated() {
		return domain.AccountView{}, domain.InfoToast(domain.MsgLoginToSaveFavorites), domain.ErrLoginRequired
	}
	if propertyID == "" {
		err := &domain.ValidationError{Field: "propertyId", Message: "property id is required"}
		return domain.AccountView{}, domain.ErrorToast(err.Message), err
	}

	// Состояние читается у платформы: кеш мог отстать от другой вкладки.
	saved, err := uc.status.Refresh(ctx, identity.ID, propertyID)
	if err != nil {
		ucLogger.Error("Failed to read favorite status before unsave", err, nil)
		return domain.AccountView{}, domain.ErrorToast(domain.UserMessage(err, domain.MsgErrorUpdatingFavorite)), fmt.Errorf("failed to read favorite status: %w", err)
	}

	toast := domain.SuccessToast(domain.MsgRemovedFromFavorites)
	if saved {
		result, err := uc.toggle.Execute(ctx, propertyID, domain.FavoriteOriginCard)
		if err != nil {
			return domain.AccountView{}, result.Toast, err
		}
		if result.IsFavorite {
			// Объект сняли в другом месте между чтением и переключением, переключение вернуло его.
			ucLogger.Warn("Unsave re-added property, toggling back", nil)
			result, err = uc.toggle.Execute(ctx, propertyID, domain.FavoriteOriginCard)
			if err != nil {
				return domain.AccountView{}, result.Toast, err
			}
			if result.IsFavorite {
				ucLogger.Warn("Property is still saved after unsave", nil)
				return domain.AccountView{}, domain.ErrorToast(domain.MsgErrorUpdatingFavorite), fmt.Errorf("property %s is still saved after unsave", propertyID)
			}
		}
		toast = result.Toast
	} else {
		ucLogger.Info("Property is not saved, nothing to toggle", nil)
	}

	view, err := uc.account.Execute(ctx)
	if err != nil {
		return domain.AccountView{}, toast, err
	}

	// Платформа может вернуть список с задержкой.
	kept := view.SavedProperties[:0]
	for _, card := range view.SavedProperties {
		if card.Listing.ID != propertyID {
			kept = append(kept, card)
		}
	}
	view.SavedProperties = kept

	ucLogger.Info("Use case finished successfully", nil)
	return view, toast, nil
}
