package usecase

import (
	"context"
	"fmt"
	"slices"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/display"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/pagination"
	"rentwise-portal-service/internal/core/port"

	"github.com/google/uuid"
)

// ListingSessionUseCase ведет состояние страницы со списком объектов:
// фильтры, загруженную коллекцию и текущую страницу.
type ListingSessionUseCase struct {
	catalog port.PropertyCatalogPort
	store   port.ListingSessionStorePort
}

func NewListingSessionUseCase(catalog port.PropertyCatalogPort, store port.ListingSessionStorePort) *ListingSessionUseCase {
	return &ListingSessionUseCase{catalog: catalog, store: store}
}

func (uc *ListingSessionUseCase) Open(ctx context.Context) (domain.ListingView, error) {
	identity := contextkeys.IdentityFromContext(ctx)

	session := &port.ListingSession{
		ID:          uuid.New().String(),
		UserID:      sessionOwner(identity),
		Filters:     domain.DefaultFilterCriteria(),
		Cards:       []domain.ListingCard{},
		CurrentPage: 1,
	}
	uc.store.Save(session)

	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "OpenListingSession",
		"session_id": session.ID,
	})
	ucLogger.Info("Use case started", nil)

	return uc.fetch(contextkeys.ContextWithLogger(ctx, ucLogger), session, nil)
}

// sessionOwner - владелец сессии. Все гости делят пустого владельца.
func sessionOwner(identity domain.Identity) string {
	if !identity.IsAuthenticated() {
		return ""
	}
	return identity.ID
}

// load возвращает сессию текущего пользователя. Чужая сессия не отличается от отсутствующей.
func (uc *ListingSessionUseCase) load(ctx context.Context, sessionID string) (*port.ListingSession, bool) {
	session, ok := uc.store.Get(sessionID)
	if !ok {
		return nil, false
	}
	// UserID не меняется после Open, блокировка не нужна.
	if session.UserID != sessionOwner(contextkeys.IdentityFromContext(ctx)) {
		contextkeys.LoggerFromContext(ctx).Warn("Listing session belongs to another user", port.Fields{"session_id": sessionID})
		return nil, false
	}
	return session, true
}

func (uc *ListingSessionUseCase) Get(ctx context.Context, sessionID string) (domain.ListingView, error) {
	session, ok := uc.load(ctx, sessionID)
	if !ok {
		return domain.ListingView{}, domain.ErrSessionNotFound
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()
	return buildListingView(session), nil
}

// UpdateFilter меняет одно поле фильтра и перезагружает каталог.
// Некорректное значение отклоняется без обращения к платформе.
func (uc *ListingSessionUseCase) UpdateFilter(ctx context.Context, sessionID string, change domain.FilterChange) (domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "UpdateFilter",
		"session_id": sessionID,
		"field":      change.Field,
	})
	ucLogger.Info("Use case started", nil)

	session, ok := uc.load(ctx, sessionID)
	if !ok {
		ucLogger.Warn("Listing session not found", nil)
		return domain.ListingView{}, domain.ErrSessionNotFound
	}

	return uc.fetch(contextkeys.ContextWithLogger(ctx, ucLogger), session, func(s *port.ListingSession) error {
		next, err := s.Filters.Apply(change)
		if err != nil {
			return err
		}
		s.Filters = next
		return nil
	})
}

// ChangePage переключает страницу. Текущая страница и номера вне диапазона игнорируются.
func (uc *ListingSessionUseCase) ChangePage(ctx context.Context, sessionID string, page int) (domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":   "ChangePage",
		"session_id": sessionID,
		"page":       page,
	})

	session, ok := uc.load(ctx, sessionID)
	if !ok {
		ucLogger.Warn("Listing session not found", nil)
		return domain.ListingView{}, domain.ErrSessionNotFound
	}

	session.Mu.Lock()
	defer session.Mu.Unlock()

	totalPages := pagination.TotalPages(len(session.Cards))
	if !pagination.IsValidPageChange(page, session.CurrentPage, totalPages) {
		ucLogger.Debug("Page change ignored", port.Fields{"current_page": session.CurrentPage, "total_pages": totalPages})
		return buildListingView(session), nil
	}

	session.CurrentPage = page
	ucLogger.Info("Page changed", nil)
	return buildListingView(session), nil
}

func (uc *ListingSessionUseCase) Close(ctx context.Context, sessionID string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	if _, ok := uc.load(ctx, sessionID); !ok {
		return domain.ErrSessionNotFound
	}
	if !uc.store.Delete(sessionID) {
		return domain.ErrSessionNotFound
	}
	logger.Info("Listing session closed", port.Fields{"session_id": sessionID})
	return nil
}

// fetch под блокировкой применяет mutate и выдает новый токен запроса,
// затем без блокировки ходит в каталог. Ответ применяется, только если
// за время запроса не было более нового.
func (uc *ListingSessionUseCase) fetch(ctx context.Context, session *port.ListingSession, mutate func(*port.ListingSession) error) (domain.ListingView, error) {
	logger := contextkeys.LoggerFromContext(ctx)

	session.Mu.Lock()
	if mutate != nil {
		if err := mutate(session); err != nil {
			view := buildListingView(session)
			session.Mu.Unlock()
			logger.Warn("Filter change rejected", port.Fields{"error": err.Error()})
			toast := domain.ErrorToast(err.Error())
			view.Toast = &toast
			return view, err
		}
	}
	session.RequestToken++
	token := session.RequestToken
	criteria := session.Filters.Clone()
	session.Mu.Unlock()

	logger.Debug("Requesting filtered properties", port.Fields{
		"request_token": token,
		"property_type": criteria.PropertyType,
		"min_price":     criteria.MinPrice,
		"max_price":     criteria.MaxPrice,
		"bedrooms":      criteria.Bedrooms,
		"sort_by":       criteria.SortBy,
	})
	listings, err := uc.catalog.GetFilteredProperties(ctx, criteria)

	session.Mu.Lock()
	defer session.Mu.Unlock()

	if token != session.RequestToken {
		logger.Warn("Discarding stale catalog response", port.Fields{
			"request_token": token,
			"latest_token":  session.RequestToken,
		})
		return buildListingView(session), nil
	}

	if err != nil {
		session.LastError = domain.MsgErrorLoadingPrefix + errorText(err)
		logger.Error("Failed to load filtered properties", err, nil)
		view := buildListingView(session)
		toast := domain.ErrorToast(session.LastError)
		view.Toast = &toast
		return view, fmt.Errorf("failed to load properties: %w", err)
	}

	session.Cards = display.Cards(listings)
	session.LastError = ""
	session.CurrentPage = pagination.ClampPage(session.CurrentPage, pagination.TotalPages(len(session.Cards)))

	logger.Info("Use case finished successfully", port.Fields{"total_properties": len(session.Cards)})
	return buildListingView(session), nil
}

// buildListingView вызывается под session.Mu.
func buildListingView(session *port.ListingSession) domain.ListingView {
	total := len(session.Cards)
	totalPages := pagination.TotalPages(total)
	page := slices.Clone(pagination.Paginate(session.Cards, session.CurrentPage))

	return domain.ListingView{
		SessionID:         session.ID,
		Filters:           session.Filters.Clone(),
		FormattedMinPrice: display.FormatNumber(session.Filters.MinPrice),
		FormattedMaxPrice: display.FormatNumber(session.Filters.MaxPrice),
		Properties:        page,
		TotalProperties:   total,
		CurrentPage:       session.CurrentPage,
		TotalPages:        totalPages,
		Buttons:           pagination.Buttons(session.CurrentPage, totalPages),
		PropertyCountText: display.PropertyCountText(total),
		HasProperties:     len(page) > 0,
		ErrorMessage:      session.LastError,
	}
}
