package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
	"rentwise-portal-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

// ListingHandler - страница со списком объектов: фильтры, сортировка, пагинация.
type ListingHandler struct {
	sessions usecases_port.ListingSessionUseCasePort
}

func NewListingHandler(sessions usecases_port.ListingSessionUseCasePort) *ListingHandler {
	return &ListingHandler{sessions: sessions}
}

// GetFilterOptions - GET /api/v1/listings/options
func (h *ListingHandler) GetFilterOptions(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, http.StatusOK, FilterOptionsResponse{
		PropertyTypes: domain.PropertyTypeOptions,
		Bedrooms:      domain.BedroomOptions,
		SortOptions:   domain.SortOptions,
		OtherFeatures: domain.OtherFeatureOptions,
		PriceStep:     domain.PriceStep,
		Defaults:      toFilterResponse(domain.DefaultFilterCriteria()),
	})
}

// OpenSession - POST /api/v1/listings/sessions
func (h *ListingHandler) OpenSession(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "OpenSession"})

	view, err := h.sessions.Open(r.Context())
	if err != nil {
		// Сессия создана, но каталог не загрузился: клиент получает ее ID и может повторить.
		logger.Warn("Listing session opened with fetch error", port.Fields{"session_id": view.SessionID, "error": err.Error()})
		h.writeListingError(w, err, view)
		return
	}

	w.Header().Set("Location", "/api/v1/listings/sessions/"+view.SessionID)
	RespondWithJSON(w, http.StatusCreated, toListingViewResponse(view))
}

// GetSession - GET /api/v1/listings/sessions/{sessionID}
func (h *ListingHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	view, err := h.sessions.Get(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		h.writeListingError(w, err, view)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingViewResponse(view))
}

// UpdateFilter - PATCH /api/v1/listings/sessions/{sessionID}/filters
func (h *ListingHandler) UpdateFilter(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateFilter", "session_id": sessionID})

	var req FilterChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode filter change body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.sessions.UpdateFilter(r.Context(), sessionID, req.toDomain())
	if err != nil {
		logger.Warn("Filter update failed", port.Fields{"field": req.Field, "error": err.Error()})
		h.writeListingError(w, err, view)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingViewResponse(view))
}

// ChangePage - PUT /api/v1/listings/sessions/{sessionID}/page
func (h *ListingHandler) ChangePage(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")

	var req PageChangeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	view, err := h.sessions.ChangePage(r.Context(), sessionID, req.Page)
	if err != nil {
		h.writeListingError(w, err, view)
		return
	}
	RespondWithJSON(w, http.StatusOK, toListingViewResponse(view))
}

// CloseSession - DELETE /api/v1/listings/sessions/{sessionID}
func (h *ListingHandler) CloseSession(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Close(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		writeUseCaseError(w, err, domain.Toast{}, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeListingError: если сессия жива, вместе с ошибкой отдается ее последнее состояние.
func (h *ListingHandler) writeListingError(w http.ResponseWriter, err error, view domain.ListingView) {
	var toast domain.Toast
	if view.Toast != nil {
		toast = *view.Toast
	}
	if view.SessionID == "" || errors.Is(err, domain.ErrSessionNotFound) {
		writeUseCaseError(w, err, toast, nil)
		return
	}
	writeUseCaseError(w, err, toast, toListingViewResponse(view))
}
