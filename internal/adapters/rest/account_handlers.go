package rest

import (
	"errors"
	"net/http"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
	"rentwise-portal-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

type AccountHandler struct {
	accountUC usecases_port.GetAccountUseCasePort
	unsaveUC  usecases_port.UnsavePropertyUseCasePort
}

func NewAccountHandler(accountUC usecases_port.GetAccountUseCasePort, unsaveUC usecases_port.UnsavePropertyUseCasePort) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, unsaveUC: unsaveUC}
}

// GetAccount - GET /api/v1/account
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	view, err := h.accountUC.Execute(r.Context())
	if err != nil {
		if !errors.Is(err, domain.ErrLoginRequired) {
			contextkeys.LoggerFromContext(r.Context()).Error("GetAccount use case failed", err, nil)
		}
		writeUseCaseError(w, err, domain.Toast{}, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, toAccountResponse(view))
}

// UnsaveProperty - DELETE /api/v1/account/favorites/{propertyID}
func (h *AccountHandler) UnsaveProperty(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	view, toast, err := h.unsaveUC.Execute(r.Context(), propertyID)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Unsave failed", port.Fields{"property_id": propertyID, "error": err.Error()})
		writeUseCaseError(w, err, toast, nil)
		return
	}

	resp := toAccountResponse(view)
	payload := port.NewToastPayload(toast)
	resp.Toast = &payload
	RespondWithJSON(w, http.StatusOK, resp)
}

// GetMe - GET /api/v1/me, состояние шапки сайта.
func (h *AccountHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	identity := contextkeys.IdentityFromContext(r.Context())
	if !identity.IsAuthenticated() {
		RespondWithJSON(w, http.StatusOK, MeResponse{IsLoggedIn: false})
		return
	}
	RespondWithJSON(w, http.StatusOK, MeResponse{IsLoggedIn: true, UserID: identity.ID, Name: identity.Name})
}
