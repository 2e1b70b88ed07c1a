package rest

import (
	"net/http"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
	"rentwise-portal-service/internal/core/port/usecases_port"
)

type HomeHandler struct {
	featuredUC usecases_port.GetFeaturedListingsUseCasePort
	searchUC   usecases_port.SearchPropertiesUseCasePort
}

func NewHomeHandler(featuredUC usecases_port.GetFeaturedListingsUseCasePort, searchUC usecases_port.SearchPropertiesUseCasePort) *HomeHandler {
	return &HomeHandler{featuredUC: featuredUC, searchUC: searchUC}
}

// GetFeatured - GET /api/v1/home/featured
func (h *HomeHandler) GetFeatured(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetFeatured"})

	view, err := h.featuredUC.Execute(r.Context())
	if err != nil {
		logger.Error("GetFeaturedListings use case failed", err, nil)
		writeUseCaseError(w, err, toastValue(view.Toast), nil)
		return
	}

	RespondWithJSON(w, http.StatusOK, FeaturedResponse{
		Listings: toListingCardResponses(view.Listings),
		Toast:    toastOrNil(view.Toast),
	})
}

// Search - GET /api/v1/home/search?address=
func (h *HomeHandler) Search(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Search", "address": address})

	view, err := h.searchUC.Execute(r.Context(), address)
	if err != nil {
		logger.Error("SearchProperties use case failed", err, nil)
		writeUseCaseError(w, err, toastValue(view.Toast), nil)
		return
	}

	RespondWithJSON(w, http.StatusOK, SearchResponse{
		Query:   view.Query,
		Results: toListingCardResponses(view.Results),
		Toast:   toastOrNil(view.Toast),
	})
}

func toastValue(t *domain.Toast) domain.Toast {
	if t == nil {
		return domain.Toast{}
	}
	return *t
}
