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

// PropertyHandler - страница объекта: галерея, карта, избранное, заявка агенту.
type PropertyHandler struct {
	detailUC   usecases_port.GetPropertyDetailUseCasePort
	carouselUC usecases_port.CarouselUseCasePort
	imagesUC   usecases_port.GetPropertyImagesUseCasePort
	toggleUC   usecases_port.ToggleFavoriteUseCasePort
	statusUC   usecases_port.GetFavoriteStatusUseCasePort
	contactUC  usecases_port.SubmitContactUseCasePort
}

func NewPropertyHandler(
	detailUC usecases_port.GetPropertyDetailUseCasePort,
	carouselUC usecases_port.CarouselUseCasePort,
	imagesUC usecases_port.GetPropertyImagesUseCasePort,
	toggleUC usecases_port.ToggleFavoriteUseCasePort,
	statusUC usecases_port.GetFavoriteStatusUseCasePort,
	contactUC usecases_port.SubmitContactUseCasePort,
) *PropertyHandler {
	return &PropertyHandler{
		detailUC:   detailUC,
		carouselUC: carouselUC,
		imagesUC:   imagesUC,
		toggleUC:   toggleUC,
		statusUC:   statusUC,
		contactUC:  contactUC,
	}
}

// GetDetail - GET /api/v1/properties/{propertyID}
func (h *PropertyHandler) GetDetail(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDetail", "property_id": propertyID})

	view, err := h.detailUC.Execute(r.Context(), r.Header.Get(headerSessionID), propertyID)
	if err != nil {
		if errors.Is(err, domain.ErrPropertyNotFound) {
			logger.Warn("Property not found", nil)
		} else {
			logger.Error("GetPropertyDetail use case failed", err, nil)
		}
		writeUseCaseError(w, err, domain.Toast{}, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, toPropertyDetailResponse(view))
}

// Navigate - POST /api/v1/properties/{propertyID}/carousel/{direction}
func (h *PropertyHandler) Navigate(w http.ResponseWriter, r *http.Request) {
	direction := domain.CarouselDirection(chi.URLParam(r, "direction"))

	carousel, err := h.carouselUC.Navigate(r.Context(), r.Header.Get(headerSessionID), chi.URLParam(r, "propertyID"), direction)
	if err != nil {
		writeUseCaseError(w, err, domain.Toast{}, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, toCarouselResponse(carousel))
}

// ReportImageError - POST /api/v1/properties/{propertyID}/images/error
func (h *PropertyHandler) ReportImageError(w http.ResponseWriter, r *http.Request) {
	carousel, err := h.carouselUC.ReportImageError(r.Context(), r.Header.Get(headerSessionID), chi.URLParam(r, "propertyID"))
	if err != nil {
		writeUseCaseError(w, err, domain.Toast{}, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, toCarouselResponse(carousel))
}

// GetImages - GET /api/v1/properties/{propertyID}/images
func (h *PropertyHandler) GetImages(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	images, err := h.imagesUC.Execute(r.Context(), propertyID)
	if err != nil {
		writeUseCaseError(w, err, domain.Toast{}, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, ImagesResponse{PropertyID: propertyID, Images: images})
}

// GetFavoriteStatus - GET /api/v1/properties/{propertyID}/favorite
func (h *PropertyHandler) GetFavoriteStatus(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")

	isFavorite, err := h.statusUC.Execute(r.Context(), propertyID)
	if err != nil {
		contextkeys.LoggerFromContext(r.Context()).Warn("Favorite status unavailable", port.Fields{"property_id": propertyID, "error": err.Error()})
		writeUseCaseError(w, err, domain.Toast{}, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, FavoriteStatusResponse{PropertyID: propertyID, IsFavorite: isFavorite})
}

// ToggleFavorite - POST /api/v1/properties/{propertyID}/favorite/toggle?origin=card|detail
func (h *PropertyHandler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ToggleFavorite", "property_id": propertyID})

	origin := domain.FavoriteOrigin(r.URL.Query().Get("origin"))
	if origin != domain.FavoriteOriginCard {
		origin = domain.FavoriteOriginDetail
	}

	result, err := h.toggleUC.Execute(r.Context(), propertyID, origin)
	if err != nil {
		if !errors.Is(err, domain.ErrLoginRequired) {
			logger.Error("ToggleFavorite use case failed", err, nil)
		}
		writeUseCaseError(w, err, result.Toast, FavoriteStatusResponse{PropertyID: propertyID, IsFavorite: result.IsFavorite})
		return
	}

	payload := port.NewToastPayload(result.Toast)
	RespondWithJSON(w, http.StatusOK, FavoriteToggleResponse{
		PropertyID: result.PropertyID,
		IsFavorite: result.IsFavorite,
		Toast:      &payload,
	})
}

// SubmitContact - POST /api/v1/properties/{propertyID}/contact
func (h *PropertyHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	propertyID := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SubmitContact", "property_id": propertyID})

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("Failed to decode contact request body", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	toast, err := h.contactUC.Execute(r.Context(), propertyID, req.toDomain())
	if err != nil {
		logger.Warn("Contact request not sent", port.Fields{"error": err.Error()})
		writeUseCaseError(w, err, toast, nil)
		return
	}
	RespondWithJSON(w, http.StatusOK, ToastResponse{Toast: port.NewToastPayload(toast)})
}
