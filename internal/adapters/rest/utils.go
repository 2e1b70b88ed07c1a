package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

const (
	headerTraceID   = "X-Trace-ID"
	headerSessionID = "X-Session-ID"
)

// errorResponse - тело ответа с ошибкой. View передается, когда состояние страницы сохранилось.
type errorResponse struct {
	Error string             `json:"error"`
	Toast *port.ToastPayload `json:"toast,omitempty"`
	View  interface{}        `json:"view,omitempty"`
}

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	RespondWithJSON(w, statusCode, errorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	w.Write(response)
}

// statusForError сопоставляет ошибку use case и HTTP-статус.
// Все, что не распознано, считается сбоем платформы.
func statusForError(err error) int {
	var validationErr *domain.ValidationError
	switch {
	case errors.Is(err, domain.ErrLoginRequired):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrPropertyNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrInvalidFilter), errors.As(err, &validationErr):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusBadGateway
	}
}

// writeUseCaseError пишет ошибку вместе с уведомлением. Пустой toast не отправляется.
func writeUseCaseError(w http.ResponseWriter, err error, toast domain.Toast, view interface{}) {
	resp := errorResponse{Error: err.Error(), View: view}
	if toast.Message != "" {
		payload := port.NewToastPayload(toast)
		resp.Toast = &payload
	}
	RespondWithJSON(w, statusForError(err), resp)
}

func toastOrNil(t *domain.Toast) *port.ToastPayload {
	if t == nil {
		return nil
	}
	payload := port.NewToastPayload(*t)
	return &payload
}
