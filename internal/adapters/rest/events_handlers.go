package rest

import (
	"fmt"
	"net/http"
	"time"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
)

const keepAliveInterval = 15 * time.Second

// EventSubscriber - регистрация SSE-соединений пользователя.
type EventSubscriber interface {
	AddClient(userID string) chan []byte
	RemoveClient(userID string, ch chan []byte)
}

type EventsHandler struct {
	subscriber EventSubscriber
	keepAlive  time.Duration
}

func NewEventsHandler(subscriber EventSubscriber) *EventsHandler {
	return &EventsHandler{subscriber: subscriber, keepAlive: keepAliveInterval}
}

// Subscribe - GET /api/v1/events/subscribe
func (h *EventsHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Subscribe"})

	identity := contextkeys.IdentityFromContext(r.Context())
	if !identity.IsAuthenticated() {
		writeUseCaseError(w, domain.ErrLoginRequired, domain.Toast{}, nil)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteJSONError(w, http.StatusInternalServerError, "Streaming unsupported")
		return
	}

	handlerLogger := logger.WithFields(port.Fields{"user_id": identity.ID})
	handlerLogger.Info("New client subscribing to SSE events", nil)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	clientChan := h.subscriber.AddClient(identity.ID)
	defer h.subscriber.RemoveClient(identity.ID, clientChan)

	fmt.Fprint(w, "event: connected\ndata: {}\n\n")
	flusher.Flush()

	ticker := time.NewTicker(h.keepAlive)
	defer ticker.Stop()

	for {
		select {
		case data := <-clientChan:
			if _, err := w.Write(data); err != nil {
				handlerLogger.Error("Error writing to client, closing SSE connection", err, nil)
				return
			}
			flusher.Flush()
			handlerLogger.Debug("Sent SSE event to client", nil)

		case <-ticker.C:
			// Строка с двоеточием - комментарий SSE, браузер ее игнорирует.
			if _, err := fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return
			}
			flusher.Flush()

		case <-r.Context().Done():
			handlerLogger.Info("SSE client disconnected.", nil)
			return
		}
	}
}
