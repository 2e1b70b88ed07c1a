package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/core/port"
)

// ClientChannel - канал одного SSE-соединения (одной вкладки браузера).
type ClientChannel = chan []byte

const (
	eventBufferSize  = 100
	clientBufferSize = 32
)

type eventWithContext struct {
	ctx   context.Context
	event port.PortalEvent
}

// SSENotifier рассылает PortalEvent открытым SSE-потокам пользователя.
type SSENotifier struct {
	// Ключ - ID пользователя, у одного пользователя может быть несколько вкладок.
	clients map[string][]ClientChannel
	mu      sync.RWMutex

	eventChan chan eventWithContext
	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup

	logger port.LoggerPort
}

// NewSSENotifier создает нотификатор и запускает диспетчер.
func NewSSENotifier(baseLogger port.LoggerPort) *SSENotifier {
	n := &SSENotifier{
		clients:   make(map[string][]ClientChannel),
		eventChan: make(chan eventWithContext, eventBufferSize),
		done:      make(chan struct{}),
		logger:    baseLogger.WithFields(port.Fields{"component": "SSENotifier"}),
	}

	n.wg.Add(1)
	go n.dispatcher()

	return n
}

func (n *SSENotifier) dispatcher() {
	defer n.wg.Done()
	n.logger.Debug("Notifier dispatcher started.", nil)

	for {
		select {
		case <-n.done:
			n.logger.Debug("Notifier dispatcher stopped.", nil)
			return
		case pkg := <-n.eventChan:
			n.dispatch(pkg.ctx, pkg.event)
		}
	}
}

func (n *SSENotifier) dispatch(ctx context.Context, event port.PortalEvent) {
	eventLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "SSENotifier.dispatcher",
		"event_type": event.Type,
		"user_id":    event.UserID,
	})

	data, err := json.Marshal(event.Data)
	if err != nil {
		eventLogger.Error("Failed to marshal event", err, nil)
		return
	}
	sseMessage := FormatEvent(event.Type, data)

	n.mu.RLock()
	defer n.mu.RUnlock()

	channels, found := n.clients[event.UserID]
	if !found {
		eventLogger.Debug("No active clients for user, event dropped.", nil)
		return
	}

	eventLogger.Debug("Dispatching event to clients", port.Fields{"channels_count": len(channels)})
	for _, ch := range channels {
		// Медленный клиент не должен тормозить остальных.
		select {
		case ch <- sseMessage:
		default:
			eventLogger.Warn("Client channel is full, skipping.", nil)
		}
	}
}

// FormatEvent собирает сообщение в формате text/event-stream.
func FormatEvent(eventType string, data []byte) []byte {
	return []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", eventType, data))
}

// Notify ставит событие в очередь диспетчера. После Close события отбрасываются.
func (n *SSENotifier) Notify(ctx context.Context, event port.PortalEvent) {
	select {
	case <-n.done:
		return
	default:
	}

	select {
	case n.eventChan <- eventWithContext{ctx: ctx, event: event}:
	case <-n.done:
	case <-ctx.Done():
		contextkeys.LoggerFromContext(ctx).Warn("Event dropped, context cancelled", port.Fields{"event_type": event.Type})
	}
}

// AddClient регистрирует новое SSE-соединение пользователя.
func (n *SSENotifier) AddClient(userID string) ClientChannel {
	n.mu.Lock()
	defer n.mu.Unlock()

	ch := make(ClientChannel, clientBufferSize)
	n.clients[userID] = append(n.clients[userID], ch)

	n.logger.Info("Client connected for user", port.Fields{
		"user_id":                    userID,
		"total_connections_for_user": len(n.clients[userID]),
	})
	return ch
}

// RemoveClient снимает соединение с учета. Канал не закрывается: в него мог писать диспетчер.
func (n *SSENotifier) RemoveClient(userID string, ch ClientChannel) {
	n.mu.Lock()
	defer n.mu.Unlock()

	channels, found := n.clients[userID]
	if !found {
		return
	}

	remaining := make([]ClientChannel, 0, len(channels))
	for _, c := range channels {
		if c != ch {
			remaining = append(remaining, c)
		}
	}

	if len(remaining) == 0 {
		delete(n.clients, userID)
		n.logger.Debug("Last client disconnected for user. User removed.", port.Fields{"user_id": userID})
		return
	}
	n.clients[userID] = remaining
	n.logger.Info("Client disconnected for user.", port.Fields{
		"user_id":               userID,
		"remaining_connections": len(remaining),
	})
}

// ClientCount - число открытых соединений пользователя.
func (n *SSENotifier) ClientCount(userID string) int {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return len(n.clients[userID])
}

// Close останавливает диспетчер. Повторный вызов безопасен.
func (n *SSENotifier) Close() {
	n.closeOnce.Do(func() {
		close(n.done)
	})
	n.wg.Wait()
}
