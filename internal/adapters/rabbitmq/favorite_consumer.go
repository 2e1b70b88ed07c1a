package rabbitmq_adapter

import (
	"context"
	"encoding/json"

	"rentwise-portal-service/internal/constants"
	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/contracts"
	"rentwise-portal-service/internal/core/port"
	"rentwise-portal-service/internal/core/port/usecases_port"
	"rentwise-portal-service/pkg/rabbitmq/rabbitmq_common"
	"rentwise-portal-service/pkg/rabbitmq/rabbitmq_consumer"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// FavoriteChangesConsumerAdapter получает favorite.changed от всех экземпляров
// и сводит к ним локальное состояние.
type FavoriteChangesConsumerAdapter struct {
	consumer *rabbitmq_consumer.DistributingConsumer
	useCase  usecases_port.ApplyFavoriteChangeUseCasePort
	logger   port.LoggerPort
}

func NewFavoriteChangesConsumerAdapter(
	cfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.ApplyFavoriteChangeUseCasePort,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*FavoriteChangesConsumerAdapter, error) {
	adapter := &FavoriteChangesConsumerAdapter{useCase: useCase, logger: logger}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_distributing_consumer", "consumer_tag": cfg.ConsumerTag})
	cfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewDistributingConsumer(cfg, adapter.messageHandler, connManager)
	if err != nil {
		return nil, err
	}
	adapter.consumer = consumer
	return adapter, nil
}

func (a *FavoriteChangesConsumerAdapter) messageHandler(ctx context.Context, d amqp.Delivery) error {
	traceID, ok := d.Headers[constants.HeaderTraceID].(string)
	if !ok || traceID == "" {
		traceID = uuid.New().String()
	}

	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"delivery_tag": d.DeliveryTag,
		"message_id":   d.MessageId,
	})

	ctx = contextkeys.ContextWithTraceID(ctx, traceID)
	ctx = contextkeys.ContextWithLogger(ctx, msgLogger)

	// Битые сообщения подтверждаются: повтор их не исправит.
	if err := contracts.ValidateEvent(constants.EventTypeFavoriteChanged, constants.EventVersionFavoriteChanged, d.Body); err != nil {
		msgLogger.Error("Favorite change failed schema validation, dropping message", err, port.Fields{"body": string(d.Body)})
		return nil
	}

	var msg favoriteChangedMessage
	if err := json.Unmarshal(d.Body, &msg); err != nil {
		msgLogger.Error("Failed to unmarshal favorite change, dropping message", err, nil)
		return nil
	}

	msgLogger.Debug("Applying favorite change", port.Fields{
		"event_id":        msg.EventID,
		"source_instance": msg.SourceInstance,
	})
	if err := a.useCase.Execute(ctx, msg.toDomain()); err != nil {
		msgLogger.Error("Failed to apply favorite change", err, nil)
		return err
	}
	return nil
}

// Start блокируется до отмены ctx или потери соединения.
func (a *FavoriteChangesConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.StartConsuming(ctx)
}

func (a *FavoriteChangesConsumerAdapter) Close() error { return a.consumer.Close() }
