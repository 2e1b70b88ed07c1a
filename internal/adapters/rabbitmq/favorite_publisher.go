package rabbitmq_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"rentwise-portal-service/internal/constants"
	"rentwise-portal-service/internal/contextkeys"
	"rentwise-portal-service/internal/contracts"
	"rentwise-portal-service/internal/core/domain"
	"rentwise-portal-service/internal/core/port"
	"rentwise-portal-service/internal/core/port/usecases_port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// amqpPublisher - то, что адаптеру нужно от rabbitmq_producer.Publisher.
type amqpPublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// FavoriteEventPublisher публикует favorite.changed в обменник портала.
type FavoriteEventPublisher struct {
	producer   amqpPublisher
	instanceID string
}

func NewFavoriteEventPublisher(producer amqpPublisher, instanceID string) (*FavoriteEventPublisher, error) {
	if producer == nil {
		return nil, errors.New("rabbitmq adapter: producer cannot be nil")
	}
	return &FavoriteEventPublisher{producer: producer, instanceID: instanceID}, nil
}

func (a *FavoriteEventPublisher) PublishFavoriteChange(ctx context.Context, change domain.FavoriteChange) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "FavoriteEventPublisher",
		"routing_key": constants.RoutingKeyFavoriteChanged,
		"event_id":    change.EventID,
		"property_id": change.PropertyID,
	})

	body, err := json.Marshal(newFavoriteChangedMessage(change, a.instanceID))
	if err != nil {
		adapterLogger.Error("Failed to marshal favorite change to JSON", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal favorite change: %w", err)
	}
	// Событие, не прошедшее схему, потребители все равно отклонят.
	if err := contracts.ValidateEvent(constants.EventTypeFavoriteChanged, constants.EventVersionFavoriteChanged, body); err != nil {
		adapterLogger.Error("Favorite change does not match event schema", err, nil)
		return fmt.Errorf("rabbitmq adapter: invalid favorite change event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Transient,
		Timestamp:    time.Now(),
		MessageId:    change.EventID,
		Headers: amqp.Table{
			constants.HeaderEventType:    constants.EventTypeFavoriteChanged,
			constants.HeaderEventVersion: constants.EventVersionFavoriteChanged,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, constants.RoutingKeyFavoriteChanged, msg); err != nil {
		adapterLogger.Error("Failed to publish favorite change", err, nil)
		return err
	}

	adapterLogger.Debug("Favorite change published", nil)
	return nil
}

// LocalFavoriteEventPublisher применяет событие в том же процессе. Используется без RabbitMQ.
type LocalFavoriteEventPublisher struct {
	apply usecases_port.ApplyFavoriteChangeUseCasePort
}

func NewLocalFavoriteEventPublisher(apply usecases_port.ApplyFavoriteChangeUseCasePort) *LocalFavoriteEventPublisher {
	return &LocalFavoriteEventPublisher{apply: apply}
}

func (p *LocalFavoriteEventPublisher) PublishFavoriteChange(ctx context.Context, change domain.FavoriteChange) error {
	return p.apply.Execute(ctx, change)
}
