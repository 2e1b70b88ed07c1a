package rabbitmq_consumer

import (
	"context"
	"errors"
	"fmt"

	"rentwise-portal-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. nil - Ack, ошибка - Nack без повторной постановки.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

// DistributingConsumer запускает обработчик для каждого сообщения в отдельной горутине.
type DistributingConsumer struct {
	base    *baseConsumer
	handler MessageHandler
}

func NewDistributingConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*DistributingConsumer, error) {
	if handler == nil {
		return nil, errors.New("distributing Consumer: message handler is required")
	}

	bc, err := newBaseConsumer(cfg, connManager)
	if err != nil {
		return nil, fmt.Errorf("distributing Consumer: %w", err)
	}

	return &DistributingConsumer{base: bc, handler: handler}, nil
}

// QueueName - имя очереди, в том числе сгенерированное сервером.
func (c *DistributingConsumer) QueueName() string {
	return c.base.actualQueueName
}

// StartConsuming блокируется до отмены ctx (возвращает nil) или закрытия соединения (возвращает ошибку).
func (c *DistributingConsumer) StartConsuming(ctx context.Context) error {
	if c.base.channel == nil || c.base.connection == nil || c.base.connection.IsClosed() {
		return errors.New("distributing Consumer: not connected")
	}

	msgs, err := c.base.channel.Consume(
		c.base.actualQueueName,
		c.base.config.ConsumerTag,
		false, // auto-ack
		c.base.config.ExclusiveConsumer,
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("distributing Consumer %s: failed to register a consumer on queue '%s': %w", c.base.config.ConsumerTag, c.base.actualQueueName, err)
	}

	c.base.Logger.Info("Waiting for messages on queue", "queue_name", c.base.actualQueueName)

	go c.dispatch(ctx, msgs)

	notifyClose := c.base.connection.NotifyClose(make(chan *amqp.Error, 1))

	select {
	case <-ctx.Done():
		c.base.Logger.Info("Context cancelled, shutting down consumer", "consumer_tag", c.base.config.ConsumerTag)
		return nil
	case amqpErr, ok := <-notifyClose:
		if !ok || amqpErr == nil {
			return errors.New("distributing Consumer: connection closed")
		}
		c.base.Logger.Error(amqpErr, "Connection closed for consumer", "consumer_tag", c.base.config.ConsumerTag)
		return amqpErr
	}
}

func (c *DistributingConsumer) dispatch(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		// Сначала проверяем отмену, чтобы не брать новую работу после сигнала остановки.
		select {
		case <-ctx.Done():
			return
		default:
		}

		select {
		case <-ctx.Done():
			return
		case d, ok := <-msgs:
			if !ok {
				c.base.Logger.Info("Deliveries channel closed", "consumer_tag", c.base.config.ConsumerTag)
				return
			}
			c.base.wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer c.base.wg.Done()
				c.handleDelivery(ctx, delivery)
			}(d)
		}
	}
}

func (c *DistributingConsumer) handleDelivery(ctx context.Context, delivery amqp.Delivery) {
	defer func() {
		if r := recover(); r != nil {
			c.base.Logger.Error(fmt.Errorf("panic: %v", r), "Handler panicked", "delivery_tag", delivery.DeliveryTag)
			_ = delivery.Nack(false, false)
		}
	}()

	if err := c.handler(ctx, delivery); err != nil {
		c.base.Logger.Error(err, "Handler error, message rejected",
			"consumer_tag", c.base.config.ConsumerTag,
			"delivery_tag", delivery.DeliveryTag)
		_ = delivery.Nack(false, false)
		return
	}

	_ = delivery.Ack(false)
	c.base.Logger.Debug("Message acked", "delivery_tag", delivery.DeliveryTag)
}

func (c *DistributingConsumer) Close() error {
	return c.base.Close()
}
