package config

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// Consumer reads deliveries from one durable queue. Consume blocks until the
// channel is closed, so run it from its own goroutine when the caller has
// other work to do.
type Consumer struct {
	channel *amqp.Channel
	queue   string
}

func NewConsumer(queueName string) (*Consumer, error) {
	if RabbitMQ == nil {
		return nil, fmt.Errorf("RabbitMQ connection not initialized")
	}
	ch, err := RabbitMQ.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	q, err := ch.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}
	return &Consumer{channel: ch, queue: q.Name}, nil
}

// Consume feeds each delivery body to the handler. A handler error nacks the
// message back onto the queue, success acks it.
func (c *Consumer) Consume(handler func([]byte) error) error {
	deliveries, err := c.channel.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to consume queue %s: %w", c.queue, err)
	}

	log.WithField("queue", c.queue).Info("Consumer started")
	for msg := range deliveries {
		if err := handler(msg.Body); err != nil {
			log.WithField("queue", c.queue).Errorf("Handler failed, requeueing: %v", err)
			_ = msg.Nack(false, true)
			continue
		}
		_ = msg.Ack(false)
	}
	return nil
}

func (c *Consumer) Close() error {
	return c.channel.Close()
}
