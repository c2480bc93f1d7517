package config

import (
	"encoding/json"
	"fmt"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	log "github.com/sirupsen/logrus"
)

// Publisher writes JSON-encoded events to durable RabbitMQ queues. A single
// channel is shared, so Publish must not be called after Close.
type Publisher struct {
	channel *amqp.Channel

	mu       sync.Mutex
	declared map[string]bool
}

func NewPublisher() (*Publisher, error) {
	if RabbitMQ == nil {
		return nil, fmt.Errorf("RabbitMQ connection not initialized")
	}
	ch, err := RabbitMQ.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	return &Publisher{
		channel:  ch,
		declared: make(map[string]bool),
	}, nil
}

// ensureQueue declares the queue the first time it is seen. Declarations are
// idempotent on the broker side, the cache just avoids the round trip.
func (p *Publisher) ensureQueue(name string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.declared[name] {
		return nil
	}
	if _, err := p.channel.QueueDeclare(name, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", name, err)
	}
	p.declared[name] = true
	return nil
}

// Publish marshals the message as JSON and enqueues it as a persistent
// delivery on the default exchange.
func (p *Publisher) Publish(queueName string, message interface{}) error {
	if err := p.ensureQueue(queueName); err != nil {
		return err
	}

	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = p.channel.Publish("", queueName, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", queueName, err)
	}

	log.WithField("queue", queueName).Debugf("Published event: %s", body)
	return nil
}

func (p *Publisher) Close() error {
	if p.channel == nil {
		return nil
	}
	return p.channel.Close()
}
