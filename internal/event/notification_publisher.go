package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// amqpChannel is the part of *amqp.Channel the publisher uses
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// NotificationPublisher publishes notification events to RabbitMQ
type NotificationPublisher struct {
	channel amqpChannel
	queue   string
	healthy func() bool

	mu                sync.Mutex
	declared          bool
	messagesPublished int64
	messagesFailed    int64
	lastPublishTime   time.Time
}

// NewNotificationPublisher creates a new notification event publisher
func NewNotificationPublisher(conn *RabbitMQConnection, queue string) *NotificationPublisher {
	return newNotificationPublisher(conn.Channel, queue, conn.IsOpen)
}

func newNotificationPublisher(ch amqpChannel, queue string, healthy func() bool) *NotificationPublisher {
	return &NotificationPublisher{
		channel:         ch,
		queue:           queue,
		healthy:         healthy,
		lastPublishTime: time.Now(),
	}
}

// Publish sends one notification to the queue as a persistent JSON message
func (p *NotificationPublisher) Publish(ctx context.Context, msg NotificationMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared {
		_, err := p.channel.QueueDeclare(
			p.queue, // queue name
			true,    // durable
			false,   // delete when unused
			false,   // exclusive
			false,   // no-wait
			nil,     // arguments
		)
		if err != nil {
			p.messagesFailed++
			return fmt.Errorf("failed to declare queue: %w", err)
		}
		p.declared = true
	}

	body, err := json.Marshal(msg)
	if err != nil {
		p.messagesFailed++
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	err = p.channel.PublishWithContext(
		ctx,
		"",      // exchange
		p.queue, // routing key (queue name)
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			MessageId:    msg.ID,
			Type:         msg.Type,
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		p.messagesFailed++
		// the channel may have been replaced; declare again next time
		p.declared = false
		return fmt.Errorf("failed to publish notification event: %w", err)
	}

	p.messagesPublished++
	p.lastPublishTime = time.Now()

	slog.Info("Notification event published",
		"queue", p.queue,
		"channel", msg.Channel,
		"type", msg.Type,
		"message_id", msg.ID,
	)

	return nil
}

// HealthCheck returns the health status of the publisher
func (p *NotificationPublisher) HealthCheck() PublisherHealthStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	return PublisherHealthStatus{
		IsHealthy:         p.healthy == nil || p.healthy(),
		MessagesPublished: p.messagesPublished,
		MessagesFailed:    p.messagesFailed,
		LastPublishTime:   p.lastPublishTime,
		Queue:             p.queue,
	}
}

// PublisherHealthStatus represents the health status of the publisher
type PublisherHealthStatus struct {
	IsHealthy         bool      `json:"is_healthy"`
	MessagesPublished int64     `json:"messages_published"`
	MessagesFailed    int64     `json:"messages_failed"`
	LastPublishTime   time.Time `json:"last_publish_time"`
	Queue             string    `json:"queue"`
}
