package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/streadway/amqp"

	"github.com/jonathan/skill-matcher/internal/types"
)

// DefaultExchange is the topic exchange notifications are published to.
const DefaultExchange = "job_alerts"

// Channel is the subset of an AMQP channel the publisher needs.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// Publisher sends notifications as JSON messages routed by user.
type Publisher struct {
	ch       Channel
	conn     *amqp.Connection
	exchange string
}

// NewPublisher declares the exchange on ch and returns a Publisher using it.
func NewPublisher(ch Channel, exchange string) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}
	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}
	return &Publisher{ch: ch, exchange: exchange}, nil
}

// Dial connects to a broker and opens a Publisher on a new channel.
func Dial(url, exchange string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}
	p, err := NewPublisher(ch, exchange)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn
	return p, nil
}

// RoutingKey is the topic a user's notifications are published under.
func RoutingKey(n types.Notification) string {
	return "alert." + n.UserID.String()
}

// Publish sends one notification.
func (p *Publisher) Publish(ctx context.Context, n types.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notification: %w", err)
	}
	err = p.ch.Publish(p.exchange, RoutingKey(n), false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    n.CreatedAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish notification for job %s: %w", n.JobID, err)
	}
	return nil
}

// PublishAll sends notifications in order and stops at the first failure.
// It returns how many were published.
func (p *Publisher) PublishAll(ctx context.Context, notifications []types.Notification) (int, error) {
	for i, n := range notifications {
		if err := p.Publish(ctx, n); err != nil {
			return i, err
		}
	}
	return len(notifications), nil
}

// Close closes the channel and, when the publisher dialed it, the connection.
func (p *Publisher) Close() error {
	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
