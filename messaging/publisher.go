package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/food-ordering/utils"
)

const publishTimeout = 5 * time.Second

// Envelope is the JSON body of every published event.
type Envelope struct {
	ID         string      `json:"id"`
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// Publisher sends domain events to a durable fanout exchange. Routing keys
// carry the event name so topic-style consumers can still filter.
type Publisher struct {
	url      string
	exchange string

	mu      sync.Mutex
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewPublisher(url, exchange string) (*Publisher, error) {
	p := &Publisher{url: url, exchange: exchange}
	if err := p.connect(); err != nil {
		return nil, err
	}
	utils.InfoLogger.WithField("exchange", exchange).Info("connected to rabbitmq")
	return p, nil
}

func (p *Publisher) connect() error {
	conn, err := amqp091.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = ch.ExchangeDeclare(
		p.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return fmt.Errorf("declare exchange %s: %w", p.exchange, err)
	}

	p.conn = conn
	p.channel = ch
	return nil
}

func (p *Publisher) isClosed() bool {
	return p.conn == nil || p.conn.IsClosed() || p.channel == nil || p.channel.IsClosed()
}

func buildPublishing(event string, data interface{}, now time.Time) (amqp091.Publishing, error) {
	env := Envelope{
		ID:         uuid.NewString(),
		Event:      event,
		OccurredAt: now.UTC(),
		Data:       data,
	}
	body, err := json.Marshal(env)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal %s event: %w", event, err)
	}

	return amqp091.Publishing{
		ContentType:  "application/json",
		MessageId:    env.ID,
		Type:         event,
		Timestamp:    env.OccurredAt,
		DeliveryMode: amqp091.Persistent,
		Body:         body,
	}, nil
}

// Publish reconnects once if the broker connection was lost.
func (p *Publisher) Publish(ctx context.Context, event string, data interface{}) error {
	msg, err := buildPublishing(event, data, time.Now())
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isClosed() {
		p.closeLocked()
		if err := p.connect(); err != nil {
			return fmt.Errorf("reconnect: %w", err)
		}
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := p.channel.PublishWithContext(ctx, p.exchange, event, false, false, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event, err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"exchange": p.exchange,
		"event":    event,
		"bytes":    len(msg.Body),
	}).Debug("event published")
	return nil
}

func (p *Publisher) closeLocked() error {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}
