package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends listing events to RabbitMQ.  Each call dials the broker,
// declares the queue and publishes one persistent message.
type Publisher struct {
	url         string
	dialTimeout time.Duration
}

// NewPublisher returns a Publisher for the broker at url.
func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, dialTimeout: 5 * time.Second}
}

// Publish sends ev to the listing.events queue.
func (p *Publisher) Publish(ctx context.Context, ev ListingEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	conn, err := amqp.DialConfig(p.url, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(p.dialTimeout),
	})
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := declare(ch); err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Type:         string(ev.Kind),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx,
		"",               // default exchange
		ListingQueueName, // routing key = queue name
		false,            // mandatory
		false,            // immediate
		pub,
	); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// declare makes sure the durable queue exists.  It is idempotent.
func declare(ch *amqp.Channel) error {
	if _, err := ch.QueueDeclare(
		ListingQueueName, // name
		true,             // durable
		false,            // autoDelete
		false,            // exclusive
		false,            // noWait
		nil,              // args
	); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}
	return nil
}
