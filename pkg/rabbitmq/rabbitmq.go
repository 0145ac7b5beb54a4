// Package rabbitmq publishes and consumes product lifecycle events.
package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	amqp "github.com/streadway/amqp"
)

// ProductEventsQueue receives every product event.
const ProductEventsQueue = "product_events"

// ProductCreatedType is the AMQP type of product created messages.
const ProductCreatedType = "product.created"

// ErrChannelUnavailable is returned when the client has no open channel.
var ErrChannelUnavailable = errors.New("RabbitMQ channel is not available")

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

func (c Config) queue() string {
	if c.Queue == "" {
		return ProductEventsQueue
	}
	return c.Queue
}

// NewClient connects to RabbitMQ, opens a channel and declares the events
// queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareQueue(ch, cfg.queue()); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Infof("RabbitMQ client connected and %s declared", cfg.queue())
	return &Client{conn: conn, channel: ch, queue: cfg.queue()}, nil
}

func declareQueue(ch *amqp.Channel, name string) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		name,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", name, err)
	}
	return q, nil
}

// Close closes the channel and the connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}

// NewMessage encodes event as a persistent JSON publishing of the given type.
func NewMessage(eventType string, event map[string]interface{}) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal %s event: %w", eventType, err)
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		Type:         eventType,
		MessageId:    uuid.NewString(),
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}, nil
}

// PublishProductCreated publishes a product.created event on the default
// exchange, routed to the client's queue.
func (c *Client) PublishProductCreated(event map[string]interface{}) error {
	if c.channel == nil {
		return ErrChannelUnavailable
	}

	msg, err := NewMessage(ProductCreatedType, event)
	if err != nil {
		return err
	}

	if err := c.channel.Publish("", c.queue, false, false, msg); err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	log.Debugf("Sent %s event %s", ProductCreatedType, msg.MessageId)
	return nil
}

// ConsumeProductEvents starts a goroutine that hands each delivery to
// handler. Successful deliveries are acked; failed ones are nacked without
// requeue.
func (c *Client) ConsumeProductEvents(handler func(msg amqp.Delivery) error) error {
	if c.channel == nil {
		return ErrChannelUnavailable
	}

	queue, err := declareQueue(c.channel, c.queue)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		queue.Name,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			Dispatch(msg, handler)
		}
	}()
	return nil
}

// acknowledger is the part of amqp.Delivery that Dispatch settles.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

// Dispatch runs handler on msg and settles it.
func Dispatch(msg amqp.Delivery, handler func(msg amqp.Delivery) error) {
	settle(msg, msg.DeliveryTag, func() error { return handler(msg) })
}

func settle(ack acknowledger, tag uint64, process func() error) {
	if err := process(); err != nil {
		log.Errorf("Error processing message %d: %v", tag, err)
		if nackErr := ack.Nack(false, false); nackErr != nil {
			log.Errorf("Error nacking message %d: %v", tag, nackErr)
		}
		return
	}
	if ackErr := ack.Ack(false); ackErr != nil {
		log.Errorf("Error acking message %d: %v", tag, ackErr)
	}
}

// LogProductEvent is the audit handler used by the service process.
func LogProductEvent(msg amqp.Delivery) error {
	var event map[string]interface{}
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("failed to decode %s event: %w", msg.Type, err)
	}
	log.Infof("Received %s event %s: %v", msg.Type, msg.MessageId, event)
	return nil
}
