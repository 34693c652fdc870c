package queue

import (
	"fmt"
	"log/slog"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
)

type QueueName string

const (
	QueueTelegramUpdate QueueName = "telegram-update"
)

// EnsureQueueExists declares the queue as durable and returns the channel
// used for the declaration; the caller owns closing it.
func EnsureQueueExists(conn *amqp.Connection, name QueueName) (
	*amqp.Channel, error) {

	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	_, err = ch.QueueDeclare(
		string(name), // name
		true,         // durable
		false,        // delete when unused
		false,        // exclusive
		false,        // no wait
		nil,          // args
	)
	if err != nil {
		ch.Close()
		return nil, err
	}

	return ch, nil
}

// Publisher pushes messages onto a single named queue, lazily opening its
// channel and reopening it after failures.
type Publisher struct {
	queueName QueueName
	conn      *amqp.Connection
	channel   *amqp.Channel
	mu        sync.Mutex
	log       *slog.Logger
}

func NewPublisher(conn *amqp.Connection, queueName QueueName) *Publisher {
	return &Publisher{
		queueName: queueName,
		conn:      conn,
		log:       slog.With("component", "publisher", "queue", string(queueName)),
	}
}

func (p *Publisher) Publish(message []byte) error {
	ch, err := p.getChannel()
	if err != nil {
		return fmt.Errorf("couldn't open channel: %w", err)
	}

	err = ch.Publish(
		"",                  // exchange — empty means default (direct to queue)
		string(p.queueName), // routing key = queue name
		false,               // mandatory
		false,               // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        message,
		},
	)
	if err != nil {
		p.log.Error("Failed to publish", "message", message, "error", err)
		p.closeChannel()
		return err
	}

	return nil
}

func (p *Publisher) getChannel() (*amqp.Channel, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil && !p.channel.IsClosed() {
		return p.channel, nil
	}

	ch, err := EnsureQueueExists(p.conn, p.queueName)
	if err != nil {
		return nil, err
	}

	p.channel = ch

	return ch, nil
}

func (p *Publisher) closeChannel() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
}
