package bot

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/tundex/airtime-bot/internal/queue"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	amqp "github.com/rabbitmq/amqp091-go"
)

// Consumer drains the update queue one message at a time. Updates are
// processed strictly sequentially; the vend-then-bill ordering and the
// reseller's bill store both rely on invocations not overlapping.
type Consumer struct {
	conn      *amqp.Connection
	handler   *Handler
	channel   *amqp.Channel
	log       *slog.Logger
	reconnect bool
}

func NewConsumer(conn *amqp.Connection, handler *Handler) *Consumer {
	return &Consumer{
		conn:    conn,
		handler: handler,
		log:     slog.With("component", "consumer"),
	}
}

func (c *Consumer) Run(ctx context.Context) error {
	c.log.Info("Starting update consumer")

	ch, err := queue.EnsureQueueExists(c.conn, queue.QueueTelegramUpdate)
	if err != nil {
		return err
	}
	// we'll open a new channel for the consumer anyway
	ch.Close()

	messages, err := c.restartConsumer()
	if err != nil {
		return err
	}

	for {
		if c.reconnect {
			c.log.Debug("Reconnection is needed")

			messages, err = c.restartConsumer()
			if err != nil {
				return err
			}

			c.reconnect = false
		}

		select {
		case <-ctx.Done():
			c.log.Info("Stopping update consumer...")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				c.log.Debug("Queue is closed")
				return nil
			}

			c.handleMessage(ctx, msg)
		}
	}
}

func (c *Consumer) restartConsumer() (<-chan amqp.Delivery, error) {
	if c.channel != nil && !c.channel.IsClosed() {
		c.channel.Close()
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return nil, err
	}

	// one in-flight update at a time
	ch.Qos(1, 0, false)

	c.channel = ch

	return ch.Consume(
		string(queue.QueueTelegramUpdate), // queue
		"update-consumer",                 // consumer
		false,                             // autoAck
		false,                             // exclusive
		false,                             // noLocal
		false,                             // no wait
		nil,                               // args
	)
}

func (c *Consumer) handleMessage(ctx context.Context, message amqp.Delivery) {
	var update tgbotapi.Update

	err := json.Unmarshal(message.Body, &update)
	if err != nil {
		c.log.Error(
			"update unmarshalling error",
			"body", string(message.Body),
			"error", err,
		)
	} else {
		c.handler.HandleUpdate(ctx, update)
	}

	// a malformed update is acked too; redelivering it won't fix it
	err = message.Ack(false)
	if err != nil {
		c.log.Error(
			"Message ack error",
			"message", string(message.Body),
			"error", err,
		)

		// unacked messages would pile up and stall the prefetch window, so
		// reconnect immediately when acks start failing
		c.reconnect = true
	}
}
